package imgmeta

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgmeta/internal/testimg"
)

// writeFile creates name under dir with data and returns its path.
func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// TestFormatFromPath tests extension-based reader selection
func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.webp", FormatWebP},
		{"A.WEBP", FormatWebP},
		{"dir.v2/photo.jpg", FormatJPEG},
		{"photo.JPEG", FormatJPEG},
		{"icon.png", FormatPNG},
		{"anim.gif", FormatUnknown},
		{"notes.txt", FormatUnknown},
		{"webp", FormatUnknown},
		{"archive.png.bak", FormatUnknown},
		{"", FormatUnknown},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
		if got := Supported(tt.path); got != (tt.want != FormatUnknown) {
			t.Errorf("Supported(%q) = %v", tt.path, got)
		}
	}
}

// TestWebPMetadataFromFile tests the WebP reader against a file on disk
func TestWebPMetadataFromFile(t *testing.T) {
	data := testimg.AnimatedWebP(100, 50, 100, 150)
	path := writeFile(t, t.TempDir(), "clip.webp", data)

	md, err := WebPMetadataFromFile(path)
	require.NoError(t, err)

	want := &AnimationMetadata{
		FileSize:        int64(len(data)),
		Width:           100,
		Height:          50,
		IsAnimated:      true,
		FrameCount:      2,
		FrameDurations:  []uint{100, 150},
		TotalDurationMs: 250,
		FrameRate:       8,
	}
	if diff := cmp.Diff(want, md); diff != "" {
		t.Errorf("WebPMetadataFromFile() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "100x50", md.Resolution())
	assert.Equal(t, "250ms", md.TotalDuration().String())
}

// TestWebPMetadataFromFile_UpperCaseExtension tests that extensions match case-insensitively
func TestWebPMetadataFromFile_UpperCaseExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "CLIP.WEBP", testimg.AnimatedWebP(8, 8, 40))

	md, err := WebPMetadataFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint(1), md.FrameCount)
}

// TestWebPMetadataFromBytes tests that a still image reports empty, non-nil durations
func TestWebPMetadataFromBytes(t *testing.T) {
	md, err := WebPMetadataFromBytes(testimg.RIFF(testimg.VP8X(0, 4, 4)))
	require.NoError(t, err)
	assert.False(t, md.IsAnimated)
	assert.NotNil(t, md.FrameDurations)
	assert.Empty(t, md.FrameDurations)
}

// TestImageMetadataFromFile tests the JPEG and PNG readers against files on disk
func TestImageMetadataFromFile(t *testing.T) {
	dir := t.TempDir()
	jpg := testimg.JPEG(640, 480, 0xC0)
	png := testimg.PNG(16, 16)

	tests := []struct {
		name string
		data []byte
		want ImageMetadata
	}{
		{"photo.jpg", jpg, ImageMetadata{Width: 640, Height: 480, FileSize: int64(len(jpg))}},
		{"photo.jpeg", jpg, ImageMetadata{Width: 640, Height: 480, FileSize: int64(len(jpg))}},
		{"icon.PNG", png, ImageMetadata{Width: 16, Height: 16, FileSize: int64(len(png))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, err := ImageMetadataFromFile(writeFile(t, dir, tt.name, tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, *md)
		})
	}
}

// TestMetadata_NotFound tests that missing paths and directories are reported as NotFound
func TestMetadata_NotFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.png"), 0o755))

	paths := []string{
		filepath.Join(dir, "missing.webp"),
		filepath.Join(dir, "missing.jpg"),
		filepath.Join(dir, "missing.gif"),
		filepath.Join(dir, "folder.png"),
	}
	for _, path := range paths {
		res := Metadata(path)
		assert.ErrorIs(t, res.Err, ErrNotFound, path)
		assert.Equal(t, NotFound, res.Kind(), path)
		assert.False(t, res.OK())
	}

	_, err := WebPMetadataFromFile(paths[0])
	assert.Equal(t, NotFound, KindOf(err))
	_, err = ImageMetadataFromFile(paths[1])
	assert.Equal(t, NotFound, KindOf(err))
}

// TestMetadata_UnsupportedType tests that extension gating ignores file content
func TestMetadata_UnsupportedType(t *testing.T) {
	dir := t.TempDir()
	png := testimg.PNG(4, 4)

	for _, name := range []string{"image.gif", "image.txt", "image"} {
		res := Metadata(writeFile(t, dir, name, png))
		require.ErrorIs(t, res.Err, ErrUnsupportedType, name)
		assert.Equal(t, UnsupportedType, res.Kind())
		assert.Nil(t, res.Image)
		assert.Nil(t, res.Animation)
	}

	webpPath := writeFile(t, dir, "still.webp", testimg.RIFF(testimg.VP8X(0, 4, 4)))
	pngPath := writeFile(t, dir, "still.png", png)

	_, err := ImageMetadataFromFile(webpPath)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	_, err = WebPMetadataFromFile(pngPath)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	_, err = ImageMetadataFromBytes("still.webp", png)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

// TestMetadata_ContentMismatch tests that the extension picks the reader even when the bytes disagree
func TestMetadata_ContentMismatch(t *testing.T) {
	path := writeFile(t, t.TempDir(), "actually-webp.png", testimg.AnimatedWebP(4, 4, 10))

	res := Metadata(path)
	require.Error(t, res.Err)
	assert.Equal(t, InvalidHeader, res.Kind())
	assert.Equal(t, FormatPNG, res.Format)
	assert.Contains(t, res.Err.Error(), "content looks like WebP")

	var e *Error
	require.True(t, errors.As(res.Err, &e))
	assert.Equal(t, path, e.Path)
	assert.Equal(t, FormatPNG, e.Format)
}

// TestMetadata_Dispatch tests that Metadata fills exactly one side of the result
func TestMetadata_Dispatch(t *testing.T) {
	dir := t.TempDir()

	webpRes := Metadata(writeFile(t, dir, "a.webp", testimg.AnimatedWebP(2, 2, 50)))
	require.True(t, webpRes.OK())
	assert.Equal(t, FormatWebP, webpRes.Format)
	assert.NotNil(t, webpRes.Animation)
	assert.Nil(t, webpRes.Image)

	jpgRes := Metadata(writeFile(t, dir, "b.jpg", testimg.JPEG(3, 2, 0xC2)))
	require.True(t, jpgRes.OK())
	assert.Equal(t, FormatJPEG, jpgRes.Format)
	assert.Nil(t, jpgRes.Animation)
	assert.Equal(t, "3x2", jpgRes.Resolution())
	assert.Equal(t, KindUnknown, jpgRes.Kind())
}

// TestMetadataFromBytes tests in-memory extraction
func TestMetadataFromBytes(t *testing.T) {
	data := testimg.PNG(7, 9)
	res := MetadataFromBytes("x.png", data)
	require.NoError(t, res.Err)
	assert.Equal(t, "7x9", res.Resolution())
	assert.Equal(t, int64(len(data)), res.FileSize())

	res = MetadataFromBytes("x.webp", data[:5])
	assert.ErrorIs(t, res.Err, ErrTruncated)
	assert.Equal(t, Truncated, res.Kind())
	assert.Zero(t, res.FileSize())
	assert.Empty(t, res.Resolution())

	res = MetadataFromBytes("x.bmp", data)
	assert.Equal(t, UnsupportedType, res.Kind())
}

// TestErrorKinds tests the mapping from reader failures to kinds
func TestErrorKinds(t *testing.T) {
	corrupt := append(testimg.RIFF(testimg.VP8X(testimg.AnimationFlag, 4, 4)), "ANMF\x20\x00\x00\x00"...)

	tests := []struct {
		name string
		data []byte
		kind Kind
		err  error
	}{
		{"x.webp", []byte("RIFF"), Truncated, ErrTruncated},
		{"x.webp", []byte("RIFF\x04\x00\x00\x00WAVE"), InvalidHeader, ErrInvalidHeader},
		{"x.webp", corrupt, CorruptChunk, ErrCorruptChunk},
		{"x.jpg", []byte{0xFF, 0xD8, 0x12}, InvalidStructure, ErrInvalidStructure},
		{"x.jpg", []byte{0xFF, 0xD8}, ResolutionNotFound, ErrResolutionNotFound},
		{"x.png", testimg.PNGSignature, ResolutionNotFound, ErrResolutionNotFound},
	}
	for _, tt := range tests {
		res := MetadataFromBytes(tt.name, tt.data)
		assert.ErrorIs(t, res.Err, tt.err)
		assert.Equal(t, tt.kind, KindOf(res.Err), "%s %q", tt.name, tt.data)
		assert.Equal(t, tt.kind.String(), res.Map()["kind"])
	}

	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("other")))
	assert.Equal(t, IOError, KindOf(ErrIO))
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

// TestResult_Map tests the flattened key/value form
func TestResult_Map(t *testing.T) {
	data := testimg.AnimatedWebP(10, 20, 30, 70)
	res := MetadataFromBytes("a.webp", data)
	require.NoError(t, res.Err)

	m := res.Map()
	want := map[string]any{
		"file_size":         int64(len(data)),
		"width":             uint(10),
		"height":            uint(20),
		"is_animated":       true,
		"frame_count":       uint(2),
		"frame_durations":   []uint{30, 70},
		"total_duration_ms": uint(100),
		"frame_rate":        20.0,
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}

	// The map owns its duration slice.
	m["frame_durations"].([]uint)[0] = 999
	assert.Equal(t, uint(30), res.Animation.FrameDurations[0])

	img := MetadataFromBytes("a.png", testimg.PNG(5, 6)).Map()
	assert.Equal(t, map[string]any{"width": uint(5), "height": uint(6), "file_size": int64(len(testimg.PNG(5, 6)))}, img)

	failed := MetadataFromBytes("a.png", nil).Map()
	assert.Equal(t, "Truncated", failed["kind"])
	assert.Contains(t, failed["error"], "a.png: ")
}

func BenchmarkMetadataFromBytes(b *testing.B) {
	data := testimg.JPEG(1920, 1080, 0xC0)
	for i := 0; i < b.N; i++ {
		if res := MetadataFromBytes("bench.jpg", data); res.Err != nil {
			b.Fatal(res.Err)
		}
	}
}
