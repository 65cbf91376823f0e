package imgmeta

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"imgmeta/formats"
)

// extFormats maps lower-case file extensions to the reader that handles them.
var extFormats = map[string]Format{
	"jpg":  FormatJPEG,
	"jpeg": FormatJPEG,
	"png":  FormatPNG,
	"webp": FormatWebP,
}

// FormatFromPath selects a format by file extension, case-insensitively.
// It returns FormatUnknown for any other extension.
func FormatFromPath(path string) Format {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return extFormats[ext]
}

// Supported reports whether path carries an extension one of the readers accepts.
func Supported(path string) bool {
	return FormatFromPath(path) != FormatUnknown
}

// WebPMetadataFromFile reads a .webp file and walks its RIFF chunks.
//
// Example:
//
//	md, err := imgmeta.WebPMetadataFromFile("clip.webp")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s, %d frames at %.2f fps\n", md.Resolution(), md.FrameCount, md.FrameRate)
func WebPMetadataFromFile(path string) (*AnimationMetadata, error) {
	data, err := load(path, FormatWebP)
	if err != nil {
		return nil, err
	}
	return webpMetadata(path, data)
}

// WebPMetadataFromBytes walks the RIFF chunks of an in-memory WebP file.
func WebPMetadataFromBytes(data []byte) (*AnimationMetadata, error) {
	return webpMetadata("", data)
}

// ImageMetadataFromFile reads a .jpg, .jpeg or .png file and returns its
// dimensions and size.
func ImageMetadataFromFile(path string) (*ImageMetadata, error) {
	data, err := load(path, FormatJPEG, FormatPNG)
	if err != nil {
		return nil, err
	}
	return imageMetadata(path, FormatFromPath(path), data)
}

// ImageMetadataFromBytes parses data with the JPEG or PNG reader chosen by
// the extension of name.
func ImageMetadataFromBytes(name string, data []byte) (*ImageMetadata, error) {
	format := FormatFromPath(name)
	if format != FormatJPEG && format != FormatPNG {
		return nil, unsupported(name, format, FormatJPEG, FormatPNG)
	}
	return imageMetadata(name, format, data)
}

// Metadata dispatches path to the reader matching its extension. The
// returned Result holds either metadata or an *Error, never both.
func Metadata(path string) Result {
	format := FormatFromPath(path)
	if format == FormatUnknown {
		if _, err := stat(path); err != nil {
			return Result{Path: path, Err: err}
		}
		return Result{Path: path, Err: unsupported(path, format, FormatJPEG, FormatPNG, FormatWebP)}
	}
	data, err := load(path, format)
	if err != nil {
		return Result{Path: path, Format: format, Err: err}
	}
	return dispatch(path, format, data)
}

// MetadataFromBytes is Metadata for a file already read into memory; name
// only supplies the extension.
func MetadataFromBytes(name string, data []byte) Result {
	format := FormatFromPath(name)
	if format == FormatUnknown {
		return Result{Path: name, Err: unsupported(name, format, FormatJPEG, FormatPNG, FormatWebP)}
	}
	return dispatch(name, format, data)
}

func dispatch(path string, format Format, data []byte) Result {
	res := Result{Path: path, Format: format}
	switch format {
	case FormatWebP:
		res.Animation, res.Err = webpMetadata(path, data)
	case FormatJPEG, FormatPNG:
		res.Image, res.Err = imageMetadata(path, format, data)
	default:
		res.Err = unsupported(path, format, FormatJPEG, FormatPNG, FormatWebP)
	}
	return res
}

func webpMetadata(path string, data []byte) (*AnimationMetadata, error) {
	anim, err := formats.ParseWebP(data)
	if err != nil {
		return nil, newError(path, FormatWebP, err)
	}
	return animationFrom(anim), nil
}

func imageMetadata(path string, format Format, data []byte) (*ImageMetadata, error) {
	img, err := formats.ParseImage(string(format), data)
	if err != nil {
		return nil, newError(path, format, err)
	}
	return imageFrom(img), nil
}

// load checks, in order, that path is a regular file and that its extension
// belongs to one of accept, then reads it whole.
func load(path string, accept ...Format) ([]byte, error) {
	if _, err := stat(path); err != nil {
		return nil, err
	}
	format := FormatFromPath(path)
	if !slices.Contains(accept, format) {
		return nil, unsupported(path, format, accept...)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(path, format, fmt.Errorf("%w: %w", ErrIO, err))
	}
	return data, nil
}

func stat(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, newError(path, FormatFromPath(path), ErrNotFound)
	case err != nil:
		return nil, newError(path, FormatFromPath(path), fmt.Errorf("%w: %w", ErrIO, err))
	case !info.Mode().IsRegular():
		return nil, newError(path, FormatFromPath(path), fmt.Errorf("%w: not a regular file", ErrNotFound))
	}
	return info, nil
}

func unsupported(path string, got Format, accept ...Format) *Error {
	names := make([]string, 0, len(accept))
	for _, f := range accept {
		names = append(names, string(f))
	}
	ext := filepath.Ext(path)
	if ext == "" {
		ext = "no extension"
	}
	return newError(path, got, fmt.Errorf("%w: %s is not one of %s", ErrUnsupportedType, ext, strings.Join(names, ", ")))
}
