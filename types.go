package imgmeta

import (
	"fmt"
	"time"

	"imgmeta/formats"
)

// Format represents a supported image format.
type Format string

const (
	FormatUnknown Format = ""
	FormatJPEG    Format = "JPEG"
	FormatPNG     Format = "PNG"
	FormatWebP    Format = "WebP"
)

// ImageMetadata is what the JPEG/PNG reader extracts.
type ImageMetadata struct {
	Width    uint  `json:"width"`
	Height   uint  `json:"height"`
	FileSize int64 `json:"file_size"`
}

// Resolution formats the dimensions as "WxH".
func (md ImageMetadata) Resolution() string {
	return resolution(md.Width, md.Height)
}

// AnimationMetadata is what the WebP chunk walker extracts. Width and Height
// are zero when the file carries neither a VP8X chunk nor a readable
// bitstream header.
type AnimationMetadata struct {
	FileSize        int64   `json:"file_size"`
	Width           uint    `json:"width"`
	Height          uint    `json:"height"`
	IsAnimated      bool    `json:"is_animated"`
	FrameCount      uint    `json:"frame_count"`
	FrameDurations  []uint  `json:"frame_durations"`
	TotalDurationMs uint    `json:"total_duration_ms"`
	FrameRate       float64 `json:"frame_rate"`
}

// Resolution formats the canvas dimensions as "WxH".
func (md AnimationMetadata) Resolution() string {
	return resolution(md.Width, md.Height)
}

// TotalDuration returns the summed frame durations as a time.Duration.
func (md AnimationMetadata) TotalDuration() time.Duration {
	return time.Duration(md.TotalDurationMs) * time.Millisecond
}

func resolution(w, h uint) string {
	return fmt.Sprintf("%dx%d", w, h)
}

func imageFrom(img *formats.Image) *ImageMetadata {
	return &ImageMetadata{Width: img.Width, Height: img.Height, FileSize: img.FileSize}
}

func animationFrom(a *formats.Animation) *AnimationMetadata {
	durations := a.FrameDurations
	if durations == nil {
		durations = []uint{}
	}
	return &AnimationMetadata{
		FileSize:        a.FileSize,
		Width:           a.Width,
		Height:          a.Height,
		IsAnimated:      a.IsAnimated,
		FrameCount:      a.FrameCount,
		FrameDurations:  durations,
		TotalDurationMs: a.TotalDuration,
		FrameRate:       a.FrameRate,
	}
}
