package formats

import "fmt"

// ParseImage dispatches data to the still-image reader named by format,
// "JPEG" or "PNG".
func ParseImage(format string, data []byte) (*Image, error) {
	switch format {
	case "JPEG":
		return ParseJPEG(data)
	case "PNG":
		return ParsePNG(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
