package formats

import (
	"encoding/binary"
	"fmt"
)

// JPEG marker codes.
const (
	markerPrefix = 0xFF
	markerSOF0   = 0xC0 // baseline
	markerSOF2   = 0xC2 // progressive
	markerRST0   = 0xD0
	markerRST7   = 0xD7
	markerEOI    = 0xD9
	markerTEM    = 0x01
)

// sofDimensionsEnd is the offset, from a frame marker, one past the width field:
// marker(2) + length(2) + precision(1) + height(2) + width(2).
const sofDimensionsEnd = 9

// ParseJPEG walks JPEG marker segments until the baseline or progressive
// frame header and returns the dimensions it declares.
//
// Other SOF variants are not recognised; a file carrying only those yields
// ErrResolutionNotFound.
func ParseJPEG(data []byte) (*Image, error) {
	if len(data) < len(jpegSOI) {
		return nil, fmt.Errorf("%w: %d bytes is too small to be a valid JPEG", ErrTruncated, len(data))
	}
	if data[0] != jpegSOI[0] || data[1] != jpegSOI[1] {
		return nil, fmt.Errorf("%w: missing JPEG start-of-image marker%s", ErrInvalidHeader, looksLike(data))
	}

	size := len(data)
	pos := 2
	for pos < size {
		if data[pos] != markerPrefix {
			return nil, fmt.Errorf("%w: expected marker at offset %d, found 0x%02X", ErrInvalidStructure, pos, data[pos])
		}
		if pos+2 > size {
			return nil, fmt.Errorf("%w: marker at offset %d is cut short", ErrInvalidStructure, pos)
		}

		marker := data[pos+1]
		switch {
		case marker == markerEOI:
			return nil, fmt.Errorf("%w: reached end of image before a SOF0/SOF2 frame header", ErrResolutionNotFound)
		case marker == markerTEM || (marker >= markerRST0 && marker <= markerRST7):
			// Standalone markers carry no length field.
			pos += 2
			continue
		}
		if pos+4 > size {
			return nil, fmt.Errorf("%w: marker segment at offset %d is cut short", ErrInvalidStructure, pos)
		}

		if marker == markerSOF0 || marker == markerSOF2 {
			if pos+sofDimensionsEnd > size {
				return nil, fmt.Errorf("%w: frame header at offset %d is cut short", ErrInvalidStructure, pos)
			}
			height := uint(binary.BigEndian.Uint16(data[pos+5 : pos+7]))
			width := uint(binary.BigEndian.Uint16(data[pos+7 : pos+9]))
			if width == 0 || height == 0 {
				return nil, fmt.Errorf("%w: frame header declares %dx%d", ErrInvalidStructure, width, height)
			}
			return &Image{Width: width, Height: height, FileSize: int64(size)}, nil
		}

		// The length field counts itself but not the marker.
		segmentLen := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		next := pos + 2 + segmentLen
		if next > size {
			return nil, fmt.Errorf("%w: segment 0x%02X at offset %d declares %d bytes past the end",
				ErrInvalidStructure, marker, pos, next-size)
		}
		pos = next
	}

	return nil, fmt.Errorf("%w: no SOF0/SOF2 frame header in JPEG", ErrResolutionNotFound)
}
