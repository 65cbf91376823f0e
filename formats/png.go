package formats

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	pngChunkHeaderSize = 8 // BE32 length + type
	pngCRCSize         = 4
)

// ParsePNG walks PNG chunks until IHDR and returns the dimensions it declares.
func ParsePNG(data []byte) (*Image, error) {
	if len(data) < len(pngSignature) {
		return nil, fmt.Errorf("%w: %d bytes is too small to be a valid PNG", ErrTruncated, len(data))
	}
	if !bytes.Equal(data[:len(pngSignature)], pngSignature) {
		return nil, fmt.Errorf("%w: missing PNG signature%s", ErrInvalidHeader, looksLike(data))
	}

	size := uint64(len(data))
	for pos := uint64(len(pngSignature)); pos+pngChunkHeaderSize <= size; {
		chunkLen := uint64(binary.BigEndian.Uint32(data[pos : pos+4]))
		chunkType := string(data[pos+4 : pos+8])

		if chunkType == "IHDR" {
			if pos+16 > size {
				return nil, fmt.Errorf("%w: IHDR at offset %d is cut short", ErrInvalidStructure, pos)
			}
			width := uint(binary.BigEndian.Uint32(data[pos+8 : pos+12]))
			height := uint(binary.BigEndian.Uint32(data[pos+12 : pos+16]))
			if width == 0 || height == 0 {
				return nil, fmt.Errorf("%w: IHDR declares %dx%d", ErrInvalidStructure, width, height)
			}
			return &Image{Width: width, Height: height, FileSize: int64(size)}, nil
		}

		next := pos + pngChunkHeaderSize + chunkLen + pngCRCSize
		if next > size {
			return nil, fmt.Errorf("%w: chunk %q at offset %d declares %d bytes, %d remain",
				ErrInvalidStructure, chunkType, pos, chunkLen, size-pos-pngChunkHeaderSize)
		}
		pos = next
	}

	return nil, fmt.Errorf("%w: no IHDR chunk in PNG", ErrResolutionNotFound)
}
