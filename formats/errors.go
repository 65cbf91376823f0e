package formats

import "errors"

var (
	// ErrTruncated indicates the buffer is shorter than the format's fixed header.
	ErrTruncated = errors.New("formats: truncated data")

	// ErrInvalidHeader indicates a magic signature or start marker mismatch.
	ErrInvalidHeader = errors.New("formats: invalid header")

	// ErrInvalidStructure indicates a malformed marker byte or a segment that
	// runs past the end of the buffer.
	ErrInvalidStructure = errors.New("formats: invalid structure")

	// ErrCorruptChunk indicates a RIFF chunk whose declared length exceeds the
	// remaining buffer.
	ErrCorruptChunk = errors.New("formats: corrupt chunk")

	// ErrResolutionNotFound is returned when a well-formed container holds no
	// frame header or IHDR chunk.
	ErrResolutionNotFound = errors.New("formats: resolution not found")

	// ErrUnsupportedFormat is returned when a parser is not available.
	ErrUnsupportedFormat = errors.New("formats: unsupported format")
)
