package imgmeta

import (
	"errors"
	"fmt"

	"imgmeta/formats"
)

// Kind classifies why an extraction failed.
type Kind int

const (
	KindUnknown Kind = iota
	NotFound
	UnsupportedType
	Truncated
	InvalidHeader
	InvalidStructure
	CorruptChunk
	ResolutionNotFound
	IOError
)

var kindNames = map[Kind]string{
	KindUnknown:        "Unknown",
	NotFound:           "NotFound",
	UnsupportedType:    "UnsupportedType",
	Truncated:          "Truncated",
	InvalidHeader:      "InvalidHeader",
	InvalidStructure:   "InvalidStructure",
	CorruptChunk:       "CorruptChunk",
	ResolutionNotFound: "ResolutionNotFound",
	IOError:            "IOError",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var (
	// ErrNotFound is returned when the path does not resolve to a regular file.
	ErrNotFound = errors.New("imgmeta: file not found")

	// ErrUnsupportedType is returned when the file extension is outside the
	// set handled by the requested reader.
	ErrUnsupportedType = errors.New("imgmeta: unsupported file type")

	// ErrIO wraps an underlying read failure.
	ErrIO = errors.New("imgmeta: I/O error")

	// Structural errors reported by the format readers.
	ErrTruncated          = formats.ErrTruncated
	ErrInvalidHeader      = formats.ErrInvalidHeader
	ErrInvalidStructure   = formats.ErrInvalidStructure
	ErrCorruptChunk       = formats.ErrCorruptChunk
	ErrResolutionNotFound = formats.ErrResolutionNotFound
)

var kindSentinels = []struct {
	kind Kind
	err  error
}{
	{NotFound, ErrNotFound},
	{UnsupportedType, ErrUnsupportedType},
	{UnsupportedType, formats.ErrUnsupportedFormat},
	{IOError, ErrIO},
	{Truncated, ErrTruncated},
	{InvalidHeader, ErrInvalidHeader},
	{InvalidStructure, ErrInvalidStructure},
	{CorruptChunk, ErrCorruptChunk},
	{ResolutionNotFound, ErrResolutionNotFound},
}

// Error describes a failed extraction for a single file.
type Error struct {
	Kind   Kind
	Path   string
	Format Format
	Err    error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of err, or KindUnknown when err is nil or did not
// come from this package.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return kindFromSentinel(err)
}

func kindFromSentinel(err error) Kind {
	for _, ks := range kindSentinels {
		if errors.Is(err, ks.err) {
			return ks.kind
		}
	}
	return KindUnknown
}

// newError wraps err with the path and format it was produced for.
func newError(path string, format Format, err error) *Error {
	return &Error{Kind: kindFromSentinel(err), Path: path, Format: format, Err: err}
}
