// Package listing turns extraction results into gallery listing entries.
//
// Choosing which files form a page, and serving the page, belong to the
// caller; this package only maps a page of names to entries.
package listing

import (
	"time"

	"imgmeta"
)

// Entry is one file of a gallery listing. Frames, DurationSeconds and
// FrameRate are set for WebP files only; Error replaces all metadata when
// extraction failed. LastModified is nil when the file could not be stat'ed.
type Entry struct {
	Name            string     `json:"name"`
	SizeBytes       *int64     `json:"size_bytes,omitempty"`
	Resolution      string     `json:"resolution,omitempty"`
	Frames          *uint      `json:"frames,omitempty"`
	DurationSeconds *float64   `json:"duration_seconds,omitempty"`
	FrameRate       *float64   `json:"frame_rate,omitempty"`
	LastModified    *time.Time `json:"last_modified,omitempty"`
	Error           string     `json:"error,omitempty"`
}

// Page is the JSON body of a listing response.
type Page struct {
	Files []Entry `json:"files"`
}

// FromResult maps a single extraction result to an entry. A zero modTime
// leaves LastModified unset.
func FromResult(name string, modTime time.Time, res imgmeta.Result) Entry {
	e := Entry{Name: name, LastModified: timePtr(modTime)}
	if res.Err != nil {
		e.Error = res.Err.Error()
		return e
	}
	switch {
	case res.Animation != nil:
		a := res.Animation
		size := a.FileSize
		frames := a.FrameCount
		seconds := float64(a.TotalDurationMs) / 1000
		rate := a.FrameRate
		e.SizeBytes = &size
		e.Resolution = a.Resolution()
		e.Frames = &frames
		e.DurationSeconds = &seconds
		e.FrameRate = &rate
	case res.Image != nil:
		size := res.Image.FileSize
		e.SizeBytes = &size
		e.Resolution = res.Image.Resolution()
	}
	return e
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
