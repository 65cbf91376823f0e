package imgmeta

// Result is the outcome of extracting one file: Image for JPEG/PNG,
// Animation for WebP, or Err. Exactly one of the three is set.
type Result struct {
	Path      string
	Format    Format
	Image     *ImageMetadata
	Animation *AnimationMetadata
	Err       error
}

// OK reports whether the result carries metadata.
func (r Result) OK() bool {
	return r.Err == nil && (r.Image != nil || r.Animation != nil)
}

// Kind returns the failure kind, or KindUnknown for a successful result.
func (r Result) Kind() Kind {
	return KindOf(r.Err)
}

// FileSize returns the byte length of the parsed file, or 0 on error.
func (r Result) FileSize() int64 {
	switch {
	case r.Err != nil:
		return 0
	case r.Animation != nil:
		return r.Animation.FileSize
	case r.Image != nil:
		return r.Image.FileSize
	}
	return 0
}

// Resolution returns "WxH", or an empty string on error.
func (r Result) Resolution() string {
	switch {
	case r.Err != nil:
		return ""
	case r.Animation != nil:
		return r.Animation.Resolution()
	case r.Image != nil:
		return r.Image.Resolution()
	}
	return ""
}

// Map flattens the result into a key/value form using the same keys as the
// JSON encoding of the metadata structs. Errors become "error" and "kind".
func (r Result) Map() map[string]any {
	if r.Err != nil {
		return map[string]any{
			"error": r.Err.Error(),
			"kind":  r.Kind().String(),
		}
	}
	if a := r.Animation; a != nil {
		durations := make([]uint, len(a.FrameDurations))
		copy(durations, a.FrameDurations)
		return map[string]any{
			"file_size":         a.FileSize,
			"width":             a.Width,
			"height":            a.Height,
			"is_animated":       a.IsAnimated,
			"frame_count":       a.FrameCount,
			"frame_durations":   durations,
			"total_duration_ms": a.TotalDurationMs,
			"frame_rate":        a.FrameRate,
		}
	}
	if i := r.Image; i != nil {
		return map[string]any{
			"width":     i.Width,
			"height":    i.Height,
			"file_size": i.FileSize,
		}
	}
	return map[string]any{}
}
