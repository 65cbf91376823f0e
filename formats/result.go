package formats

// Image captures the dimensions read from a JPEG frame header or PNG IHDR chunk.
type Image struct {
	Width    uint
	Height   uint
	FileSize int64
}

// Animation captures what the WebP chunk walker found.
type Animation struct {
	FileSize       int64
	Width          uint
	Height         uint
	IsAnimated     bool
	FrameCount     uint
	FrameDurations []uint
	TotalDuration  uint
	FrameRate      float64
}

// finish derives the aggregate timing fields from the recorded frame durations.
func (a *Animation) finish() {
	var total uint
	for _, d := range a.FrameDurations {
		total += d
	}
	a.TotalDuration = total
	a.FrameRate = frameRate(total, a.FrameCount)
}

// frameRate is 1000 / average frame duration, or 0 when either is zero.
func frameRate(totalMs, frames uint) float64 {
	if frames == 0 {
		return 0
	}
	avg := float64(totalMs) / float64(frames)
	if avg <= 0 {
		return 0
	}
	return 1000 / avg
}
