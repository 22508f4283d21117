package video

// VideoInfo describes a clip: geometry, layout and timing.
type VideoInfo struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Format    PixelFormat `json:"format"`
	FPSNum    int         `json:"fpsNum,omitempty"`
	FPSDen    int         `json:"fpsDen,omitempty"`
	NumFrames int         `json:"numFrames"`
}

// FrameSize returns the size in bytes of one tightly packed frame.
func (vi VideoInfo) FrameSize() int {
	size := 0
	for p := 0; p < vi.Format.NumPlanes(); p++ {
		w, h := vi.Format.PlaneDims(p, vi.Width, vi.Height)
		size += w * h
	}
	return size
}

// FPS returns the frame rate as a float, or 0 when the rate is unset.
func (vi VideoInfo) FPS() float64 {
	if vi.FPSDen == 0 {
		return 0
	}
	return float64(vi.FPSNum) / float64(vi.FPSDen)
}
