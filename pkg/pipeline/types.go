package pipeline

import (
	"time"

	"github.com/user/ffpp/pkg/video"
)

// =============================================================================
// Postprocess Stage Types
// =============================================================================

// FrameRequest asks for one frame of the source clip.
type FrameRequest struct {
	Index int
}

// ProcessedFrame is a source frame together with its filtered result.
type ProcessedFrame struct {
	Index   int
	Source  *video.Frame
	Output  *video.Frame
	Elapsed time.Duration // time spent in the filter, excluding the read
}

// =============================================================================
// Output Stage Types
// =============================================================================

// WriteResult reports a frame handed to the frame sink.
type WriteResult struct {
	Index int
	Bytes int
}

// =============================================================================
// Timing
// =============================================================================

// TimingInfo aggregates per-frame filter timings.
type TimingInfo struct {
	Frames  int           `json:"frames"`
	Total   time.Duration `json:"total"`
	Fastest time.Duration `json:"fastest"`
	Slowest time.Duration `json:"slowest"`
}

// Add records one frame.
func (t *TimingInfo) Add(d time.Duration) {
	if t.Frames == 0 || d < t.Fastest {
		t.Fastest = d
	}
	if d > t.Slowest {
		t.Slowest = d
	}
	t.Frames++
	t.Total += d
}

// Merge folds o into t.
func (t *TimingInfo) Merge(o TimingInfo) {
	if o.Frames == 0 {
		return
	}
	if t.Frames == 0 || o.Fastest < t.Fastest {
		t.Fastest = o.Fastest
	}
	if o.Slowest > t.Slowest {
		t.Slowest = o.Slowest
	}
	t.Frames += o.Frames
	t.Total += o.Total
}

// Mean returns the average time per frame.
func (t TimingInfo) Mean() time.Duration {
	if t.Frames == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Frames)
}
