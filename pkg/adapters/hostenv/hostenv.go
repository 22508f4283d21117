// Package hostenv is the frame-serving host's runtime for standalone runs:
// it reports CPU capabilities and allocates output frames.
package hostenv

import (
	"sync/atomic"

	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

// DefaultAlign is the stride alignment of frames from NewVideoFrame.
const DefaultAlign = 32

// Env implements ports.Environment.
type Env struct {
	flags     video.CPUFlags
	align     int
	allocated atomic.Int64
}

// Option configures an Env.
type Option func(*Env)

// WithAlign sets the stride alignment of allocated frames.
func WithAlign(align int) Option {
	return func(e *Env) {
		if align > 0 {
			e.align = align
		}
	}
}

// New creates an environment reporting flags.
func New(flags video.CPUFlags, opts ...Option) *Env {
	e := &Env{flags: flags, align: DefaultAlign}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Env) CPUFlags() video.CPUFlags {
	return e.flags
}

// NewVideoFrame allocates a zeroed frame matching vi.
func (e *Env) NewVideoFrame(vi video.VideoInfo) (*video.Frame, error) {
	f, err := video.NewFrame(vi.Format, vi.Width, vi.Height, e.align)
	if err != nil {
		return nil, err
	}
	e.allocated.Add(1)
	return f, nil
}

// Allocated returns how many frames have been allocated.
func (e *Env) Allocated() int {
	return int(e.allocated.Load())
}

var _ ports.Environment = (*Env)(nil)
