package ffpp

import (
	"fmt"

	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

// Filter is a clip that postprocesses the frames of its child clip.
// It is not safe for concurrent use; independent Filters are.
type Filter struct {
	child  ports.Clip
	env    ports.Environment
	vi     video.VideoInfo
	state  *State
	logger ports.Logger
}

// New builds a filter over child. The CPU capabilities come from env, which
// also allocates every output frame.
func New(child ports.Clip, env ports.Environment, libs Libraries, spec string, log ports.Logger) (*Filter, error) {
	vi := child.Info()
	log = log.WithComponent("ffpp")

	state, err := Build(libs, vi, env.CPUFlags(), spec)
	if err != nil {
		return nil, err
	}

	log.Debug("Postprocess context created: %dx%d %s, mode %s, flags 0x%08x",
		vi.Width, vi.Height, vi.Format, state.Mode(), uint32(state.Flags()))

	return &Filter{
		child:  child,
		env:    env,
		vi:     vi,
		state:  state,
		logger: log,
	}, nil
}

// Info returns the child's VideoInfo; postprocessing keeps size and layout.
func (f *Filter) Info() video.VideoInfo {
	return f.vi
}

// State returns the negotiated pipeline state.
func (f *Filter) State() *State {
	return f.state
}

// GetFrame fetches frame n from the child and postprocesses it.
func (f *Filter) GetFrame(n int) (*video.Frame, error) {
	src, err := f.child.GetFrame(n)
	if err != nil {
		return nil, fmt.Errorf("get source frame %d: %w", n, err)
	}
	dst, err := f.Process(src)
	if err != nil {
		return nil, fmt.Errorf("frame %d: %w", n, err)
	}
	return dst, nil
}

// Process postprocesses src into a newly allocated frame.
func (f *Filter) Process(src *video.Frame) (*video.Frame, error) {
	dst, err := f.env.NewVideoFrame(f.vi)
	if err != nil {
		return nil, fmt.Errorf("allocate output frame: %w", err)
	}
	if err := Process(f.state, src, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// Close releases the postprocess context, mode, converters and scratch
// pictures. It is safe to call more than once.
func (f *Filter) Close() error {
	if f.state.Released() {
		return nil
	}
	f.state.Release()
	f.logger.Debug("Postprocess context released")
	return nil
}

var _ ports.Clip = (*Filter)(nil)
