package ffpp

import (
	"fmt"

	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

// Libraries bundles the capability providers a pipeline is built on.
type Libraries struct {
	Postproc ports.Postprocessor
	Scaler   ports.Scaler
}

// State is everything Build acquired for one clip. It is immutable after Build
// apart from the scratch memory the libraries write into during Process.
type State struct {
	libs   Libraries
	width  int
	height int
	format video.PixelFormat
	flags  ports.PPFlags

	mode ports.PostprocMode
	ctx  ports.PostprocContext

	layout layoutState

	resources *arena
	released  bool
}

// layoutState is either planarState or *packedState.
type layoutState interface {
	formatClass() ports.PPFlags
}

// planarState needs nothing beyond the postprocess context: YV12 planes are
// handed to the library directly.
type planarState struct{}

func (planarState) formatClass() ports.PPFlags { return ports.PPFormat420 }

// packedState bridges YUY2 through planar 4:2:2 scratch pictures.
type packedState struct {
	toPlanar   ports.Converter
	fromPlanar ports.Converter
	input      *video.Frame // YUV422P copy of the source frame
	output     *video.Frame // YUV422P postprocessed frame
}

func (*packedState) formatClass() ports.PPFlags { return ports.PPFormat422 }

// Format returns the layout the state accepts.
func (s *State) Format() video.PixelFormat { return s.format }

// Size returns the frame dimensions the state accepts.
func (s *State) Size() (width, height int) { return s.width, s.height }

// Flags returns the combined CPU and format flags given to the postprocess context.
func (s *State) Flags() ports.PPFlags { return s.flags }

// Mode returns the parsed filter chain.
func (s *State) Mode() ports.PostprocMode { return s.mode }

// Resources returns how many library resources the state currently owns.
func (s *State) Resources() int { return s.resources.size() }

// Release frees every resource owned by the state. Calling it again is a no-op.
func (s *State) Release() {
	if s.released {
		return
	}
	s.released = true
	s.resources.free()
}

// Released reports whether Release has been called.
func (s *State) Released() bool { return s.released }

func (s *State) mustBeLive() {
	if s.released {
		panic("ffpp: pipeline used after teardown")
	}
}

func (s *State) checkGeometry(role string, f *video.Frame) error {
	if f == nil {
		return fmt.Errorf("%w: %s frame is nil", ErrDimensionMismatch, role)
	}
	if f.Width != s.width || f.Height != s.height || f.Format != s.format {
		return fmt.Errorf("%w: %s frame is %dx%d %s, filter expects %dx%d %s",
			ErrDimensionMismatch, role, f.Width, f.Height, f.Format, s.width, s.height, s.format)
	}
	if len(f.Planes) != s.format.NumPlanes() {
		return fmt.Errorf("%w: %s frame has %d planes, %s needs %d",
			ErrDimensionMismatch, role, len(f.Planes), s.format, s.format.NumPlanes())
	}
	for i, p := range f.Planes {
		rowBytes, rows := s.format.PlaneDims(i, s.width, s.height)
		if err := p.Holds(rowBytes, rows); err != nil {
			return fmt.Errorf("%w: %s plane %d: %w", ErrDimensionMismatch, role, i, err)
		}
	}
	return nil
}
