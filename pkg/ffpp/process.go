package ffpp

import (
	"fmt"

	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

// Process postprocesses src into dst. Both frames must have the geometry the
// state was built for. Each call is independent of every other call.
//
// Process panics if s has been released.
func Process(s *State, src, dst *video.Frame) error {
	s.mustBeLive()

	if err := s.checkGeometry("source", src); err != nil {
		return err
	}
	if err := s.checkGeometry("destination", dst); err != nil {
		return err
	}

	switch l := s.layout.(type) {
	case planarState:
		return s.postprocess(src.Planes, dst.Planes)

	case *packedState:
		if _, err := s.libs.Scaler.Convert(l.toPlanar, src.Planes, 0, s.height, l.input.Planes); err != nil {
			return fmt.Errorf("convert %s to %s: %w", video.FormatYUY2, video.FormatYUV422P, err)
		}
		if err := s.postprocess(l.input.Planes, l.output.Planes); err != nil {
			return err
		}
		if _, err := s.libs.Scaler.Convert(l.fromPlanar, l.output.Planes, 0, s.height, dst.Planes); err != nil {
			return fmt.Errorf("convert %s to %s: %w", video.FormatYUV422P, video.FormatYUY2, err)
		}
		return nil

	default:
		panic(fmt.Sprintf("ffpp: unexpected layout state %T", l))
	}
}

// postprocess runs one library call over three planes. No quantizer table is
// available at this point, so the library falls back to its default.
func (s *State) postprocess(src, dst []video.Plane) error {
	if err := s.libs.Postproc.Postprocess(src, dst, s.width, s.height, ports.QPTable{}, s.mode, s.ctx); err != nil {
		return fmt.Errorf("postprocess: %w", err)
	}
	return nil
}
