// Package output implements the stage that stores filtered frames.
package output

import (
	"context"
	"fmt"

	"github.com/user/ffpp/pkg/pipeline"
	"github.com/user/ffpp/pkg/ports"
)

// Stage writes processed frames to a FrameSink and, when debugging,
// dumps before/after images to a DebugSink. It is safe for concurrent use
// if the sinks are.
type Stage struct {
	frames ports.FrameSink
	debug  ports.DebugSink
	logger ports.Logger
}

// NewStage creates a new output stage.
func NewStage(frames ports.FrameSink, debug ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		frames: frames,
		debug:  debug,
		logger: logger.WithComponent("output"),
	}
}

// Execute stores one processed frame.
func (s *Stage) Execute(ctx context.Context, in pipeline.ProcessedFrame) (pipeline.WriteResult, error) {
	if in.Output == nil {
		return pipeline.WriteResult{}, fmt.Errorf("frame %d: no output", in.Index)
	}
	if err := s.frames.WriteFrame(in.Index, in.Output); err != nil {
		return pipeline.WriteResult{}, fmt.Errorf("write frame %d: %w", in.Index, err)
	}

	if s.debug.Enabled() {
		s.saveDebug(in)
	}

	return pipeline.WriteResult{Index: in.Index, Bytes: in.Output.Size()}, nil
}

// saveDebug never fails the run; debug output is best effort.
func (s *Stage) saveDebug(in pipeline.ProcessedFrame) {
	after := in.Output.ToImage()
	if err := s.debug.SaveOutputFrame(in.Index, after); err != nil {
		s.logger.Warn("Failed to save output frame %d: %v", in.Index, err)
	}

	if in.Source == nil {
		return
	}
	before := in.Source.ToImage()
	if err := s.debug.SaveSourceFrame(in.Index, before); err != nil {
		s.logger.Warn("Failed to save source frame %d: %v", in.Index, err)
	}
	if err := s.debug.SaveComparison(in.Index, before, after); err != nil {
		s.logger.Warn("Failed to save comparison %d: %v", in.Index, err)
	}
}

var _ pipeline.Stage[pipeline.ProcessedFrame, pipeline.WriteResult] = (*Stage)(nil)
