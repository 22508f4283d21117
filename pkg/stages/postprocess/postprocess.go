// Package postprocess implements the stage that filters one source frame.
package postprocess

import (
	"context"
	"fmt"
	"time"

	"github.com/user/ffpp/pkg/pipeline"
	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

// Processor filters a frame into a newly allocated one.
// *ffpp.Filter satisfies it.
type Processor interface {
	Process(src *video.Frame) (*video.Frame, error)
}

// Stage reads a frame from the source clip and runs it through a Processor.
// A Stage owns its Processor and must not be shared between goroutines.
type Stage struct {
	source    ports.Clip
	processor Processor
	logger    ports.Logger
}

// NewStage creates a new postprocess stage.
func NewStage(source ports.Clip, processor Processor, logger ports.Logger) *Stage {
	return &Stage{
		source:    source,
		processor: processor,
		logger:    logger.WithComponent("postprocess"),
	}
}

// Execute fetches and filters the requested frame.
func (s *Stage) Execute(ctx context.Context, req pipeline.FrameRequest) (pipeline.ProcessedFrame, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.ProcessedFrame{}, err
	}

	src, err := s.source.GetFrame(req.Index)
	if err != nil {
		return pipeline.ProcessedFrame{}, fmt.Errorf("read frame %d: %w", req.Index, err)
	}

	start := time.Now()
	out, err := s.processor.Process(src)
	elapsed := time.Since(start)
	if err != nil {
		return pipeline.ProcessedFrame{}, fmt.Errorf("postprocess frame %d: %w", req.Index, err)
	}

	s.logger.Debug("Frame %d filtered in %s", req.Index, elapsed)

	return pipeline.ProcessedFrame{
		Index:   req.Index,
		Source:  src,
		Output:  out,
		Elapsed: elapsed,
	}, nil
}

var _ pipeline.Stage[pipeline.FrameRequest, pipeline.ProcessedFrame] = (*Stage)(nil)
