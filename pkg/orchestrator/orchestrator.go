// Package orchestrator coordinates the pipeline stages over a frame range.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/user/ffpp/pkg/pipeline"
	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

// ErrNoWorkers is returned when Run is given no postprocess stages.
var ErrNoWorkers = errors.New("orchestrator: no postprocess stages")

// Config contains all configuration for a run.
type Config struct {
	// Input
	InputPath  string
	OutputPath string
	Video      video.VideoInfo

	// Filter
	Spec string
	CPU  video.CPUFlags

	// Frames lists the frame indices to process. Empty means every frame.
	Frames []int

	// ProgressEvery logs progress after this many frames. Zero disables it.
	ProgressEvery int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Spec:          "de",
		ProgressEvery: 100,
	}
}

// ProcessStage is the per-worker postprocess stage.
type ProcessStage = pipeline.Stage[pipeline.FrameRequest, pipeline.ProcessedFrame]

// OutputStage stores processed frames.
type OutputStage = pipeline.Stage[pipeline.ProcessedFrame, pipeline.WriteResult]

// Orchestrator fans frame requests out to one postprocess stage per worker
// and feeds the results, in completion order, to the output stage.
type Orchestrator struct {
	processStages []ProcessStage
	outputStage   OutputStage
	sink          ports.DebugSink
	logger        ports.Logger
}

// New creates a new Orchestrator. Each process stage is driven by exactly one
// goroutine, so stages holding stateful filters need not be thread-safe.
func New(
	processStages []ProcessStage,
	outputStage OutputStage,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		processStages: processStages,
		outputStage:   outputStage,
		sink:          sink,
		logger:        logger,
	}
}

// Run processes the configured frames and returns the run statistics.
// The first stage error cancels the remaining work.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	if len(o.processStages) == 0 {
		return RunResult{}, ErrNoWorkers
	}

	frames := config.Frames
	if len(frames) == 0 {
		frames = make([]int, config.Video.NumFrames)
		for i := range frames {
			frames[i] = i
		}
	}

	o.logger.Info(l10n.T("Starting postprocessing"))
	o.logger.Info(l10n.F("Processing %d frames with %d workers", len(frames), len(o.processStages)))

	start := time.Now()
	written, timing, bytes, err := o.execute(ctx, config, frames)
	wall := time.Since(start)
	if err != nil {
		o.logger.Error(l10n.F("Postprocessing failed: %s", err))
		return RunResult{}, err
	}

	result := RunResult{
		InputPath:  config.InputPath,
		OutputPath: config.OutputPath,
		Video:      config.Video,
		Spec:       config.Spec,
		CPU:        config.CPU,
		Workers:    len(o.processStages),
		Frames:     written,
		Bytes:      bytes,
		Wall:       wall,
		Filter:     timing,
	}

	o.logger.Info(l10n.F("Postprocessing completed: %d frames in %s", len(written), wall.Round(time.Millisecond)))

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(result, "", "  "); err == nil {
			if err := o.sink.SaveRunJSON(data); err != nil {
				o.logger.Warn(l10n.F("Failed to save run metadata: %s", err))
			}
		}
	}

	return result, nil
}

func (o *Orchestrator) execute(parent context.Context, config Config, frames []int) ([]int, pipeline.TimingInfo, int64, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	jobs := make(chan int)
	results := make(chan pipeline.ProcessedFrame, len(o.processStages))
	errChan := make(chan error, len(o.processStages)+1)

	// Start workers
	var wg sync.WaitGroup
	for _, stage := range o.processStages {
		wg.Add(1)
		go o.worker(ctx, cancel, &wg, stage, jobs, results, errChan)
	}

	// Send jobs
	go func() {
		defer close(jobs)
		for _, n := range frames {
			select {
			case jobs <- n:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Wait for workers to finish
	go func() {
		wg.Wait()
		close(results)
	}()

	var (
		written []int
		timing  pipeline.TimingInfo
		bytes   int64
	)
	for frame := range results {
		if ctx.Err() != nil {
			continue
		}
		res, err := o.outputStage.Execute(ctx, frame)
		if err != nil {
			errChan <- fmt.Errorf("output stage: %w", err)
			cancel()
			continue
		}
		written = append(written, res.Index)
		bytes += int64(res.Bytes)
		timing.Add(frame.Elapsed)

		if config.ProgressEvery > 0 && len(written)%config.ProgressEvery == 0 {
			o.logger.Info(l10n.F("Processed %d/%d frames", len(written), len(frames)))
		}
	}

	close(errChan)
	if err := <-errChan; err != nil {
		return nil, pipeline.TimingInfo{}, 0, err
	}
	if err := parent.Err(); err != nil {
		return nil, pipeline.TimingInfo{}, 0, err
	}

	sort.Ints(written)
	return written, timing, bytes, nil
}

// worker drives one process stage until jobs run out or the run is cancelled.
func (o *Orchestrator) worker(
	ctx context.Context,
	cancel context.CancelFunc,
	wg *sync.WaitGroup,
	stage ProcessStage,
	jobs <-chan int,
	results chan<- pipeline.ProcessedFrame,
	errChan chan<- error,
) {
	defer wg.Done()

	for n := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frame, err := stage.Execute(ctx, pipeline.FrameRequest{Index: n})
		if err != nil {
			if ctx.Err() == nil {
				errChan <- fmt.Errorf("postprocess stage: %w", err)
				cancel()
			}
			return
		}

		select {
		case results <- frame:
		case <-ctx.Done():
			return
		}
	}
}

// RunResult contains the results of a run for summary generation.
type RunResult struct {
	InputPath  string          `json:"input"`
	OutputPath string          `json:"output"`
	Video      video.VideoInfo `json:"video"`
	Spec       string          `json:"spec"`
	CPU        video.CPUFlags  `json:"cpu"`
	Workers    int             `json:"workers"`

	// Frames lists the written frame indices in ascending order.
	Frames []int `json:"frames"`
	Bytes  int64 `json:"bytes"`

	Wall   time.Duration       `json:"wall"`
	Filter pipeline.TimingInfo `json:"filter"`
}

// FPS returns the overall throughput in frames per second.
func (r RunResult) FPS() float64 {
	if r.Wall <= 0 {
		return 0
	}
	return float64(len(r.Frames)) / r.Wall.Seconds()
}
