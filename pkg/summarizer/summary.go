package summarizer

import "time"

// Summary contains all data collected during a run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time `yaml:"generated_at"`

	// Source clip
	Input InputInfo `yaml:"input"`

	// Filter configuration
	Filter FilterInfo `yaml:"filter"`

	// Written frames
	Output OutputInfo `yaml:"output"`

	// Timing results
	Timing TimingInfo `yaml:"timing"`
}

// InputInfo describes the source clip.
type InputInfo struct {
	Path   string  `yaml:"path"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Format string  `yaml:"format"`
	FPS    float64 `yaml:"fps,omitempty"`
	Frames int     `yaml:"frames"`
}

// FilterInfo describes the negotiated filter.
type FilterInfo struct {
	Spec          string   `yaml:"spec"`
	LumaFilters   []string `yaml:"luma_filters"`
	ChromaFilters []string `yaml:"chroma_filters"`
	CPU           string   `yaml:"cpu"`
	Flags         uint32   `yaml:"flags"`
	Workers       int      `yaml:"workers"`
	Scaler        string   `yaml:"scaler,omitempty"`
}

// OutputInfo describes what was written.
type OutputInfo struct {
	Path   string `yaml:"path"`
	Frames int    `yaml:"frames"`
	Bytes  int64  `yaml:"bytes"`
}

// TimingInfo contains timing measurements.
type TimingInfo struct {
	Wall        time.Duration `yaml:"wall"`
	FilterTotal time.Duration `yaml:"filter_total"`
	FilterMean  time.Duration `yaml:"filter_mean"`
	Fastest     time.Duration `yaml:"fastest"`
	Slowest     time.Duration `yaml:"slowest"`
	FPS         float64       `yaml:"fps"`
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithInput sets source clip information.
func (b *Builder) WithInput(input InputInfo) *Builder {
	b.summary.Input = input
	return b
}

// WithFilter sets filter information.
func (b *Builder) WithFilter(filter FilterInfo) *Builder {
	b.summary.Filter = filter
	return b
}

// WithOutput sets output information.
func (b *Builder) WithOutput(path string, frames int, bytes int64) *Builder {
	b.summary.Output = OutputInfo{
		Path:   path,
		Frames: frames,
		Bytes:  bytes,
	}
	return b
}

// WithTiming sets timing information. FPS is derived from the output frame count.
func (b *Builder) WithTiming(timing TimingInfo) *Builder {
	if timing.FPS == 0 && timing.Wall > 0 {
		timing.FPS = float64(b.summary.Output.Frames) / timing.Wall.Seconds()
	}
	b.summary.Timing = timing
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
