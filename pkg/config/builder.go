package config

// Builder provides a fluent interface for building Config.
type Builder struct {
	config Config
}

// NewBuilder creates a new Builder with default values.
func NewBuilder() *Builder {
	return &Builder{config: Defaults()}
}

// From creates a Builder starting from cfg, e.g. a loaded file.
func From(cfg Config) *Builder {
	return &Builder{config: cfg}
}

// Build returns the final Config, applying constraints and validation.
func (b *Builder) Build() (Config, error) {
	cfg := b.config

	// Enforce at least one worker
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	if cfg.FPSDen <= 0 {
		cfg.FPSNum, cfg.FPSDen = 0, 0
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WithInput sets the raw input path.
func (b *Builder) WithInput(path string) *Builder {
	b.config.Input = path
	return b
}

// WithOutput sets the raw output path.
func (b *Builder) WithOutput(path string) *Builder {
	b.config.Output = path
	return b
}

// WithSize sets the frame dimensions.
func (b *Builder) WithSize(width, height int) *Builder {
	b.config.Width = width
	b.config.Height = height
	return b
}

// WithFormat sets the pixel format name (yv12, yuy2).
func (b *Builder) WithFormat(format string) *Builder {
	b.config.Format = format
	return b
}

// WithFrameRate sets the frame rate as a fraction.
func (b *Builder) WithFrameRate(num, den int) *Builder {
	b.config.FPSNum = num
	b.config.FPSDen = den
	return b
}

// WithPreset selects a filter preset. An explicit chain set with WithSpec wins.
func (b *Builder) WithPreset(p Preset) *Builder {
	b.config.Preset = string(p)
	return b
}

// WithSpec sets the filter chain, e.g. "hb:a,vb:a,dr:a".
func (b *Builder) WithSpec(spec string) *Builder {
	b.config.PP = spec
	return b
}

// WithCPU sets the capability list: "auto", "none" or names like "mmx,sse2".
func (b *Builder) WithCPU(cpu string) *Builder {
	b.config.CPU = cpu
	return b
}

// WithScaler sets the YUY2 converter backend: "auto", "ffmpeg" or "go".
func (b *Builder) WithScaler(scaler string) *Builder {
	b.config.Scaler = scaler
	return b
}

// WithFrames sets the frame list, e.g. "0-99,120".
func (b *Builder) WithFrames(frames string) *Builder {
	b.config.Frames = frames
	return b
}

// WithWorkers sets the number of parallel filter instances.
// Values below 1 will be forced to 1.
func (b *Builder) WithWorkers(n int) *Builder {
	b.config.Workers = n
	return b
}

// WithDebug enables debug output to dir.
func (b *Builder) WithDebug(enabled bool, dir string) *Builder {
	b.config.Debug = enabled
	if dir != "" {
		b.config.DebugDir = dir
	}
	return b
}

// WithSummary sets the summary output path.
func (b *Builder) WithSummary(path string) *Builder {
	b.config.Summary = path
	return b
}

// WithLogging sets the log level and format.
func (b *Builder) WithLogging(level, format string, quiet bool) *Builder {
	if level != "" {
		b.config.LogLevel = level
	}
	if format != "" {
		b.config.LogFormat = format
	}
	b.config.Quiet = quiet
	return b
}
