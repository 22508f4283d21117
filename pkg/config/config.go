// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/user/ffpp/pkg/orchestrator"
	"github.com/user/ffpp/pkg/video"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingInput  = errors.New("config: input path is required")
	ErrMissingOutput = errors.New("config: output path is required")
	ErrInvalidSize   = errors.New("config: width and height must be positive")
	ErrInvalidFrames = errors.New("config: invalid frame list")
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrUnknownScaler = errors.New("config: unknown scaler")
)

// Scaler backends.
const (
	// ScalerAuto uses libswscale when the FFmpeg libraries load and the Go converter otherwise.
	ScalerAuto = "auto"
	// ScalerFFmpeg requires libswscale.
	ScalerFFmpeg = "ffmpeg"
	// ScalerGo uses the pure Go converter.
	ScalerGo = "go"
)

// Config represents the full configuration for ffpp.
type Config struct {
	// Input/Output
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	// Source geometry; raw files carry no header
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Format string `yaml:"format"`
	FPSNum int    `yaml:"fps_num"`
	FPSDen int    `yaml:"fps_den"`

	// Filter
	Preset string `yaml:"preset"`
	PP     string `yaml:"pp"` // overrides Preset when set
	CPU    string `yaml:"cpu"`

	// Scaler picks the YUY2 converter: auto, ffmpeg or go.
	Scaler string `yaml:"scaler"`

	// Frames selects frames, e.g. "0-99,120". Empty means all.
	Frames string `yaml:"frames"`

	// Processing
	Workers       int `yaml:"workers"`
	ProgressEvery int `yaml:"progress_every"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // console, text or json
	Quiet     bool   `yaml:"quiet"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`

	// Summary is written when set; the extension picks the format.
	Summary string `yaml:"summary"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// Source
		Format: "yv12",
		FPSNum: 25,
		FPSDen: 1,

		// Filter
		Preset: string(PresetDefault),
		CPU:    "auto",
		Scaler: ScalerAuto,

		// Processing
		Workers:       runtime.NumCPU(),
		ProgressEvery: 100,

		// Logging
		LogLevel:  "info",
		LogFormat: "console",

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Spec returns the filter chain: PP when set, otherwise the preset's chain.
func (c Config) Spec() (string, error) {
	if c.PP != "" {
		return c.PP, nil
	}
	return PresetSpec(Preset(c.Preset))
}

// VideoInfo returns the source geometry. NumFrames is left for the clip to fill.
func (c Config) VideoInfo() (video.VideoInfo, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return video.VideoInfo{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	format, err := video.ParsePixelFormat(c.Format)
	if err != nil {
		return video.VideoInfo{}, err
	}
	return video.VideoInfo{
		Width:  c.Width,
		Height: c.Height,
		Format: format,
		FPSNum: c.FPSNum,
		FPSDen: c.FPSDen,
	}, nil
}

// Validate checks the fields needed to run.
func (c Config) Validate() error {
	if c.Input == "" {
		return ErrMissingInput
	}
	if c.Output == "" {
		return ErrMissingOutput
	}
	if _, err := c.VideoInfo(); err != nil {
		return err
	}
	if _, err := c.Spec(); err != nil {
		return err
	}
	switch c.Scaler {
	case "", ScalerAuto, ScalerFFmpeg, ScalerGo:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownScaler, c.Scaler)
	}
	return nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config for a clip
// described by vi, with the capabilities the filters will see.
func (c Config) ToOrchestratorConfig(vi video.VideoInfo, cpu video.CPUFlags) (orchestrator.Config, error) {
	spec, err := c.Spec()
	if err != nil {
		return orchestrator.Config{}, err
	}
	frames, err := ParseFrameList(c.Frames, vi.NumFrames)
	if err != nil {
		return orchestrator.Config{}, err
	}
	return orchestrator.Config{
		InputPath:     c.Input,
		OutputPath:    c.Output,
		Video:         vi,
		Spec:          spec,
		CPU:           cpu,
		Frames:        frames,
		ProgressEvery: c.ProgressEvery,
	}, nil
}

// ParseFrameList parses a comma separated list of frame indices and
// inclusive ranges against a clip of total frames. "a-" runs to the last
// frame. The order is kept and duplicates are allowed. An empty list
// returns nil, meaning every frame.
func ParseFrameList(s string, total int) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var frames []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		first, err := frameIndex(lo, total)
		if err != nil {
			return nil, err
		}
		last := first
		if isRange {
			if strings.TrimSpace(hi) == "" {
				last = total - 1
			} else if last, err = frameIndex(hi, total); err != nil {
				return nil, err
			}
		}
		if last < first {
			return nil, fmt.Errorf("%w: %q runs backwards", ErrInvalidFrames, part)
		}
		for n := first; n <= last; n++ {
			frames = append(frames, n)
		}
	}
	return frames, nil
}

func frameIndex(s string, total int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFrames, s)
	}
	if total > 0 && n >= total {
		return 0, fmt.Errorf("%w: frame %d beyond clip of %d frames", ErrInvalidFrames, n, total)
	}
	return n, nil
}
