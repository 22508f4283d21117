// Package main provides the CLI entry point for ffpp.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/ffpp/pkg/adapters/cpucaps"
	"github.com/user/ffpp/pkg/adapters/ffmpegscale"
	"github.com/user/ffpp/pkg/adapters/filesink"
	"github.com/user/ffpp/pkg/adapters/ggrenderer"
	"github.com/user/ffpp/pkg/adapters/hostenv"
	"github.com/user/ffpp/pkg/adapters/logger"
	"github.com/user/ffpp/pkg/adapters/nullsink"
	"github.com/user/ffpp/pkg/adapters/osfilesystem"
	"github.com/user/ffpp/pkg/adapters/postproc"
	"github.com/user/ffpp/pkg/adapters/rawclip"
	"github.com/user/ffpp/pkg/adapters/swscale"
	"github.com/user/ffpp/pkg/config"
	"github.com/user/ffpp/pkg/ffpp"
	"github.com/user/ffpp/pkg/orchestrator"
	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/stages/output"
	"github.com/user/ffpp/pkg/stages/postprocess"
	"github.com/user/ffpp/pkg/summarizer"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "ffpp",
		Usage:   l10n.T("Deblock, dering and deinterlace raw YV12/YUY2 video"),
		Version: version,
		Description: l10n.T("ffpp runs libpostproc-style postprocessing filters over raw video frames. " +
			"YUY2 input is converted to planar 4:2:2 and back around the filter."),
		Commands: []*cli.Command{
			processCommand(),
			filtersCommand(),
			cpuCommand(),
			versionCommand(),
		},
	}
}

func processCommand() *cli.Command {
	catIO := l10n.T("Input and Output")
	catFilter := l10n.T("Filter")
	catDebug := l10n.T("Debug")
	catLog := l10n.T("Logging")

	return &cli.Command{
		Name:        "process",
		Usage:       l10n.T("Postprocess a raw video file"),
		Description: l10n.T("Read raw frames, run the filter chain over each and write raw frames of the same layout."),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Category: catIO, Usage: l10n.T("YAML configuration file")},
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Category: catIO, Usage: l10n.T("Raw input file")},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Category: catIO, Usage: l10n.T("Raw output file")},
			&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Category: catIO, Usage: l10n.T("Frame width in pixels")},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Category: catIO, Usage: l10n.T("Frame height in pixels")},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Category: catIO, Usage: l10n.T("Pixel format (yv12, yuy2)")},
			&cli.StringFlag{Name: "frames", Category: catIO, Usage: l10n.T("Frames to process, e.g. 0-99,120 (default: all)")},

			&cli.StringFlag{Name: "pp", Category: catFilter, Usage: l10n.T("Filter chain, e.g. hb:a,vb:a,dr:a (see 'ffpp filters')")},
			&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Category: catFilter, Usage: l10n.T("Filter preset (default, fast, accurate, deint)")},
			&cli.StringFlag{Name: "cpu", Category: catFilter, Usage: l10n.T("CPU capabilities: auto, none or a list like mmx,isse,sse2")},
			&cli.IntFlag{Name: "workers", Aliases: []string{"j"}, Category: catFilter, Usage: l10n.T("Number of parallel filter instances")},
			&cli.StringFlag{Name: "scaler", Category: catFilter, Usage: l10n.T("YUY2 converter backend (auto, ffmpeg, go)")},

			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Category: catDebug, Usage: l10n.T("Save before/after images for each frame")},
			&cli.StringFlag{Name: "debug-dir", Category: catDebug, Usage: l10n.T("Directory for debug output")},
			&cli.IntFlag{Name: "debug-zoom", Value: 1, Category: catDebug, Usage: l10n.T("Enlarge debug images by this factor")},
			&cli.StringFlag{Name: "summary", Aliases: []string{"s"}, Category: catDebug, Usage: l10n.T("Write a run summary (.md or .yaml)")},

			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Category: catLog, Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.StringFlag{Name: "log-format", Category: catLog, Usage: l10n.T("Log format (console, text, json)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Category: catLog, Usage: l10n.T("Suppress all log output")},
		},
		Action: runProcess,
	}
}

// buildConfig merges the config file, if any, with flags set on the command line.
func buildConfig(c *cli.Context) (config.Config, error) {
	base := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return base, fmt.Errorf("load config: %w", err)
		}
		base = loaded
	}

	b := config.From(base)
	if c.IsSet("input") {
		b.WithInput(c.String("input"))
	}
	if c.IsSet("output") {
		b.WithOutput(c.String("output"))
	}
	if c.IsSet("width") || c.IsSet("height") {
		w, h := base.Width, base.Height
		if c.IsSet("width") {
			w = c.Int("width")
		}
		if c.IsSet("height") {
			h = c.Int("height")
		}
		b.WithSize(w, h)
	}
	if c.IsSet("format") {
		b.WithFormat(c.String("format"))
	}
	if c.IsSet("frames") {
		b.WithFrames(c.String("frames"))
	}
	if c.IsSet("preset") {
		b.WithPreset(config.Preset(c.String("preset")))
	}
	if c.IsSet("pp") {
		b.WithSpec(c.String("pp"))
	}
	if c.IsSet("cpu") {
		b.WithCPU(c.String("cpu"))
	}
	if c.IsSet("scaler") {
		b.WithScaler(c.String("scaler"))
	}
	if c.IsSet("workers") {
		b.WithWorkers(c.Int("workers"))
	}
	if c.IsSet("debug") || c.IsSet("debug-dir") {
		b.WithDebug(c.Bool("debug") || base.Debug, c.String("debug-dir"))
	}
	if c.IsSet("summary") {
		b.WithSummary(c.String("summary"))
	}
	b.WithLogging(c.String("log-level"), c.String("log-format"), c.Bool("quiet") || base.Quiet)

	return b.Build()
}

func runProcess(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	log, err := logger.New(ports.ParseLogLevel(cfg.LogLevel), cfg.LogFormat, cfg.Quiet, os.Stderr)
	if err != nil {
		return err
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn(l10n.T("Interrupted, shutting down..."))
			cancel()
		case <-ctx.Done():
		}
	}()

	cpu, err := cpucaps.Parse(cfg.CPU)
	if err != nil {
		return err
	}
	spec, err := cfg.Spec()
	if err != nil {
		return err
	}
	mode, err := postproc.ParseMode(spec, ports.QualityMax)
	if err != nil {
		return fmt.Errorf("filter chain %q: %w", spec, err)
	}

	workers := cfg.Workers
	if mode.Temporal() && workers > 1 {
		log.Warn(l10n.T("Temporal noise reduction depends on frame order; using a single worker"))
		workers = 1
	}

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	vi, err := cfg.VideoInfo()
	if err != nil {
		return err
	}
	clip, err := rawclip.Open(fs, cfg.Input, vi)
	if err != nil {
		return err
	}
	defer clip.Close()
	vi = clip.Info()

	writer, err := rawclip.Create(fs, cfg.Output, vi)
	if err != nil {
		return err
	}
	defer writer.Close()

	// Create debug sink
	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer, filesink.WithZoom(c.Int("debug-zoom")))
	} else {
		sink = nullsink.New()
	}

	env := hostenv.New(cpu)
	scaler, scalerName, err := newScaler(cfg.Scaler, log)
	if err != nil {
		return err
	}
	libs := ffpp.Libraries{Postproc: postproc.New(), Scaler: scaler}

	// One filter per worker; filters keep per-clip state and are not shared.
	stages := make([]orchestrator.ProcessStage, 0, workers)
	var flags ports.PPFlags
	for i := 0; i < workers; i++ {
		filter, err := ffpp.New(clip, env, libs, spec, log)
		if err != nil {
			return err
		}
		defer filter.Close()
		flags = filter.State().Flags()
		stages = append(stages, postprocess.NewStage(clip, filter, log))
	}
	outputStage := output.NewStage(writer, sink, log)

	orch := orchestrator.New(stages, outputStage, sink, log)

	orchConfig, err := cfg.ToOrchestratorConfig(vi, cpu)
	if err != nil {
		return err
	}

	log.Info(l10n.F("Postprocessing %s (%dx%d %s, %d frames) with %q", cfg.Input, vi.Width, vi.Height, vi.Format, vi.NumFrames, spec))

	result, err := orch.Run(ctx, orchConfig)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New(l10n.T("interrupted"))
		}
		return err
	}

	log.Info(l10n.F("Output saved to %s", cfg.Output))

	if cfg.Summary != "" {
		summary := summarizer.NewBuilder().
			WithInput(summarizer.InputInfo{
				Path:   cfg.Input,
				Width:  vi.Width,
				Height: vi.Height,
				Format: vi.Format.String(),
				FPS:    vi.FPS(),
				Frames: vi.NumFrames,
			}).
			WithFilter(summarizer.FilterInfo{
				Spec:          spec,
				LumaFilters:   mode.LumaFilters(),
				ChromaFilters: mode.ChromaFilters(),
				CPU:           cpu.String(),
				Flags:         uint32(flags),
				Workers:       result.Workers,
				Scaler:        scalerName,
			}).
			WithOutput(cfg.Output, len(result.Frames), result.Bytes).
			WithTiming(summarizer.TimingInfo{
				Wall:        result.Wall,
				FilterTotal: result.Filter.Total,
				FilterMean:  result.Filter.Mean(),
				Fastest:     result.Filter.Fastest,
				Slowest:     result.Filter.Slowest,
			}).
			Build()

		formatter := summarizer.FormatterFor(cfg.Summary,
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version))
		if err := summarizer.NewWriter(fs, formatter).Write(cfg.Summary, summary); err != nil {
			log.Warn(l10n.F("Failed to write summary: %s", err))
		} else {
			log.Info(l10n.F("Summary saved to %s", cfg.Summary))
		}
	}

	return nil
}

// newScaler picks the converter used for YUY2 frames and returns its name.
// Auto prefers libswscale and falls back to the Go converter when the FFmpeg
// shared libraries cannot be loaded.
func newScaler(kind string, log ports.Logger) (ports.Scaler, string, error) {
	switch kind {
	case config.ScalerGo:
		return swscale.New(), config.ScalerGo, nil
	case config.ScalerFFmpeg:
		s, err := ffmpegscale.New()
		if err != nil {
			return nil, "", err
		}
		return s, config.ScalerFFmpeg, nil
	default:
		s, err := ffmpegscale.New()
		if err != nil {
			log.Debug(l10n.F("FFmpeg libraries not available, using the Go converter: %s", err))
			return swscale.New(), config.ScalerGo, nil
		}
		return s, config.ScalerFFmpeg, nil
	}
}

func filtersCommand() *cli.Command {
	return &cli.Command{
		Name:  "filters",
		Usage: l10n.T("List the available filters and options"),
		Action: func(c *cli.Context) error {
			fmt.Fprint(c.App.Writer, postproc.Help())
			fmt.Fprintln(c.App.Writer)
			fmt.Fprintln(c.App.Writer, l10n.T("Presets:"))
			for _, p := range config.Presets() {
				spec, _ := config.PresetSpec(p)
				fmt.Fprintf(c.App.Writer, "  %-10s %s\n", p, spec)
			}
			return nil
		},
	}
}

func cpuCommand() *cli.Command {
	return &cli.Command{
		Name:  "cpu",
		Usage: l10n.T("Show detected CPU capabilities and the filter flags they map to"),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "cpu", Value: "auto", Usage: l10n.T("CPU capabilities: auto, none or a list like mmx,isse,sse2")},
		},
		Action: func(c *cli.Context) error {
			flags, err := cpucaps.Parse(c.String("cpu"))
			if err != nil {
				return err
			}
			w := c.App.Writer
			fmt.Fprintln(w, l10n.F("Processor: %s", cpucaps.Describe()))
			fmt.Fprintln(w, l10n.F("Capabilities: %s", strings.Join(cpucaps.Names(flags), " ")))
			fmt.Fprintln(w, l10n.F("Filter flags: 0x%08x", uint32(ffpp.TranslateCPUFlags(flags))))
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, l10n.F("ffpp version %s", version))
			return nil
		},
	}
}
