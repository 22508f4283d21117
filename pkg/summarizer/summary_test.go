package summarizer

import (
	"testing"
	"time"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder_WithInput(t *testing.T) {
	summary := NewBuilder().
		WithInput(InputInfo{Path: "in.yuv", Width: 720, Height: 576, Format: "yv12", Frames: 250}).
		Build()

	if summary.Input.Path != "in.yuv" {
		t.Errorf("expected path 'in.yuv', got '%s'", summary.Input.Path)
	}
	if summary.Input.Width != 720 || summary.Input.Height != 576 {
		t.Errorf("expected 720x576, got %dx%d", summary.Input.Width, summary.Input.Height)
	}
}

func TestBuilder_WithFilter(t *testing.T) {
	summary := NewBuilder().
		WithFilter(FilterInfo{
			Spec:        "de",
			LumaFilters: []string{"hdeblock", "vdeblock", "dering"},
			CPU:         "mmx,sse2",
			Flags:       0x80000000 | 0x10000000,
			Workers:     4,
		}).
		Build()

	if summary.Filter.Spec != "de" {
		t.Errorf("expected spec 'de', got '%s'", summary.Filter.Spec)
	}
	if len(summary.Filter.LumaFilters) != 3 {
		t.Errorf("expected 3 luma filters, got %d", len(summary.Filter.LumaFilters))
	}
	if summary.Filter.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", summary.Filter.Workers)
	}
}

func TestBuilder_WithTiming_DerivesFPS(t *testing.T) {
	summary := NewBuilder().
		WithOutput("out.yuv", 50, 50*622080).
		WithTiming(TimingInfo{Wall: 2 * time.Second}).
		Build()

	if summary.Timing.FPS != 25 {
		t.Errorf("expected 25 fps, got %f", summary.Timing.FPS)
	}
	if summary.Output.Bytes != 50*622080 {
		t.Errorf("unexpected byte count %d", summary.Output.Bytes)
	}
}

func TestBuilder_WithTiming_KeepsExplicitFPS(t *testing.T) {
	summary := NewBuilder().
		WithOutput("out.yuv", 50, 0).
		WithTiming(TimingInfo{Wall: 2 * time.Second, FPS: 12.5}).
		Build()

	if summary.Timing.FPS != 12.5 {
		t.Errorf("expected 12.5 fps, got %f", summary.Timing.FPS)
	}
}

func TestBuilder_FullChain(t *testing.T) {
	summary := NewBuilder().
		WithInput(InputInfo{Path: "a.yuv", Width: 64, Height: 48, Format: "yuy2", Frames: 10}).
		WithFilter(FilterInfo{Spec: "fa", Workers: 1}).
		WithOutput("b.yuv", 10, 61440).
		WithTiming(TimingInfo{Wall: time.Second, FilterTotal: 500 * time.Millisecond}).
		Build()

	if summary.Input.Format != "yuy2" {
		t.Errorf("expected format yuy2, got %s", summary.Input.Format)
	}
	if summary.Filter.Spec != "fa" {
		t.Errorf("expected spec fa, got %s", summary.Filter.Spec)
	}
	if summary.Output.Frames != 10 {
		t.Errorf("expected 10 frames, got %d", summary.Output.Frames)
	}
	if summary.Timing.FPS != 10 {
		t.Errorf("expected 10 fps, got %f", summary.Timing.FPS)
	}
}
