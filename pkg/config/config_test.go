package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/ffpp/pkg/video"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ffpp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
input: in.yuv
output: out.yuv
width: 720
height: 576
format: yuy2
pp: "hb:a,vb:a"
frames: "0-9"
workers: 2
scaler: go
debug: true
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "in.yuv", cfg.Input)
	assert.Equal(t, 720, cfg.Width)
	assert.Equal(t, "yuy2", cfg.Format)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, ScalerGo, cfg.Scaler)
	assert.True(t, cfg.Debug)
	// untouched fields keep their defaults
	assert.Equal(t, "auto", cfg.CPU)
	assert.Equal(t, "./debug", cfg.DebugDir)
	assert.Equal(t, "console", cfg.LogFormat)

	vi, err := cfg.VideoInfo()
	require.NoError(t, err)
	assert.Equal(t, video.FormatYUY2, vi.Format)
	assert.Equal(t, 25.0, vi.FPS())
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: [1, 2"), 0644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestConfig_Spec(t *testing.T) {
	cfg := Defaults()
	spec, err := cfg.Spec()
	require.NoError(t, err)
	assert.Equal(t, "de", spec)

	cfg.Preset = string(PresetDeint)
	spec, _ = cfg.Spec()
	assert.Equal(t, "de,lb", spec)

	cfg.PP = "tn"
	spec, _ = cfg.Spec()
	assert.Equal(t, "tn", spec)

	cfg.PP = ""
	cfg.Preset = "sharp"
	_, err = cfg.Spec()
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestPresets(t *testing.T) {
	for _, p := range Presets() {
		spec, err := PresetSpec(p)
		require.NoError(t, err)
		assert.NotEmpty(t, spec)
	}
	spec, err := PresetSpec("")
	require.NoError(t, err)
	assert.Equal(t, "de", spec)
}

func TestParseFrameList(t *testing.T) {
	tests := []struct {
		in    string
		total int
		want  []int
	}{
		{"", 10, nil},
		{"3", 10, []int{3}},
		{"0-3", 10, []int{0, 1, 2, 3}},
		{"7-", 10, []int{7, 8, 9}},
		{"5, 1,3", 10, []int{5, 1, 3}},
		{"2-3,2", 10, []int{2, 3, 2}},
		{"1,,2,", 10, []int{1, 2}},
		{"100", 0, []int{100}},
	}
	for _, tt := range tests {
		got, err := ParseFrameList(tt.in, tt.total)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseFrameList_Errors(t *testing.T) {
	for _, in := range []string{"x", "-1", "3-1", "0-10", "10", "1-x", "5-"} {
		total := 10
		if in == "5-" {
			total = 0
		}
		_, err := ParseFrameList(in, total)
		assert.ErrorIs(t, err, ErrInvalidFrames, in)
	}
}

func TestBuilder(t *testing.T) {
	cfg, err := NewBuilder().
		WithInput("in.yuv").
		WithOutput("out.yuv").
		WithSize(64, 48).
		WithFormat("yv12").
		WithPreset(PresetFast).
		WithWorkers(0).
		WithFrameRate(30000, 1001).
		WithDebug(true, "/tmp/dbg").
		WithLogging("debug", "json", true).
		Build()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "/tmp/dbg", cfg.DebugDir)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Quiet)
	spec, _ := cfg.Spec()
	assert.Equal(t, "fa", spec)
}

func TestBuilder_Validation(t *testing.T) {
	_, err := NewBuilder().WithOutput("o").WithSize(8, 8).Build()
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = NewBuilder().WithInput("i").WithSize(8, 8).Build()
	assert.ErrorIs(t, err, ErrMissingOutput)

	_, err = NewBuilder().WithInput("i").WithOutput("o").Build()
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewBuilder().WithInput("i").WithOutput("o").WithSize(8, 8).WithFormat("rgb24").Build()
	assert.ErrorIs(t, err, video.ErrUnknownFormat)

	_, err = NewBuilder().WithInput("i").WithOutput("o").WithSize(8, 8).WithScaler("opencl").Build()
	assert.ErrorIs(t, err, ErrUnknownScaler)

	cfg, err := NewBuilder().WithInput("i").WithOutput("o").WithSize(8, 8).WithScaler(ScalerFFmpeg).Build()
	require.NoError(t, err)
	assert.Equal(t, ScalerFFmpeg, cfg.Scaler)
	assert.Equal(t, ScalerAuto, Defaults().Scaler)
}

func TestToOrchestratorConfig(t *testing.T) {
	cfg, err := NewBuilder().
		WithInput("in.yuv").
		WithOutput("out.yuv").
		WithSize(16, 16).
		WithSpec("hb,vb").
		WithFrames("2-").
		Build()
	require.NoError(t, err)

	vi, _ := cfg.VideoInfo()
	vi.NumFrames = 4
	oc, err := cfg.ToOrchestratorConfig(vi, video.CPUMMX|video.CPUSSE2)
	require.NoError(t, err)

	assert.Equal(t, "hb,vb", oc.Spec)
	assert.Equal(t, []int{2, 3}, oc.Frames)
	assert.Equal(t, 4, oc.Video.NumFrames)
	assert.Equal(t, "out.yuv", oc.OutputPath)
	assert.Equal(t, 100, oc.ProgressEvery)

	cfg.Frames = "9"
	_, err = cfg.ToOrchestratorConfig(vi, 0)
	assert.ErrorIs(t, err, ErrInvalidFrames)
}
