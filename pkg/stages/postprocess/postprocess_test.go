package postprocess

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/ffpp/pkg/mocks"
	"github.com/user/ffpp/pkg/pipeline"
	"github.com/user/ffpp/pkg/video"
)

type processorFunc func(src *video.Frame) (*video.Frame, error)

func (f processorFunc) Process(src *video.Frame) (*video.Frame, error) { return f(src) }

func info() video.VideoInfo {
	return video.VideoInfo{Width: 32, Height: 16, Format: video.FormatYV12, NumFrames: 4}
}

func TestStage_Execute(t *testing.T) {
	clip := mocks.NewClip(info())
	var seen *video.Frame
	proc := processorFunc(func(src *video.Frame) (*video.Frame, error) {
		seen = src
		return src.Clone(), nil
	})
	log := mocks.NewLogger()

	stage := NewStage(clip, proc, log)
	got, err := stage.Execute(context.Background(), pipeline.FrameRequest{Index: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, got.Index)
	assert.Same(t, seen, got.Source)
	assert.NotSame(t, got.Source, got.Output)
	assert.Equal(t, []int{2}, clip.Requests)
	assert.GreaterOrEqual(t, int64(got.Elapsed), int64(0))

	entries := log.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "postprocess", entries[0].Component)
}

func TestStage_SourceError(t *testing.T) {
	clip := mocks.NewClip(info())
	called := false
	proc := processorFunc(func(src *video.Frame) (*video.Frame, error) {
		called = true
		return src, nil
	})

	stage := NewStage(clip, proc, mocks.NewLogger())
	_, err := stage.Execute(context.Background(), pipeline.FrameRequest{Index: 9})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read frame 9")
	assert.False(t, called)
}

func TestStage_ProcessorError(t *testing.T) {
	boom := errors.New("boom")
	proc := processorFunc(func(*video.Frame) (*video.Frame, error) { return nil, boom })

	stage := NewStage(mocks.NewClip(info()), proc, mocks.NewLogger())
	_, err := stage.Execute(context.Background(), pipeline.FrameRequest{Index: 1})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "postprocess frame 1")
}

func TestStage_Cancelled(t *testing.T) {
	clip := mocks.NewClip(info())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stage := NewStage(clip, processorFunc(func(src *video.Frame) (*video.Frame, error) { return src, nil }), mocks.NewLogger())
	_, err := stage.Execute(ctx, pipeline.FrameRequest{Index: 0})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, clip.Requests)
}
