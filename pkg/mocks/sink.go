package mocks

import (
	"image"
	"sync"

	"github.com/user/ffpp/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	RunJSON      []byte
	SourceFrames map[int]image.Image
	OutputFrames map[int]image.Image
	Comparisons  map[int][2]image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:      enabled,
		SourceFrames: make(map[int]image.Image),
		OutputFrames: make(map[int]image.Image),
		Comparisons:  make(map[int][2]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveRunJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunJSON = data
	return nil
}

func (m *DebugSink) SaveSourceFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceFrames[index] = img
	return nil
}

func (m *DebugSink) SaveOutputFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OutputFrames[index] = img
	return nil
}

func (m *DebugSink) SaveComparison(index int, before, after image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Comparisons[index] = [2]image.Image{before, after}
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
