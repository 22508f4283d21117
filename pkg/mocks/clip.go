package mocks

import (
	"fmt"
	"sync"

	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

// Clip is a mock implementation of ports.Clip. Frames not present in Frames
// are generated with PatternFrame.
type Clip struct {
	mu sync.Mutex

	VideoInfo    video.VideoInfo
	Frames       map[int]*video.Frame
	GetFrameFunc func(n int) (*video.Frame, error)

	// Requests records the requested frame indices in order.
	Requests []int
}

// NewClip creates a mock clip with generated content.
func NewClip(vi video.VideoInfo) *Clip {
	return &Clip{VideoInfo: vi, Frames: make(map[int]*video.Frame)}
}

func (m *Clip) Info() video.VideoInfo {
	return m.VideoInfo
}

func (m *Clip) GetFrame(n int) (*video.Frame, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, n)
	f, ok := m.Frames[n]
	m.mu.Unlock()

	if m.GetFrameFunc != nil {
		return m.GetFrameFunc(n)
	}
	if ok {
		return f, nil
	}
	if m.VideoInfo.NumFrames > 0 && (n < 0 || n >= m.VideoInfo.NumFrames) {
		return nil, fmt.Errorf("mock clip: frame %d out of range", n)
	}
	return PatternFrame(m.VideoInfo, n)
}

// PatternFrame returns a frame whose bytes depend on the position and seed.
func PatternFrame(vi video.VideoInfo, seed int) (*video.Frame, error) {
	f, err := video.NewFrame(vi.Format, vi.Width, vi.Height, 32)
	if err != nil {
		return nil, err
	}
	for i, p := range f.Planes {
		for y := 0; y < p.Height; y++ {
			row := p.Row(y)
			for x := range row {
				row[x] = byte(x*7 + y*13 + i*31 + seed*17)
			}
		}
	}
	return f, nil
}

// Environment is a mock implementation of ports.Environment.
type Environment struct {
	mu sync.Mutex

	Flags             video.CPUFlags
	Align             int
	NewVideoFrameFunc func(vi video.VideoInfo) (*video.Frame, error)

	// Allocated counts NewVideoFrame calls.
	Allocated int
}

func (m *Environment) CPUFlags() video.CPUFlags {
	return m.Flags
}

func (m *Environment) NewVideoFrame(vi video.VideoInfo) (*video.Frame, error) {
	m.mu.Lock()
	m.Allocated++
	m.mu.Unlock()

	if m.NewVideoFrameFunc != nil {
		return m.NewVideoFrameFunc(vi)
	}
	align := m.Align
	if align == 0 {
		align = 64
	}
	return video.NewFrame(vi.Format, vi.Width, vi.Height, align)
}

// FrameSink is a mock implementation of ports.FrameSink.
type FrameSink struct {
	mu sync.Mutex

	WriteFrameFunc func(n int, frame *video.Frame) error

	Frames map[int]*video.Frame
	Order  []int
}

// NewFrameSink creates an empty mock sink.
func NewFrameSink() *FrameSink {
	return &FrameSink{Frames: make(map[int]*video.Frame)}
}

func (m *FrameSink) WriteFrame(n int, frame *video.Frame) error {
	if m.WriteFrameFunc != nil {
		if err := m.WriteFrameFunc(n, frame); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames[n] = frame
	m.Order = append(m.Order, n)
	return nil
}

var (
	_ ports.Clip        = (*Clip)(nil)
	_ ports.Environment = (*Environment)(nil)
	_ ports.FrameSink   = (*FrameSink)(nil)
)
