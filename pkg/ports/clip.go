// Package ports defines interfaces for external dependencies.
package ports

import "github.com/user/ffpp/pkg/video"

// Clip is a random-access source of frames, the host's view of a filter graph node.
type Clip interface {
	// Info describes every frame the clip returns.
	Info() video.VideoInfo

	// GetFrame returns frame n. Frames may be requested in any order.
	GetFrame(n int) (*video.Frame, error)
}

// Environment is the host's runtime: CPU capabilities and frame allocation.
type Environment interface {
	// CPUFlags returns the capabilities filters may use.
	CPUFlags() video.CPUFlags

	// NewVideoFrame allocates a writable frame matching vi.
	NewVideoFrame(vi video.VideoInfo) (*video.Frame, error)
}

// FrameSink receives processed frames.
type FrameSink interface {
	// WriteFrame stores frame n. Frames may arrive in any order.
	WriteFrame(n int, frame *video.Frame) error
}
