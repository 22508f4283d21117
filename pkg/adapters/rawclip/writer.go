package rawclip

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

// Writer stores frame n at byte offset n*FrameSize, so frames may arrive in
// any order.
type Writer struct {
	w      io.WriterAt
	closer io.Closer
	vi     video.VideoInfo

	mu      sync.Mutex
	buf     []byte
	written atomic.Int64
}

// NewWriter creates a writer for frames described by vi.
func NewWriter(w io.WriterAt, vi video.VideoInfo) (*Writer, error) {
	frameSize := vi.FrameSize()
	if vi.Width <= 0 || vi.Height <= 0 || frameSize == 0 {
		return nil, fmt.Errorf("%w: %dx%d %s", video.ErrInvalidGeometry, vi.Width, vi.Height, vi.Format)
	}
	return &Writer{w: w, vi: vi, buf: make([]byte, frameSize)}, nil
}

// Create creates path on fs and returns a writer for it. Close releases the file.
func Create(fs ports.FileSystem, path string, vi video.VideoInfo) (*Writer, error) {
	f, err := fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	w, err := NewWriter(f, vi)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// WriteFrame packs frame and writes it at slot n.
func (w *Writer) WriteFrame(n int, frame *video.Frame) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrFrameOutOfRange, n)
	}
	if frame == nil || frame.Width != w.vi.Width || frame.Height != w.vi.Height || frame.Format != w.vi.Format {
		return fmt.Errorf("%w: frame %d does not match %dx%d %s", video.ErrInvalidGeometry, n, w.vi.Width, w.vi.Height, w.vi.Format)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := frame.Pack(w.buf); err != nil {
		return err
	}
	if _, err := w.w.WriteAt(w.buf, int64(n)*int64(len(w.buf))); err != nil {
		return fmt.Errorf("write frame %d: %w", n, err)
	}
	w.written.Add(1)
	return nil
}

// Written returns how many frames have been written.
func (w *Writer) Written() int {
	return int(w.written.Load())
}

// Close closes the underlying file when the writer was made with Create.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

var _ ports.FrameSink = (*Writer)(nil)
