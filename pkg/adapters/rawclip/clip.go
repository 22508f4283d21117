// Package rawclip reads and writes headerless raw video: frames of one
// layout and size stored back to back, each tightly packed plane by plane.
package rawclip

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

var (
	// ErrFrameOutOfRange is returned for frame indices outside the clip.
	ErrFrameOutOfRange = errors.New("rawclip: frame index out of range")

	// ErrEmpty is returned when the input holds less than one frame.
	ErrEmpty = errors.New("rawclip: input holds no complete frame")
)

// frameAlign is the stride alignment of frames returned by Clip.
const frameAlign = 32

// Clip serves frames from a raw video source in any order.
type Clip struct {
	r      io.ReaderAt
	closer io.Closer
	vi     video.VideoInfo

	mu  sync.Mutex
	buf []byte
}

// New creates a clip over size bytes of r. When vi.NumFrames is zero it is
// derived from size; a trailing partial frame is ignored.
func New(r io.ReaderAt, size int64, vi video.VideoInfo) (*Clip, error) {
	frameSize := int64(vi.FrameSize())
	if vi.Width <= 0 || vi.Height <= 0 || frameSize == 0 {
		return nil, fmt.Errorf("%w: %dx%d %s", video.ErrInvalidGeometry, vi.Width, vi.Height, vi.Format)
	}
	available := int(size / frameSize)
	if available == 0 {
		return nil, fmt.Errorf("%w: %d bytes, frame is %d", ErrEmpty, size, frameSize)
	}
	if vi.NumFrames <= 0 || vi.NumFrames > available {
		vi.NumFrames = available
	}
	return &Clip{r: r, vi: vi, buf: make([]byte, frameSize)}, nil
}

// Open opens path on fs as a raw clip. Close releases the file.
func Open(fs ports.FileSystem, path string, vi video.VideoInfo) (*Clip, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	size, err := f.Size()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat input: %w", err)
	}
	c, err := New(f, size, vi)
	if err != nil {
		f.Close()
		return nil, err
	}
	c.closer = f
	return c, nil
}

// Info returns the clip description with the frame count filled in.
func (c *Clip) Info() video.VideoInfo {
	return c.vi
}

// GetFrame reads frame n into a newly allocated frame.
func (c *Clip) GetFrame(n int) (*video.Frame, error) {
	if n < 0 || n >= c.vi.NumFrames {
		return nil, fmt.Errorf("%w: %d of %d", ErrFrameOutOfRange, n, c.vi.NumFrames)
	}
	f, err := video.NewFrame(c.vi.Format, c.vi.Width, c.vi.Height, frameAlign)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	off := int64(n) * int64(len(c.buf))
	// io.ReaderAt may report io.EOF together with a full read at the end.
	if m, err := c.r.ReadAt(c.buf, off); m < len(c.buf) {
		return nil, fmt.Errorf("read frame %d: %w", n, err)
	}
	if _, err := f.Unpack(c.buf); err != nil {
		return nil, err
	}
	return f, nil
}

// Close closes the underlying file when the clip was opened with Open.
func (c *Clip) Close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	return err
}

var _ ports.Clip = (*Clip)(nil)
