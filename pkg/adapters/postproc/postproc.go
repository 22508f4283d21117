// Package postproc is a pure Go deblocking, deringing and deinterlacing
// postprocess library with libpostproc's filter chain syntax.
package postproc

import (
	"errors"
	"fmt"

	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

var (
	// ErrForeignHandle is returned when a mode or context was not created by this package.
	ErrForeignHandle = errors.New("postproc: handle not created by this library")

	// ErrReleased is returned when a freed context is used.
	ErrReleased = errors.New("postproc: context already freed")

	// ErrInvalidSize is returned for non-positive context sizes.
	ErrInvalidSize = errors.New("postproc: invalid frame size")

	// ErrSizeMismatch is returned when planes do not match the context geometry.
	ErrSizeMismatch = errors.New("postproc: planes do not match context")
)

// blockSize is the edge length of the blocks the filters work on.
const blockSize = 8

// Library implements ports.Postprocessor.
type Library struct{}

// New creates a postprocess library.
func New() *Library {
	return &Library{}
}

func (l *Library) ParseMode(spec string, quality int) (ports.PostprocMode, error) {
	m, err := ParseMode(spec, quality)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// FreeMode does nothing; modes hold no resources.
func (l *Library) FreeMode(mode ports.PostprocMode) {}

func (l *Library) NewContext(width, height int, flags ports.PPFlags) (ports.PostprocContext, error) {
	c, err := NewContext(width, height, flags)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (l *Library) FreeContext(ctx ports.PostprocContext) {
	if c, ok := ctx.(*Context); ok {
		c.free()
	}
}

// Postprocess filters src into dst. Each plane is copied and then filtered
// in place: level fix, deinterlace, vertical deblock, horizontal deblock,
// dering, temporal noise reduction.
func (l *Library) Postprocess(src, dst []video.Plane, width, height int, qp ports.QPTable, mode ports.PostprocMode, ctx ports.PostprocContext) error {
	m, ok := mode.(*Mode)
	if !ok {
		return fmt.Errorf("%w: mode %T", ErrForeignHandle, mode)
	}
	c, ok := ctx.(*Context)
	if !ok {
		return fmt.Errorf("%w: context %T", ErrForeignHandle, ctx)
	}
	if c.freed {
		return ErrReleased
	}
	if width != c.width || height != c.height {
		return fmt.Errorf("%w: %dx%d, context is %dx%d", ErrSizeMismatch, width, height, c.width, c.height)
	}
	if len(src) != 3 || len(dst) != 3 {
		return fmt.Errorf("%w: need 3 planes, got %d and %d", ErrSizeMismatch, len(src), len(dst))
	}

	for i := 0; i < 3; i++ {
		w, h := c.planeSize(i)
		if err := checkPlane(src[i], w, h); err != nil {
			return fmt.Errorf("source plane %d: %w", i, err)
		}
		if err := checkPlane(dst[i], w, h); err != nil {
			return fmt.Errorf("destination plane %d: %w", i, err)
		}
	}

	for i := 0; i < 3; i++ {
		set := m.luma
		if i > 0 {
			set = m.chroma
		}
		w, h := c.planeSize(i)
		in := plane{data: src[i].Data, stride: src[i].Stride, w: w, h: h}
		out := plane{data: dst[i].Data, stride: dst[i].Stride, w: w, h: h}
		out.copyFrom(in)
		if set == 0 {
			continue
		}
		q := c.quantizers(i, qp, m, set)
		c.filterPlane(i, out, set, m, q)
	}
	c.frames++
	return nil
}

func checkPlane(p video.Plane, w, h int) error {
	if p.Stride < w || p.Width < w || p.Height < h {
		return fmt.Errorf("%w: %dx%d stride %d, need %dx%d", ErrSizeMismatch, p.Width, p.Height, p.Stride, w, h)
	}
	if len(p.Data) < (h-1)*p.Stride+w {
		return fmt.Errorf("%w: %d bytes", video.ErrShortBuffer, len(p.Data))
	}
	return nil
}

var _ ports.Postprocessor = (*Library)(nil)
