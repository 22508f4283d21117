// Package ffmpegscale implements ports.Scaler on top of the system's
// libswscale, loaded at runtime through ffgo. Platforms without the bindings,
// or hosts without the FFmpeg shared libraries, get ErrUnavailable from New.
package ffmpegscale

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

// pictureAlign is the stride alignment of pictures from AllocPicture.
const pictureAlign = 32

// Converter wraps a libswscale context.
type Converter struct {
	ctx        unsafe.Pointer
	srcW, srcH int
	dstW, dstH int
	src, dst   video.PixelFormat
}

// Formats returns the source and destination layouts.
func (c *Converter) Formats() (video.PixelFormat, video.PixelFormat) { return c.src, c.dst }

// Scaler implements ports.Scaler with libswscale.
type Scaler struct {
	converters atomic.Int64
	pictures   atomic.Int64
}

// New loads the FFmpeg libraries and returns a scaler. The error wraps
// ErrUnavailable when they cannot be found.
func New() (*Scaler, error) {
	if err := load(); err != nil {
		return nil, err
	}
	return &Scaler{}, nil
}

// NewConverter creates a libswscale context. Geometry, layouts and kernel are
// checked before the library is asked for anything.
func (s *Scaler) NewConverter(srcW, srcH int, srcFormat video.PixelFormat, dstW, dstH int, dstFormat video.PixelFormat, flags ports.ScaleFlags) (ports.Converter, error) {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return nil, fmt.Errorf("%w: %dx%d to %dx%d", video.ErrInvalidGeometry, srcW, srcH, dstW, dstH)
	}
	if !supported(srcFormat) || !supported(dstFormat) {
		return nil, fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, srcFormat, dstFormat)
	}
	if (srcFormat == video.FormatYUY2 && srcW%2 != 0) || (dstFormat == video.FormatYUY2 && dstW%2 != 0) {
		return nil, fmt.Errorf("%w: %s needs an even width", video.ErrInvalidGeometry, video.FormatYUY2)
	}
	kernel, err := kernelFor(flags)
	if err != nil {
		return nil, err
	}

	ctx, err := getContext(srcW, srcH, srcFormat, dstW, dstH, dstFormat, kernel)
	if err != nil {
		return nil, err
	}

	s.converters.Add(1)
	return &Converter{
		ctx:  ctx,
		srcW: srcW, srcH: srcH,
		dstW: dstW, dstH: dstH,
		src: srcFormat, dst: dstFormat,
	}, nil
}

func supported(f video.PixelFormat) bool {
	switch f {
	case video.FormatYV12, video.FormatYUY2, video.FormatYUV422P:
		return true
	}
	return false
}

// kernelFor keeps only the kernel bits. libswscale ignores the legacy CPU
// capability bits, so they are not passed on.
func kernelFor(flags ports.ScaleFlags) (int32, error) {
	switch k := flags.Kernel(); k {
	case 0:
		return int32(ports.ScaleBilinear), nil
	case ports.ScaleFastBilinear, ports.ScaleBilinear, ports.ScaleBicubic, ports.ScalePoint, ports.ScaleArea:
		return int32(k), nil
	default:
		return 0, fmt.Errorf("%w: kernel flags 0x%02x", ErrUnsupportedConversion, uint32(k))
	}
}

func (s *Scaler) FreeConverter(conv ports.Converter) {
	c, ok := conv.(*Converter)
	if !ok || c == nil || c.ctx == nil {
		return
	}
	freeContext(c.ctx)
	c.ctx = nil
	s.converters.Add(-1)
}

// Convert hands rows [sliceY, sliceY+sliceH) of src to sws_scale. Slices of
// one frame must arrive top to bottom.
func (s *Scaler) Convert(conv ports.Converter, src []video.Plane, sliceY, sliceH int, dst []video.Plane) (int, error) {
	c, ok := conv.(*Converter)
	if !ok || c == nil {
		return 0, fmt.Errorf("%w: converter %T", ErrUnsupportedConversion, conv)
	}
	if c.ctx == nil {
		return 0, fmt.Errorf("%w: converter already freed", ErrScaleFailed)
	}
	if len(src) != c.src.NumPlanes() || len(dst) != c.dst.NumPlanes() {
		return 0, fmt.Errorf("%w: %d source and %d destination planes for %s to %s",
			video.ErrInvalidGeometry, len(src), len(dst), c.src, c.dst)
	}
	if sliceY < 0 || sliceH <= 0 || sliceY+sliceH > c.srcH {
		return 0, fmt.Errorf("%w: slice %d+%d of %d rows", video.ErrInvalidGeometry, sliceY, sliceH, c.srcH)
	}
	// libswscale reads and writes through raw pointers; every plane must be
	// large enough before it gets them.
	if err := checkPlanes(c.src, src, c.srcW, c.srcH); err != nil {
		return 0, fmt.Errorf("source: %w", err)
	}
	if err := checkPlanes(c.dst, dst, c.dstW, c.dstH); err != nil {
		return 0, fmt.Errorf("destination: %w", err)
	}

	var srcPtr, dstPtr [8]unsafe.Pointer
	var srcStride, dstStride [8]int32
	_, vs := c.src.ChromaShift()
	for i, p := range src {
		row := sliceY
		if i > 0 {
			row >>= vs
		}
		srcPtr[i] = unsafe.Pointer(&p.Data[row*p.Stride])
		srcStride[i] = int32(p.Stride)
	}
	for i, p := range dst {
		dstPtr[i] = unsafe.Pointer(&p.Data[0])
		dstStride[i] = int32(p.Stride)
	}

	n := scale(c.ctx, &srcPtr, &srcStride, sliceY, sliceH, &dstPtr, &dstStride)
	keepAlive(src, dst)
	if n < 0 {
		return 0, fmt.Errorf("%w: sws_scale returned %d", ErrScaleFailed, n)
	}
	return n, nil
}

func checkPlanes(format video.PixelFormat, planes []video.Plane, width, height int) error {
	for i, p := range planes {
		rowBytes, rows := format.PlaneDims(i, width, height)
		if err := p.Holds(rowBytes, rows); err != nil {
			return fmt.Errorf("plane %d: %w", i, err)
		}
	}
	return nil
}

// AllocPicture allocates a picture with strides aligned for libswscale's vector paths.
func (s *Scaler) AllocPicture(format video.PixelFormat, width, height int) (*video.Frame, error) {
	f, err := video.NewFrame(format, width, height, pictureAlign)
	if err != nil {
		return nil, err
	}
	s.pictures.Add(1)
	return f, nil
}

func (s *Scaler) FreePicture(pic *video.Frame) {
	if pic != nil {
		s.pictures.Add(-1)
	}
}

// Live returns the number of converters and pictures not yet freed.
func (s *Scaler) Live() int {
	return int(s.converters.Load() + s.pictures.Load())
}

var _ ports.Scaler = (*Scaler)(nil)
