// Package swscale converts frames between YUY2, YUV422P and YV12, resizing
// with golang.org/x/image/draw kernels when the geometry changes.
package swscale

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"golang.org/x/image/draw"

	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

var (
	// ErrUnsupportedConversion is returned for layouts the scaler cannot read or write.
	ErrUnsupportedConversion = errors.New("swscale: unsupported conversion")

	// ErrPartialSlice is returned when a resizing converter is given less than a full frame.
	ErrPartialSlice = errors.New("swscale: resizing needs the whole frame")
)

// pictureAlign is the stride alignment of pictures from AllocPicture.
const pictureAlign = 32

// Converter is a conversion between fixed geometries and layouts.
type Converter struct {
	srcW, srcH int
	dstW, dstH int
	src, dst   video.PixelFormat
	flags      ports.ScaleFlags
	kernel     draw.Interpolator
}

// Formats returns the source and destination layouts.
func (c *Converter) Formats() (video.PixelFormat, video.PixelFormat) { return c.src, c.dst }

// Flags returns the flags the converter was created with.
func (c *Converter) Flags() ports.ScaleFlags { return c.flags }

// repack reports whether the conversion only moves samples around.
func (c *Converter) repack() bool {
	sh, sv := c.src.ChromaShift()
	dh, dv := c.dst.ChromaShift()
	return c.srcW == c.dstW && c.srcH == c.dstH && sh == dh && sv == dv
}

// Scaler implements ports.Scaler.
type Scaler struct {
	converters atomic.Int64
	pictures   atomic.Int64
}

// New creates a scaler.
func New() *Scaler {
	return &Scaler{}
}

// NewConverter creates a converter. The kernel is chosen from the low bits
// of flags; CPU capability bits are accepted and ignored.
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

	s.converters.Add(1)
	return &Converter{
		srcW: srcW, srcH: srcH,
		dstW: dstW, dstH: dstH,
		src: srcFormat, dst: dstFormat,
		flags:  flags,
		kernel: kernel,
	}, nil
}

func supported(f video.PixelFormat) bool {
	switch f {
	case video.FormatYV12, video.FormatYUY2, video.FormatYUV422P:
		return true
	}
	return false
}

func kernelFor(flags ports.ScaleFlags) (draw.Interpolator, error) {
	switch flags.Kernel() {
	case ports.ScaleBicubic:
		return draw.CatmullRom, nil
	case ports.ScaleBilinear, 0:
		return draw.BiLinear, nil
	case ports.ScaleFastBilinear, ports.ScaleArea:
		return draw.ApproxBiLinear, nil
	case ports.ScalePoint:
		return draw.NearestNeighbor, nil
	default:
		return nil, fmt.Errorf("%w: kernel flags 0x%02x", ErrUnsupportedConversion, uint32(flags.Kernel()))
	}
}

func (s *Scaler) FreeConverter(conv ports.Converter) {
	if conv != nil {
		s.converters.Add(-1)
	}
}

// Convert converts rows [sliceY, sliceY+sliceH) of src into dst and returns
// the number of destination rows written. Plain repacks may be done slice by
// slice; anything that resamples needs the whole frame in one call.
func (s *Scaler) Convert(conv ports.Converter, src []video.Plane, sliceY, sliceH int, dst []video.Plane) (int, error) {
	c, ok := conv.(*Converter)
	if !ok {
		return 0, fmt.Errorf("%w: converter %T", ErrUnsupportedConversion, conv)
	}
	if len(src) != c.src.NumPlanes() || len(dst) != c.dst.NumPlanes() {
		return 0, fmt.Errorf("%w: %d source and %d destination planes for %s to %s",
			video.ErrInvalidGeometry, len(src), len(dst), c.src, c.dst)
	}
	if sliceY < 0 || sliceH <= 0 || sliceY+sliceH > c.srcH {
		return 0, fmt.Errorf("%w: slice %d+%d of %d rows", video.ErrInvalidGeometry, sliceY, sliceH, c.srcH)
	}

	if c.repack() {
		if _, v := c.src.ChromaShift(); v > 0 && (sliceY%2 != 0 || (sliceH%2 != 0 && sliceY+sliceH != c.srcH)) {
			return 0, fmt.Errorf("%w: %s slices must start on even rows", video.ErrInvalidGeometry, c.src)
		}
		y, cb, cr := readPlanes(c.src, src, c.srcW, sliceY, sliceH)
		writePlanes(c.dst, dst, sliceY, y, cb, cr)
		return sliceH, nil
	}

	if sliceY != 0 || sliceH != c.srcH {
		return 0, ErrPartialSlice
	}
	y, cb, cr := readPlanes(c.src, src, c.srcW, 0, c.srcH)

	ch, cv := c.dst.ChromaShift()
	cw := (c.dstW + (1 << ch) - 1) >> ch
	chh := (c.dstH + (1 << cv) - 1) >> cv
	y = resize(c.kernel, y, c.dstW, c.dstH)
	cb = resize(c.kernel, cb, cw, chh)
	cr = resize(c.kernel, cr, cw, chh)

	writePlanes(c.dst, dst, 0, y, cb, cr)
	return c.dstH, nil
}

func resize(k draw.Interpolator, src *image.Gray, w, h int) *image.Gray {
	if src.Rect.Dx() == w && src.Rect.Dy() == h {
		return src
	}
	dst := image.NewGray(image.Rect(0, 0, w, h))
	k.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// readPlanes unpacks the slice into separate luma and chroma images whose
// origins are the first row of the slice.
func readPlanes(format video.PixelFormat, planes []video.Plane, width, sliceY, sliceH int) (y, cb, cr *image.Gray) {
	hs, vs := format.ChromaShift()
	cw := (width + (1 << hs) - 1) >> hs
	cy0 := sliceY >> vs
	ch := ((sliceY + sliceH + (1 << vs) - 1) >> vs) - cy0

	y = image.NewGray(image.Rect(0, 0, width, sliceH))
	cb = image.NewGray(image.Rect(0, 0, cw, ch))
	cr = image.NewGray(image.Rect(0, 0, cw, ch))

	if format == video.FormatYUY2 {
		p := planes[0]
		for r := 0; r < sliceH; r++ {
			row := p.Row(sliceY + r)
			ly := y.Pix[r*y.Stride:]
			lu := cb.Pix[r*cb.Stride:]
			lv := cr.Pix[r*cr.Stride:]
			for x := 0; x < cw; x++ {
				ly[2*x] = row[4*x]
				lu[x] = row[4*x+1]
				ly[2*x+1] = row[4*x+2]
				lv[x] = row[4*x+3]
			}
		}
		return y, cb, cr
	}

	for r := 0; r < sliceH; r++ {
		copy(y.Pix[r*y.Stride:], planes[0].Row(sliceY+r))
	}
	for r := 0; r < ch; r++ {
		copy(cb.Pix[r*cb.Stride:], planes[1].Row(cy0+r))
		copy(cr.Pix[r*cr.Stride:], planes[2].Row(cy0+r))
	}
	return y, cb, cr
}

// writePlanes packs the images into planes starting at row sliceY.
func writePlanes(format video.PixelFormat, planes []video.Plane, sliceY int, y, cb, cr *image.Gray) {
	_, vs := format.ChromaShift()
	rows := y.Rect.Dy()

	if format == video.FormatYUY2 {
		p := planes[0]
		for r := 0; r < rows; r++ {
			out := p.Row(sliceY + r)
			ly := y.Pix[r*y.Stride:]
			lu := cb.Pix[r*cb.Stride:]
			lv := cr.Pix[r*cr.Stride:]
			for x := 0; 4*x+3 < len(out); x++ {
				out[4*x] = ly[2*x]
				out[4*x+1] = lu[x]
				out[4*x+2] = ly[2*x+1]
				out[4*x+3] = lv[x]
			}
		}
		return
	}

	for r := 0; r < rows; r++ {
		copy(planes[0].Row(sliceY+r), y.Pix[r*y.Stride:r*y.Stride+y.Rect.Dx()])
	}
	cy0 := sliceY >> vs
	for r := 0; r < cb.Rect.Dy(); r++ {
		copy(planes[1].Row(cy0+r), cb.Pix[r*cb.Stride:r*cb.Stride+cb.Rect.Dx()])
		copy(planes[2].Row(cy0+r), cr.Pix[r*cr.Stride:r*cr.Stride+cr.Rect.Dx()])
	}
}

// AllocPicture allocates a picture with strides aligned for vector loads.
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
