package video

import (
	"errors"
	"fmt"
	"image"
)

// DefaultAlign is the stride alignment used when callers have no preference.
const DefaultAlign = 16

var (
	// ErrInvalidGeometry is returned for non-positive or layout-incompatible sizes.
	ErrInvalidGeometry = errors.New("video: invalid frame geometry")

	// ErrShortBuffer is returned when raw data is smaller than one frame.
	ErrShortBuffer = errors.New("video: buffer too short for frame")
)

// Plane is one memory region of a frame.
type Plane struct {
	Data   []byte
	Stride int // bytes between the starts of consecutive rows
	Width  int // meaningful bytes per row
	Height int // rows
}

// Row returns the meaningful bytes of row y. The result has no spare
// capacity, and a row that does not fit in Data panics.
func (p Plane) Row(y int) []byte {
	off := y * p.Stride
	end := off + p.Width
	if off < 0 || end > len(p.Data) {
		panic(fmt.Sprintf("video: row %d spans bytes [%d,%d) of a %d byte plane", y, off, end, len(p.Data)))
	}
	return p.Data[off:end:end]
}

// Holds reports whether p can carry rows x rowBytes of pixels: wide and tall
// enough, a stride no narrower than a row, and Data long enough for the last row.
func (p Plane) Holds(rowBytes, rows int) error {
	if p.Width < rowBytes || p.Height < rows || p.Stride < p.Width {
		return fmt.Errorf("%w: plane is %dx%d with stride %d, need %dx%d",
			ErrInvalidGeometry, p.Width, p.Height, p.Stride, rowBytes, rows)
	}
	if need := (rows-1)*p.Stride + rowBytes; len(p.Data) < need {
		return fmt.Errorf("%w: plane has %d bytes, need %d", ErrShortBuffer, len(p.Data), need)
	}
	return nil
}

// Frame is a decoded picture in one of the supported layouts.
type Frame struct {
	Width  int
	Height int
	Format PixelFormat
	Planes []Plane
}

// NewFrame allocates a frame with every plane stride rounded up to align bytes.
func NewFrame(format PixelFormat, width, height, align int) (*Frame, error) {
	if width <= 0 || height <= 0 || format.NumPlanes() == 0 {
		return nil, fmt.Errorf("%w: %dx%d %s", ErrInvalidGeometry, width, height, format)
	}
	if align <= 0 {
		align = 1
	}

	f := &Frame{
		Width:  width,
		Height: height,
		Format: format,
		Planes: make([]Plane, format.NumPlanes()),
	}
	for i := range f.Planes {
		w, h := format.PlaneDims(i, width, height)
		stride := (w + align - 1) / align * align
		f.Planes[i] = Plane{
			Data:   make([]byte, stride*h),
			Stride: stride,
			Width:  w,
			Height: h,
		}
	}
	return f, nil
}

// Info returns a VideoInfo describing this frame's geometry.
func (f *Frame) Info() VideoInfo {
	return VideoInfo{Width: f.Width, Height: f.Height, Format: f.Format}
}

// SameGeometry reports whether two frames share dimensions and layout.
func (f *Frame) SameGeometry(o *Frame) bool {
	return o != nil && f.Width == o.Width && f.Height == o.Height && f.Format == o.Format
}

// Size returns the tightly packed byte size of the frame.
func (f *Frame) Size() int {
	return f.Info().FrameSize()
}

// Pack writes the frame planes row by row, without stride padding, in plane order.
func (f *Frame) Pack(dst []byte) (int, error) {
	if len(dst) < f.Size() {
		return 0, ErrShortBuffer
	}
	n := 0
	for _, p := range f.Planes {
		for y := 0; y < p.Height; y++ {
			n += copy(dst[n:], p.Row(y))
		}
	}
	return n, nil
}

// Unpack fills the frame planes from tightly packed data produced by Pack.
func (f *Frame) Unpack(src []byte) (int, error) {
	if len(src) < f.Size() {
		return 0, ErrShortBuffer
	}
	n := 0
	for _, p := range f.Planes {
		for y := 0; y < p.Height; y++ {
			n += copy(p.Row(y), src[n:n+p.Width])
		}
	}
	return n, nil
}

// Clone returns a deep copy with identical strides.
func (f *Frame) Clone() *Frame {
	c := &Frame{Width: f.Width, Height: f.Height, Format: f.Format, Planes: make([]Plane, len(f.Planes))}
	for i, p := range f.Planes {
		c.Planes[i] = p
		c.Planes[i].Data = append([]byte(nil), p.Data...)
	}
	return c
}

// ToImage converts the frame to an image.YCbCr for inspection and debug output.
func (f *Frame) ToImage() image.Image {
	rect := image.Rect(0, 0, f.Width, f.Height)
	switch f.Format {
	case FormatYV12, FormatYUV422P:
		ratio := image.YCbCrSubsampleRatio420
		if f.Format == FormatYUV422P {
			ratio = image.YCbCrSubsampleRatio422
		}
		img := image.NewYCbCr(rect, ratio)
		copyPlane(img.Y, img.YStride, f.Planes[0])
		copyPlane(img.Cb, img.CStride, f.Planes[1])
		copyPlane(img.Cr, img.CStride, f.Planes[2])
		return img
	case FormatYUY2:
		img := image.NewYCbCr(rect, image.YCbCrSubsampleRatio422)
		p := f.Planes[0]
		for y := 0; y < f.Height; y++ {
			row := p.Row(y)
			for x := 0; x+1 < f.Width; x += 2 {
				i := x * 2
				img.Y[y*img.YStride+x] = row[i]
				img.Y[y*img.YStride+x+1] = row[i+2]
				img.Cb[y*img.CStride+x/2] = row[i+1]
				img.Cr[y*img.CStride+x/2] = row[i+3]
			}
		}
		return img
	default:
		return image.NewGray(rect)
	}
}

func copyPlane(dst []byte, dstStride int, p Plane) {
	for y := 0; y < p.Height; y++ {
		copy(dst[y*dstStride:], p.Row(y))
	}
}
