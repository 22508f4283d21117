package mocks

import (
	"fmt"
	"sync"

	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

// Converter is the converter handed out by Scaler.
type Converter struct {
	SrcW, SrcH int
	DstW, DstH int
	Src, Dst   video.PixelFormat
	Flags      ports.ScaleFlags
}

func (c *Converter) Formats() (video.PixelFormat, video.PixelFormat) { return c.Src, c.Dst }

// ConvertCall records a call to Convert.
type ConvertCall struct {
	Src, Dst       video.PixelFormat
	SliceY, SliceH int
}

// Scaler is a mock implementation of ports.Scaler. Its default Convert
// repacks between YUY2 and YUV422P of equal size.
type Scaler struct {
	mu sync.Mutex

	NewConverterFunc func(srcW, srcH int, srcFormat video.PixelFormat, dstW, dstH int, dstFormat video.PixelFormat, flags ports.ScaleFlags) (ports.Converter, error)
	AllocPictureFunc func(format video.PixelFormat, width, height int) (*video.Frame, error)
	ConvertFunc      func(conv ports.Converter, src []video.Plane, sliceY, sliceH int, dst []video.Plane) (int, error)

	// Recorded calls for verification
	Converters     []*Converter
	ConvertCalls   []ConvertCall
	LiveConverters int
	LivePictures   int
	DoubleFrees    int

	// Log, when set, receives "convert <src>-><dst>" for every Convert call.
	Log *CallLog

	freed map[any]bool
}

func (m *Scaler) NewConverter(srcW, srcH int, srcFormat video.PixelFormat, dstW, dstH int, dstFormat video.PixelFormat, flags ports.ScaleFlags) (ports.Converter, error) {
	var conv ports.Converter
	if m.NewConverterFunc != nil {
		var err error
		conv, err = m.NewConverterFunc(srcW, srcH, srcFormat, dstW, dstH, dstFormat, flags)
		if err != nil {
			return nil, err
		}
	} else {
		c := &Converter{SrcW: srcW, SrcH: srcH, DstW: dstW, DstH: dstH, Src: srcFormat, Dst: dstFormat, Flags: flags}
		m.mu.Lock()
		m.Converters = append(m.Converters, c)
		m.mu.Unlock()
		conv = c
	}

	m.mu.Lock()
	m.LiveConverters++
	m.mu.Unlock()
	return conv, nil
}

func (m *Scaler) FreeConverter(conv ports.Converter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markFreed(conv) {
		m.LiveConverters--
	}
}

func (m *Scaler) Convert(conv ports.Converter, src []video.Plane, sliceY, sliceH int, dst []video.Plane) (int, error) {
	from, to := conv.Formats()
	m.mu.Lock()
	m.ConvertCalls = append(m.ConvertCalls, ConvertCall{Src: from, Dst: to, SliceY: sliceY, SliceH: sliceH})
	m.mu.Unlock()
	m.Log.Record(fmt.Sprintf("convert %s->%s", from, to))

	if m.ConvertFunc != nil {
		return m.ConvertFunc(conv, src, sliceY, sliceH, dst)
	}

	switch {
	case from == video.FormatYUY2 && to == video.FormatYUV422P:
		p := src[0]
		for y := 0; y < sliceH; y++ {
			row := p.Row(sliceY + y)
			for x := 0; x < len(row)/4; x++ {
				dst[0].Row(y)[2*x] = row[4*x]
				dst[1].Row(y)[x] = row[4*x+1]
				dst[0].Row(y)[2*x+1] = row[4*x+2]
				dst[2].Row(y)[x] = row[4*x+3]
			}
		}
	case from == video.FormatYUV422P && to == video.FormatYUY2:
		for y := 0; y < sliceH; y++ {
			out := dst[0].Row(y)
			for x := 0; x < len(out)/4; x++ {
				out[4*x] = src[0].Row(sliceY + y)[2*x]
				out[4*x+1] = src[1].Row(sliceY + y)[x]
				out[4*x+2] = src[0].Row(sliceY + y)[2*x+1]
				out[4*x+3] = src[2].Row(sliceY + y)[x]
			}
		}
	default:
		return 0, fmt.Errorf("mock convert: %s to %s not supported", from, to)
	}
	return sliceH, nil
}

func (m *Scaler) AllocPicture(format video.PixelFormat, width, height int) (*video.Frame, error) {
	var pic *video.Frame
	var err error
	if m.AllocPictureFunc != nil {
		pic, err = m.AllocPictureFunc(format, width, height)
	} else {
		pic, err = video.NewFrame(format, width, height, video.DefaultAlign)
	}
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.LivePictures++
	m.mu.Unlock()
	return pic, nil
}

func (m *Scaler) FreePicture(pic *video.Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markFreed(pic) {
		m.LivePictures--
	}
}

// Live returns the number of converters and pictures not yet freed.
func (m *Scaler) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LiveConverters + m.LivePictures
}

// markFreed must be called with mu held.
func (m *Scaler) markFreed(h any) bool {
	if m.freed == nil {
		m.freed = make(map[any]bool)
	}
	if m.freed[h] {
		m.DoubleFrees++
		return false
	}
	m.freed[h] = true
	return true
}

var _ ports.Scaler = (*Scaler)(nil)
