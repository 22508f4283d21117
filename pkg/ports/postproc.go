package ports

import "github.com/user/ffpp/pkg/video"

// QualityMax is the highest postprocessing quality level. Filters given the
// autoq option are enabled when the requested quality reaches their minimum.
const QualityMax = 6

// PPFlags is the postprocess library's context flag word: CPU capability bits
// in the high byte and the chroma format class in the low byte.
type PPFlags uint32

const (
	PPCPUCapsMMX   PPFlags = 0x80000000
	PPCPUCaps3DNow PPFlags = 0x40000000
	PPCPUCapsMMX2  PPFlags = 0x20000000
	PPCPUCapsSSE2  PPFlags = 0x02000000

	// PPFormat marks the low bits as a valid format class. The horizontal
	// chroma shift lives in bits 0-1 and the vertical shift in bits 4-5.
	PPFormat    PPFlags = 0x00000008
	PPFormat420 PPFlags = 0x00000011 | PPFormat
	PPFormat422 PPFlags = 0x00000001 | PPFormat
	PPFormat444 PPFlags = 0x00000000 | PPFormat

	ppFormatMask PPFlags = 0x0000003f
)

// FormatClass returns only the format bits of f.
func (f PPFlags) FormatClass() PPFlags {
	return f & ppFormatMask
}

// ChromaShift decodes the chroma subsampling carried by the format class.
// Without PPFormat the library assumes 4:2:0.
func (f PPFlags) ChromaShift() (h, v int) {
	if f&PPFormat == 0 {
		return 1, 1
	}
	return int(f & 0x3), int((f >> 4) & 0x3)
}

// PostprocMode is a parsed filter chain.
type PostprocMode interface {
	// String returns the normalized filter chain.
	String() string
}

// PostprocContext holds per-geometry scratch state for a postprocess run.
// It is mutated by Postprocess and must not be shared between goroutines.
type PostprocContext interface {
	// Size returns the frame dimensions the context was created for.
	Size() (width, height int)
}

// QPTable carries per-macroblock quantizers from a decoder.
// The zero value means "no table"; the library then uses a default quantizer.
type QPTable struct {
	Values   []int8
	Stride   int
	PictType int
}

// Postprocessor abstracts a deblocking/deringing postprocess library.
type Postprocessor interface {
	// ParseMode parses a filter chain description at the given quality.
	ParseMode(spec string, quality int) (PostprocMode, error)

	// FreeMode releases a mode returned by ParseMode.
	FreeMode(mode PostprocMode)

	// NewContext creates a context for frames of the given size.
	NewContext(width, height int, flags PPFlags) (PostprocContext, error)

	// FreeContext releases a context returned by NewContext.
	FreeContext(ctx PostprocContext)

	// Postprocess filters the three planes of src into the three planes of dst.
	// Planes carry their own strides; width and height are the luma size.
	Postprocess(src, dst []video.Plane, width, height int, qp QPTable, mode PostprocMode, ctx PostprocContext) error
}
