package ports

import "github.com/user/ffpp/pkg/video"

// ScaleFlags selects the resampling kernel of a converter. CPU capability bits
// share the word using the same values as PPFlags.
type ScaleFlags uint32

const (
	ScaleFastBilinear ScaleFlags = 0x1
	ScaleBilinear     ScaleFlags = 0x2
	ScaleBicubic      ScaleFlags = 0x4
	ScalePoint        ScaleFlags = 0x10
	ScaleArea         ScaleFlags = 0x20

	scaleKernelMask ScaleFlags = 0xff
)

// Kernel returns only the resampling kernel bits of f.
func (f ScaleFlags) Kernel() ScaleFlags {
	return f & scaleKernelMask
}

// Converter is a conversion context bound to fixed source and destination
// geometry and layouts.
type Converter interface {
	// Formats returns the source and destination layouts.
	Formats() (src, dst video.PixelFormat)
}

// Scaler abstracts a colorspace conversion and scaling library.
type Scaler interface {
	// NewConverter creates a converter between two geometries and layouts.
	NewConverter(srcW, srcH int, srcFormat video.PixelFormat, dstW, dstH int, dstFormat video.PixelFormat, flags ScaleFlags) (Converter, error)

	// FreeConverter releases a converter returned by NewConverter.
	FreeConverter(conv Converter)

	// Convert converts the rows [sliceY, sliceY+sliceH) of src into dst and
	// returns the number of destination rows written.
	Convert(conv Converter, src []video.Plane, sliceY, sliceH int, dst []video.Plane) (int, error)

	// AllocPicture allocates a scratch picture.
	AllocPicture(format video.PixelFormat, width, height int) (*video.Frame, error)

	// FreePicture releases a picture returned by AllocPicture.
	FreePicture(pic *video.Frame)
}
