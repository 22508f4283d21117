package ffmpegscale

import "errors"

var (
	// ErrUnavailable is returned when the FFmpeg shared libraries cannot be
	// loaded or the platform has no bindings for them.
	ErrUnavailable = errors.New("ffmpegscale: FFmpeg shared libraries not available")

	// ErrUnsupportedConversion is returned for layouts or kernels libswscale is not asked to handle.
	ErrUnsupportedConversion = errors.New("ffmpegscale: unsupported conversion")

	// ErrScaleFailed is returned when libswscale refuses a context or a conversion.
	ErrScaleFailed = errors.New("ffmpegscale: libswscale call failed")
)
