package ffpp

import "errors"

var (
	// ErrInvalidSpec is returned when the filter chain is empty or cannot be parsed.
	ErrInvalidSpec = errors.New("ffpp: invalid postprocessing settings")

	// ErrUnsupportedFormat is returned for layouts other than YV12 and YUY2.
	ErrUnsupportedFormat = errors.New("ffpp: only YV12 and YUY2 video supported")

	// ErrContextCreationFailed is returned when the postprocess context cannot be created.
	ErrContextCreationFailed = errors.New("ffpp: failed to create context")

	// ErrInvalidDimensions is returned when the clip size does not fit its layout.
	ErrInvalidDimensions = errors.New("ffpp: invalid frame dimensions")

	// ErrDimensionMismatch is returned when a frame differs from the geometry
	// the pipeline was built for.
	ErrDimensionMismatch = errors.New("ffpp: frame does not match filter geometry")
)
