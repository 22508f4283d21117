package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving frames before and after postprocessing for inspection.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveRunJSON saves the run metadata as JSON.
	SaveRunJSON(data []byte) error

	// SaveSourceFrame saves a frame as it came from the source clip.
	SaveSourceFrame(index int, img image.Image) error

	// SaveOutputFrame saves a postprocessed frame.
	SaveOutputFrame(index int, img image.Image) error

	// SaveComparison saves a side-by-side view of a frame before and after filtering.
	SaveComparison(index int, before, after image.Image) error
}
