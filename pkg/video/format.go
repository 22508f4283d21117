// Package video defines the frame model shared by the filter and its hosts.
package video

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned when a pixel format name cannot be parsed.
var ErrUnknownFormat = errors.New("video: unknown pixel format")

// PixelFormat identifies the memory layout of a frame.
type PixelFormat int

const (
	// FormatUnknown is the zero value and is never a valid frame layout.
	FormatUnknown PixelFormat = iota
	// FormatYV12 is planar YUV 4:2:0 with three independently strided planes.
	FormatYV12
	// FormatYUY2 is packed YUV 4:2:2, one plane of Y0 U Y1 V byte quads.
	FormatYUY2
	// FormatYUV422P is planar YUV 4:2:2. Hosts never hand it to the filter;
	// it only exists as the bridging layout for FormatYUY2.
	FormatYUV422P
)

// String returns the conventional name of the format.
func (f PixelFormat) String() string {
	switch f {
	case FormatYV12:
		return "yv12"
	case FormatYUY2:
		return "yuy2"
	case FormatYUV422P:
		return "yuv422p"
	default:
		return "unknown"
	}
}

// ParsePixelFormat parses a format name. Common aliases from other tools are accepted.
func ParsePixelFormat(s string) (PixelFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yv12", "i420", "yuv420p":
		return FormatYV12, nil
	case "yuy2", "yuyv", "yuyv422":
		return FormatYUY2, nil
	case "yuv422p", "i422":
		return FormatYUV422P, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f PixelFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *PixelFormat) UnmarshalText(text []byte) error {
	v, err := ParsePixelFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// NumPlanes returns the number of memory planes a frame of this format carries.
func (f PixelFormat) NumPlanes() int {
	switch f {
	case FormatYV12, FormatYUV422P:
		return 3
	case FormatYUY2:
		return 1
	default:
		return 0
	}
}

// IsPlanar reports whether luma and chroma live in separate planes.
func (f PixelFormat) IsPlanar() bool {
	return f.NumPlanes() == 3
}

// ChromaShift returns the log2 horizontal and vertical chroma subsampling.
func (f PixelFormat) ChromaShift() (h, v int) {
	switch f {
	case FormatYV12:
		return 1, 1
	case FormatYUY2, FormatYUV422P:
		return 1, 0
	default:
		return 0, 0
	}
}

// PlaneDims returns the number of meaningful bytes per row and the number of
// rows of the given plane for a width x height frame.
func (f PixelFormat) PlaneDims(plane, width, height int) (rowBytes, rows int) {
	switch f {
	case FormatYUY2:
		if plane == 0 {
			return width * 2, height
		}
	case FormatYV12, FormatYUV422P:
		if plane == 0 {
			return width, height
		}
		if plane < 3 {
			hs, vs := f.ChromaShift()
			return shiftUp(width, hs), shiftUp(height, vs)
		}
	}
	return 0, 0
}

// shiftUp divides by 2^s rounding up.
func shiftUp(n, s int) int {
	return -((-n) >> s)
}
