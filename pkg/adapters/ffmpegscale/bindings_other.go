//go:build ios || android || !(amd64 || arm64)

package ffmpegscale

import (
	"unsafe"

	"github.com/user/ffpp/pkg/video"
)

func load() error {
	return ErrUnavailable
}

func getContext(srcW, srcH int, src video.PixelFormat, dstW, dstH int, dst video.PixelFormat, flags int32) (unsafe.Pointer, error) {
	return nil, ErrUnavailable
}

func freeContext(ctx unsafe.Pointer) {}

func scale(ctx unsafe.Pointer, src *[8]unsafe.Pointer, srcStride *[8]int32, sliceY, sliceH int, dst *[8]unsafe.Pointer, dstStride *[8]int32) int {
	return -1
}

func keepAlive(planes ...[]video.Plane) {}
