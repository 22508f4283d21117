//go:build !ios && !android && (amd64 || arm64)

package ffmpegscale

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/obinnaokechukwu/ffgo"
	"github.com/obinnaokechukwu/ffgo/avutil"
	"github.com/obinnaokechukwu/ffgo/swscale"

	"github.com/user/ffpp/pkg/video"
)

var pixelFormats = map[video.PixelFormat]avutil.PixelFormat{
	video.FormatYV12:    avutil.PixelFormatYUV420P,
	video.FormatYUY2:    avutil.PixelFormatYUYV422,
	video.FormatYUV422P: avutil.PixelFormatYUV422P,
}

func load() error {
	if err := ffgo.Init(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

func getContext(srcW, srcH int, src video.PixelFormat, dstW, dstH int, dst video.PixelFormat, flags int32) (unsafe.Pointer, error) {
	in, out := pixelFormats[src], pixelFormats[dst]
	if !swscale.IsSupportedInput(in) || !swscale.IsSupportedOutput(out) {
		return nil, fmt.Errorf("%w: libswscale cannot convert %s to %s", ErrUnsupportedConversion, src, dst)
	}
	ctx := swscale.GetContext(srcW, srcH, in, dstW, dstH, out, flags, nil, nil, nil)
	if ctx == nil {
		return nil, fmt.Errorf("%w: sws_getContext %dx%d %s to %dx%d %s", ErrScaleFailed, srcW, srcH, src, dstW, dstH, dst)
	}
	return ctx, nil
}

func freeContext(ctx unsafe.Pointer) {
	swscale.FreeContext(ctx)
}

func scale(ctx unsafe.Pointer, src *[8]unsafe.Pointer, srcStride *[8]int32, sliceY, sliceH int, dst *[8]unsafe.Pointer, dstStride *[8]int32) int {
	return int(swscale.Scale(ctx, src, srcStride, int32(sliceY), int32(sliceH), dst, dstStride))
}

func keepAlive(planes ...[]video.Plane) {
	runtime.KeepAlive(planes)
}
