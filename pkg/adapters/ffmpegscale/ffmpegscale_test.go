package ffmpegscale

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

// newScalerOrSkip loads the system libraries or skips the test.
func newScalerOrSkip(t *testing.T) *Scaler {
	t.Helper()
	s, err := New()
	if err != nil {
		require.ErrorIs(t, err, ErrUnavailable)
		t.Skipf("libswscale not loadable: %v", err)
	}
	return s
}

func TestNewConverter_RejectsBeforeLoading(t *testing.T) {
	s := &Scaler{}
	tests := []struct {
		name    string
		srcW    int
		src     video.PixelFormat
		dst     video.PixelFormat
		flags   ports.ScaleFlags
		wantErr error
	}{
		{"zero width", 0, video.FormatYV12, video.FormatYV12, ports.ScaleBilinear, video.ErrInvalidGeometry},
		{"unknown source", 16, video.FormatUnknown, video.FormatYV12, ports.ScaleBilinear, ErrUnsupportedConversion},
		{"unknown destination", 16, video.FormatYUY2, video.PixelFormat(42), ports.ScaleBilinear, ErrUnsupportedConversion},
		{"odd yuy2 width", 15, video.FormatYUY2, video.FormatYUV422P, ports.ScaleBilinear, video.ErrInvalidGeometry},
		{"unknown kernel", 16, video.FormatYUY2, video.FormatYUV422P, ports.ScaleFlags(0x40), ErrUnsupportedConversion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, err := s.NewConverter(tt.srcW, 16, tt.src, 16, 16, tt.dst, tt.flags)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, conv)
		})
	}
	assert.Equal(t, 0, s.Live())
}

func TestKernelFor_DropsCPUBits(t *testing.T) {
	k, err := kernelFor(ports.ScaleBicubic | 0x80000000)
	require.NoError(t, err)
	assert.Equal(t, int32(ports.ScaleBicubic), k)

	k, err = kernelFor(0)
	require.NoError(t, err)
	assert.Equal(t, int32(ports.ScaleBilinear), k)
}

type foreignConverter struct{}

func (foreignConverter) Formats() (video.PixelFormat, video.PixelFormat) {
	return video.FormatYV12, video.FormatYV12
}

func TestConvert_RejectsBadInputs(t *testing.T) {
	s := &Scaler{}
	src, err := video.NewFrame(video.FormatYUY2, 16, 8, 16)
	require.NoError(t, err)
	dst, err := video.NewFrame(video.FormatYUV422P, 16, 8, 16)
	require.NoError(t, err)

	// A non-nil context that is never dereferenced: every case fails first.
	live := &Converter{ctx: unsafe.Pointer(new(byte)), srcW: 16, srcH: 8, dstW: 16, dstH: 8, src: video.FormatYUY2, dst: video.FormatYUV422P}

	_, err = s.Convert(foreignConverter{}, src.Planes, 0, 8, dst.Planes)
	assert.ErrorIs(t, err, ErrUnsupportedConversion)

	_, err = s.Convert(&Converter{srcH: 8, src: video.FormatYUY2, dst: video.FormatYUV422P}, src.Planes, 0, 8, dst.Planes)
	assert.ErrorIs(t, err, ErrScaleFailed)

	_, err = s.Convert(live, dst.Planes, 0, 8, dst.Planes)
	assert.ErrorIs(t, err, video.ErrInvalidGeometry)

	_, err = s.Convert(live, src.Planes, 4, 8, dst.Planes)
	assert.ErrorIs(t, err, video.ErrInvalidGeometry)

	short := src.Clone()
	short.Planes[0].Data = short.Planes[0].Data[:len(short.Planes[0].Data)-1]
	_, err = s.Convert(live, short.Planes, 0, 8, dst.Planes)
	assert.ErrorIs(t, err, video.ErrShortBuffer)

	narrow := dst.Clone()
	narrow.Planes[2].Width = 4
	_, err = s.Convert(live, src.Planes, 0, 8, narrow.Planes)
	assert.ErrorIs(t, err, video.ErrInvalidGeometry)
}

func TestFreeConverter_IgnoresFreedAndForeign(t *testing.T) {
	s := &Scaler{}
	s.FreeConverter(nil)
	s.FreeConverter(foreignConverter{})
	s.FreeConverter(&Converter{})
	assert.Equal(t, 0, s.Live())
}

func TestScaler_YUY2RoundTrip(t *testing.T) {
	s := newScalerOrSkip(t)

	const w, h = 32, 8
	in, err := s.AllocPicture(video.FormatYUY2, w, h)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		row := in.Planes[0].Row(y)
		for x := range row {
			row[x] = byte(16 + (x*7+y*13)%220)
		}
	}
	planar, err := s.AllocPicture(video.FormatYUV422P, w, h)
	require.NoError(t, err)
	out, err := s.AllocPicture(video.FormatYUY2, w, h)
	require.NoError(t, err)

	unpack, err := s.NewConverter(w, h, video.FormatYUY2, w, h, video.FormatYUV422P, ports.ScalePoint)
	require.NoError(t, err)
	pack, err := s.NewConverter(w, h, video.FormatYUV422P, w, h, video.FormatYUY2, ports.ScalePoint)
	require.NoError(t, err)

	n, err := s.Convert(unpack, in.Planes, 0, h, planar.Planes)
	require.NoError(t, err)
	assert.Equal(t, h, n)
	assert.Equal(t, in.Planes[0].Row(3)[4], planar.Planes[0].Row(3)[2])
	assert.Equal(t, in.Planes[0].Row(3)[5], planar.Planes[1].Row(3)[1])

	n, err = s.Convert(pack, planar.Planes, 0, h, out.Planes)
	require.NoError(t, err)
	assert.Equal(t, h, n)
	for y := 0; y < h; y++ {
		assert.Equal(t, in.Planes[0].Row(y), out.Planes[0].Row(y), "row %d", y)
	}

	s.FreeConverter(unpack)
	s.FreeConverter(pack)
	s.FreePicture(in)
	s.FreePicture(planar)
	s.FreePicture(out)
	assert.Equal(t, 0, s.Live())

	_, err = s.Convert(pack, planar.Planes, 0, h, out.Planes)
	assert.True(t, errors.Is(err, ErrScaleFailed))
}
