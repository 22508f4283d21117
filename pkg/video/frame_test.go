package video

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaneDims(t *testing.T) {
	tests := []struct {
		format PixelFormat
		plane  int
		wantW  int
		wantH  int
	}{
		{FormatYV12, 0, 64, 48},
		{FormatYV12, 1, 32, 24},
		{FormatYV12, 2, 32, 24},
		{FormatYUV422P, 1, 32, 48},
		{FormatYUY2, 0, 128, 48},
		{FormatYUY2, 1, 0, 0},
	}
	for _, tt := range tests {
		w, h := tt.format.PlaneDims(tt.plane, 64, 48)
		assert.Equal(t, tt.wantW, w, "%s plane %d width", tt.format, tt.plane)
		assert.Equal(t, tt.wantH, h, "%s plane %d height", tt.format, tt.plane)
	}
}

func TestPlaneDims_OddSizeRoundsUp(t *testing.T) {
	w, h := FormatYV12.PlaneDims(1, 5, 3)
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)
}

func TestNewFrame_AlignsStrides(t *testing.T) {
	f, err := NewFrame(FormatYV12, 70, 10, 32)
	require.NoError(t, err)
	require.Len(t, f.Planes, 3)

	assert.Equal(t, 96, f.Planes[0].Stride)
	assert.Equal(t, 70, f.Planes[0].Width)
	assert.Equal(t, 64, f.Planes[1].Stride)
	assert.Equal(t, 35, f.Planes[1].Width)
	assert.Len(t, f.Planes[0].Data, 96*10)
}

func TestNewFrame_InvalidGeometry(t *testing.T) {
	_, err := NewFrame(FormatYV12, 0, 10, 16)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = NewFrame(FormatUnknown, 16, 16, 16)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestFrame_PackUnpack(t *testing.T) {
	f, err := NewFrame(FormatYUY2, 6, 3, 16)
	require.NoError(t, err)

	raw := make([]byte, f.Size())
	for i := range raw {
		raw[i] = byte(i)
	}
	n, err := f.Unpack(raw)
	require.NoError(t, err)
	assert.Equal(t, 36, n)
	assert.Equal(t, byte(12), f.Planes[0].Data[16], "second row starts at the stride")

	out := make([]byte, f.Size())
	_, err = f.Pack(out)
	require.NoError(t, err)
	assert.Equal(t, raw, out)

	_, err = f.Pack(out[:10])
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestFrame_ToImage_YUY2(t *testing.T) {
	f, err := NewFrame(FormatYUY2, 2, 1, 1)
	require.NoError(t, err)
	copy(f.Planes[0].Data, []byte{10, 20, 30, 40})

	img, ok := f.ToImage().(*image.YCbCr)
	require.True(t, ok)
	assert.Equal(t, image.YCbCrSubsampleRatio422, img.SubsampleRatio)
	assert.Equal(t, []byte{10, 30}, img.Y[:2])
	assert.Equal(t, byte(20), img.Cb[0])
	assert.Equal(t, byte(40), img.Cr[0])
}

func TestFrame_SameGeometry(t *testing.T) {
	a, _ := NewFrame(FormatYV12, 16, 16, 16)
	b, _ := NewFrame(FormatYV12, 16, 16, 64)
	c, _ := NewFrame(FormatYUY2, 16, 16, 16)

	assert.True(t, a.SameGeometry(b))
	assert.False(t, a.SameGeometry(c))
	assert.False(t, a.SameGeometry(nil))
}

func TestParsePixelFormat(t *testing.T) {
	f, err := ParsePixelFormat("I420")
	require.NoError(t, err)
	assert.Equal(t, FormatYV12, f)

	f, err = ParsePixelFormat("yuyv422")
	require.NoError(t, err)
	assert.Equal(t, FormatYUY2, f)

	_, err = ParsePixelFormat("rgb24")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestCPUFlags_Names(t *testing.T) {
	flags := CPUMMX | CPUSSE2
	assert.Equal(t, []string{"mmx", "sse2"}, flags.Names())
	assert.Equal(t, "mmx,sse2", flags.String())
	assert.Equal(t, "none", CPUFlags(0).String())

	got, ok := CPUFlagByName("ISSE")
	assert.True(t, ok)
	assert.Equal(t, CPUIntegerSSE, got)
}

func TestPlane_Holds(t *testing.T) {
	f, err := NewFrame(FormatYUY2, 8, 4, 32)
	require.NoError(t, err)
	p := f.Planes[0]
	assert.NoError(t, p.Holds(16, 4))

	short := p
	short.Data = p.Data[:len(p.Data)/2]
	assert.ErrorIs(t, short.Holds(16, 4), ErrShortBuffer)

	narrow := p
	narrow.Stride = 8
	assert.ErrorIs(t, narrow.Holds(16, 4), ErrInvalidGeometry)

	assert.ErrorIs(t, p.Holds(16, 5), ErrInvalidGeometry)
	assert.ErrorIs(t, p.Holds(24, 4), ErrInvalidGeometry)
}

func TestPlane_RowStopsAtLength(t *testing.T) {
	f, err := NewFrame(FormatYV12, 16, 4, 16)
	require.NoError(t, err)
	p := f.Planes[0]

	row := p.Row(1)
	assert.Len(t, row, 16)
	assert.Equal(t, 16, cap(row), "a row must not reach into the next one")

	// Spare capacity past len must not make a truncated plane look whole.
	p.Data = p.Data[:20]
	assert.Panics(t, func() { p.Row(1) })
}
