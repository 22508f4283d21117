package ffpp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/ffpp/pkg/adapters/postproc"
	"github.com/user/ffpp/pkg/adapters/swscale"
	"github.com/user/ffpp/pkg/mocks"
	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

// invert is a stand-in filter whose output is easy to predict.
func invert(src, dst []video.Plane, width, height int, qp ports.QPTable, mode ports.PostprocMode, ctx ports.PostprocContext) error {
	for i := range src {
		for y := 0; y < src[i].Height; y++ {
			in, out := src[i].Row(y), dst[i].Row(y)
			for x := range in {
				out[x] = 255 - in[x]
			}
		}
	}
	return nil
}

func newFrame(t *testing.T, vi video.VideoInfo, seed int) *video.Frame {
	t.Helper()
	f, err := mocks.PatternFrame(vi, seed)
	require.NoError(t, err)
	return f
}

func blank(t *testing.T, vi video.VideoInfo) *video.Frame {
	t.Helper()
	f, err := video.NewFrame(vi.Format, vi.Width, vi.Height, 64)
	require.NoError(t, err)
	return f
}

func assertInverted(t *testing.T, src, dst *video.Frame) {
	t.Helper()
	require.Equal(t, len(src.Planes), len(dst.Planes))
	for i := range src.Planes {
		for y := 0; y < src.Planes[i].Height; y++ {
			in, out := src.Planes[i].Row(y), dst.Planes[i].Row(y)
			for x := range in {
				if out[x] != 255-in[x] {
					t.Fatalf("plane %d (%d,%d): got %d, want %d", i, x, y, out[x], 255-in[x])
				}
			}
		}
	}
}

func TestProcess_PlanarSinglePass(t *testing.T) {
	log := &mocks.CallLog{}
	pp := &mocks.Postprocessor{Log: log, PostprocessFunc: invert}
	sc := &mocks.Scaler{Log: log}
	vi := yv12(48, 32)

	st, err := Build(Libraries{Postproc: pp, Scaler: sc}, vi, 0, "hb:a,vb:a")
	require.NoError(t, err)
	defer st.Release()

	src, dst := newFrame(t, vi, 1), blank(t, vi)
	require.NoError(t, Process(st, src, dst))

	assert.Equal(t, []string{"postprocess"}, log.Calls())
	require.Len(t, pp.PostprocessCalls, 1)
	call := pp.PostprocessCalls[0]
	assert.Equal(t, 48, call.Width)
	assert.Equal(t, 32, call.Height)
	assert.Equal(t, 3, call.SrcPlanes)
	assert.Nil(t, call.QP.Values, "no quantizer table is passed")
	assertInverted(t, src, dst)
}

func TestProcess_PackedThreeStages(t *testing.T) {
	log := &mocks.CallLog{}
	pp := &mocks.Postprocessor{Log: log, PostprocessFunc: invert}
	sc := &mocks.Scaler{Log: log}
	vi := yuy2(40, 18)

	st, err := Build(Libraries{Postproc: pp, Scaler: sc}, vi, video.CPUMMX, "de")
	require.NoError(t, err)
	defer st.Release()

	src, dst := newFrame(t, vi, 2), blank(t, vi)
	require.NoError(t, Process(st, src, dst))

	assert.Equal(t, []string{
		"convert yuy2->yuv422p",
		"postprocess",
		"convert yuv422p->yuy2",
	}, log.Calls())
	for _, c := range sc.ConvertCalls {
		assert.Equal(t, 0, c.SliceY)
		assert.Equal(t, 18, c.SliceH)
	}
	assertInverted(t, src, dst)
}

func TestProcess_IdentityFilterRoundTrips(t *testing.T) {
	for _, vi := range []video.VideoInfo{yv12(32, 16), yuy2(32, 16)} {
		t.Run(vi.Format.String(), func(t *testing.T) {
			libs, _, _ := newLibs()
			st, err := Build(libs, vi, 0, "de")
			require.NoError(t, err)
			defer st.Release()

			src, dst := newFrame(t, vi, 3), blank(t, vi)
			require.NoError(t, Process(st, src, dst))

			want := make([]byte, src.Size())
			got := make([]byte, dst.Size())
			_, err = src.Pack(want)
			require.NoError(t, err)
			_, err = dst.Pack(got)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

// The result for a frame does not depend on which frames were processed
// before it.
func TestProcess_OrderIndependent(t *testing.T) {
	for _, vi := range []video.VideoInfo{yv12(32, 32), yuy2(32, 32)} {
		t.Run(vi.Format.String(), func(t *testing.T) {
			run := func(order []int) map[int][]byte {
				pp := &mocks.Postprocessor{PostprocessFunc: invert}
				st, err := Build(Libraries{Postproc: pp, Scaler: &mocks.Scaler{}}, vi, 0, "de")
				require.NoError(t, err)
				defer st.Release()

				out := make(map[int][]byte)
				for _, n := range order {
					dst := blank(t, vi)
					require.NoError(t, Process(st, newFrame(t, vi, n), dst))
					buf := make([]byte, dst.Size())
					_, err := dst.Pack(buf)
					require.NoError(t, err)
					out[n] = buf
				}
				return out
			}

			forward := run([]int{0, 1, 2, 3, 4})
			shuffled := run([]int{3, 0, 4, 4, 1, 2})
			assert.Equal(t, forward, shuffled)
		})
	}
}

func TestProcess_DifferentStrides(t *testing.T) {
	libs, _, _ := newLibs()
	vi := yv12(30, 20)
	st, err := Build(libs, vi, 0, "de")
	require.NoError(t, err)
	defer st.Release()

	src, err := video.NewFrame(vi.Format, vi.Width, vi.Height, 1)
	require.NoError(t, err)
	for i, p := range src.Planes {
		for y := 0; y < p.Height; y++ {
			for x := range p.Row(y) {
				p.Row(y)[x] = byte(i + x + y)
			}
		}
	}
	dst := blank(t, vi)
	require.NotEqual(t, src.Planes[0].Stride, dst.Planes[0].Stride)

	require.NoError(t, Process(st, src, dst))
	for i := range src.Planes {
		for y := 0; y < src.Planes[i].Height; y++ {
			assert.Equal(t, src.Planes[i].Row(y), dst.Planes[i].Row(y))
		}
	}
}

func TestProcess_DimensionMismatch(t *testing.T) {
	libs, pp, _ := newLibs()
	vi := yv12(32, 32)
	st, err := Build(libs, vi, 0, "de")
	require.NoError(t, err)
	defer st.Release()

	tests := []struct {
		name     string
		src, dst *video.Frame
	}{
		{"nil source", nil, blank(t, vi)},
		{"nil destination", blank(t, vi), nil},
		{"smaller source", blank(t, yv12(16, 32)), blank(t, vi)},
		{"taller destination", blank(t, vi), blank(t, yv12(32, 64))},
		{"other layout", blank(t, yuy2(32, 32)), blank(t, vi)},
		{"missing planes", &video.Frame{Width: 32, Height: 32, Format: video.FormatYV12}, blank(t, vi)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Process(st, tt.src, tt.dst)
			assert.ErrorIs(t, err, ErrDimensionMismatch)
		})
	}
	assert.Empty(t, pp.PostprocessCalls, "rejected frames never reach the library")
}

// truncate drops the second half of one plane, keeping the capacity behind it.
func truncate(f *video.Frame, plane int) *video.Frame {
	p := &f.Planes[plane]
	p.Data = p.Data[:len(p.Data)/2]
	return f
}

func TestProcess_TruncatedPlane(t *testing.T) {
	for _, vi := range []video.VideoInfo{yv12(16, 16), yuy2(16, 16)} {
		t.Run(vi.Format.String(), func(t *testing.T) {
			libs := Libraries{Postproc: postproc.New(), Scaler: swscale.New()}
			st, err := Build(libs, vi, 0, "de")
			require.NoError(t, err)
			defer st.Release()

			err = Process(st, truncate(blank(t, vi), 0), blank(t, vi))
			assert.ErrorIs(t, err, ErrDimensionMismatch, "short source")
			assert.ErrorIs(t, err, video.ErrShortBuffer)

			err = Process(st, blank(t, vi), truncate(blank(t, vi), vi.Format.NumPlanes()-1))
			assert.ErrorIs(t, err, ErrDimensionMismatch, "short destination")

			narrow := blank(t, vi)
			narrow.Planes[0].Stride = narrow.Planes[0].Width - 2
			assert.ErrorIs(t, Process(st, narrow, blank(t, vi)), ErrDimensionMismatch, "stride below row width")

			assert.NoError(t, Process(st, blank(t, vi), blank(t, vi)))
		})
	}
}

func TestProcess_PanicsAfterRelease(t *testing.T) {
	libs, _, _ := newLibs()
	vi := yuy2(16, 16)
	st, err := Build(libs, vi, 0, "de")
	require.NoError(t, err)
	st.Release()

	assert.Panics(t, func() {
		_ = Process(st, blank(t, vi), blank(t, vi))
	})
}

func TestProcess_LibraryErrors(t *testing.T) {
	t.Run("postprocess", func(t *testing.T) {
		pp := &mocks.Postprocessor{PostprocessFunc: func([]video.Plane, []video.Plane, int, int, ports.QPTable, ports.PostprocMode, ports.PostprocContext) error {
			return assert.AnError
		}}
		vi := yv12(16, 16)
		st, err := Build(Libraries{Postproc: pp, Scaler: &mocks.Scaler{}}, vi, 0, "de")
		require.NoError(t, err)
		defer st.Release()

		err = Process(st, blank(t, vi), blank(t, vi))
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("convert", func(t *testing.T) {
		sc := &mocks.Scaler{ConvertFunc: func(ports.Converter, []video.Plane, int, int, []video.Plane) (int, error) {
			return 0, assert.AnError
		}}
		vi := yuy2(16, 16)
		st, err := Build(Libraries{Postproc: &mocks.Postprocessor{}, Scaler: sc}, vi, 0, "de")
		require.NoError(t, err)
		defer st.Release()

		err = Process(st, blank(t, vi), blank(t, vi))
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "yuy2 to yuv422p")
	})
}
