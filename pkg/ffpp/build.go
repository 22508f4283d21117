// Package ffpp runs a deblocking/deringing postprocess filter over YV12 and
// YUY2 frames.
//
// Build negotiates everything a clip needs once: the parsed filter mode, the
// postprocess context with CPU and chroma format flags, and for YUY2 a pair of
// converters plus planar 4:2:2 scratch pictures. Process then runs
//
//	YV12: source planes → postprocess → destination planes
//	YUY2: source → YUV422P scratch → postprocess → YUV422P scratch → destination
//
// for every frame. Build and Process are synchronous and not safe for
// concurrent use on the same State.
package ffpp

import (
	"fmt"

	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

// specTerminator is appended to every filter chain before parsing.
//
// The C libpostproc parser can read past the end of the chain under some
// inputs; a trailing separator stops it at a token boundary. Parsers written
// in Go cannot over-read, but the Postprocessor port may be backed by the C
// library, so the terminator is always added. Parsers must ignore empty tokens.
const specTerminator = ","

func terminateSpec(spec string) string {
	return spec + specTerminator
}

// Build acquires the postprocess mode, context and, for YUY2, the converters
// and scratch pictures for clips described by vi. On error nothing stays
// allocated.
func Build(libs Libraries, vi video.VideoInfo, cpu video.CPUFlags, spec string) (_ *State, err error) {
	if spec == "" {
		return nil, fmt.Errorf("%w: PP argument is empty", ErrInvalidSpec)
	}

	res := &arena{}
	defer func() {
		if err != nil {
			res.free()
		}
	}()

	mode, err := libs.Postproc.ParseMode(terminateSpec(spec), ports.QualityMax)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	if mode == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	res.add(func() { libs.Postproc.FreeMode(mode) })

	flags := TranslateCPUFlags(cpu)

	var layout layoutState
	switch vi.Format {
	case video.FormatYV12:
		if err := checkDimensions(vi, 2, 2); err != nil {
			return nil, err
		}
		layout = planarState{}
	case video.FormatYUY2:
		if err := checkDimensions(vi, 2, 1); err != nil {
			return nil, err
		}
		packed, err := buildPacked(libs.Scaler, vi, ports.ScaleFlags(flags)|ports.ScaleBicubic, res)
		if err != nil {
			return nil, err
		}
		layout = packed
	default:
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedFormat, vi.Format)
	}
	flags |= layout.formatClass()

	ctx, err := libs.Postproc.NewContext(vi.Width, vi.Height, flags)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContextCreationFailed, err)
	}
	if ctx == nil {
		return nil, ErrContextCreationFailed
	}
	res.add(func() { libs.Postproc.FreeContext(ctx) })

	return &State{
		libs:      libs,
		width:     vi.Width,
		height:    vi.Height,
		format:    vi.Format,
		flags:     flags,
		mode:      mode,
		ctx:       ctx,
		layout:    layout,
		resources: res,
	}, nil
}

// buildPacked creates the YUY2 <-> YUV422P converters and scratch pictures,
// registering each on res as soon as it exists.
func buildPacked(scaler ports.Scaler, vi video.VideoInfo, flags ports.ScaleFlags, res *arena) (*packedState, error) {
	w, h := vi.Width, vi.Height
	st := &packedState{}

	to, err := scaler.NewConverter(w, h, video.FormatYUY2, w, h, video.FormatYUV422P, flags)
	if err != nil {
		return nil, fmt.Errorf("%w: converter to %s: %w", ErrContextCreationFailed, video.FormatYUV422P, err)
	}
	res.add(func() { scaler.FreeConverter(to) })
	st.toPlanar = to

	from, err := scaler.NewConverter(w, h, video.FormatYUV422P, w, h, video.FormatYUY2, flags)
	if err != nil {
		return nil, fmt.Errorf("%w: converter from %s: %w", ErrContextCreationFailed, video.FormatYUV422P, err)
	}
	res.add(func() { scaler.FreeConverter(from) })
	st.fromPlanar = from

	in, err := scaler.AllocPicture(video.FormatYUV422P, w, h)
	if err != nil {
		return nil, fmt.Errorf("%w: allocate input picture: %w", ErrContextCreationFailed, err)
	}
	res.add(func() { scaler.FreePicture(in) })
	st.input = in

	out, err := scaler.AllocPicture(video.FormatYUV422P, w, h)
	if err != nil {
		return nil, fmt.Errorf("%w: allocate output picture: %w", ErrContextCreationFailed, err)
	}
	res.add(func() { scaler.FreePicture(out) })
	st.output = out

	return st, nil
}

// checkDimensions requires positive sizes that are multiples of the layout's
// chroma subsampling.
func checkDimensions(vi video.VideoInfo, modW, modH int) error {
	if vi.Width <= 0 || vi.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, vi.Width, vi.Height)
	}
	if vi.Width%modW != 0 || vi.Height%modH != 0 {
		return fmt.Errorf("%w: %s needs width mod %d and height mod %d, got %dx%d",
			ErrInvalidDimensions, vi.Format, modW, modH, vi.Width, vi.Height)
	}
	return nil
}
