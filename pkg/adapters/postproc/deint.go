package postproc

// deinterlacers in order of precedence when several are enabled.
var deinterlacers = []struct {
	mask filterSet
	fn   func(dst, src plane)
}{
	{linearBlendDeint, linearBlend},
	{linearIpolDeint, linearIpol},
	{medianDeint, median},
	{cubicIpolDeint, cubicIpol},
	{ffmpegDeint, ffmpegDeinterlace},
	{lowpass5Deint, lowpass5},
}

// deinterlace runs the first deinterlacer enabled in set.
func deinterlace(p plane, set filterSet) {
	for _, d := range deinterlacers {
		if set.has(d.mask) {
			d.fn(p, p.clone())
			return
		}
	}
}

// line returns row y of src with the index clamped to the plane.
func line(src plane, y int) []byte {
	return src.row(max(0, min(y, src.h-1)))
}

// linearBlend filters every line with (1 2 1)/4.
func linearBlend(dst, src plane) {
	for y := 0; y < src.h; y++ {
		a, b, c := line(src, y-1), line(src, y), line(src, y+1)
		out := dst.row(y)
		for x := range out {
			out[x] = byte((int(a[x]) + 2*int(b[x]) + int(c[x]) + 2) >> 2)
		}
	}
}

// linearIpol replaces odd lines with the mean of their neighbours.
func linearIpol(dst, src plane) {
	for y := 1; y < src.h; y += 2 {
		a, c := line(src, y-1), line(src, y+1)
		out := dst.row(y)
		for x := range out {
			out[x] = byte((int(a[x]) + int(c[x]) + 1) >> 1)
		}
	}
}

// cubicIpol replaces odd lines with a (-1 9 9 -1)/16 interpolation.
func cubicIpol(dst, src plane) {
	for y := 1; y < src.h; y += 2 {
		a, b, c, d := line(src, y-3), line(src, y-1), line(src, y+1), line(src, y+3)
		out := dst.row(y)
		for x := range out {
			out[x] = clip8((-int(a[x]) + 9*int(b[x]) + 9*int(c[x]) - int(d[x]) + 8) >> 4)
		}
	}
}

// median replaces odd lines with the median of the line and its neighbours.
func median(dst, src plane) {
	for y := 1; y < src.h; y += 2 {
		a, b, c := line(src, y-1), line(src, y), line(src, y+1)
		out := dst.row(y)
		for x := range out {
			out[x] = med3(a[x], b[x], c[x])
		}
	}
}

func med3(a, b, c byte) byte {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		return a
	}
	return b
}

// ffmpegDeinterlace filters odd lines with (-1 4 2 4 -1)/8.
func ffmpegDeinterlace(dst, src plane) {
	for y := 1; y < src.h; y += 2 {
		a, b, c, d, e := line(src, y-2), line(src, y-1), line(src, y), line(src, y+1), line(src, y+2)
		out := dst.row(y)
		for x := range out {
			out[x] = clip8((-int(a[x]) + 4*int(b[x]) + 2*int(c[x]) + 4*int(d[x]) - int(e[x]) + 4) >> 3)
		}
	}
}

// lowpass5 filters every line with (-1 2 6 2 -1)/8.
func lowpass5(dst, src plane) {
	for y := 0; y < src.h; y++ {
		a, b, c, d, e := line(src, y-2), line(src, y-1), line(src, y), line(src, y+1), line(src, y+2)
		out := dst.row(y)
		for x := range out {
			out[x] = clip8((-int(a[x]) + 2*int(b[x]) + 6*int(c[x]) + 2*int(d[x]) - int(e[x]) + 4) >> 3)
		}
	}
}
