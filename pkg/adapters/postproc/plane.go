package postproc

// plane is a strided 8-bit sample buffer of w x h samples.
type plane struct {
	data   []byte
	stride int
	w, h   int
}

func (p plane) at(x, y int) int { return int(p.data[y*p.stride+x]) }

func (p plane) put(x, y, v int) { p.data[y*p.stride+x] = clip8(v) }

func (p plane) row(y int) []byte {
	off := y * p.stride
	return p.data[off : off+p.w]
}

func (p plane) copyFrom(src plane) {
	for y := 0; y < p.h; y++ {
		copy(p.row(y), src.row(y))
	}
}

// clone returns a tightly packed copy.
func (p plane) clone() plane {
	c := plane{data: make([]byte, p.w*p.h), stride: p.w, w: p.w, h: p.h}
	c.copyFrom(p)
	return c
}

func clip8(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	return -1
}
