package postproc

const deringThreshold = 20

// deringPlane smooths pixels inside every 8x8 block that lie in a uniform
// region on either side of the block's mid level. The change per pixel is
// limited by the block quantizer.
func deringPlane(p plane, q *blockGrid) {
	for by := 0; by < q.rows; by++ {
		for bx := 0; bx < q.cols; bx++ {
			x0, y0 := bx*blockSize, by*blockSize
			if x0 < 1 || y0 < 1 || x0+blockSize >= p.w || y0+blockSize >= p.h {
				continue
			}
			deringBlock(p, x0-1, y0-1, q.at(bx, by))
		}
	}
}

// deringBlock works on the 10x10 window at (wx, wy): the block plus a one
// pixel border.
func deringBlock(p plane, wx, wy, qp int) {
	minV, maxV := 255, 0
	for y := 1; y < 9; y++ {
		for x := 1; x < 9; x++ {
			v := p.at(wx+x, wy+y)
			minV = min(minV, v)
			maxV = max(maxV, v)
		}
	}
	if maxV-minV < deringThreshold {
		return
	}
	avg := (minV + maxV + 1) >> 1

	// Bit x of s[y] is set when the pixel and both horizontal neighbours
	// are on the same side of avg. The high half tracks the dark side.
	var s [10]uint32
	for y := 0; y < 10; y++ {
		var t uint32
		for x := 0; x < 10; x++ {
			if p.at(wx+x, wy+y) > avg {
				t |= 1 << x
			}
		}
		t |= (^t) << 16
		t &= (t << 1) & (t >> 1)
		s[y] = t
	}
	for y := 1; y < 9; y++ {
		t := s[y-1] & s[y] & s[y+1]
		t |= t >> 16
		s[y-1] = t
	}

	qp2 := qp/2 + 1
	for y := 1; y < 9; y++ {
		t := s[y-1]
		for x := 1; x < 9; x++ {
			if t&(1<<x) == 0 {
				continue
			}
			px, py := wx+x, wy+y
			f := p.at(px-1, py-1) + 2*p.at(px, py-1) + p.at(px+1, py-1) +
				2*p.at(px-1, py) + 4*p.at(px, py) + 2*p.at(px+1, py) +
				p.at(px-1, py+1) + 2*p.at(px, py+1) + p.at(px+1, py+1)
			f = (f + 8) >> 4

			v := p.at(px, py)
			switch {
			case v+qp2 < f:
				p.put(px, py, v+qp2)
			case v-qp2 > f:
				p.put(px, py, v-qp2)
			default:
				p.put(px, py, f)
			}
		}
	}
}
