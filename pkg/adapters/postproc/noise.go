package postproc

// noiseHistory is the temporal noise reducer's memory for one plane: the
// previous blurred output and the error of every block.
type noiseHistory struct {
	blurred plane
	past    *blockGrid
	primed  bool
}

func newNoiseHistory(w, h int) *noiseHistory {
	return &noiseHistory{
		blurred: plane{data: make([]byte, w*h), stride: w, w: w, h: h},
		past:    newBlockGrid(w, h),
	}
}

// reduce blends every full 8x8 block of p with its history. The stronger the
// difference to the previous frame, the less history is kept.
func (n *noiseHistory) reduce(p plane, maxNoise [3]int) {
	if !n.primed {
		n.blurred.copyFrom(p)
		n.primed = true
		return
	}

	for by := 0; by < n.past.rows; by++ {
		for bx := 0; bx < n.past.cols; bx++ {
			x0, y0 := bx*blockSize, by*blockSize
			if x0+blockSize > p.w || y0+blockSize > p.h {
				continue
			}

			ssd := 0
			for y := y0; y < y0+blockSize; y++ {
				for x := x0; x < x0+blockSize; x++ {
					d := n.blurred.at(x, y) - p.at(x, y)
					ssd += d * d
				}
			}
			d := (4*ssd + n.past.at(bx, by-1) + n.past.at(bx-1, by) +
				n.past.at(bx+1, by) + n.past.at(bx, by+1) + 4) >> 3
			n.past.set(bx, by, ssd)

			var blend func(ref, cur int) int
			switch {
			case d > maxNoise[1] && d < maxNoise[2]:
				blend = func(ref, cur int) int { return (ref + cur + 1) >> 1 }
			case d > maxNoise[1]:
				blend = func(ref, cur int) int { return cur }
			case d < maxNoise[0]:
				blend = func(ref, cur int) int { return (ref*7 + cur + 4) >> 3 }
			default:
				blend = func(ref, cur int) int { return (ref*3 + cur + 2) >> 2 }
			}

			for y := y0; y < y0+blockSize; y++ {
				for x := x0; x < x0+blockSize; x++ {
					v := blend(n.blurred.at(x, y), p.at(x, y))
					n.blurred.put(x, y, v)
					p.put(x, y, v)
				}
			}
		}
	}
}
