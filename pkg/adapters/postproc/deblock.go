package postproc

// direction selects which block edges a deblocking pass smooths.
type direction int

const (
	// vertical filters columns across horizontal block edges.
	vertical direction = iota
	// horizontal filters rows across vertical block edges.
	horizontal
)

// segment addresses ten samples straddling a block edge. The edge lies
// between samples 4 and 5.
type segment struct {
	data []byte
	off  int
	step int
}

func (s segment) get(i int) int { return int(s.data[s.off+i*s.step]) }

func (s segment) set(i, v int) { s.data[s.off+i*s.step] = clip8(v) }

type edgeFilter func(segs []segment, qp int, m *Mode)

// deblockEdges runs f over every interior block edge of p in direction dir.
// Only full blocks with four samples on each side of the edge and one more
// beyond are filtered.
func deblockEdges(p plane, dir direction, q *blockGrid, f edgeFilter, m *Mode) {
	var segs [blockSize]segment
	for by := 0; by < q.rows; by++ {
		for bx := 0; bx < q.cols; bx++ {
			x0, y0 := bx*blockSize, by*blockSize
			if x0+blockSize > p.w || y0+blockSize > p.h {
				continue
			}
			switch dir {
			case vertical:
				if y0 < 5 || y0+4 >= p.h {
					continue
				}
				for i := range segs {
					segs[i] = segment{data: p.data, off: (y0-5)*p.stride + x0 + i, step: p.stride}
				}
			case horizontal:
				if x0 < 5 || x0+4 >= p.w {
					continue
				}
				for i := range segs {
					segs[i] = segment{data: p.data, off: (y0+i)*p.stride + x0 - 5, step: 1}
				}
			}
			f(segs[:], q.at(bx, by), m)
		}
	}
}

// isFlat counts near-equal neighbours inside the eight segments.
func isFlat(segs []segment, qp int, m *Mode) bool {
	dcOffset := ((qp * m.baseDcDiff) >> 8) + 1
	dcThreshold := dcOffset*2 + 1
	numEq := 0
	for _, s := range segs {
		for i := 1; i < 8; i++ {
			if uint(s.get(i)-s.get(i+1)+dcOffset) < uint(dcThreshold) {
				numEq++
			}
		}
	}
	return numEq > m.flatnessThreshold
}

func minMaxOK(s segment, qp int) bool {
	return uint(s.get(1)-s.get(8)+2*qp) <= uint(4*qp)
}

func defaultDeblock(segs []segment, qp int, m *Mode) {
	if !isFlat(segs, qp, m) {
		for _, s := range segs {
			defFilter(s, qp)
		}
		return
	}
	for _, s := range segs {
		if !minMaxOK(s, qp) {
			return
		}
	}
	for _, s := range segs {
		lowPass(s, qp)
	}
}

// accurateDeblock decides between smoothing and edge correction for the
// whole block but checks the range of every segment on its own.
func accurateDeblock(segs []segment, qp int, m *Mode) {
	if !isFlat(segs, qp, m) {
		for _, s := range segs {
			defFilter(s, qp)
		}
		return
	}
	for _, s := range segs {
		if minMaxOK(s, qp) {
			lowPass(s, qp)
		}
	}
}

func x1Filter(segs []segment, qp int, m *Mode) {
	for _, s := range segs {
		x1(s, qp)
	}
}

// lowPass is a 9-tap smoothing over samples 1..8. Samples 0 and 9 are used
// as padding only when they are close to the block content.
func lowPass(s segment, qp int) {
	var l [10]int
	for i := range l {
		l[i] = s.get(i)
	}
	first := l[1]
	if abs(l[0]-l[1]) < qp {
		first = l[0]
	}
	last := l[8]
	if abs(l[8]-l[9]) < qp {
		last = l[9]
	}

	var sums [10]int
	sums[0] = 4*first + l[1] + l[2] + l[3] + 4
	sums[1] = sums[0] - first + l[4]
	sums[2] = sums[1] - first + l[5]
	sums[3] = sums[2] - first + l[6]
	sums[4] = sums[3] - first + l[7]
	sums[5] = sums[4] - l[1] + l[8]
	sums[6] = sums[5] - l[2] + last
	sums[7] = sums[6] - l[3] + last
	sums[8] = sums[7] - l[4] + last
	sums[9] = sums[8] - l[5] + last

	for i := 1; i <= 8; i++ {
		s.set(i, (sums[i-1]+sums[i+1]+2*l[i])>>4)
	}
}

// defFilter corrects a step at the edge when the energy across it is small
// compared to the quantizer, moving the two edge samples toward each other.
func defFilter(s segment, qp int) {
	l1, l2, l3, l4 := s.get(1), s.get(2), s.get(3), s.get(4)
	l5, l6, l7, l8 := s.get(5), s.get(6), s.get(7), s.get(8)

	middle := 5*(l5-l4) + 2*(l3-l6)
	if abs(middle) >= 8*qp {
		return
	}
	q := (l4 - l5) / 2
	left := 5*(l3-l2) + 2*(l1-l4)
	right := 5*(l7-l6) + 2*(l5-l8)

	d := max(abs(middle)-min(abs(left), abs(right)), 0)
	d = (5*d + 32) >> 6
	d *= sign(-middle)

	if q > 0 {
		d = min(max(d, 0), q)
	} else {
		d = max(min(d, 0), q)
	}

	s.set(4, l4-d)
	s.set(5, l5+d)
}

// x1 spreads the step at the edge over six samples.
func x1(s segment, qp int) {
	a := s.get(3) - s.get(4)
	b := s.get(4) - s.get(5)
	c := s.get(5) - s.get(6)

	d := max(abs(b)-((abs(a)+abs(c))>>1), 0)
	if d >= qp*2 {
		return
	}
	v := d * sign(-b)
	s.set(2, s.get(2)+(v>>3))
	s.set(3, s.get(3)+(v>>2))
	s.set(4, s.get(4)+((3*v)>>3))
	s.set(5, s.get(5)-((3*v)>>3))
	s.set(6, s.get(6)-(v>>2))
	s.set(7, s.get(7)-(v>>3))
}
