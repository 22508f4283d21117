package postproc

// levelFixPlane stretches the luma range so that all but maxClippedThreshold
// of the pixels on each side land in [lo, hi].
func levelFixPlane(p plane, lo, hi int) {
	var hist [256]int
	for y := 0; y < p.h; y++ {
		for _, v := range p.row(y) {
			hist[v]++
		}
	}
	total := p.w * p.h
	maxClipped := int(float64(total) * maxClippedThreshold)

	black, clipped := 255, total
	for ; black > 0; black-- {
		if clipped < maxClipped {
			break
		}
		clipped -= hist[black]
	}
	white := 0
	for clipped = total; white < 255; white++ {
		if clipped < maxClipped {
			break
		}
		clipped -= hist[white]
	}
	if white <= black {
		return
	}

	var lut [256]byte
	for v := range lut {
		lut[v] = clip8(lo + ((v-black)*(hi-lo)+(white-black)/2)/(white-black))
	}
	for y := 0; y < p.h; y++ {
		row := p.row(y)
		for x, v := range row {
			row[x] = lut[v]
		}
	}
}
