package postproc

import (
	"fmt"

	"github.com/user/ffpp/pkg/ports"
)

// Context holds the geometry of the frames it filters and the history of
// the temporal noise reducer.
type Context struct {
	width, height  int
	hShift, vShift int
	cpu            ports.PPFlags

	noise  [3]*noiseHistory
	frames int
	freed  bool
}

// NewContext creates a context for frames of width x height. The chroma
// subsampling is read from the format class in flags; without one 4:2:0 is
// assumed.
func NewContext(width, height int, flags ports.PPFlags) (*Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	h, v := flags.ChromaShift()
	return &Context{
		width:  width,
		height: height,
		hShift: h,
		vShift: v,
		cpu:    flags &^ flags.FormatClass(),
	}, nil
}

// Size returns the luma dimensions.
func (c *Context) Size() (int, int) { return c.width, c.height }

// ChromaShift returns the log2 chroma subsampling.
func (c *Context) ChromaShift() (h, v int) { return c.hShift, c.vShift }

// CPUCaps returns the CPU capability bits the context was created with.
// Every code path here is portable Go, so they are informational only.
func (c *Context) CPUCaps() ports.PPFlags { return c.cpu }

// Frames returns how many frames have been filtered with this context.
func (c *Context) Frames() int { return c.frames }

func (c *Context) free() {
	c.freed = true
	c.noise = [3]*noiseHistory{}
}

func (c *Context) planeSize(i int) (int, int) {
	if i == 0 {
		return c.width, c.height
	}
	return ceilShift(c.width, c.hShift), ceilShift(c.height, c.vShift)
}

func ceilShift(v, s int) int {
	return (v + (1 << s) - 1) >> s
}

// quantizerPictTypeQP2 marks tables holding doubled quantizers (MPEG-2 style).
const quantizerPictTypeQP2 = 0x10

// quantizers returns the quantizer of every 8x8 block of plane i.
func (c *Context) quantizers(i int, qp ports.QPTable, m *Mode, set filterSet) *blockGrid {
	w, h := c.planeSize(i)
	g := newBlockGrid(w, h)
	hs, vs := 0, 0
	if i > 0 {
		hs, vs = c.hShift, c.vShift
	}
	for by := 0; by < g.rows; by++ {
		for bx := 0; bx < g.cols; bx++ {
			var q int
			switch {
			case set.has(forceQuant):
				q = m.forcedQuant
			case len(qp.Values) > 0:
				// one entry per 16x16 luma macroblock
				lx := (bx * blockSize) << hs >> 4
				ly := (by * blockSize) << vs >> 4
				idx := ly*qp.Stride + lx
				if idx >= 0 && idx < len(qp.Values) {
					q = int(qp.Values[idx])
					if q < 0 {
						q = -q
					}
					if qp.PictType&quantizerPictTypeQP2 != 0 {
						q >>= 1
					}
				}
				if q == 0 {
					q = 1
				}
			default:
				q = 1
			}
			g.set(bx, by, q)
		}
	}
	return g
}

// blockGrid stores one integer per 8x8 block.
type blockGrid struct {
	cols, rows int
	v          []int
}

func newBlockGrid(w, h int) *blockGrid {
	cols := (w + blockSize - 1) / blockSize
	rows := (h + blockSize - 1) / blockSize
	return &blockGrid{cols: cols, rows: rows, v: make([]int, cols*rows)}
}

func (g *blockGrid) at(bx, by int) int {
	if bx < 0 || by < 0 || bx >= g.cols || by >= g.rows {
		return 0
	}
	return g.v[by*g.cols+bx]
}

func (g *blockGrid) set(bx, by, v int) {
	g.v[by*g.cols+bx] = v
}

// filterPlane runs every filter in set over p in place.
func (c *Context) filterPlane(i int, p plane, set filterSet, m *Mode, q *blockGrid) {
	if i == 0 && set.has(levelFix) {
		levelFixPlane(p, m.minAllowedY, m.maxAllowedY)
	}
	deinterlace(p, set)

	switch {
	case set.has(vX1Filter):
		deblockEdges(p, vertical, q, x1Filter, m)
	case set.has(vDeblock):
		deblockEdges(p, vertical, q, defaultDeblock, m)
	case set.has(vADeblock):
		deblockEdges(p, vertical, q, accurateDeblock, m)
	}
	switch {
	case set.has(hX1Filter):
		deblockEdges(p, horizontal, q, x1Filter, m)
	case set.has(hDeblock):
		deblockEdges(p, horizontal, q, defaultDeblock, m)
	case set.has(hADeblock):
		deblockEdges(p, horizontal, q, accurateDeblock, m)
	}

	if set.has(dering) {
		deringPlane(p, q)
	}
	if set.has(tempNoise) {
		if c.noise[i] == nil {
			c.noise[i] = newNoiseHistory(p.w, p.h)
		}
		c.noise[i].reduce(p, m.maxTmpNoise)
	}
}
