package mocks

import (
	"fmt"
	"sync"

	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

// PostprocMode is the mode handed out by Postprocessor.
type PostprocMode struct {
	Spec    string
	Quality int
}

func (m *PostprocMode) String() string { return m.Spec }

// PostprocContext is the context handed out by Postprocessor.
type PostprocContext struct {
	Width, Height int
	Flags         ports.PPFlags
}

func (c *PostprocContext) Size() (int, int) { return c.Width, c.Height }

// PostprocessCall records a call to Postprocess.
type PostprocessCall struct {
	Width, Height int
	SrcPlanes     int
	DstPlanes     int
	QP            ports.QPTable
}

// Postprocessor is a mock implementation of ports.Postprocessor that counts
// live handles so leaks can be asserted.
type Postprocessor struct {
	mu sync.Mutex

	ParseModeFunc   func(spec string, quality int) (ports.PostprocMode, error)
	NewContextFunc  func(width, height int, flags ports.PPFlags) (ports.PostprocContext, error)
	PostprocessFunc func(src, dst []video.Plane, width, height int, qp ports.QPTable, mode ports.PostprocMode, ctx ports.PostprocContext) error

	// Recorded calls for verification
	ParsedSpecs      []string
	ContextFlags     []ports.PPFlags
	PostprocessCalls []PostprocessCall
	LiveModes        int
	LiveContexts     int
	DoubleFrees      int

	// Log, when set, receives "postprocess" for every Postprocess call.
	Log *CallLog

	freed map[any]bool
}

func (m *Postprocessor) ParseMode(spec string, quality int) (ports.PostprocMode, error) {
	m.mu.Lock()
	m.ParsedSpecs = append(m.ParsedSpecs, spec)
	m.mu.Unlock()

	var mode ports.PostprocMode = &PostprocMode{Spec: spec, Quality: quality}
	if m.ParseModeFunc != nil {
		var err error
		mode, err = m.ParseModeFunc(spec, quality)
		if err != nil || mode == nil {
			return mode, err
		}
	}

	m.mu.Lock()
	m.LiveModes++
	m.mu.Unlock()
	return mode, nil
}

func (m *Postprocessor) FreeMode(mode ports.PostprocMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markFreed(mode) {
		m.LiveModes--
	}
}

func (m *Postprocessor) NewContext(width, height int, flags ports.PPFlags) (ports.PostprocContext, error) {
	m.mu.Lock()
	m.ContextFlags = append(m.ContextFlags, flags)
	m.mu.Unlock()

	var ctx ports.PostprocContext = &PostprocContext{Width: width, Height: height, Flags: flags}
	if m.NewContextFunc != nil {
		var err error
		ctx, err = m.NewContextFunc(width, height, flags)
		if err != nil || ctx == nil {
			return ctx, err
		}
	}

	m.mu.Lock()
	m.LiveContexts++
	m.mu.Unlock()
	return ctx, nil
}

func (m *Postprocessor) FreeContext(ctx ports.PostprocContext) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markFreed(ctx) {
		m.LiveContexts--
	}
}

// Postprocess copies src to dst unless PostprocessFunc is set.
func (m *Postprocessor) Postprocess(src, dst []video.Plane, width, height int, qp ports.QPTable, mode ports.PostprocMode, ctx ports.PostprocContext) error {
	m.mu.Lock()
	m.PostprocessCalls = append(m.PostprocessCalls, PostprocessCall{
		Width: width, Height: height, SrcPlanes: len(src), DstPlanes: len(dst), QP: qp,
	})
	m.mu.Unlock()
	m.Log.Record("postprocess")

	if m.PostprocessFunc != nil {
		return m.PostprocessFunc(src, dst, width, height, qp, mode, ctx)
	}
	if len(src) != 3 || len(dst) != 3 {
		return fmt.Errorf("mock postprocess: want 3 planes, got %d and %d", len(src), len(dst))
	}
	for i := range src {
		CopyPlane(dst[i], src[i])
	}
	return nil
}

// Live returns the number of modes and contexts not yet freed.
func (m *Postprocessor) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LiveModes + m.LiveContexts
}

// markFreed must be called with mu held.
func (m *Postprocessor) markFreed(h any) bool {
	if m.freed == nil {
		m.freed = make(map[any]bool)
	}
	if m.freed[h] {
		m.DoubleFrees++
		return false
	}
	m.freed[h] = true
	return true
}

// CopyPlane copies the meaningful bytes of src into dst row by row.
func CopyPlane(dst, src video.Plane) {
	rows := min(src.Height, dst.Height)
	for y := 0; y < rows; y++ {
		copy(dst.Row(y), src.Row(y))
	}
}

var _ ports.Postprocessor = (*Postprocessor)(nil)
