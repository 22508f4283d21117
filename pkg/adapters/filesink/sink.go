// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/user/ffpp/pkg/ports"
)

const (
	comparisonGap   = 8
	comparisonLabel = 20
)

var (
	comparisonBackground = color.RGBA{R: 32, G: 32, B: 32, A: 255}
	comparisonText       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	comparisonDivider    = color.RGBA{R: 200, G: 60, B: 60, A: 255}
)

// Sink saves debug output to files.
//
// Layout under the base directory:
//
//	run.json
//	frames/source/frame-0000.png
//	frames/output/frame-0000.png
//	comparisons/frame-0000.png
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
	zoom     int
}

// Option configures a Sink.
type Option func(*Sink)

// WithZoom enlarges saved images by an integer factor.
func WithZoom(zoom int) Option {
	return func(s *Sink) {
		if zoom > 1 {
			s.zoom = zoom
		}
	}
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer, opts ...Option) *Sink {
	s := &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
		zoom:     1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveRunJSON saves the run metadata as JSON.
func (s *Sink) SaveRunJSON(data []byte) error {
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return err
	}
	path := filepath.Join(s.baseDir, "run.json")
	return s.fs.WriteFile(path, data)
}

// SaveSourceFrame saves a frame as read from the source.
func (s *Sink) SaveSourceFrame(index int, img image.Image) error {
	return s.savePNG(filepath.Join("frames", "source"), index, s.scaled(img))
}

// SaveOutputFrame saves a postprocessed frame.
func (s *Sink) SaveOutputFrame(index int, img image.Image) error {
	return s.savePNG(filepath.Join("frames", "output"), index, s.scaled(img))
}

// SaveComparison saves before and after side by side, each under a centred
// label and split by a divider.
func (s *Sink) SaveComparison(index int, before, after image.Image) error {
	before, after = s.scaled(before), s.scaled(after)
	bw, bh := before.Bounds().Dx(), before.Bounds().Dy()
	aw, ah := after.Bounds().Dx(), after.Bounds().Dy()

	height := max(bh, ah)
	canvas := s.renderer.CreateCanvas(bw+comparisonGap+aw, comparisonLabel+height, comparisonBackground)
	canvas.DrawRect(bw+comparisonGap/2-1, 0, 2, comparisonLabel+height, comparisonDivider)

	style := ports.TextStyle{FontSize: 12, Color: comparisonText, Align: ports.AlignCenter}
	canvas.DrawText("before", bw/2, comparisonLabel/2, style)
	canvas.DrawText("after", bw+comparisonGap+aw/2, comparisonLabel/2, style)
	canvas.DrawImage(before, 0, comparisonLabel)
	canvas.DrawImage(after, bw+comparisonGap, comparisonLabel)

	return s.savePNG("comparisons", index, canvas.ToImage())
}

func (s *Sink) scaled(img image.Image) image.Image {
	if s.zoom <= 1 {
		return img
	}
	b := img.Bounds()
	return s.renderer.ResizeImage(img, b.Dx()*s.zoom, b.Dy()*s.zoom)
}

func (s *Sink) savePNG(subdir string, index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, subdir)
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode %s frame %d: %w", subdir, index, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

var _ ports.DebugSink = (*Sink)(nil)
