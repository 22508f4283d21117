// Package ggrenderer draws debug images with the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/ffpp/pkg/ports"
)

// anchors maps a label alignment to gg's horizontal anchor.
var anchors = map[ports.TextAlign]float64{
	ports.AlignLeft:   0,
	ports.AlignCenter: 0.5,
	ports.AlignRight:  1,
}

// Renderer implements ports.Renderer. Debug runs write several PNGs per frame,
// so encoding favours speed over size.
type Renderer struct {
	encoder png.Encoder
}

func New() *Renderer {
	return &Renderer{encoder: png.Encoder{CompressionLevel: png.BestSpeed}}
}

func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc}
}

func (r *Renderer) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.encoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// ResizeImage scales img into a new RGBA image. Whole-number enlargements use
// nearest neighbour so block edges and ringing stay visible.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	b := img.Bounds()
	var kernel draw.Interpolator = draw.CatmullRom
	if b.Dx() > 0 && b.Dy() > 0 && width%b.Dx() == 0 && height%b.Dy() == 0 {
		kernel = draw.NearestNeighbor
	}
	kernel.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Canvas implements ports.Canvas on a gg.Context.
type Canvas struct {
	dc *gg.Context
}

func (c *Canvas) DrawImage(img image.Image, x, y int) { c.dc.DrawImage(img, x, y) }

func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

// DrawText draws text with its vertical centre on y. A font that fails to
// load leaves gg's built-in face in place.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	if style.FontPath != "" {
		_ = c.dc.LoadFontFace(style.FontPath, style.FontSize)
	}
	c.dc.SetColor(style.Color)
	c.dc.DrawStringAnchored(text, float64(x), float64(y), anchors[style.Align], 0.5)
}

func (c *Canvas) ToImage() image.Image { return c.dc.Image() }

var (
	_ ports.Renderer = (*Renderer)(nil)
	_ ports.Canvas   = (*Canvas)(nil)
)
