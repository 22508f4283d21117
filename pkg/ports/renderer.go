package ports

import (
	"image"
	"image/color"
)

// Renderer turns frames into debug images.
type Renderer interface {
	// CreateCanvas returns a width x height canvas filled with bg.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// EncodePNG encodes img losslessly so filter output can be inspected pixel by pixel.
	EncodePNG(img image.Image) ([]byte, error)

	// ResizeImage scales img to width x height.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas composes frames and labels into one image.
type Canvas interface {
	DrawImage(img image.Image, x, y int)
	DrawRect(x, y, w, h int, c color.Color)

	// DrawText draws text vertically centred on y. Align decides whether x is
	// the left edge, the centre or the right edge of the text.
	DrawText(text string, x, y int, style TextStyle)

	ToImage() image.Image
}

// TextStyle describes a label. An empty FontPath selects the built-in face.
type TextStyle struct {
	FontSize float64
	FontPath string
	Color    color.Color
	Align    TextAlign
}

// TextAlign is the horizontal anchor of a label.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)
