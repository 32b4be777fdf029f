// Package display provides the monochrome canvas frames are rendered onto.
package display

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Canvas size in pixels.
const (
	Width  = 128
	Height = 64

	// Stride is the number of bytes per row.
	Stride = Width / 8
	// BitmapLength is the size of Bitmap.Pix.
	BitmapLength = Stride * Height
)

// Bitmap is a 1-bit canvas. A set bit is a black (lit) pixel.
// Pixels are packed MSB first, row by row.
type Bitmap struct {
	Pix [BitmapLength]byte
}

// New creates a cleared Bitmap.
func New() *Bitmap {
	return &Bitmap{}
}

// Clear clears all pixels.
func (b *Bitmap) Clear() {
	b.Pix = [BitmapLength]byte{}
}

// Dot tells if a pixel is lit.
func (b *Bitmap) Dot(x, y int) bool {
	if !image.Pt(x, y).In(b.Bounds()) {
		return false
	}
	return b.Pix[y*Stride+x/8]&(0x80>>uint(x%8)) != 0
}

// DrawDot implements camera.Canvas.
func (b *Bitmap) DrawDot(x, y int) {
	if image.Pt(x, y).In(b.Bounds()) {
		b.Pix[y*Stride+x/8] |= 0x80 >> uint(x%8)
	}
}

func (b *Bitmap) clearDot(x, y int) {
	if image.Pt(x, y).In(b.Bounds()) {
		b.Pix[y*Stride+x/8] &^= 0x80 >> uint(x%8)
	}
}

// DrawFrame implements camera.Canvas. It draws the outline of a rectangle.
func (b *Bitmap) DrawFrame(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	for i := x; i < x+w; i++ {
		b.DrawDot(i, y)
		b.DrawDot(i, y+h-1)
	}
	for j := y; j < y+h; j++ {
		b.DrawDot(x, j)
		b.DrawDot(x+w-1, j)
	}
}

// DrawString implements camera.Canvas. (x, y) is the left end of the baseline.
func (b *Bitmap) DrawString(x, y int, s string) {
	d := &font.Drawer{
		Dst:  b,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// ColorModel implements image.Image.
func (b *Bitmap) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds implements image.Image.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

// At implements image.Image.
func (b *Bitmap) At(x, y int) color.Color {
	if b.Dot(x, y) {
		return color.Black
	}
	return color.White
}

// Set implements draw.Image. Colors darker than mid gray are lit.
func (b *Bitmap) Set(x, y int, c color.Color) {
	if color.GrayModel.Convert(c).(color.Gray).Y < 0x80 {
		b.DrawDot(x, y)
	} else {
		b.clearDot(x, y)
	}
}

// String renders the bitmap as text, two pixel rows per line.
func (b *Bitmap) String() string {
	var sb strings.Builder
	for y := 0; y < Height; y += 2 {
		for x := 0; x < Width; x++ {
			switch top, bottom := b.Dot(x, y), b.Dot(x, y+1); {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
