package device

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Framebuffer is an off-screen Canvas. Drawing only touches the in-memory
// image; Update hands the finished frame to the panel in one call.
type Framebuffer struct {
	img   *image.RGBA
	panel Panel
	face  font.Face
}

// NewFramebuffer creates a width x height canvas committing to panel.
// A nil panel turns Update and SetBacklight into no-ops.
func NewFramebuffer(width, height int, panel Panel) *Framebuffer {
	return &Framebuffer{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		panel: panel,
		face:  basicfont.Face7x13,
	}
}

// Image returns the off-screen frame.
func (f *Framebuffer) Image() *image.RGBA {
	return f.img
}

// Bounds returns the canvas dimensions.
func (f *Framebuffer) Bounds() image.Rectangle {
	return f.img.Bounds()
}

// Clear fills the canvas with black.
func (f *Framebuffer) Clear() {
	draw.Draw(f.img, f.img.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)
}

// Pixel sets one pixel. Coordinates outside the canvas are ignored.
func (f *Framebuffer) Pixel(x, y int, c color.Color) {
	f.img.Set(x, y, c)
}

// Rect draws the rectangle spanning both corners inclusively.
func (f *Framebuffer) Rect(x1, y1, x2, y2 int, c color.Color, filled bool) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	if filled {
		r := image.Rect(x1, y1, x2+1, y2+1).Intersect(f.img.Bounds())
		draw.Draw(f.img, r, &image.Uniform{c}, image.Point{}, draw.Src)
		return
	}
	for x := x1; x <= x2; x++ {
		f.img.Set(x, y1, c)
		f.img.Set(x, y2, c)
	}
	for y := y1; y <= y2; y++ {
		f.img.Set(x1, y, c)
		f.img.Set(x2, y, c)
	}
}

// Print draws text with its top-left corner at (x, y).
// A nil bg leaves the pixels behind the glyphs untouched.
func (f *Framebuffer) Print(text string, fg, bg color.Color, x, y int) {
	metrics := f.face.Metrics()
	if bg != nil {
		w := font.MeasureString(f.face, text).Ceil()
		h := metrics.Height.Ceil()
		r := image.Rect(x, y, x+w, y+h).Intersect(f.img.Bounds())
		draw.Draw(f.img, r, &image.Uniform{bg}, image.Point{}, draw.Src)
	}
	d := &font.Drawer{
		Dst:  f.img,
		Src:  image.NewUniform(fg),
		Face: f.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + metrics.Ascent},
	}
	d.DrawString(text)
}

// Update commits the frame to the panel.
func (f *Framebuffer) Update() error {
	if f.panel == nil {
		return nil
	}
	return f.panel.Show(f.img)
}

// SetBacklight forwards the backlight level to the panel.
func (f *Framebuffer) SetBacklight(percent int) error {
	if f.panel == nil {
		return nil
	}
	return f.panel.SetBacklight(percent)
}

var _ Canvas = &Framebuffer{}
