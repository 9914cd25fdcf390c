// Package terminal implements a display.Drawer that prints the badge panel
// to a terminal using ANSI 256 colour blocks, redrawing in place.
package terminal

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"sync"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

const (
	home  = "\033[H"
	reset = "\033[0m"
)

// Opts represents the options available for this display.
type Opts struct {
	W, H int
	// Step prints every Step-th pixel in both directions. Each printed
	// pixel takes two terminal columns.
	Step    int
	Palette *ansi256.Palette
	// Out defaults to a colour capable stdout.
	Out io.Writer
}

// Dev is a panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	step    int
	palette *ansi256.Palette

	mu       sync.Mutex
	frame    *image.NRGBA
	contrast byte
	buf      bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Out
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	step := opts.Step
	if step < 1 {
		step = 1
	}
	return &Dev{
		w:        w,
		step:     step,
		palette:  p,
		frame:    image.NewNRGBA(image.Rect(0, 0, opts.W, opts.H)),
		contrast: 255,
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("Terminal{%dx%d}", d.frame.Rect.Dx(), d.frame.Rect.Dy())
}

// Halt implements conn.Resource. It resets the terminal colours.
func (d *Dev) Halt() error {
	_, err := io.WriteString(d.w, reset+"\n")
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.frame.Rect
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	draw.Draw(d.frame, r.Intersect(d.frame.Rect), src, sp, draw.Src)
	return d.refresh()
}

// SetContrast scales the brightness of every printed pixel, 255 being
// full brightness.
func (d *Dev) SetContrast(level byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if level == d.contrast {
		return nil
	}
	d.contrast = level
	return d.refresh()
}

func (d *Dev) refresh() error {
	d.buf.Reset()
	_, _ = d.buf.WriteString(home)
	for y := d.frame.Rect.Min.Y; y < d.frame.Rect.Max.Y; y += d.step {
		for x := d.frame.Rect.Min.X; x < d.frame.Rect.Max.X; x += d.step {
			c := d.frame.NRGBAAt(x, y)
			c.A = 255
			_, _ = d.buf.WriteString(d.palette.Block(d.dim(c)))
		}
		_, _ = d.buf.WriteString(reset + "\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

func (d *Dev) dim(c color.NRGBA) color.NRGBA {
	if d.contrast == 255 {
		return c
	}
	k := uint16(d.contrast)
	return color.NRGBA{
		R: uint8(uint16(c.R) * k / 255),
		G: uint8(uint16(c.G) * k / 255),
		B: uint8(uint16(c.B) * k / 255),
		A: c.A,
	}
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
