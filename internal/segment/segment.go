// Package segment draws the strokes of seven-segment digits as bars with
// pointed ends, so strokes meeting at a corner look mitred.
//
// A segment is laid out along its length axis and across its width axis.
// Vertical segments run their length down the y axis, horizontal ones along
// the x axis; the same routine draws both.
package segment

import (
	"image"
	"image/color"
)

// Canvas is the subset of the drawing surface used by the geometry engine.
// Rect is inclusive of both corners.
type Canvas interface {
	Pixel(x, y int, c color.Color)
	Rect(x1, y1, x2, y2 int, c color.Color, filled bool)
}

// Orientation selects the length axis of a segment.
type Orientation uint8

const (
	Vertical Orientation = iota
	Horizontal
)

// Segment is a single tipped bar in pixel coordinates.
type Segment struct {
	X, Y        int
	Width       int
	Length      int
	Color       color.Color
	Orientation Orientation
}

// TipHeight returns the number of rows in one pointed end of a segment
// of the given width: ceil(width/2) - 1, never negative.
func TipHeight(width int) int {
	if width < 1 {
		return 0
	}
	return (width+1)/2 - 1
}

// BodyHeight returns the length of the rectangular part between the tips,
// clamped at zero for segments too short to hold both tips.
func BodyHeight(width, length int) int {
	body := length - 2*TipHeight(width)
	if body < 0 {
		return 0
	}
	return body
}

// Draw paints s onto c.
func (s Segment) Draw(c Canvas) {
	Draw(c, s.X, s.Y, s.Width, s.Length, s.Color, s.Orientation)
}

// Bounds returns the pixel area covered by s.
func (s Segment) Bounds() image.Rectangle {
	along := 2*TipHeight(s.Width) + BodyHeight(s.Width, s.Length)
	return orient(s.Orientation, s.X, s.Y, 0, 0, s.Width, along)
}

// Draw paints a segment whose top-left corner is (x, y).
func Draw(c Canvas, x, y, width, length int, col color.Color, o Orientation) {
	if width < 1 {
		return
	}
	tip := TipHeight(width)
	body := BodyHeight(width, length)

	plot := func(across, along int) {
		if o == Horizontal {
			c.Pixel(x+along, y+across, col)
			return
		}
		c.Pixel(x+across, y+along, col)
	}

	drawTip(plot, 0, tip, width, true)

	if body > 0 {
		r := orient(o, x, y, 0, tip, width, tip+body)
		c.Rect(r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1, col, true)
	}

	drawTip(plot, tip+body, tip, width, false)
}

// drawTip paints a triangle of h rows starting at along offset start. Each
// row is two pixels narrower than the one before; invert puts the narrowest
// row first so the leading tip points away from the body.
func drawTip(plot func(across, along int), start, h, width int, invert bool) {
	for dy := 0; dy < h; dy++ {
		row := start + dy
		if invert {
			row = start + h - 1 - dy
		}
		for dx := dy + 1; dx < width-1-dy; dx++ {
			plot(dx, row)
		}
	}
}

// orient maps a half-open box given in (across, along) offsets to canvas
// coordinates for a segment anchored at (x, y).
func orient(o Orientation, x, y, across0, along0, across1, along1 int) image.Rectangle {
	if o == Horizontal {
		return image.Rect(x+along0, y+across0, x+along1, y+across1)
	}
	return image.Rect(x+across0, y+along0, x+across1, y+along1)
}
