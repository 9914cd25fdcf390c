package segment

import (
	"image"
	"image/color"
)

// Grid places segments on a layout grid of square cells, so glyphs can be
// described in cell units independent of the final pixel size.
type Grid struct {
	CellSize int
}

// Segment returns the pixel segment for a stroke starting at cell (cx, cy)
// and spanning lengthCells cells. The stroke is two pixels narrower than a
// cell, leaving a gutter between neighbours, and starts tip+3 pixels into
// its first cell so that strokes meeting at a cell corner leave a gap.
func (g Grid) Segment(cx, cy, lengthCells int, col color.Color, o Orientation) Segment {
	width := g.CellSize - 2
	tip := TipHeight(width)
	length := (lengthCells-1)*g.CellSize - 3

	x, y := cx*g.CellSize+1, cy*g.CellSize+tip+3
	if o == Horizontal {
		x, y = cx*g.CellSize+tip+3, cy*g.CellSize+1
	}
	return Segment{X: x, Y: y, Width: width, Length: length, Color: col, Orientation: o}
}

// Draw paints a grid stroke onto c.
func (g Grid) Draw(c Canvas, cx, cy, lengthCells int, col color.Color, o Orientation) {
	g.Segment(cx, cy, lengthCells, col, o).Draw(c)
}

// Bounds returns the pixel area a grid stroke covers.
func (g Grid) Bounds(cx, cy, lengthCells int, o Orientation) image.Rectangle {
	return g.Segment(cx, cy, lengthCells, nil, o).Bounds()
}
