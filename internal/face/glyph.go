package face

import (
	"image/color"

	"github.com/phinze/badgeclock/internal/segment"
)

// Glyph lists which of the seven strokes of a digit are lit, in the order
// top, upper right, lower right, bottom, lower left, upper left, middle.
type Glyph [7]bool

// Digits maps every decimal digit to its glyph.
var Digits = [10]Glyph{
	{true, true, true, true, true, true, false},
	{false, true, true, false, false, false, false},
	{true, true, false, true, true, false, true},
	{true, true, true, true, false, false, true},
	{false, true, true, false, false, true, true},
	{true, false, true, true, false, true, true},
	{true, false, true, true, true, true, true},
	{true, true, true, false, false, false, false},
	{true, true, true, true, true, true, true},
	{true, true, true, true, false, true, true},
}

// stroke places one glyph segment relative to the digit origin, in cells.
type stroke struct {
	dx, dy int
	o      segment.Orientation
}

var strokes = [7]stroke{
	{0, 0, segment.Horizontal},
	{3, 0, segment.Vertical},
	{3, 3, segment.Vertical},
	{0, 6, segment.Horizontal},
	{0, 3, segment.Vertical},
	{0, 0, segment.Vertical},
	{0, 3, segment.Horizontal},
}

const (
	// CellSize is the pixel size of one layout cell.
	CellSize = 7

	strokeCells = 4
	// digitPitch is the horizontal distance between the tens and ones digit.
	digitPitch = 5
)

var grid = segment.Grid{CellSize: CellSize}

// Stroke returns the pixel segment for stroke i of a digit at cell (cx, cy).
func Stroke(cx, cy, i int, col color.Color) segment.Segment {
	s := strokes[i]
	return grid.Segment(cx+s.dx, cy+s.dy, strokeCells, col, s.o)
}

// DrawDigit draws digit v (0-9) with its top-left cell at (cx, cy).
func DrawDigit(c segment.Canvas, v, cx, cy int, col color.Color) {
	for i, lit := range Digits[v] {
		if lit {
			Stroke(cx, cy, i, col).Draw(c)
		}
	}
}

// DrawNumber draws the two low decimal digits of n, zero padded, starting
// at cell column cx of the top row.
func DrawNumber(c segment.Canvas, n, cx int, col color.Color) {
	n %= 100
	if n < 0 {
		n = -n
	}
	DrawDigit(c, n/10, cx, 0, col)
	DrawDigit(c, n%10, cx+digitPitch, 0, col)
}

// colon dots, in cells.
var colon = [2]struct{ cx, cy int }{{11, 2}, {11, 4}}

// DrawColon draws the separator between the two number fields.
func DrawColon(c segment.Canvas, col color.Color) {
	for _, p := range colon {
		grid.Draw(c, p.cx, p.cy, 2, col, segment.Vertical)
	}
}
