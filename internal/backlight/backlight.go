// Package backlight maps ambient light readings to display brightness.
package backlight

// tier is the brightness used when the reading exceeds above.
type tier struct {
	above   int
	percent int
}

var tiers = []tier{
	{30, 100},
	{25, 50},
	{20, 40},
	{18, 30},
	{12, 15},
}

// Min is the level used in the dark. The panel never switches fully off.
const Min = 1

// Level returns the backlight percentage for an ambient light reading.
func Level(reading int) int {
	for _, t := range tiers {
		if reading > t.above {
			return t.percent
		}
	}
	return Min
}
