// Package face renders the clock face: the two seven-segment number
// fields, the blinking colon, a status line, the battery and charging
// indicators and the seconds bar along the bottom edge.
package face

import (
	"fmt"
	"image/color"

	"github.com/phinze/badgeclock/internal/device"
	"github.com/phinze/badgeclock/internal/mode"
	"github.com/phinze/badgeclock/internal/wallclock"
)

// Frame is everything a single rendered frame depends on.
type Frame struct {
	Time        wallclock.Time
	Mode        mode.Mode
	Battery     float64
	ChargeInput float64
}

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}

	statusGray = color.RGBA{128, 128, 128, 255}
	statusDate = color.RGBA{0, 255, 128, 255}
	statusTime = color.RGBA{0, 128, 128, 255}

	BatteryGood = color.RGBA{0, 230, 0, 255}
	BatteryOK   = color.RGBA{255, 215, 0, 255}
	BatteryBad  = color.RGBA{255, 0, 0, 255}

	chargeLit   = color.RGBA{255, 255, 255, 255}
	chargeShade = color.RGBA{120, 120, 120, 255}
)

// Voltage thresholds of the battery indicator.
const (
	batteryFull = 4.0
	batteryGood = 3.8
	batteryOK   = 3.6

	// ChargeThreshold is the input voltage above which the charger is
	// considered connected.
	ChargeThreshold = 4.0
)

var (
	months   = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	weekdays = [7]string{"Mo-", "Tu-", "We-", "Th-", "Fr-", "Sa-", "Su-"}
)

// Field columns, in cells.
const (
	leftField  = 1
	rightField = 13
)

// statusY is the top edge of the status line.
const statusY = 7 * 8

// Render draws f onto c and commits it.
func Render(c device.Canvas, f Frame) error {
	c.Clear()

	t := f.Time
	switch f.Mode {
	case mode.ChangeYear:
		DrawNumber(c, t.Year/100, leftField, white)
		DrawNumber(c, t.Year%100, rightField, white)
	case mode.ChangeMonth:
		DrawNumber(c, int(t.Month), rightField, white)
	case mode.ChangeDay:
		DrawNumber(c, t.Day, rightField, white)
	default:
		DrawNumber(c, t.Hour, leftField, white)
		DrawNumber(c, t.Minute, rightField, white)
	}

	if ColonVisible(f.Mode, t.Second) {
		DrawColon(c, white)
	}

	text, fg := Status(f.Mode, t)
	c.Print(text, fg, nil, 0, statusY)

	DrawBattery(c, f.Battery)
	if f.ChargeInput > ChargeThreshold {
		DrawCharging(c)
	}
	DrawSecondsBar(c, t.Second)

	if err := c.Update(); err != nil {
		return fmt.Errorf("commit frame: %w", err)
	}
	return nil
}

// ColonVisible reports whether the separator is shown: only while a
// time-of-day field is on screen, and only on even seconds.
func ColonVisible(m mode.Mode, second int) bool {
	return !m.IsDate() && second%2 == 0
}

// Status returns the status line text and its colour. The display mode
// shows the date; the edit modes name the field being changed.
func Status(m mode.Mode, t wallclock.Time) (string, color.Color) {
	if m == mode.Display {
		return fmt.Sprintf("%s%02d.%s%02d", weekdays[t.Weekday%7], t.Day, months[(int(t.Month)+11)%12], t.Year%100), statusGray
	}
	if m.IsDate() {
		return m.Label(), statusDate
	}
	return m.Label(), statusTime
}

// BatteryColor grades a battery voltage.
func BatteryColor(v float64) color.Color {
	switch {
	case v > batteryGood:
		return BatteryGood
	case v > batteryOK:
		return BatteryOK
	default:
		return BatteryBad
	}
}

// DrawBattery draws the battery icon in the bottom right corner. The body
// empties from the terminal end as the voltage drops.
func DrawBattery(c device.Canvas, v float64) {
	col := BatteryColor(v)
	c.Rect(140, 72, 155, 79, col, true)
	c.Rect(155, 74, 157, 77, col, true)

	if v < batteryFull {
		c.Rect(151, 73, 154, 78, black, true)
	}
	if v < batteryGood {
		c.Rect(146, 73, 151, 78, black, true)
	}
	if v < batteryOK {
		c.Rect(141, 73, 146, 78, black, true)
	}
}

// chargeGlyph is the lightning bolt left of the battery.
var chargeGlyph = []struct {
	x, y  int
	shade bool
}{
	{134, 72, false}, {135, 72, true},
	{134, 73, false}, {133, 73, true},
	{134, 74, false}, {133, 74, false},
	{133, 75, false}, {134, 75, false}, {135, 75, false}, {136, 75, true},
	{135, 76, false}, {136, 76, false}, {137, 76, false}, {134, 76, true},
	{136, 77, false}, {137, 77, false},
	{136, 78, false}, {137, 78, true},
	{136, 79, false}, {135, 79, true},
}

// DrawCharging draws the charging indicator.
func DrawCharging(c device.Canvas) {
	for _, p := range chargeGlyph {
		col := chargeLit
		if p.shade {
			col = chargeShade
		}
		c.Pixel(p.x, p.y, col)
	}
}

// DrawSecondsBar draws a bar along the bottom edge that grows wider and
// brighter through the minute.
func DrawSecondsBar(c device.Canvas, second int) {
	level := uint8(4 * second)
	c.Rect(0, 72, second*2, 80, color.RGBA{level, level, level, 255}, true)
}
