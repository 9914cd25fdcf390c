// Package mode implements the clock's interaction states: the normal
// display and one edit state per time and date field.
package mode

import (
	"fmt"

	"github.com/phinze/badgeclock/internal/input"
	"github.com/phinze/badgeclock/internal/wallclock"
)

// Mode is the active interaction state.
type Mode uint8

const (
	Display Mode = iota
	ChangeHours
	ChangeMinutes
	ChangeSeconds
	ChangeYear
	ChangeMonth
	ChangeDay
)

var names = [...]string{
	Display:       "display",
	ChangeHours:   "hours",
	ChangeMinutes: "minutes",
	ChangeSeconds: "seconds",
	ChangeYear:    "year",
	ChangeMonth:   "month",
	ChangeDay:     "day",
}

// labels are shown on the status line while a field is being edited.
var labels = [...]string{
	Display:       "---",
	ChangeHours:   ">-----HOURS",
	ChangeMinutes: ">---MINUTES",
	ChangeSeconds: ">---SECONDS",
	ChangeYear:    ">------YEAR",
	ChangeMonth:   ">-----MONTH",
	ChangeDay:     ">-------DAY",
}

func (m Mode) String() string {
	if int(m) < len(names) {
		return names[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// Label returns the status line text for m.
func (m Mode) Label() string {
	if int(m) < len(labels) {
		return labels[m]
	}
	return m.String()
}

// IsDate reports whether m edits a calendar field.
func (m Mode) IsDate() bool {
	return m == ChangeYear || m == ChangeMonth || m == ChangeDay
}

// Parse returns the Mode named s.
func Parse(s string) (Mode, error) {
	for i, n := range names {
		if n == s {
			return Mode(i), nil
		}
	}
	return Display, fmt.Errorf("unknown mode %q", s)
}

// Step applies the gestures of one tick to mode m. It returns the next mode
// and the relative clock adjustment requested by the handler of m.
// An out-of-range m is a programming error and panics.
func Step(m Mode, ev input.Event) (Mode, wallclock.Delta) {
	switch m {
	case Display:
		if ev.Has(input.SelLong) {
			return ChangeHours, wallclock.Delta{}
		}
		return Display, wallclock.Delta{}
	case ChangeHours:
		return edit(m, ChangeMinutes, wallclock.Delta{Hours: 1}, ev)
	case ChangeMinutes:
		return edit(m, ChangeSeconds, wallclock.Delta{Minutes: 1}, ev)
	case ChangeSeconds:
		return edit(m, ChangeYear, wallclock.Delta{Seconds: 1}, ev)
	case ChangeYear:
		return edit(m, ChangeMonth, wallclock.Delta{Years: 1}, ev)
	case ChangeMonth:
		return edit(m, ChangeDay, wallclock.Delta{Months: 1}, ev)
	case ChangeDay:
		return edit(m, ChangeHours, wallclock.Delta{Days: 1}, ev)
	default:
		panic(fmt.Sprintf("mode: no handler for %v", m))
	}
}

// edit is the shared handler of the edit states. SEL moves on to next,
// a long SEL leaves edit mode, and UP/DOWN of either length step the
// field by one unit.
func edit(m, next Mode, unit wallclock.Delta, ev input.Event) (Mode, wallclock.Delta) {
	if ev.Has(input.SelLong) {
		m = Display
	}
	if ev.Has(input.SelShort) {
		m = next
	}

	var d wallclock.Delta
	if ev.Has(input.UpShort | input.UpLong) {
		d = d.Add(unit)
	}
	if ev.Has(input.DownShort | input.DownLong) {
		d = d.Add(unit.Neg())
	}
	return m, d
}
