// Package wallclock provides the clock service the badge reads and adjusts.
//
// The clock is never set absolutely. Edits are applied as relative deltas
// and normalised the way time.Date does, so minute 60 rolls into the next
// hour and January 31 plus one month lands in early March.
package wallclock

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Time is a broken-down wall clock reading.
type Time struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday int // 0 is Monday
	YearDay int // 1-based
}

// FromTime breaks t down into a Time.
func FromTime(t time.Time) Time {
	return Time{
		Year:    t.Year(),
		Month:   t.Month(),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: (int(t.Weekday()) + 6) % 7,
		YearDay: t.YearDay(),
	}
}

// Delta is a relative adjustment of individual calendar fields.
type Delta struct {
	Years   int
	Months  int
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// IsZero reports whether applying d would leave the clock unchanged.
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// Add returns the field-wise sum of d and o.
func (d Delta) Add(o Delta) Delta {
	return Delta{
		Years:   d.Years + o.Years,
		Months:  d.Months + o.Months,
		Days:    d.Days + o.Days,
		Hours:   d.Hours + o.Hours,
		Minutes: d.Minutes + o.Minutes,
		Seconds: d.Seconds + o.Seconds,
	}
}

// Neg returns d with every field negated.
func (d Delta) Neg() Delta {
	return Delta{
		Years:   -d.Years,
		Months:  -d.Months,
		Days:    -d.Days,
		Hours:   -d.Hours,
		Minutes: -d.Minutes,
		Seconds: -d.Seconds,
	}
}

// Apply returns t shifted field by field by d.
func (d Delta) Apply(t time.Time) time.Time {
	return time.Date(
		t.Year()+d.Years,
		t.Month()+time.Month(d.Months),
		t.Day()+d.Days,
		t.Hour()+d.Hours,
		t.Minute()+d.Minutes,
		t.Second()+d.Seconds,
		t.Nanosecond(),
		t.Location(),
	)
}

// Service is the wall clock as seen by the clock face.
type Service interface {
	Now() Time
	SetRelative(d Delta)
}

// Offset is a wall clock running at the rate of an underlying clock,
// shifted by the sum of all adjustments made to it. The host clock itself
// is never modified.
type Offset struct {
	clock clockwork.Clock
	loc   *time.Location

	mu     sync.Mutex
	offset time.Duration
}

// New creates an Offset clock. A nil clock uses the real clock and a nil
// location uses time.Local.
func New(clock clockwork.Clock, loc *time.Location) *Offset {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Offset{clock: clock, loc: loc}
}

// Time returns the current adjusted time.
func (o *Offset) Time() time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.now()
}

func (o *Offset) now() time.Time {
	return o.clock.Now().Add(o.offset).In(o.loc)
}

// Now implements Service.
func (o *Offset) Now() Time {
	return FromTime(o.Time())
}

// SetRelative implements Service as a single read-modify-write.
func (o *Offset) SetRelative(d Delta) {
	if d.IsZero() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	cur := o.now()
	o.offset += d.Apply(cur).Sub(cur)
}

// Offset returns the accumulated adjustment relative to the underlying clock.
func (o *Offset) Offset() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.offset
}

var _ Service = &Offset{}
