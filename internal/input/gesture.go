// Package input turns polled button state into short and long press events.
package input

import (
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/phinze/badgeclock/internal/device"
)

// Event is a set of gestures detected in one tick. Distinct buttons can
// release in the same tick, so several bits may be set at once.
type Event uint8

const (
	SelShort Event = 1 << iota
	UpShort
	DownShort
	SelLong
	UpLong
	DownLong
)

// DefaultLongPress is how long a button must be held to count as a long press.
const DefaultLongPress = time.Second

// Mask selects the buttons the decoder tracks.
const Mask = device.ButtonSelect | device.ButtonUp | device.ButtonDown

// Has reports whether any gesture in x is set in e.
func (e Event) Has(x Event) bool {
	return e&x != 0
}

var eventNames = []struct {
	ev   Event
	name string
}{
	{SelShort, "sel"},
	{UpShort, "up"},
	{DownShort, "down"},
	{SelLong, "sel-long"},
	{UpLong, "up-long"},
	{DownLong, "down-long"},
}

func (e Event) String() string {
	if e == 0 {
		return "none"
	}
	var names []string
	for _, n := range eventNames {
		if e.Has(n.ev) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// tracked describes one physical button and the gestures it produces.
var tracked = [...]struct {
	button      device.Button
	short, long Event
}{
	{device.ButtonSelect, SelShort, SelLong},
	{device.ButtonUp, UpShort, UpLong},
	{device.ButtonDown, DownShort, DownLong},
}

// edge is the per-button press state.
type edge struct {
	pressed bool
	since   time.Time
}

// Decoder emits a gesture when a button is released, classified by how
// long it was held. Each button keeps its own press timestamp.
type Decoder struct {
	clock     clockwork.Clock
	longPress time.Duration
	edges     [len(tracked)]edge
}

// NewDecoder creates a Decoder. A nil clock uses the real clock and a
// non-positive longPress uses DefaultLongPress.
func NewDecoder(clock clockwork.Clock, longPress time.Duration) *Decoder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if longPress <= 0 {
		longPress = DefaultLongPress
	}
	return &Decoder{clock: clock, longPress: longPress}
}

// Decode consumes the buttons held this tick and returns the gestures
// completed by a release. Buttons outside Mask are ignored.
func (d *Decoder) Decode(held device.Button) Event {
	now := d.clock.Now()
	var ev Event
	for i, b := range tracked {
		e := &d.edges[i]
		down := held&b.button != 0
		switch {
		case down && !e.pressed:
			e.since = now
		case !down && e.pressed:
			if now.Sub(e.since) > d.longPress {
				ev |= b.long
			} else {
				ev |= b.short
			}
		}
		e.pressed = down
	}
	return ev
}

// Held returns the buttons the decoder currently considers pressed.
func (d *Decoder) Held() device.Button {
	var held device.Button
	for i, b := range tracked {
		if d.edges[i].pressed {
			held |= b.button
		}
	}
	return held
}
