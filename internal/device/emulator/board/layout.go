// Package board models the emulated badge: where its panel and buttons sit
// on screen, the artwork drawn around them and the simulated inputs.
package board

import (
	"image"

	"github.com/phinze/badgeclock/internal/device"
)

// Layout constants, in window pixels.
const (
	sideWidth    = 104
	topMargin    = 56
	bottomMargin = 72
	capRadius    = 30
)

// Key is one clickable button cap.
type Key struct {
	Button device.Button
	Center image.Point
	Radius int
	Label  string
	Icon   string
}

// Contains reports whether p is on the cap.
func (k Key) Contains(p image.Point) bool {
	d := p.Sub(k.Center)
	return d.X*d.X+d.Y*d.Y <= k.Radius*k.Radius
}

// Bounds returns the square around the cap.
func (k Key) Bounds() image.Rectangle {
	r := image.Pt(k.Radius, k.Radius)
	return image.Rectangle{Min: k.Center.Sub(r), Max: k.Center.Add(r)}
}

// Layout places the panel and buttons for a given panel scale.
type Layout struct {
	Scale  int
	Window image.Rectangle
	Panel  image.Rectangle
	Keys   []Key
}

// NewLayout returns the layout with the panel magnified scale times.
func NewLayout(scale int) Layout {
	if scale < 1 {
		scale = 1
	}
	pw, ph := device.Width*scale, device.Height*scale
	panel := image.Rect(sideWidth, topMargin, sideWidth+pw, topMargin+ph)
	window := image.Rect(0, 0, 2*sideWidth+pw, topMargin+ph+bottomMargin)

	left, right := sideWidth/2, window.Max.X-sideWidth/2
	top, bottom := panel.Min.Y+ph/4, panel.Min.Y+3*ph/4

	return Layout{
		Scale:  scale,
		Window: window,
		Panel:  panel,
		Keys: []Key{
			{device.ButtonTopLeft, image.Pt(left, top), capRadius, "", ""},
			{device.ButtonSelect, image.Pt(left, bottom), capRadius, "SEL", iconSelect},
			{device.ButtonUp, image.Pt(right, top), capRadius, "UP", iconUp},
			{device.ButtonDown, image.Pt(right, bottom), capRadius, "DOWN", iconDown},
		},
	}
}

// HitTest returns the button under p, or 0.
func (l Layout) HitTest(p image.Point) device.Button {
	for _, k := range l.Keys {
		if k.Contains(p) {
			return k.Button
		}
	}
	return 0
}
