// Package device defines the abstraction layer for the badge hardware.
package device

import (
	"image"
	"image/color"
)

// Device is the interface that abstracts the badge.
// The periph.io hardware adapter and the emulator both implement it.
type Device interface {
	Panel
	Buttons
	LightSensor
	Power

	// Name returns a human readable description of the backend.
	Name() string
	Close() error
}

// Panel is the physical display the off-screen frame is committed to.
type Panel interface {
	// Show commits a fully drawn frame. Implementations must copy or
	// transmit the pixels before returning; the frame is reused.
	Show(frame image.Image) error

	// SetBacklight sets the backlight level in percent (0-100).
	SetBacklight(percent int) error
}

// Canvas is the drawing surface the clock face renders into.
// Rectangles are inclusive of both corners.
type Canvas interface {
	Clear()
	Pixel(x, y int, c color.Color)
	Rect(x1, y1, x2, y2 int, c color.Color, filled bool)
	Print(text string, fg, bg color.Color, x, y int)
	Update() error
	SetBacklight(percent int) error
}

// Button is a bitmask of physical buttons.
type Button uint8

// Physical buttons, named after their position on the badge.
const (
	ButtonBottomLeft Button = 1 << iota
	ButtonBottomRight
	ButtonTopRight
	ButtonTopLeft
)

// Roles of the buttons used by the clock.
const (
	ButtonSelect = ButtonBottomLeft
	ButtonUp     = ButtonTopRight
	ButtonDown   = ButtonBottomRight
)

// Buttons reports which buttons are currently held.
type Buttons interface {
	// Read returns the held buttons, restricted to mask.
	Read(mask Button) Button
}

// LightSensor reports the ambient brightness.
type LightSensor interface {
	Reading() int
}

// Power reports supply voltages in volts.
type Power interface {
	BatteryVoltage() float64
	ChargeInputVoltage() float64
}

// Display geometry of the badge panel.
const (
	Width  = 160
	Height = 80
)
