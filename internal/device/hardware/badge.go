// Package hardware drives a real badge through periph.io: GPIO buttons, a
// PWM backlight, I²C sensors and any display.Drawer as the panel.
package hardware

import (
	"errors"
	"fmt"
	"image"

	"github.com/phinze/badgeclock/internal/device"
	"github.com/phinze/badgeclock/internal/sensor"
	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Values reported by sensors that are not fitted.
const (
	FallbackLux     = 100
	FallbackBattery = 4.2
)

// BacklightFrequency is the PWM frequency driving the backlight.
const BacklightFrequency = 1 * physic.KiloHertz

// LightMeter measures ambient light.
type LightMeter interface {
	Lux() (int, error)
}

// VoltMeter measures a supply rail.
type VoltMeter interface {
	BusVoltage() (physic.ElectricPotential, error)
}

// contraster is implemented by panels that dim themselves.
type contraster interface {
	SetContrast(level byte) error
}

// Options describes the parts fitted to a badge. Only Drawer is required.
type Options struct {
	Drawer    display.Drawer
	Buttons   map[device.Button]gpio.PinIn
	Backlight gpio.PinOut
	Light     LightMeter
	Battery   VoltMeter
	Charge    VoltMeter
}

// Badge implements device.Device on top of periph.io.
type Badge struct {
	drawer    display.Drawer
	buttons   map[device.Button]gpio.PinIn
	backlight gpio.PinOut
	light     LightMeter
	battery   VoltMeter
	charge    VoltMeter

	scratch *image.RGBA
	level   int

	lux      reading[int]
	batteryV reading[float64]
	chargeV  reading[float64]

	closers []func() error
}

// New configures the button pins as pulled-up inputs and returns the badge.
func New(o Options) (*Badge, error) {
	if o.Drawer == nil {
		return nil, errors.New("hardware: no panel")
	}
	buttons := make(map[device.Button]gpio.PinIn, len(o.Buttons))
	for btn, pin := range o.Buttons {
		if pin == nil {
			continue
		}
		if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("hardware: configuring %s: %w", pin, err)
		}
		buttons[btn] = pin
	}

	b := &Badge{
		drawer:    o.Drawer,
		buttons:   buttons,
		backlight: o.Backlight,
		light:     o.Light,
		battery:   o.Battery,
		charge:    o.Charge,
		level:     -1,
		lux:       reading[int]{name: "light", last: FallbackLux},
		batteryV:  reading[float64]{name: "battery", last: FallbackBattery},
		chargeV:   reading[float64]{name: "charge"},
	}
	if r := o.Drawer.Bounds(); r.Dx() != device.Width || r.Dy() != device.Height {
		b.scratch = image.NewRGBA(r)
	}
	return b, nil
}

// Name returns the panel description.
func (b *Badge) Name() string {
	return fmt.Sprintf("periph %s", b.drawer)
}

// Show implements device.Panel. Frames are scaled to panels of a
// different size.
func (b *Badge) Show(frame image.Image) error {
	src := frame
	if b.scratch != nil {
		xdraw.NearestNeighbor.Scale(b.scratch, b.scratch.Rect, frame, frame.Bounds(), xdraw.Src, nil)
		src = b.scratch
	}
	if err := b.drawer.Draw(b.drawer.Bounds(), src, src.Bounds().Min); err != nil {
		return fmt.Errorf("hardware: drawing frame: %w", err)
	}
	return nil
}

// SetBacklight implements device.Panel. The level goes to the PWM pin when
// one is fitted, otherwise to the panel contrast when it supports it.
func (b *Badge) SetBacklight(percent int) error {
	percent = min(max(percent, 0), 100)
	if percent == b.level {
		return nil
	}

	var err error
	switch {
	case b.backlight != nil:
		err = b.backlight.PWM(gpio.DutyMax*gpio.Duty(percent)/100, BacklightFrequency)
	default:
		if c, ok := b.drawer.(contraster); ok {
			err = c.SetContrast(byte(percent * 255 / 100))
		}
	}
	if err != nil {
		return fmt.Errorf("hardware: setting backlight to %d%%: %w", percent, err)
	}
	b.level = percent
	return nil
}

// Read implements device.Buttons. Buttons pull their pin low when held.
func (b *Badge) Read(mask device.Button) device.Button {
	var held device.Button
	for btn, pin := range b.buttons {
		if mask&btn != 0 && pin.Read() == gpio.Low {
			held |= btn
		}
	}
	return held
}

// Reading implements device.LightSensor.
func (b *Badge) Reading() int {
	if b.light == nil {
		return b.lux.last
	}
	return b.lux.update(b.light.Lux())
}

// BatteryVoltage implements device.Power.
func (b *Badge) BatteryVoltage() float64 {
	return b.volts(b.battery, &b.batteryV)
}

// ChargeInputVoltage implements device.Power.
func (b *Badge) ChargeInputVoltage() float64 {
	return b.volts(b.charge, &b.chargeV)
}

func (b *Badge) volts(m VoltMeter, r *reading[float64]) float64 {
	if m == nil {
		return r.last
	}
	v, err := m.BusVoltage()
	return r.update(sensor.Volts(v), err)
}

// Close blanks the panel, turns the backlight off and releases the bus.
func (b *Badge) Close() error {
	errs := []error{b.drawer.Halt()}
	if b.backlight != nil {
		errs = append(errs, b.backlight.Out(gpio.Low))
	}
	for _, c := range b.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// reading keeps the last good value of a sensor. Failures are logged once
// per outage.
type reading[T any] struct {
	name    string
	last    T
	failing bool
}

func (r *reading[T]) update(v T, err error) T {
	if err != nil {
		if !r.failing {
			log.Warn().Err(err).Str("sensor", r.name).Msg("sensor read failed, reusing last value")
		}
		r.failing = true
		return r.last
	}
	if r.failing {
		log.Info().Str("sensor", r.name).Msg("sensor recovered")
	}
	r.failing = false
	r.last = v
	return v
}

var _ device.Device = &Badge{}
