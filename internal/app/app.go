// Package app runs the clock: one tick reads the buttons, advances the
// mode machine, adjusts the wall clock, dims the backlight and renders a
// frame.
package app

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/phinze/badgeclock/internal/backlight"
	"github.com/phinze/badgeclock/internal/device"
	"github.com/phinze/badgeclock/internal/face"
	"github.com/phinze/badgeclock/internal/input"
	"github.com/phinze/badgeclock/internal/mode"
	"github.com/phinze/badgeclock/internal/wallclock"
	"github.com/rs/zerolog/log"
)

// DefaultTick is the delay between two iterations.
const DefaultTick = 200 * time.Millisecond

// Options tunes the loop timing. Zero values select the defaults.
type Options struct {
	Tick      time.Duration
	LongPress time.Duration
}

// App is the explicit state of a running clock.
type App struct {
	dev     device.Device
	wall    wallclock.Service
	clock   clockwork.Clock
	tick    time.Duration
	decoder *input.Decoder
	canvas  *device.Framebuffer

	mode mode.Mode
}

// New creates an App drawing on dev. clock paces the loop and times
// presses; a nil clock uses the real one.
func New(dev device.Device, wall wallclock.Service, clock clockwork.Clock, opts Options) *App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	return &App{
		dev:     dev,
		wall:    wall,
		clock:   clock,
		tick:    tick,
		decoder: input.NewDecoder(clock, opts.LongPress),
		canvas:  device.NewFramebuffer(device.Width, device.Height, dev),
		mode:    mode.Display,
	}
}

// Mode returns the active mode.
func (a *App) Mode() mode.Mode {
	return a.mode
}

// Canvas returns the off-screen frame the clock renders into.
func (a *App) Canvas() *device.Framebuffer {
	return a.canvas
}

// Tick runs one iteration of the loop.
func (a *App) Tick() error {
	ev := a.decoder.Decode(a.dev.Read(input.Mask))

	next, delta := mode.Step(a.mode, ev)
	if next != a.mode {
		log.Debug().Stringer("from", a.mode).Stringer("to", next).Msg("mode changed")
		a.mode = next
	}
	if !delta.IsZero() {
		log.Debug().Stringer("mode", a.mode).Interface("delta", delta).Msg("adjusting clock")
		a.wall.SetRelative(delta)
	}

	if err := a.canvas.SetBacklight(backlight.Level(a.dev.Reading())); err != nil {
		log.Warn().Err(err).Msg("failed to set backlight")
	}

	return face.Render(a.canvas, face.Frame{
		Time:        a.wall.Now(),
		Mode:        a.mode,
		Battery:     a.dev.BatteryVoltage(),
		ChargeInput: a.dev.ChargeInputVoltage(),
	})
}

// Run ticks until ctx is cancelled, sleeping a fixed delay after each
// iteration. A frame that fails to commit is logged and the loop goes on.
func (a *App) Run(ctx context.Context) error {
	log.Info().Str("device", a.dev.Name()).Dur("tick", a.tick).Msg("clock running")

	failing := false
	for {
		if err := a.Tick(); err != nil {
			if !failing {
				log.Error().Err(err).Msg("frame failed")
			}
			failing = true
		} else {
			failing = false
		}

		select {
		case <-ctx.Done():
			return nil
		case <-a.clock.After(a.tick):
		}
	}
}
