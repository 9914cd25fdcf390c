package hardware

import (
	"fmt"

	"github.com/phinze/badgeclock/internal/config"
	"github.com/phinze/badgeclock/internal/device"
	"github.com/phinze/badgeclock/internal/sensor"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

// Open initialises the host drivers and assembles a badge from cfg. term
// is used as the panel unless cfg selects an I²C display. Parts that cannot
// be found are logged and left out.
func Open(cfg config.HardwareConfig, term display.Drawer) (*Badge, error) {
	state, err := host.Init()
	if err != nil {
		return nil, fmt.Errorf("initializing periph host: %w", err)
	}
	log.Debug().Int("drivers", len(state.Loaded)).Msg("periph host initialized")

	opts := Options{
		Drawer:  term,
		Buttons: make(map[device.Button]gpio.PinIn),
	}

	var bus i2c.BusCloser
	if needsBus(cfg) {
		bus, err = i2creg.Open(cfg.I2CBus)
		if err != nil {
			if cfg.Panel == config.PanelSSD1306 {
				return nil, fmt.Errorf("opening I²C bus %q: %w", cfg.I2CBus, err)
			}
			log.Warn().Err(err).Str("bus", cfg.I2CBus).Msg("no I²C bus, sensors disabled")
			bus = nil
		}
	}

	if cfg.Panel == config.PanelSSD1306 {
		o := ssd1306.DefaultOpts
		dev, err := ssd1306.NewI2C(bus, &o)
		if err != nil {
			bus.Close()
			return nil, fmt.Errorf("opening ssd1306: %w", err)
		}
		opts.Drawer = dev
	}

	if bus != nil {
		attachSensors(&opts, cfg, bus)
	}

	for _, p := range []struct {
		button device.Button
		name   string
	}{
		{device.ButtonSelect, cfg.ButtonSelect},
		{device.ButtonUp, cfg.ButtonUp},
		{device.ButtonDown, cfg.ButtonDown},
	} {
		if pin := lookupPin(p.name); pin != nil {
			opts.Buttons[p.button] = pin
		}
	}
	if pin := lookupPin(cfg.BacklightPin); pin != nil {
		opts.Backlight = pin
	}

	b, err := New(opts)
	if err != nil {
		if bus != nil {
			bus.Close()
		}
		return nil, err
	}
	if bus != nil {
		b.closers = append(b.closers, bus.Close)
	}
	return b, nil
}

func needsBus(cfg config.HardwareConfig) bool {
	return cfg.Panel == config.PanelSSD1306 || cfg.LightAddr != 0 || cfg.BatteryAddr != 0 || cfg.ChargeAddr != 0
}

func attachSensors(opts *Options, cfg config.HardwareConfig, bus i2c.Bus) {
	if cfg.LightAddr != 0 {
		light, err := sensor.NewBH1750(bus, cfg.LightAddr)
		if err != nil {
			log.Warn().Err(err).Msg("ambient light sensor not found")
		} else {
			opts.Light = light
		}
	}
	if cfg.BatteryAddr != 0 {
		opts.Battery = probeMonitor(bus, cfg.BatteryAddr, "battery")
	}
	if cfg.ChargeAddr != 0 {
		opts.Charge = probeMonitor(bus, cfg.ChargeAddr, "charge")
	}
}

// probeMonitor returns the INA260 at addr if it answers. The return type is
// the interface so a missing part is a true nil.
func probeMonitor(bus i2c.Bus, addr uint16, rail string) VoltMeter {
	m := sensor.NewINA260(bus, addr)
	if _, err := m.ManufacturerID(); err != nil {
		log.Warn().Err(err).Str("rail", rail).Msg("power monitor not found")
		return nil
	}
	return m
}

func lookupPin(name string) gpio.PinIO {
	if name == "" {
		return nil
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		log.Warn().Str("pin", name).Msg("GPIO pin not found")
	}
	return pin
}
