package board

import (
	"image"
	"image/draw"
	"sync"

	"github.com/phinze/badgeclock/internal/device"
)

// Simulated input ranges.
const (
	LightStep   = 2
	MaxLight    = 60
	BatteryStep = 0.05
	MinBattery  = 3.3
	MaxBattery  = 4.2
	ChargerOn   = 5.0
)

// State is the simulated badge shared between the clock loop and the GUI.
// The loop side implements device.Panel, device.Buttons, device.LightSensor
// and device.Power.
type State struct {
	mu sync.Mutex

	held, seen device.Button
	lux        int
	battery    float64
	charger    bool
	backlight  int

	frame   *image.RGBA
	version uint64
}

// NewState returns a badge in daylight on a full battery.
func NewState() *State {
	return &State{
		lux:       MaxLight / 2,
		battery:   MaxBattery,
		backlight: 100,
		frame:     image.NewRGBA(image.Rect(0, 0, device.Width, device.Height)),
	}
}

// SetHeld records the buttons held right now. Presses are latched until
// the next Read so taps shorter than a loop tick still register.
func (s *State) SetHeld(b device.Button) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held = b
	s.seen |= b
}

// Held returns the buttons the GUI reports as held.
func (s *State) Held() device.Button {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held
}

// Read implements device.Buttons.
func (s *State) Read(mask device.Button) device.Button {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := (s.held | s.seen) & mask
	s.seen = s.held
	return b
}

// AdjustLight changes the simulated ambient light by delta steps.
func (s *State) AdjustLight(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lux = min(max(s.lux+delta*LightStep, 0), MaxLight)
	return s.lux
}

// Reading implements device.LightSensor.
func (s *State) Reading() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lux
}

// AdjustBattery changes the simulated battery voltage by delta steps.
func (s *State) AdjustBattery(delta int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.battery = min(max(s.battery+float64(delta)*BatteryStep, MinBattery), MaxBattery)
	return s.battery
}

// BatteryVoltage implements device.Power.
func (s *State) BatteryVoltage() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.battery
}

// ToggleCharger plugs or unplugs the simulated charger.
func (s *State) ToggleCharger() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charger = !s.charger
	return s.charger
}

// ChargeInputVoltage implements device.Power.
func (s *State) ChargeInputVoltage() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.charger {
		return ChargerOn
	}
	return 0
}

// SetBacklight implements device.Panel.
func (s *State) SetBacklight(percent int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backlight = min(max(percent, 0), 100)
	return nil
}

// Backlight returns the current backlight level in percent.
func (s *State) Backlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backlight
}

// Show implements device.Panel by copying the frame.
func (s *State) Show(frame image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	draw.Draw(s.frame, s.frame.Rect, frame, frame.Bounds().Min, draw.Src)
	s.version++
	return nil
}

// Frame copies the latest frame into dst when it changed since version,
// and returns the current version.
func (s *State) Frame(dst *image.RGBA, version uint64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if version != s.version {
		copy(dst.Pix, s.frame.Pix)
	}
	return s.version
}
