// Package emulator provides a GUI-based badge emulator.
package emulator

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phinze/badgeclock/internal/device"
	"github.com/phinze/badgeclock/internal/device/emulator/board"
	"github.com/rs/zerolog/log"
)

// Emulator implements the device.Device interface using Ebitengine for GUI rendering.
// Close the window to stop it.
type Emulator struct {
	*board.State

	layout board.Layout

	mu     sync.Mutex
	open   bool
	stopCh chan struct{}
}

// New creates a new emulator whose panel is magnified scale times.
func New(scale int) *Emulator {
	return &Emulator{
		State:  board.NewState(),
		layout: board.NewLayout(scale),
		open:   true,
		stopCh: make(chan struct{}),
	}
}

// Name returns the emulated model name.
func (e *Emulator) Name() string {
	return fmt.Sprintf("badge emulator (%dx)", e.layout.Scale)
}

// Close shuts down the emulator window.
func (e *Emulator) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.open {
		return fmt.Errorf("emulator: device is not open")
	}
	e.open = false
	close(e.stopCh)
	return nil
}

// RunGUI starts the Ebitengine GUI loop. This MUST be called from the main goroutine
// on macOS due to Cocoa threading requirements. This method blocks until the window is closed.
func (e *Emulator) RunGUI() error {
	bezel, err := board.Bezel(e.layout)
	if err != nil {
		return fmt.Errorf("emulator: drawing bezel: %w", err)
	}

	g := &game{
		emu:   e,
		bezel: ebiten.NewImageFromImage(bezel),
		frame: image.NewRGBA(image.Rect(0, 0, device.Width, device.Height)),
		icons: make(map[device.Button]*ebiten.Image),
	}
	g.panel = ebiten.NewImage(device.Width, device.Height)
	for _, k := range e.layout.Keys {
		if k.Icon == "" {
			continue
		}
		g.icons[k.Button] = ebiten.NewImageFromImage(board.Icon(k.Icon, k.Radius, board.IconColor))
	}

	w := e.layout.Window
	ebiten.SetWindowSize(w.Dx(), w.Dy())
	ebiten.SetWindowTitle("Badge Clock Emulator")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	// Run the game loop (this blocks until the window is closed)
	err = ebiten.RunGame(g)

	e.mu.Lock()
	if e.open {
		e.open = false
		close(e.stopCh)
	}
	e.mu.Unlock()
	return err
}

// Done is closed when the window is closed or Close is called.
func (e *Emulator) Done() <-chan struct{} {
	return e.stopCh
}

// keyboard bindings for the buttons.
var keyBindings = map[ebiten.Key]device.Button{
	ebiten.KeyArrowLeft: device.ButtonSelect,
	ebiten.KeyZ:         device.ButtonSelect,
	ebiten.KeyArrowUp:   device.ButtonUp,
	ebiten.KeyArrowDown: device.ButtonDown,
	ebiten.KeyQ:         device.ButtonTopLeft,
}

// game implements ebiten.Game for the emulator.
type game struct {
	emu *Emulator

	bezel *ebiten.Image
	panel *ebiten.Image
	icons map[device.Button]*ebiten.Image

	frame   *image.RGBA
	version uint64
}

func (g *game) Update() error {
	select {
	case <-g.emu.stopCh:
		return ebiten.Termination
	default:
	}

	g.handleInput()
	return nil
}

func (g *game) handleInput() {
	var held device.Button
	for k, b := range keyBindings {
		if ebiten.IsKeyPressed(k) {
			held |= b
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		held |= g.emu.layout.HitTest(image.Pt(ebiten.CursorPosition()))
	}
	g.emu.SetHeld(held)

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		log.Debug().Int("light", g.emu.AdjustLight(-1)).Msg("ambient light")
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		log.Debug().Int("light", g.emu.AdjustLight(1)).Msg("ambient light")
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		log.Debug().Float64("volts", g.emu.AdjustBattery(-1)).Msg("battery")
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		log.Debug().Float64("volts", g.emu.AdjustBattery(1)).Msg("battery")
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		log.Debug().Bool("charging", g.emu.ToggleCharger()).Msg("charger")
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.bezel, nil)

	if v := g.emu.Frame(g.frame, g.version); v != g.version {
		g.panel.WritePixels(g.frame.Pix)
		g.version = v
	}

	l := g.emu.layout
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(l.Scale), float64(l.Scale))
	op.GeoM.Translate(float64(l.Panel.Min.X), float64(l.Panel.Min.Y))
	// A dark panel is still faintly visible, like a real LCD.
	level := 0.15 + 0.85*float32(g.emu.Backlight())/100
	op.ColorScale.Scale(level, level, level, 1)
	screen.DrawImage(g.panel, op)

	held := g.emu.Held()
	for _, k := range l.Keys {
		if held&k.Button != 0 {
			drawCircle(screen, k.Center.X, k.Center.Y, k.Radius-4, color.RGBA{110, 110, 110, 255})
		}
		icon, ok := g.icons[k.Button]
		if !ok {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(k.Center.X-k.Radius/2), float64(k.Center.Y-k.Radius/2))
		screen.DrawImage(icon, op)
	}

	charger := "off"
	if g.emu.ChargeInputVoltage() > 0 {
		charger = "on"
	}
	status := fmt.Sprintf("light %d  battery %.2fV  charger %s  backlight %d%%",
		g.emu.Reading(), g.emu.BatteryVoltage(), charger, g.emu.Backlight())
	ebitenutil.DebugPrintAt(screen, status, l.Panel.Min.X, l.Panel.Max.Y+14)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := g.emu.layout.Window
	return w.Dx(), w.Dy()
}

// Helper function to draw a filled circle
func drawCircle(screen *ebiten.Image, cx, cy, radius int, c color.RGBA) {
	diameter := radius * 2
	circle := ebiten.NewImage(diameter, diameter)

	for y := 0; y < diameter; y++ {
		for x := 0; x < diameter; x++ {
			dx := x - radius
			dy := y - radius
			if dx*dx+dy*dy <= radius*radius {
				circle.Set(x, y, c)
			}
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(cx-radius), float64(cy-radius))
	screen.DrawImage(circle, op)
}

var _ device.Device = &Emulator{}
