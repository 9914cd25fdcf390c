package board

import (
	"image"
	"image/color"
	"testing"

	"github.com/phinze/badgeclock/internal/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutHitTest(t *testing.T) {
	t.Parallel()

	l := NewLayout(4)
	assert.Equal(t, image.Rect(sideWidth, topMargin, sideWidth+640, topMargin+320), l.Panel)

	for _, k := range l.Keys {
		assert.Equal(t, k.Button, l.HitTest(k.Center), k.Label)
		assert.False(t, k.Bounds().Overlaps(l.Panel), "caps sit beside the panel")
	}
	assert.Zero(t, l.HitTest(l.Panel.Min.Add(image.Pt(10, 10))))
	assert.Zero(t, l.HitTest(image.Pt(0, 0)))
}

func TestLayoutMinimumScale(t *testing.T) {
	t.Parallel()

	l := NewLayout(0)
	assert.Equal(t, 1, l.Scale)
	assert.Equal(t, device.Width, l.Panel.Dx())
}

func TestTapBetweenReadsIsLatched(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.SetHeld(device.ButtonUp)
	s.SetHeld(0)

	assert.Equal(t, device.ButtonUp, s.Read(0xff), "tap seen once")
	assert.Zero(t, s.Read(0xff), "then released")
}

func TestHeldButtonStaysHeld(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.SetHeld(device.ButtonSelect)
	assert.Equal(t, device.ButtonSelect, s.Read(0xff))
	assert.Equal(t, device.ButtonSelect, s.Read(0xff))
	assert.Zero(t, s.Read(device.ButtonUp))
	assert.Equal(t, device.ButtonSelect, s.Held())
}

func TestSimulatedSensors(t *testing.T) {
	t.Parallel()

	s := NewState()
	assert.Equal(t, MaxLight/2, s.Reading())
	assert.Equal(t, MaxLight, s.AdjustLight(100))
	assert.Equal(t, 0, s.AdjustLight(-100))

	assert.InDelta(t, MaxBattery, s.BatteryVoltage(), 1e-9)
	assert.InDelta(t, MaxBattery-2*BatteryStep, s.AdjustBattery(-2), 1e-9)
	assert.InDelta(t, MinBattery, s.AdjustBattery(-100), 1e-9)

	assert.Zero(t, s.ChargeInputVoltage())
	assert.True(t, s.ToggleCharger())
	assert.Equal(t, ChargerOn, s.ChargeInputVoltage())

	require.NoError(t, s.SetBacklight(140))
	assert.Equal(t, 100, s.Backlight())
}

func TestFrameVersions(t *testing.T) {
	t.Parallel()

	s := NewState()
	dst := image.NewRGBA(image.Rect(0, 0, device.Width, device.Height))
	v := s.Frame(dst, 0)

	frame := image.NewRGBA(dst.Rect)
	frame.SetRGBA(5, 5, color.RGBA{9, 9, 9, 255})
	require.NoError(t, s.Show(frame))

	next := s.Frame(dst, v)
	assert.NotEqual(t, v, next)
	assert.Equal(t, color.RGBA{9, 9, 9, 255}, dst.RGBAAt(5, 5))
}

func TestBezel(t *testing.T) {
	t.Parallel()

	l := NewLayout(2)
	img, err := Bezel(l)
	require.NoError(t, err)
	assert.Equal(t, l.Window, img.Bounds())

	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(l.Panel.Min.X+5, l.Panel.Min.Y+5), "panel left black")
	assert.Equal(t, capColor, img.RGBAAt(l.Keys[0].Center.X, l.Keys[0].Center.Y))
}

func TestIcon(t *testing.T) {
	t.Parallel()

	for _, name := range []string{iconUp, iconDown, iconSelect} {
		img := Icon(name, 32, IconColor).(*image.RGBA)
		lit := 0
		for i := 3; i < len(img.Pix); i += 4 {
			if img.Pix[i] != 0 {
				lit++
			}
		}
		assert.Positive(t, lit, name)
	}

	blank := Icon("missing", 8, IconColor).(*image.RGBA)
	for i := 3; i < len(blank.Pix); i += 4 {
		assert.Zero(t, blank.Pix[i])
	}
}
