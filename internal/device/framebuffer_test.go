package device

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPanel struct {
	frames    int
	backlight int
	last      *image.RGBA
}

func (p *recordingPanel) Show(frame image.Image) error {
	p.frames++
	rgba := image.NewRGBA(frame.Bounds())
	for y := frame.Bounds().Min.Y; y < frame.Bounds().Max.Y; y++ {
		for x := frame.Bounds().Min.X; x < frame.Bounds().Max.X; x++ {
			rgba.Set(x, y, frame.At(x, y))
		}
	}
	p.last = rgba
	return nil
}

func (p *recordingPanel) SetBacklight(percent int) error {
	p.backlight = percent
	return nil
}

var white = color.RGBA{255, 255, 255, 255}

func TestFramebufferRectInclusive(t *testing.T) {
	t.Parallel()

	fb := NewFramebuffer(10, 10, nil)
	fb.Clear()
	fb.Rect(2, 3, 4, 5, white, true)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			lit := fb.Image().RGBAAt(x, y) == white
			inside := x >= 2 && x <= 4 && y >= 3 && y <= 5
			assert.Equal(t, inside, lit, "pixel %d,%d", x, y)
		}
	}
}

func TestFramebufferRectSwappedCorners(t *testing.T) {
	t.Parallel()

	fb := NewFramebuffer(10, 10, nil)
	fb.Rect(4, 5, 2, 3, white, true)

	assert.Equal(t, white, fb.Image().RGBAAt(2, 3))
	assert.Equal(t, white, fb.Image().RGBAAt(4, 5))
}

func TestFramebufferRectOutline(t *testing.T) {
	t.Parallel()

	fb := NewFramebuffer(10, 10, nil)
	fb.Clear()
	fb.Rect(1, 1, 5, 5, white, false)

	assert.Equal(t, white, fb.Image().RGBAAt(1, 3))
	assert.Equal(t, white, fb.Image().RGBAAt(5, 3))
	assert.Equal(t, white, fb.Image().RGBAAt(3, 1))
	assert.NotEqual(t, white, fb.Image().RGBAAt(3, 3))
}

func TestFramebufferClipsOutOfBounds(t *testing.T) {
	t.Parallel()

	fb := NewFramebuffer(Width, Height, nil)
	assert.NotPanics(t, func() {
		fb.Rect(0, 72, 118, 80, white, true)
		fb.Pixel(-1, -1, white)
		fb.Pixel(Width, Height, white)
	})
	assert.Equal(t, white, fb.Image().RGBAAt(0, 79))
}

func TestFramebufferPrint(t *testing.T) {
	t.Parallel()

	fb := NewFramebuffer(Width, Height, nil)
	fb.Clear()
	fb.Print("88", white, nil, 0, 56)

	lit := 0
	for y := 56; y < 56+13; y++ {
		for x := 0; x < 14; x++ {
			if fb.Image().RGBAAt(x, y) == white {
				lit++
			}
		}
	}
	assert.Positive(t, lit)

	for x := 0; x < Width; x++ {
		assert.NotEqual(t, white, fb.Image().RGBAAt(x, 40), "no text above the line at x=%d", x)
	}
}

func TestFramebufferUpdateCommitsToPanel(t *testing.T) {
	t.Parallel()

	p := &recordingPanel{}
	fb := NewFramebuffer(4, 4, p)
	fb.Clear()
	fb.Pixel(1, 2, white)

	require.NoError(t, fb.SetBacklight(40))
	require.NoError(t, fb.Update())

	assert.Equal(t, 1, p.frames)
	assert.Equal(t, 40, p.backlight)
	assert.Equal(t, white, p.last.RGBAAt(1, 2))
}

func TestFramebufferNilPanel(t *testing.T) {
	t.Parallel()

	fb := NewFramebuffer(4, 4, nil)
	assert.NoError(t, fb.Update())
	assert.NoError(t, fb.SetBacklight(100))
}
