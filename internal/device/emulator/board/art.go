package board

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/rs/zerolog/log"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Icon names.
const (
	iconSelect = "select"
	iconUp     = "up"
	iconDown   = "down"
)

const svgHeader = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="3" stroke-linecap="round" stroke-linejoin="round">`

var icons = map[string]string{
	iconUp:     svgHeader + `<polyline points="6 15 12 9 18 15"/></svg>`,
	iconDown:   svgHeader + `<polyline points="6 9 12 15 18 9"/></svg>`,
	iconSelect: svgHeader + `<circle cx="12" cy="12" r="5" fill="currentColor"/></svg>`,
}

var (
	bodyColor  = color.RGBA{24, 60, 40, 255}
	bezelColor = color.RGBA{10, 10, 10, 255}
	capColor   = color.RGBA{70, 70, 70, 255}
	rimColor   = color.RGBA{120, 120, 120, 255}
	labelColor = color.RGBA{200, 200, 200, 255}

	// IconColor is the colour of the glyphs on the button caps.
	IconColor = color.RGBA{230, 230, 230, 255}
)

var loadFace = sync.OnceValues(func() (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing go regular: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: 14, DPI: 72, Hinting: font.HintingFull}), nil
})

// Help is the key reference printed under the panel.
const Help = "SEL: Left/Z   UP/DOWN: arrows   light: [ ]   battery: - =   charger: C"

// Bezel draws the badge body, the frame around the panel and the button
// caps. The panel area itself is left black.
func Bezel(l Layout) (*image.RGBA, error) {
	face, err := loadFace()
	if err != nil {
		return nil, err
	}

	w, h := l.Window.Dx(), l.Window.Dy()
	dc := gg.NewContext(w, h)
	dc.SetFontFace(face)

	dc.SetColor(color.Black)
	dc.Clear()

	dc.SetColor(bodyColor)
	dc.DrawRoundedRectangle(4, 4, float64(w-8), float64(h-8), 24)
	dc.Fill()

	p := l.Panel
	dc.SetColor(bezelColor)
	dc.DrawRoundedRectangle(float64(p.Min.X-10), float64(p.Min.Y-10), float64(p.Dx()+20), float64(p.Dy()+20), 8)
	dc.Fill()
	dc.SetColor(color.Black)
	dc.DrawRectangle(float64(p.Min.X), float64(p.Min.Y), float64(p.Dx()), float64(p.Dy()))
	dc.Fill()

	for _, k := range l.Keys {
		cx, cy, r := float64(k.Center.X), float64(k.Center.Y), float64(k.Radius)
		dc.SetColor(rimColor)
		dc.DrawCircle(cx, cy, r+3)
		dc.Fill()
		dc.SetColor(capColor)
		dc.DrawCircle(cx, cy, r)
		dc.Fill()
		if k.Label != "" {
			dc.SetColor(labelColor)
			dc.DrawStringAnchored(k.Label, cx, cy+r+16, 0.5, 0.5)
		}
	}

	dc.SetColor(labelColor)
	dc.DrawStringAnchored("badgeclock", float64(w)/2, float64(l.Panel.Min.Y)/2, 0.5, 0.5)
	dc.DrawStringAnchored(Help, float64(w)/2, float64(h)-float64(bottomMargin)/2, 0.5, 0.5)

	img := image.NewRGBA(dc.Image().Bounds())
	draw.Draw(img, img.Bounds(), dc.Image(), image.Point{}, draw.Src)
	return img, nil
}

// Icon rasterises the named cap icon at size x size pixels. Unknown names
// yield a transparent image.
func Icon(name string, size int, iconColor color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	svgContent, ok := icons[name]
	if !ok {
		return img
	}

	r, g, b, _ := iconColor.RGBA()
	hexColor := fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
	svgContent = strings.ReplaceAll(svgContent, "currentColor", hexColor)

	icon, err := oksvg.ReadIconStream(strings.NewReader(svgContent))
	if err != nil {
		log.Error().Err(err).Str("icon", name).Msg("failed to parse SVG")
		return img
	}

	icon.SetTarget(0, 0, float64(size), float64(size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	return img
}
