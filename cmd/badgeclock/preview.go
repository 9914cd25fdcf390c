package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/phinze/badgeclock/internal/device"
	"github.com/phinze/badgeclock/internal/face"
	"github.com/phinze/badgeclock/internal/mode"
	"github.com/phinze/badgeclock/internal/wallclock"
	"github.com/spf13/cobra"
	xdraw "golang.org/x/image/draw"
)

var previewOpts struct {
	at      string
	mode    string
	battery float64
	charge  float64
	out     string
	scale   int
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a single frame to the terminal or a PNG file",
	RunE:  runPreview,
}

func init() {
	f := previewCmd.Flags()
	f.StringVar(&previewOpts.at, "at", "", "time to show, RFC 3339 (default now)")
	f.StringVar(&previewOpts.mode, "mode", mode.Display.String(), "mode to render")
	f.Float64Var(&previewOpts.battery, "battery", 4.2, "battery voltage")
	f.Float64Var(&previewOpts.charge, "charge", 0, "charge input voltage")
	f.StringVarP(&previewOpts.out, "out", "o", "", "write a PNG instead of printing")
	f.IntVar(&previewOpts.scale, "scale", 4, "PNG magnification")
}

func runPreview(cmd *cobra.Command, args []string) error {
	m, err := mode.Parse(previewOpts.mode)
	if err != nil {
		return err
	}
	at := time.Now()
	if previewOpts.at != "" {
		if at, err = time.Parse(time.RFC3339, previewOpts.at); err != nil {
			return fmt.Errorf("parsing --at: %w", err)
		}
	}

	fb := device.NewFramebuffer(device.Width, device.Height, nil)
	if err := face.Render(fb, face.Frame{
		Time:        wallclock.FromTime(at),
		Mode:        m,
		Battery:     previewOpts.battery,
		ChargeInput: previewOpts.charge,
	}); err != nil {
		return err
	}

	if previewOpts.out == "" {
		term := newTerminal()
		if err := term.Draw(term.Bounds(), fb.Image(), image.Point{}); err != nil {
			return err
		}
		return term.Halt()
	}
	return writePNG(previewOpts.out, fb.Image(), max(previewOpts.scale, 1))
}

func writePNG(path string, src image.Image, scale int) error {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Rect, src, b, xdraw.Src, nil)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
