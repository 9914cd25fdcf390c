package main

import (
	"fmt"
	"io"
	"os"

	"github.com/phinze/badgeclock/internal/backlight"
	"github.com/phinze/badgeclock/internal/device"
	"github.com/phinze/badgeclock/internal/device/hardware"
	"github.com/phinze/badgeclock/internal/device/terminal"
	"github.com/phinze/badgeclock/internal/face"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check config and probe the badge hardware",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Badgeclock Status ===")
	fmt.Println()

	allOK := true

	// Config file
	path := resolveConfigPath()
	fmt.Printf("Config file: %s\n", path)
	if _, err := os.Stat(path); err == nil {
		fmt.Println("  Status: found")
	} else {
		fmt.Println("  Status: not found, using defaults")
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("  Load error: %v\n", err)
		fmt.Println()
		fmt.Println("Some checks failed. Run 'badgeclock setup' to configure.")
		return nil
	}
	fmt.Printf("  Tick: %s, long press: %s\n", cfg.Tick, cfg.LongPress)
	if loc, err := cfg.Location(); err == nil {
		fmt.Printf("  Time zone: %s\n", loc)
	} else {
		fmt.Printf("  Time zone: %v\n", err)
		allOK = false
	}
	fmt.Println()

	// Hardware probe. The terminal panel is silenced so the probe
	// does not scribble over the report.
	fmt.Println("Badge:")
	quiet := terminal.New(&terminal.Opts{W: device.Width, H: device.Height, Out: io.Discard})
	badge, err := hardware.Open(cfg.Hardware, quiet)
	if err != nil {
		fmt.Printf("  Device: %v\n", err)
		allOK = false
	} else {
		lux := badge.Reading()
		fmt.Printf("  Panel: %s\n", badge.Name())
		fmt.Printf("  Light: %d (backlight %d%%)\n", lux, backlight.Level(lux))
		fmt.Printf("  Battery: %.2fV\n", badge.BatteryVoltage())
		charge := badge.ChargeInputVoltage()
		fmt.Printf("  Charger: %.2fV (charging: %t)\n", charge, charge > face.ChargeThreshold)
		fmt.Printf("  Buttons held: %08b\n", badge.Read(0xff))
		if err := badge.Close(); err != nil {
			fmt.Printf("  Close: %v\n", err)
		}
	}
	fmt.Println()

	if allOK {
		fmt.Println("All checks passed.")
	} else {
		fmt.Println("Some checks failed. Run 'badgeclock setup' to configure.")
	}

	return nil
}
