package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/phinze/badgeclock/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup: write the config file",
	RunE:  runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("=== Badgeclock Setup ===")
	fmt.Println()

	fs := afero.NewOsFs()
	path := resolveConfigPath()

	// Load existing config as defaults
	cfg, err := config.LoadFrom(fs, path)
	if err != nil {
		fmt.Printf("Ignoring existing config: %v\n", err)
		cfg = config.Default()
	}

	fmt.Println("-- Clock --")
	cfg.Timezone = prompt(reader, "Time zone (empty for local)", cfg.Timezone)
	if cfg.Tick, err = promptDuration(reader, "Tick", cfg.Tick); err != nil {
		return err
	}
	if cfg.LongPress, err = promptDuration(reader, "Long press", cfg.LongPress); err != nil {
		return err
	}
	cfg.LogLevel = prompt(reader, "Log level", cfg.LogLevel)
	fmt.Println()

	fmt.Println("-- Hardware --")
	hw := &cfg.Hardware
	hw.Panel = prompt(reader, "Panel (terminal, ssd1306)", hw.Panel)
	hw.I2CBus = prompt(reader, "I2C bus (empty for first)", hw.I2CBus)
	for _, a := range []struct {
		label string
		dst   *uint16
	}{
		{"Light sensor address", &hw.LightAddr},
		{"Battery monitor address", &hw.BatteryAddr},
		{"Charge monitor address", &hw.ChargeAddr},
	} {
		if *a.dst, err = promptAddr(reader, a.label, *a.dst); err != nil {
			return err
		}
	}
	hw.ButtonSelect = prompt(reader, "SEL button pin", hw.ButtonSelect)
	hw.ButtonUp = prompt(reader, "UP button pin", hw.ButtonUp)
	hw.ButtonDown = prompt(reader, "DOWN button pin", hw.ButtonDown)
	hw.BacklightPin = prompt(reader, "Backlight PWM pin", hw.BacklightPin)
	fmt.Println()

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Write config file
	if err := config.WriteConfigFile(fs, path, cfg); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	fmt.Printf("Config written to %s\n", path)
	fmt.Println("Setup complete!")
	return nil
}

// prompt asks for a value with an optional default.
func prompt(reader *bufio.Reader, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("  %s [%s]: ", label, defaultVal)
	} else {
		fmt.Printf("  %s: ", label)
	}
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultVal
	}
	return line
}

func promptDuration(reader *bufio.Reader, label string, defaultVal time.Duration) (time.Duration, error) {
	v := prompt(reader, label, defaultVal.String())
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", strings.ToLower(label), err)
	}
	return d, nil
}

// promptAddr accepts decimal or 0x-prefixed addresses. 0 disables the part.
func promptAddr(reader *bufio.Reader, label string, defaultVal uint16) (uint16, error) {
	v := prompt(reader, label, fmt.Sprintf("0x%02x", defaultVal))
	n, err := strconv.ParseUint(v, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", strings.ToLower(label), err)
	}
	return uint16(n), nil
}
