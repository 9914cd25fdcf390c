// Package config provides configuration loading from a YAML file and
// environment variables. Environment variables take precedence for dev flexibility.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvConfig    = "BADGECLOCK_CONFIG"
	EnvTick      = "BADGECLOCK_TICK"
	EnvLongPress = "BADGECLOCK_LONG_PRESS"
	EnvTimezone  = "BADGECLOCK_TZ"
	EnvLogLevel  = "BADGECLOCK_LOG_LEVEL"
	EnvLogFile   = "BADGECLOCK_LOG_FILE"
	EnvI2CBus    = "BADGECLOCK_I2C_BUS"
)

// Panels the hardware backend can commit frames to.
const (
	PanelTerminal = "terminal"
	PanelSSD1306  = "ssd1306"
)

// ErrInvalid is returned when the assembled configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// Config holds the full application configuration, assembled from YAML + env.
type Config struct {
	Tick      time.Duration  `yaml:"tick" validate:"gt=0"`
	LongPress time.Duration  `yaml:"long_press" validate:"gtfield=Tick"`
	Timezone  string         `yaml:"timezone,omitempty" validate:"omitempty,timezone"`
	LogLevel  string         `yaml:"log_level" validate:"oneof=trace debug info warn error"`
	LogFile   string         `yaml:"log_file,omitempty"`
	Display   DisplayConfig  `yaml:"display"`
	Hardware  HardwareConfig `yaml:"hardware"`
}

// DisplayConfig controls how the frame is shown by the emulator and terminal.
type DisplayConfig struct {
	Scale int `yaml:"scale" validate:"min=1,max=16"`
}

// HardwareConfig describes how the badge is wired. Empty pin names and
// zero addresses mark parts that are not fitted.
type HardwareConfig struct {
	Panel        string `yaml:"panel" validate:"oneof=terminal ssd1306"`
	I2CBus       string `yaml:"i2c_bus"`
	LightAddr    uint16 `yaml:"light_addr" validate:"lte=127"`
	BatteryAddr  uint16 `yaml:"battery_addr" validate:"lte=127"`
	ChargeAddr   uint16 `yaml:"charge_addr" validate:"lte=127"`
	ButtonSelect string `yaml:"button_select"`
	ButtonUp     string `yaml:"button_up"`
	ButtonDown   string `yaml:"button_down"`
	BacklightPin string `yaml:"backlight_pin"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Tick:      200 * time.Millisecond,
		LongPress: time.Second,
		LogLevel:  "info",
		Display:   DisplayConfig{Scale: 4},
		Hardware: HardwareConfig{
			Panel:        PanelTerminal,
			LightAddr:    0x23,
			BatteryAddr:  0x40,
			ChargeAddr:   0x41,
			ButtonSelect: "GPIO5",
			ButtonUp:     "GPIO6",
			ButtonDown:   "GPIO13",
			BacklightPin: "GPIO18",
		},
	}
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "badgeclock")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Load reads the default config file from the OS filesystem.
func Load() (*Config, error) {
	return LoadFrom(afero.NewOsFs(), DefaultConfigPath())
}

// LoadFrom assembles configuration from defaults, the YAML file at path and
// environment variables, in increasing precedence. A missing file is not an
// error.
func LoadFrom(fs afero.Fs, path string) (*Config, error) {
	cfg := Default()

	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	durations := []struct {
		env string
		dst *time.Duration
	}{
		{EnvTick, &cfg.Tick},
		{EnvLongPress, &cfg.LongPress},
	}
	for _, d := range durations {
		v := os.Getenv(d.env)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.env, err)
		}
		*d.dst = parsed
	}

	if v := os.Getenv(EnvTimezone); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv(EnvI2CBus); v != "" {
		cfg.Hardware.I2CBus = v
	}
	return nil
}

// Validate checks the configuration for values the clock cannot run with.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, formatValidationError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func formatValidationError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Namespace())
	switch fe.Tag() {
	case "gtfield":
		return fmt.Sprintf("%s must be longer than %s", field, strings.ToLower(fe.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "timezone":
		return fmt.Sprintf("%s: unknown time zone %q", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param())
	}
}

// Location returns the configured time zone, or the local zone when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone: %w", err)
	}
	return loc, nil
}

// WriteConfigFile writes cfg to path, creating the directory if needed.
func WriteConfigFile(fs afero.Fs, path string, cfg *Config) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return afero.WriteFile(fs, path, data, 0o644)
}
