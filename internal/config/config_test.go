package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const path = "/home/badge/.config/badgeclock/config.yaml"

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(afero.NewMemMapFs(), path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte(`
tick: 100ms
long_press: 1500ms
timezone: Europe/Berlin
log_level: debug
display:
  scale: 2
hardware:
  panel: ssd1306
  i2c_bus: "1"
  light_addr: 0x5c
  button_up: GPIO26
`), 0o644))

	cfg, err := LoadFrom(fs, path)
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, cfg.Tick)
	assert.Equal(t, 1500*time.Millisecond, cfg.LongPress)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2, cfg.Display.Scale)
	assert.Equal(t, PanelSSD1306, cfg.Hardware.Panel)
	assert.Equal(t, "1", cfg.Hardware.I2CBus)
	assert.Equal(t, uint16(0x5c), cfg.Hardware.LightAddr)
	assert.Equal(t, "GPIO26", cfg.Hardware.ButtonUp)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, "GPIO5", cfg.Hardware.ButtonSelect)
	assert.Equal(t, uint16(0x40), cfg.Hardware.BatteryAddr)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestEnvOverridesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte("tick: 100ms\nlog_level: warn\n"), 0o644))

	t.Setenv(EnvTick, "250ms")
	t.Setenv(EnvLongPress, "2s")
	t.Setenv(EnvTimezone, "UTC")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvI2CBus, "/dev/i2c-3")
	t.Setenv(EnvLogFile, "/tmp/badgeclock.log")

	cfg, err := LoadFrom(fs, path)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Tick)
	assert.Equal(t, 2*time.Second, cfg.LongPress)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/dev/i2c-3", cfg.Hardware.I2CBus)
	assert.Equal(t, "/tmp/badgeclock.log", cfg.LogFile)
}

func TestEnvBadDuration(t *testing.T) {
	t.Setenv(EnvTick, "soon")

	_, err := LoadFrom(afero.NewMemMapFs(), path)
	assert.ErrorContains(t, err, EnvTick)
}

func TestParseError(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte("tick: [nope"), 0o644))

	_, err := LoadFrom(fs, path)
	assert.ErrorContains(t, err, "parsing")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero tick", func(c *Config) { c.Tick = 0 }, "config.tick"},
		{"long press shorter than tick", func(c *Config) { c.LongPress = 100 * time.Millisecond }, "longer than tick"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "loglevel"},
		{"bad zone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "unknown time zone"},
		{"bad panel", func(c *Config) { c.Hardware.Panel = "crt" }, "panel"},
		{"bad scale", func(c *Config) { c.Display.Scale = 0 }, "scale"},
		{"bad address", func(c *Config) { c.Hardware.LightAddr = 0x300 }, "lightaddr"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	require.NoError(t, Default().Validate())
}

func TestWriteConfigFileRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := Default()
	cfg.Timezone = "Asia/Tokyo"
	cfg.Hardware.ButtonDown = "GPIO19"

	require.NoError(t, WriteConfigFile(fs, path, cfg))

	got, err := LoadFrom(fs, path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/badgeclock.yaml")
	assert.Equal(t, "/etc/badgeclock.yaml", DefaultConfigPath())

	t.Setenv(EnvConfig, "")
	assert.Contains(t, DefaultConfigPath(), ".config/badgeclock/config.yaml")
}

func TestLocationDefaultsToLocal(t *testing.T) {
	t.Parallel()

	loc, err := Default().Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}
