package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phinze/badgeclock/internal/app"
	"github.com/phinze/badgeclock/internal/config"
	"github.com/phinze/badgeclock/internal/device"
	"github.com/phinze/badgeclock/internal/device/hardware"
	"github.com/phinze/badgeclock/internal/device/terminal"
	"github.com/phinze/badgeclock/internal/logging"
	"github.com/phinze/badgeclock/internal/wallclock"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	termStep   int
)

var rootCmd = &cobra.Command{
	Use:           "badgeclock",
	Short:         "Seven-segment clock for a 160x80 badge",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runClock,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
	rootCmd.PersistentFlags().IntVar(&termStep, "step", 2, "print every n-th pixel on the terminal panel")

	rootCmd.AddCommand(statusCmd, setupCmd, previewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

// loadConfig reads the config and sets up logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(afero.NewOsFs(), resolveConfigPath())
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFile, os.Stderr); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newTerminal() *terminal.Dev {
	return terminal.New(&terminal.Opts{W: device.Width, H: device.Height, Step: termStep})
}

func runClock(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	badge, err := hardware.Open(cfg.Hardware, newTerminal())
	if err != nil {
		return fmt.Errorf("opening badge: %w", err)
	}
	defer func() {
		if err := badge.Close(); err != nil {
			log.Warn().Err(err).Msg("closing badge")
		}
	}()

	clock := app.New(badge, wallclock.New(nil, loc), nil, app.Options{
		Tick:      cfg.Tick,
		LongPress: cfg.LongPress,
	})
	if err := clock.Run(ctx); err != nil {
		return err
	}
	log.Info().Msg("shutting down")
	return nil
}
