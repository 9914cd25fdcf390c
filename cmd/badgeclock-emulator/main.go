package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/phinze/badgeclock/internal/app"
	"github.com/phinze/badgeclock/internal/config"
	"github.com/phinze/badgeclock/internal/device/emulator"
	"github.com/phinze/badgeclock/internal/device/emulator/board"
	"github.com/phinze/badgeclock/internal/logging"
	"github.com/phinze/badgeclock/internal/wallclock"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath(), "config file")
	scale := flag.Int("scale", 0, "panel magnification (default from config)")
	flag.Parse()

	cfg, err := config.LoadFrom(afero.NewOsFs(), *configPath)
	if err != nil {
		_ = logging.Setup("", "", os.Stderr)
		log.Warn().Err(err).Msg("config load failed, using defaults")
		cfg = config.Default()
	} else if err := logging.Setup(cfg.LogLevel, cfg.LogFile, os.Stderr); err != nil {
		log.Fatal().Err(err).Msg("setting up logging")
	}
	if *scale > 0 {
		cfg.Display.Scale = *scale
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("loading time zone")
	}

	log.Info().Msg("=== Badge Clock Emulator ===")
	log.Info().Msg(board.Help)

	// Setup signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	emu := emulator.New(cfg.Display.Scale)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		clock := app.New(emu, wallclock.New(nil, loc), nil, app.Options{
			Tick:      cfg.Tick,
			LongPress: cfg.LongPress,
		})
		runCtx, cancel := context.WithCancel(gctx)
		defer cancel()
		go func() {
			select {
			case <-emu.Done():
				cancel()
			case <-runCtx.Done():
			}
		}()
		return clock.Run(runCtx)
	})
	g.Go(func() error {
		// Close the window on Ctrl+C.
		select {
		case <-gctx.Done():
			_ = emu.Close()
		case <-emu.Done():
		}
		return nil
	})

	// Run GUI on main thread (required for macOS)
	if err := emu.RunGUI(); err != nil {
		log.Error().Err(err).Msg("emulator GUI error")
	}
	stop()
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("clock stopped")
	}
}
