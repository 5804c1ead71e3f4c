// Command sprout-term grows the garden in a terminal. Press Enter or click a
// cell to water; Esc or q quits.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/sprout"
	"github.com/phanxgames/sprout/audio"
	"github.com/phanxgames/sprout/internal/config"
	"github.com/phanxgames/sprout/internal/logger"
	"github.com/phanxgames/sprout/script"
	"github.com/phanxgames/sprout/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sprout-term: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// The screen owns stdout; logs go to stderr and are only readable when
	// redirected.
	log := logger.Init(cfg.Logging)

	opts := term.Options{
		ShowStats:     cfg.Window.ShowFPS,
		ScreenshotDir: cfg.Script.ScreenshotDir,
		Logger:        log,
	}
	if cfg.Script.Path != "" {
		runner, err := script.LoadFile(cfg.Script.Path)
		if err != nil {
			return err
		}
		opts.Script = runner
	}
	if cfg.Audio.Enabled {
		player := audio.NewPlayer(cfg.Audio.Volume, log)
		if err := player.Init(); err != nil {
			log.Warn("audio disabled", "error", err)
		} else {
			defer player.Close()
			opts.Sound = player
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	garden := sprout.NewGarden(sprout.Config{
		MaxTrees: cfg.Garden.MaxTrees,
		Rand:     sprout.NewRand(cfg.Garden.Seed),
		Logger:   log,
		Debug:    cfg.Garden.Debug,
	})

	err = term.Run(ctx, screen, garden, opts)
	if err == context.Canceled {
		return nil
	}
	return err
}
