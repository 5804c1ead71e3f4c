// Command sprout opens a window with a watering can and a bud. Click the can
// to water the bud and watch the garden grow.
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/sprout"
	"github.com/phanxgames/sprout/audio"
	"github.com/phanxgames/sprout/display"
	"github.com/phanxgames/sprout/internal/config"
	"github.com/phanxgames/sprout/internal/logger"
	"github.com/phanxgames/sprout/script"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sprout: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.Init(cfg.Logging)
	if !cfg.EnvFile {
		log.Debug("No .env file found, using system environment variables")
	}

	opts := display.Options{
		ShowFPS:       cfg.Window.ShowFPS,
		ScreenshotDir: cfg.Script.ScreenshotDir,
		Logger:        log,
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

	if cfg.Script.Path != "" {
		runner, err := script.LoadFile(cfg.Script.Path)
		if err != nil {
			return err
		}
		opts.Script = runner
		opts.ExitOnScriptDone = true
		log.Info("running script", "path", cfg.Script.Path, "steps", len(runner.Steps()))
	}

	garden := sprout.NewGarden(sprout.Config{
		MaxTrees: cfg.Garden.MaxTrees,
		Rand:     sprout.NewRand(cfg.Garden.Seed),
		Logger:   log,
		Debug:    cfg.Garden.Debug,
	})
	game := display.NewGame(garden, opts)

	err = display.Run(game, display.RunConfig{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	})
	log.Info("exiting", "trees", garden.Trees(), "branches", len(garden.Branches()))
	return err
}
