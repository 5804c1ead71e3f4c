package display

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// Run opens a resizable window and blocks until it closes or the game ends.
func Run(game *Game, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("window size %dx%d: must be positive", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Size the garden before the first layout so the intro starts in place.
	game.layout(cfg.Width, cfg.Height, game.surface.scale)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
