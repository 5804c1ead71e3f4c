package display

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pollInput turns mouse, touch and keyboard input into watering. Real input
// is skipped while injected clicks are queued.
func (g *Game) pollInput() {
	if len(g.clicks) > 0 {
		return
	}
	k := g.surface.scale

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.handleClick(float64(x)/k, float64(y)/k)
	}

	g.touchIDs = inpututil.AppendJustReleasedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		g.handleClick(float64(x)/k, float64(y)/k)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.Water()
	}
}
