package display

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/sprout"
)

// statsWidget shows FPS, TPS and garden population in the top-left corner.
// Its text is refreshed about every half second.
type statsWidget struct {
	img        *ebiten.Image
	lastUpdate float64
	text       string
	dirty      bool
}

func (w *statsWidget) update(dt float64, stats sprout.Stats) {
	w.lastUpdate += dt
	if w.text != "" && w.lastUpdate < 0.5 {
		return
	}
	w.lastUpdate = 0
	w.text = statsText(ebiten.ActualFPS(), ebiten.ActualTPS(), stats)
	w.dirty = true
}

func (w *statsWidget) draw(screen *ebiten.Image, scale float64) {
	if w.text == "" {
		return
	}
	if w.img == nil {
		// Enough for five lines of debug font.
		w.img = ebiten.NewImage(160, 84)
	}
	if w.dirty {
		w.img.Clear()
		// Semi-transparent background for readability
		w.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(w.img, w.text)
		w.dirty = false
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(4*scale, 4*scale)
	screen.DrawImage(w.img, op)
}

func statsText(fps, tps float64, st sprout.Stats) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nBranches: %d\nSeeds: %d (%d falling)\nTrees: %d/%d",
		fps, tps, st.Branches, st.Seeds, st.Falling, st.Trees, st.MaxTrees)
}
