package display

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sprout/raster"
)

// flushScreenshots captures the rendered frame for every queued label and
// writes each as a PNG file. Failures are logged; the run continues.
func (g *Game) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshot) == 0 {
		return
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	img := raster.FromPremultiplied(pixels, w, h)

	now := time.Now()
	for _, label := range g.screenshot {
		path := raster.ScreenshotPath(g.opts.ScreenshotDir, label, now)
		if err := raster.WritePNG(path, img); err != nil {
			g.logger.Warn("screenshot failed", "label", label, "error", err)
			continue
		}
		g.logger.Info("screenshot saved", "path", path)
	}
	g.screenshot = g.screenshot[:0]
}
