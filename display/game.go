// Package display runs a garden in an Ebitengine window: a watering can
// intro, click or touch to water, an optional stats overlay, and scripted
// runs with screenshots.
package display

import (
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sprout"
	"github.com/phanxgames/sprout/script"
)

// SoundPlayer plays the garden's effects. *audio.Player satisfies it.
type SoundPlayer interface {
	Pour()
	Chime()
}

// Options configures a Game. The zero value shows no overlay and plays no
// sound.
type Options struct {
	// ShowFPS draws the stats overlay.
	ShowFPS bool
	// Sound is optional.
	Sound SoundPlayer
	// Script drives the game one step per frame.
	Script *script.Runner
	// ExitOnScriptDone ends the run once Script finishes.
	ExitOnScriptDone bool
	// ScreenshotDir receives screenshot PNGs. Defaults to "screenshots".
	ScreenshotDir string
	Logger        *slog.Logger
}

// Game is an ebiten.Game hosting one garden.
type Game struct {
	garden  *sprout.Garden
	intro   *Intro
	surface *Surface
	opts    Options
	logger  *slog.Logger

	stats statsWidget

	clicks     []sprout.Vec2
	touchIDs   []ebiten.TouchID
	screenshot []string
}

// NewGame wraps garden. The intro's can starts growth when clicked.
func NewGame(garden *sprout.Garden, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}
	w, h := garden.Size()
	g := &Game{
		garden:  garden,
		intro:   NewIntro(w, h),
		surface: &Surface{scale: 1, w: w, h: h},
		opts:    opts,
		logger:  opts.Logger.With("component", "display"),
	}
	g.intro.OnPour = func() {
		g.logger.Debug("watering")
		if g.opts.Sound != nil {
			g.opts.Sound.Pour()
		}
	}
	g.intro.OnGrow = func(x, y float64) {
		if g.garden.StartGrowth(x, y) && g.opts.Sound != nil {
			g.opts.Sound.Chime()
		}
	}
	return g
}

// Intro returns the watering choreography.
func (g *Game) Intro() *Intro { return g.intro }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.pollInput()
	return g.step(frameDuration())
}

func frameDuration() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

// step advances everything but real input by dt.
func (g *Game) step(dt time.Duration) error {
	if g.opts.Script != nil {
		g.opts.Script.Step(g)
	}
	g.processInjected()

	g.intro.Update(dt.Seconds())
	g.garden.Update(dt)
	if g.opts.ShowFPS {
		g.stats.update(dt.Seconds(), g.garden.Stats())
	}

	if g.opts.ExitOnScriptDone && g.opts.Script != nil && g.opts.Script.Done() && len(g.screenshot) == 0 {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.dst = screen
	g.render(g.surface)
	if g.opts.ShowFPS {
		g.stats.draw(screen, g.surface.scale)
	}
	g.flushScreenshots(screen)
}

// render draws one frame onto s.
func (g *Game) render(s sprout.Surface) {
	g.garden.Draw(s)
	g.intro.Draw(s)
}

// Layout implements ebiten.Game. The screen is laid out in device pixels; the
// garden keeps working in logical ones.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.layout(outsideWidth, outsideHeight, ebiten.Monitor().DeviceScaleFactor())
}

func (g *Game) layout(outsideWidth, outsideHeight int, scale float64) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	w, h := float64(max(outsideWidth, 1)), float64(max(outsideHeight, 1))
	if w != g.surface.w || h != g.surface.h || scale != g.surface.scale {
		g.surface.w, g.surface.h, g.surface.scale = w, h, scale
		g.garden.Resize(w, h)
		g.intro.Resize(w, h)
	}
	return int(math.Ceil(w * scale)), int(math.Ceil(h * scale))
}

// handleClick waters when (x, y) hits the can.
func (g *Game) handleClick(x, y float64) {
	if g.intro.Contains(x, y) {
		g.intro.Start()
	}
}

// Water starts the intro as if the can had been clicked.
func (g *Game) Water() {
	g.intro.Start()
}

// Click queues a click at logical (x, y), consumed on the next frame.
func (g *Game) Click(x, y float64) {
	g.clicks = append(g.clicks, sprout.Vec2{X: x, Y: y})
}

// Pending reports whether queued clicks remain.
func (g *Game) Pending() bool {
	return len(g.clicks) > 0
}

// Screenshot captures the next drawn frame under label.
func (g *Game) Screenshot(label string) {
	g.screenshot = append(g.screenshot, label)
}

// processInjected consumes one queued click per frame.
func (g *Game) processInjected() {
	if len(g.clicks) == 0 {
		return
	}
	c := g.clicks[0]
	copy(g.clicks, g.clicks[1:])
	g.clicks = g.clicks[:len(g.clicks)-1]
	g.handleClick(c.X, c.Y)
}

var _ script.Target = (*Game)(nil)
