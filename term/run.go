// Package term runs a garden inside a terminal with tcell.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/sprout"
	"github.com/phanxgames/sprout/raster"
	"github.com/phanxgames/sprout/script"
)

// FrameInterval is the tick period, about 60 Hz.
const FrameInterval = 16 * time.Millisecond

// SoundPlayer plays the garden's effects. *audio.Player satisfies it.
type SoundPlayer interface {
	Pour()
	Chime()
}

// Options configures Run.
type Options struct {
	// ShowStats draws a population line on the bottom row.
	ShowStats bool
	// Sound is optional.
	Sound SoundPlayer
	// Script, when set, drives the garden one step per frame and ends the
	// run once finished.
	Script *script.Runner
	// ScreenshotDir receives PNG renders for script screenshot steps.
	ScreenshotDir string
	Logger        *slog.Logger
}

// host is the script target and event handler for one run.
type host struct {
	screen  tcell.Screen
	garden  *sprout.Garden
	surface *Surface
	opts    Options
	logger  *slog.Logger

	buttons tcell.ButtonMask
	shots   []string
}

func newHost(screen tcell.Screen, garden *sprout.Garden, opts Options) *host {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}
	h := &host{
		screen:  screen,
		garden:  garden,
		surface: NewSurface(screen),
		opts:    opts,
		logger:  opts.Logger.With("component", "term"),
	}
	h.resize()
	return h
}

// Run ticks the garden until ctx is cancelled, the user quits, or the script
// finishes. The caller owns screen: it must be initialized, and Run leaves
// it open.
func Run(ctx context.Context, screen tcell.Screen, garden *sprout.Garden, opts Options) error {
	h := newHost(screen, garden, opts)
	screen.EnableMouse()
	screen.HideCursor()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if ev == nil {
				return nil
			}
			if !h.handleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if h.frame(dt) {
				return nil
			}
		}
	}
}

// frame advances one tick and reports whether a finished script ended the run.
func (h *host) frame(dt time.Duration) bool {
	if h.opts.Script != nil {
		h.opts.Script.Step(h)
	}
	h.garden.Tick(dt, h.surface)
	h.overlay()
	h.screen.Show()
	h.flushScreenshots()
	return h.opts.Script != nil && h.opts.Script.Done()
}

// handleEvent reports false when the run should end.
func (h *host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyEnter, ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			h.Water()
		}

	case *tcell.EventMouse:
		b := ev.Buttons()
		if b&tcell.Button1 != 0 && h.buttons&tcell.Button1 == 0 {
			cx, cy := ev.Position()
			h.Click(CellCenter(cx, cy))
		}
		h.buttons = b

	case *tcell.EventResize:
		h.screen.Sync()
		h.resize()
	}
	return true
}

func (h *host) resize() {
	h.garden.Resize(h.surface.Size())
}

// Water starts growth at the bud.
func (h *host) Water() {
	h.Click(sprout.BudPosition(h.surface.Size()))
}

// Click starts growth at (x, y). Later clicks do nothing.
func (h *host) Click(x, y float64) {
	if !h.garden.StartGrowth(x, y) {
		return
	}
	if h.opts.Sound != nil {
		h.opts.Sound.Pour()
		h.opts.Sound.Chime()
	}
}

// Screenshot queues a render of the next frame.
func (h *host) Screenshot(label string) {
	h.shots = append(h.shots, label)
}

// flushScreenshots renders the garden into an image at the terminal's
// logical size, one PNG per queued label.
func (h *host) flushScreenshots() {
	if len(h.shots) == 0 {
		return
	}
	w, ht := h.surface.Size()
	img := raster.New(int(w), int(ht), 1)
	h.garden.Draw(img)
	now := time.Now()
	for _, label := range h.shots {
		path := raster.ScreenshotPath(h.opts.ScreenshotDir, label, now)
		if err := raster.WritePNG(path, img.Image()); err != nil {
			h.logger.Warn("screenshot failed", "label", label, "error", err)
			continue
		}
		h.logger.Info("screenshot saved", "path", path)
	}
	h.shots = h.shots[:0]
}

var hintColor = sprout.Color{R: 0.45, G: 0.5, B: 0.45, A: 1}

func (h *host) overlay() {
	_, rows := h.screen.Size()
	if !h.garden.Started() {
		cols, _ := h.screen.Size()
		msg := "click or press enter to water"
		h.surface.Text(max((cols-len(msg))/2, 0), 1, msg, hintColor)
		bx, by := cellAt(sprout.BudPosition(h.surface.Size()))
		h.surface.glyph(bx, by, '❀', termColor(sprout.ColorFoliage))
	}
	if h.opts.ShowStats {
		st := h.garden.Stats()
		line := fmt.Sprintf("branches %d  seeds %d  blooming %d  trees %d/%d", st.Branches, st.Seeds, st.Blooming, st.Trees, st.MaxTrees)
		h.surface.Text(0, rows-1, line, hintColor)
	}
}
