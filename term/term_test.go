package term

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/sprout"
	"github.com/phanxgames/sprout/script"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newGarden() *sprout.Garden {
	return sprout.NewGarden(sprout.Config{Rand: sprout.NewRand(11), Logger: quietLogger()})
}

func cell(screen tcell.Screen, x, y int) (rune, tcell.Color, tcell.Color) {
	r, _, style, _ := screen.GetContent(x, y)
	fg, bg, _ := style.Decompose()
	return r, fg, bg
}

type fakeSound struct{ pours, chimes int }

func (f *fakeSound) Pour()  { f.pours++ }
func (f *fakeSound) Chime() { f.chimes++ }

func TestSurfaceSize(t *testing.T) {
	s := NewSurface(newScreen(t))
	w, h := s.Size()
	if w != 640 || h != 384 {
		t.Errorf("Size() = (%v, %v), want (640, 384)", w, h)
	}
}

func TestFillRectPaintsBackground(t *testing.T) {
	screen := newScreen(t)
	s := NewSurface(screen)
	s.FillRect(0, 0, 640, 384, sprout.ColorBackground)

	want := termColor(sprout.ColorBackground)
	for _, p := range [][2]int{{0, 0}, {79, 23}, {40, 12}} {
		if _, _, bg := cell(screen, p[0], p[1]); bg != want {
			t.Errorf("cell %v background = %v, want %v", p, bg, want)
		}
	}
}

func TestStrokeLineThick(t *testing.T) {
	screen := newScreen(t)
	s := NewSurface(screen)
	s.FillRect(0, 0, 640, 384, sprout.ColorBackground)
	s.StrokeLine(100, 300, 100, 200, 10, sprout.ColorFoliage)

	want := termColor(sprout.ColorFoliage)
	// x=100 is column 12; y 200..300 spans rows 12..18.
	for row := 12; row <= 18; row++ {
		if _, _, bg := cell(screen, 12, row); bg != want {
			t.Errorf("row %d background = %v, want foliage", row, bg)
		}
	}
	if _, _, bg := cell(screen, 12, 20); bg == want {
		t.Error("row 20 painted past the line end")
	}
}

func TestStrokeLineThinUsesGlyph(t *testing.T) {
	screen := newScreen(t)
	s := NewSurface(screen)
	s.FillRect(0, 0, 640, 384, sprout.ColorBackground)
	s.StrokeLine(100, 300, 100, 200, 2, sprout.ColorFoliage)

	r, fg, bg := cell(screen, 12, 15)
	if r != '│' {
		t.Errorf("glyph = %q, want │", r)
	}
	if fg != termColor(sprout.ColorFoliage) || bg != termColor(sprout.ColorBackground) {
		t.Errorf("fg/bg = %v/%v, want foliage over background", fg, bg)
	}
}

func TestSlopeGlyph(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   rune
	}{
		{0, -10, '│'},
		{0, 10, '│'},
		{10, 0, '─'},
		{-10, 0, '─'},
		{10, -10, '╱'},
		{-10, 10, '╱'},
		{-10, -10, '╲'},
		{10, 10, '╲'},
		{0, 0, '•'},
	}
	for _, tt := range tests {
		if got := slopeGlyph(tt.dx, tt.dy); got != tt.want {
			t.Errorf("slopeGlyph(%v, %v) = %q, want %q", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestFillCircle(t *testing.T) {
	screen := newScreen(t)
	s := NewSurface(screen)
	s.FillRect(0, 0, 640, 384, sprout.ColorBackground)

	s.FillCircle(20, 20, 1.5, sprout.ColorSeed)
	if r, fg, _ := cell(screen, 2, 1); r != '•' || fg != termColor(sprout.ColorSeed) {
		t.Errorf("small circle cell = %q/%v, want seed dot", r, fg)
	}

	s.FillCircle(324, 200, 20, sprout.ColorSeed)
	if _, _, bg := cell(screen, 40, 12); bg != termColor(sprout.ColorSeed) {
		t.Errorf("large circle centre background = %v, want seed", bg)
	}
	if _, _, bg := cell(screen, 45, 12); bg == termColor(sprout.ColorSeed) {
		t.Error("large circle painted outside its radius")
	}
}

func TestOutOfBoundsDrawing(t *testing.T) {
	s := NewSurface(newScreen(t))
	s.StrokeLine(-100, -100, 10000, 10000, 1, sprout.ColorFoliage)
	s.FillCircle(-50, -50, 2, sprout.ColorSeed)
	s.FillCircle(5000, 5000, 40, sprout.ColorSeed)
	s.FillRect(600, 370, 100, 100, sprout.ColorSeed)
	s.Text(78, 0, "overflow", sprout.ColorSeed)
}

func TestHandleEventKeys(t *testing.T) {
	tests := []struct {
		name    string
		ev      tcell.Event
		wantRun bool
		started bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false, false},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), false, false},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false, false},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), true, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), true, true},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGarden()
			h := newHost(newScreen(t), g, Options{Logger: quietLogger()})
			if got := h.handleEvent(tt.ev); got != tt.wantRun {
				t.Errorf("handleEvent = %v, want %v", got, tt.wantRun)
			}
			if g.Started() != tt.started {
				t.Errorf("Started() = %v, want %v", g.Started(), tt.started)
			}
		})
	}
}

func TestEnterWatersAtBud(t *testing.T) {
	g := newGarden()
	snd := &fakeSound{}
	h := newHost(newScreen(t), g, Options{Sound: snd, Logger: quietLogger()})
	h.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	trunk := g.Branches()[0]
	if o := trunk.Origin(); o.X != 320 || o.Y != 256+5 {
		t.Errorf("trunk origin = %v, want (320, 261)", o)
	}
	if snd.pours != 1 || snd.chimes != 1 {
		t.Errorf("sounds = %+v, want one pour and one chime", snd)
	}

	h.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if len(g.Branches()) != 2 || snd.pours != 1 {
		t.Error("second watering had an effect")
	}
}

func TestMouseClickWatersAtCell(t *testing.T) {
	g := newGarden()
	h := newHost(newScreen(t), g, Options{Logger: quietLogger()})

	h.handleEvent(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	if g.Started() {
		t.Fatal("mouse motion started growth")
	}
	h.handleEvent(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	if !g.Started() {
		t.Fatal("click did not start growth")
	}
	if o := g.Branches()[0].Origin(); o.X != 84 || o.Y != 93 {
		t.Errorf("trunk origin = %v, want (84, 93)", o)
	}
}

func TestResizeFollowsScreen(t *testing.T) {
	screen := newScreen(t)
	g := newGarden()
	h := newHost(screen, g, Options{Logger: quietLogger()})
	screen.SetSize(40, 10)
	h.handleEvent(tcell.NewEventResize(40, 10))
	if w, ht := g.Size(); w != 320 || ht != 160 {
		t.Errorf("garden size = (%v, %v), want (320, 160)", w, ht)
	}
}

func TestScriptedFrames(t *testing.T) {
	dir := t.TempDir()
	runner, err := script.Load([]byte(`{"steps": [
		{"action": "water"},
		{"action": "wait", "frames": 5},
		{"action": "screenshot", "label": "grown"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	g := newGarden()
	h := newHost(newScreen(t), g, Options{Script: runner, ScreenshotDir: dir, ShowStats: true, Logger: quietLogger()})

	done := false
	for i := 0; i < 20 && !done; i++ {
		done = h.frame(time.Second / 60)
	}
	if !done {
		t.Fatal("script never finished")
	}
	if !g.Started() {
		t.Error("water step did not start growth")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("screenshots = %d, want 1", len(entries))
	}
}

func TestRunQuitsOnEscape(t *testing.T) {
	screen := newScreen(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	if err := Run(ctx, screen, newGarden(), Options{Logger: quietLogger()}); err != nil {
		t.Errorf("Run = %v, want nil after escape", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, newScreen(t), newGarden(), Options{Logger: quietLogger()}); err != context.Canceled {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}
