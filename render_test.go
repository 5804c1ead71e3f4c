package sprout

import (
	"bytes"
	"image/color"
	"log/slog"
	"strings"
	"testing"
)

type drawOp struct {
	kind           string
	x0, y0, x1, y1 float64
	size           float64
	c              Color
}

// recordSurface records every primitive it is asked to draw.
type recordSurface struct {
	w, h float64
	ops  []drawOp
}

func (s *recordSurface) Size() (float64, float64) { return s.w, s.h }

func (s *recordSurface) FillRect(x, y, w, h float64, c Color) {
	s.ops = append(s.ops, drawOp{kind: "rect", x0: x, y0: y, x1: x + w, y1: y + h, c: c})
}

func (s *recordSurface) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	s.ops = append(s.ops, drawOp{kind: "line", x0: x0, y0: y0, x1: x1, y1: y1, size: width, c: c})
}

func (s *recordSurface) FillCircle(cx, cy, r float64, c Color) {
	s.ops = append(s.ops, drawOp{kind: "circle", x0: cx, y0: cy, size: r, c: c})
}

func (s *recordSurface) count(kind string) int {
	n := 0
	for _, op := range s.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

func TestDrawClearsFirst(t *testing.T) {
	g := NewGarden(Config{Rand: &fixedRand{v: 0.5}, Logger: quietLogger()})
	s := &recordSurface{w: 320, h: 200}
	g.Draw(s)
	if len(s.ops) != 1 {
		t.Fatalf("ops before growth = %d, want 1", len(s.ops))
	}
	op := s.ops[0]
	if op.kind != "rect" || op.x0 != 0 || op.y0 != 0 || op.x1 != 320 || op.y1 != 200 {
		t.Errorf("clear op = %+v, want full-surface rect", op)
	}
	if op.c != ColorBackground {
		t.Errorf("clear color = %v, want background", op.c)
	}
}

func TestDrawBranchesToGrownTip(t *testing.T) {
	g := NewGarden(Config{Rand: &fixedRand{v: 0.5}, Logger: quietLogger()})
	g.Resize(800, 450)
	g.StartGrowth(100, 300)
	for range 75 {
		g.Update(frame60)
	}

	s := &recordSurface{w: 800, h: 450}
	g.Draw(s)
	if s.count("line") != 2 {
		t.Fatalf("lines = %d, want 2", s.count("line"))
	}
	trunk := s.ops[1]
	if trunk.x0 != 100 || trunk.y0 != 305 {
		t.Errorf("trunk drawn from (%v, %v), want (100, 305)", trunk.x0, trunk.y0)
	}
	// Halfway: 30 of 60 pixels, straight up.
	if !approx(trunk.x1, 100) || !approx(trunk.y1, 275) {
		t.Errorf("trunk tip = (%v, %v), want (100, 275)", trunk.x1, trunk.y1)
	}
	if trunk.size != 10 || trunk.c != ColorFoliage {
		t.Errorf("trunk width/color = %v/%v", trunk.size, trunk.c)
	}
	root := s.ops[2]
	if !approx(root.x1, 100) || !approx(root.y1, 305+75) {
		t.Errorf("root tip = (%v, %v), want (100, 380)", root.x1, root.y1)
	}
}

func TestDrawFlowersAndSeeds(t *testing.T) {
	g := newTestGarden(&fixedRand{v: 0.5}, 450)
	b := newBranch(g.rng, 50, 400, 40, 0, 4, 0)
	b.frames, b.Grown = growthFrames, 40
	b.FloweringProgress = 0.5
	g.branches = append(g.branches, b, newBranch(g.rng, 60, 400, 40, 0, 4, 0))
	g.seeds = append(g.seeds, Seed{X: 10, Y: 20}, Seed{X: 30, Y: 450, Checked: true, Planted: true})

	s := &recordSurface{w: 800, h: 450}
	g.Draw(s)

	if got := s.count("circle"); got != 3 {
		t.Fatalf("circles = %d, want 1 flower + 2 seeds", got)
	}
	flower := s.ops[2]
	want := b.FlowerPoint()
	if flower.kind != "circle" || flower.x0 != want.X || flower.y0 != want.Y {
		t.Errorf("flower op = %+v, want circle at %v", flower, want)
	}
	if !approx(flower.size, flowerRadius(0.5)) || flower.c != b.FlowerColor {
		t.Errorf("flower radius/color = %v/%v", flower.size, flower.c)
	}
	for _, op := range s.ops[len(s.ops)-2:] {
		if op.kind != "circle" || op.size != seedRadius || op.c != ColorSeed {
			t.Errorf("seed op = %+v", op)
		}
	}
}

func TestFlowerRadiusStages(t *testing.T) {
	tests := []struct {
		p, want float64
	}{
		{0, 0},
		{noFlower, 0},
		{0.01, 1.5 + 1.5*(0.01/0.33)},
		{0.33, 3},
		{0.495, 3.75},
		{0.66, 4.5},
		{0.83, 5.25},
		{1, 6},
	}
	for _, tt := range tests {
		if got := flowerRadius(tt.p); !approx(got, tt.want) {
			t.Errorf("flowerRadius(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestFlowerColorIsPastel(t *testing.T) {
	for _, hue := range []float64{0, 90, 180, 270, 359.9} {
		c := flowerColor(hue)
		lo := min(c.R, c.G, c.B)
		if lo < 0.7 {
			t.Errorf("flowerColor(%v) = %+v, darkest channel %v below pastel range", hue, c, lo)
		}
		if c.A != 1 {
			t.Errorf("flowerColor(%v) alpha = %v, want 1", hue, c.A)
		}
	}
}

func TestColorRGBA(t *testing.T) {
	got := ColorBackground.RGBA()
	if got.R != 0xfb || got.G != 0xf8 || got.B != 0xef || got.A != 0xff {
		t.Errorf("background RGBA = %#v, want fbf8ef", got)
	}
	half := Color{R: 1, G: 0, B: 0, A: 0.5}.RGBA()
	if half.R != 128 || half.A != 128 {
		t.Errorf("half red premultiplied = %#v, want R=128 A=128", half)
	}
}

func TestProjectAngles(t *testing.T) {
	tests := []struct {
		angle float64
		want  Vec2
	}{
		{0, Vec2{0, -10}},
		{90, Vec2{-10, 0}},
		{180, Vec2{0, 10}},
		{-90, Vec2{10, 0}},
	}
	for _, tt := range tests {
		got := project(0, 0, tt.angle, 10)
		if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
			t.Errorf("project(angle %v) = %v, want %v", tt.angle, got, tt.want)
		}
	}
}

// --- Debug stats ---

func TestStatsCounts(t *testing.T) {
	g := newTestGarden(&fixedRand{v: 0.5}, 450)
	g.branches = append(g.branches, Branch{bloom: bloomOpening}, Branch{bloom: bloomDone}, Branch{})
	g.seeds = append(g.seeds, Seed{}, Seed{Checked: true})
	g.trees = 2

	st := g.Stats()
	want := Stats{Branches: 3, Seeds: 2, Falling: 1, Blooming: 1, Trees: 2, MaxTrees: DefaultMaxTrees}
	if st != want {
		t.Errorf("Stats() = %+v, want %+v", st, want)
	}
}

func TestDebugLogThrottled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := NewGarden(Config{Rand: &fixedRand{v: 0.5}, Logger: logger, Debug: true})
	g.Resize(400, 300)
	g.StartGrowth(200, 200)

	s := &recordSurface{w: 400, h: 300}
	for range 5 {
		g.Tick(frame60, s)
	}
	if n := strings.Count(buf.String(), "frame stats"); n != 1 {
		t.Errorf("frame stats lines = %d, want 1 within one second", n)
	}
	if !strings.Contains(buf.String(), "component=garden") {
		t.Errorf("log missing component attribute: %s", buf.String())
	}
}

func TestDebugOffLogsNoStats(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := NewGarden(Config{Rand: &fixedRand{v: 0.5}, Logger: logger})
	g.Resize(400, 300)
	g.StartGrowth(200, 200)
	g.Tick(frame60, &recordSurface{w: 400, h: 300})
	if strings.Contains(buf.String(), "frame stats") {
		t.Error("frame stats logged with debug disabled")
	}
}

func TestPaletteParsed(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want color.RGBA
	}{
		{"background", ColorBackground, color.RGBA{0xfb, 0xf8, 0xef, 0xff}},
		{"foliage", ColorFoliage, color.RGBA{0x8f, 0xb9, 0x96, 0xff}},
		{"seed", ColorSeed, color.RGBA{0xc9, 0xa0, 0x7a, 0xff}},
	}
	for _, tt := range tests {
		if got := tt.c.RGBA(); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestColorFromHexPanicsOnBadLiteral(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("colorFromHex(\"#zzzzzz\") did not panic")
		}
	}()
	colorFromHex("#zzzzzz")
}
