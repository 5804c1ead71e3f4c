package sprout

import "time"

// Surface is a 2D drawing target addressed in logical (layout) pixels. Any
// scaling to a backing resolution happens inside the implementation, once,
// never per shape.
type Surface interface {
	// Size returns the logical width and height.
	Size() (width, height float64)
	FillRect(x, y, width, height float64, c Color)
	// StrokeLine draws a butt-capped line of the given logical width.
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
	FillCircle(cx, cy, radius float64, c Color)
}

// Draw renders the garden: the background, every branch up to its grown
// length, open flowers, and every seed whether or not it has landed.
func (g *Garden) Draw(s Surface) {
	var t0 time.Time
	if g.debug != nil {
		t0 = time.Now()
	}

	w, h := s.Size()
	s.FillRect(0, 0, w, h, ColorBackground)

	for i := range g.branches {
		drawBranch(s, &g.branches[i])
	}
	for i := range g.seeds {
		sd := &g.seeds[i]
		s.FillCircle(sd.X, sd.Y, seedRadius, ColorSeed)
	}

	if g.debug != nil {
		g.debug.drawTime = time.Since(t0)
		g.debugLog()
	}
}

func drawBranch(s Surface, b *Branch) {
	tip := b.Tip()
	s.StrokeLine(b.X, b.Y, tip.X, tip.Y, b.Width, ColorFoliage)

	if b.FloweringProgress > 0 {
		p := b.FlowerPoint()
		s.FillCircle(p.X, p.Y, b.FlowerRadius(), b.FlowerColor)
	}
}
