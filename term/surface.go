package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/sprout"
)

// Each terminal cell stands for a block of logical pixels. Cells are roughly
// twice as tall as wide, so the block is too.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Surface draws garden frames onto a tcell screen. Fills and thick strokes
// paint cell backgrounds; strokes thinner than half a cell are drawn with
// slope glyphs in the stroke color over whatever background is there.
type Surface struct {
	screen tcell.Screen
}

// NewSurface wraps screen.
func NewSurface(screen tcell.Screen) *Surface {
	return &Surface{screen: screen}
}

// Size returns the screen size in logical pixels.
func (s *Surface) Size() (float64, float64) {
	w, h := s.screen.Size()
	return float64(w) * CellWidth, float64(h) * CellHeight
}

// CellCenter returns the logical position of the centre of cell (cx, cy).
func CellCenter(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * CellWidth, (float64(cy) + 0.5) * CellHeight
}

// cellAt returns the cell containing logical point (x, y).
func cellAt(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

func (s *Surface) inBounds(cx, cy int) bool {
	w, h := s.screen.Size()
	return cx >= 0 && cy >= 0 && cx < w && cy < h
}

// FillRect paints the background of every cell whose centre lies in the
// rectangle.
func (s *Surface) FillRect(x, y, w, h float64, c sprout.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	style := tcell.StyleDefault.Background(termColor(c))
	sw, sh := s.screen.Size()
	x0 := max(int(math.Ceil(x/CellWidth-0.5)), 0)
	y0 := max(int(math.Ceil(y/CellHeight-0.5)), 0)
	x1 := min(int(math.Ceil((x+w)/CellWidth-0.5)), sw)
	y1 := min(int(math.Ceil((y+h)/CellHeight-0.5)), sh)
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			s.screen.SetContent(cx, cy, ' ', nil, style)
		}
	}
}

// StrokeLine walks the line in half-cell steps and marks every cell it
// passes through.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c sprout.Color) {
	if width <= 0 {
		return
	}
	dx, dy := x1-x0, y1-y0
	steps := int(math.Ceil(max(math.Abs(dx)/(CellWidth/2), math.Abs(dy)/(CellHeight/2))))
	thick := width >= CellWidth/2
	glyph := slopeGlyph(dx, dy)
	col := termColor(c)

	lastX, lastY := math.MinInt, math.MinInt
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		cx, cy := cellAt(x0+dx*t, y0+dy*t)
		if (cx == lastX && cy == lastY) || !s.inBounds(cx, cy) {
			continue
		}
		lastX, lastY = cx, cy
		if thick {
			s.screen.SetContent(cx, cy, ' ', nil, tcell.StyleDefault.Background(col))
		} else {
			s.glyph(cx, cy, glyph, col)
		}
	}
}

// FillCircle paints cells whose centres lie within r of (cx, cy). Circles too
// small to cover a cell centre are drawn as a dot.
func (s *Surface) FillCircle(cx, cy, r float64, c sprout.Color) {
	if r <= 0 {
		return
	}
	col := termColor(c)
	painted := false
	x0, y0 := cellAt(cx-r, cy-r)
	x1, y1 := cellAt(cx+r, cy+r)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px, py := CellCenter(x, y)
			if math.Hypot(px-cx, py-cy) > r || !s.inBounds(x, y) {
				continue
			}
			s.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(col))
			painted = true
		}
	}
	if painted {
		return
	}
	if x, y := cellAt(cx, cy); s.inBounds(x, y) {
		s.glyph(x, y, '•', col)
	}
}

// glyph draws r in fg, keeping the cell's current background.
func (s *Surface) glyph(cx, cy int, r rune, fg tcell.Color) {
	_, _, style, _ := s.screen.GetContent(cx, cy)
	_, bg, _ := style.Decompose()
	s.screen.SetContent(cx, cy, r, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
}

// Text writes str from cell (cx, cy) in fg over the current background.
func (s *Surface) Text(cx, cy int, str string, fg sprout.Color) {
	col := termColor(fg)
	for _, r := range str {
		if s.inBounds(cx, cy) {
			s.glyph(cx, cy, r, col)
		}
		cx++
	}
}

// slopeGlyph picks the box-drawing character closest to the direction of
// (dx, dy) in logical pixels, y growing downward.
func slopeGlyph(dx, dy float64) rune {
	if dx == 0 && dy == 0 {
		return '•'
	}
	a := math.Atan2(-dy, dx) * 180 / math.Pi
	if a < 0 {
		a += 180
	}
	switch {
	case a < 22.5 || a >= 157.5:
		return '─'
	case a < 67.5:
		return '╱'
	case a < 112.5:
		return '│'
	default:
		return '╲'
	}
}

func termColor(c sprout.Color) tcell.Color {
	r, g, b := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

var _ sprout.Surface = (*Surface)(nil)
