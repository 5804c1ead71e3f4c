package display

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/sprout"
)

// Surface draws onto an ebiten.Image in logical pixels. Every coordinate and
// width is multiplied by the device scale, so strokes stay crisp on high-DPI
// screens.
type Surface struct {
	dst   *ebiten.Image
	scale float64
	w, h  float64
}

// Size returns the logical size set by the last layout.
func (s *Surface) Size() (float64, float64) { return s.w, s.h }

func (s *Surface) FillRect(x, y, w, h float64, c sprout.Color) {
	if s.dst == nil || w <= 0 || h <= 0 {
		return
	}
	if x <= 0 && y <= 0 && x+w >= s.w && y+h >= s.h {
		s.dst.Fill(c.RGBA())
		return
	}
	k := s.scale
	vector.DrawFilledRect(s.dst, float32(x*k), float32(y*k), float32(w*k), float32(h*k), c.RGBA(), true)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c sprout.Color) {
	if s.dst == nil || width <= 0 {
		return
	}
	k := s.scale
	vector.StrokeLine(s.dst, float32(x0*k), float32(y0*k), float32(x1*k), float32(y1*k), float32(width*k), c.RGBA(), true)
}

func (s *Surface) FillCircle(cx, cy, r float64, c sprout.Color) {
	if s.dst == nil || r <= 0 {
		return
	}
	k := s.scale
	vector.DrawFilledCircle(s.dst, float32(cx*k), float32(cy*k), float32(r*k), c.RGBA(), true)
}

var _ sprout.Surface = (*Surface)(nil)
