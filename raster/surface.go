package raster

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/phanxgames/sprout"
)

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498

// Surface draws garden frames into an *image.RGBA. Coordinates are logical
// pixels; every coordinate and width is multiplied by the surface's scale
// before rasterizing, so a scale of 2 renders a crisp 2x image.
//
// Shapes are anti-aliased with golang.org/x/image/vector. Each shape is
// rasterized only within its own pixel bounds, which keeps a frame of many
// thin branches cheap.
type Surface struct {
	img   *image.RGBA
	scale float64
	z     *vector.Rasterizer
}

// New creates a surface of w×h logical pixels backed by an image of
// w·scale × h·scale pixels. A non-positive scale is treated as 1.
func New(w, h int, scale float64) *Surface {
	if scale <= 0 {
		scale = 1
	}
	bw := int(math.Ceil(float64(max(w, 0)) * scale))
	bh := int(math.Ceil(float64(max(h, 0)) * scale))
	return &Surface{
		img:   image.NewRGBA(image.Rect(0, 0, bw, bh)),
		scale: scale,
		z:     &vector.Rasterizer{},
	}
}

// Image returns the backing image. It is drawn into in place.
func (s *Surface) Image() *image.RGBA { return s.img }

// Scale returns the logical-to-backing pixel ratio.
func (s *Surface) Scale() float64 { return s.scale }

// Size returns the surface size in logical pixels.
func (s *Surface) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()) / s.scale, float64(b.Dy()) / s.scale
}

// FillRect fills an axis-aligned rectangle. A rectangle covering the whole
// surface replaces every pixel.
func (s *Surface) FillRect(x, y, w, h float64, c sprout.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	sx, sy := x*s.scale, y*s.scale
	sw, sh := w*s.scale, h*s.scale
	b := s.img.Bounds()
	if sx <= 0 && sy <= 0 && sx+sw >= float64(b.Dx()) && sy+sh >= float64(b.Dy()) {
		draw.Draw(s.img, b, image.NewUniform(c.RGBA()), image.Point{}, draw.Src)
		return
	}
	s.fill([]float64{sx, sy, sx + sw, sy, sx + sw, sy + sh, sx, sy + sh}, c)
}

// StrokeLine draws a butt-capped line of the given width.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c sprout.Color) {
	if width <= 0 {
		return
	}
	x0, y0 = x0*s.scale, y0*s.scale
	x1, y1 = x1*s.scale, y1*s.scale
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	// Normal scaled to half the stroke width.
	hw := width * s.scale / 2
	nx, ny := -dy/l*hw, dx/l*hw
	s.fill([]float64{
		x0 + nx, y0 + ny,
		x1 + nx, y1 + ny,
		x1 - nx, y1 - ny,
		x0 - nx, y0 - ny,
	}, c)
}

// FillCircle fills a circle centred on (cx, cy).
func (s *Surface) FillCircle(cx, cy, r float64, c sprout.Color) {
	if r <= 0 {
		return
	}
	cx, cy, r = cx*s.scale, cy*s.scale, r*s.scale
	bounds := image.Rect(
		int(math.Floor(cx-r)), int(math.Floor(cy-r)),
		int(math.Ceil(cx+r)), int(math.Ceil(cy+r)),
	).Intersect(s.img.Bounds())
	if bounds.Empty() {
		return
	}
	ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)
	k := r * kappa
	pt := func(x, y float64) (float32, float32) {
		return float32(cx + x - ox), float32(cy + y - oy)
	}

	z := s.z
	z.Reset(bounds.Dx(), bounds.Dy())
	z.MoveTo(pt(r, 0))
	cubeTo(z, pt, r, k, k, r, 0, r)
	cubeTo(z, pt, -k, r, -r, k, -r, 0)
	cubeTo(z, pt, -r, -k, -k, -r, 0, -r)
	cubeTo(z, pt, k, -r, r, -k, r, 0)
	z.ClosePath()
	z.Draw(s.img, bounds, image.NewUniform(c.RGBA()), image.Point{})
}

func cubeTo(z *vector.Rasterizer, pt func(x, y float64) (float32, float32), bx, by, cx, cy, dx, dy float64) {
	x1, y1 := pt(bx, by)
	x2, y2 := pt(cx, cy)
	x3, y3 := pt(dx, dy)
	z.CubeTo(x1, y1, x2, y2, x3, y3)
}

// fill rasterizes the closed polygon given as x,y pairs in backing pixels.
func (s *Surface) fill(pts []float64, c sprout.Color) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := 0; i < len(pts); i += 2 {
		minX, maxX = math.Min(minX, pts[i]), math.Max(maxX, pts[i])
		minY, maxY = math.Min(minY, pts[i+1]), math.Max(maxY, pts[i+1])
	}
	bounds := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Intersect(s.img.Bounds())
	if bounds.Empty() {
		return
	}
	ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)

	z := s.z
	z.Reset(bounds.Dx(), bounds.Dy())
	z.MoveTo(float32(pts[0]-ox), float32(pts[1]-oy))
	for i := 2; i < len(pts); i += 2 {
		z.LineTo(float32(pts[i]-ox), float32(pts[i+1]-oy))
	}
	z.ClosePath()
	z.Draw(s.img, bounds, image.NewUniform(c.RGBA()), image.Point{})
}

var _ sprout.Surface = (*Surface)(nil)
