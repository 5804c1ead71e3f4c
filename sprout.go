package sprout

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication happens when a Surface converts it for drawing.
type Color struct {
	R, G, B, A float64
}

// Palette colors shared by every surface.
var (
	ColorBackground = colorFromHex("#fbf8ef") // page background
	ColorFoliage    = colorFromHex("#8fb996") // branch stroke
	ColorSeed       = colorFromHex("#c9a07a") // falling seed dot
)

// RGBA returns the color as a premultiplied 8-bit color.RGBA.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// WithAlpha returns a copy of c with its alpha multiplied by alpha.
func (c Color) WithAlpha(alpha float64) Color {
	c.A *= alpha
	return c
}

// colorFromHex parses a "#rrggbb" literal. Only used for package-level palette
// constants, so a malformed literal panics at init.
func colorFromHex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("sprout: bad palette literal %q: %v", s, err))
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}

// flowerColor returns the pastel bloom color for a hue in degrees:
// hsl(hue, 70%, 85%).
func flowerColor(hue float64) Color {
	c := colorful.Hsl(hue, 0.7, 0.85).Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}

// Vec2 is a point in logical (layout) pixels. Y increases downward.
type Vec2 struct {
	X, Y float64
}

// project returns the point reached by travelling length pixels from (x, y)
// at angle degrees from vertical. 0 points up, 180 points down.
func project(x, y, angle, length float64) Vec2 {
	rad := angle * math.Pi / 180
	return Vec2{
		X: x + math.Sin(rad)*-length,
		Y: y + math.Cos(rad)*-length,
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
