package display

import (
	"math"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/sprout"
)

// Intro timeline, in seconds.
const (
	pourDuration = 1.5
	tiltDuration = 2.5
	fadeDelay    = 1.0
	canFade      = 1.0
	budFade      = 1.5
	dropPeriod   = 0.7
	dropCount    = 3
	bobPeriod    = 2.0
)

const (
	tiltAngle    = -40.0 // degrees; negative lowers the spout
	bobAmplitude = 3.0
	canOffsetX   = 70.0
	canOffsetY   = -90.0
	canHitRadius = 40.0
	pourShiftX   = -12.0
	pourShiftY   = 14.0
	budRadius    = 5.0
)

var (
	colorCan  = sprout.Color{R: 0.56, G: 0.63, B: 0.71, A: 1}
	colorDrop = sprout.Color{R: 0.55, G: 0.72, B: 0.92, A: 1}
)

type introPhase int

const (
	introWaiting introPhase = iota
	introPouring
	introGrowing
	introFading
	introDone
)

// Intro is the watering choreography that precedes growth. A watering can
// hovers beside a bud; activating it tilts the can and pours for a moment,
// starts growth at the bud, then fades both away.
type Intro struct {
	BudX, BudY float64
	// CanX, CanY is the can's pivot; Tilt its rotation in degrees.
	CanX, CanY, Tilt   float64
	CanAlpha, BudAlpha float64

	// OnPour fires when pouring begins, OnGrow when the water reaches the bud.
	OnPour func()
	OnGrow func(x, y float64)

	phase   introPhase
	elapsed float64
	bob     float64
	tweens  []*tweenGroup
}

// NewIntro places the bud and can for a w×h logical surface.
func NewIntro(w, h float64) *Intro {
	in := &Intro{CanAlpha: 1, BudAlpha: 1}
	in.Resize(w, h)
	return in
}

// Resize moves the bud and the resting can. Once pouring has begun the can
// stays where its tweens put it.
func (in *Intro) Resize(w, h float64) {
	in.BudX, in.BudY = sprout.BudPosition(w, h)
	if in.phase == introWaiting {
		in.CanX, in.CanY = in.BudX+canOffsetX, in.BudY+canOffsetY
	}
}

// Waiting reports whether the can is still waiting to be used.
func (in *Intro) Waiting() bool { return in.phase == introWaiting }

// Finished reports whether the can and bud have faded out.
func (in *Intro) Finished() bool { return in.phase == introDone }

// bobOffset is the hover displacement, zero once pouring begins.
func (in *Intro) bobOffset() float64 {
	if in.phase != introWaiting {
		return 0
	}
	return math.Sin(in.bob*2*math.Pi/bobPeriod) * bobAmplitude
}

// Contains reports whether (x, y) hits the waiting can.
func (in *Intro) Contains(x, y float64) bool {
	if in.phase != introWaiting {
		return false
	}
	return math.Hypot(x-in.CanX, y-(in.CanY+in.bobOffset())) <= canHitRadius
}

// Start begins pouring. It reports false if the intro already started.
func (in *Intro) Start() bool {
	if in.phase != introWaiting {
		return false
	}
	in.phase = introPouring
	in.elapsed = 0
	in.tweens = append(in.tweens, tweenFields(tiltDuration, ease.OutBack,
		target(&in.Tilt, tiltAngle),
		target(&in.CanX, in.CanX+pourShiftX),
		target(&in.CanY, in.CanY+pourShiftY),
	))
	if in.OnPour != nil {
		in.OnPour()
	}
	return true
}

// Update advances the choreography by dt seconds.
func (in *Intro) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	for _, tw := range in.tweens {
		tw.update(float32(dt))
	}

	switch in.phase {
	case introWaiting:
		in.bob += dt
	case introPouring:
		in.elapsed += dt
		if in.elapsed >= pourDuration {
			in.phase = introGrowing
			in.elapsed = 0
			if in.OnGrow != nil {
				in.OnGrow(in.BudX, in.BudY)
			}
		}
	case introGrowing:
		in.elapsed += dt
		if in.elapsed >= fadeDelay {
			in.phase = introFading
			in.tweens = append(in.tweens,
				tweenFields(canFade, ease.InOutSine, target(&in.CanAlpha, 0)),
				tweenFields(budFade, ease.InOutSine, target(&in.BudAlpha, 0)),
			)
		}
	case introFading:
		done := true
		for _, tw := range in.tweens {
			done = done && tw.done
		}
		if done {
			in.phase = introDone
			in.tweens = nil
		}
	}
}

// canPoint maps a point in can space to the surface, applying tilt and bob.
func (in *Intro) canPoint(x, y float64) (float64, float64) {
	rad := in.Tilt * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return in.CanX + x*cos - y*sin, in.CanY + in.bobOffset() + x*sin + y*cos
}

// spoutTip is the end of the spout in can space.
var spoutTip = sprout.Vec2{X: -36, Y: -14}

// Draw renders the bud, can and drops.
func (in *Intro) Draw(s sprout.Surface) {
	if in.phase == introDone {
		return
	}
	if in.BudAlpha > 0 {
		c := sprout.ColorFoliage.WithAlpha(in.BudAlpha)
		s.StrokeLine(in.BudX, in.BudY+budRadius+8, in.BudX, in.BudY, 2, c)
		s.FillCircle(in.BudX, in.BudY, budRadius, c)
	}
	if in.CanAlpha <= 0 {
		return
	}

	c := colorCan.WithAlpha(in.CanAlpha)
	line := func(x0, y0, x1, y1, w float64) {
		ax, ay := in.canPoint(x0, y0)
		bx, by := in.canPoint(x1, y1)
		s.StrokeLine(ax, ay, bx, by, w, c)
	}
	line(-16, 4, 16, 4, 26)                 // body
	line(-16, -9, 16, -9, 2)                // rim
	line(-14, 0, spoutTip.X, spoutTip.Y, 4) // spout
	line(16, -6, 26, 2, 4)                  // handle top
	line(26, 2, 18, 14, 4)                  // handle bottom
	hx, hy := in.canPoint(spoutTip.X, spoutTip.Y)
	s.FillCircle(hx, hy, 3.5, c)

	if in.phase != introPouring {
		return
	}
	for i := range dropCount {
		p := math.Mod(in.elapsed/dropPeriod+float64(i)/dropCount, 1)
		x := hx + (in.BudX-hx)*p
		y := hy + (in.BudY-budRadius-hy)*p
		s.FillCircle(x, y, 2, colorDrop.WithAlpha(in.CanAlpha))
	}
}
