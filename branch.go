package sprout

import "time"

const (
	// growthFrames is the number of frames every branch takes to reach its
	// target length, regardless of how long that length is.
	growthFrames = 150

	childAngleSpread = 30.0 // children deviate up to ±30° from the parent
	childLengthMin   = 0.9
	childLengthMax   = 1.1
	childWidthScale  = 0.75

	// A branch may flower once fully grown with at most this much depth left.
	flowerMaxDepth = 2
	// Chance per eligible frame that flowering begins.
	flowerChance = 0.3

	flowerPositionMin = 0.6
	flowerPositionMax = 1.0

	bloomSteps        = 100 // progress advances 1/bloomSteps per step
	bloomStepInterval = 100 * time.Millisecond
	seedDelayMin      = 1000 * time.Millisecond
	seedDelayMax      = 6000 * time.Millisecond

	// noFlower marks a branch that never flowers (the initial root).
	noFlower = -1.0
)

// bloomState tracks where a flowering branch is in its bloom-to-seed cycle.
type bloomState uint8

const (
	bloomNone     bloomState = iota // not flowering
	bloomOpening                    // progress advancing every bloomStepInterval
	bloomRipening                   // fully open, seed due at seedAt
	bloomDone                       // seed dropped
)

// Branch is a single growing line segment. Fields are exported for reading;
// the Garden owns all mutation.
type Branch struct {
	// Origin in logical pixels.
	X, Y float64
	// Length is the target length; Grown is how much of it is visible.
	Length float64
	Grown  float64
	// Angle in degrees from vertical: 0 grows up, 180 grows down.
	Angle float64
	Width float64
	// Depth is the remaining recursion budget for children.
	Depth int
	// Finished is set once the branch has spawned its children.
	Finished bool

	// FloweringProgress is in [0, 1], or negative for a branch that never
	// flowers.
	FloweringProgress float64
	Flowered          bool
	FlowerColor       Color
	// FlowerPosition is the fraction along the branch where the flower sits,
	// in [0.6, 1.0).
	FlowerPosition float64

	frames     int // growth frames elapsed, capped at growthFrames
	bloom      bloomState
	steps      int           // bloom steps taken
	nextStepAt time.Duration // garden clock time of the next bloom step
	seedAt     time.Duration // garden clock time the seed drops
}

// newBranch builds a branch and draws its flower color and position from r.
func newBranch(r Rand, x, y, length, angle, width float64, depth int) Branch {
	hue := r.Float64() * 360
	pos := uniform(r, flowerPositionMin, flowerPositionMax)
	if depth < 0 {
		depth = 0
	}
	return Branch{
		X:              x,
		Y:              y,
		Length:         clampLength(length),
		Angle:          angle,
		Width:          width,
		Depth:          depth,
		FlowerColor:    flowerColor(hue),
		FlowerPosition: pos,
	}
}

// Origin returns the branch's starting point.
func (b *Branch) Origin() Vec2 {
	return Vec2{b.X, b.Y}
}

// Tip returns the end of the visible part of the branch.
func (b *Branch) Tip() Vec2 {
	return b.TipAt(b.Grown)
}

// TipAt returns the point length pixels along the branch.
func (b *Branch) TipAt(length float64) Vec2 {
	return project(b.X, b.Y, b.Angle, length)
}

// FinalTip returns the end of the fully grown branch, where children root.
func (b *Branch) FinalTip() Vec2 {
	return b.TipAt(b.Length)
}

// FlowerPoint returns where the flower (and later its seed) sits.
func (b *Branch) FlowerPoint() Vec2 {
	return b.TipAt(b.Length * b.FlowerPosition)
}

// FullyGrown reports whether the branch has reached its target length.
func (b *Branch) FullyGrown() bool {
	return b.frames >= growthFrames
}

// Blooming reports whether the flower is still opening.
func (b *Branch) Blooming() bool {
	return b.bloom == bloomOpening
}

// FlowerRadius returns the flower's radius for the current progress. The
// flower opens through three linear stages: 1.5→3, 3→4.5 and 4.5→6.
func (b *Branch) FlowerRadius() float64 {
	return flowerRadius(b.FloweringProgress)
}

func flowerRadius(p float64) float64 {
	switch {
	case p <= 0:
		return 0
	case p < 0.33:
		return 1.5 + 1.5*(p/0.33)
	case p < 0.66:
		return 3 + 1.5*((p-0.33)/0.33)
	default:
		return 4.5 + 1.5*((min(p, 1)-0.66)/0.34)
	}
}

// grow advances the branch by one growth frame.
func (b *Branch) grow() {
	if b.frames >= growthFrames {
		return
	}
	b.frames++
	if b.frames == growthFrames {
		b.Grown = b.Length
		return
	}
	b.Grown = b.Length * float64(b.frames) / growthFrames
}

// canFlower reports whether the branch is eligible to start flowering this
// frame, before the random draw.
func (b *Branch) canFlower() bool {
	return b.Depth <= flowerMaxDepth && !b.Flowered && b.FullyGrown()
}

// startBloom begins flowering at clock time now. The first step is taken
// immediately.
func (b *Branch) startBloom(now time.Duration) {
	b.Flowered = true
	b.bloom = bloomOpening
	b.steps = 1
	b.FloweringProgress = 1.0 / bloomSteps
	b.nextStepAt = now + bloomStepInterval
}

// advanceBloom steps flowering progress for every bloom step due by now. It
// reports true when the branch's seed is due and should be dropped.
func (b *Branch) advanceBloom(r Rand, now time.Duration) bool {
	switch b.bloom {
	case bloomOpening:
		for b.steps < bloomSteps && now >= b.nextStepAt {
			b.steps++
			b.FloweringProgress = float64(b.steps) / bloomSteps
			b.nextStepAt += bloomStepInterval
		}
		if b.steps < bloomSteps {
			return false
		}
		// Completion is noticed on the step after the last increment; the
		// seed follows after a random delay.
		delay := time.Duration(uniform(r, float64(seedDelayMin), float64(seedDelayMax)))
		b.seedAt = b.nextStepAt + delay
		b.bloom = bloomRipening
		return false
	case bloomRipening:
		if now < b.seedAt {
			return false
		}
		b.bloom = bloomDone
		return true
	}
	return false
}

// disableFlowering marks the branch as one that never flowers.
func (b *Branch) disableFlowering() {
	b.FloweringProgress = noFlower
	b.Flowered = true
}

// minLength is the shortest target length any branch may have.
const minLength = 1.0

func clampLength(l float64) float64 {
	if !(l >= minLength) { // also catches NaN
		return minLength
	}
	return l
}
