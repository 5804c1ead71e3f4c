package sprout

const (
	seedRadius = 1.5

	// germinationChance is the probability a landed seed starts a new tree.
	germinationChance = 0.02

	// Germinated trees.
	saplingWidth = 8.0
	saplingDepth = 5
	// Germinated trees start with the surface height over this as length.
	saplingHeightDivisor = 6.0
)

// Seed is a falling propagule dropped by a fully bloomed flower.
type Seed struct {
	X, Y float64
	// VX is the horizontal drift per frame, Speed the fall per frame.
	VX, Speed float64
	// Planted is set once the seed has landed.
	Planted bool
	// Checked is set once germination has been decided. It is decided
	// exactly once per seed.
	Checked bool
}

// newSeed builds a seed at (x, y) with random drift in [-1, 1) and fall speed
// in [0.5, 1.5).
func newSeed(r Rand, x, y float64) Seed {
	vx := uniform(r, -1, 1)
	speed := uniform(r, 0.5, 1.5)
	return Seed{X: x, Y: y, VX: vx, Speed: speed}
}

// Position returns the seed's current position.
func (s *Seed) Position() Vec2 {
	return Vec2{s.X, s.Y}
}

// fall moves the seed one frame if it is still above the ground line and
// reports whether it has reached the ground without a germination decision.
func (s *Seed) fall(ground float64) bool {
	if s.Y < ground {
		s.X += s.VX
		s.Y += s.Speed
	}
	return s.Y >= ground && !s.Checked
}
