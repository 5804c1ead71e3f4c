package sprout

import (
	"log/slog"
	"time"
)

const (
	// DefaultMaxTrees is the tree cap used when Config.MaxTrees is zero.
	DefaultMaxTrees = 100

	trunkWidth         = 10.0
	trunkDepth         = 7
	trunkHeightDivisor = 7.5 // upward branch length is the surface height over this
	trunkOffsetY       = 5.0 // the trunk roots slightly below the trigger point

	rootAngle     = 180.0
	rootMinLength = 50.0
)

// Config controls a Garden. The zero value is usable.
type Config struct {
	// MaxTrees caps the number of root-level trees. Once reached, landed seeds
	// no longer germinate. Existing trees keep branching.
	MaxTrees int
	// Rand drives every random decision. Nil uses a clock-seeded PCG source.
	Rand Rand
	// Logger receives lifecycle and debug logs. Nil uses slog.Default().
	Logger *slog.Logger
	// Debug enables per-frame timing stats, logged at most once per second.
	Debug bool
}

// Garden owns the simulation state: every branch and seed ever created, the
// tree counter and the simulation clock. Branches and seeds are stored in
// append-only slices, so an index stays valid for the garden's lifetime.
//
// A Garden is not safe for concurrent use. Hosts call Update, Draw and
// StartGrowth from one goroutine.
type Garden struct {
	cfg    Config
	rng    Rand
	logger *slog.Logger

	width, height float64

	branches []Branch
	seeds    []Seed
	trees    int

	started bool
	capHit  bool
	clock   time.Duration
	frame   uint64

	debug *debugState
}

// NewGarden creates an empty garden. Call Resize before StartGrowth so the
// engine knows the surface height.
func NewGarden(cfg Config) *Garden {
	if cfg.MaxTrees <= 0 {
		cfg.MaxTrees = DefaultMaxTrees
	}
	if cfg.Rand == nil {
		cfg.Rand = NewRand(0)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	g := &Garden{
		cfg:    cfg,
		rng:    cfg.Rand,
		logger: cfg.Logger.With("component", "garden"),
	}
	if cfg.Debug {
		g.debug = newDebugState()
	}
	return g
}

// Resize sets the logical size of the drawing surface. The height is the
// ground line seeds land on.
func (g *Garden) Resize(width, height float64) {
	g.width, g.height = width, height
}

// Size returns the logical surface size last passed to Resize.
func (g *Garden) Size() (width, height float64) {
	return g.width, g.height
}

// StartGrowth plants the first tree at (x, y): an upward trunk and a root
// growing down to the bottom of the surface. It only takes effect once;
// later calls return false and change nothing.
func (g *Garden) StartGrowth(x, y float64) bool {
	if g.started {
		return false
	}
	g.started = true

	h := g.height
	trunk := newBranch(g.rng, x, y+trunkOffsetY, h/trunkHeightDivisor, 0, trunkWidth, trunkDepth)

	rootLen := h - y
	if rootLen < rootMinLength {
		rootLen = rootMinLength
	}
	root := newBranch(g.rng, x, y+trunkOffsetY, rootLen, rootAngle, trunkWidth, 0)
	root.disableFlowering()

	// Trunk and root are one tree.
	g.branches = append(g.branches, trunk, root)
	g.trees++

	g.logger.Info("growth started",
		"x", x, "y", y,
		"surface_height", h,
		"trunk_length", trunk.Length,
		"root_length", root.Length,
	)
	return true
}

// BudPosition is the conventional watering point on a w×h surface: centred,
// two-thirds of the way down.
func BudPosition(w, h float64) (x, y float64) {
	return w / 2, h * 2 / 3
}

// Started reports whether StartGrowth has run.
func (g *Garden) Started() bool {
	return g.started
}

// Update advances the simulation by one frame covering dt of wall time.
// Branch growth and seed motion are per frame; bloom progress follows the
// clock accumulated from dt. Before StartGrowth it does nothing.
//
// Branches and seeds created during this frame are first visited on the
// next frame.
func (g *Garden) Update(dt time.Duration) {
	if !g.started {
		return
	}
	var t0 time.Time
	if g.debug != nil {
		t0 = time.Now()
	}

	if dt > 0 {
		g.clock += dt
	}
	g.frame++

	nb, ns := len(g.branches), len(g.seeds)
	for i := 0; i < nb; i++ {
		g.updateBranch(i)
	}
	for i := 0; i < ns; i++ {
		g.updateSeed(i)
	}

	if g.debug != nil {
		g.debug.updateTime = time.Since(t0)
	}
}

// Tick runs one full frame: Update followed by Draw onto s.
func (g *Garden) Tick(dt time.Duration, s Surface) {
	g.Update(dt)
	g.Draw(s)
}

// updateBranch advances the branch at index i. Appending children may move
// the backing array, so the branch is re-fetched after every append.
func (g *Garden) updateBranch(i int) {
	b := &g.branches[i]
	if !b.FullyGrown() {
		b.grow()
	} else if !b.Finished && b.Depth > 0 {
		g.spawnChildren(i)
		b = &g.branches[i]
	}

	if b.canFlower() && g.rng.Float64() > 1-flowerChance {
		b.startBloom(g.clock)
	}

	if b.advanceBloom(g.rng, g.clock) {
		p := b.FlowerPoint()
		g.seeds = append(g.seeds, newSeed(g.rng, p.X, p.Y))
	}
}

// spawnChildren appends two or three children rooted at the parent's final
// tip and marks the parent finished.
func (g *Garden) spawnChildren(i int) {
	parent := g.branches[i]
	tip := parent.FinalTip()
	count := int(g.rng.Float64()*2) + 2
	for range count {
		angle := parent.Angle + uniform(g.rng, -childAngleSpread, childAngleSpread)
		length := parent.Length * uniform(g.rng, childLengthMin, childLengthMax)
		g.branches = append(g.branches, newBranch(g.rng,
			tip.X, tip.Y, length, angle, parent.Width*childWidthScale, parent.Depth-1))
	}
	g.branches[i].Finished = true
}

// updateSeed moves the seed at index i and, on the frame it lands, decides
// once whether it germinates.
func (g *Garden) updateSeed(i int) {
	s := &g.seeds[i]
	if !s.fall(g.height) {
		return
	}
	s.Checked = true
	s.Planted = true
	x := s.X

	if g.trees >= g.cfg.MaxTrees {
		if !g.capHit {
			g.capHit = true
			g.logger.Info("tree cap reached", "trees", g.trees, "max_trees", g.cfg.MaxTrees)
		}
		return
	}
	if g.rng.Float64() >= germinationChance {
		return
	}
	g.branches = append(g.branches, newBranch(g.rng,
		x, g.height, g.height/saplingHeightDivisor, 0, saplingWidth, saplingDepth))
	g.trees++
	g.logger.Debug("seed germinated", "x", x, "trees", g.trees)
}

// Branches returns every branch in creation order. The returned slice MUST
// NOT be mutated and is invalidated by the next Update.
func (g *Garden) Branches() []Branch {
	return g.branches
}

// Seeds returns every seed in creation order, landed ones included. The
// returned slice MUST NOT be mutated and is invalidated by the next Update.
func (g *Garden) Seeds() []Seed {
	return g.seeds
}

// Trees returns the number of root-level trees started so far.
func (g *Garden) Trees() int {
	return g.trees
}

// MaxTrees returns the configured tree cap.
func (g *Garden) MaxTrees() int {
	return g.cfg.MaxTrees
}

// Clock returns the simulation time accumulated from Update calls.
func (g *Garden) Clock() time.Duration {
	return g.clock
}

// Frame returns the number of frames simulated.
func (g *Garden) Frame() uint64 {
	return g.frame
}
