package sprout

import (
	"time"

	"golang.org/x/time/rate"
)

// Stats is a snapshot of the garden's population.
type Stats struct {
	Frame    uint64
	Branches int
	Seeds    int
	// Falling counts seeds still above the ground line.
	Falling int
	// Blooming counts flowers still opening.
	Blooming int
	Trees    int
	MaxTrees int
}

// Stats counts the garden's current population.
func (g *Garden) Stats() Stats {
	st := Stats{
		Frame:    g.frame,
		Branches: len(g.branches),
		Seeds:    len(g.seeds),
		Trees:    g.trees,
		MaxTrees: g.cfg.MaxTrees,
	}
	for i := range g.branches {
		if g.branches[i].Blooming() {
			st.Blooming++
		}
	}
	for i := range g.seeds {
		if !g.seeds[i].Checked {
			st.Falling++
		}
	}
	return st
}

// debugState holds per-frame timings. Only allocated when Config.Debug is set.
type debugState struct {
	updateTime time.Duration
	drawTime   time.Duration
	limiter    *rate.Limiter
}

func newDebugState() *debugState {
	return &debugState{
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// debugBranchWarn is the branch count past which debugLog warns that frame
// cost is likely to climb. The tree cap bounds growth, a large cap does not.
const debugBranchWarn = 20000

// debugLog logs timing and population stats, at most once per second.
func (g *Garden) debugLog() {
	d := g.debug
	if d == nil || !d.limiter.Allow() {
		return
	}
	st := g.Stats()
	g.logger.Debug("frame stats",
		"frame", st.Frame,
		"update", d.updateTime,
		"draw", d.drawTime,
		"branches", st.Branches,
		"seeds", st.Seeds,
		"falling", st.Falling,
		"blooming", st.Blooming,
		"trees", st.Trees,
	)
	if st.Branches > debugBranchWarn {
		g.logger.Warn("branch count high", "branches", st.Branches, "threshold", debugBranchWarn, "max_trees", st.MaxTrees)
	}
}
