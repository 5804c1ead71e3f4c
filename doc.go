// Package sprout is a procedural plant-growth animation: a garden of
// branching line segments that grow, flower, and drop seeds which may start
// new trees where they land.
//
// The engine is a simulation plus a renderer, driven once per display
// refresh by a host:
//
//	g := sprout.NewGarden(sprout.Config{MaxTrees: 100})
//	g.Resize(800, 450)
//	g.StartGrowth(400, 300) // e.g. where the user clicked
//	// every frame:
//	g.Update(time.Second / 60)
//	g.Draw(surface)
//
// # Growth
//
// StartGrowth plants an upward trunk (one seventh-and-a-half of the surface
// height long, seven levels deep) and a root reaching down to the bottom of
// the surface. Every branch takes 150 frames to extend, however long it is,
// then splits into two or three children that fan out ±30° from the parent
// and are three quarters as thick. Children root at the parent's tip.
//
// # Flowers and seeds
//
// Fully grown branches two or fewer levels from the end flower with a 30%
// chance per frame. A flower opens over about ten seconds of clock time, then
// drops a seed one to six seconds later. Seeds drift down at a constant
// velocity; the one frame a seed reaches the ground it gets a 2% chance to
// start a new tree, as long as the garden is under its tree cap.
//
// # Surfaces
//
// Drawing goes through the [Surface] interface in logical pixels. The
// sub-packages provide surfaces and hosts: raster renders headless into an
// image, display runs the garden in an Ebitengine window, and term draws it
// into a terminal with tcell.
//
// # Determinism
//
// Every random decision reads [Config.Rand], so a seeded source (see
// [NewRand]) replays a garden exactly, given the same frame durations.
package sprout
