// Command sprout-render grows a garden headlessly and writes the final frame
// as a PNG, followed by a chart of the branch count over the run.
//
//	sprout-render -frames 3600 -seed 42 -out garden.png
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/guptarohit/asciigraph"

	"github.com/phanxgames/sprout"
	"github.com/phanxgames/sprout/internal/config"
	"github.com/phanxgames/sprout/internal/logger"
	"github.com/phanxgames/sprout/raster"
	"github.com/phanxgames/sprout/script"
)

// tick is the fixed simulation step.
const tick = time.Second / 60

// samples is the number of points in the population chart.
const samples = 72

type options struct {
	width, height int
	scale         float64
	frames        int
	seed          uint64
	maxTrees      int
	out           string
	script        *script.Runner
	screenshotDir string
	graphHeight   int
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "sprout-render: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.Init(cfg.Logging)

	fs := flag.NewFlagSet("sprout-render", flag.ContinueOnError)
	opts := options{screenshotDir: cfg.Script.ScreenshotDir}
	fs.IntVar(&opts.width, "width", cfg.Window.Width, "logical width")
	fs.IntVar(&opts.height, "height", cfg.Window.Height, "logical height")
	fs.Float64Var(&opts.scale, "scale", 1, "pixels per logical unit")
	fs.IntVar(&opts.frames, "frames", cfg.Render.Frames, "frames to simulate")
	fs.Uint64Var(&opts.seed, "seed", cfg.Garden.Seed, "random seed, 0 for clock")
	fs.IntVar(&opts.maxTrees, "max-trees", cfg.Garden.MaxTrees, "tree cap")
	fs.StringVar(&opts.out, "out", cfg.Render.Out, "output PNG")
	fs.IntVar(&opts.graphHeight, "graph-height", 10, "chart rows, 0 disables the chart")
	scriptPath := fs.String("script", cfg.Script.Path, "test script to follow")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.frames < 1 || opts.width < 1 || opts.height < 1 {
		return fmt.Errorf("frames and size must be positive")
	}
	if *scriptPath != "" {
		if opts.script, err = script.LoadFile(*scriptPath); err != nil {
			return err
		}
	}

	garden := sprout.NewGarden(sprout.Config{
		MaxTrees: opts.maxTrees,
		Rand:     sprout.NewRand(opts.seed),
		Logger:   log,
		Debug:    cfg.Garden.Debug,
	})
	r := newRenderer(garden, opts, log)
	counts := r.run()

	if err := raster.WritePNG(opts.out, r.surface.Image()); err != nil {
		return err
	}
	st := garden.Stats()
	log.Info("render complete", "out", opts.out, "frames", opts.frames,
		"branches", st.Branches, "seeds", st.Seeds, "trees", st.Trees)

	if opts.graphHeight > 0 {
		fmt.Fprintln(stdout, asciigraph.Plot(counts,
			asciigraph.Height(opts.graphHeight),
			asciigraph.Precision(0),
			asciigraph.Caption(fmt.Sprintf("branches over %d frames (%d trees)", opts.frames, st.Trees)),
		))
	}
	return nil
}

// renderer drives a garden frame by frame onto a raster surface. It is the
// script target for headless runs.
type renderer struct {
	garden  *sprout.Garden
	surface *raster.Surface
	opts    options
	logger  *slog.Logger
	shots   []string
}

func newRenderer(garden *sprout.Garden, opts options, logger *slog.Logger) *renderer {
	surface := raster.New(opts.width, opts.height, opts.scale)
	garden.Resize(surface.Size())
	return &renderer{
		garden:  garden,
		surface: surface,
		opts:    opts,
		logger:  logger.With("component", "render"),
	}
}

// run simulates every frame and returns the branch count sampled evenly
// across the run. Without a script, growth starts at the bud on frame one.
func (r *renderer) run() []float64 {
	if r.opts.script == nil {
		r.Water()
	}
	every := max(r.opts.frames/samples, 1)
	counts := make([]float64, 0, r.opts.frames/every+1)

	for f := 1; f <= r.opts.frames; f++ {
		if r.opts.script != nil {
			r.opts.script.Step(r)
		}
		r.garden.Tick(tick, r.surface)
		r.flushScreenshots()
		if f%every == 0 || f == r.opts.frames {
			counts = append(counts, float64(len(r.garden.Branches())))
		}
	}
	return counts
}

func (r *renderer) Water() {
	r.Click(sprout.BudPosition(r.surface.Size()))
}

func (r *renderer) Click(x, y float64) {
	r.garden.StartGrowth(x, y)
}

func (r *renderer) Screenshot(label string) {
	r.shots = append(r.shots, label)
}

func (r *renderer) flushScreenshots() {
	now := time.Now()
	for _, label := range r.shots {
		path := raster.ScreenshotPath(r.opts.screenshotDir, label, now)
		if err := raster.WritePNG(path, r.surface.Image()); err != nil {
			r.logger.Warn("screenshot failed", "label", label, "error", err)
			continue
		}
		r.logger.Info("screenshot saved", "path", path)
	}
	r.shots = r.shots[:0]
}

var _ script.Target = (*renderer)(nil)
