// Package script sequences scripted input and screenshots across frames, so a
// garden run can be replayed and captured without a human at the controls.
//
// A script is JSON:
//
//	{
//	  "steps": [
//	    {"action": "screenshot", "label": "empty"},
//	    {"action": "water"},
//	    {"action": "wait", "frames": 600},
//	    {"action": "click", "x": 120, "y": 300},
//	    {"action": "screenshot", "label": "grown"}
//	  ]
//	}
package script

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	ActionWater      = "water"
	ActionClick      = "click"
	ActionWait       = "wait"
	ActionScreenshot = "screenshot"
)

// Step is a single action in a script.
type Step struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type file struct {
	Steps []Step `json:"steps"`
}

// Target is the host a Runner drives.
type Target interface {
	// Water starts the garden the way the host's default trigger does.
	Water()
	// Click delivers a pointer click at logical coordinates.
	Click(x, y float64)
	// Screenshot captures the next rendered frame under label.
	Screenshot(label string)
}

// pender is implemented by targets that queue input. The runner does not
// advance while input is pending.
type pender interface {
	Pending() bool
}

// Runner executes one step per frame.
type Runner struct {
	steps     []Step
	cursor    int
	waitCount int
	done      bool
}

// Load parses a JSON script.
func Load(data []byte) (*Runner, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case ActionWater, ActionClick, ActionScreenshot:
		case ActionWait:
			if st.Frames < 0 {
				return nil, fmt.Errorf("parse script: step %d: negative wait", i)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Runner{steps: f.Steps}, nil
}

// LoadFile reads and parses the script at path.
func LoadFile(path string) (*Runner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Load(data)
}

// Steps returns the parsed steps.
func (r *Runner) Steps() []Step {
	return r.steps
}

// Done reports whether every step has run.
func (r *Runner) Done() bool {
	return r.done
}

// Step advances the runner by one frame.
func (r *Runner) Step(t Target) {
	if r.done {
		return
	}
	if p, ok := t.(pender); ok && p.Pending() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case ActionWater:
		t.Water()
	case ActionClick:
		t.Click(st.X, st.Y)
	case ActionScreenshot:
		t.Screenshot(st.Label)
	case ActionWait:
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		if p, ok := t.(pender); !ok || !p.Pending() {
			r.done = true
		}
	}
}
