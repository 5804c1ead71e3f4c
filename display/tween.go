package display

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenGroup animates up to 4 float64 fields simultaneously. Call update(dt)
// each frame; the group writes current values into the fields and sets done
// once every tween has finished.
type tweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	done   bool
}

func (g *tweenGroup) update(dt float32) {
	if g.done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.done = allDone
}

// tweenFields animates each field from its current value to the matching
// target over duration seconds.
func tweenFields(duration float32, fn ease.TweenFunc, pairs ...fieldTarget) *tweenGroup {
	g := &tweenGroup{}
	g.count = min(len(pairs), len(g.tweens))
	for i := 0; i < g.count; i++ {
		p := pairs[i]
		g.tweens[i] = gween.New(float32(*p.field), float32(p.to), duration, fn)
		g.fields[i] = p.field
	}
	return g
}

// fieldTarget pairs a field with the value it animates to.
type fieldTarget struct {
	field *float64
	to    float64
}

func target(field *float64, v float64) fieldTarget {
	return fieldTarget{field: field, to: v}
}
