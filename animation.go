package scratchoff

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tween animates one float64 field. Call update each frame; the current value
// is written through to the field. There is no global animation manager, the
// owning component advances its own tweens.
type tween struct {
	tw    *gween.Tween
	field *float64
	done  bool
}

// newTween animates *field from its current value to `to` over d. A
// non-positive duration snaps immediately.
func newTween(field *float64, to float64, d time.Duration, fn ease.TweenFunc) *tween {
	if d <= 0 {
		*field = to
		return &tween{field: field, done: true}
	}
	return &tween{
		tw:    gween.New(float32(*field), float32(to), float32(d.Seconds()), fn),
		field: field,
	}
}

// update advances the tween by dt and reports whether it has finished.
func (g *tween) update(dt time.Duration) bool {
	if g.done {
		return true
	}
	val, finished := g.tw.Update(float32(dt.Seconds()))
	*g.field = float64(val)
	g.done = finished
	return finished
}
