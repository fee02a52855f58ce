package scratchoff

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestTweenReachesTarget(t *testing.T) {
	v := 1.0
	tw := newTween(&v, 0, time.Second, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	if tw.update(500 * time.Millisecond) {
		t.Fatal("finished at half time")
	}
	if math.Abs(v-0.5) > 1e-3 {
		t.Errorf("midpoint = %f, want ~0.5", v)
	}
	if !tw.update(500 * time.Millisecond) {
		t.Fatal("not finished after full duration")
	}
	if math.Abs(v) > 1e-6 {
		t.Errorf("final = %f, want 0", v)
	}
	if !tw.update(time.Second) {
		t.Error("finished tween reported running")
	}
}

func TestTweenZeroDurationSnaps(t *testing.T) {
	v := 3.0
	tw := newTween(&v, 7, 0, ease.Linear)
	if v != 7 {
		t.Errorf("value = %f, want 7 immediately", v)
	}
	if !tw.update(0) {
		t.Error("zero-duration tween not done")
	}
}
