package scratchoff

import (
	"math"
	"testing"
)

func TestDotPath(t *testing.T) {
	p := Vec2{X: 12, Y: 7}
	path := dotPath(p)
	if len(path) != 2 {
		t.Fatalf("len = %d, want 2", len(path))
	}
	if path[0] != p {
		t.Errorf("start = %v, want %v", path[0], p)
	}
	if path[1] == p {
		t.Error("dot path is degenerate")
	}
}

func TestQuadPathEndpoints(t *testing.T) {
	p0, c1, p2 := Vec2{X: 0, Y: 0}, Vec2{X: 12, Y: 16}, Vec2{X: 24, Y: 0}
	path := quadPath(p0, c1, p2)
	if path[0] != p0 || path[len(path)-1] != p2 {
		t.Errorf("endpoints = %v..%v, want %v..%v", path[0], path[len(path)-1], p0, p2)
	}
	// The apex of a symmetric quadratic is halfway to the control point.
	mid := path[len(path)/2]
	if !approxEqual(mid.X, 12, epsilon) || !approxEqual(mid.Y, 8, epsilon) {
		t.Errorf("apex = %v, want (12, 8)", mid)
	}
}

func TestQuadPathStepCount(t *testing.T) {
	tests := []struct {
		name   string
		p0, p2 Vec2
		want   int
	}{
		{"zero length", Vec2{X: 5, Y: 5}, Vec2{X: 5, Y: 5}, 2},
		{"short", Vec2{}, Vec2{X: 3}, 2},
		{"medium", Vec2{}, Vec2{X: 40}, 11},
		{"capped", Vec2{}, Vec2{X: 10000}, maxFlattenSteps + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := quadPath(tt.p0, tt.p0.Mid(tt.p2), tt.p2)
			if len(path) != tt.want {
				t.Errorf("len = %d, want %d", len(path), tt.want)
			}
		})
	}
}

func TestQuadPathStraightLine(t *testing.T) {
	path := quadPath(Vec2{X: 0, Y: 10}, Vec2{X: 10, Y: 10}, Vec2{X: 30, Y: 10})
	for i, p := range path {
		if math.Abs(p.Y-10) > epsilon {
			t.Errorf("point %d = %v, want y = 10", i, p)
		}
		if i > 0 && p.X < path[i-1].X {
			t.Errorf("point %d moves backwards", i)
		}
	}
}
