package scratchoff

import "math"

// dotNudge offsets the end of a tap's zero-length segment; most rasterizers
// draw nothing for a degenerate segment, so a tiny one forces the round cap.
const dotNudge = 0.01

// flattenStep is the approximate logical length of one flattened curve piece.
const (
	flattenStep     = 4.0
	maxFlattenSteps = 64
)

// dotPath returns the polyline erased for a tap at p.
func dotPath(p Vec2) []Vec2 {
	return []Vec2{p, {X: p.X + dotNudge, Y: p.Y + dotNudge}}
}

// quadPath flattens the quadratic Bézier p0 → p2 with control c1 into a
// polyline that includes both endpoints.
func quadPath(p0, c1, p2 Vec2) []Vec2 {
	// The control polygon length bounds the curve length.
	l := math.Hypot(c1.X-p0.X, c1.Y-p0.Y) + math.Hypot(p2.X-c1.X, p2.Y-c1.Y)
	n := int(math.Ceil(l / flattenStep))
	n = max(1, min(n, maxFlattenSteps))

	pts := make([]Vec2, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		pts = append(pts, Vec2{
			X: mt*mt*p0.X + 2*mt*t*c1.X + t*t*p2.X,
			Y: mt*mt*p0.Y + 2*mt*t*c1.Y + t*t*p2.Y,
		})
	}
	return pts
}
