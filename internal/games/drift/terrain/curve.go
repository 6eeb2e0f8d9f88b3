// Package terrain turns a hill silhouette into the repeating height function
// the drift world is built on.
//
// The pipeline is Extract (topmost opaque pixel per sampled column), Smooth
// (iterated local mean over y) and Profile, which answers height queries for
// any world x by folding it into one tile of hill plus gap.
package terrain

import "sort"

// Point is a sample of the ground curve in world units.
type Point struct {
	X, Y float64
}

// Curve is an ordered run of points with strictly increasing X.
// A Curve is never mutated once built; every tile shares one copy and
// translates it by its own x offset.
type Curve []Point

// Span returns the first and last X of the curve.
func (c Curve) Span() (lo, hi float64) {
	if len(c) == 0 {
		return 0, 0
	}
	return c[0].X, c[len(c)-1].X
}

// Monotonic reports whether X strictly increases index over index.
func (c Curve) Monotonic() bool {
	for i := 1; i < len(c); i++ {
		if c[i].X <= c[i-1].X {
			return false
		}
	}
	return true
}

// YRange returns the smallest and largest Y on the curve.
func (c Curve) YRange() (lo, hi float64) {
	if len(c) == 0 {
		return 0, 0
	}
	lo, hi = c[0].Y, c[0].Y
	for _, p := range c[1:] {
		lo = min(lo, p.Y)
		hi = max(hi, p.Y)
	}
	return lo, hi
}

// interpolate returns the curve height at local x, clamping outside the span.
// The curve must not be empty.
func (c Curve) interpolate(x float64) float64 {
	first, last := c[0], c[len(c)-1]
	if x <= first.X {
		return first.Y
	}
	if x >= last.X {
		return last.Y
	}

	// First index whose X is >= x; x > first.X so i >= 1.
	i := sort.Search(len(c), func(i int) bool { return c[i].X >= x })
	p1, p2 := c[i-1], c[i]
	t := (x - p1.X) / (p2.X - p1.X)
	return p1.Y + (p2.Y-p1.Y)*t
}
