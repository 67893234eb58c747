// Package physics provides the kinematic body, the occupancy grid and the
// coordinate mapping shared by everything that touches the grid.
package physics

import "math"

// SpansOverlap reports whether the open intervals (a0, a1) and (b0, b1) overlap.
// Touching edges do not count.
func SpansOverlap(a0, a1, b0, b1 float64) bool {
	return a0 < b1 && b0 < a1
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Bounds is the rectangle a body's position is confined to for one frame.
type Bounds struct {
	LowerX float64 `json:"lowerX"`
	UpperX float64 `json:"upperX"`
	LowerY float64 `json:"lowerY"`
	UpperY float64 `json:"upperY"`
}

// Normalize collapses an inverted axis onto the point nearest (x, y), so that
// LowerX <= UpperX and LowerY <= UpperY always hold.
func (b Bounds) Normalize(x, y float64) Bounds {
	if b.LowerX > b.UpperX {
		p := Clamp(x, b.UpperX, b.LowerX)
		b.LowerX, b.UpperX = p, p
	}
	if b.LowerY > b.UpperY {
		p := Clamp(y, b.UpperY, b.LowerY)
		b.LowerY, b.UpperY = p, p
	}
	return b
}

// Contain clamps (x, y) into the bounds.
func (b Bounds) Contain(x, y float64) (float64, float64) {
	return Clamp(x, b.LowerX, b.UpperX), Clamp(y, b.LowerY, b.UpperY)
}
