// Package collision derives the rectangle the player may move in each frame from
// the settled stack and the boxes still falling, and detects when a falling box
// crushes the player.
package collision

import (
	"math"

	"github.com/tomz197/boxfall/internal/object"
	"github.com/tomz197/boxfall/internal/physics"
)

// Bounds is the player's legal envelope for one frame.
type Bounds = physics.Bounds

// edgeTolerance keeps a sprite resting exactly on a cell edge out of that cell.
const edgeTolerance = 1.0

// Result is one frame's resolution.
type Result struct {
	Bounds  Bounds `json:"bounds"`
	Contact bool   `json:"contact"` // Pressed against a settled box
	Struck  bool   `json:"struck"`  // Crushed by a falling box
	Row     int    `json:"row"`     // Row of the player's feet, may be out of range
	Column  int    `json:"column"`  // Column under the player's centre
	InRange bool   `json:"inRange"` // Whether any row the player spans is in the level
}

// Resolver computes player bounds for a sprite of fixed geometry.
type Resolver struct {
	geom     object.Geometry
	headroom float64
}

// NewResolver creates a resolver. headroom is the distance kept between the top of
// the view and the player.
func NewResolver(geom object.Geometry, headroom float64) *Resolver {
	return &Resolver{geom: geom, headroom: headroom}
}

// Defaults returns the unconstrained bounds: the full width plus the overhang,
// from below the top of the view down to the ground of the current level.
func (r *Resolver) Defaults(l physics.Lattice, scroll float64) Bounds {
	return Bounds{
		LowerX: -r.geom.Overhang,
		UpperX: l.Width() - r.geom.Width + r.geom.Overhang,
		LowerY: r.headroom - scroll,
		UpperY: l.Ground() - r.geom.Height,
	}
}

// Resolve computes the bounds for a player at (x, y). Nothing is carried over from
// earlier frames.
func (r *Resolver) Resolve(grid *physics.Grid, boxes []*object.Box, x, y, scroll float64) Result {
	g := r.geom
	size := grid.CellSize()
	b := r.Defaults(grid.Lattice, scroll)

	center := x + g.Width/2
	top := grid.RowOf(y + edgeTolerance)
	bottom := grid.RowOf(y + g.Height - edgeTolerance)
	res := Result{
		Row:     bottom,
		Column:  grid.ColumnOf(center),
		InRange: spansLevel(grid.Lattice, top, bottom),
	}

	// Core is the part of the sprite that cannot overlap a box.
	coreLeft, coreRight := x+g.Trailing, x+g.Width-g.Leading

	// Floor: the highest contiguous stack under the core.
	for col := grid.ColumnOf(coreLeft); col <= grid.ColumnOf(coreRight); col++ {
		if !physics.SpansOverlap(coreLeft, coreRight, grid.CellLeft(col), grid.CellRight(col)) {
			continue
		}
		if row, ok := grid.StackTop(col); ok {
			b.UpperY = math.Min(b.UpperY, grid.CellTop(row)-g.Height)
		}
	}
	onFloor := math.Abs(y-b.UpperY) < edgeTolerance

	// Settled cells beside the player.
	if res.InRange {
		for row := max(top, 0); row <= min(bottom, grid.Rows()-1); row++ {
			for col := 0; col < grid.Columns(); col++ {
				if !grid.IsOccupied(row, col) {
					continue
				}
				left, right := grid.CellLeft(col), grid.CellRight(col)
				if physics.SpansOverlap(x, x+g.Width, left, right) {
					res.Contact = true
				}
				r.clampSide(&b, left, right, center)
			}
		}
	}

	// Falling boxes: in the player's column a ceiling, elsewhere a wall while
	// level with the player.
	for _, box := range boxes {
		if !box.InFlight() {
			continue
		}
		left, right := grid.CellLeft(box.Column), grid.CellRight(box.Column)
		boxTop, boxBottom := box.Y, box.Y+size

		// The column is clamped, so a sprite beside the field must also overlap it.
		if box.Column == res.Column && physics.SpansOverlap(x, x+g.Width, left, right) {
			if boxTop >= y+g.Height {
				continue
			}
			b.LowerY = math.Max(b.LowerY, boxBottom)
			if boxBottom >= y && onFloor {
				res.Struck = true
			}
			continue
		}
		if physics.SpansOverlap(y, y+g.Height, boxTop, boxBottom) {
			r.clampSide(&b, left, right, center)
		}
	}

	res.Bounds = b.Normalize(x, y)
	return res
}

// clampSide tightens the horizontal bounds against an obstacle spanning
// [left, right], letting the tail or beak overlap it by the sprite's margins.
func (r *Resolver) clampSide(b *Bounds, left, right, center float64) {
	if (left+right)/2 < center {
		b.LowerX = math.Max(b.LowerX, right-r.geom.Trailing)
		return
	}
	b.UpperX = math.Min(b.UpperX, left-r.geom.Width+r.geom.Leading)
}

func spansLevel(l physics.Lattice, top, bottom int) bool {
	return top < l.Rows() && bottom >= 0
}
