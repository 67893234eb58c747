package physics

import (
	"errors"
	"fmt"
	"math"
)

// CeilingRow is the row whose complete occupancy ends a level.
// Row 0 stays free so objects always have a lane to fall through.
const CeilingRow = 1

// snap absorbs float error when a coordinate lands exactly on a cell edge.
const snap = 1e-6

// ErrInvalidLattice is returned when lattice dimensions cannot describe a play-field.
var ErrInvalidLattice = errors.New("physics: invalid lattice")

// Lattice maps continuous play-field coordinates onto the cells of one stacked level.
// It is the single source of cell geometry: the code that records settled objects and
// the code that bounds the player both go through it, so they can never disagree.
//
// Play-field y grows downward. Row 0 is the top row, row Rows-1 rests on the ground.
// Every time a level is cleared the whole window moves up by LevelHeight.
type Lattice struct {
	columns  int
	rows     int
	cellSize float64
	groundY  float64 // ground line of level 0
	level    int     // number of cleared levels
}

// NewLattice creates a lattice of columns x rows cells of cellSize, standing on groundY.
func NewLattice(columns, rows int, cellSize, groundY float64) (Lattice, error) {
	switch {
	case columns < 1:
		return Lattice{}, fmt.Errorf("%w: columns must be positive, got %d", ErrInvalidLattice, columns)
	case rows <= CeilingRow:
		return Lattice{}, fmt.Errorf("%w: need more than %d rows, got %d", ErrInvalidLattice, CeilingRow, rows)
	case !(cellSize > 0) || math.IsInf(cellSize, 0):
		return Lattice{}, fmt.Errorf("%w: cell size must be positive, got %v", ErrInvalidLattice, cellSize)
	case math.IsNaN(groundY) || math.IsInf(groundY, 0):
		return Lattice{}, fmt.Errorf("%w: ground line must be finite, got %v", ErrInvalidLattice, groundY)
	}
	return Lattice{columns: columns, rows: rows, cellSize: cellSize, groundY: groundY}, nil
}

// Columns returns the number of columns.
func (l Lattice) Columns() int { return l.columns }

// Rows returns the number of rows in one level.
func (l Lattice) Rows() int { return l.rows }

// CellSize returns the edge length of a cell.
func (l Lattice) CellSize() float64 { return l.cellSize }

// Level returns how many levels have been cleared.
func (l Lattice) Level() int { return l.level }

// Width returns the play-field width.
func (l Lattice) Width() float64 { return float64(l.columns) * l.cellSize }

// LevelHeight is how far the window moves up when a level is cleared:
// every row below the ceiling row is full at that point.
func (l Lattice) LevelHeight() float64 {
	return float64(l.rows-CeilingRow) * l.cellSize
}

// Ground returns the y of the surface the current level stands on.
func (l Lattice) Ground() float64 {
	return l.groundY - float64(l.level)*l.LevelHeight()
}

// ColumnOf maps x to a column. Columns are half-open intervals (c*size, (c+1)*size],
// so an x exactly on an edge belongs to the lower column. Values outside the
// play-field clamp to the outermost columns.
func (l Lattice) ColumnOf(x float64) int {
	col := int(math.Ceil(x/l.cellSize-snap)) - 1
	if col < 0 {
		return 0
	}
	if col >= l.columns {
		return l.columns - 1
	}
	return col
}

// RowOf maps y to the row whose span (top, bottom] contains it.
// The result is not clamped; check it with RowInRange.
func (l Lattice) RowOf(y float64) int {
	k := int(math.Floor((l.Ground()-y)/l.cellSize + snap))
	return l.rows - 1 - k
}

// RowInRange reports whether row is inside the current level.
func (l Lattice) RowInRange(row int) bool {
	return row >= 0 && row < l.rows
}

// InRange reports whether (row, col) is a cell of the current level.
func (l Lattice) InRange(row, col int) bool {
	return l.RowInRange(row) && col >= 0 && col < l.columns
}

// CellLeft returns the x of a column's left edge.
func (l Lattice) CellLeft(col int) float64 {
	return float64(col) * l.cellSize
}

// CellRight returns the x of a column's right edge.
func (l Lattice) CellRight(col int) float64 {
	return float64(col+1) * l.cellSize
}

// CellBottom returns the y of a row's bottom edge.
func (l Lattice) CellBottom(row int) float64 {
	return l.Ground() - float64(l.rows-1-row)*l.cellSize
}

// CellTop returns the y of a row's top edge.
func (l Lattice) CellTop(row int) float64 {
	return l.CellBottom(row) - l.cellSize
}
