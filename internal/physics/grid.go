package physics

// Cell addresses one grid cell.
type Cell struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Footprint is a copy of the occupancy of the current level, indexed [row][column].
type Footprint struct {
	Level   int      `json:"level"`
	Columns int      `json:"columns"`
	Rows    int      `json:"rows"`
	Cells   [][]bool `json:"cells"`
}

// Occupied returns the number of occupied cells in the footprint.
func (f Footprint) Occupied() int {
	n := 0
	for _, row := range f.Cells {
		for _, set := range row {
			if set {
				n++
			}
		}
	}
	return n
}

// Grid records which cells of the current level are permanently occupied by
// settled objects. A set cell is only cleared by Resize or Reset.
type Grid struct {
	Lattice
	cells []bool // row-major: [row*columns + col]
}

// NewGrid creates an empty grid over the given lattice.
func NewGrid(l Lattice) *Grid {
	return &Grid{
		Lattice: l,
		cells:   make([]bool, l.rows*l.columns),
	}
}

// MarkSettled occupies a cell. Out-of-range cells are ignored, since the caller's
// view of the level can lag a frame behind a transition.
func (g *Grid) MarkSettled(row, col int) bool {
	if !g.InRange(row, col) {
		return false
	}
	g.cells[row*g.columns+col] = true
	return true
}

// IsOccupied reports whether a cell is occupied. Out-of-range cells are empty.
func (g *Grid) IsOccupied(row, col int) bool {
	if !g.InRange(row, col) {
		return false
	}
	return g.cells[row*g.columns+col]
}

// IsRowFull reports whether every cell of row is occupied.
func (g *Grid) IsRowFull(row int) bool {
	if !g.RowInRange(row) {
		return false
	}
	offset := row * g.columns
	for _, set := range g.cells[offset : offset+g.columns] {
		if !set {
			return false
		}
	}
	return true
}

// IsLevelFull reports whether the ceiling row is complete.
func (g *Grid) IsLevelFull() bool {
	return g.IsRowFull(CeilingRow)
}

// StackTop returns the highest row of the contiguous stack standing on the
// bottom of col. ok is false when the column's bottom cell is empty.
func (g *Grid) StackTop(col int) (row int, ok bool) {
	if col < 0 || col >= g.columns {
		return 0, false
	}
	row = g.rows
	for r := g.rows - 1; r >= 0; r-- {
		if !g.cells[r*g.columns+col] {
			break
		}
		row = r
	}
	return row, row < g.rows
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, set := range g.cells {
		if set {
			n++
		}
	}
	return n
}

// Resize starts the next level: all cells are cleared and the window moves up
// by one level height. Objects still falling keep their own coordinates.
func (g *Grid) Resize() {
	clear(g.cells)
	g.level++
}

// Reset clears the grid and returns it to level 0.
func (g *Grid) Reset() {
	clear(g.cells)
	g.level = 0
}

// Footprint returns a copy of the current level's occupancy.
func (g *Grid) Footprint() Footprint {
	cells := make([][]bool, g.rows)
	for r := range cells {
		cells[r] = make([]bool, g.columns)
		copy(cells[r], g.cells[r*g.columns:(r+1)*g.columns])
	}
	return Footprint{
		Level:   g.level,
		Columns: g.columns,
		Rows:    g.rows,
		Cells:   cells,
	}
}
