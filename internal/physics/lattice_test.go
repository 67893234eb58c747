package physics

import (
	"errors"
	"testing"
)

func mustLattice(t *testing.T) Lattice {
	t.Helper()
	l, err := NewLattice(8, 8, 50, 485)
	if err != nil {
		t.Fatalf("NewLattice: %v", err)
	}
	return l
}

func TestNewLatticeRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name     string
		columns  int
		rows     int
		cellSize float64
	}{
		{"zero columns", 0, 8, 50},
		{"single row", 8, 1, 50},
		{"zero cell", 8, 8, 0},
		{"negative cell", 8, 8, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLattice(tt.columns, tt.rows, tt.cellSize, 485)
			if !errors.Is(err, ErrInvalidLattice) {
				t.Fatalf("err = %v, want ErrInvalidLattice", err)
			}
		})
	}
}

func TestColumnOfBoundariesResolveLow(t *testing.T) {
	l := mustLattice(t)
	tests := []struct {
		x    float64
		want int
	}{
		{-30, 0},
		{0, 0},
		{0.5, 0},
		{50, 0},
		{50.0001, 1},
		{175, 3},
		{200, 3},
		{399.5, 7},
		{400, 7},
		{1000, 7},
	}
	for _, tt := range tests {
		if got := l.ColumnOf(tt.x); got != tt.want {
			t.Errorf("ColumnOf(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestRowOfUsesTopExclusiveSpans(t *testing.T) {
	l := mustLattice(t)
	tests := []struct {
		y    float64
		want int
	}{
		{485, 7},
		{460, 7},
		{435.0001, 7},
		{435, 6},
		{385, 5},
		{135, 0},
		{85, -1},
		{35, -2},
		{486, 8},
	}
	for _, tt := range tests {
		if got := l.RowOf(tt.y); got != tt.want {
			t.Errorf("RowOf(%v) = %d, want %d", tt.y, got, tt.want)
		}
	}
}

func TestRowOfIsMonotonic(t *testing.T) {
	l := mustLattice(t)
	prev := l.RowOf(-200)
	for y := -200.0; y <= 600; y += 0.25 {
		row := l.RowOf(y)
		if row < prev {
			t.Fatalf("RowOf(%v) = %d after %d: mapping went backwards", y, row, prev)
		}
		prev = row
	}
}

func TestCellEdgesRoundTrip(t *testing.T) {
	l := mustLattice(t)
	for row := 0; row < l.Rows(); row++ {
		if got := l.RowOf(l.CellBottom(row)); got != row {
			t.Errorf("RowOf(CellBottom(%d)) = %d", row, got)
		}
		if got := l.RowOf(l.CellTop(row)); got != row-1 {
			t.Errorf("RowOf(CellTop(%d)) = %d, want %d", row, got, row-1)
		}
	}
	for col := 0; col < l.Columns(); col++ {
		if got := l.ColumnOf(l.CellRight(col)); got != col {
			t.Errorf("ColumnOf(CellRight(%d)) = %d", col, got)
		}
		mid := (l.CellLeft(col) + l.CellRight(col)) / 2
		if got := l.ColumnOf(mid); got != col {
			t.Errorf("ColumnOf(mid of %d) = %d", col, got)
		}
	}
}

func TestLevelMovesWindowUp(t *testing.T) {
	l := mustLattice(t)
	if got := l.LevelHeight(); got != 350 {
		t.Fatalf("LevelHeight = %v, want 350", got)
	}
	top := l.CellTop(CeilingRow)
	l.level++
	if got := l.Ground(); got != top {
		t.Fatalf("ground after a level = %v, want old ceiling top %v", got, top)
	}
	if got := l.RowOf(top); got != l.Rows()-1 {
		t.Fatalf("old ceiling surface maps to row %d, want bottom row", got)
	}
}
