package collision

import (
	"math/rand"
	"testing"

	"github.com/tomz197/boxfall/internal/object"
	"github.com/tomz197/boxfall/internal/physics"
)

func newGrid(t *testing.T) *physics.Grid {
	t.Helper()
	l, err := physics.NewLattice(8, 8, 50, 485)
	if err != nil {
		t.Fatalf("NewLattice: %v", err)
	}
	return physics.NewGrid(l)
}

func newResolver() *Resolver {
	return NewResolver(object.DefaultGeometry(), 80)
}

// fallingBox returns a box in column that is in flight with its top edge near y.
func fallingBox(column int, y float64) *object.Box {
	b := object.NewBox(column, float64(column)*50+0.5, 1000, 0.0481, 12)
	b.SetDropPosition(y)
	b.Release(0)
	return b
}

func TestResolveDefaults(t *testing.T) {
	g := newGrid(t)
	res := newResolver().Resolve(g, nil, 150, 439, 0)
	want := Bounds{LowerX: -20, UpperX: 374, LowerY: 80, UpperY: 439}
	if res.Bounds != want {
		t.Fatalf("bounds = %+v, want %+v", res.Bounds, want)
	}
	if res.Contact || res.Struck {
		t.Fatalf("open field reported contact=%v struck=%v", res.Contact, res.Struck)
	}
}

func TestSettledCellToTheRight(t *testing.T) {
	g := newGrid(t)
	g.MarkSettled(5, 4)

	res := newResolver().Resolve(g, nil, 152, 339, 0)
	if res.Column != 3 || res.Row != 5 {
		t.Fatalf("player mapped to (%d, %d), want (5, 3)", res.Row, res.Column)
	}
	if want := 200.0 - 46 + 9; res.Bounds.UpperX != want {
		t.Errorf("UpperX = %v, want %v", res.Bounds.UpperX, want)
	}
	if res.Bounds.LowerX != -20 {
		t.Errorf("LowerX = %v, want default -20", res.Bounds.LowerX)
	}
	if res.Contact {
		t.Error("contact reported without overlap")
	}
}

func TestSettledCellToTheLeft(t *testing.T) {
	g := newGrid(t)
	g.MarkSettled(5, 2)

	res := newResolver().Resolve(g, nil, 145, 339, 0)
	if want := 150.0 - 8; res.Bounds.LowerX != want {
		t.Errorf("LowerX = %v, want %v", res.Bounds.LowerX, want)
	}
	if res.Bounds.UpperX != 374 {
		t.Errorf("UpperX = %v, want default 374", res.Bounds.UpperX)
	}
	if !res.Contact {
		t.Error("sprite overlapping the cell did not report contact")
	}
}

func TestContactWhenPressedIntoWall(t *testing.T) {
	g := newGrid(t)
	g.MarkSettled(5, 4)
	res := newResolver().Resolve(g, nil, 163, 339, 0)
	if !res.Contact {
		t.Fatal("no contact while the beak overlaps the cell")
	}
}

func TestFloorIsTopOfStack(t *testing.T) {
	g := newGrid(t)
	g.MarkSettled(7, 3)
	g.MarkSettled(6, 3)
	g.MarkSettled(4, 3) // Not contiguous, ignored

	res := newResolver().Resolve(g, nil, 152, 200, 0)
	if want := 385.0 - 46; res.Bounds.UpperY != want {
		t.Fatalf("UpperY = %v, want %v", res.Bounds.UpperY, want)
	}
}

func TestFallingBoxAboveIsCeiling(t *testing.T) {
	g := newGrid(t)
	boxes := []*object.Box{fallingBox(3, 100)}

	res := newResolver().Resolve(g, boxes, 152, 439, 0)
	if res.Struck {
		t.Fatal("struck by a box far above")
	}
	if res.Bounds.LowerY < 150 || res.Bounds.LowerY > 151 {
		t.Fatalf("LowerY = %v, want the box's bottom edge", res.Bounds.LowerY)
	}
}

func TestFallingBoxStrikesPlayerOnFloor(t *testing.T) {
	g := newGrid(t)
	boxes := []*object.Box{fallingBox(3, 400)}

	res := newResolver().Resolve(g, boxes, 152, 439, 0)
	if !res.Struck {
		t.Fatal("player on the floor under a box was not struck")
	}
	if res.Bounds.LowerY > res.Bounds.UpperY {
		t.Fatalf("inverted bounds %+v", res.Bounds)
	}
}

func TestFallingBoxDoesNotStrikeAirbornePlayer(t *testing.T) {
	g := newGrid(t)
	boxes := []*object.Box{fallingBox(3, 250)}

	res := newResolver().Resolve(g, boxes, 152, 280, 0)
	if res.Struck {
		t.Fatal("player off the floor was struck")
	}
}

func TestFallingBoxBesideIsWall(t *testing.T) {
	g := newGrid(t)
	boxes := []*object.Box{fallingBox(4, 330)}

	res := newResolver().Resolve(g, boxes, 152, 339, 0)
	if want := 200.0 - 46 + 9; res.Bounds.UpperX != want {
		t.Fatalf("UpperX = %v, want %v", res.Bounds.UpperX, want)
	}
	if res.Struck {
		t.Fatal("box beside the player struck it")
	}
}

func TestFallingBoxToTheLeftIsWall(t *testing.T) {
	g := newGrid(t)
	boxes := []*object.Box{fallingBox(2, 330)}

	res := newResolver().Resolve(g, boxes, 152, 339, 0)
	if want := 150.0 - 8; res.Bounds.LowerX != want {
		t.Fatalf("LowerX = %v, want %v", res.Bounds.LowerX, want)
	}
	if res.Bounds.UpperX != 374 {
		t.Errorf("UpperX = %v, want default 374", res.Bounds.UpperX)
	}
	if res.Struck {
		t.Fatal("box beside the player struck it")
	}
}

func TestFallingBoxAboveAnotherColumnAddsNoConstraint(t *testing.T) {
	g := newGrid(t)
	boxes := []*object.Box{fallingBox(4, 200), fallingBox(2, 150)}

	res := newResolver().Resolve(g, boxes, 152, 339, 0)
	want := Bounds{LowerX: -20, UpperX: 374, LowerY: 80, UpperY: 439}
	if res.Bounds != want {
		t.Fatalf("bounds = %+v, want %+v", res.Bounds, want)
	}
}

func TestFallingBoxInNeighbouringColumnDoesNotStrike(t *testing.T) {
	g := newGrid(t)
	// The sprite spans 79..125, its centre is in column 2 and its tail is over
	// column 1.
	boxes := []*object.Box{fallingBox(1, 400)}

	res := newResolver().Resolve(g, boxes, 79, 439, 0)
	if res.Column != 2 {
		t.Fatalf("player column = %d, want 2", res.Column)
	}
	if res.Struck {
		t.Fatalf("struck by a box in column 1, bounds %+v", res.Bounds)
	}
	if res.Bounds.LowerY != 80 {
		t.Errorf("LowerY = %v, want default 80", res.Bounds.LowerY)
	}
	if want := 100.0 - 8; res.Bounds.LowerX != want {
		t.Errorf("LowerX = %v, want %v", res.Bounds.LowerX, want)
	}
}

func TestPlayerBesideFieldIsNotStruck(t *testing.T) {
	g := newGrid(t)
	boxes := []*object.Box{fallingBox(0, 400)}

	r := NewResolver(object.Geometry{Width: 46, Height: 46, Trailing: 8, Leading: 9, Overhang: 100}, 80)
	res := r.Resolve(g, boxes, -60, 439, 0)
	if res.Column != 0 {
		t.Fatalf("player column = %d, want clamped 0", res.Column)
	}
	if res.Struck {
		t.Fatal("player beside the field was struck")
	}
}

func TestOutOfRangeRowsAddNoConstraint(t *testing.T) {
	g := newGrid(t)
	g.MarkSettled(5, 4)

	res := newResolver().Resolve(g, nil, 152, -200, 300)
	if res.InRange {
		t.Fatalf("row %d reported in range", res.Row)
	}
	if res.Bounds.UpperX != 374 {
		t.Fatalf("UpperX = %v, want default", res.Bounds.UpperX)
	}
}

func TestBoundsNeverInvert(t *testing.T) {
	g := newGrid(t)
	r := newResolver()
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 2000; i++ {
		g.Reset()
		for n := rng.Intn(20); n > 0; n-- {
			g.MarkSettled(rng.Intn(8), rng.Intn(8))
		}
		var boxes []*object.Box
		for col := 0; col < 8; col++ {
			if rng.Intn(3) == 0 {
				boxes = append(boxes, fallingBox(col, rng.Float64()*480-40))
			}
		}
		x := rng.Float64()*440 - 30
		y := rng.Float64()*500 - 50

		b := r.Resolve(g, boxes, x, y, rng.Float64()*100).Bounds
		if b.LowerX > b.UpperX || b.LowerY > b.UpperY {
			t.Fatalf("iteration %d: inverted bounds %+v", i, b)
		}
	}
}
