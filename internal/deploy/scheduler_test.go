package deploy

import (
	"errors"
	"testing"

	"github.com/tomz197/boxfall/internal/physics"
)

// constRandom always flips the same way and always picks index 0.
type constRandom bool

func (c constRandom) Bool() bool   { return bool(c) }
func (c constRandom) Intn(int) int { return 0 }

func testParams() Params {
	return Params{FallAcceleration: 0.0481, MaxFallSpeed: 12, Padding: 0.5}
}

func newTestScheduler(t *testing.T, groundY float64, rng RandomSource) *Scheduler {
	t.Helper()
	l, err := physics.NewLattice(8, 8, 50, groundY)
	if err != nil {
		t.Fatalf("NewLattice: %v", err)
	}
	s, err := NewScheduler(physics.NewGrid(l), rng, testParams())
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	return s
}

func armAll(s *Scheduler) {
	for _, b := range s.Boxes() {
		b.Arm(true)
	}
}

// runBatch advances until the current batch completes and returns that report.
func runBatch(t *testing.T, s *Scheduler) Report {
	t.Helper()
	for i := 0; i < 5000; i++ {
		r := s.Advance(1, 0)
		if r.BatchDone {
			return r
		}
	}
	t.Fatal("batch never completed")
	return Report{}
}

func TestFullBatchSettlesAndImportsOnce(t *testing.T) {
	s := newTestScheduler(t, 435, NewRandom(1))
	armAll(s)
	for _, b := range s.Boxes() {
		if b.RestY() != 385 {
			t.Fatalf("rest line = %v, want 385", b.RestY())
		}
	}

	r := runBatch(t, s)
	if r.Imported {
		t.Fatal("import happened in the tick the batch completed")
	}
	for i, b := range s.Boxes() {
		if b.IsAirborne() {
			t.Fatalf("column %d still airborne", i)
		}
	}
	if got := s.AmountOnGround(); got != 8 {
		t.Fatalf("AmountOnGround = %d, want 8", got)
	}
	if got := s.Grid().Count(); got != 8 {
		t.Fatalf("grid holds %d cells, want 8", got)
	}
	if !s.Grid().IsRowFull(7) {
		t.Fatal("bottom row not full")
	}
	if s.Imports() != 0 {
		t.Fatalf("Imports = %d before the next tick, want 0", s.Imports())
	}

	r = s.Advance(1, 0)
	if !r.Imported || s.Imports() != 1 {
		t.Fatalf("next tick: Imported = %v, Imports = %d, want one import", r.Imported, s.Imports())
	}
	for i, b := range s.Boxes() {
		if b.RestY() != 335 {
			t.Fatalf("column %d rest line = %v, want 335", i, b.RestY())
		}
	}

	if s.Expected() == 0 {
		// Nothing armed in the new batch, so it is already complete.
		return
	}
	r = s.Advance(1, 0)
	if r.Imported || s.Imports() != 1 {
		t.Fatalf("second tick after completion imported again (Imports = %d)", s.Imports())
	}
}

func TestOnlySettledColumnsGetNewBoxes(t *testing.T) {
	s := newTestScheduler(t, 485, NewRandom(7))
	for i, b := range s.Boxes() {
		b.Arm(i%2 == 0)
	}
	runBatch(t, s)
	s.Advance(1, 0)

	for i, b := range s.Boxes() {
		want := 435.0
		if i%2 == 0 {
			want = 385
		}
		if b.RestY() != want {
			t.Errorf("column %d rest line = %v, want %v", i, b.RestY(), want)
		}
	}
}

func TestBatchInvariantHolds(t *testing.T) {
	s := newTestScheduler(t, 485, NewRandom(42))
	batches := 0
	for tick := 0; tick < 20000 && batches < 12; tick++ {
		r := s.Advance(2, 0)
		if got := s.AmountOnGround(); got > s.Grid().Columns() {
			t.Fatalf("tick %d: %d on ground, more than the columns", tick, got)
		}
		if got := s.AmountOnGround(); got > s.Expected() {
			t.Fatalf("tick %d: settled %d > expected %d", tick, got, s.Expected())
		}
		if r.BatchDone {
			batches++
		}
	}
	if batches < 12 {
		t.Fatalf("only %d batches completed", batches)
	}
}

func TestLevelClearsWhenCeilingFills(t *testing.T) {
	s := newTestScheduler(t, 485, NewRandom(3))
	cleared := false
	for tick := 0; tick < 200000 && !cleared; tick++ {
		if r := s.Advance(4, 0); r.LevelCleared {
			cleared = true
			if !r.BatchDone {
				t.Fatal("level cleared without completing the batch")
			}
		}
	}
	if !cleared {
		t.Fatal("level never cleared")
	}
	if got := s.Grid().Level(); got != 1 {
		t.Fatalf("grid level = %d, want 1", got)
	}
	if got := s.Grid().Count(); got != 0 {
		t.Fatalf("grid holds %d cells after the transition, want 0", got)
	}
	if s.BatchComplete() {
		t.Fatal("import still pending after the transition")
	}
	for i, b := range s.Boxes() {
		if row := s.Grid().RowOf(b.RestY() + 50); row != 7 {
			t.Errorf("column %d rests in row %d of the new level, want 7", i, row)
		}
	}
}

func TestNextBatchIsCopied(t *testing.T) {
	s := newTestScheduler(t, 485, NewRandom(5))
	next := s.NextBatch()
	next[0] = !next[0]
	if s.NextBatch()[0] == next[0] {
		t.Fatal("NextBatch exposed internal state")
	}
}

func TestNewSchedulerRejectsBadParams(t *testing.T) {
	l, err := physics.NewLattice(8, 8, 50, 485)
	if err != nil {
		t.Fatalf("NewLattice: %v", err)
	}
	tests := []struct {
		name   string
		params Params
	}{
		{"zero acceleration", Params{FallAcceleration: 0, MaxFallSpeed: 12}},
		{"negative speed", Params{FallAcceleration: 1, MaxFallSpeed: -1}},
		{"padding wider than cell", Params{FallAcceleration: 1, MaxFallSpeed: 12, Padding: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScheduler(physics.NewGrid(l), NewRandom(1), tt.params)
			if !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("err = %v, want ErrInvalidParams", err)
			}
		})
	}
}
