// Package deploy drops boxes column by column and records them in the
// occupancy grid once they settle.
package deploy

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/boxfall/internal/object"
	"github.com/tomz197/boxfall/internal/physics"
)

// ErrInvalidParams is returned by NewScheduler for unusable parameters.
var ErrInvalidParams = errors.New("deploy: invalid parameters")

// Params tunes the boxes a scheduler creates.
type Params struct {
	FallAcceleration float64 // Added to a box's downward speed every step
	MaxFallSpeed     float64 // Cap on a box's downward speed
	Padding          float64 // Gap between a column's left edge and its box
}

// Landing describes a box that settled during an Advance.
type Landing struct {
	Column int     `json:"column"`
	Row    int     `json:"row"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Report is what happened during one Advance.
type Report struct {
	Imported     bool      // A new batch was loaded at the start of the tick
	BatchDone    bool      // Every box of the batch has settled
	LevelCleared bool      // The ceiling row filled and the grid moved up a level
	Settled      int       // Boxes of the batch on the ground after the tick
	Landed       []Landing // Boxes that settled during the tick
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for batch events.
func WithLogger(logger *log.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Scheduler owns one box per column and decides which of them fall.
//
// A batch is the set of boxes armed when it was imported. The first Advance after
// an import counts how many of them can actually drop; once that many have
// settled the batch is complete, and the next one is imported at the start of the
// following Advance so the finished state stays observable for one tick.
type Scheduler struct {
	grid   *physics.Grid
	rng    RandomSource
	params Params
	logger *log.Logger

	boxes    []*object.Box
	next     []bool // Pre-rolled arms for the batch after this one
	onGround []bool // Per column: released this batch and settled

	expected  int  // Boxes dropping in the current batch
	firstPass bool // The next Advance is the first of the batch
	pending   bool // Batch done, import on the next Advance
	imports   int  // Batches imported since Reset
}

// NewScheduler creates a scheduler over grid and loads the first batch.
func NewScheduler(grid *physics.Grid, rng RandomSource, params Params, opts ...Option) (*Scheduler, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: grid is nil", ErrInvalidParams)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: random source is nil", ErrInvalidParams)
	}
	if !(params.FallAcceleration > 0) {
		return nil, fmt.Errorf("%w: fall acceleration must be positive, got %v", ErrInvalidParams, params.FallAcceleration)
	}
	if !(params.MaxFallSpeed > 0) {
		return nil, fmt.Errorf("%w: max fall speed must be positive, got %v", ErrInvalidParams, params.MaxFallSpeed)
	}
	if params.Padding < 0 || params.Padding >= grid.CellSize() {
		return nil, fmt.Errorf("%w: padding %v does not fit a cell of %v", ErrInvalidParams, params.Padding, grid.CellSize())
	}

	s := &Scheduler{
		grid:     grid,
		rng:      rng,
		params:   params,
		logger:   log.New(io.Discard),
		boxes:    make([]*object.Box, grid.Columns()),
		next:     make([]bool, grid.Columns()),
		onGround: make([]bool, grid.Columns()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s, nil
}

// Reset empties the grid and loads a fresh first batch standing on the ground.
func (s *Scheduler) Reset() {
	s.grid.Reset()
	rest := s.grid.Ground() - s.grid.CellSize()
	for i := range s.boxes {
		s.boxes[i] = s.newBox(i, rest)
		s.boxes[i].Arm(s.rng.Bool())
		s.next[i] = s.rng.Bool()
		s.onGround[i] = false
	}
	s.imports = 0
	s.startBatch()
}

// Advance runs one tick: a pending import first, then every armed column whose
// ceiling is free is released by dt. scroll is how far the view has moved up;
// boxes start falling from the top of the view.
func (s *Scheduler) Advance(dt, scroll float64) Report {
	var r Report
	if s.pending {
		s.importBatch()
		r.Imported = true
	}

	size := s.grid.CellSize()
	for i, b := range s.boxes {
		if !b.Armed() || s.grid.IsOccupied(physics.CeilingRow, i) {
			continue
		}
		if s.firstPass {
			s.expected++
		}

		b.SetDropPosition(-scroll)
		b.Release(dt)

		settled := !b.IsAirborne()
		if settled && !s.onGround[i] {
			row := s.grid.RowOf(b.Y + size)
			if !s.grid.MarkSettled(row, i) {
				s.logger.Debug("box settled outside the level", "column", i, "row", row, "y", b.Y)
			}
			r.Landed = append(r.Landed, Landing{Column: i, Row: row, X: b.X, Y: b.Y})
		}
		s.onGround[i] = settled
	}
	s.firstPass = false

	r.Settled = checkSettled(s.logger, s.AmountOnGround(), s.expected)

	if s.grid.IsLevelFull() {
		s.grid.Resize()
		s.importBatch()
		r.BatchDone = true
		r.LevelCleared = true
		s.logger.Debug("level cleared", "level", s.grid.Level())
		return r
	}
	if !s.pending && r.Settled == s.expected {
		s.pending = true
		r.BatchDone = true
	}
	return r
}

// importBatch replaces every settled box with one resting a cell higher, arms
// all columns from the lookahead and rolls a new lookahead.
func (s *Scheduler) importBatch() {
	for i, b := range s.boxes {
		if b.Released() && !b.IsAirborne() {
			s.boxes[i] = s.newBox(i, b.RestY()-s.grid.CellSize())
		}
		s.boxes[i].Arm(s.next[i])
		s.next[i] = s.rng.Bool()
		s.onGround[i] = false
	}
	s.imports++
	s.startBatch()
	s.logger.Debug("batch imported", "imports", s.imports, "next", s.next)
}

func (s *Scheduler) startBatch() {
	armed := make([]bool, len(s.boxes))
	open := make([]bool, len(s.boxes))
	for i, b := range s.boxes {
		armed[i] = b.Armed()
		open[i] = !s.grid.IsOccupied(physics.CeilingRow, i)
	}
	if EnsureFairness(armed, open, s.rng) {
		for i, b := range s.boxes {
			b.Arm(armed[i])
		}
	}
	s.expected = 0
	s.firstPass = true
	s.pending = false
}

func (s *Scheduler) newBox(column int, restY float64) *object.Box {
	x := s.grid.CellLeft(column) + s.params.Padding
	return object.NewBox(column, x, restY, s.params.FallAcceleration, s.params.MaxFallSpeed)
}

// Grid returns the occupancy grid the scheduler writes to.
func (s *Scheduler) Grid() *physics.Grid {
	return s.grid
}

// Boxes returns the current box of every column, indexed by column.
func (s *Scheduler) Boxes() []*object.Box {
	out := make([]*object.Box, len(s.boxes))
	copy(out, s.boxes)
	return out
}

// Box returns the current box of a column.
func (s *Scheduler) Box(column int) *object.Box {
	return s.boxes[column]
}

// NextBatch returns the pre-rolled arms of the next batch.
func (s *Scheduler) NextBatch() []bool {
	out := make([]bool, len(s.next))
	copy(out, s.next)
	return out
}

// OnGround reports whether a column's box was released this batch and settled.
func (s *Scheduler) OnGround(column int) bool {
	return s.onGround[column]
}

// AmountOnGround returns how many boxes of the current batch have settled.
func (s *Scheduler) AmountOnGround() int {
	n := 0
	for _, g := range s.onGround {
		if g {
			n++
		}
	}
	return n
}

// Expected returns how many boxes the current batch drops. It is zero until the
// first Advance of the batch has counted them.
func (s *Scheduler) Expected() int {
	return s.expected
}

// BatchComplete reports whether the current batch has fully settled.
func (s *Scheduler) BatchComplete() bool {
	return s.pending
}

// Imports returns the number of batches imported since Reset.
func (s *Scheduler) Imports() int {
	return s.imports
}
