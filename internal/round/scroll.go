package round

// Scroller moves the view up as the round goes on. The speed grows with time and
// each cleared level schedules an extra catch-up distance.
type Scroller struct {
	Rate         float64 // Per-tick growth per 100 seconds of play
	CatchUpBase  float64
	CatchUpRate  float64 // Extra catch-up per 100 seconds of play
	CatchUpSpeed float64 // Catch-up distance covered per tick

	offset float64
	goal   float64
}

// Advance moves the view for one tick at the given round time and returns the
// new offset.
func (s *Scroller) Advance(seconds float64) float64 {
	s.offset += s.Rate * (seconds / 100)
	if s.offset < s.goal {
		s.offset = min(s.offset+s.CatchUpSpeed, s.goal)
	}
	return s.offset
}

// LevelUp schedules the catch-up after a level was cleared.
func (s *Scroller) LevelUp(seconds float64) {
	s.goal = s.offset + s.CatchUpBase + s.CatchUpRate*(seconds/100)
}

// CatchingUp reports whether a catch-up is in progress.
func (s *Scroller) CatchingUp() bool {
	return s.offset < s.goal
}

// Offset returns how far the view has moved up.
func (s *Scroller) Offset() float64 { return s.offset }

// Reset returns the view to the start.
func (s *Scroller) Reset() {
	s.offset, s.goal = 0, 0
}
