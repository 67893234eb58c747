package round

// Score credits points gradually: completed batches queue points and one queued
// point is paid out every Interval ticks.
type Score struct {
	Interval int

	points  int
	queued  int
	counter int
}

// Queue adds n points to be credited.
func (s *Score) Queue(n int) {
	if n > 0 {
		s.queued += n
	}
}

// Tick advances the payout counter by one tick.
func (s *Score) Tick() {
	s.counter++
	if s.Interval > 0 && s.counter%s.Interval == 0 && s.queued > 0 {
		s.points++
		s.queued--
	}
}

// Points returns the credited score.
func (s *Score) Points() int { return s.points }

// Queued returns the points still waiting to be credited.
func (s *Score) Queued() int { return s.queued }

// Reset zeroes the score.
func (s *Score) Reset() {
	s.points, s.queued, s.counter = 0, 0, 0
}
