package object

// WarningBoard decides when the next batch's columns are announced.
// After each completed batch the signs stay hidden for a lead time, then show the
// lookahead columns and flicker. The lead shrinks as levels go by.
type WarningBoard struct {
	InitialWait  int // Ticks hidden at the start of a round
	Lead         int // Ticks hidden after a batch at level 1
	LeadStep     int // Ticks removed from the lead per level
	MinLead      int // Lower limit of the lead
	FlickerTicks int // Ticks between flicker toggles

	wait    int
	counter int
	flicker bool
	signs   []bool
}

// NewWarningBoard creates a board for the given number of columns.
func NewWarningBoard(columns, initialWait, lead, leadStep, minLead int) *WarningBoard {
	w := &WarningBoard{
		InitialWait:  initialWait,
		Lead:         lead,
		LeadStep:     leadStep,
		MinLead:      minLead,
		FlickerTicks: 15,
		signs:        make([]bool, columns),
	}
	w.Reset()
	return w
}

// Reset hides the board for the initial wait.
func (w *WarningBoard) Reset() {
	w.wait = w.InitialWait
	w.counter = 0
	w.flicker = false
	clear(w.signs)
}

// LeadFor returns the hidden time after a batch at the given level (1-based).
func (w *WarningBoard) LeadFor(level int) int {
	lead := w.Lead - (level-1)*w.LeadStep
	if lead < w.MinLead {
		return w.MinLead
	}
	return lead
}

// Update advances the board by one tick. batchDone restarts the lead time;
// next is the lookahead for the coming batch.
func (w *WarningBoard) Update(batchDone bool, level int, next []bool) {
	if batchDone {
		w.wait = w.LeadFor(level)
	}
	if w.wait > 0 {
		w.wait--
	}
	if w.wait > 0 {
		w.counter = 0
		clear(w.signs)
		return
	}

	copy(w.signs, next)
	w.counter++
	if w.FlickerTicks > 0 && w.counter%w.FlickerTicks == 0 {
		w.flicker = !w.flicker
	}
}

// Visible reports whether the signs are showing.
func (w *WarningBoard) Visible() bool {
	return w.wait == 0
}

// Flicker returns the current blink phase of the signs.
func (w *WarningBoard) Flicker() bool {
	return w.flicker
}

// Signs returns a copy of the columns being announced. All false while hidden.
func (w *WarningBoard) Signs() []bool {
	out := make([]bool, len(w.signs))
	copy(out, w.signs)
	return out
}
