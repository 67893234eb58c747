package round

import "github.com/tomz197/boxfall/internal/object"

// Snapshot is a read-only view of a round for drawing and for the network.
type Snapshot struct {
	Phase    string  `json:"phase"`
	Level    int     `json:"level"`
	Score    int     `json:"score"`
	Ticks    int     `json:"ticks"`
	Scroll   float64 `json:"scroll"`
	Width    float64 `json:"width"`
	Ground   float64 `json:"ground"`
	CellSize float64 `json:"cellSize"`

	Player      object.Rect `json:"player"`
	PlayerState string      `json:"playerState"`
	Facing      string      `json:"facing"`
	Climbing    bool        `json:"climbing"`

	Falling []object.Rect `json:"falling"`
	Stacked []object.Rect `json:"stacked"`

	Warnings        []bool `json:"warnings"`
	WarningsVisible bool   `json:"warningsVisible"`
	Flicker         bool   `json:"flicker"`

	Envelope object.Rect `json:"envelope"` // Player bounds as a rectangle of positions
}

// Snapshot captures the round's current state.
func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		Phase:    r.phase.String(),
		Level:    r.level,
		Score:    r.score.Points(),
		Ticks:    r.ticks,
		Scroll:   r.scroll,
		Width:    r.grid.Width(),
		Ground:   r.grid.Ground(),
		CellSize: r.grid.CellSize(),

		Player:      r.bird.Rect(),
		PlayerState: r.bird.State().String(),
		Facing:      r.bird.Facing.String(),
		Climbing:    r.bird.Climbing,

		Stacked: r.Stacked(),

		Warnings:        r.warnings.Signs(),
		WarningsVisible: r.warnings.Visible(),
		Flicker:         r.warnings.Flicker(),
	}
	for _, b := range r.sched.Boxes() {
		if b.InFlight() {
			s.Falling = append(s.Falling, r.boxRect(b.X, b.Y))
		}
	}
	s.Envelope = object.Rect{
		X: r.bounds.LowerX,
		Y: r.bounds.LowerY,
		W: r.bounds.UpperX - r.bounds.LowerX,
		H: r.bounds.UpperY - r.bounds.LowerY,
	}
	return s
}
