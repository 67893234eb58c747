package round

import (
	"errors"
	"fmt"

	"github.com/tomz197/boxfall/internal/object"
)

// ErrInvalidConfig is returned by New and Config.Validate.
var ErrInvalidConfig = errors.New("round: invalid config")

// Config holds every tuning value of a round. Distances are in play-field units,
// durations in ticks unless noted.
type Config struct {
	Columns  int     `json:"columns"`
	Rows     int     `json:"rows"`
	CellSize float64 `json:"cellSize"`
	GroundY  float64 `json:"groundY"`

	FallAcceleration float64 `json:"fallAcceleration"`
	MaxFallSpeed     float64 `json:"maxFallSpeed"`
	BoxPadding       float64 `json:"boxPadding"`

	// Fall speed scales with round time: clamp(base + ramp*seconds, base, max).
	FallTimeBase float64 `json:"fallTimeBase"`
	FallTimeRamp float64 `json:"fallTimeRamp"`
	FallTimeMax  float64 `json:"fallTimeMax"`

	// LevelsToWin counts the starting level: the round is won on reaching it, so
	// LevelsToWin-1 levels must be cleared.
	LevelsToWin int `json:"levelsToWin"`

	Player       object.Geometry `json:"player"`
	PlayerStartX float64         `json:"playerStartX"`
	Headroom     float64         `json:"headroom"`

	TicksPerSecond int `json:"ticksPerSecond"`
	ScoreInterval  int `json:"scoreInterval"`

	ScrollRate      float64 `json:"scrollRate"`
	CatchUpBase     float64 `json:"catchUpBase"`
	CatchUpRate     float64 `json:"catchUpRate"`
	CatchUpSpeed    float64 `json:"catchUpSpeed"`
	WarningInitial  int     `json:"warningInitial"`
	WarningLead     int     `json:"warningLead"`
	WarningLeadStep int     `json:"warningLeadStep"`
	WarningMinLead  int     `json:"warningMinLead"`

	Seed int64 `json:"seed"`
}

// DefaultConfig returns the classic 400 wide field with eight columns.
func DefaultConfig() Config {
	return Config{
		Columns:  8,
		Rows:     8,
		CellSize: 50,
		GroundY:  485,

		FallAcceleration: 0.0481,
		MaxFallSpeed:     12,
		BoxPadding:       0.5,

		FallTimeBase: 0.5,
		FallTimeRamp: 0.01,
		FallTimeMax:  2.0,

		LevelsToWin: 5,

		Player:       object.DefaultGeometry(),
		PlayerStartX: 300,
		Headroom:     80,

		TicksPerSecond: 60,
		ScoreInterval:  8,

		ScrollRate:      0.122,
		CatchUpBase:     100,
		CatchUpRate:     50,
		CatchUpSpeed:    0.5,
		WarningInitial:  300,
		WarningLead:     50,
		WarningLeadStep: 10,
		WarningMinLead:  10,
	}
}

// Validate reports the first unusable value, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	switch {
	case c.Columns < 1:
		return fail("columns must be positive, got %d", c.Columns)
	case c.Rows < 2:
		return fail("need at least 2 rows, got %d", c.Rows)
	case !(c.CellSize > 0):
		return fail("cell size must be positive, got %v", c.CellSize)
	case !(c.FallAcceleration > 0):
		return fail("fall acceleration must be positive, got %v", c.FallAcceleration)
	case !(c.MaxFallSpeed > 0):
		return fail("max fall speed must be positive, got %v", c.MaxFallSpeed)
	case c.BoxPadding < 0 || 2*c.BoxPadding >= c.CellSize:
		return fail("box padding %v does not fit a cell of %v", c.BoxPadding, c.CellSize)
	case !(c.FallTimeBase > 0) || c.FallTimeMax < c.FallTimeBase || c.FallTimeRamp < 0:
		return fail("fall time ramp %v..%v by %v is unusable", c.FallTimeBase, c.FallTimeMax, c.FallTimeRamp)
	case c.LevelsToWin < 2:
		return fail("levels to win must be at least 2, play starts on level 1, got %d", c.LevelsToWin)
	case !(c.Player.Width > 0) || !(c.Player.Height > 0):
		return fail("player size %vx%v must be positive", c.Player.Width, c.Player.Height)
	case c.Player.Width > float64(c.Columns)*c.CellSize:
		return fail("player width %v exceeds field width", c.Player.Width)
	case c.Player.Trailing < 0 || c.Player.Leading < 0 || c.Player.Overhang < 0:
		return fail("player edge margins must not be negative")
	case c.TicksPerSecond < 1:
		return fail("ticks per second must be positive, got %d", c.TicksPerSecond)
	case c.ScoreInterval < 1:
		return fail("score interval must be positive, got %d", c.ScoreInterval)
	case c.ScrollRate < 0 || c.CatchUpSpeed <= 0:
		return fail("scroll rate %v and catch-up speed %v are unusable", c.ScrollRate, c.CatchUpSpeed)
	case c.WarningInitial < 0 || c.WarningLead < 0 || c.WarningLeadStep < 0 || c.WarningMinLead < 0:
		return fail("warning timings must not be negative")
	}
	return nil
}

// fallScale returns the multiplier applied to box time steps after seconds of play.
func (c Config) fallScale(seconds float64) float64 {
	s := c.FallTimeBase + c.FallTimeRamp*seconds
	return min(max(s, c.FallTimeBase), c.FallTimeMax)
}
