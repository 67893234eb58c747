// Package round runs one game: boxes drop, the stack grows, the view scrolls and
// the player dodges until a box lands on them or enough levels are cleared.
package round

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/boxfall/internal/collision"
	"github.com/tomz197/boxfall/internal/deploy"
	"github.com/tomz197/boxfall/internal/object"
	"github.com/tomz197/boxfall/internal/physics"
)

// Phase is where a round stands.
type Phase int

const (
	Playing Phase = iota
	Won
	Lost
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// TickResult summarizes one tick.
type TickResult struct {
	PlayerAlive    bool
	LevelCompleted bool
	Phase          Phase
}

// Option configures a Round.
type Option func(*Round)

// WithLogger sets the logger for round events.
func WithLogger(logger *log.Logger) Option {
	return func(r *Round) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRandom replaces the seeded random source.
func WithRandom(rng deploy.RandomSource) Option {
	return func(r *Round) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// Round owns all state of one game. It is not safe for concurrent use.
type Round struct {
	cfg    Config
	logger *log.Logger
	rng    deploy.RandomSource

	grid     *physics.Grid
	sched    *deploy.Scheduler
	resolver *collision.Resolver
	warnings *object.WarningBoard
	bird     *object.Bird

	score    Score
	scroller Scroller
	scroll   float64
	intent   object.Intent
	bounds   collision.Bounds
	contact  bool
	phase    Phase
	level    int
	ticks    int
	stacked  []object.Rect
}

// New validates cfg and starts a round.
func New(cfg Config, opts ...Option) (*Round, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lattice, err := physics.NewLattice(cfg.Columns, cfg.Rows, cfg.CellSize, cfg.GroundY)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	r := &Round{
		cfg:      cfg,
		logger:   log.New(io.Discard),
		grid:     physics.NewGrid(lattice),
		resolver: collision.NewResolver(cfg.Player, cfg.Headroom),
		warnings: object.NewWarningBoard(cfg.Columns, cfg.WarningInitial, cfg.WarningLead, cfg.WarningLeadStep, cfg.WarningMinLead),
		score:    Score{Interval: cfg.ScoreInterval},
		scroller: Scroller{
			Rate:         cfg.ScrollRate,
			CatchUpBase:  cfg.CatchUpBase,
			CatchUpRate:  cfg.CatchUpRate,
			CatchUpSpeed: cfg.CatchUpSpeed,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = deploy.NewRandom(cfg.Seed)
	}

	r.sched, err = deploy.NewScheduler(r.grid, r.rng, deploy.Params{
		FallAcceleration: cfg.FallAcceleration,
		MaxFallSpeed:     cfg.MaxFallSpeed,
		Padding:          cfg.BoxPadding,
	}, deploy.WithLogger(r.logger))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	r.NewRound()
	return r, nil
}

// NewRound discards the current game and starts over on an empty field.
func (r *Round) NewRound() {
	r.sched.Reset()
	r.warnings.Reset()
	r.score.Reset()
	r.scroller.Reset()
	r.scroll = 0

	r.bird = object.NewBird(r.cfg.PlayerStartX, r.grid.Ground()-r.cfg.Player.Height, r.cfg.Player)
	r.intent = object.IntentNone
	r.bounds = r.resolver.Defaults(r.grid.Lattice, 0)
	r.contact = false
	r.phase = Playing
	r.level = 1
	r.ticks = 0
	r.stacked = r.stacked[:0]
}

// SetIntent sets the direction the player moves in on following ticks.
func (r *Round) SetIntent(intent object.Intent) {
	r.intent = intent
}

// Step advances the round by one tick using its own scroller.
func (r *Round) Step() TickResult {
	if r.phase != Playing {
		return r.result(false)
	}
	return r.Tick(1, r.scroller.Advance(r.Seconds()))
}

// Tick advances the round by dt with the view scrolled up by scroll. Deployment
// and settling finish before the player is bounded. Once the round is over Tick
// does nothing.
func (r *Round) Tick(dt, scroll float64) TickResult {
	if r.phase != Playing {
		return r.result(false)
	}
	r.ticks++
	r.scroll = scroll
	seconds := r.Seconds()

	rep := r.sched.Advance(dt*r.cfg.fallScale(seconds), scroll)
	for _, l := range rep.Landed {
		r.stacked = append(r.stacked, r.boxRect(l.X, l.Y))
	}
	if rep.BatchDone {
		r.score.Queue(rep.Settled)
	}
	if rep.LevelCleared {
		r.level++
		r.scroller.LevelUp(seconds)
		r.logger.Info("level cleared", "level", r.level, "score", r.score.Points())
	}
	r.warnings.Update(rep.BatchDone, r.level, r.sched.NextBatch())
	r.score.Tick()

	if r.bird.IsAlive() {
		res := r.resolver.Resolve(r.grid, r.sched.Boxes(), r.bird.X, r.bird.Y, scroll)
		r.bounds = res.Bounds
		r.contact = res.Contact
		if res.Struck {
			r.bird.Strike()
			r.bird.Stop()
			r.logger.Info("player struck", "level", r.level, "column", res.Column, "row", res.Row)
		} else {
			r.bird.Move(r.intent, res.Contact)
			r.bird.Step(dt, res.Bounds)
		}
	}

	switch {
	case r.bird.WasStruck():
		if r.sched.BatchComplete() || rep.LevelCleared {
			r.bird.Remove()
			r.phase = Lost
			r.logger.Info("round lost", "level", r.level, "score", r.score.Points(), "ticks", r.ticks)
		}
	case r.level >= r.cfg.LevelsToWin:
		r.phase = Won
		r.logger.Info("round won", "score", r.score.Points(), "ticks", r.ticks)
	}
	return r.result(rep.LevelCleared)
}

func (r *Round) result(levelCompleted bool) TickResult {
	return TickResult{
		PlayerAlive:    r.bird.IsAlive(),
		LevelCompleted: levelCompleted,
		Phase:          r.phase,
	}
}

func (r *Round) boxRect(x, y float64) object.Rect {
	return object.Rect{X: x, Y: y, W: r.cfg.CellSize - 2*r.cfg.BoxPadding, H: r.cfg.CellSize}
}

// Footprint returns a copy of the grid of the current level.
func (r *Round) Footprint() physics.Footprint {
	return r.grid.Footprint()
}

// Lookahead returns which columns drop in the next batch.
func (r *Round) Lookahead() []bool {
	return r.sched.NextBatch()
}

// PlayerBounds returns the envelope computed on the last tick.
func (r *Round) PlayerBounds() collision.Bounds {
	return r.bounds
}

// WasPlayerStruck reports whether a box has hit the player this round.
func (r *Round) WasPlayerStruck() bool {
	return r.bird.WasStruck()
}

// Stacked returns the rectangles of every box that settled this round, across
// level transitions.
func (r *Round) Stacked() []object.Rect {
	out := make([]object.Rect, len(r.stacked))
	copy(out, r.stacked)
	return out
}

// Phase returns the round's phase.
func (r *Round) Phase() Phase { return r.phase }

// Level returns the current level, starting at 1.
func (r *Round) Level() int { return r.level }

// Score returns the credited points.
func (r *Round) Score() int { return r.score.Points() }

// Ticks returns how many ticks have been played.
func (r *Round) Ticks() int { return r.ticks }

// Seconds returns the played time.
func (r *Round) Seconds() float64 {
	return float64(r.ticks) / float64(r.cfg.TicksPerSecond)
}

// Scroll returns the view offset used by the last tick.
func (r *Round) Scroll() float64 { return r.scroll }

// Config returns the configuration the round was built with.
func (r *Round) Config() Config { return r.cfg }
