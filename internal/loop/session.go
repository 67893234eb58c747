// Package loop runs a boxfall round in a terminal: it reads keys, steps the round
// at a fixed rate and draws every frame.
package loop

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/boxfall/internal/draw"
	"github.com/tomz197/boxfall/internal/input"
	"github.com/tomz197/boxfall/internal/loop/config"
	"github.com/tomz197/boxfall/internal/round"
)

// Options configures a Session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
	Logger       *log.Logger       // Defaults to a discard logger
	Round        round.Config      // Zero value means round.DefaultConfig
}

// Session is one player's terminal game.
type Session struct {
	round    *round.Round
	canvas   *draw.Canvas
	cw       *draw.ChunkWriter
	writer   io.Writer
	stream   *input.Stream
	termSize draw.TermSizeFunc
	logger   *log.Logger

	screen     Screen
	menuTicks  int
	best       int
	lastInput  time.Time
	inactive   bool
	shutdownAt time.Time
	running    bool
}

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r io.Reader, w io.Writer, opts Options) (*Session, error) {
	cfg := opts.Round
	if cfg == (round.Config{}) {
		cfg = round.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}

	rd, err := round.New(cfg, round.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create round: %w", err)
	}

	s := &Session{
		round:     rd,
		canvas:    draw.NewCanvas(1, 1, config.ViewWidth, config.ViewHeight),
		cw:        draw.NewChunkWriter(w, 0, 0),
		writer:    w,
		stream:    input.StartStream(r),
		termSize:  termSize,
		logger:    logger,
		screen:    ScreenStart,
		lastInput: time.Now(),
		running:   true,
	}
	s.updateScreen()
	return s, nil
}

// Run plays until the player quits, the input ends, the player idles out or the
// shutdown notice shown after ctx is cancelled has expired.
func (s *Session) Run(ctx context.Context) error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)

	ticker := time.NewTicker(config.TargetFrameTime)
	defer ticker.Stop()

	done := ctx.Done()
	for s.running {
		select {
		case <-done:
			s.beginShutdown(time.Now())
			done = nil
		case <-ticker.C:
		}

		s.update(s.stream.Read(), time.Now())
		s.updateScreen()
		if err := s.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}
	}

	draw.ClearScreen(s.writer)
	return nil
}

// update advances the session by one frame.
func (s *Session) update(in input.Input, now time.Time) {
	if in.Quit {
		s.running = false
		return
	}

	switch {
	case in.Any():
		s.lastInput = now
		s.inactive = false
	case now.Sub(s.lastInput) > config.InactivityDisconnectUser:
		s.logger.Info("disconnecting idle player")
		s.running = false
		return
	case now.Sub(s.lastInput) > config.InactivityWarnUser:
		s.inactive = true
	}

	switch s.screen {
	case ScreenStart:
		if in.Space || in.Enter {
			s.startRound()
		}
	case ScreenPlaying:
		s.round.SetIntent(in.Intent())
		if res := s.round.Step(); res.Phase != round.Playing {
			s.finishRound(res.Phase)
		}
	case ScreenOver:
		s.menuTicks++
		if s.menuTicks >= config.MenuDelayTicks && in.Any() {
			s.startRound()
		}
	case ScreenShutdown:
		if !now.Before(s.shutdownAt) {
			s.running = false
		}
	}
}

func (s *Session) startRound() {
	s.round.NewRound()
	s.screen = ScreenPlaying
	s.logger.Debug("round started")
}

func (s *Session) finishRound(phase round.Phase) {
	s.screen = ScreenOver
	s.menuTicks = 0
	s.best = max(s.best, s.round.Score())
	s.logger.Info("round finished", "phase", phase, "score", s.round.Score(), "level", s.round.Level(), "best", s.best)
}

func (s *Session) beginShutdown(now time.Time) {
	if s.screen == ScreenShutdown {
		return
	}
	s.screen = ScreenShutdown
	s.shutdownAt = now.Add(config.ShutdownDisplayTime)
}

// updateScreen fits the canvas to the terminal, centring it when the terminal is
// larger than the maximum render area. A size change clears the terminal.
func (s *Session) updateScreen() {
	termW, termH, err := s.termSize()
	if err != nil {
		return
	}
	areaW, areaH := min(termW, config.MaxTermWidth), min(termH, config.MaxTermHeight)
	w, h, offCol, offRow := draw.Fit(areaW, areaH, config.ViewWidth, config.ViewHeight)
	offCol += (termW - areaW) / 2
	offRow += (termH - areaH) / 2

	if cols, rows := s.canvas.Size(); cols != w || rows != h {
		draw.ClearScreen(s.writer)
	}
	s.canvas.Resize(w, h)
	s.canvas.SetOffset(offCol, offRow)
	s.cw.SetOffset(offCol, offRow)
}

// Screen returns the session's current screen.
func (s *Session) Screen() Screen {
	return s.screen
}

// Round returns the round played in this session.
func (s *Session) Round() *round.Round {
	return s.round
}
