package loop

import (
	"fmt"

	"github.com/tomz197/boxfall/internal/draw"
	"github.com/tomz197/boxfall/internal/loop/config"
	"github.com/tomz197/boxfall/internal/object"
	"github.com/tomz197/boxfall/internal/round"
)

// boxGap separates neighbouring boxes so the stack reads as separate crates.
const boxGap = 3.0

// drawFrame draws the field and the overlay for the current screen, then flushes
// it as one write.
func (s *Session) drawFrame() error {
	snap := s.round.Snapshot()
	cfg := s.round.Config()

	s.canvas.Clear()
	s.canvas.SetTop(config.ViewTop - snap.Scroll)

	// Ground reaches below the view
	s.canvas.FillRect(0, cfg.GroundY, snap.Width, config.ViewHeight)
	for _, b := range snap.Stacked {
		s.fillBox(b)
	}
	for _, b := range snap.Falling {
		s.fillBox(b)
	}
	if s.screen != ScreenStart && snap.PlayerState != object.Removed.String() {
		s.drawBird(snap)
	}
	if s.screen == ScreenPlaying && snap.WarningsVisible && snap.Flicker {
		s.drawWarnings(snap)
	}

	s.cw.WriteString("\033[H\033[2J")
	if err := s.canvas.Render(s.cw); err != nil {
		return err
	}
	s.drawOverlay(snap)
	return s.cw.Flush()
}

func (s *Session) fillBox(r object.Rect) {
	s.canvas.FillRect(r.X+boxGap/2, r.Y+boxGap/2, r.W-boxGap, r.H-boxGap)
}

// drawBird draws a body with a beak on the side the bird faces.
func (s *Session) drawBird(snap round.Snapshot) {
	p := snap.Player
	tail, beak := p.W*0.15, p.W*0.25
	bodyTop := p.Y + p.H*0.25
	mid := bodyTop + (p.Y+p.H-bodyTop)/2

	if snap.Facing == object.IntentLeft.String() {
		s.canvas.FillRect(p.X+beak, bodyTop, p.W-beak-tail, p.Y+p.H-bodyTop)
		s.canvas.FillPolygon([]draw.Point{{X: p.X + beak, Y: mid - 6}, {X: p.X, Y: mid}, {X: p.X + beak, Y: mid + 6}})
		return
	}
	s.canvas.FillRect(p.X+tail, bodyTop, p.W-beak-tail, p.Y+p.H-bodyTop)
	s.canvas.FillPolygon([]draw.Point{{X: p.X + p.W - beak, Y: mid - 6}, {X: p.X + p.W, Y: mid}, {X: p.X + p.W - beak, Y: mid + 6}})
}

// drawWarnings marks the columns of the next batch with triangles at the top of
// the view.
func (s *Session) drawWarnings(snap round.Snapshot) {
	y := config.ViewTop - snap.Scroll + 8
	for col, on := range snap.Warnings {
		if !on {
			continue
		}
		left := float64(col) * snap.CellSize
		s.canvas.FillPolygon([]draw.Point{
			{X: left + 8, Y: y},
			{X: left + snap.CellSize - 8, Y: y},
			{X: left + snap.CellSize/2, Y: y + 24},
		})
	}
}

func (s *Session) drawOverlay(snap round.Snapshot) {
	cols, rows := s.canvas.Size()
	center := func(row int, text string) {
		s.cw.WriteAt(max(cols/2-len(text)/2, 1), row, text)
	}
	mid := rows / 2

	switch s.screen {
	case ScreenStart:
		center(mid-3, "B O X F A L L")
		center(mid, "Press SPACE to start")
		center(mid+2, "A/D or arrows to move, push into a box to climb, Q to quit")
	case ScreenPlaying:
		s.cw.WriteAt(2, 1, fmt.Sprintf("Score: %d", snap.Score))
		level := fmt.Sprintf("Level %d/%d", snap.Level, s.round.Config().LevelsToWin)
		s.cw.WriteAt(max(cols-len(level), 1), 1, level)
	case ScreenOver:
		title := "GAME OVER"
		if snap.Phase == round.Won.String() {
			title = "YOU WIN"
		}
		center(mid-2, title)
		center(mid, fmt.Sprintf("Score: %d   Best: %d", snap.Score, s.best))
		if s.menuTicks >= config.MenuDelayTicks {
			center(mid+2, "Press SPACE to play again")
		}
	case ScreenShutdown:
		center(mid, "Server is shutting down")
	}

	if s.inactive && s.screen != ScreenShutdown {
		center(rows, "Still there? Press a key to stay connected")
	}
}
