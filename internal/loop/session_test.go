package loop

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/boxfall/internal/input"
	"github.com/tomz197/boxfall/internal/loop/config"
	"github.com/tomz197/boxfall/internal/round"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func newTestSession(t *testing.T, r io.Reader, w io.Writer) *Session {
	t.Helper()
	cfg := round.DefaultConfig()
	cfg.Seed = 11
	s, err := NewSession(r, w, Options{TermSizeFunc: fixedSize(80, 40), Round: cfg})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestSessionPlaysAndRestarts(t *testing.T) {
	s := newTestSession(t, strings.NewReader(""), io.Discard)
	now := time.Now()

	s.update(input.Input{Left: true}, now)
	if s.Screen() != ScreenStart {
		t.Fatal("arrow key left the title screen")
	}
	s.update(input.Input{Space: true}, now)
	if s.Screen() != ScreenPlaying {
		t.Fatalf("screen = %v, want playing", s.Screen())
	}

	for i := 0; i < 50000 && s.Screen() == ScreenPlaying; i++ {
		s.update(input.Input{Space: true}, now)
	}
	if s.Screen() != ScreenOver {
		t.Fatalf("screen = %v, want over", s.Screen())
	}

	s.update(input.Input{Space: true}, now)
	if s.Screen() != ScreenOver {
		t.Fatal("restart accepted during the menu delay")
	}
	for i := 0; i < config.MenuDelayTicks; i++ {
		s.update(input.Input{Space: true}, now)
	}
	if s.Screen() != ScreenPlaying {
		t.Fatalf("screen = %v after the menu delay, want playing", s.Screen())
	}
	if s.Round().WasPlayerStruck() || s.Round().Ticks() > 1 {
		t.Fatal("restart did not begin a fresh round")
	}
}

func TestSessionQuit(t *testing.T) {
	s := newTestSession(t, strings.NewReader(""), io.Discard)
	s.update(input.Input{Quit: true}, time.Now())
	if s.running {
		t.Fatal("session still running after quit")
	}
}

func TestSessionIdleDisconnect(t *testing.T) {
	s := newTestSession(t, strings.NewReader(""), io.Discard)
	start := s.lastInput

	s.update(input.Input{}, start.Add(config.InactivityWarnUser+time.Second))
	if !s.inactive || !s.running {
		t.Fatal("idle player not warned")
	}
	s.update(input.Input{}, start.Add(config.InactivityDisconnectUser+time.Second))
	if s.running {
		t.Fatal("idle player not disconnected")
	}
}

func TestSessionShutdownNotice(t *testing.T) {
	s := newTestSession(t, strings.NewReader(""), io.Discard)
	now := time.Now()
	s.beginShutdown(now)
	s.update(input.Input{}, now)
	if !s.running || s.Screen() != ScreenShutdown {
		t.Fatal("shutdown notice not shown")
	}
	s.update(input.Input{}, now.Add(config.ShutdownDisplayTime))
	if s.running {
		t.Fatal("session outlived the shutdown notice")
	}
}

func TestDrawFrameShowsHUD(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(t, strings.NewReader(""), &out)
	s.update(input.Input{Enter: true}, time.Now())
	s.update(input.Input{}, time.Now())

	if err := s.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	if !strings.Contains(out.String(), "Score: 0") || !strings.Contains(out.String(), "Level 1/5") {
		t.Fatalf("HUD missing from frame %q", out.String())
	}
}

func TestRunEndsAfterCancel(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the shutdown notice")
	}
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- Run(ctx, pr, io.Discard, Options{TermSizeFunc: fixedSize(80, 40)})
	}()
	cancel()

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(config.ShutdownDisplayTime + 2*time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
