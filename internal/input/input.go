// Package input turns raw terminal bytes into per-frame key state.
package input

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/boxfall/internal/object"
)

// keyHoldDuration is how long a key counts as held after its last byte arrived.
// Terminals repeat held keys, so this has to bridge the gap between repeats.
const keyHoldDuration = 120 * time.Millisecond

// Input is the key state for one frame.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Space  bool
	Enter  bool
	Closed bool // The underlying reader has ended
}

// Intent maps the arrow keys to a movement direction. Both or neither held is none.
func (in Input) Intent() object.Intent {
	switch {
	case in.Left && !in.Right:
		return object.IntentLeft
	case in.Right && !in.Left:
		return object.IntentRight
	default:
		return object.IntentNone
	}
}

// Any reports whether a key that starts a new round is held.
func (in Input) Any() bool {
	return in.Left || in.Right || in.Space || in.Enter
}

type keyState struct {
	quit  time.Time
	left  time.Time
	right time.Time
	space time.Time
	enter time.Time
}

// Stream delivers input bytes through a channel and keeps key state between frames.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
	now    func() time.Time
}

// StartStream spawns a goroutine that reads r until it fails.
func StartStream(r io.Reader) *Stream {
	s := &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	go func() {
		defer close(s.ch)
		for {
			b, err := br.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Read drains all buffered bytes without blocking and returns the frame's keys.
func (s *Stream) Read() Input {
	now := s.now()
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	for i := 0; i < len(buf); i++ {
		// Arrow keys arrive as ESC [ C and ESC [ D
		if buf[i] == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			}
		}
		s.state.apply(buf[i], now)
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	return Input{
		Quit:   held(s.state.quit) || s.closed,
		Left:   held(s.state.left),
		Right:  held(s.state.right),
		Space:  held(s.state.space),
		Enter:  held(s.state.enter),
		Closed: s.closed,
	}
}

func (k *keyState) apply(b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		k.quit = now
	case 'a', 'A', 'h', 'H':
		k.left = now
	case 'd', 'D', 'l', 'L':
		k.right = now
	case ' ':
		k.space = now
	case '\n', '\r':
		k.enter = now
	}
}
