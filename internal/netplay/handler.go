// Package netplay serves boxfall rounds over WebSocket. Every connection plays
// its own round; the browser sends intents and receives a snapshot per tick.
package netplay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/tomz197/boxfall/internal/loop/config"
	"github.com/tomz197/boxfall/internal/object"
	"github.com/tomz197/boxfall/internal/round"
)

const (
	writeWait      = 2 * time.Second
	maxMessageSize = 512
)

// Config configures a Handler.
type Config struct {
	Round          round.Config
	TickRate       time.Duration // Defaults to the terminal frame time
	MenuDelayTicks int           // Defaults to the terminal menu delay
	Logger         *log.Logger
}

// Handler upgrades requests to WebSocket connections and runs a round on each.
type Handler struct {
	cfg      Config
	logger   *log.Logger
	upgrader websocket.Upgrader
	conns    atomic.Int64
}

// NewHandler validates cfg and creates a handler.
func NewHandler(cfg Config) (*Handler, error) {
	if err := cfg.Round.Validate(); err != nil {
		return nil, err
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = config.TargetFrameTime
	}
	if cfg.MenuDelayTicks <= 0 {
		cfg.MenuDelayTicks = config.MenuDelayTicks
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Handler{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}, nil
}

// ServeHTTP plays one round per connection until the peer goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	id := h.conns.Add(1)
	logger := h.logger.With("conn", id, "remote", r.RemoteAddr)

	cfg := h.cfg.Round
	cfg.Seed += id
	rd, err := round.New(cfg, round.WithLogger(logger))
	if err != nil {
		logger.Error("create round", "err", err)
		return
	}

	logger.Info("player connected")
	p := &player{round: rd, conn: conn, logger: logger, menuDelay: h.cfg.MenuDelayTicks}
	if err := p.play(r.Context(), h.cfg.TickRate); err != nil {
		logger.Info("player disconnected", "reason", err)
		return
	}
	logger.Info("player disconnected")
}

// player is one connection. The read pump writes the intent under mu; the tick
// loop owns the round.
type player struct {
	round     *round.Round
	conn      *websocket.Conn
	logger    *log.Logger
	menuDelay int

	mu      sync.Mutex
	intent  object.Intent
	restart bool

	overTicks int
}

func (p *player) play(ctx context.Context, tick time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	readErr := make(chan error, 1)
	go func() {
		readErr <- p.readPump()
		cancel()
	}()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			select {
			case err := <-readErr:
				return err
			default:
				return ctx.Err()
			}
		case <-ticker.C:
		}
		if err := p.step(); err != nil {
			return err
		}
	}
}

// step advances the round once and sends the snapshot.
func (p *player) step() error {
	data, err := json.Marshal(p.advance())
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := p.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// advance applies the pending intent, or a restart once the round has been
// over for the menu delay.
func (p *player) advance() StateMessage {
	p.mu.Lock()
	intent, restart := p.intent, p.restart
	p.restart = false
	p.mu.Unlock()

	if p.round.Phase() == round.Playing {
		p.round.SetIntent(intent)
		p.round.Step()
		p.overTicks = 0
	} else {
		p.overTicks++
		if restart && p.overTicks >= p.menuDelay {
			p.round.NewRound()
			p.overTicks = 0
		}
	}

	return StateMessage{
		Type:       TypeState,
		Snapshot:   p.round.Snapshot(),
		CanRestart: p.round.Phase() != round.Playing && p.overTicks >= p.menuDelay,
	}
}

// readPump applies client messages until the connection fails.
func (p *player) readPump() error {
	p.conn.SetReadLimit(maxMessageSize)
	for {
		_, payload, err := p.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			p.logger.Debug("discarding malformed message", "err", err)
			continue
		}

		p.mu.Lock()
		switch msg.Type {
		case TypeInput:
			p.intent = object.IntentFromDir(msg.Dir)
		case TypeRestart:
			p.restart = true
		default:
			p.logger.Debug("discarding unknown message", "type", msg.Type)
		}
		p.mu.Unlock()
	}
}
