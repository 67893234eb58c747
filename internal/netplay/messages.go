package netplay

import "github.com/tomz197/boxfall/internal/round"

// Message types on the wire.
const (
	TypeInput   = "input"
	TypeRestart = "restart"
	TypeState   = "state"
)

// clientMessage is what the browser sends: {"type":"input","dir":-1|0|1} or
// {"type":"restart"}.
type clientMessage struct {
	Type string `json:"type"`
	Dir  int    `json:"dir"`
}

// StateMessage is sent after every tick.
type StateMessage struct {
	Type string `json:"type"`
	round.Snapshot
	CanRestart bool `json:"canRestart"`
}
