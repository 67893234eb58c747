package object

// LifeState is the player's standing in a round. Transitions only go forward:
// Alive -> Struck -> Removed. A new round needs a new Life.
type LifeState int

const (
	Alive   LifeState = iota // Playing
	Struck                   // Hit by a box, no longer controllable
	Removed                  // Taken off the field once the round settled
)

func (s LifeState) String() string {
	switch s {
	case Alive:
		return "alive"
	case Struck:
		return "struck"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Life is a one-way state machine. The zero value is Alive.
type Life struct {
	state LifeState
}

// State returns the current state.
func (l *Life) State() LifeState {
	return l.state
}

// Strike moves Alive to Struck. It reports whether the transition happened.
func (l *Life) Strike() bool {
	if l.state != Alive {
		return false
	}
	l.state = Struck
	return true
}

// Remove moves Struck to Removed. It reports whether the transition happened.
func (l *Life) Remove() bool {
	if l.state != Struck {
		return false
	}
	l.state = Removed
	return true
}

// IsAlive reports whether the player still responds to input.
func (l *Life) IsAlive() bool {
	return l.state == Alive
}

// WasStruck reports whether the player has been hit at any point this round.
func (l *Life) WasStruck() bool {
	return l.state != Alive
}
