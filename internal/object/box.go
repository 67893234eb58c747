package object

import "github.com/tomz197/boxfall/internal/physics"

// Box is a crate bound to one column. It hangs above the play-field until it is
// armed and released, then falls until it reaches its rest line.
type Box struct {
	physics.Body
	Column int     // Column index, fixed for the box's lifetime
	Accel  float64 // Downward acceleration added every release step

	restY    float64 // y at which downward motion stops
	armed    bool    // Whether the scheduler drops it on its next pass
	released bool    // Whether it has started falling
	dropSet  bool    // Whether the drop origin has been fixed
}

// NewBox creates a box at (x, 0) that will rest with its top edge at restY.
func NewBox(column int, x, restY, accel, maxFall float64) *Box {
	return &Box{
		Body: physics.Body{
			X: x,
			Limits: physics.Limits{
				MaxVY: maxFall, // Never moves sideways or upward
			},
		},
		Column: column,
		Accel:  accel,
		restY:  restY,
	}
}

// RestY returns the y of the box's top edge once settled.
func (b *Box) RestY() float64 {
	return b.restY
}

// Arm sets whether the box is dropped on the next scheduler pass.
func (b *Box) Arm(armed bool) {
	b.armed = armed
}

// Armed reports whether the box is scheduled to drop.
func (b *Box) Armed() bool {
	return b.armed
}

// SetDropPosition fixes the y the box starts falling from. Only the first call has
// an effect, so a scroll-relative origin is not re-applied every tick.
func (b *Box) SetDropPosition(y float64) {
	if b.dropSet {
		return
	}
	b.Y = y
	b.dropSet = true
}

// Release advances the fall by dt. The box never passes its rest line.
func (b *Box) Release(dt float64) {
	b.released = true
	b.ApplyImpulse(0, b.Accel)
	b.Integrate(dt)
	if b.Y >= b.restY {
		b.Y = b.restY
		b.VY = 0
	}
}

// IsAirborne reports whether the box is away from its rest line.
func (b *Box) IsAirborne() bool {
	return b.Y != b.restY
}

// Released reports whether the box has started falling.
func (b *Box) Released() bool {
	return b.released
}

// InFlight reports whether the box is falling right now.
func (b *Box) InFlight() bool {
	return b.released && b.IsAirborne()
}
