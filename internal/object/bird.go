package object

import (
	"math"

	"github.com/tomz197/boxfall/internal/physics"
)

// Geometry describes the player's sprite and the slack it is given at edges.
// The margins let the sprite's tail and beak overlap an obstacle slightly
// so that the body, not the bounding box, is what touches walls.
type Geometry struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Trailing float64 `json:"trailing"` // Tail overlap allowed against a wall behind
	Leading  float64 `json:"leading"`  // Beak overlap allowed against a wall ahead
	Overhang float64 `json:"overhang"` // How far the sprite may leave the field sideways
}

// DefaultGeometry returns the bird sprite's dimensions.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:    46,
		Height:   46,
		Trailing: 8,
		Leading:  9,
		Overhang: 20,
	}
}

// Bird is the player-controlled actor. It runs left and right, falls under
// gravity and climbs walls it is pressed against.
type Bird struct {
	physics.Body
	Geometry
	Life

	Accel     float64 // Horizontal acceleration per tick, also friction when idle
	MaxSpeed  float64 // Horizontal speed cap
	Gravity   float64 // Base gravity; climbing lifts by Accel-Gravity per tick
	FallBoost float64 // Multiplier on Accel+Gravity while not climbing
	Facing    Intent  // Last horizontal direction, for drawing
	Climbing  bool    // Pressed against a wall and moving into it
}

// NewBird creates a bird at (x, y) facing right.
func NewBird(x, y float64, g Geometry) *Bird {
	b := &Bird{
		Geometry:  g,
		Accel:     1.0,
		MaxSpeed:  8.0,
		Gravity:   0.45,
		FallBoost: 1.6,
		Facing:    IntentRight,
	}
	b.X, b.Y = x, y
	b.Limits = physics.Limits{
		MinVX: -b.MaxSpeed,
		MaxVX: b.MaxSpeed,
		MinVY: -b.MaxSpeed,
		MaxVY: 12.0,
	}
	return b
}

// Move applies one tick of input. contact reports whether the resolver found the
// bird pressed against a settled box this frame.
func (b *Bird) Move(intent Intent, contact bool) {
	switch intent {
	case IntentLeft:
		b.VX -= b.Accel
		b.Facing = IntentLeft
	case IntentRight:
		b.VX += b.Accel
		b.Facing = IntentRight
	default:
		// Slow down gradually rather than stopping dead
		if math.Abs(b.VX) <= b.Accel {
			b.VX = 0
		} else {
			b.VX -= math.Copysign(b.Accel, b.VX)
		}
	}

	b.Climbing = contact && intent != IntentNone
	if b.Climbing {
		b.VY += b.Gravity - b.Accel
		return
	}
	b.VY += b.FallBoost * (b.Accel + b.Gravity)
}

// Step integrates the bird and keeps it inside bounds. Velocity pushing into a
// bound is dropped so it does not build up while the bird stands still.
func (b *Bird) Step(dt float64, bounds physics.Bounds) {
	b.Integrate(dt)
	x, y := bounds.Contain(b.X, b.Y)
	if (x > b.X && b.VX < 0) || (x < b.X && b.VX > 0) {
		b.VX = 0
	}
	if (y > b.Y && b.VY < 0) || (y < b.Y && b.VY > 0) {
		b.VY = 0
	}
	b.X, b.Y = x, y
}

// Rect returns the sprite rectangle.
func (b *Bird) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// Bottom returns the y of the sprite's lower edge.
func (b *Bird) Bottom() float64 {
	return b.Y + b.Height
}
