package physics

import "math"

// Limits caps each velocity component.
type Limits struct {
	MinVX, MaxVX float64
	MinVY, MaxVY float64
}

// Unbounded returns limits that never clamp.
func Unbounded() Limits {
	inf := math.Inf(1)
	return Limits{MinVX: -inf, MaxVX: inf, MinVY: -inf, MaxVY: inf}
}

// Body is a point mass integrated with explicit Euler steps.
type Body struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity
	Limits Limits
}

// SetPosition moves the body without touching its velocity.
func (b *Body) SetPosition(x, y float64) {
	b.X = x
	b.Y = y
}

// ApplyImpulse adds to the velocity.
func (b *Body) ApplyImpulse(dx, dy float64) {
	b.VX += dx
	b.VY += dy
}

// Integrate advances the position by velocity*dt, then clamps the velocity.
func (b *Body) Integrate(dt float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt
	b.VX = Clamp(b.VX, b.Limits.MinVX, b.Limits.MaxVX)
	b.VY = Clamp(b.VY, b.Limits.MinVY, b.Limits.MaxVY)
}

// Stop zeroes the velocity.
func (b *Body) Stop() {
	b.VX = 0
	b.VY = 0
}
