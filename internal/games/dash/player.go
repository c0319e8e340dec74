package dash

import "github.com/vovakirdan/diamond-dash/internal/core"

// PlayerBody is the diamond's vertical physics state.
// X is derived from the world width and only changes on resize.
type PlayerBody struct {
	X           float64 // Left edge, fixed during a run
	Y           float64 // Top edge
	Velocity    float64 // Positive is downward
	Gravity     float64
	JumpImpulse float64 // Negative is upward
	Width       float64
	Height      float64
}

// Step applies one tick of gravity.
func (p *PlayerBody) Step() {
	p.Velocity += p.Gravity
	p.Y += p.Velocity
}

// Jump replaces the current velocity with the jump impulse.
func (p *PlayerBody) Jump() {
	p.Velocity = p.JumpImpulse
}

// Box returns the player's hitbox.
func (p PlayerBody) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.Width, p.Height)
}
