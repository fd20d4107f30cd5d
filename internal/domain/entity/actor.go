package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ActorPhysicsState is the per-actor movement state. Position and velocity
// mirror the physics body; the flags are owned by the actor's controller.
type ActorPhysicsState struct {
	Position   mgl64.Vec2
	Velocity   mgl64.Vec2
	HalfExtent mgl64.Vec2

	Grounded           bool
	JumpHeld           bool
	CanChangeDirection bool
	MoveDirection      mgl64.Vec2
}

// Rect returns the collider rect in world coordinates
func (s ActorPhysicsState) Rect() Rect {
	return RectFromCenter(s.Position, s.HalfExtent)
}

// LowerLeft returns the bottom-left corner of the collider
func (s ActorPhysicsState) LowerLeft() mgl64.Vec2 {
	return s.Position.Sub(s.HalfExtent)
}

// LowerRight returns the bottom-right corner of the collider
func (s ActorPhysicsState) LowerRight() mgl64.Vec2 {
	return mgl64.Vec2{s.Position.X() + s.HalfExtent.X(), s.Position.Y() - s.HalfExtent.Y()}
}

// ValidateHalfExtent rejects degenerate colliders
func ValidateHalfExtent(half mgl64.Vec2) error {
	if half.X() <= 0 || half.Y() <= 0 {
		return fmt.Errorf("%w: half extent must be positive, got %v", ErrInvalidConfig, half)
	}
	return nil
}
