package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/platformer/internal/domain/entity"
)

// Body is the handle a controller holds on its collider in the physics
// backend. Positions are collider centers in world units.
type Body interface {
	ID() entity.EntityID
	Position() mgl64.Vec2
	SetPosition(p mgl64.Vec2)
	Velocity() mgl64.Vec2
	SetVelocity(v mgl64.Vec2)
	HalfExtent() mgl64.Vec2
	// SetSolid turns the collider into a non-colliding sensor when false
	SetSolid(solid bool)
	// Remove takes the body out of the world
	Remove()
}

// GroundProber casts discrete probes against a collision layer
type GroundProber interface {
	Raycast(origin, dir mgl64.Vec2, maxDist float64, layer entity.Layer) entity.RaycastHit
}

// Viewport reports the currently visible world rectangle
type Viewport interface {
	Bounds() entity.Bounds
}

// SessionSink receives score and death notifications
type SessionSink interface {
	OnScore(amount int)
	OnDeath()
}
