package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"

	"github.com/younwookim/platformer/internal/domain/entity"
)

// collider is anything stored in the resolv space that bodies can hit
type collider interface {
	colliderID() entity.EntityID
	colliderKind() entity.ActorKind
	bounds() entity.Rect
	isSolid() bool
}

// ground is a static solid rect
type ground struct {
	id   entity.EntityID
	rect entity.Rect
	obj  *resolv.Object
}

func (g *ground) colliderID() entity.EntityID { return g.id }
func (g *ground) colliderKind() entity.ActorKind { return entity.KindGround }
func (g *ground) bounds() entity.Rect { return g.rect }
func (g *ground) isSolid() bool { return true }

// BodySpec describes a dynamic body to add to the world
type BodySpec struct {
	Kind         entity.ActorKind
	Position     mgl64.Vec2 // Center
	HalfExtent   mgl64.Vec2
	GravityScale float64
}

// Body is a dynamic axis-aligned box moved by the world each step
type Body struct {
	world *World
	obj   *resolv.Object

	id           entity.EntityID
	kind         entity.ActorKind
	pos          mgl64.Vec2
	vel          mgl64.Vec2
	half         mgl64.Vec2
	gravityScale float64
	solid        bool
	removed      bool
}

func (b *Body) colliderID() entity.EntityID { return b.id }
func (b *Body) colliderKind() entity.ActorKind { return b.kind }
func (b *Body) bounds() entity.Rect { return entity.RectFromCenter(b.pos, b.half) }
func (b *Body) isSolid() bool { return b.solid && !b.removed }

// ID returns the body's entity id
func (b *Body) ID() entity.EntityID { return b.id }

// Kind returns what the body represents
func (b *Body) Kind() entity.ActorKind { return b.kind }

// Position returns the center of the body
func (b *Body) Position() mgl64.Vec2 { return b.pos }

// SetPosition teleports the body without collision checks
func (b *Body) SetPosition(p mgl64.Vec2) {
	b.pos = p
	if !b.removed {
		b.world.place(b.obj, b.bounds())
	}
}

// Velocity returns the body's velocity in units/s
func (b *Body) Velocity() mgl64.Vec2 { return b.vel }

// SetVelocity replaces the body's velocity
func (b *Body) SetVelocity(v mgl64.Vec2) { b.vel = v }

// HalfExtent returns half the size of the box
func (b *Body) HalfExtent() mgl64.Vec2 { return b.half }

// GravityScale returns the multiplier applied to world gravity
func (b *Body) GravityScale() float64 { return b.gravityScale }

// SetSolid switches between a colliding body and a sensor that passes through everything
func (b *Body) SetSolid(solid bool) { b.solid = solid }

// Solid reports whether the body currently collides
func (b *Body) Solid() bool { return b.solid }

// Remove takes the body out of the world. Its partners see contact exits on the next step.
func (b *Body) Remove() { b.world.remove(b) }

// Removed reports whether Remove has been called
func (b *Body) Removed() bool { return b.removed }

// Rect returns the body's box in world coordinates
func (b *Body) Rect() entity.Rect { return b.bounds() }
