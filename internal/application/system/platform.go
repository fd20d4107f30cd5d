package system

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/platformer/internal/domain/entity"
)

// PlatformOptions toggles behaviours that are not part of the tuning values
type PlatformOptions struct {
	// AllowBacktracking lets the actor walk past the left edge of the viewport
	AllowBacktracking bool
	// RevalidateGroundOnExit keeps the actor grounded when one ground contact
	// ends while another is still active. Off by default: any contact exit
	// clears the grounded flag.
	RevalidateGroundOnExit bool
}

// PlatformController drives a player-style actor: acceleration-based running,
// variable-height jumps and controller-owned gravity. The body's gravity
// scale must be zero; all vertical acceleration comes from here.
type PlatformController struct {
	cfg      entity.MovementConfig
	opts     PlatformOptions
	body     Body
	viewport Viewport

	state     entity.ActorPhysicsState
	jumpForce float64
	enabled   bool

	groundContacts map[entity.EntityID]struct{}
}

// NewPlatformController creates a new platform movement controller
func NewPlatformController(cfg entity.MovementConfig, body Body, viewport Viewport, opts PlatformOptions) (*PlatformController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create platform controller: %w", err)
	}
	if body == nil {
		return nil, fmt.Errorf("failed to create platform controller: %w: body", entity.ErrMissingDependency)
	}
	if viewport == nil && !opts.AllowBacktracking {
		return nil, fmt.Errorf("failed to create platform controller: %w: viewport", entity.ErrMissingDependency)
	}
	if err := entity.ValidateHalfExtent(body.HalfExtent()); err != nil {
		return nil, fmt.Errorf("failed to create platform controller: %w", err)
	}

	c := &PlatformController{
		cfg:            cfg,
		opts:           opts,
		body:           body,
		viewport:       viewport,
		jumpForce:      cfg.JumpForce(cfg.MaxJumpHeight),
		enabled:        true,
		groundContacts: make(map[entity.EntityID]struct{}),
	}
	c.state.HalfExtent = body.HalfExtent()
	c.sync()
	return c, nil
}

// Step advances the controller by one fixed tick
func (c *PlatformController) Step(in Intent, dt float64) {
	if !c.enabled {
		return
	}
	c.sync()
	cfg := c.cfg
	st := &c.state

	// Tick-start horizontal speed decides drag and the residual stop
	speed := math.Abs(st.Velocity.X())
	axis := in.Horizontal
	if math.IsNaN(axis) {
		axis = 0
	}
	drive := clamp(axis, -1, 1) * cfg.MoveAcceleration

	if !c.opts.AllowBacktracking {
		leftBound := c.viewport.Bounds().Min.X() + st.HalfExtent.X()
		if st.Position.X() <= leftBound {
			st.Velocity[0] = 0
			st.Position[0] = leftBound
			c.body.SetPosition(st.Position)
			drive = math.Max(0, drive)
		}
	}

	var force mgl64.Vec2
	force[0] = drive

	var drag float64
	if speed > cfg.HorizontalStopThreshold {
		drag = -sign(st.Velocity.X()) * cfg.HorizontalDrag
		force[0] += drag
	}

	if in.JumpPressed && st.Grounded {
		st.JumpHeld = true
		st.Grounded = false
		st.Velocity[1] += c.jumpForce
	} else if in.JumpReleased {
		st.JumpHeld = false
	}

	vy := st.Velocity.Y()
	if vy > cfg.JumpVelocityThreshold && !st.JumpHeld {
		force[1] -= c.jumpForce * cfg.JumpCancelFactor
	}
	if vy < -cfg.JumpVelocityThreshold {
		force[1] -= c.jumpForce
	}
	force[1] -= cfg.FallAcceleration

	v := st.Velocity.Add(force.Mul(dt))

	// Drag alone never carries the actor through zero
	if drive == 0 && drag != 0 && sign(v.X()) != sign(st.Velocity.X()) {
		v[0] = 0
	}

	v[0] = clamp(v.X(), -cfg.MaxMoveSpeed, cfg.MaxMoveSpeed)
	v[1] = math.Max(v.Y(), -cfg.MaxFallSpeed)

	if drive == 0 && speed <= cfg.HorizontalStopThreshold {
		v[0] = 0
	}

	st.Velocity = v
	c.body.SetVelocity(v)
}

// Bounce launches the actor upward as if jumping to height. The actor is
// airborne afterwards until a ground contact reports again.
func (c *PlatformController) Bounce(height float64) {
	if !c.enabled {
		return
	}
	c.sync()
	c.state.Grounded = false
	clear(c.groundContacts)
	c.state.Velocity[1] += c.cfg.JumpForce(height)
	c.body.SetVelocity(c.state.Velocity)
}

// Disable stops the actor and turns its collider into a sensor
func (c *PlatformController) Disable() {
	if !c.enabled {
		return
	}
	c.enabled = false
	c.state.Velocity = mgl64.Vec2{}
	c.state.Grounded = false
	c.state.JumpHeld = false
	c.body.SetVelocity(mgl64.Vec2{})
	c.body.SetSolid(false)
}

// OnContact updates the grounded flag from a collision event reported to this
// actor. Enemies never ground the actor: landing on one is a stomp.
func (c *PlatformController) OnContact(ev entity.CollisionEvent) {
	if !c.enabled || ev.OtherKind == entity.KindEnemy {
		return
	}
	switch ev.Phase {
	case entity.ContactBegin, entity.ContactStay:
		if IsGrounded(ev.Normals) {
			c.state.Grounded = true
			c.groundContacts[ev.Other] = struct{}{}
		} else {
			delete(c.groundContacts, ev.Other)
		}
	case entity.ContactExit:
		delete(c.groundContacts, ev.Other)
		if c.opts.RevalidateGroundOnExit {
			c.state.Grounded = len(c.groundContacts) > 0
		} else {
			c.state.Grounded = false
		}
	}
}

// IsMoving reports horizontal speed above the stop threshold
func (c *PlatformController) IsMoving() bool {
	return math.Abs(c.body.Velocity().X()) > c.cfg.HorizontalStopThreshold
}

// IsJumping reports upward speed above the jump threshold
func (c *PlatformController) IsJumping() bool {
	return c.body.Velocity().Y() > c.cfg.JumpVelocityThreshold
}

// IsFalling reports downward speed above the jump threshold
func (c *PlatformController) IsFalling() bool {
	return c.body.Velocity().Y() < -c.cfg.JumpVelocityThreshold
}

// Direction returns 1 moving right, -1 moving left, 0 otherwise
func (c *PlatformController) Direction() int {
	vx := c.body.Velocity().X()
	switch {
	case vx > c.cfg.HorizontalStopThreshold:
		return 1
	case vx < -c.cfg.HorizontalStopThreshold:
		return -1
	default:
		return 0
	}
}

// Disabled reports whether Disable has been called
func (c *PlatformController) Disabled() bool { return !c.enabled }

// JumpForce returns the launch speed of a full jump
func (c *PlatformController) JumpForce() float64 { return c.jumpForce }

// State returns a snapshot of the actor's movement state
func (c *PlatformController) State() entity.ActorPhysicsState {
	s := c.state
	s.Position = c.body.Position()
	s.Velocity = c.body.Velocity()
	return s
}

// Body returns the controlled collider
func (c *PlatformController) Body() Body { return c.body }

// sync pulls position and velocity from the backend, which may have moved
// or stopped the body since the last tick
func (c *PlatformController) sync() {
	c.state.Position = c.body.Position()
	c.state.Velocity = c.body.Velocity()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
