package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/platformer/internal/domain/entity"
)

// PatrolPhase is the lifecycle state of a patrolling enemy
type PatrolPhase int

const (
	PatrolIdle PatrolPhase = iota
	PatrolPatrolling
	PatrolDead
)

func (p PatrolPhase) String() string {
	switch p {
	case PatrolIdle:
		return "Idle"
	case PatrolPatrolling:
		return "Patrolling"
	case PatrolDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

var down = mgl64.Vec2{0, -1}

// PatrolController walks an enemy back and forth at constant speed. Gravity
// comes from the physics world; the controller only owns horizontal speed.
type PatrolController struct {
	cfg      entity.PatrolConfig
	body     Body
	prober   GroundProber
	viewport Viewport

	state entity.ActorPhysicsState
	phase PatrolPhase

	// clock is simulated time; direction changes are allowed again once it
	// reaches changeAllowedAt
	clock           float64
	changeAllowedAt float64
}

// NewPatrolController creates a new patrol movement controller
func NewPatrolController(cfg entity.PatrolConfig, body Body, prober GroundProber, viewport Viewport) (*PatrolController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create patrol controller: %w", err)
	}
	if body == nil {
		return nil, fmt.Errorf("failed to create patrol controller: %w: body", entity.ErrMissingDependency)
	}
	if viewport == nil {
		return nil, fmt.Errorf("failed to create patrol controller: %w: viewport", entity.ErrMissingDependency)
	}
	if cfg.AvoidFalling && prober == nil {
		return nil, fmt.Errorf("failed to create patrol controller: %w: ground prober", entity.ErrMissingDependency)
	}
	if err := entity.ValidateHalfExtent(body.HalfExtent()); err != nil {
		return nil, fmt.Errorf("failed to create patrol controller: %w", err)
	}

	c := &PatrolController{
		cfg:      cfg,
		body:     body,
		prober:   prober,
		viewport: viewport,
		phase:    PatrolPatrolling,
	}
	if cfg.IdleOffScreen {
		c.phase = PatrolIdle
	}
	c.state.HalfExtent = body.HalfExtent()
	c.state.MoveDirection = cfg.StartDirection
	c.state.CanChangeDirection = true
	c.sync()
	return c, nil
}

// Step advances the controller by one fixed tick
func (c *PatrolController) Step(dt float64) {
	if c.phase == PatrolDead {
		return
	}
	c.clock += dt
	c.sync()
	st := &c.state
	bounds := c.viewport.Bounds()

	if c.phase == PatrolIdle && st.Position.X() < bounds.Max.X()+st.HalfExtent.X() {
		c.phase = PatrolPatrolling
	}

	if st.Position.Y() < bounds.Min.Y()-st.HalfExtent.Y() {
		c.Die()
		return
	}

	st.CanChangeDirection = c.clock >= c.changeAllowedAt
	if c.cfg.AvoidFalling && st.CanChangeDirection && !c.groundAhead() {
		c.Reverse()
		c.changeAllowedAt = c.clock + c.cfg.DirectionChangeCooldown
		st.CanChangeDirection = false
	}

	if c.phase == PatrolPatrolling {
		st.Velocity[0] = c.cfg.MoveSpeed * st.MoveDirection.X()
		c.body.SetVelocity(st.Velocity)
	}
}

// groundAhead probes down from both lower corners; both must hit
func (c *PatrolController) groundAhead() bool {
	dist := c.cfg.ProbeDistance
	left := c.prober.Raycast(c.state.LowerLeft(), down, dist, entity.LayerGround)
	right := c.prober.Raycast(c.state.LowerRight(), down, dist, entity.LayerGround)
	return left.Hit && right.Hit
}

// OnContact reverses on wall contacts. Player contacts belong to the
// encounter resolver and are ignored here.
func (c *PatrolController) OnContact(ev entity.CollisionEvent) {
	if c.phase == PatrolDead || ev.Phase != entity.ContactBegin || ev.OtherKind == entity.KindPlayer {
		return
	}
	if len(ev.Normals) > 0 && IsWallContact(ev.Normals[0]) {
		c.Reverse()
	}
}

// Reverse flips the patrol direction
func (c *PatrolController) Reverse() {
	c.state.MoveDirection = mgl64.Vec2{-c.state.MoveDirection.X(), 0}
}

// Die removes the enemy from the world. Calling it again does nothing.
func (c *PatrolController) Die() {
	if c.phase == PatrolDead {
		return
	}
	c.phase = PatrolDead
	c.body.Remove()
}

// DeathBounceHeight is how high a stomping player bounces
func (c *PatrolController) DeathBounceHeight() float64 { return c.cfg.DeathBounceHeight }

// DeathScore is awarded when this enemy is stomped
func (c *PatrolController) DeathScore() int { return c.cfg.DeathScore }

// Phase returns the current lifecycle state
func (c *PatrolController) Phase() PatrolPhase { return c.phase }

// Dead reports whether the enemy has been removed
func (c *PatrolController) Dead() bool { return c.phase == PatrolDead }

// State returns a snapshot of the actor's movement state
func (c *PatrolController) State() entity.ActorPhysicsState {
	s := c.state
	if c.phase != PatrolDead {
		s.Position = c.body.Position()
		s.Velocity = c.body.Velocity()
	}
	return s
}

// Body returns the controlled collider
func (c *PatrolController) Body() Body { return c.body }

func (c *PatrolController) sync() {
	c.state.Position = c.body.Position()
	c.state.Velocity = c.body.Velocity()
}
