package camera

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// Camera follows a target horizontally with critically damped smoothing.
// Its visible rectangle is the viewport the movement controllers bound against.
type Camera struct {
	center mgl64.Vec2
	half   mgl64.Vec2
	vel    float64

	followTime        float64
	allowBacktracking bool

	limited    bool
	minX, maxX float64
}

// New creates a camera centered on center showing a viewW x viewH area
func New(cfg config.CameraConfig, center mgl64.Vec2, viewW, viewH float64) (*Camera, error) {
	if viewW <= 0 || viewH <= 0 {
		return nil, fmt.Errorf("failed to create camera: %w: view size %vx%v", entity.ErrInvalidConfig, viewW, viewH)
	}
	if cfg.FollowTime < 0 || math.IsNaN(cfg.FollowTime) {
		return nil, fmt.Errorf("failed to create camera: %w: followTime %v", entity.ErrInvalidConfig, cfg.FollowTime)
	}
	return &Camera{
		center:            center,
		half:              mgl64.Vec2{viewW / 2, viewH / 2},
		followTime:        cfg.FollowTime,
		allowBacktracking: cfg.AllowBacktracking,
	}, nil
}

// Limit keeps the view inside [minX, maxX] horizontally
func (c *Camera) Limit(minX, maxX float64) {
	c.limited = true
	c.minX, c.maxX = minX, maxX
	c.center[0] = c.limitX(c.center.X())
}

// Follow moves toward targetX. Without backtracking the camera only ever
// moves right.
func (c *Camera) Follow(targetX, dt float64) {
	if dt <= 0 {
		return
	}
	if !c.allowBacktracking && targetX <= c.center.X() {
		return
	}
	x := smoothDamp(c.center.X(), targetX, &c.vel, c.followTime, dt)
	if !c.allowBacktracking && x < c.center.X() {
		x = c.center.X()
		c.vel = 0
	}
	c.center[0] = c.limitX(x)
}

// SnapTo centers the camera on p immediately
func (c *Camera) SnapTo(p mgl64.Vec2) {
	c.center = mgl64.Vec2{c.limitX(p.X()), p.Y()}
	c.vel = 0
}

// Center returns the camera position
func (c *Camera) Center() mgl64.Vec2 { return c.center }

// Bounds returns the visible world rectangle
func (c *Camera) Bounds() entity.Bounds {
	return entity.RectFromCenter(c.center, c.half)
}

func (c *Camera) limitX(x float64) float64 {
	if !c.limited {
		return x
	}
	lo, hi := c.minX+c.half.X(), c.maxX-c.half.X()
	if lo > hi {
		return (c.minX + c.maxX) / 2
	}
	return math.Max(lo, math.Min(hi, x))
}

// smoothDamp is the closed-form critically damped spring step
func smoothDamp(current, target float64, vel *float64, smoothTime, dt float64) float64 {
	if smoothTime <= 0 {
		*vel = 0
		return target
	}
	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
	change := current - target
	temp := (*vel + omega*change) * dt
	*vel = (*vel - omega*temp) * exp
	out := target + (change+temp)*exp

	// No overshoot
	if (target-current > 0) == (out > target) {
		out = target
		*vel = 0
	}
	return out
}
