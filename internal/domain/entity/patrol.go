package entity

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// Left is the patrol direction toward negative x
	Left = mgl64.Vec2{-1, 0}
	// Right is the patrol direction toward positive x
	Right = mgl64.Vec2{1, 0}
)

// PatrolConfig is the per-enemy tuning for the patrol movement controller
type PatrolConfig struct {
	MoveSpeed               float64
	StartDirection          mgl64.Vec2
	IdleOffScreen           bool
	AvoidFalling            bool
	DirectionChangeCooldown float64
	ProbeDistance           float64
	DeathBounceHeight       float64
	DeathScore              int
}

// DefaultPatrolConfig returns the stock walker tuning
func DefaultPatrolConfig() PatrolConfig {
	return PatrolConfig{
		MoveSpeed:               1.5,
		StartDirection:          Left,
		IdleOffScreen:           true,
		AvoidFalling:            false,
		DirectionChangeCooldown: 0.1,
		ProbeDistance:           0.5,
		DeathBounceHeight:       1,
		DeathScore:              100,
	}
}

// Validate checks ranges and that the start direction is a horizontal unit vector
func (c PatrolConfig) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"moveSpeed", c.MoveSpeed},
		{"directionChangeCooldown", c.DirectionChangeCooldown},
		{"probeDistance", c.ProbeDistance},
		{"deathBounceHeight", c.DeathBounceHeight},
	}
	for _, f := range fields {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidConfig, f.name, f.value)
		}
	}
	if c.AvoidFalling && c.ProbeDistance <= 0 {
		return fmt.Errorf("%w: probeDistance must be > 0 when avoidFalling is set, got %v", ErrInvalidConfig, c.ProbeDistance)
	}
	if c.StartDirection != Left && c.StartDirection != Right {
		return fmt.Errorf("%w: startDirection must be left or right, got %v", ErrInvalidConfig, c.StartDirection)
	}
	return nil
}

// ParseDirection maps "left"/"right" to a patrol direction
func ParseDirection(s string) (mgl64.Vec2, error) {
	switch s {
	case "left", "":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return mgl64.Vec2{}, fmt.Errorf("%w: unknown direction %q", ErrInvalidConfig, s)
	}
}
