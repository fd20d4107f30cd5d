package entity

import (
	"fmt"
	"math"
)

// MovementConfig is the per-actor tuning for the platform movement controller.
// Forces are in units/s², speeds in units/s, heights in units.
type MovementConfig struct {
	MoveAcceleration        float64
	MaxMoveSpeed            float64
	HorizontalDrag          float64
	HorizontalStopThreshold float64
	FallAcceleration        float64
	MaxFallSpeed            float64
	MaxJumpHeight           float64
	JumpCancelFactor        float64
	JumpVelocityThreshold   float64
}

// DefaultMovementConfig returns the stock player tuning
func DefaultMovementConfig() MovementConfig {
	return MovementConfig{
		MoveAcceleration:        15,
		MaxMoveSpeed:            8,
		HorizontalDrag:          8,
		HorizontalStopThreshold: 0.3,
		FallAcceleration:        15,
		MaxFallSpeed:            8,
		MaxJumpHeight:           3.2,
		JumpCancelFactor:        5,
		JumpVelocityThreshold:   0.1,
	}
}

// Validate rejects negative values and a non-positive fall acceleration
func (c MovementConfig) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"moveAcceleration", c.MoveAcceleration},
		{"maxMoveSpeed", c.MaxMoveSpeed},
		{"horizontalDrag", c.HorizontalDrag},
		{"horizontalStopThreshold", c.HorizontalStopThreshold},
		{"fallAcceleration", c.FallAcceleration},
		{"maxFallSpeed", c.MaxFallSpeed},
		{"maxJumpHeight", c.MaxJumpHeight},
		{"jumpCancelFactor", c.JumpCancelFactor},
		{"jumpVelocityThreshold", c.JumpVelocityThreshold},
	}
	for _, f := range fields {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidConfig, f.name, f.value)
		}
	}
	if c.FallAcceleration <= 0 {
		return fmt.Errorf("%w: fallAcceleration must be > 0, got %v", ErrInvalidConfig, c.FallAcceleration)
	}
	return nil
}

// JumpForce returns the launch speed that peaks at height under FallAcceleration
func (c MovementConfig) JumpForce(height float64) float64 {
	return math.Sqrt(2 * c.FallAcceleration * height)
}
