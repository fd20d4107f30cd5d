package config

// EntitiesConfig is the root config for entities.json
type EntitiesConfig struct {
	Player  PlayerConfig           `json:"player" toml:"player"`
	Enemies map[string]EnemyConfig `json:"enemies" toml:"-"`
}

type PlayerConfig struct {
	ID                     string         `json:"id" toml:"id"`
	Hitbox                 SizeConfig     `json:"hitbox" toml:"hitbox"`
	Movement               MovementConfig `json:"movement" toml:"movement"`
	AllowBacktracking      bool           `json:"allowBacktracking" toml:"allowBacktracking"`
	RevalidateGroundOnExit bool           `json:"revalidateGroundOnExit" toml:"revalidateGroundOnExit"`
}

// SizeConfig is a collider size in world units
type SizeConfig struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

type MovementConfig struct {
	MoveAcceleration        float64 `json:"moveAcceleration" toml:"moveAcceleration"`
	MaxMoveSpeed            float64 `json:"maxMoveSpeed" toml:"maxMoveSpeed"`
	HorizontalDrag          float64 `json:"horizontalDrag" toml:"horizontalDrag"`
	HorizontalStopThreshold float64 `json:"horizontalStopThreshold" toml:"horizontalStopThreshold"`
	FallAcceleration        float64 `json:"fallAcceleration" toml:"fallAcceleration"`
	MaxFallSpeed            float64 `json:"maxFallSpeed" toml:"maxFallSpeed"`
	MaxJumpHeight           float64 `json:"maxJumpHeight" toml:"maxJumpHeight"`
	JumpCancelFactor        float64 `json:"jumpCancelFactor" toml:"jumpCancelFactor"`
	JumpVelocityThreshold   float64 `json:"jumpVelocityThreshold" toml:"jumpVelocityThreshold"`
}

type EnemyConfig struct {
	ID     string       `json:"id"`
	Hitbox SizeConfig   `json:"hitbox"`
	Patrol PatrolConfig `json:"patrol"`
}

type PatrolConfig struct {
	MoveSpeed               float64 `json:"moveSpeed"`
	StartDirection          string  `json:"startDirection"` // "left" or "right"
	IdleOffScreen           bool    `json:"idleOffScreen"`
	AvoidFalling            bool    `json:"avoidFalling"`
	DirectionChangeCooldown float64 `json:"directionChangeCooldown"`
	ProbeDistance           float64 `json:"probeDistance"`
	DeathBounceHeight       float64 `json:"deathBounceHeight"`
	DeathScore              int     `json:"deathScore"`
}
