package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// tuningFile is the shape of a TOML override. Physics and player tables
// decode into copies of the loaded config, so absent keys keep their JSON
// values. Enemy entries use pointer fields for the same reason.
type tuningFile struct {
	Physics *PhysicsConfig         `toml:"physics"`
	Player  *PlayerConfig          `toml:"player"`
	Enemies map[string]enemyTuning `toml:"enemies"`
}

type enemyTuning struct {
	Patrol patrolTuning `toml:"patrol"`
}

type patrolTuning struct {
	MoveSpeed               *float64 `toml:"moveSpeed"`
	StartDirection          *string  `toml:"startDirection"`
	IdleOffScreen           *bool    `toml:"idleOffScreen"`
	AvoidFalling            *bool    `toml:"avoidFalling"`
	DirectionChangeCooldown *float64 `toml:"directionChangeCooldown"`
	ProbeDistance           *float64 `toml:"probeDistance"`
	DeathBounceHeight       *float64 `toml:"deathBounceHeight"`
	DeathScore              *int     `toml:"deathScore"`
}

// ApplyTuningFile overlays a TOML tuning file onto cfg
func ApplyTuningFile(cfg *GameConfig, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open tuning %s: %w", path, err)
	}
	defer f.Close()

	if err := ApplyTuning(cfg, f); err != nil {
		return fmt.Errorf("tuning %s: %w", path, err)
	}
	return nil
}

// ApplyTuning overlays TOML tuning values read from r onto cfg.
// Unknown keys and unknown enemy types are rejected, and cfg is left
// untouched on any error.
func ApplyTuning(cfg *GameConfig, r io.Reader) error {
	if cfg == nil || cfg.Physics == nil || cfg.Entities == nil {
		return fmt.Errorf("failed to apply tuning: config not loaded")
	}

	physics := *cfg.Physics
	player := cfg.Entities.Player
	doc := tuningFile{
		Physics: &physics,
		Player:  &player,
	}
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return fmt.Errorf("failed to parse tuning: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown tuning keys: %s", strings.Join(keys, ", "))
	}

	enemies := make(map[string]EnemyConfig, len(cfg.Entities.Enemies))
	for name, enemy := range cfg.Entities.Enemies {
		enemies[name] = enemy
	}
	for name, t := range doc.Enemies {
		enemy, ok := enemies[name]
		if !ok {
			return fmt.Errorf("unknown enemy type %q in tuning", name)
		}
		t.Patrol.apply(&enemy.Patrol)
		enemies[name] = enemy
	}

	*cfg.Physics = physics
	cfg.Entities.Player = player
	cfg.Entities.Enemies = enemies
	return nil
}

func (t patrolTuning) apply(p *PatrolConfig) {
	if t.MoveSpeed != nil {
		p.MoveSpeed = *t.MoveSpeed
	}
	if t.StartDirection != nil {
		p.StartDirection = *t.StartDirection
	}
	if t.IdleOffScreen != nil {
		p.IdleOffScreen = *t.IdleOffScreen
	}
	if t.AvoidFalling != nil {
		p.AvoidFalling = *t.AvoidFalling
	}
	if t.DirectionChangeCooldown != nil {
		p.DirectionChangeCooldown = *t.DirectionChangeCooldown
	}
	if t.ProbeDistance != nil {
		p.ProbeDistance = *t.ProbeDistance
	}
	if t.DeathBounceHeight != nil {
		p.DeathBounceHeight = *t.DeathBounceHeight
	}
	if t.DeathScore != nil {
		p.DeathScore = *t.DeathScore
	}
}
