package system

import (
	"fmt"

	"github.com/younwookim/platformer/internal/domain/entity"
)

// Stomper is the player side of an encounter
type Stomper interface {
	Bounce(height float64)
	Disable()
	Disabled() bool
}

// Stompable is the enemy side of an encounter
type Stompable interface {
	Die()
	Dead() bool
	DeathBounceHeight() float64
	DeathScore() int
}

// Encounter is what a resolved player/enemy contact did
type Encounter int

const (
	EncounterNone Encounter = iota
	EncounterEnemyStomped
	EncounterPlayerKilled
)

func (e Encounter) String() string {
	switch e {
	case EncounterEnemyStomped:
		return "EnemyStomped"
	case EncounterPlayerKilled:
		return "PlayerKilled"
	default:
		return "None"
	}
}

// EncounterResolver decides who dies when the player touches an enemy
type EncounterResolver struct {
	sink SessionSink

	// OnStomp and OnPlayerKilled are optional hooks for presentation
	OnStomp        func(enemy Stompable)
	OnPlayerKilled func()
}

// NewEncounterResolver creates a new encounter resolver
func NewEncounterResolver(sink SessionSink) (*EncounterResolver, error) {
	if sink == nil {
		return nil, fmt.Errorf("failed to create encounter resolver: %w: session sink", entity.ErrMissingDependency)
	}
	return &EncounterResolver{sink: sink}, nil
}

// Resolve handles a contact-begin event reported to the enemy. Only the first
// contact normal is classified: pointing down means the player came from above.
func (r *EncounterResolver) Resolve(ev entity.CollisionEvent, player Stomper, enemy Stompable) Encounter {
	if len(ev.Normals) == 0 || enemy.Dead() || player.Disabled() {
		return EncounterNone
	}

	switch ClassifyEncounter(ev.Normals[0]) {
	case EncounterStomp:
		enemy.Die()
		player.Bounce(enemy.DeathBounceHeight())
		r.sink.OnScore(enemy.DeathScore())
		if r.OnStomp != nil {
			r.OnStomp(enemy)
		}
		return EncounterEnemyStomped
	default:
		r.KillPlayer(player)
		return EncounterPlayerKilled
	}
}

// KillPlayer disables the player and reports the death once
func (r *EncounterResolver) KillPlayer(player Stomper) bool {
	if player.Disabled() {
		return false
	}
	player.Disable()
	r.sink.OnDeath()
	if r.OnPlayerKilled != nil {
		r.OnPlayerKilled()
	}
	return true
}
