package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/platformer/internal/domain/entity"
)

// EncounterKind is the outcome class of a player/enemy contact
type EncounterKind int

const (
	EncounterSideHit EncounterKind = iota
	EncounterStomp
)

func (k EncounterKind) String() string {
	if k == EncounterStomp {
		return "Stomp"
	}
	return "SideHit"
}

// Normals are compared with exact equality. Colliders are axis-aligned, so
// contact normals are exact unit axes; sloped or noisy normals match nothing.

// IsGrounded reports whether any contact normal points straight up
func IsGrounded(normals []mgl64.Vec2) bool {
	for _, n := range normals {
		if n.Dot(entity.Up) == 1 {
			return true
		}
	}
	return false
}

// ClassifyEncounter classifies a single contact normal reported to the enemy.
// A normal pointing straight down means the player landed on top.
func ClassifyEncounter(normal mgl64.Vec2) EncounterKind {
	if normal.Dot(entity.Up) == -1 {
		return EncounterStomp
	}
	return EncounterSideHit
}

// IsWallContact reports whether a contact normal is horizontal
func IsWallContact(normal mgl64.Vec2) bool {
	return normal.Dot(entity.Up) == 0
}
