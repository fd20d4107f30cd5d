package entity

import "github.com/go-gl/mathgl/mgl64"

// ContactPhase is the lifecycle stage of a contact between two bodies
type ContactPhase int

const (
	ContactBegin ContactPhase = iota
	ContactStay
	ContactExit
)

func (p ContactPhase) String() string {
	switch p {
	case ContactBegin:
		return "Begin"
	case ContactStay:
		return "Stay"
	case ContactExit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// CollisionEvent is reported to Self about its contact with Other.
// Normals point outward from Other toward Self, one per contact point, in the
// order the backend found them. Exit events carry no normals.
type CollisionEvent struct {
	Phase     ContactPhase
	Self      EntityID
	Other     EntityID
	OtherKind ActorKind
	Normals   []mgl64.Vec2
}
