package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestIsGrounded(t *testing.T) {
	tests := []struct {
		name    string
		normals []mgl64.Vec2
		want    bool
	}{
		{"no contacts", nil, false},
		{"floor", []mgl64.Vec2{{0, 1}}, true},
		{"wall only", []mgl64.Vec2{{1, 0}}, false},
		{"ceiling", []mgl64.Vec2{{0, -1}}, false},
		{"floor after wall", []mgl64.Vec2{{-1, 0}, {0, 1}}, true},
		{"sloped normal never grounds", []mgl64.Vec2{{0.6, 0.8}}, false},
		{"almost up is not up", []mgl64.Vec2{{0, 0.9999999}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGrounded(tt.normals))
		})
	}
}

func TestClassifyEncounter(t *testing.T) {
	tests := []struct {
		name   string
		normal mgl64.Vec2
		want   EncounterKind
	}{
		{"landed on top", mgl64.Vec2{0, -1}, EncounterStomp},
		{"from the left", mgl64.Vec2{-1, 0}, EncounterSideHit},
		{"from the right", mgl64.Vec2{1, 0}, EncounterSideHit},
		{"from below", mgl64.Vec2{0, 1}, EncounterSideHit},
		{"diagonal", mgl64.Vec2{0.7071, -0.7071}, EncounterSideHit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyEncounter(tt.normal))
		})
	}
}

func TestIsWallContact(t *testing.T) {
	assert.True(t, IsWallContact(mgl64.Vec2{1, 0}))
	assert.True(t, IsWallContact(mgl64.Vec2{-1, 0}))
	assert.False(t, IsWallContact(mgl64.Vec2{0, 1}))
	assert.False(t, IsWallContact(mgl64.Vec2{0.1, 0.99}))
}

func TestEncounterKind_String(t *testing.T) {
	assert.Equal(t, "Stomp", EncounterStomp.String())
	assert.Equal(t, "SideHit", EncounterSideHit.String())
}
