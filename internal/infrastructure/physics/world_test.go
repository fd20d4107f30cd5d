package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformer/internal/domain/entity"
)

const testDT = 0.02

func createTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(WorldConfig{
		Bounds:  entity.NewRect(-20, -20, 40, 40),
		Gravity: mgl64.Vec2{0, -10},
	})
	require.NoError(t, err)
	return w
}

func addBox(t *testing.T, w *World, kind entity.ActorKind, x, y, gravity float64) *Body {
	t.Helper()
	b, err := w.AddBody(BodySpec{
		Kind:         kind,
		Position:     mgl64.Vec2{x, y},
		HalfExtent:   mgl64.Vec2{0.5, 0.5},
		GravityScale: gravity,
	})
	require.NoError(t, err)
	return b
}

func eventsFor(events []entity.CollisionEvent, self entity.EntityID) []entity.CollisionEvent {
	var out []entity.CollisionEvent
	for _, ev := range events {
		if ev.Self == self {
			out = append(out, ev)
		}
	}
	return out
}

// stepUntil steps until an event for self appears, returning it
func stepUntil(t *testing.T, w *World, self entity.EntityID, maxSteps int) entity.CollisionEvent {
	t.Helper()
	for i := 0; i < maxSteps; i++ {
		if evs := eventsFor(w.Step(testDT), self); len(evs) > 0 {
			return evs[0]
		}
	}
	t.Fatalf("no contact for body %d after %d steps", self, maxSteps)
	return entity.CollisionEvent{}
}

func TestNewWorld_Validation(t *testing.T) {
	_, err := NewWorld(WorldConfig{})
	assert.ErrorIs(t, err, entity.ErrInvalidConfig)

	w := createTestWorld(t)
	_, err = w.AddBody(BodySpec{Kind: entity.KindEnemy, HalfExtent: mgl64.Vec2{0, 1}})
	assert.ErrorIs(t, err, entity.ErrInvalidConfig)

	_, err = w.AddBody(BodySpec{Kind: entity.KindGround, HalfExtent: mgl64.Vec2{1, 1}})
	assert.ErrorIs(t, err, entity.ErrInvalidConfig)
}

func TestWorld_FreeFall(t *testing.T) {
	w := createTestWorld(t)
	b := addBox(t, w, entity.KindEnemy, 0, 5, 1)

	events := w.Step(testDT)

	assert.Empty(t, events)
	assert.InDelta(t, -0.2, b.Velocity().Y(), 1e-9)
	assert.InDelta(t, 5-0.2*testDT, b.Position().Y(), 1e-9)
}

func TestWorld_LandingBeginThenStay(t *testing.T) {
	w := createTestWorld(t)
	floor := w.AddGround(entity.NewRect(0, 0, 10, 1))
	b := addBox(t, w, entity.KindEnemy, 5, 1.6, 1)

	ev := stepUntil(t, w, b.ID(), 50)
	assert.Equal(t, entity.ContactBegin, ev.Phase)
	assert.Equal(t, floor, ev.Other)
	assert.Equal(t, entity.KindGround, ev.OtherKind)
	assert.Equal(t, []mgl64.Vec2{{0, 1}}, ev.Normals)
	assert.InDelta(t, 1.5, b.Position().Y(), 1e-9, "stops flush on the floor")
	assert.Equal(t, 0.0, b.Velocity().Y())

	// Gravity keeps pressing it down, so the contact stays
	evs := eventsFor(w.Step(testDT), b.ID())
	require.Len(t, evs, 1)
	assert.Equal(t, entity.ContactStay, evs[0].Phase)
	assert.InDelta(t, 1.5, b.Position().Y(), 1e-9)
}

func TestWorld_ExitWhenSeparated(t *testing.T) {
	w := createTestWorld(t)
	w.AddGround(entity.NewRect(0, 0, 10, 1))
	b := addBox(t, w, entity.KindEnemy, 5, 1.55, 1)
	stepUntil(t, w, b.ID(), 50)

	b.SetPosition(mgl64.Vec2{5, 8})
	evs := eventsFor(w.Step(testDT), b.ID())

	require.Len(t, evs, 1)
	assert.Equal(t, entity.ContactExit, evs[0].Phase)
	assert.Empty(t, evs[0].Normals)

	assert.Empty(t, eventsFor(w.Step(testDT), b.ID()), "exit is reported once")
}

func TestWorld_WallStopsHorizontalMotion(t *testing.T) {
	w := createTestWorld(t)
	w.AddGround(entity.NewRect(-10, -1, 20, 1))
	wall := w.AddGround(entity.NewRect(-6, 0, 1, 3))
	b := addBox(t, w, entity.KindEnemy, 0, 0.5, 1)

	var hit entity.CollisionEvent
	for i := 0; i < 500 && hit.Other != wall; i++ {
		b.SetVelocity(mgl64.Vec2{-1.5, b.Velocity().Y()})
		for _, ev := range eventsFor(w.Step(testDT), b.ID()) {
			if ev.Other == wall {
				hit = ev
			}
		}
	}

	require.Equal(t, wall, hit.Other)
	assert.Equal(t, entity.ContactBegin, hit.Phase)
	assert.Equal(t, mgl64.Vec2{1, 0}, hit.Normals[0])
	assert.InDelta(t, -4.5, b.Position().X(), 1e-9)
	assert.Equal(t, 0.0, b.Velocity().X())
}

func TestWorld_SeamBetweenGroundsTouchesBoth(t *testing.T) {
	w := createTestWorld(t)
	left := w.AddGround(entity.NewRect(0, 0, 1, 1))
	right := w.AddGround(entity.NewRect(1, 0, 1, 1))
	b := addBox(t, w, entity.KindEnemy, 1, 1.55, 1)

	var evs []entity.CollisionEvent
	for i := 0; i < 50 && len(evs) == 0; i++ {
		evs = eventsFor(w.Step(testDT), b.ID())
	}

	require.Len(t, evs, 2)
	assert.Equal(t, left, evs[0].Other)
	assert.Equal(t, right, evs[1].Other)
}

func TestWorld_BodiesCollideWithEachOther(t *testing.T) {
	w := createTestWorld(t)
	w.AddGround(entity.NewRect(0, 0, 10, 1))
	player := addBox(t, w, entity.KindPlayer, 5, 3, 1)
	enemy := addBox(t, w, entity.KindEnemy, 5, 1.5, 0)

	ev := stepUntil(t, w, enemy.ID(), 100)

	assert.Equal(t, player.ID(), ev.Other)
	assert.Equal(t, entity.KindPlayer, ev.OtherKind)
	assert.Equal(t, mgl64.Vec2{0, -1}, ev.Normals[0], "enemy sees the player from above")
	assert.InDelta(t, 2.5, player.Position().Y(), 1e-9)
}

func TestWorld_SensorPassesThrough(t *testing.T) {
	w := createTestWorld(t)
	w.AddGround(entity.NewRect(0, 0, 10, 1))
	b := addBox(t, w, entity.KindPlayer, 5, 1.6, 1)
	b.SetSolid(false)

	for i := 0; i < 50; i++ {
		assert.Empty(t, eventsFor(w.Step(testDT), b.ID()))
	}
	assert.Less(t, b.Position().Y(), 0.5)
}

func TestWorld_RemoveReportsExitToPartner(t *testing.T) {
	w := createTestWorld(t)
	w.AddGround(entity.NewRect(0, 0, 10, 1))
	player := addBox(t, w, entity.KindPlayer, 5, 2.55, 1)
	enemy := addBox(t, w, entity.KindEnemy, 5, 1.5, 0)

	ev := stepUntil(t, w, player.ID(), 50)
	require.Equal(t, enemy.ID(), ev.Other)

	enemy.Remove()
	assert.True(t, enemy.Removed())
	events := w.Step(testDT)

	require.Len(t, events, 1, "removed bodies get no events")
	assert.Equal(t, entity.ContactExit, events[0].Phase)
	assert.Equal(t, player.ID(), events[0].Self)
	assert.Equal(t, enemy.ID(), events[0].Other)
	assert.Equal(t, entity.KindEnemy, events[0].OtherKind)
	assert.Len(t, w.Bodies(), 1)

	enemy.Remove()
	assert.Len(t, w.Bodies(), 1)
}

func TestWorld_Raycast(t *testing.T) {
	w := createTestWorld(t)
	floor := w.AddGround(entity.NewRect(0, 0, 2, 1))
	down := mgl64.Vec2{0, -1}

	tests := []struct {
		name     string
		origin   mgl64.Vec2
		dir      mgl64.Vec2
		dist     float64
		layer    entity.Layer
		wantHit  bool
		wantDist float64
	}{
		{"ground below", mgl64.Vec2{1.5, 1.3}, down, 0.5, entity.LayerGround, true, 0.3},
		{"ground too far", mgl64.Vec2{1.5, 2}, down, 0.5, entity.LayerGround, false, 0},
		{"past the edge", mgl64.Vec2{2.5, 1}, down, 0.5, entity.LayerGround, false, 0},
		{"exactly on the corner", mgl64.Vec2{2, 1}, down, 0.5, entity.LayerGround, true, 0},
		{"inside the ground", mgl64.Vec2{1, 0.5}, down, 0.5, entity.LayerGround, true, 0},
		{"wrong layer", mgl64.Vec2{1.5, 1.3}, down, 0.5, entity.LayerEnemy, false, 0},
		{"sideways", mgl64.Vec2{-1, 0.5}, mgl64.Vec2{1, 0}, 2, entity.LayerGround, true, 1},
		{"zero distance", mgl64.Vec2{1.5, 1.3}, down, 0, entity.LayerGround, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := w.Raycast(tt.origin, tt.dir, tt.dist, tt.layer)
			assert.Equal(t, tt.wantHit, hit.Hit)
			if tt.wantHit {
				assert.InDelta(t, tt.wantDist, hit.Distance, 1e-9)
				assert.Equal(t, floor, hit.Other)
			}
		})
	}
}

func TestWorld_AddStage(t *testing.T) {
	w := createTestWorld(t)
	stage := &entity.Stage{
		Width:  3,
		Height: 2,
		Tiles: [][]entity.Tile{
			{{}, {}, {Type: entity.TileWall, Solid: true}},
			{{Type: entity.TileGround, Solid: true}, {Type: entity.TileGround, Solid: true}, {Type: entity.TileGround, Solid: true}},
		},
	}

	w.AddStage(stage)

	assert.Equal(t, []entity.Rect{entity.NewRect(2, 1, 1, 1), entity.NewRect(0, 0, 3, 1)}, w.Grounds())
	assert.True(t, w.Raycast(mgl64.Vec2{0.5, 1.2}, mgl64.Vec2{0, -1}, 0.5, entity.LayerGround).Hit)
}
