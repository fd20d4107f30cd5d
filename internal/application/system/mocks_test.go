package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/platformer/internal/domain/entity"
)

// mockBody is an in-memory Body. integrate moves it the way a backend would,
// without any collision.
type mockBody struct {
	id      entity.EntityID
	pos     mgl64.Vec2
	vel     mgl64.Vec2
	half    mgl64.Vec2
	solid   bool
	removed bool
}

func newMockBody(x, y float64) *mockBody {
	return &mockBody{
		id:    1,
		pos:   mgl64.Vec2{x, y},
		half:  mgl64.Vec2{0.5, 0.5},
		solid: true,
	}
}

func (b *mockBody) ID() entity.EntityID { return b.id }
func (b *mockBody) Position() mgl64.Vec2 { return b.pos }
func (b *mockBody) SetPosition(p mgl64.Vec2) { b.pos = p }
func (b *mockBody) Velocity() mgl64.Vec2 { return b.vel }
func (b *mockBody) SetVelocity(v mgl64.Vec2) { b.vel = v }
func (b *mockBody) HalfExtent() mgl64.Vec2 { return b.half }
func (b *mockBody) SetSolid(solid bool) { b.solid = solid }
func (b *mockBody) Remove() { b.removed = true }
func (b *mockBody) integrate(dt float64) { b.pos = b.pos.Add(b.vel.Mul(dt)) }

type mockViewport struct {
	bounds entity.Bounds
}

func (v mockViewport) Bounds() entity.Bounds { return v.bounds }

// wideViewport sees everything from x=-100 to x=100 and y=-100 to y=100
func wideViewport() mockViewport {
	return mockViewport{bounds: entity.NewRect(-100, -100, 200, 200)}
}

// mockProber answers probes from a list of solid ground rects
type mockProber struct {
	ground []entity.Rect
	calls  int
}

func (p *mockProber) Raycast(origin, dir mgl64.Vec2, maxDist float64, layer entity.Layer) entity.RaycastHit {
	p.calls++
	if layer != entity.LayerGround || dir != (mgl64.Vec2{0, -1}) {
		return entity.RaycastHit{}
	}
	best := entity.RaycastHit{}
	for _, r := range p.ground {
		if origin.X() < r.Min.X() || origin.X() > r.Max.X() || origin.Y() < r.Min.Y() {
			continue
		}
		d := math.Max(0, origin.Y()-r.Max.Y())
		if d <= maxDist && (!best.Hit || d < best.Distance) {
			best = entity.RaycastHit{Hit: true, Distance: d}
		}
	}
	return best
}

type mockSink struct {
	score  int
	scores []int
	deaths int
}

func (s *mockSink) OnScore(amount int) {
	s.score += amount
	s.scores = append(s.scores, amount)
}

func (s *mockSink) OnDeath() { s.deaths++ }

func groundEvent(phase entity.ContactPhase, other entity.EntityID) entity.CollisionEvent {
	ev := entity.CollisionEvent{Phase: phase, Self: 1, Other: other, OtherKind: entity.KindGround}
	if phase != entity.ContactExit {
		ev.Normals = []mgl64.Vec2{{0, 1}}
	}
	return ev
}
