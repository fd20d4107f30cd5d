package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"

	"github.com/younwookim/platformer/internal/domain/entity"
)

const (
	// spaceScale is resolv units per world unit; one resolv cell covers one tile
	spaceScale = 64
	// queryPad widens broadphase queries past resolv's cell rounding
	queryPad = 2.0 / spaceScale
	// contactEpsilon is the overlap below which two boxes only touch
	contactEpsilon = 1e-6

	tagQuery = "query"
)

var solidTags = []string{string(entity.LayerGround), string(entity.LayerPlayer), string(entity.LayerEnemy)}

// WorldConfig configures a physics world
type WorldConfig struct {
	// Bounds is the region where collisions happen. Bodies outside it move
	// freely and hit nothing.
	Bounds  entity.Rect
	Gravity mgl64.Vec2
}

type contactKey struct {
	self, other entity.EntityID
}

type contact struct {
	key       contactKey
	otherKind entity.ActorKind
	normals   []mgl64.Vec2
}

// World is a kinematic box world: bodies carry velocity, are moved one axis at
// a time, stop flush against solids and report contacts as events. There is
// no restitution, friction or mass; controllers own all of that.
type World struct {
	cfg   WorldConfig
	space *resolv.Space
	query *resolv.Object

	nextID  entity.EntityID
	bodies  []*Body
	grounds []*ground

	prev     []*contact
	current  []*contact
	byKey    map[contactKey]*contact
	prevKeys map[contactKey]struct{}
}

// NewWorld creates an empty world covering cfg.Bounds
func NewWorld(cfg WorldConfig) (*World, error) {
	w, h := cfg.Bounds.Width(), cfg.Bounds.Height()
	if !(w > 0 && h > 0) {
		return nil, fmt.Errorf("failed to create world: %w: bounds %v", entity.ErrInvalidConfig, cfg.Bounds)
	}

	space := resolv.NewSpace(int(math.Ceil(w*spaceScale)), int(math.Ceil(h*spaceScale)), spaceScale, spaceScale)
	query := resolv.NewObject(0, 0, 1, 1, tagQuery)
	space.Add(query)

	return &World{
		cfg:      cfg,
		space:    space,
		query:    query,
		byKey:    make(map[contactKey]*contact),
		prevKeys: make(map[contactKey]struct{}),
	}, nil
}

// AddGround adds a static solid rect and returns its id
func (w *World) AddGround(r entity.Rect) entity.EntityID {
	w.nextID++
	g := &ground{id: w.nextID, rect: r}
	g.obj = resolv.NewObject(0, 0, 1, 1, string(entity.LayerGround))
	g.obj.Data = g
	w.space.Add(g.obj)
	w.place(g.obj, r)
	w.grounds = append(w.grounds, g)
	return g.id
}

// AddStage adds one ground collider per horizontal run of solid tiles
func (w *World) AddStage(stage *entity.Stage) {
	for _, r := range stage.SolidRuns() {
		w.AddGround(r)
	}
}

// AddBody adds a dynamic body
func (w *World) AddBody(spec BodySpec) (*Body, error) {
	if err := entity.ValidateHalfExtent(spec.HalfExtent); err != nil {
		return nil, fmt.Errorf("failed to add body: %w", err)
	}

	var tag string
	switch spec.Kind {
	case entity.KindPlayer:
		tag = string(entity.LayerPlayer)
	case entity.KindEnemy:
		tag = string(entity.LayerEnemy)
	default:
		return nil, fmt.Errorf("failed to add body: %w: kind %s cannot move", entity.ErrInvalidConfig, spec.Kind)
	}

	w.nextID++
	b := &Body{
		world:        w,
		id:           w.nextID,
		kind:         spec.Kind,
		pos:          spec.Position,
		half:         spec.HalfExtent,
		gravityScale: spec.GravityScale,
		solid:        true,
	}
	b.obj = resolv.NewObject(0, 0, 1, 1, tag)
	b.obj.Data = b
	w.space.Add(b.obj)
	w.place(b.obj, b.bounds())
	w.bodies = append(w.bodies, b)
	return b, nil
}

// Step integrates world gravity, moves every body by velocity*dt and returns
// the contact events of this step: exits first, then begins and stays in the
// order they were found.
func (w *World) Step(dt float64) []entity.CollisionEvent {
	w.beginContacts()

	live := w.bodies[:0]
	for _, b := range w.bodies {
		if b.removed {
			continue
		}
		live = append(live, b)

		b.vel = b.vel.Add(w.cfg.Gravity.Mul(b.gravityScale * dt))
		w.moveAxis(b, 0, b.vel.X()*dt)
		w.moveAxis(b, 1, b.vel.Y()*dt)
		w.place(b.obj, b.bounds())
	}
	for i := len(live); i < len(w.bodies); i++ {
		w.bodies[i] = nil
	}
	w.bodies = live

	return w.endContacts()
}

// moveAxis moves b along one axis, stopping at the nearest solid in the way
func (w *World) moveAxis(b *Body, axis int, delta float64) {
	if delta == 0 {
		return
	}
	if !b.solid {
		b.pos[axis] += delta
		return
	}

	other := 1 - axis
	dir := 1.0
	if delta < 0 {
		dir = -1
	}
	dist := math.Abs(delta)
	from := b.bounds()
	to := from
	to.Min[axis] += delta
	to.Max[axis] += delta

	blocked := false
	nearest := dist
	var hits []collider
	for _, c := range w.candidates(union(from, to), solidTags) {
		if c.colliderID() == b.id || !c.isSolid() {
			continue
		}
		r := c.bounds()
		if !overlaps(from.Min[other], from.Max[other], r.Min[other], r.Max[other]) {
			continue
		}

		var gap float64
		if dir > 0 {
			gap = r.Min[axis] - from.Max[axis]
		} else {
			gap = from.Min[axis] - r.Max[axis]
		}
		// Already interpenetrating along this axis, or out of reach
		if gap < -contactEpsilon || dist <= gap+contactEpsilon {
			continue
		}
		gap = math.Max(gap, 0)

		switch {
		case !blocked || gap < nearest-contactEpsilon:
			blocked = true
			nearest = gap
			hits = append(hits[:0], c)
		case gap <= nearest+contactEpsilon:
			nearest = math.Min(nearest, gap)
			hits = append(hits, c)
		}
	}

	if !blocked {
		b.pos[axis] += delta
		return
	}
	b.pos[axis] += dir * nearest
	b.vel[axis] = 0

	// Normals point away from the other body
	var n, opposite mgl64.Vec2
	n[axis] = -dir
	opposite[axis] = dir
	for _, c := range hits {
		w.touch(b.id, c.colliderID(), c.colliderKind(), n)
		if ob, ok := c.(*Body); ok {
			w.touch(ob.id, b.id, b.kind, opposite)
		}
	}
}

// Raycast casts a segment from origin along dir and reports the nearest solid
// of the given layer within maxDist. An origin inside a collider hits at 0.
func (w *World) Raycast(origin, dir mgl64.Vec2, maxDist float64, layer entity.Layer) entity.RaycastHit {
	if maxDist <= 0 || dir.Len() == 0 {
		return entity.RaycastHit{}
	}
	d := dir.Normalize()
	end := origin.Add(d.Mul(maxDist))
	seg := entity.Rect{
		Min: mgl64.Vec2{math.Min(origin.X(), end.X()), math.Min(origin.Y(), end.Y())},
		Max: mgl64.Vec2{math.Max(origin.X(), end.X()), math.Max(origin.Y(), end.Y())},
	}

	best := entity.RaycastHit{}
	for _, c := range w.candidates(seg, []string{string(layer)}) {
		if !c.isSolid() {
			continue
		}
		t, ok := segmentHit(origin, d, maxDist, c.bounds())
		if ok && (!best.Hit || t < best.Distance) {
			best = entity.RaycastHit{Hit: true, Distance: t, Other: c.colliderID()}
		}
	}
	return best
}

// Bodies returns the live dynamic bodies in insertion order
func (w *World) Bodies() []*Body {
	out := make([]*Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		if !b.removed {
			out = append(out, b)
		}
	}
	return out
}

// Grounds returns the rects of all static colliders
func (w *World) Grounds() []entity.Rect {
	out := make([]entity.Rect, len(w.grounds))
	for i, g := range w.grounds {
		out[i] = g.rect
	}
	return out
}

func (w *World) remove(b *Body) {
	if b.removed {
		return
	}
	b.removed = true
	b.vel = mgl64.Vec2{}
	w.space.Remove(b.obj)
}

// candidates returns colliders whose resolv objects share cells with r,
// ordered by id so results do not depend on cell iteration order
func (w *World) candidates(r entity.Rect, tags []string) []collider {
	pad := mgl64.Vec2{queryPad, queryPad}
	w.place(w.query, entity.Rect{Min: r.Min.Sub(pad), Max: r.Max.Add(pad)})

	check := w.query.Check(0, 0, tags...)
	if check == nil {
		return nil
	}
	out := make([]collider, 0, len(check.Objects))
	for _, o := range check.Objects {
		if c, ok := o.Data.(collider); ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].colliderID() < out[j].colliderID() })
	return out
}

// place moves a resolv object to mirror a world rect
func (w *World) place(obj *resolv.Object, r entity.Rect) {
	origin := w.cfg.Bounds.Min
	obj.X = (r.Min.X() - origin.X()) * spaceScale
	obj.Y = (r.Min.Y() - origin.Y()) * spaceScale
	obj.W = r.Width() * spaceScale
	obj.H = r.Height() * spaceScale
	obj.Update()
}

func (w *World) beginContacts() {
	w.current = nil
	w.byKey = make(map[contactKey]*contact)
}

func (w *World) touch(self, other entity.EntityID, otherKind entity.ActorKind, n mgl64.Vec2) {
	key := contactKey{self: self, other: other}
	c, ok := w.byKey[key]
	if !ok {
		c = &contact{key: key, otherKind: otherKind}
		w.byKey[key] = c
		w.current = append(w.current, c)
	}
	for _, existing := range c.normals {
		if existing == n {
			return
		}
	}
	c.normals = append(c.normals, n)
}

func (w *World) endContacts() []entity.CollisionEvent {
	var events []entity.CollisionEvent

	for _, c := range w.prev {
		if _, still := w.byKey[c.key]; still || w.isRemoved(c.key.self) {
			continue
		}
		events = append(events, entity.CollisionEvent{
			Phase:     entity.ContactExit,
			Self:      c.key.self,
			Other:     c.key.other,
			OtherKind: c.otherKind,
		})
	}

	keys := make(map[contactKey]struct{}, len(w.current))
	for _, c := range w.current {
		phase := entity.ContactBegin
		if _, seen := w.prevKeys[c.key]; seen {
			phase = entity.ContactStay
		}
		events = append(events, entity.CollisionEvent{
			Phase:     phase,
			Self:      c.key.self,
			Other:     c.key.other,
			OtherKind: c.otherKind,
			Normals:   c.normals,
		})
		keys[c.key] = struct{}{}
	}

	w.prev = w.current
	w.prevKeys = keys
	return events
}

func (w *World) isRemoved(id entity.EntityID) bool {
	for _, b := range w.bodies {
		if b.id == id {
			return b.removed
		}
	}
	// Not a live body: either ground or already compacted away
	for _, g := range w.grounds {
		if g.id == id {
			return false
		}
	}
	return true
}

func union(a, b entity.Rect) entity.Rect {
	return entity.Rect{
		Min: mgl64.Vec2{math.Min(a.Min.X(), b.Min.X()), math.Min(a.Min.Y(), b.Min.Y())},
		Max: mgl64.Vec2{math.Max(a.Max.X(), b.Max.X()), math.Max(a.Max.Y(), b.Max.Y())},
	}
}

// overlaps reports a strictly positive overlap of two intervals
func overlaps(aMin, aMax, bMin, bMax float64) bool {
	return aMin < bMax-contactEpsilon && aMax > bMin+contactEpsilon
}

// segmentHit is a slab test of the segment origin + d*t, t in [0, maxDist],
// against r. Boundaries count as hits.
func segmentHit(origin, d mgl64.Vec2, maxDist float64, r entity.Rect) (float64, bool) {
	tmin, tmax := 0.0, maxDist
	for axis := 0; axis < 2; axis++ {
		if math.Abs(d[axis]) < 1e-12 {
			if origin[axis] < r.Min[axis] || origin[axis] > r.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (r.Min[axis] - origin[axis]) / d[axis]
		t2 := (r.Max[axis] - origin[axis]) / d[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
