package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// EntityID is a unique identifier for an entity
type EntityID uint32

// ActorKind tells collision handlers what sits on the other side of a contact
type ActorKind int

const (
	KindGround ActorKind = iota
	KindPlayer
	KindEnemy
)

func (k ActorKind) String() string {
	switch k {
	case KindGround:
		return "Ground"
	case KindPlayer:
		return "Player"
	case KindEnemy:
		return "Enemy"
	default:
		return "Unknown"
	}
}

// Layer is a collision classification used by probes
type Layer string

const (
	LayerGround Layer = "ground"
	LayerPlayer Layer = "player"
	LayerEnemy  Layer = "enemy"
)

// Up is the world up direction. The world is y-up.
var Up = mgl64.Vec2{0, 1}

// Rect is an axis-aligned rectangle in world units, Min is the lower-left corner
type Rect struct {
	Min, Max mgl64.Vec2
}

// NewRect builds a rect from its lower-left corner and size
func NewRect(x, y, w, h float64) Rect {
	return Rect{Min: mgl64.Vec2{x, y}, Max: mgl64.Vec2{x + w, y + h}}
}

// RectFromCenter builds a rect from a center point and half extent
func RectFromCenter(center, half mgl64.Vec2) Rect {
	return Rect{Min: center.Sub(half), Max: center.Add(half)}
}

// Width returns the horizontal size
func (r Rect) Width() float64 { return r.Max.X() - r.Min.X() }

// Height returns the vertical size
func (r Rect) Height() float64 { return r.Max.Y() - r.Min.Y() }

// Center returns the middle point
func (r Rect) Center() mgl64.Vec2 {
	return r.Min.Add(r.Max).Mul(0.5)
}

// Bounds is the visible world rectangle reported by a viewport
type Bounds = Rect

// RaycastHit is the result of a discrete probe
type RaycastHit struct {
	Hit      bool
	Distance float64
	Other    EntityID
}

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileWall
	TileGround
)

// Tile represents a single tile in the stage
type Tile struct {
	Type  TileType
	Solid bool
}

// Stage holds the tile grid of a level. Rows are stored top to bottom as
// authored; one tile is one world unit and world y grows upward.
type Stage struct {
	Width  int
	Height int
	Tiles  [][]Tile
	SpawnX float64
	SpawnY float64
}

// GetTile returns the tile at the given tile coordinates (row 0 is the top row)
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileWall, Solid: true}
	}
	return s.Tiles[ty][tx]
}

// TileAtWorld returns the tile covering a world-space point
func (s *Stage) TileAtWorld(p mgl64.Vec2) Tile {
	tx := int(math.Floor(p.X()))
	ty := s.Height - 1 - int(math.Floor(p.Y()))
	return s.GetTile(tx, ty)
}

// IsSolidAt checks if the tile under a world-space point is solid
func (s *Stage) IsSolidAt(p mgl64.Vec2) bool {
	return s.TileAtWorld(p).Solid
}

// TileRect returns the world rect of a tile
func (s *Stage) TileRect(tx, ty int) Rect {
	return NewRect(float64(tx), float64(s.Height-1-ty), 1, 1)
}

// SolidRuns merges horizontally adjacent solid tiles of each row into one
// rect, so a flat floor becomes a single collider without internal seams.
func (s *Stage) SolidRuns() []Rect {
	var runs []Rect
	for ty := 0; ty < s.Height; ty++ {
		start := -1
		for tx := 0; tx <= s.Width; tx++ {
			solid := tx < s.Width && s.Tiles[ty][tx].Solid
			if solid && start < 0 {
				start = tx
			}
			if !solid && start >= 0 {
				r := s.TileRect(start, ty)
				r.Max[0] = float64(tx)
				runs = append(runs, r)
				start = -1
			}
		}
	}
	return runs
}

// WorldBounds returns the rect covered by the tile grid
func (s *Stage) WorldBounds() Rect {
	return NewRect(0, 0, float64(s.Width), float64(s.Height))
}

