package db

import (
	"fmt"

	"github.com/udisondev/floorspawn/internal/level"
	"github.com/udisondev/floorspawn/internal/model"
	"github.com/udisondev/floorspawn/internal/physics"
)

// Collider kinds as stored in level_colliders.kind.
const (
	colliderBox    = "box"
	colliderCircle = "circle"
)

// ColliderRow is one level_colliders row.
type ColliderRow struct {
	Kind         string
	CenterX      float64
	CenterY      float64
	SizeX, SizeY float64
	Radius       float64
	LayerIndex   int32
	Tag          string
}

// TileRow is one floor_tiles row.
type TileRow struct {
	CellX  int32
	CellY  int32
	TileID int32
}

// EntityRow is one level_entities row.
type EntityRow struct {
	Name string
	Tag  string
	X    float64
	Y    float64
	Z    float64
}

func entityToRow(e level.Entity) EntityRow {
	return EntityRow{Name: e.Name, Tag: e.Tag, X: e.Position.X, Y: e.Position.Y, Z: e.Position.Z}
}

// Entity converts the row back to a level entity.
func (r EntityRow) Entity() level.Entity {
	return level.Entity{Name: r.Name, Tag: r.Tag, Position: model.Vec3{X: r.X, Y: r.Y, Z: r.Z}}
}

// colliderToRow flattens a physics collider for storage.
func colliderToRow(c physics.Collider) (ColliderRow, error) {
	switch v := c.(type) {
	case *physics.BoxCollider:
		return ColliderRow{
			Kind:       colliderBox,
			CenterX:    v.Center.X,
			CenterY:    v.Center.Y,
			SizeX:      v.Size.X,
			SizeY:      v.Size.Y,
			LayerIndex: int32(v.LayerIndex),
			Tag:        v.Tag,
		}, nil
	case *physics.CircleCollider:
		return ColliderRow{
			Kind:       colliderCircle,
			CenterX:    v.Center.X,
			CenterY:    v.Center.Y,
			Radius:     v.Radius,
			LayerIndex: int32(v.LayerIndex),
			Tag:        v.Tag,
		}, nil
	default:
		return ColliderRow{}, fmt.Errorf("unsupported collider type %T", c)
	}
}

// Collider rebuilds the physics collider.
func (r ColliderRow) Collider() (physics.Collider, error) {
	center := model.Vec2{X: r.CenterX, Y: r.CenterY}
	switch r.Kind {
	case colliderBox:
		return &physics.BoxCollider{
			Center:     center,
			Size:       model.Vec2{X: r.SizeX, Y: r.SizeY},
			LayerIndex: int(r.LayerIndex),
			Tag:        r.Tag,
		}, nil
	case colliderCircle:
		return &physics.CircleCollider{
			Center:     center,
			Radius:     r.Radius,
			LayerIndex: int(r.LayerIndex),
			Tag:        r.Tag,
		}, nil
	default:
		return nil, fmt.Errorf("unknown collider kind %q", r.Kind)
	}
}
