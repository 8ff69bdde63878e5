package level

import (
	"context"
	"errors"
	"fmt"

	"github.com/udisondev/floorspawn/internal/model"
	"github.com/udisondev/floorspawn/internal/physics"
	"github.com/udisondev/floorspawn/internal/tilemap"
)

// ErrNotFound is returned when a source has no level with the given name.
var ErrNotFound = errors.New("level not found")

// Tile IDs painted by layouts.
const (
	TileFloor tilemap.TileID = 1
	TileWall  tilemap.TileID = 2
)

// DefaultWallLayer is the layer layout walls go on unless a level names another.
const DefaultWallLayer = "Wall"

// Entity is an object already present in the scene when it starts.
type Entity struct {
	Name     string
	Tag      string
	Position model.Vec3
}

// Level is a floor tilemap plus the static colliders laid over it.
type Level struct {
	Name      string
	Floor     *tilemap.Tilemap
	Physics   *physics.World
	Layers    *physics.Layers
	WallLayer string // layer of layout walls, blocks spawning
	Entities  []Entity
}

// New creates an empty level with default layers.
func New(name string, floor *tilemap.Tilemap) *Level {
	return &Level{
		Name:      name,
		Floor:     floor,
		Physics:   physics.NewWorld(),
		Layers:    physics.DefaultLayers(),
		WallLayer: DefaultWallLayer,
	}
}

// ObstacleMask returns the mask of layers that block spawning. A
// non-empty override replaces the level's own wall layer.
func (l *Level) ObstacleMask(override string) (physics.Mask, error) {
	name := l.WallLayer
	if override != "" {
		name = override
	}
	if name == "" {
		name = DefaultWallLayer
	}
	mask, err := l.Layers.GetMask(name)
	if err != nil {
		return 0, fmt.Errorf("level %q obstacle mask: %w", l.Name, err)
	}
	return mask, nil
}

// Source loads levels by name.
type Source interface {
	Load(ctx context.Context, name string) (*Level, error)
}
