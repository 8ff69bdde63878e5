package level

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/floorspawn/internal/model"
	"github.com/udisondev/floorspawn/internal/physics"
	"github.com/udisondev/floorspawn/internal/tilemap"
)

const smallLevel = `
name: small
rows:
  - "###"
  - "#.x"
  - ".. "
`

func TestParseLayout(t *testing.T) {
	lvl, err := Parse([]byte(smallLevel))
	require.NoError(t, err)

	assert.Equal(t, "small", lvl.Name)
	// Bottom row is y=0.
	assert.Equal(t, TileFloor, lvl.Floor.Tile(tilemap.Cell{X: 0, Y: 0}))
	assert.Equal(t, TileFloor, lvl.Floor.Tile(tilemap.Cell{X: 1, Y: 0}))
	assert.False(t, lvl.Floor.HasTile(tilemap.Cell{X: 2, Y: 0}))
	assert.Equal(t, TileWall, lvl.Floor.Tile(tilemap.Cell{X: 0, Y: 1}))
	assert.Equal(t, TileFloor, lvl.Floor.Tile(tilemap.Cell{X: 1, Y: 1}))
	assert.False(t, lvl.Floor.HasTile(tilemap.Cell{X: 2, Y: 1}), "solid cell has no floor")
	assert.Equal(t, TileWall, lvl.Floor.Tile(tilemap.Cell{X: 2, Y: 2}))

	// 3 walls on top row + 1 wall + 1 solid in the middle row.
	assert.Equal(t, 5, lvl.Physics.Len())
	for _, c := range lvl.Physics.Colliders() {
		assert.Equal(t, physics.LayerWall, c.Layer())
	}

	_, hit := lvl.Physics.OverlapCircle(model.Vec2{X: 2.5, Y: 1.5}, 0.3, physics.LayerBit(physics.LayerWall))
	assert.True(t, hit)
	_, hit = lvl.Physics.OverlapCircle(model.Vec2{X: 1.5, Y: 0.5}, 0.3, physics.LayerBit(physics.LayerWall))
	assert.False(t, hit)
}

func TestParseCustomLegendLayersAndColliders(t *testing.T) {
	data := `
name: custom
cell_size: {x: 2, y: 2}
origin: {x: -4, y: -4, z: 0}
layers:
  Water: 4
legend:
  "~": floor
rows:
  - "~~"
colliders:
  - kind: box
    center: {x: -3, y: -3}
    size: {x: 2, y: 2}
    layer: Water
  - kind: circle
    center: {x: -1, y: -3}
    radius: 0.5
`
	lvl, err := Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, model.Vec2{X: 2, Y: 2}, lvl.Floor.CellSize())
	assert.Equal(t, 2, lvl.Floor.TileCount())
	require.Equal(t, 2, lvl.Physics.Len())

	box, ok := lvl.Physics.Colliders()[0].(*physics.BoxCollider)
	require.True(t, ok)
	assert.Equal(t, 4, box.Layer())

	circle, ok := lvl.Physics.Colliders()[1].(*physics.CircleCollider)
	require.True(t, ok)
	assert.Equal(t, physics.LayerWall, circle.Layer())
	assert.Equal(t, 0.5, circle.Radius)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "rows: [\"#\""},
		{"unknown char", "rows: [\"?\"]"},
		{"unknown kind", "legend: {\"~\": lava}\nrows: [\"~\"]"},
		{"unknown wall layer", "wall_layer: Glass\nrows: [\".\"]"},
		{"layer out of range", "layers: {Sky: 99}"},
		{"unknown collider layer", "colliders: [{kind: box, size: {x: 1, y: 1}, layer: Glass}]"},
		{"zero box", "colliders: [{kind: box}]"},
		{"zero circle", "colliders: [{kind: circle}]"},
		{"unknown collider kind", "colliders: [{kind: capsule}]"},
		{"unnamed entity", "entities: [{tag: Player}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseCustomWallLayer(t *testing.T) {
	data := `
name: quarry
layers: {Rock: 3}
wall_layer: Rock
rows:
  - "##"
  - "#."
`
	lvl, err := Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "Rock", lvl.WallLayer)
	for _, c := range lvl.Physics.Colliders() {
		assert.Equal(t, 3, c.Layer())
	}

	mask, err := lvl.ObstacleMask("")
	require.NoError(t, err)
	assert.Equal(t, physics.LayerBit(3), mask)

	mask, err = lvl.ObstacleMask("Wall")
	require.NoError(t, err)
	assert.Equal(t, physics.LayerBit(physics.LayerWall), mask, "override wins over the level layer")

	_, err = lvl.ObstacleMask("Lava")
	assert.Error(t, err)
}

func TestParseDefaultWallLayer(t *testing.T) {
	lvl, err := Parse([]byte(smallLevel))
	require.NoError(t, err)

	assert.Equal(t, DefaultWallLayer, lvl.WallLayer)
	assert.Empty(t, lvl.Entities)
}

func TestParseEntities(t *testing.T) {
	data := `
rows: ["..."]
entities:
  - name: Hero
    tag: Player
    position: {x: 0.5, y: 0.5, z: -1}
  - name: Crate
    position: {x: 2.5, y: 0.5}
`
	lvl, err := Parse([]byte(data))
	require.NoError(t, err)

	require.Len(t, lvl.Entities, 2)
	assert.Equal(t, Entity{Name: "Hero", Tag: model.TagPlayer, Position: model.NewVec3(0.5, 0.5, -1)}, lvl.Entities[0])
	assert.Equal(t, Entity{Name: "Crate", Position: model.NewVec3(2.5, 0.5, 0)}, lvl.Entities[1])
}

func TestFileSourceLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "small.yaml"), []byte("rows: [\"..\"]"), 0o600))

	src := NewFileSource(dir)
	lvl, err := src.Load(context.Background(), "small")
	require.NoError(t, err)
	assert.Equal(t, "small", lvl.Name, "name falls back to file name")
	assert.Equal(t, 2, lvl.Floor.TileCount())

	_, err = src.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBundledArenaLevel(t *testing.T) {
	lvl, err := LoadFile(filepath.Join("..", "..", "levels", "arena.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "arena", lvl.Name)
	assert.Equal(t, tilemap.Cell{X: 10, Y: 8}, lvl.Floor.CellBounds().Size)
	assert.Greater(t, lvl.Physics.Len(), 0)
}

func TestBundledQuarryLevel(t *testing.T) {
	lvl, err := LoadFile(filepath.Join("..", "..", "levels", "quarry.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Rock", lvl.WallLayer)
	require.Len(t, lvl.Entities, 1)
	assert.Equal(t, model.TagPlayer, lvl.Entities[0].Tag)

	// The miner starts inside the rock block.
	mask, err := lvl.ObstacleMask("")
	require.NoError(t, err)
	_, hit := lvl.Physics.OverlapCircle(lvl.Entities[0].Position.XY(), 0.3, mask)
	assert.True(t, hit)
}
