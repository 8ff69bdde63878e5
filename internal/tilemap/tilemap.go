package tilemap

import (
	"math"

	"github.com/udisondev/floorspawn/internal/model"
)

// TileID identifies the tile asset painted in a cell. Zero is reserved
// for "no tile" and is never stored.
type TileID int32

// Tilemap is a sparse grid of painted cells mapped onto world space.
// Not safe for concurrent mutation; reads after loading are fine.
type Tilemap struct {
	tiles    map[Cell]TileID
	cellSize model.Vec2
	origin   model.Vec3
}

// New creates an empty tilemap. Non-positive cell size components
// fall back to 1.
func New(cellSize model.Vec2, origin model.Vec3) *Tilemap {
	if cellSize.X <= 0 {
		cellSize.X = 1
	}
	if cellSize.Y <= 0 {
		cellSize.Y = 1
	}
	return &Tilemap{
		tiles:    make(map[Cell]TileID),
		cellSize: cellSize,
		origin:   origin,
	}
}

// NewDefault creates an empty tilemap with unit cells at the origin.
func NewDefault() *Tilemap {
	return New(model.Vec2{X: 1, Y: 1}, model.Vec3{})
}

// CellSize returns the world size of one cell.
func (t *Tilemap) CellSize() model.Vec2 {
	return t.cellSize
}

// Origin returns the world position of cell (0,0)'s lower-left corner.
func (t *Tilemap) Origin() model.Vec3 {
	return t.origin
}

// SetTile paints a tile. Setting TileID 0 clears the cell.
func (t *Tilemap) SetTile(c Cell, id TileID) {
	if id == 0 {
		delete(t.tiles, c)
		return
	}
	t.tiles[c] = id
}

// ClearTile removes the tile at c.
func (t *Tilemap) ClearTile(c Cell) {
	delete(t.tiles, c)
}

// HasTile reports whether c is painted.
func (t *Tilemap) HasTile(c Cell) bool {
	_, ok := t.tiles[c]
	return ok
}

// Tile returns the tile at c (0 if empty).
func (t *Tilemap) Tile(c Cell) TileID {
	return t.tiles[c]
}

// TileCount returns the number of painted cells.
func (t *Tilemap) TileCount() int {
	return len(t.tiles)
}

// Cells returns all painted cells with their tiles (unordered).
func (t *Tilemap) Cells() map[Cell]TileID {
	out := make(map[Cell]TileID, len(t.tiles))
	for c, id := range t.tiles {
		out[c] = id
	}
	return out
}

// CellBounds returns the minimal rectangle containing every painted
// cell. Computed from tile data on each call, never cached.
func (t *Tilemap) CellBounds() BoundsInt {
	if len(t.tiles) == 0 {
		return BoundsInt{}
	}

	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	for c := range t.tiles {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
		maxX = max(maxX, c.X)
		maxY = max(maxY, c.Y)
	}

	return BoundsInt{
		Min:  Cell{X: minX, Y: minY},
		Size: Cell{X: maxX - minX + 1, Y: maxY - minY + 1},
	}
}

// LocalBounds returns CellBounds as a float box in tilemap-local space
// (origin excluded). Depth size is zero.
func (t *Tilemap) LocalBounds() Bounds {
	cb := t.CellBounds()
	if cb.Empty() {
		return Bounds{}
	}
	size := model.Vec3{
		X: float64(cb.Size.X) * t.cellSize.X,
		Y: float64(cb.Size.Y) * t.cellSize.Y,
	}
	minCorner := model.Vec3{
		X: float64(cb.Min.X) * t.cellSize.X,
		Y: float64(cb.Min.Y) * t.cellSize.Y,
	}
	return Bounds{Center: minCorner.Add(size.Scale(0.5)), Size: size}
}

// CellToWorld returns the world position of the cell's lower-left corner.
func (t *Tilemap) CellToWorld(c Cell) model.Vec3 {
	return model.Vec3{
		X: t.origin.X + float64(c.X)*t.cellSize.X,
		Y: t.origin.Y + float64(c.Y)*t.cellSize.Y,
		Z: t.origin.Z,
	}
}

// WorldToCell returns the cell containing world position p.
func (t *Tilemap) WorldToCell(p model.Vec3) Cell {
	return Cell{
		X: int(math.Floor((p.X - t.origin.X) / t.cellSize.X)),
		Y: int(math.Floor((p.Y - t.origin.Y) / t.cellSize.Y)),
	}
}

// CellCenter returns the world centre of c with depth offset z added.
func (t *Tilemap) CellCenter(c Cell, z float64) model.Vec3 {
	return t.CellToWorld(c).Add(model.Vec3{
		X: t.cellSize.X / 2,
		Y: t.cellSize.Y / 2,
		Z: z,
	})
}
