package testutil

import (
	"github.com/udisondev/floorspawn/internal/level"
	"github.com/udisondev/floorspawn/internal/physics"
	"github.com/udisondev/floorspawn/internal/tilemap"
)

// RoomLevel builds a w×h floor at the origin with unit cells. Every
// cell in walls gets a wall tile and a one-cell wall collider.
func RoomLevel(name string, w, h int, walls ...tilemap.Cell) *level.Level {
	lvl := level.New(name, tilemap.NewDefault())
	for y := range h {
		for x := range w {
			lvl.Floor.SetTile(tilemap.Cell{X: x, Y: y}, level.TileFloor)
		}
	}
	for _, c := range walls {
		lvl.Floor.SetTile(c, level.TileWall)
		lvl.Physics.Add(physics.BoxFromCell(lvl.Floor, c, physics.LayerWall))
	}
	return lvl
}
