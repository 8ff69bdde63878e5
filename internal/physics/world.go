package physics

import (
	"github.com/udisondev/floorspawn/internal/model"
	"github.com/udisondev/floorspawn/internal/tilemap"
)

// World is a flat list of static colliders answering overlap queries.
// Linear scan per query: spawn search runs once per scene start.
type World struct {
	colliders []Collider
}

// NewWorld creates an empty physics world.
func NewWorld() *World {
	return &World{}
}

// Add registers a collider.
func (w *World) Add(c Collider) {
	w.colliders = append(w.colliders, c)
}

// Remove unregisters a collider. Returns false if it was not present.
func (w *World) Remove(c Collider) bool {
	for i, existing := range w.colliders {
		if existing == c {
			w.colliders = append(w.colliders[:i], w.colliders[i+1:]...)
			return true
		}
	}
	return false
}

// Colliders returns the registered colliders in insertion order.
func (w *World) Colliders() []Collider {
	return w.colliders
}

// Len returns the number of colliders.
func (w *World) Len() int {
	return len(w.colliders)
}

// OverlapCircle returns the first collider whose layer is in mask and
// whose shape overlaps the circle at point with the given radius.
func (w *World) OverlapCircle(point model.Vec2, radius float64, mask Mask) (Collider, bool) {
	for _, c := range w.colliders {
		if !mask.Contains(c.Layer()) {
			continue
		}
		if c.OverlapsCircle(point, radius) {
			return c, true
		}
	}
	return nil, false
}

// BoxFromCell builds a collider covering exactly one tilemap cell.
func BoxFromCell(tm *tilemap.Tilemap, cell tilemap.Cell, layer int) *BoxCollider {
	size := tm.CellSize()
	center := tm.CellCenter(cell, 0)
	return &BoxCollider{
		Center:     center.XY(),
		Size:       size,
		LayerIndex: layer,
	}
}
