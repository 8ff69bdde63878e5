package debugdraw

import (
	"time"

	"github.com/udisondev/floorspawn/internal/model"
	"github.com/udisondev/floorspawn/internal/tilemap"
)

// Candidate marker shape.
const (
	CandidateRayLength   = 0.3
	CandidateRayDuration = 5 * time.Second
)

// RayObserver returns a spawn observer that draws a short green up-ray
// at every valid candidate.
func RayObserver(sink Sink) func(pos model.Vec3) {
	dir := model.Up.Scale(CandidateRayLength)
	return func(pos model.Vec3) {
		sink.DrawRay(pos, dir, Green, CandidateRayDuration)
	}
}

// Gizmo draws the floor tilemap bounds as a wireframe box.
// Cosmetic only: shares the tilemap with the locator, nothing else.
type Gizmo struct {
	floor  *tilemap.Tilemap
	bounds tilemap.Bounds
}

// NewGizmo creates a bounds gizmo. floor may be nil.
func NewGizmo(floor *tilemap.Tilemap) *Gizmo {
	return &Gizmo{floor: floor}
}

// UpdateBounds re-reads and stores the tilemap local bounds.
func (g *Gizmo) UpdateBounds() {
	if g.floor != nil {
		g.bounds = g.floor.LocalBounds()
	}
}

// Bounds returns the last stored bounds.
func (g *Gizmo) Bounds() tilemap.Bounds {
	return g.bounds
}

// Draw emits the stored bounds. No-op without a tilemap.
func (g *Gizmo) Draw(sink Sink) {
	if g.floor == nil {
		return
	}
	sink.DrawWireCube(g.bounds.Center, g.bounds.Size, Green)
}
