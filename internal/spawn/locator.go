package spawn

import (
	"errors"

	"github.com/udisondev/floorspawn/internal/model"
	"github.com/udisondev/floorspawn/internal/physics"
	"github.com/udisondev/floorspawn/internal/tilemap"
)

// Locator defaults.
const (
	DefaultZ           = -1.0
	DefaultProbeRadius = 0.3
)

var (
	ErrNilTilemap = errors.New("spawn: floor tilemap is not set")
	ErrNilPhysics = errors.New("spawn: overlap query is not set")
	ErrNilRandom  = errors.New("spawn: random source is not set")
)

// TileSource is the floor layer the locator scans.
// *tilemap.Tilemap satisfies it.
type TileSource interface {
	CellBounds() tilemap.BoundsInt
	HasTile(c tilemap.Cell) bool
	CellToWorld(c tilemap.Cell) model.Vec3
	CellSize() model.Vec2
}

// OverlapQuery answers "does a circle at point overlap any collider on mask".
// *physics.World satisfies it.
type OverlapQuery interface {
	OverlapCircle(point model.Vec2, radius float64, mask physics.Mask) (physics.Collider, bool)
}

// OverlapFunc adapts a plain function to OverlapQuery.
type OverlapFunc func(point model.Vec2, radius float64, mask physics.Mask) (physics.Collider, bool)

// OverlapCircle calls f.
func (f OverlapFunc) OverlapCircle(point model.Vec2, radius float64, mask physics.Mask) (physics.Collider, bool) {
	return f(point, radius, mask)
}

// RandomIndex draws a uniform index in [0, n). *rand.Rand from
// math/rand/v2 satisfies it.
type RandomIndex interface {
	IntN(n int) int
}

// Observer receives every valid candidate found by a search.
// Diagnostic only: it cannot influence selection.
type Observer interface {
	ValidPosition(pos model.Vec3)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(pos model.Vec3)

// ValidPosition calls f.
func (f ObserverFunc) ValidPosition(pos model.Vec3) {
	f(pos)
}

// Option configures a Locator.
type Option func(*Locator)

// WithZ sets the depth offset added to every spawn position.
func WithZ(z float64) Option {
	return func(l *Locator) { l.z = z }
}

// WithProbeRadius sets the obstacle probe radius in world units.
func WithProbeRadius(r float64) Option {
	return func(l *Locator) { l.probeRadius = r }
}

// WithObstacleMask sets the layers that block spawning.
func WithObstacleMask(m physics.Mask) Option {
	return func(l *Locator) { l.obstacles = m }
}

// WithObserver attaches a candidate observer.
func WithObserver(o Observer) Option {
	return func(l *Locator) { l.observer = o }
}

// Locator finds a random free floor cell.
// Single-threaded: one search runs to completion per call.
type Locator struct {
	tiles   TileSource
	overlap OverlapQuery
	rnd     RandomIndex

	z           float64
	probeRadius float64
	obstacles   physics.Mask
	observer    Observer
}

// NewLocator creates a locator. All three collaborators are required.
func NewLocator(tiles TileSource, overlap OverlapQuery, rnd RandomIndex, opts ...Option) (*Locator, error) {
	if tiles == nil {
		return nil, ErrNilTilemap
	}
	if overlap == nil {
		return nil, ErrNilPhysics
	}
	if rnd == nil {
		return nil, ErrNilRandom
	}

	l := &Locator{
		tiles:       tiles,
		overlap:     overlap,
		rnd:         rnd,
		z:           DefaultZ,
		probeRadius: DefaultProbeRadius,
		obstacles:   physics.LayerBit(physics.LayerWall),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Z returns the configured depth offset.
func (l *Locator) Z() float64 {
	return l.z
}

// FindValidPosition scans the floor and returns one valid position
// chosen uniformly at random. Returns false if no cell qualifies.
func (l *Locator) FindValidPosition() (model.Vec3, bool) {
	candidates := l.Candidates()

	if l.observer != nil {
		for _, pos := range candidates {
			l.observer.ValidPosition(pos)
		}
	}

	if len(candidates) == 0 {
		return model.Vec3{}, false
	}
	return candidates[l.rnd.IntN(len(candidates))], true
}

// Candidates returns every valid spawn position in row-major cell order.
// Bounds are re-read from the tile source on each call.
func (l *Locator) Candidates() []model.Vec3 {
	bounds := l.tiles.CellBounds()

	var out []model.Vec3
	for cell := range bounds.AllPositionsWithin() {
		if pos, ok := l.positionFor(cell); ok {
			out = append(out, pos)
		}
	}
	return out
}

// IsValidPosition reports whether cell is painted and unobstructed.
func (l *Locator) IsValidPosition(cell tilemap.Cell) bool {
	_, ok := l.positionFor(cell)
	return ok
}

// IsClear reports whether the probe at pos hits no obstacle.
// Depth is ignored.
func (l *Locator) IsClear(pos model.Vec3) bool {
	_, hit := l.overlap.OverlapCircle(pos.XY(), l.probeRadius, l.obstacles)
	return !hit
}

// CellCenter maps a cell to its spawn position: lower-left corner
// plus half a cell plus the depth offset.
func (l *Locator) CellCenter(cell tilemap.Cell) model.Vec3 {
	size := l.tiles.CellSize()
	return l.tiles.CellToWorld(cell).Add(model.Vec3{X: size.X / 2, Y: size.Y / 2, Z: l.z})
}

func (l *Locator) positionFor(cell tilemap.Cell) (model.Vec3, bool) {
	if !l.tiles.HasTile(cell) {
		return model.Vec3{}, false
	}
	pos := l.CellCenter(cell)
	if !l.IsClear(pos) {
		return model.Vec3{}, false
	}
	return pos, true
}
