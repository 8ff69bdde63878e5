package physics

import "github.com/udisondev/floorspawn/internal/model"

// Collider is a static 2D shape on a collision layer.
type Collider interface {
	// OverlapsCircle reports whether the shape and the circle share
	// interior area. Touching edges do not overlap.
	OverlapsCircle(center model.Vec2, radius float64) bool
	// Layer returns the layer index.
	Layer() int
}

// BoxCollider is an axis-aligned rectangle.
type BoxCollider struct {
	Center     model.Vec2
	Size       model.Vec2
	LayerIndex int
	Tag        string
}

// OverlapsCircle uses the closest-point test.
func (b *BoxCollider) OverlapsCircle(center model.Vec2, radius float64) bool {
	halfW := b.Size.X / 2
	halfH := b.Size.Y / 2
	closestX := clamp(center.X, b.Center.X-halfW, b.Center.X+halfW)
	closestY := clamp(center.Y, b.Center.Y-halfH, b.Center.Y+halfH)
	dx := center.X - closestX
	dy := center.Y - closestY
	return dx*dx+dy*dy < radius*radius
}

// Layer returns the layer index.
func (b *BoxCollider) Layer() int {
	return b.LayerIndex
}

// CircleCollider is a disc.
type CircleCollider struct {
	Center     model.Vec2
	Radius     float64
	LayerIndex int
	Tag        string
}

// OverlapsCircle compares centre distance against the summed radii.
func (c *CircleCollider) OverlapsCircle(center model.Vec2, radius float64) bool {
	r := c.Radius + radius
	return center.Sub(c.Center).LengthSquared() < r*r
}

// Layer returns the layer index.
func (c *CircleCollider) Layer() int {
	return c.LayerIndex
}

// clamp limits value to the range [lo, hi].
func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
