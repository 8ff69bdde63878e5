package tilemap

import (
	"iter"

	"github.com/udisondev/floorspawn/internal/model"
)

// Cell is an integer (column, row) grid coordinate.
type Cell struct {
	X int
	Y int
}

// BoundsInt is a rectangle of cells: [Min, Min+Size).
// A zero Size means the rectangle is empty.
type BoundsInt struct {
	Min  Cell
	Size Cell
}

// Max returns the exclusive upper corner.
func (b BoundsInt) Max() Cell {
	return Cell{X: b.Min.X + b.Size.X, Y: b.Min.Y + b.Size.Y}
}

// Empty reports whether the rectangle has no cells.
func (b BoundsInt) Empty() bool {
	return b.Size.X <= 0 || b.Size.Y <= 0
}

// Count returns the number of cells in the rectangle.
func (b BoundsInt) Count() int {
	if b.Empty() {
		return 0
	}
	return b.Size.X * b.Size.Y
}

// Contains reports whether c lies inside the rectangle.
func (b BoundsInt) Contains(c Cell) bool {
	maxC := b.Max()
	return c.X >= b.Min.X && c.X < maxC.X && c.Y >= b.Min.Y && c.Y < maxC.Y
}

// AllPositionsWithin yields every cell row by row: y outer, x inner.
func (b BoundsInt) AllPositionsWithin() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		if b.Empty() {
			return
		}
		maxC := b.Max()
		for y := b.Min.Y; y < maxC.Y; y++ {
			for x := b.Min.X; x < maxC.X; x++ {
				if !yield(Cell{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// Bounds is an axis-aligned float box given by centre and full size.
type Bounds struct {
	Center model.Vec3
	Size   model.Vec3
}

// Min returns the lower corner.
func (b Bounds) Min() model.Vec3 {
	return b.Center.Add(b.Size.Scale(-0.5))
}

// Max returns the upper corner.
func (b Bounds) Max() model.Vec3 {
	return b.Center.Add(b.Size.Scale(0.5))
}
