package model

import "fmt"

// Vec2 is a point or direction on the 2D physics plane.
// Value type, passed by value.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// LengthSquared returns |v|² (no sqrt, comparisons only).
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Vec3 is a world-space position. Z is render depth only: collision
// queries use XY().
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// NewVec3 creates Vec3 with given coordinates.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Up is the unit Y direction.
var Up = Vec3{Y: 1}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v * k.
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// XY drops the depth component.
func (v Vec3) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// Quaternion is an entity rotation. Only identity is produced by
// placement; the type exists so instantiation carries a full transform.
type Quaternion struct {
	X, Y, Z, W float64
}

// Identity returns the no-rotation quaternion.
func Identity() Quaternion {
	return Quaternion{W: 1}
}

// IsIdentity reports whether q is exactly the identity rotation.
func (q Quaternion) IsIdentity() bool {
	return q == Identity()
}
