// Package core provides fundamental types and utilities shared by the
// simulation and the platform layers: world-space vectors and bounding
// boxes, screen-space rectangles, input frames and the screen buffer.
// It has no UI dependencies so game logic stays pure and testable.
package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a point or direction in world space.
// X is lateral, Y is up and Z is the scroll axis (positive Z faces the camera).
type Vec3 = mgl64.Vec3

// V3 builds a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Box is an axis-aligned bounding box in world space.
type Box struct {
	Min, Max Vec3
}

// BoxFromCenter creates a box of the given size centered on c.
func BoxFromCenter(c, size Vec3) Box {
	half := size.Mul(0.5)
	return Box{Min: c.Sub(half), Max: c.Add(half)}
}

// BoxFromBase creates a box of the given size whose bottom face is centered on base.
func BoxFromBase(base, size Vec3) Box {
	return Box{
		Min: Vec3{base.X() - size.X()/2, base.Y(), base.Z() - size.Z()/2},
		Max: Vec3{base.X() + size.X()/2, base.Y() + size.Y(), base.Z() + size.Z()/2},
	}
}

// Intersects returns true if the two boxes overlap on all three axes.
// Touching faces do not count.
func (b Box) Intersects(o Box) bool {
	for i := 0; i < 3; i++ {
		if b.Min[i] >= o.Max[i] || o.Min[i] >= b.Max[i] {
			return false
		}
	}
	return true
}

// Contains returns true if p lies inside the box (max faces exclusive).
func (b Box) Contains(p Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] >= b.Max[i] {
			return false
		}
	}
	return true
}

// Center returns the midpoint of the box.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Translate returns the box moved by d.
func (b Box) Translate(d Vec3) Box {
	return Box{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// RotatedZ returns the AABB extents of a box of the given size after a
// rotation of angle radians about the Z axis.
func RotatedZ(size Vec3, angle float64) Vec3 {
	c := math.Abs(math.Cos(angle))
	s := math.Abs(math.Sin(angle))
	return Vec3{
		size.X()*c + size.Y()*s,
		size.X()*s + size.Y()*c,
		size.Z(),
	}
}

// Lerp linearly interpolates from a toward b by factor t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Rect is a screen-space rectangle in character cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
