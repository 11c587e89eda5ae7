// Package physics provides the vector math and overlap tests used by the arena.
package physics

import "math"

// Vec is a 2D vector in arena units. Y grows upward.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// ClampAxes clamps each component of v to [-limit, limit] independently.
func (v Vec) ClampAxes(limit float64) Vec {
	return Vec{X: Clamp(v.X, -limit, limit), Y: Clamp(v.Y, -limit, limit)}
}

// Clamp limits x to the closed range [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// OutsideSquare reports whether p lies outside the axis-aligned square
// [-half, half]². Points exactly on the edge are inside.
func OutsideSquare(p Vec, half float64) bool {
	return math.Abs(p.X) > half || math.Abs(p.Y) > half
}

// CircleBoxOverlap checks if a circle overlaps an axis-aligned box given by its
// center and half size. Touching edges do not count as overlap.
func CircleBoxOverlap(c Vec, radius float64, box Vec, half float64) bool {
	// Closest point on the box to the circle center
	nx := Clamp(c.X, box.X-half, box.X+half)
	ny := Clamp(c.Y, box.Y-half, box.Y+half)
	return DistanceSquared(c.X, c.Y, nx, ny) < radius*radius
}
