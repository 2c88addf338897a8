package core

import "math"

// Vec is a point or velocity in continuous world space.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the direction of v in radians (atan2 convention, y down).
func (v Vec) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// FromAngle returns a vector of the given length pointing along angle.
func FromAngle(angle, length float64) Vec {
	return Vec{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// RectF is an axis-aligned rectangle in world space.
type RectF struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 { return r.X + r.W }

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 { return r.Y + r.H }

// Center returns the center point.
func (r RectF) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Intersects reports whether two rectangles overlap (touching edges do not count).
func (r RectF) Intersects(o RectF) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// OverlapsX reports whether the horizontal spans of two rectangles overlap.
func (r RectF) OverlapsX(o RectF) bool {
	return r.X < o.Right() && o.X < r.Right()
}

// ClosestPoint returns the point inside r nearest to p.
func (r RectF) ClosestPoint(p Vec) Vec {
	return Vec{
		X: Clamp(p.X, r.X, r.Right()),
		Y: Clamp(p.Y, r.Y, r.Bottom()),
	}
}

// CircleIntersectsRect reports whether a circle overlaps a rectangle.
// The center is clamped into the rectangle and the squared distance to that
// point is compared against the squared radius, so a tangent circle misses.
func CircleIntersectsRect(center Vec, radius float64, r RectF) bool {
	d := center.Sub(r.ClosestPoint(center))
	return d.X*d.X+d.Y*d.Y < radius*radius
}
