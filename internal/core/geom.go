// Package core holds the types shared by the games and the platform: screen
// buffers, input frames, geometry, sprites, sound cues and the tick scheduler.
// It has no terminal dependencies so game logic stays pure and testable.
package core

import "cmp"

// Rect is a rectangle of screen cells. World-space shapes use RectF.
type Rect struct {
	X, Y int // Top-left cell
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row below the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects reports whether two rectangles share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the middle cell, rounded towards the top-left.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Clamp restricts v to [lo, hi]. When lo > hi the result is lo.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// Abs returns the absolute value of v.
func Abs[T ~int | ~int64 | ~float64](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
