package core

import (
	"math"
	"testing"
)

func TestCircleIntersectsRect(t *testing.T) {
	rect := RectF{X: 100, Y: 100, W: 50, H: 50}

	tests := []struct {
		name     string
		center   Vec
		radius   float64
		expected bool
	}{
		{"center inside", Vec{125, 125}, 12, true},
		{"overlapping left edge", Vec{95, 120}, 12, true},
		{"clear miss", Vec{50, 50}, 12, false},
		{"tangent to left edge", Vec{88, 120}, 12, false},
		{"tangent to corner diagonal", Vec{100 - 3, 100 - 4}, 5, false},
		{"just inside corner radius", Vec{100 - 3, 100 - 4}, 5.01, true},
		{"below bottom edge", Vec{125, 163}, 12, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CircleIntersectsRect(tc.center, tc.radius, rect)
			if got != tc.expected {
				t.Errorf("CircleIntersectsRect(%v, %v) = %v, expected %v", tc.center, tc.radius, got, tc.expected)
			}
		})
	}
}

func TestRectFIntersects(t *testing.T) {
	a := RectF{X: 0, Y: 0, W: 10, H: 10}
	if !a.Intersects(RectF{X: 5, Y: 5, W: 10, H: 10}) {
		t.Error("overlapping rects should intersect")
	}
	if a.Intersects(RectF{X: 10, Y: 0, W: 10, H: 10}) {
		t.Error("adjacent rects should not intersect")
	}
	if !a.OverlapsX(RectF{X: 9, Y: 100, W: 10, H: 10}) {
		t.Error("OverlapsX should ignore the vertical axis")
	}
}

func TestVecHelpers(t *testing.T) {
	v := FromAngle(math.Pi/2, 2)
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-2) > 1e-9 {
		t.Errorf("FromAngle(pi/2, 2) = %v, expected (0, 2)", v)
	}
	if got := (Vec{3, 4}).Len(); got != 5 {
		t.Errorf("Len() = %v, expected 5", got)
	}
	if got := (Vec{1, 2}).Add(Vec{3, 4}).Scale(2); got != (Vec{8, 12}) {
		t.Errorf("Add/Scale = %v, expected (8, 12)", got)
	}
	c := RectF{X: 10, Y: 20, W: 4, H: 6}.Center()
	if c != (Vec{12, 23}) {
		t.Errorf("Center() = %v, expected (12, 23)", c)
	}
}
