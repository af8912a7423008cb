package ggview

import "math"

// Vec2 represents a 2D displacement in display pixels.
// Coordinates follow the screen convention: x grows right, y grows down.
type Vec2 struct {
	X, Y float64
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Neg returns the negation of the vector.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// IsZero returns true if the vector is the zero vector.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Approx returns true if two vectors are approximately equal within epsilon.
func (v Vec2) Approx(w Vec2, epsilon float64) bool {
	return math.Abs(v.X-w.X) < epsilon && math.Abs(v.Y-w.Y) < epsilon
}

// RotSteps returns the vector rotated clockwise on screen by k quarter
// turns. With y growing down, one clockwise turn maps (x, y) to (-y, x).
// The rotation is exact: only negation and swap, no trigonometry, so four
// turns reproduce the input bit for bit.
func (v Vec2) RotSteps(k int) Vec2 {
	switch ((k % 4) + 4) % 4 {
	case 1:
		return Vec2{X: -v.Y, Y: v.X}
	case 2:
		return Vec2{X: -v.X, Y: -v.Y}
	case 3:
		return Vec2{X: v.Y, Y: -v.X}
	default:
		return v
	}
}

// floorMod returns a modulo n in [0, n), following the sign of the divisor.
// Used for album wraparound and rotation normalization.
func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
