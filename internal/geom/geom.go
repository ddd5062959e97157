// Package geom provides the coordinate systems and geometric primitives the
// simulation is built on. Level authors describe positions in a normalized
// space whose origin sits at the viewport center and where a length of 1.0
// equals half of the shorter viewport dimension, so levels look the same on
// any screen. Transform maps that space to screen pixels and back. The
// package contains no simulation state and no rendering dependencies.
package geom

import "github.com/go-gl/mathgl/mgl64"

// Point is a position in normalized author space, roughly [-1, 1] along the
// shorter viewport axis with the origin at the center. X grows rightward and
// Y grows downward, matching screen conventions.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// P is shorthand for constructing a Point.
func P(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Vec converts the point to an mgl64 vector in the same space.
func (p Point) Vec() mgl64.Vec2 {
	return mgl64.Vec2{p.X, p.Y}
}

// Add returns the point translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the point translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// FromVec converts an mgl64 vector back to a Point in the same space.
func FromVec(v mgl64.Vec2) Point {
	return Point{X: v.X(), Y: v.Y()}
}

// Lerp linearly interpolates between a and b by t. t is not clamped.
func Lerp(a, b Point, t float64) Point {
	return Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
