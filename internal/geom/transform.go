package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform maps between normalized author space and a concrete viewport in
// screen pixels. The scale factor is half of the shorter viewport dimension,
// so a normalized length of 1.0 always fits on screen regardless of aspect
// ratio. The zero value is degenerate and maps everything to the origin.
type Transform struct {
	width  float64
	height float64
	scale  float64
	center mgl64.Vec2
}

// NewTransform builds a transform for a viewport of the given pixel size.
func NewTransform(width, height float64) Transform {
	return Transform{
		width:  width,
		height: height,
		scale:  math.Min(width, height) / 2,
		center: mgl64.Vec2{width / 2, height / 2},
	}
}

// Degenerate reports whether the viewport is too small to map positions,
// which happens before the host has measured its window. Callers should skip
// geometry updates while the transform is degenerate.
func (t Transform) Degenerate() bool {
	return t.scale <= 0
}

// Viewport returns the pixel dimensions the transform was built for.
func (t Transform) Viewport() (width, height float64) {
	return t.width, t.height
}

// Scale returns the pixels-per-normalized-unit factor.
func (t Transform) Scale() float64 {
	return t.scale
}

// Point converts a normalized point to screen pixels.
func (t Transform) Point(p Point) mgl64.Vec2 {
	return t.center.Add(p.Vec().Mul(t.scale))
}

// Length converts a normalized length to pixels. Lengths only scale, they
// are never re-centered.
func (t Transform) Length(l float64) float64 {
	return l * t.scale
}

// Offset converts a normalized offset vector to pixels without re-centering.
func (t Transform) Offset(p Point) mgl64.Vec2 {
	return p.Vec().Mul(t.scale)
}

// Normalized converts a screen position back to the normalized space. It
// reports false when the transform is degenerate and no inverse exists.
func (t Transform) Normalized(v mgl64.Vec2) (Point, bool) {
	if t.Degenerate() {
		return Point{}, false
	}
	return FromVec(v.Sub(t.center).Mul(1 / t.scale)), true
}

// Diagonal returns the viewport diagonal in pixels. Ray lasers use it to
// extend their beam past every screen edge.
func (t Transform) Diagonal() float64 {
	return math.Hypot(t.width, t.height)
}
