package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/laserdodge/internal/geom"
)

// hitRegion is a HitArea prepared for repeated point tests. Polygon vertices
// are converted to vectors once so the per-frame test allocates nothing.
type hitRegion struct {
	spec HitArea
	poly geom.Polygon
}

func newHitRegion(spec HitArea) hitRegion {
	r := hitRegion{spec: spec}
	if spec.Shape == ShapePolygon {
		r.poly = make(geom.Polygon, len(spec.Points))
		for i, p := range spec.Points {
			r.poly[i] = p.Vec()
		}
	}
	return r
}

// contains reports whether a normalized point, given relative to the owning
// button's anchor, lies inside the region. tol expands every shape outward
// by that normalized distance; gameplay passes 0, selection queries pass the
// fingertip slack.
func (r *hitRegion) contains(p geom.Point, tol float64) bool {
	local := mgl64.Vec2{p.X - r.spec.Offset.X, p.Y - r.spec.Offset.Y}
	if r.spec.RotationDegrees != 0 {
		local = mgl64.Rotate2D(-mgl64.DegToRad(r.spec.RotationDegrees)).Mul2x1(local)
	}
	switch r.spec.Shape {
	case ShapeCircle:
		return local.Len() <= r.spec.Radius+tol
	case ShapeRectangle:
		// Growing a rounded rectangle by tol is the same rounded rectangle
		// with fattened sides and corner radius.
		return roundedRectContains(local, r.spec.Width+2*tol, r.spec.Height+2*tol, r.spec.CornerRadius+tol)
	case ShapeCapsule:
		// A capsule is a stadium: a rectangle of the capsule's length and
		// diameter whose corner radius equals the capsule radius.
		rad := r.spec.Radius + tol
		return roundedRectContains(local, r.spec.Length+2*tol, 2*rad, rad)
	case ShapePolygon:
		return r.poly.ContainsWithin(local, tol)
	}
	return false
}

// boundingRadius returns a normalized radius around the region's offset that
// encloses the whole shape. Hosts use it to size markers; it is not used
// for collision.
func (r *hitRegion) boundingRadius() float64 {
	switch r.spec.Shape {
	case ShapeCircle:
		return r.spec.Radius
	case ShapeRectangle:
		return math.Hypot(r.spec.Width, r.spec.Height) / 2
	case ShapeCapsule:
		return max(r.spec.Length/2, r.spec.Radius)
	case ShapePolygon:
		max := 0.0
		for _, v := range r.poly {
			if l := v.Len(); l > max {
				max = l
			}
		}
		return max
	}
	return 0
}

// roundedRectContains tests a point against an axis-aligned rectangle of the
// given full width and height, centered at the origin, with circular corners
// of the given radius. The corner radius is clamped to half the shorter
// side.
func roundedRectContains(p mgl64.Vec2, w, h, corner float64) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	hw, hh := w/2, h/2
	x, y := math.Abs(p.X()), math.Abs(p.Y())
	if x > hw || y > hh {
		return false
	}
	r := geom.ClampF(corner, 0, math.Min(hw, hh))
	if r <= 0 {
		return true
	}
	dx, dy := x-(hw-r), y-(hh-r)
	if dx <= 0 || dy <= 0 {
		return true
	}
	return dx*dx+dy*dy <= r*r
}
