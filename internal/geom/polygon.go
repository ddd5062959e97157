package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Polygon is a closed loop of vertices. The simulation uses polygons both in
// screen space (laser beams) and in normalized space (polygonal hit areas);
// the containment rules are the same in either space. Polygons with fewer
// than three vertices contain nothing.
type Polygon []mgl64.Vec2

// Contains reports whether v lies inside the polygon using the even-odd
// ray-casting rule. The polygon does not need to be convex.
func (pg Polygon) Contains(v mgl64.Vec2) bool {
	if len(pg) < 3 {
		return false
	}
	inside := false
	j := len(pg) - 1
	for i := 0; i < len(pg); i++ {
		pi, pj := pg[i], pg[j]
		if (pi.Y() > v.Y()) != (pj.Y() > v.Y()) {
			cross := pi.X() + (v.Y()-pi.Y())/(pj.Y()-pi.Y())*(pj.X()-pi.X())
			if v.X() < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// ContainsWithin reports whether v lies inside the polygon or within radius
// of any of its edges. Selection queries use the tolerance so thin shapes
// remain pickable; gameplay collision always uses the exact Contains.
func (pg Polygon) ContainsWithin(v mgl64.Vec2, radius float64) bool {
	if pg.Contains(v) {
		return true
	}
	if radius <= 0 || len(pg) < 2 {
		return false
	}
	r2 := radius * radius
	j := len(pg) - 1
	for i := 0; i < len(pg); i++ {
		if segmentDistSq(pg[j], pg[i], v) <= r2 {
			return true
		}
		j = i
	}
	return false
}

// Bounds returns the axis-aligned bounding box of the polygon. It reports
// false for an empty polygon.
func (pg Polygon) Bounds() (min, max mgl64.Vec2, ok bool) {
	if len(pg) == 0 {
		return mgl64.Vec2{}, mgl64.Vec2{}, false
	}
	min, max = pg[0], pg[0]
	for _, v := range pg[1:] {
		min = mgl64.Vec2{math.Min(min.X(), v.X()), math.Min(min.Y(), v.Y())}
		max = mgl64.Vec2{math.Max(max.X(), v.X()), math.Max(max.Y(), v.Y())}
	}
	return min, max, true
}

// segmentDistSq returns the squared distance from p to the segment ab.
func segmentDistSq(a, b, p mgl64.Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		d := p.Sub(a)
		return d.Dot(d)
	}
	t := ClampF(p.Sub(a).Dot(ab)/l2, 0, 1)
	d := p.Sub(a.Add(ab.Mul(t)))
	return d.Dot(d)
}
