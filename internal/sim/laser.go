package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/laserdodge/internal/geom"
)

// laserState pairs an immutable Laser description with its mutable runtime
// state: cadence progress, the effect override, and the current beam
// geometry in screen space.
type laserState struct {
	spec    *Laser
	cadence Cadence

	// override, when set, wins over the cadence and the always-on default.
	// Effects write it; Reset restores it from the spec's Enabled field.
	override *bool
	// lastApplied is the firing state most recently reported to the host,
	// nil before the first step. It drives change events.
	lastApplied *bool

	endpoints []mgl64.Vec2
	angle     float64
	thickness float64
	beam      geom.Polygon
}

func newLaserState(spec *Laser) *laserState {
	l := &laserState{
		spec:      spec,
		cadence:   NewCadence(spec.Cadence),
		endpoints: make([]mgl64.Vec2, 0, 2),
	}
	l.seedOverride()
	return l
}

// seedOverride installs the authored enabled flag as the starting override.
// Only an explicit false seeds one; an enabled laser starts with no override
// so its cadence stays in charge.
func (l *laserState) seedOverride() {
	if l.spec.Enabled != nil && !*l.spec.Enabled {
		off := false
		l.override = &off
	} else {
		l.override = nil
	}
}

// firing resolves the effective state: override first, then cadence, then
// the always-on default.
func (l *laserState) firing() bool {
	if l.override != nil {
		return *l.override
	}
	if !l.cadence.Empty() {
		return l.cadence.On()
	}
	return true
}

// setOverride applies an effect action.
func (l *laserState) setOverride(on bool) {
	v := on
	l.override = &v
}

// advance steps the cadence, recomputes the beam for the given clock, and
// reports the firing state plus whether it changed since last reported. The
// first call always reports a change so hosts learn the initial state.
func (l *laserState) advance(delta, clock float64, tr geom.Transform) (on, changed bool) {
	l.cadence.Advance(delta)
	on = l.firing()
	changed = l.lastApplied == nil || *l.lastApplied != on
	v := on
	l.lastApplied = &v
	l.rebuild(clock, tr)
	return on, changed
}

// rebuild recomputes the screen-space beam polygon for the given clock. A
// degenerate transform keeps the previous geometry so a mid-resize frame
// cannot produce phantom hits.
func (l *laserState) rebuild(clock float64, tr geom.Transform) {
	if tr.Degenerate() {
		return
	}
	l.thickness = tr.Length(l.spec.Thickness)
	switch l.spec.Type {
	case LaserRay:
		anchor := tr.Point(l.spec.Endpoints[0].At(clock))
		l.angle = l.spec.angleAt(clock)
		dir := headingVec(l.angle)
		// Half-length of one viewport diagonal on each side keeps both
		// beam ends off screen at any anchor and angle.
		reach := dir.Mul(tr.Diagonal())
		l.endpoints = append(l.endpoints[:0], anchor)
		l.beam = strokePolygon(anchor.Sub(reach), anchor.Add(reach), l.thickness)
	case LaserSegment:
		a := tr.Point(l.spec.Endpoints[0].At(clock))
		b := tr.Point(l.spec.Endpoints[1].At(clock))
		l.endpoints = append(l.endpoints[:0], a, b)
		l.beam = strokePolygon(a, b, l.thickness)
	}
}

// dangerous reports whether the laser is firing and its beam covers the
// screen-space point.
func (l *laserState) dangerous(v mgl64.Vec2) bool {
	return l.firing() && l.beam.Contains(v)
}

// reset rewinds cadence and override and clears the change tracker.
func (l *laserState) reset() {
	l.cadence.Reset()
	l.seedOverride()
	l.lastApplied = nil
}

// angleAt returns the ray's heading in degrees after clock seconds of
// rotation.
func (l *Laser) angleAt(clock float64) float64 {
	return l.initialAngle() + l.RotationSpeedDegrees*clock
}

// initialAngle returns the authored initial angle, or the default levels
// rely on: perpendicular to a moving two-point endpoint path, 0 otherwise.
func (l *Laser) initialAngle() float64 {
	if l.InitialAngleDegrees != nil {
		return *l.InitialAngleDegrees
	}
	if len(l.Endpoints) == 1 && len(l.Endpoints[0].Points) == 2 {
		a, b := l.Endpoints[0].Points[0], l.Endpoints[0].Points[1]
		return mgl64.RadToDeg(math.Atan2(b.Y-a.Y, b.X-a.X)) + 90
	}
	return 0
}

// headingVec converts a heading in degrees to a unit vector.
func headingVec(degrees float64) mgl64.Vec2 {
	rad := mgl64.DegToRad(degrees)
	return mgl64.Vec2{math.Cos(rad), math.Sin(rad)}
}

// strokePolygon returns the rectangle covering a stroked segment of the
// given thickness. A zero-length segment or zero thickness collapses the
// rectangle, which then contains nothing.
func strokePolygon(a, b mgl64.Vec2, thickness float64) geom.Polygon {
	d := b.Sub(a)
	var n mgl64.Vec2
	if l := d.Len(); l > 0 {
		n = mgl64.Vec2{-d.Y() / l, d.X() / l}.Mul(thickness / 2)
	}
	return geom.Polygon{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
}
