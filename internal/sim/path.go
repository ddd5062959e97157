package sim

import (
	"math"

	"github.com/vovakirdan/laserdodge/internal/geom"
)

// EndpointPath describes where a laser endpoint or button anchor sits over
// time. A path holds one or two normalized points. With two points and a
// positive CycleSeconds the position glides from the first point to the
// second and back, easing in and out at both ends; CycleSeconds is the
// duration of the full round trip. Phase shifts the start into the cycle as
// a fraction in [0, 1), so endpoints sharing a path shape can run staggered.
type EndpointPath struct {
	Points       []geom.Point `json:"points" yaml:"points"`
	CycleSeconds *float64     `json:"cycleSeconds" yaml:"cycleSeconds"`
	Phase        float64      `json:"t,omitempty" yaml:"t,omitempty"`
}

// Stationary reports whether the path never moves: a single point, a nil
// cycle, or a non-positive cycle all pin the position to the first point.
func (p EndpointPath) Stationary() bool {
	return len(p.Points) < 2 || p.CycleSeconds == nil || *p.CycleSeconds <= 0
}

// At returns the normalized position at the given simulation time in
// seconds. Time before zero and past the cycle wraps; At(0) and At(cycle)
// are the first point, At(cycle/2) is the second, and the trip out mirrors
// the trip back.
func (p EndpointPath) At(seconds float64) geom.Point {
	if len(p.Points) == 0 {
		return geom.Point{}
	}
	if p.Stationary() {
		return p.Points[0]
	}
	cycle := *p.CycleSeconds
	u := math.Mod(seconds/cycle+p.Phase, 1)
	if u < 0 {
		u++
	}
	var t float64
	if u < 0.5 {
		t = easeInOut(u * 2)
	} else {
		t = 1 - easeInOut((u-0.5)*2)
	}
	return geom.Lerp(p.Points[0], p.Points[1], t)
}

// easeInOut is the quadratic ease-in-out curve on [0, 1]: slow at both ends,
// fastest in the middle.
func easeInOut(h float64) float64 {
	if h < 0.5 {
		return 2 * h * h
	}
	k := -2*h + 2
	return 1 - k*k/2
}
