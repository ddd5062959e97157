package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/laserdodge/internal/geom"
)

// HoldForever is the hold countdown installed when a button's HoldSeconds is
// absent: once filled, the button keeps its charge until the level resets.
var HoldForever = math.Inf(1)

// buttonState pairs an immutable Button description with its charge machine
// state and the prepared hit regions.
type buttonState struct {
	spec    *Button
	regions []hitRegion

	charge   float64
	touching bool
	full     bool
	// hold is the remaining grace period during which a released full
	// button does not drain. Pinned back to the full window every frame
	// the button is still being charged.
	hold   float64
	anchor geom.Point
	counts []int
}

func newButtonState(spec *Button) *buttonState {
	b := &buttonState{spec: spec}
	b.bind(spec)
	return b
}

// bind installs a (possibly updated) description, rebuilding the prepared
// regions while leaving the charge machine untouched.
func (b *buttonState) bind(spec *Button) {
	b.spec = spec
	b.regions = make([]hitRegion, len(spec.HitAreas))
	for i, area := range spec.HitAreas {
		b.regions[i] = newHitRegion(area)
	}
	b.counts = make([]int, len(b.regions))
	b.anchor = spec.anchorAt(0)
}

// anchorAt returns the button's normalized anchor position at the given
// clock.
func (b *Button) anchorAt(clock float64) geom.Point {
	if len(b.Endpoints) == 0 {
		return geom.Point{}
	}
	return b.Endpoints[0].At(clock)
}

// holdWindow returns the countdown started when the button reaches full
// charge.
func (t ButtonTiming) holdWindow() float64 {
	if t.HoldSeconds == nil {
		return HoldForever
	}
	return *t.HoldSeconds
}

// countTouches fills b.counts with the number of touches inside each region.
// touched reports any contact at all and drives the touchStarted/touchEnded
// edges; pressed applies the button's hit logic and drives charging. Touch
// points are normalized; the button's current anchor is subtracted so
// regions test in their own frame.
func (b *buttonState) countTouches(touches []geom.Point) (touched, pressed bool) {
	for i := range b.counts {
		b.counts[i] = 0
	}
	for _, tp := range touches {
		rel := tp.Sub(b.anchor)
		for i := range b.regions {
			if b.regions[i].contains(rel, 0) {
				b.counts[i]++
				touched = true
			}
		}
	}
	if b.spec.HitLogic != HitAll {
		return touched, touched
	}
	pressed = len(b.counts) > 0
	for _, c := range b.counts {
		if c == 0 {
			pressed = false
			break
		}
	}
	return touched, pressed
}

// hit reports whether the normalized point lands in any region, with a
// normalized tolerance. Selection queries use it.
func (b *buttonState) hit(p geom.Point, tol float64) bool {
	rel := p.Sub(b.anchor)
	for i := range b.regions {
		if b.regions[i].contains(rel, tol) {
			return true
		}
	}
	return false
}

// extent returns a normalized radius around the anchor that encloses every
// region.
func (b *buttonState) extent() float64 {
	max := 0.0
	for i := range b.regions {
		r := math.Hypot(b.regions[i].spec.Offset.X, b.regions[i].spec.Offset.Y) + b.regions[i].boundingRadius()
		if r > max {
			max = r
		}
	}
	return max
}

// step advances the charge machine one frame. touched is the total-touch
// flag (any region, regardless of hit logic) and pressed is the hit-logic
// verdict from countTouches. Transitions fire in a fixed order: the touch
// edge first, then the charge edge, so a single frame can emit touchStarted
// followed by turnedOn.
func (b *buttonState) step(delta float64, touched, pressed bool, out []ButtonEvent) []ButtonEvent {
	if touched != b.touching {
		b.touching = touched
		tr := TouchEnded
		if touched {
			tr = TouchStarted
		}
		out = append(out, ButtonEvent{ButtonID: b.spec.ID, Transition: tr})
	}

	if pressed {
		if b.spec.Timing.ChargeSeconds <= 0 {
			b.charge = 1
		} else {
			b.charge += delta / b.spec.Timing.ChargeSeconds
		}
		if b.full {
			// Still held at full: keep the hold window pinned open.
			b.hold = b.spec.Timing.holdWindow()
		}
	} else if b.charge > 0 {
		drain := delta
		if b.hold > 0 {
			if b.hold >= drain {
				b.hold -= drain
				drain = 0
			} else {
				drain -= b.hold
				b.hold = 0
			}
		}
		if drain > 0 {
			if b.spec.Timing.DrainSeconds <= 0 {
				b.charge = 0
			} else {
				b.charge -= drain / b.spec.Timing.DrainSeconds
			}
		}
	}
	b.charge = geom.ClampF(b.charge, 0, 1)

	if !b.full && b.charge >= 1 {
		b.full = true
		b.hold = b.spec.Timing.holdWindow()
		out = append(out, ButtonEvent{ButtonID: b.spec.ID, Transition: TurnedOn})
	} else if b.full && b.charge < 1 {
		b.full = false
		b.hold = 0
		out = append(out, ButtonEvent{ButtonID: b.spec.ID, Transition: TurnedOff})
	}
	return out
}

// reset clears the charge machine.
func (b *buttonState) reset() {
	b.charge = 0
	b.touching = false
	b.full = false
	b.hold = 0
	b.anchor = b.spec.anchorAt(0)
}

// screenAnchor is the anchor in screen space.
func (b *buttonState) screenAnchor(tr geom.Transform) mgl64.Vec2 {
	return tr.Point(b.anchor)
}
