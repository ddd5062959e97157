package sim

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/laserdodge/internal/geom"
)

// MaxStepDelta caps a single step. A host that was suspended for seconds
// resumes with one bounded step instead of teleporting every laser across
// the screen.
const MaxStepDelta = 0.25

// Runtime owns the live state for one level on one viewport. It is not safe
// for concurrent use; hosts call Step from a single goroutine, typically
// their frame loop.
type Runtime struct {
	level   *Level
	tr      geom.Transform
	buttons *orderedmap.OrderedMap[string, *buttonState]
	lasers  *orderedmap.OrderedMap[string, *laserState]

	clock  float64
	motion bool
	norm   []geom.Point
}

// NewRuntime validates the level and builds a runtime for the given
// viewport in pixels. The viewport may be zero if the host has not measured
// its window yet; geometry stays degenerate until SetViewport.
func NewRuntime(level *Level, width, height float64) (*Runtime, error) {
	if err := Validate(level); err != nil {
		return nil, err
	}
	r := &Runtime{
		level:   level,
		tr:      geom.NewTransform(width, height),
		buttons: orderedmap.NewOrderedMap[string, *buttonState](),
		lasers:  orderedmap.NewOrderedMap[string, *laserState](),
	}
	for i := range level.Buttons {
		spec := &level.Buttons[i]
		r.buttons.Set(spec.ID, newButtonState(spec))
	}
	for i := range level.Lasers {
		spec := &level.Lasers[i]
		r.lasers.Set(spec.ID, newLaserState(spec))
	}
	r.rebuildGeometry()
	return r, nil
}

// SetViewport installs a new viewport size and recomputes all geometry at
// the current clock. Charge and firing state are untouched, so a window
// resize never resets progress.
func (r *Runtime) SetViewport(width, height float64) {
	r.tr = geom.NewTransform(width, height)
	r.rebuildGeometry()
}

// Transform returns the active viewport transform.
func (r *Runtime) Transform() geom.Transform {
	return r.tr
}

// Level returns the level description the runtime was built from.
func (r *Runtime) Level() *Level {
	return r.level
}

// Elapsed returns the simulation clock in seconds.
func (r *Runtime) Elapsed() float64 {
	return r.clock
}

// MotionStarted reports whether the simulation clock is running.
func (r *Runtime) MotionStarted() bool {
	return r.motion
}

// StartMotion starts the simulation clock without waiting for a touch.
// Hosts call it when their own intro countdown ends. The clock also starts
// on the first step that carries a touch.
func (r *Runtime) StartMotion() {
	r.motion = true
}

// Step advances the simulation by delta seconds against the touches
// currently on screen, given in pixels. Negative deltas are treated as
// zero and outsized deltas are clamped. Buttons update and their effects
// propagate before lasers advance, so a transition this frame re-gates its
// lasers this frame.
func (r *Runtime) Step(delta float64, touches []mgl64.Vec2) StepResult {
	delta = geom.ClampF(delta, 0, MaxStepDelta)

	r.norm = r.norm[:0]
	if !r.tr.Degenerate() {
		for _, v := range touches {
			if p, ok := r.tr.Normalized(v); ok {
				r.norm = append(r.norm, p)
			}
		}
	}

	if !r.motion && len(r.norm) > 0 {
		r.motion = true
	}
	if !r.motion {
		delta = 0
	}
	r.clock += delta

	res := StepResult{}
	for _, id := range r.buttons.Keys() {
		b, _ := r.buttons.Get(id)
		b.anchor = b.spec.anchorAt(r.clock)
		touched, pressed := b.countTouches(r.norm)
		events := b.step(delta, touched, pressed, nil)
		for _, ev := range events {
			res.Buttons = append(res.Buttons, ev)
			res.DanglingEffects += r.applyEffects(b.spec, ev.Transition)
		}
	}
	for _, id := range r.lasers.Keys() {
		l, _ := r.lasers.Get(id)
		on, changed := l.advance(delta, r.clock, r.tr)
		if changed {
			res.Lasers = append(res.Lasers, LaserEvent{LaserID: id, Firing: on})
		}
	}

	res.Elapsed = r.clock
	res.Fill = r.fill()
	res.Complete = res.Fill >= 1
	return res
}

// Reset rewinds the runtime to its initial state: charge machines cleared,
// cadences rewound, overrides re-seeded from the level, clock stopped at
// zero.
func (r *Runtime) Reset() {
	r.clock = 0
	r.motion = false
	for _, id := range r.buttons.Keys() {
		b, _ := r.buttons.Get(id)
		b.reset()
	}
	for _, id := range r.lasers.Keys() {
		l, _ := r.lasers.Get(id)
		l.reset()
	}
	r.rebuildGeometry()
}

// Replace swaps in a new level description while play continues, keying
// runtime state by id: a button keeps its charge and a laser keeps its
// cadence progress and override wherever the id survives. State for ids
// that disappear is dropped and new ids start fresh. A laser whose cadence
// steps changed restarts its schedule, since old progress has no meaning
// against new steps.
func (r *Runtime) Replace(level *Level) error {
	if err := Validate(level); err != nil {
		return err
	}
	oldButtons, oldLasers := r.buttons, r.lasers
	r.level = level
	r.buttons = orderedmap.NewOrderedMap[string, *buttonState]()
	r.lasers = orderedmap.NewOrderedMap[string, *laserState]()

	for i := range level.Buttons {
		spec := &level.Buttons[i]
		if prev, ok := oldButtons.Get(spec.ID); ok {
			prev.bind(spec)
			r.buttons.Set(spec.ID, prev)
			continue
		}
		r.buttons.Set(spec.ID, newButtonState(spec))
	}
	for i := range level.Lasers {
		spec := &level.Lasers[i]
		prev, ok := oldLasers.Get(spec.ID)
		if !ok {
			r.lasers.Set(spec.ID, newLaserState(spec))
			continue
		}
		if !cadenceStepsEqual(prev.spec.Cadence, spec.Cadence) {
			prev.cadence = NewCadence(spec.Cadence)
		}
		prev.spec = spec
		r.lasers.Set(spec.ID, prev)
	}
	r.rebuildGeometry()
	return nil
}

// Fill returns the aggregate charge in [0, 1]. When any button is marked
// required only those count; otherwise every button counts. A level with no
// buttons reports 0.
func (r *Runtime) Fill() float64 {
	return r.fill()
}

// Complete reports whether the aggregate fill has reached 1.
func (r *Runtime) Complete() bool {
	return r.fill() >= 1
}

// DangerousAt reports whether a firing laser's beam covers the screen-space
// point, and which laser it is. Buttons never shield a point; standing on a
// button does not protect against a beam crossing it.
func (r *Runtime) DangerousAt(v mgl64.Vec2) (laserID string, dangerous bool) {
	for _, id := range r.lasers.Keys() {
		l, _ := r.lasers.Get(id)
		if l.dangerous(v) {
			return id, true
		}
	}
	return "", false
}

// ButtonAt returns the first button, in level order, with a hit area within
// tolerance pixels of the screen-space point. Selection queries use it;
// gameplay goes through Step.
func (r *Runtime) ButtonAt(v mgl64.Vec2, tolerance float64) (string, bool) {
	p, ok := r.tr.Normalized(v)
	if !ok {
		return "", false
	}
	tol := 0.0
	if s := r.tr.Scale(); s > 0 {
		tol = tolerance / s
	}
	for _, id := range r.buttons.Keys() {
		b, _ := r.buttons.Get(id)
		if b.hit(p, tol) {
			return id, true
		}
	}
	return "", false
}

// LaserAt returns the first laser, in level order, whose beam passes within
// tolerance pixels of the screen-space point. Firing state is ignored so
// editors can pick dark lasers.
func (r *Runtime) LaserAt(v mgl64.Vec2, tolerance float64) (string, bool) {
	for _, id := range r.lasers.Keys() {
		l, _ := r.lasers.Get(id)
		if l.beam.ContainsWithin(v, tolerance) {
			return id, true
		}
	}
	return "", false
}

// Buttons returns a snapshot of every button's state in level order. The
// snapshots are valid until the next Step.
func (r *Runtime) Buttons() []ButtonView {
	out := make([]ButtonView, 0, r.buttons.Len())
	for _, id := range r.buttons.Keys() {
		b, _ := r.buttons.Get(id)
		out = append(out, r.buttonView(b))
	}
	return out
}

// Button returns the state snapshot for one button.
func (r *Runtime) Button(id string) (ButtonView, bool) {
	b, ok := r.buttons.Get(id)
	if !ok {
		return ButtonView{}, false
	}
	return r.buttonView(b), true
}

// Lasers returns a snapshot of every laser's state in level order.
func (r *Runtime) Lasers() []LaserView {
	out := make([]LaserView, 0, r.lasers.Len())
	for _, id := range r.lasers.Keys() {
		l, _ := r.lasers.Get(id)
		out = append(out, laserView(l))
	}
	return out
}

// Laser returns the state snapshot for one laser.
func (r *Runtime) Laser(id string) (LaserView, bool) {
	l, ok := r.lasers.Get(id)
	if !ok {
		return LaserView{}, false
	}
	return laserView(l), true
}

func (r *Runtime) buttonView(b *buttonState) ButtonView {
	return ButtonView{
		ID:       b.spec.ID,
		Color:    b.spec.Color,
		Required: b.spec.Required,
		Charge:   b.charge,
		Touching: b.touching,
		Full:     b.full,
		Anchor:   b.screenAnchor(r.tr),
		Extent:   r.tr.Length(b.extent()),
	}
}

func laserView(l *laserState) LaserView {
	endpoints := make([]mgl64.Vec2, len(l.endpoints))
	copy(endpoints, l.endpoints)
	return LaserView{
		ID:           l.spec.ID,
		Color:        l.spec.Color,
		Type:         l.spec.Type,
		Firing:       l.firing(),
		Endpoints:    endpoints,
		AngleDegrees: l.angle,
		Thickness:    l.thickness,
		Beam:         l.beam,
	}
}

func (r *Runtime) fill() float64 {
	var sum, reqSum float64
	var n, reqN int
	for _, id := range r.buttons.Keys() {
		b, _ := r.buttons.Get(id)
		sum += b.charge
		n++
		if b.spec.Required {
			reqSum += b.charge
			reqN++
		}
	}
	if reqN > 0 {
		return reqSum / float64(reqN)
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (r *Runtime) rebuildGeometry() {
	for _, id := range r.buttons.Keys() {
		b, _ := r.buttons.Get(id)
		b.anchor = b.spec.anchorAt(r.clock)
	}
	for _, id := range r.lasers.Keys() {
		l, _ := r.lasers.Get(id)
		l.rebuild(r.clock, r.tr)
	}
}

// cadenceStepsEqual compares two cadence step lists by value.
func cadenceStepsEqual(a, b []CadenceStep) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].On != b[i].On {
			return false
		}
		an, bn := a[i].Seconds, b[i].Seconds
		if (an == nil) != (bn == nil) {
			return false
		}
		if an != nil && *an != *bn {
			return false
		}
	}
	return true
}

// ButtonView is the host-facing snapshot of one button.
type ButtonView struct {
	ID       string
	Color    string
	Required bool
	// Charge is the current fill in [0, 1].
	Charge   float64
	Touching bool
	Full     bool
	// Anchor is the button's position in pixels.
	Anchor mgl64.Vec2
	// Extent is a pixel radius around the anchor enclosing every hit area.
	Extent float64
}

// LaserView is the host-facing snapshot of one laser.
type LaserView struct {
	ID     string
	Color  string
	Type   LaserType
	Firing bool
	// Endpoints holds the live pixel positions: the anchor for a ray, both
	// ends for a segment.
	Endpoints []mgl64.Vec2
	// AngleDegrees is the current heading of a ray laser.
	AngleDegrees float64
	// Thickness is the beam width in pixels.
	Thickness float64
	// Beam is the collision polygon in pixels. Rendering from the same
	// polygon the simulation tests keeps what players see honest.
	Beam geom.Polygon
}
