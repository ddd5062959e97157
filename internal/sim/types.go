// Package sim implements the deterministic core of a laser-dodging arcade
// game: moving lasers that players must avoid and buttons they must hold to
// charge. The package is pure simulation. It never reads files, never draws,
// and never talks to the platform layer; hosts feed it frame deltas and
// touch positions and read the resulting state back. Given the same level,
// viewport, and input sequence it always produces the same states, which
// keeps replays and tests exact.
//
// Within a frame the update order is fixed: button charge and effect
// propagation settle first, then lasers advance. A button that fills this
// frame therefore gates its lasers this frame, never one frame late.
package sim

import "github.com/vovakirdan/laserdodge/internal/geom"

// LaserType selects how a laser's beam is anchored.
type LaserType string

const (
	// LaserRay is anchored at a single point and extends past both screen
	// edges at its current angle.
	LaserRay LaserType = "ray"
	// LaserSegment runs between two endpoints, each on its own path.
	LaserSegment LaserType = "segment"
)

// Valid reports whether t names a known laser type.
func (t LaserType) Valid() bool {
	return t == LaserRay || t == LaserSegment
}

// HitLogic selects how a multi-area button decides it is being pressed.
type HitLogic string

const (
	// HitAny charges the button while any hit area is touched. This is the
	// default when a level omits the field.
	HitAny HitLogic = "any"
	// HitAll charges the button only while every hit area is touched at
	// once, which usually takes several fingers.
	HitAll HitLogic = "all"
)

// Valid reports whether h names a known hit logic. The empty string is
// valid and means HitAny.
func (h HitLogic) Valid() bool {
	return h == "" || h == HitAny || h == HitAll
}

// ShapeType names the geometry of a hit area.
type ShapeType string

const (
	ShapeCircle    ShapeType = "circle"
	ShapeRectangle ShapeType = "rectangle"
	ShapeCapsule   ShapeType = "capsule"
	ShapePolygon   ShapeType = "polygon"
)

// Valid reports whether s names a known shape.
func (s ShapeType) Valid() bool {
	switch s {
	case ShapeCircle, ShapeRectangle, ShapeCapsule, ShapePolygon:
		return true
	}
	return false
}

// CadenceStep is one phase of a laser's on/off schedule. A nil Seconds marks
// a terminal step: once reached, the laser stays in that state until the
// level resets.
type CadenceStep struct {
	On      bool     `json:"on" yaml:"on"`
	Seconds *float64 `json:"seconds" yaml:"seconds"`
}

// Laser describes one laser in a level. Ray lasers carry exactly one
// endpoint path, segment lasers exactly two.
type Laser struct {
	ID        string    `json:"id" yaml:"id"`
	Color     string    `json:"color,omitempty" yaml:"color,omitempty"`
	Type      LaserType `json:"type" yaml:"type"`
	Thickness float64   `json:"thickness" yaml:"thickness"`
	// Enabled seeds the laser's firing override: false starts the laser
	// switched off until an effect turns it on. Omitted means on.
	Enabled   *bool          `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Cadence   []CadenceStep  `json:"cadence,omitempty" yaml:"cadence,omitempty"`
	Endpoints []EndpointPath `json:"endpoints" yaml:"endpoints"`
	// InitialAngleDegrees applies to ray lasers. When omitted the ray
	// starts perpendicular to its two-point endpoint path, or at 0 for a
	// stationary anchor.
	InitialAngleDegrees *float64 `json:"initialAngleDegrees,omitempty" yaml:"initialAngleDegrees,omitempty"`
	// RotationSpeedDegrees spins a ray laser, in degrees per second.
	RotationSpeedDegrees float64 `json:"rotationSpeed,omitempty" yaml:"rotationSpeed,omitempty"`
}

// HitArea is one touchable region of a button, positioned relative to the
// button's anchor. Only the fields matching Shape are meaningful: Radius for
// circles, Width/Height/CornerRadius for rectangles, Length/Radius for
// capsules, Points for polygons.
type HitArea struct {
	ID              string       `json:"id,omitempty" yaml:"id,omitempty"`
	Shape           ShapeType    `json:"shape" yaml:"shape"`
	Radius          float64      `json:"radius,omitempty" yaml:"radius,omitempty"`
	Width           float64      `json:"width,omitempty" yaml:"width,omitempty"`
	Height          float64      `json:"height,omitempty" yaml:"height,omitempty"`
	CornerRadius    float64      `json:"cornerRadius,omitempty" yaml:"cornerRadius,omitempty"`
	Length          float64      `json:"length,omitempty" yaml:"length,omitempty"`
	Points          []geom.Point `json:"points,omitempty" yaml:"points,omitempty"`
	Offset          geom.Point   `json:"offset,omitempty" yaml:"offset,omitempty"`
	RotationDegrees float64      `json:"rotationDegrees,omitempty" yaml:"rotationDegrees,omitempty"`
}

// ButtonTiming holds the charge machine's rates. ChargeSeconds and
// DrainSeconds are full-swing durations; values of zero or less snap the
// charge instantly. A nil HoldSeconds means a filled button holds its charge
// forever once the touch lifts.
type ButtonTiming struct {
	ChargeSeconds float64  `json:"chargeSeconds" yaml:"chargeSeconds"`
	HoldSeconds   *float64 `json:"holdSeconds,omitempty" yaml:"holdSeconds,omitempty"`
	DrainSeconds  float64  `json:"drainSeconds" yaml:"drainSeconds"`
}

// Button describes one chargeable button. Its anchor rides a single
// endpoint path; hit areas are placed relative to the anchor.
type Button struct {
	ID        string         `json:"id" yaml:"id"`
	Color     string         `json:"color,omitempty" yaml:"color,omitempty"`
	Endpoints []EndpointPath `json:"endpoints" yaml:"endpoints"`
	Timing    ButtonTiming   `json:"timing" yaml:"timing"`
	HitLogic  HitLogic       `json:"hitLogic,omitempty" yaml:"hitLogic,omitempty"`
	// Required marks the button as counting toward level completion. When
	// no button in a level is required, all of them count.
	Required bool      `json:"required,omitempty" yaml:"required,omitempty"`
	HitAreas []HitArea `json:"hitAreas" yaml:"hitAreas"`
	Effects  []Effect  `json:"effects,omitempty" yaml:"effects,omitempty"`
}

// Trigger names the button transition an effect listens for.
type Trigger string

const (
	TriggerTouchStarted Trigger = "touchStarted"
	TriggerTouchEnded   Trigger = "touchEnded"
	TriggerTurnedOn     Trigger = "turnedOn"
	TriggerTurnedOff    Trigger = "turnedOff"
)

// Valid reports whether tr names a known trigger.
func (tr Trigger) Valid() bool {
	_, ok := tr.transition()
	return ok
}

// ActionKind names what an effect does to its target lasers.
type ActionKind string

const (
	ActionTurnOn  ActionKind = "turnOnLasers"
	ActionTurnOff ActionKind = "turnOffLasers"
	ActionToggle  ActionKind = "toggleLasers"
)

// Valid reports whether k names a known action.
func (k ActionKind) Valid() bool {
	return k == ActionTurnOn || k == ActionTurnOff || k == ActionToggle
}

// EffectAction is the laser-facing half of an effect.
type EffectAction struct {
	Kind   ActionKind `json:"kind" yaml:"kind"`
	Lasers []string   `json:"lasers" yaml:"lasers"`
}

// Effect wires a button transition to a laser action.
type Effect struct {
	Trigger Trigger      `json:"trigger" yaml:"trigger"`
	Action  EffectAction `json:"action" yaml:"action"`
}

// Level is the full static description of one playable level. It is plain
// data: Runtime holds all mutable state, so one Level can back any number of
// concurrent runtimes.
type Level struct {
	ID       string            `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string            `json:"name,omitempty" yaml:"name,omitempty"`
	Buttons  []Button          `json:"buttons,omitempty" yaml:"buttons,omitempty"`
	Lasers   []Laser           `json:"lasers,omitempty" yaml:"lasers,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Button returns the button with the given id, or nil.
func (l *Level) Button(id string) *Button {
	for i := range l.Buttons {
		if l.Buttons[i].ID == id {
			return &l.Buttons[i]
		}
	}
	return nil
}

// Laser returns the laser with the given id, or nil.
func (l *Level) Laser(id string) *Laser {
	for i := range l.Lasers {
		if l.Lasers[i].ID == id {
			return &l.Lasers[i]
		}
	}
	return nil
}
