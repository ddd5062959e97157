package sim

// Transition identifies one edge of a button's state. Transitions are
// consumed by the effect graph the moment they fire and are never queued
// across frames.
type Transition uint8

const (
	// TouchStarted fires when the first touch lands in any hit area.
	TouchStarted Transition = iota
	// TouchEnded fires when the last touch leaves all hit areas.
	TouchEnded
	// TurnedOn fires when the charge reaches full.
	TurnedOn
	// TurnedOff fires when a full button's charge drops below full.
	TurnedOff
)

// String returns the level-file spelling of the transition.
func (t Transition) String() string {
	switch t {
	case TouchStarted:
		return string(TriggerTouchStarted)
	case TouchEnded:
		return string(TriggerTouchEnded)
	case TurnedOn:
		return string(TriggerTurnedOn)
	case TurnedOff:
		return string(TriggerTurnedOff)
	}
	return "unknown"
}

// transition maps a level-file trigger to its runtime transition.
func (tr Trigger) transition() (Transition, bool) {
	switch tr {
	case TriggerTouchStarted:
		return TouchStarted, true
	case TriggerTouchEnded:
		return TouchEnded, true
	case TriggerTurnedOn:
		return TurnedOn, true
	case TriggerTurnedOff:
		return TurnedOff, true
	}
	return 0, false
}

// ButtonEvent records one button transition that fired during a step.
type ButtonEvent struct {
	ButtonID   string
	Transition Transition
}

// LaserEvent records a change in a laser's effective firing state. The
// first step reports every laser once so hosts learn the initial states.
type LaserEvent struct {
	LaserID string
	Firing  bool
}

// StepResult summarizes one simulation step for the host. Event slices are
// in the order the events fired, which follows level order for buttons and
// lasers.
type StepResult struct {
	// Elapsed is the simulation clock after the step, in seconds. It
	// stays at zero until motion starts.
	Elapsed float64
	// Fill is the aggregate charge in [0, 1] over the buttons that count.
	Fill float64
	// Complete reports a fill of 1.
	Complete bool
	// Buttons lists the button transitions that fired this step.
	Buttons []ButtonEvent
	// Lasers lists the lasers whose firing state changed this step.
	Lasers []LaserEvent
	// DanglingEffects counts effect laser references that resolved to no
	// laser this step. Validation rejects such levels up front; the
	// counter exists so a host running an unvalidated level can notice.
	DanglingEffects int
}
