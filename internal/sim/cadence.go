package sim

// Cadence tracks progress through a laser's on/off schedule. Construction
// filters the steps to those with a positive or absent duration, so a
// zero-length step can never wedge the advance loop. A step with no duration
// is terminal: reaching it locks the cadence in that state until Reset.
//
// The zero value is an empty cadence; lasers treat an empty cadence as
// always on.
type Cadence struct {
	steps   []CadenceStep
	index   int
	elapsed float64
	locked  bool
}

// NewCadence builds a cadence from a level's step list. The input is not
// retained.
func NewCadence(steps []CadenceStep) Cadence {
	var kept []CadenceStep
	for _, s := range steps {
		if s.Seconds == nil || *s.Seconds > 0 {
			kept = append(kept, s)
		}
	}
	c := Cadence{steps: kept}
	c.Reset()
	return c
}

// Empty reports whether the cadence has no usable steps.
func (c *Cadence) Empty() bool {
	return len(c.steps) == 0
}

// On reports the current step's state. It must not be called on an empty
// cadence.
func (c *Cadence) On() bool {
	return c.steps[c.index].On
}

// Locked reports whether the cadence has reached a terminal step.
func (c *Cadence) Locked() bool {
	return c.locked
}

// Advance moves the schedule forward by delta seconds, crossing as many step
// boundaries as the delta covers. Once locked it does nothing.
func (c *Cadence) Advance(delta float64) {
	if c.locked || len(c.steps) == 0 || delta <= 0 {
		return
	}
	c.elapsed += delta
	for {
		dur := c.steps[c.index].Seconds
		if dur == nil {
			c.locked = true
			return
		}
		if c.elapsed < *dur {
			return
		}
		c.elapsed -= *dur
		c.index = (c.index + 1) % len(c.steps)
	}
}

// Reset rewinds the schedule to its first step.
func (c *Cadence) Reset() {
	c.index = 0
	c.elapsed = 0
	c.locked = len(c.steps) > 0 && c.steps[0].Seconds == nil
}
