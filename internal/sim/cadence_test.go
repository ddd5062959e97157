package sim

import "testing"

func TestCadenceAlternates(t *testing.T) {
	c := NewCadence([]CadenceStep{
		{On: true, Seconds: f64(1)},
		{On: false, Seconds: f64(1)},
	})

	want := []bool{true, false, true, false, true}
	for i, w := range want {
		if got := c.On(); got != w {
			t.Fatalf("after %d advances On() = %v, want %v", i, got, w)
		}
		c.Advance(1)
	}
}

func TestCadenceCrossesMultipleSteps(t *testing.T) {
	c := NewCadence([]CadenceStep{
		{On: true, Seconds: f64(0.5)},
		{On: false, Seconds: f64(0.5)},
	})
	// One large delta crosses three boundaries and lands mid-off.
	c.Advance(1.75)
	if c.On() {
		t.Error("expected off after 1.75s of a 0.5/0.5 schedule")
	}
	c.Advance(0.25)
	if !c.On() {
		t.Error("expected on after wrapping to 2.0s")
	}
}

func TestCadenceTerminalStepLocks(t *testing.T) {
	c := NewCadence([]CadenceStep{
		{On: true, Seconds: f64(1)},
		{On: false, Seconds: nil},
	})

	if !c.On() {
		t.Fatal("should start on")
	}
	c.Advance(1)
	if c.On() {
		t.Fatal("should be off after first step")
	}
	if !c.Locked() {
		t.Fatal("nil-duration step should lock")
	}
	c.Advance(100)
	if c.On() {
		t.Error("locked cadence must not advance")
	}

	c.Reset()
	if !c.On() || c.Locked() {
		t.Error("reset should rewind to the first step and unlock")
	}
}

func TestCadenceLockedFromStart(t *testing.T) {
	c := NewCadence([]CadenceStep{{On: false, Seconds: nil}})
	if c.On() {
		t.Error("should hold the terminal state")
	}
	if !c.Locked() {
		t.Error("first-step terminal should lock immediately")
	}
	c.Advance(5)
	if c.On() {
		t.Error("locked cadence changed state")
	}
}

func TestCadenceFiltersZeroSteps(t *testing.T) {
	c := NewCadence([]CadenceStep{
		{On: false, Seconds: f64(0)},
		{On: true, Seconds: f64(-2)},
		{On: true, Seconds: f64(1)},
		{On: false, Seconds: f64(1)},
	})
	// The two degenerate steps vanish; the schedule starts at the first
	// usable step.
	if !c.On() {
		t.Fatal("zero and negative duration steps should be dropped")
	}
	c.Advance(1)
	if c.On() {
		t.Error("expected off after the surviving on step")
	}
}

func TestCadenceEmpty(t *testing.T) {
	all := NewCadence(nil)
	if !all.Empty() {
		t.Error("nil steps should make an empty cadence")
	}
	filtered := NewCadence([]CadenceStep{{On: true, Seconds: f64(0)}})
	if !filtered.Empty() {
		t.Error("a schedule of only degenerate steps should be empty")
	}
	filtered.Advance(1) // must not panic
}

func TestCadenceDeterminism(t *testing.T) {
	steps := []CadenceStep{
		{On: true, Seconds: f64(0.3)},
		{On: false, Seconds: f64(0.7)},
		{On: true, Seconds: f64(0.2)},
	}
	deltas := []float64{0.1, 0.25, 0.016, 0.5, 1.3, 0.016, 0.016, 2}

	run := func() []bool {
		c := NewCadence(steps)
		out := make([]bool, 0, len(deltas))
		for _, d := range deltas {
			c.Advance(d)
			out = append(out, c.On())
		}
		return out
	}

	first, second := run(), run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("run diverged at step %d: %v vs %v", i, first[i], second[i])
		}
	}
}
