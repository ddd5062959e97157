// Package script runs recorded touch timelines against a level without a
// terminal. A script fixes the step size, the viewport, and when each touch
// goes down and up, so the same file always produces the same attempt. The
// simulate command uses scripts to check levels are beatable and to debug
// effect wiring frame by frame.
package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/laserdodge/internal/sim"
)

// Touch is one scripted pointer position in normalized author coordinates.
// An omitted id names the touch "touch", which is enough for single-finger
// scripts; multi-finger scripts must name their touches so cooldowns can
// follow each finger.
type Touch struct {
	ID string  `yaml:"id,omitempty"`
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
}

// Entry replaces the whole touch set at a point in scripted time. An entry
// with no touches lifts every finger.
type Entry struct {
	At      float64 `yaml:"at"`
	Touches []Touch `yaml:"touches,omitempty"`
}

// Viewport is the pixel size the script simulates at. It matters: beam
// thickness and pick distances are defined in pixels, so replays are exact
// only at the viewport they were recorded for.
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Script is one recorded attempt: a fixed-step clock plus a touch timeline.
type Script struct {
	Name     string   `yaml:"name,omitempty"`
	DT       float64  `yaml:"dt,omitempty"`
	Duration float64  `yaml:"duration"`
	Viewport Viewport `yaml:"viewport,omitempty"`
	Timeline []Entry  `yaml:"timeline,omitempty"`
}

const (
	defaultDT      = 1.0 / 60
	defaultWidth   = 800
	defaultHeight  = 600
	defaultTouchID = "touch"
)

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing script %s: %w", path, err)
	}
	return s, nil
}

// Parse parses script YAML, fills defaults, and validates the timeline.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.DT == 0 {
		s.DT = defaultDT
	}
	if s.Viewport.Width == 0 && s.Viewport.Height == 0 {
		s.Viewport = Viewport{Width: defaultWidth, Height: defaultHeight}
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	for i := range s.Timeline {
		for j := range s.Timeline[i].Touches {
			if s.Timeline[i].Touches[j].ID == "" {
				s.Timeline[i].Touches[j].ID = defaultTouchID
			}
		}
	}
	return &s, nil
}

func (s *Script) validate() error {
	if s.DT <= 0 || s.DT > sim.MaxStepDelta {
		return fmt.Errorf("dt must be in (0, %g], got %g", sim.MaxStepDelta, s.DT)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", s.Duration)
	}
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %gx%g", s.Viewport.Width, s.Viewport.Height)
	}
	prev := 0.0
	for i, e := range s.Timeline {
		if e.At < 0 {
			return fmt.Errorf("timeline[%d]: at must not be negative, got %g", i, e.At)
		}
		if e.At < prev {
			return fmt.Errorf("timeline[%d]: at %g is earlier than the previous entry at %g", i, e.At, prev)
		}
		prev = e.At
	}
	return nil
}
