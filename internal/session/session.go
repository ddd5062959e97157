// Package session layers play rules on top of the simulation core: touch
// identity, per-touch zap cooldowns, lives, and the win/lose outcome. The
// core reports which geometry is dangerous; what a hit costs is host logic,
// and this package is that host.
package session

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/vovakirdan/laserdodge/internal/config"
	"github.com/vovakirdan/laserdodge/internal/geom"
	"github.com/vovakirdan/laserdodge/internal/sim"
)

// Touch is one tracked pointer. The ID must stay stable for as long as the
// pointer is down so cooldowns can follow it across frames.
type Touch struct {
	ID  string
	Pos mgl64.Vec2
}

// Outcome is the terminal result of an attempt. The zero value means the
// attempt is still running.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeWin       Outcome = "win"
	OutcomeLoss      Outcome = "loss"
	OutcomeAbandoned Outcome = "abandoned"
)

// Zap records one touch caught by a live beam.
type Zap struct {
	TouchID string
	LaserID string
	Pos     mgl64.Vec2
}

// Frame is the result of one Advance call.
type Frame struct {
	Step    sim.StepResult
	Zaps    []Zap
	Lives   int
	Outcome Outcome
}

// Summary captures a finished or running attempt for persistence and
// reporting.
type Summary struct {
	AttemptID string
	LevelID   string
	Outcome   Outcome
	Fill      float64
	Duration  float64
	Zaps      int
}

// Session drives one attempt at a level. It owns a runtime plus the rules
// the core leaves to its host. Like the runtime it expects a single
// goroutine.
type Session struct {
	rules   config.SessionConfig
	rt      *sim.Runtime
	attempt string
	levelID string

	lives   int
	zaps    int
	clock   float64
	immune  map[string]float64 // touch id -> clock time its cooldown ends
	outcome Outcome
}

// New validates the level and starts a fresh attempt with a new id.
// Non-positive rule values fall back to the built-in defaults.
func New(level *sim.Level, rules config.SessionConfig, width, height float64) (*Session, error) {
	rt, err := sim.NewRuntime(level, width, height)
	if err != nil {
		return nil, err
	}
	if rules.Lives <= 0 {
		rules.Lives = config.Default().Session.Lives
	}
	if rules.ZapCooldownSeconds < 0 {
		rules.ZapCooldownSeconds = 0
	}
	return &Session{
		rules:   rules,
		rt:      rt,
		attempt: uuid.NewString(),
		levelID: level.ID,
		lives:   rules.Lives,
		immune:  make(map[string]float64),
	}, nil
}

// Advance steps the simulation and applies the play rules. Once the attempt
// has a terminal outcome the state is frozen and further calls report it
// without stepping.
func (s *Session) Advance(delta float64, touches []Touch) Frame {
	if s.outcome != OutcomeNone {
		return Frame{
			Step:    sim.StepResult{Elapsed: s.rt.Elapsed(), Fill: s.rt.Fill(), Complete: s.rt.Complete()},
			Lives:   s.lives,
			Outcome: s.outcome,
		}
	}

	delta = geom.ClampF(delta, 0, sim.MaxStepDelta)
	s.clock += delta

	pts := make([]mgl64.Vec2, len(touches))
	for i, t := range touches {
		pts[i] = t.Pos
	}
	frame := Frame{Step: s.rt.Step(delta, pts), Lives: s.lives}

	// Fill reaching 1 wins even if a touch sits on a beam this same frame.
	if frame.Step.Complete {
		s.outcome = OutcomeWin
		frame.Outcome = s.outcome
		return frame
	}

	for _, t := range touches {
		if until, ok := s.immune[t.ID]; ok && until > s.clock {
			continue
		}
		laserID, dangerous := s.rt.DangerousAt(t.Pos)
		if !dangerous {
			continue
		}
		s.immune[t.ID] = s.clock + s.rules.ZapCooldownSeconds
		s.zaps++
		s.lives--
		frame.Zaps = append(frame.Zaps, Zap{TouchID: t.ID, LaserID: laserID, Pos: t.Pos})
	}
	for id, until := range s.immune {
		if until <= s.clock {
			delete(s.immune, id)
		}
	}

	frame.Lives = s.lives
	if s.lives <= 0 {
		s.outcome = OutcomeLoss
	}
	frame.Outcome = s.outcome
	return frame
}

// SetViewport forwards a resize to the runtime. Safe mid-attempt.
func (s *Session) SetViewport(width, height float64) {
	s.rt.SetViewport(width, height)
}

// Restart begins a new attempt on the same level and viewport: new attempt
// id, full lives, simulation rewound.
func (s *Session) Restart() {
	s.rt.Reset()
	s.attempt = uuid.NewString()
	s.lives = s.rules.Lives
	s.zaps = 0
	s.clock = 0
	s.immune = make(map[string]float64)
	s.outcome = OutcomeNone
}

// Abandon ends a running attempt without a win or loss. Attempts that
// already finished keep their outcome.
func (s *Session) Abandon() {
	if s.outcome == OutcomeNone {
		s.outcome = OutcomeAbandoned
	}
}

// Runtime exposes the underlying simulation for rendering and pick queries.
func (s *Session) Runtime() *sim.Runtime {
	return s.rt
}

// AttemptID returns the unique id of the current attempt.
func (s *Session) AttemptID() string {
	return s.attempt
}

// Lives returns the lives remaining.
func (s *Session) Lives() int {
	return s.lives
}

// Zaps returns how many zaps this attempt has taken.
func (s *Session) Zaps() int {
	return s.zaps
}

// Duration returns the simulated length of the attempt in seconds.
func (s *Session) Duration() float64 {
	return s.clock
}

// Outcome returns the attempt outcome, OutcomeNone while still running.
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Over reports whether the attempt reached a terminal outcome.
func (s *Session) Over() bool {
	return s.outcome != OutcomeNone
}

// Summary snapshots the attempt for persistence.
func (s *Session) Summary() Summary {
	return Summary{
		AttemptID: s.attempt,
		LevelID:   s.levelID,
		Outcome:   s.outcome,
		Fill:      s.rt.Fill(),
		Duration:  s.clock,
		Zaps:      s.zaps,
	}
}
