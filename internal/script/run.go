package script

import (
	"fmt"

	"github.com/vovakirdan/laserdodge/internal/config"
	"github.com/vovakirdan/laserdodge/internal/geom"
	"github.com/vovakirdan/laserdodge/internal/session"
	"github.com/vovakirdan/laserdodge/internal/sim"
)

// Observer sees every frame of a scripted run. now is the simulated time
// after the step. A nil observer skips reporting.
type Observer func(now float64, frame session.Frame)

// Result summarizes a finished scripted run.
type Result struct {
	Frames  int
	Elapsed float64
	Summary session.Summary
}

// Run plays the script against a level under the given session rules. The
// motion clock starts immediately so that timeline times line up with
// simulated seconds whether or not the first entry is at zero. A run that
// reaches the scripted duration without winning or losing counts as
// abandoned.
func (s *Script) Run(level *sim.Level, rules config.SessionConfig, obs Observer) (Result, error) {
	sess, err := session.New(level, rules, s.Viewport.Width, s.Viewport.Height)
	if err != nil {
		return Result{}, fmt.Errorf("starting session: %w", err)
	}
	sess.Runtime().StartMotion()

	tr := geom.NewTransform(s.Viewport.Width, s.Viewport.Height)
	var active []session.Touch
	next := 0

	const eps = 1e-9
	frames := 0
	for now := 0.0; now < s.Duration-eps; {
		for next < len(s.Timeline) && s.Timeline[next].At <= now+eps {
			active = convertTouches(tr, s.Timeline[next].Touches)
			next++
		}
		frame := sess.Advance(s.DT, active)
		now += s.DT
		frames++
		if obs != nil {
			obs(now, frame)
		}
		if frame.Outcome != session.OutcomeNone {
			break
		}
	}
	sess.Abandon()

	return Result{Frames: frames, Elapsed: sess.Duration(), Summary: sess.Summary()}, nil
}

func convertTouches(tr geom.Transform, touches []Touch) []session.Touch {
	if len(touches) == 0 {
		return nil
	}
	out := make([]session.Touch, len(touches))
	for i, t := range touches {
		out[i] = session.Touch{ID: t.ID, Pos: tr.Point(geom.P(t.X, t.Y))}
	}
	return out
}
