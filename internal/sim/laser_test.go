package sim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/laserdodge/internal/geom"
)

func TestLaserDefaultAngle(t *testing.T) {
	tests := []struct {
		name  string
		laser Laser
		want  float64
	}{
		{
			"explicit angle wins",
			Laser{
				Type:                LaserRay,
				InitialAngleDegrees: f64(30),
				Endpoints: []EndpointPath{{
					Points:       []geom.Point{geom.P(0, 0), geom.P(1, 0)},
					CycleSeconds: f64(2),
				}},
			},
			30,
		},
		{
			"perpendicular to horizontal path",
			Laser{
				Type: LaserRay,
				Endpoints: []EndpointPath{{
					Points:       []geom.Point{geom.P(-1, 0), geom.P(1, 0)},
					CycleSeconds: f64(2),
				}},
			},
			90,
		},
		{
			"perpendicular to vertical path",
			Laser{
				Type: LaserRay,
				Endpoints: []EndpointPath{{
					Points:       []geom.Point{geom.P(0, -1), geom.P(0, 1)},
					CycleSeconds: f64(2),
				}},
			},
			180,
		},
		{
			"stationary anchor defaults flat",
			Laser{
				Type:      LaserRay,
				Endpoints: []EndpointPath{{Points: []geom.Point{geom.P(0, 0)}}},
			},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.laser.initialAngle(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("initialAngle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLaserRotation(t *testing.T) {
	l := Laser{Type: LaserRay, RotationSpeedDegrees: 45, InitialAngleDegrees: f64(10),
		Endpoints: []EndpointPath{{Points: []geom.Point{geom.P(0, 0)}}}}
	if got := l.angleAt(2); math.Abs(got-100) > 1e-9 {
		t.Errorf("angleAt(2) = %v, want 100", got)
	}
}

func TestRayBeamCoversWholeScreen(t *testing.T) {
	level := &Level{
		Lasers: []Laser{{
			ID:                  "ray",
			Type:                LaserRay,
			Thickness:           0.02,
			InitialAngleDegrees: f64(0),
			Endpoints:           []EndpointPath{{Points: []geom.Point{geom.P(0.9, 0.9)}}},
		}},
	}
	r := mustRuntime(t, level)
	r.Step(0.016, nil)

	// A horizontal ray anchored near the corner must still cover points at
	// the far side of the screen on the same horizontal line.
	anchor := r.Transform().Point(geom.P(0.9, 0.9))
	far := mgl64.Vec2{0, anchor.Y()}
	if _, hit := r.DangerousAt(far); !hit {
		t.Error("ray should extend past the far screen edge")
	}
	above := mgl64.Vec2{anchor.X(), anchor.Y() - 50}
	if _, hit := r.DangerousAt(above); hit {
		t.Error("point off the ray line should be safe")
	}
}

func TestRayRotatesOverTime(t *testing.T) {
	level := &Level{
		Lasers: []Laser{{
			ID:                   "spinner",
			Type:                 LaserRay,
			Thickness:            0.02,
			InitialAngleDegrees:  f64(0),
			RotationSpeedDegrees: 90,
			Endpoints:            []EndpointPath{{Points: []geom.Point{geom.P(0, 0)}}},
		}},
	}
	r := mustRuntime(t, level)
	r.StartMotion()

	// At t=0 the beam is horizontal: a point to the right is hit, a point
	// straight above is not.
	right := r.Transform().Point(geom.P(0.5, 0))
	below := r.Transform().Point(geom.P(0, 0.5))
	r.Step(0, nil)
	if _, hit := r.DangerousAt(right); !hit {
		t.Fatal("horizontal beam should cover the point to the right")
	}
	if _, hit := r.DangerousAt(below); hit {
		t.Fatal("horizontal beam should miss the point below")
	}

	// After one second at 90 deg/s the beam is vertical.
	for i := 0; i < 8; i++ {
		r.Step(0.125, nil)
	}
	if _, hit := r.DangerousAt(below); !hit {
		t.Error("rotated beam should cover the point below")
	}
	if _, hit := r.DangerousAt(right); hit {
		t.Error("rotated beam should miss the point to the right")
	}
}

func TestSegmentBeamFollowsMovingEndpoints(t *testing.T) {
	level := &Level{
		Lasers: []Laser{{
			ID:        "sweep",
			Type:      LaserSegment,
			Thickness: 0.04,
			Endpoints: []EndpointPath{
				{Points: []geom.Point{geom.P(-0.8, -0.5), geom.P(-0.8, 0.5)}, CycleSeconds: f64(2)},
				{Points: []geom.Point{geom.P(0.8, -0.5), geom.P(0.8, 0.5)}, CycleSeconds: f64(2)},
			},
		}},
	}
	r := mustRuntime(t, level)
	r.StartMotion()

	top := r.Transform().Point(geom.P(0, -0.5))
	bottom := r.Transform().Point(geom.P(0, 0.5))

	r.Step(0, nil)
	if _, hit := r.DangerousAt(top); !hit {
		t.Fatal("beam should start across the top positions")
	}
	if _, hit := r.DangerousAt(bottom); hit {
		t.Fatal("beam should not cover the bottom at t=0")
	}

	// Half a cycle later both endpoints reach their second points.
	for i := 0; i < 8; i++ {
		r.Step(0.125, nil)
	}
	if _, hit := r.DangerousAt(bottom); !hit {
		t.Error("beam should reach the bottom at half cycle")
	}
	if _, hit := r.DangerousAt(top); hit {
		t.Error("beam should have left the top at half cycle")
	}
}

func TestLaserCadenceGatesDanger(t *testing.T) {
	level := simpleLevel()
	level.Lasers[0].Cadence = []CadenceStep{
		{On: false, Seconds: f64(1)},
		{On: true, Seconds: f64(1)},
	}
	r := mustRuntime(t, level)
	r.StartMotion()
	onBeam := r.Transform().Point(geom.P(0, -0.5))

	r.Step(0, nil)
	if _, hit := r.DangerousAt(onBeam); hit {
		t.Fatal("cadence starts off")
	}
	for i := 0; i < 8; i++ {
		r.Step(0.125, nil)
	}
	if _, hit := r.DangerousAt(onBeam); !hit {
		t.Fatal("cadence should be on in its second step")
	}
}

func TestLaserOverrideBeatsCadence(t *testing.T) {
	level := simpleLevel()
	level.Lasers[0].Cadence = []CadenceStep{{On: true, Seconds: f64(10)}}
	level.Buttons[0].Effects = []Effect{{
		Trigger: TriggerTouchStarted,
		Action:  EffectAction{Kind: ActionTurnOff, Lasers: []string{"l1"}},
	}}
	r := mustRuntime(t, level)

	r.Step(0.016, touchAt(r, geom.P(0, 0.5)))
	if v, _ := r.Laser("l1"); v.Firing {
		t.Fatal("override should beat an on cadence")
	}
}

func TestStrokePolygonDegenerate(t *testing.T) {
	pg := strokePolygon(mgl64.Vec2{5, 5}, mgl64.Vec2{5, 5}, 10)
	if pg.Contains(mgl64.Vec2{5, 5}) {
		t.Error("zero-length stroke should contain nothing")
	}
	pg = strokePolygon(mgl64.Vec2{0, 0}, mgl64.Vec2{10, 0}, 0)
	if pg.Contains(mgl64.Vec2{5, 0}) {
		t.Error("zero-thickness stroke should contain nothing")
	}
}

func TestStrokePolygonCoversSegment(t *testing.T) {
	pg := strokePolygon(mgl64.Vec2{0, 0}, mgl64.Vec2{10, 0}, 4)
	inside := []mgl64.Vec2{{5, 1.9}, {5, -1.9}, {1, 0}, {9, 0}}
	for _, v := range inside {
		if !pg.Contains(v) {
			t.Errorf("stroke should contain %v", v)
		}
	}
	outside := []mgl64.Vec2{{5, 2.1}, {5, -2.1}, {-1, 0}, {11, 0}}
	for _, v := range outside {
		if pg.Contains(v) {
			t.Errorf("stroke should not contain %v", v)
		}
	}
}
