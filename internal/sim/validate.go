package sim

import (
	"fmt"
	"strings"
)

// ValidationError contains details about one problem in a level description.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// ValidationReport aggregates every problem found in a level so authors can
// fix a file in one pass instead of replaying the first error repeatedly.
type ValidationReport struct {
	Problems []ValidationError
}

func (r *ValidationReport) Error() string {
	msgs := make([]string, len(r.Problems))
	for i, p := range r.Problems {
		msgs[i] = p.Error()
	}
	return fmt.Sprintf("level validation failed: %s", strings.Join(msgs, "; "))
}

func (r *ValidationReport) add(code, format string, args ...any) {
	r.Problems = append(r.Problems, ValidationError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks the structural and referential integrity of a level:
//   - Button and laser ids are unique
//   - Lasers carry a known type and the endpoint count it requires
//   - Endpoint paths hold one or two points
//   - Buttons have at least one well-formed hit area
//   - Effects use known triggers and actions and reference existing lasers
//
// On failure the returned error is a *ValidationReport listing every
// problem found.
func Validate(l *Level) error {
	report := &ValidationReport{}

	laserIDs := make(map[string]bool, len(l.Lasers))
	for i := range l.Lasers {
		laser := &l.Lasers[i]
		if laserIDs[laser.ID] {
			report.add("DUPLICATE_LASER_ID", "laser id %q appears more than once", laser.ID)
		}
		laserIDs[laser.ID] = true
		validateLaser(laser, report)
	}

	buttonIDs := make(map[string]bool, len(l.Buttons))
	for i := range l.Buttons {
		button := &l.Buttons[i]
		if buttonIDs[button.ID] {
			report.add("DUPLICATE_BUTTON_ID", "button id %q appears more than once", button.ID)
		}
		buttonIDs[button.ID] = true
		validateButton(button, laserIDs, report)
	}

	if len(report.Problems) > 0 {
		return report
	}
	return nil
}

func validateLaser(l *Laser, report *ValidationReport) {
	switch l.Type {
	case LaserRay:
		if len(l.Endpoints) != 1 {
			report.add("BAD_ENDPOINT_COUNT", "laser %q: ray needs exactly 1 endpoint path, has %d", l.ID, len(l.Endpoints))
		}
	case LaserSegment:
		if len(l.Endpoints) != 2 {
			report.add("BAD_ENDPOINT_COUNT", "laser %q: segment needs exactly 2 endpoint paths, has %d", l.ID, len(l.Endpoints))
		}
	default:
		report.add("BAD_LASER_TYPE", "laser %q: unknown type %q", l.ID, l.Type)
	}
	if l.Thickness <= 0 {
		report.add("BAD_DIMENSION", "laser %q: thickness must be positive, got %v", l.ID, l.Thickness)
	}
	for i, path := range l.Endpoints {
		validatePath(fmt.Sprintf("laser %q endpoint %d", l.ID, i), path, report)
	}
}

func validateButton(b *Button, laserIDs map[string]bool, report *ValidationReport) {
	if len(b.Endpoints) != 1 {
		report.add("BAD_ENDPOINT_COUNT", "button %q: needs exactly 1 endpoint path, has %d", b.ID, len(b.Endpoints))
	}
	for i, path := range b.Endpoints {
		validatePath(fmt.Sprintf("button %q endpoint %d", b.ID, i), path, report)
	}
	if !b.HitLogic.Valid() {
		report.add("BAD_HIT_LOGIC", "button %q: unknown hit logic %q", b.ID, b.HitLogic)
	}

	if len(b.HitAreas) == 0 {
		report.add("NO_HIT_AREAS", "button %q: needs at least one hit area", b.ID)
	}
	for i, area := range b.HitAreas {
		validateArea(b.ID, i, area, report)
	}

	for i, ef := range b.Effects {
		if !ef.Trigger.Valid() {
			report.add("BAD_TRIGGER", "button %q effect %d: unknown trigger %q", b.ID, i, ef.Trigger)
		}
		if !ef.Action.Kind.Valid() {
			report.add("BAD_ACTION", "button %q effect %d: unknown action %q", b.ID, i, ef.Action.Kind)
		}
		for _, target := range ef.Action.Lasers {
			if !laserIDs[target] {
				report.add("UNKNOWN_LASER_REF", "button %q effect %d: no laser with id %q", b.ID, i, target)
			}
		}
	}
}

func validatePath(owner string, p EndpointPath, report *ValidationReport) {
	if len(p.Points) < 1 || len(p.Points) > 2 {
		report.add("BAD_PATH_POINTS", "%s: path needs 1 or 2 points, has %d", owner, len(p.Points))
	}
}

func validateArea(buttonID string, index int, a HitArea, report *ValidationReport) {
	bad := func(format string, args ...any) {
		prefix := fmt.Sprintf("button %q hit area %d: ", buttonID, index)
		report.add("BAD_HIT_AREA", prefix+format, args...)
	}
	switch a.Shape {
	case ShapeCircle:
		if a.Radius <= 0 {
			bad("circle radius must be positive, got %v", a.Radius)
		}
	case ShapeRectangle:
		if a.Width <= 0 || a.Height <= 0 {
			bad("rectangle needs positive width and height, got %vx%v", a.Width, a.Height)
		}
	case ShapeCapsule:
		if a.Radius <= 0 || a.Length <= 0 {
			bad("capsule needs positive radius and length, got r=%v l=%v", a.Radius, a.Length)
		}
	case ShapePolygon:
		if len(a.Points) < 3 {
			bad("polygon needs at least 3 points, has %d", len(a.Points))
		}
	default:
		bad("unknown shape %q", a.Shape)
	}
}
