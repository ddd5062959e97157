package levels

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/laserdodge/internal/sim"
)

func TestLoadAllSkipsBrokenFiles(t *testing.T) {
	loader := NewLoader("testdata")
	all, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	// broken-refs.json fails validation and garbage.yaml fails parsing;
	// the three good levels survive, sorted by id.
	want := []string{"crossfire", "twin-gates", "unnamed"}
	if len(all) != len(want) {
		ids := make([]string, len(all))
		for i, l := range all {
			ids[i] = l.ID
		}
		t.Fatalf("loaded %v, want %v", ids, want)
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("level %d = %q, want %q", i, all[i].ID, id)
		}
	}
}

func TestLoadFileJSON(t *testing.T) {
	loader := NewLoader("testdata")
	level, err := loader.LoadFile(filepath.Join("testdata", "crossfire.json"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if level.Name != "Crossfire" {
		t.Errorf("Name = %q", level.Name)
	}
	if len(level.Buttons) != 1 || len(level.Lasers) != 2 {
		t.Fatalf("got %d buttons, %d lasers", len(level.Buttons), len(level.Lasers))
	}

	b := level.Buttons[0]
	if !b.Required {
		t.Error("required flag lost")
	}
	if b.Timing.HoldSeconds == nil || *b.Timing.HoldSeconds != 1.5 {
		t.Error("holdSeconds lost")
	}

	sweeper := level.Level.Laser("sweeper")
	if sweeper == nil {
		t.Fatal("sweeper laser missing")
	}
	if sweeper.Endpoints[0].Phase != 0.25 {
		t.Errorf("phase = %v, want 0.25", sweeper.Endpoints[0].Phase)
	}
	if sweeper.Endpoints[0].CycleSeconds == nil || *sweeper.Endpoints[0].CycleSeconds != 6 {
		t.Error("cycleSeconds lost")
	}
	if len(sweeper.Cadence) != 2 {
		t.Errorf("cadence steps = %d, want 2", len(sweeper.Cadence))
	}

	spinner := level.Level.Laser("spinner")
	if spinner == nil {
		t.Fatal("spinner laser missing")
	}
	if spinner.Enabled == nil || *spinner.Enabled {
		t.Error("enabled: false lost")
	}
	if spinner.RotationSpeedDegrees != 40 {
		t.Errorf("rotationSpeed = %v, want 40", spinner.RotationSpeedDegrees)
	}
	if spinner.Endpoints[0].CycleSeconds != nil {
		t.Error("null cycleSeconds should decode to nil")
	}
}

func TestLoadFileYAML(t *testing.T) {
	loader := NewLoader("testdata")
	level, err := loader.LoadFile(filepath.Join("testdata", "twin-gates.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	gateB := level.Level.Button("gate-b")
	if gateB == nil {
		t.Fatal("gate-b missing")
	}
	if gateB.HitLogic != sim.HitAll {
		t.Errorf("hitLogic = %q, want all", gateB.HitLogic)
	}
	if len(gateB.HitAreas) != 2 {
		t.Fatalf("hit areas = %d, want 2", len(gateB.HitAreas))
	}
	if gateB.HitAreas[0].Offset.X != -0.2 {
		t.Errorf("offset lost: %v", gateB.HitAreas[0].Offset)
	}
	if len(gateB.Effects) != 1 || gateB.Effects[0].Action.Kind != sim.ActionToggle {
		t.Error("toggle effect lost")
	}
}

func TestLoadFileDerivesMissingID(t *testing.T) {
	loader := NewLoader("testdata")
	level, err := loader.LoadFile(filepath.Join("testdata", "pack", "unnamed.yml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if level.ID != "unnamed" {
		t.Errorf("ID = %q, want file-derived %q", level.ID, "unnamed")
	}
}

func TestLoadFileReportsAllValidationProblems(t *testing.T) {
	loader := NewLoader("testdata")
	_, err := loader.LoadFile(filepath.Join("testdata", "broken-refs.json"))
	if err == nil {
		t.Fatal("expected validation failure")
	}

	var report *sim.ValidationReport
	if !errors.As(err, &report) {
		t.Fatalf("error is %T, want *sim.ValidationReport", err)
	}
	if len(report.Problems) < 3 {
		t.Fatalf("want the duplicate id, dangling ref, and missing areas all reported, got %v", report.Problems)
	}
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	loader := NewLoader("testdata")
	if _, err := loader.LoadFile(filepath.Join("testdata", "notes.txt")); err == nil {
		t.Fatal("expected unsupported extension error")
	}
}

func TestLoadByID(t *testing.T) {
	loader := NewLoader("testdata")
	level, err := loader.LoadByID("twin-gates")
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}
	if level.FilePath == "" {
		t.Error("FilePath not recorded")
	}

	if _, err := loader.LoadByID("missing"); err == nil {
		t.Error("unknown id should fail")
	}
}

func TestLoadedLevelRuns(t *testing.T) {
	loader := NewLoader("testdata")
	level, err := loader.LoadByID("crossfire")
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}
	r, err := sim.NewRuntime(&level.Level, 800, 600)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	r.StartMotion()
	for i := 0; i < 10; i++ {
		r.Step(0.016, nil)
	}
	if r.Elapsed() == 0 {
		t.Error("loaded level should simulate")
	}
}
