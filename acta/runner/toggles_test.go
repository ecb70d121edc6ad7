package runner

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAllOn(t *testing.T) {
	tg := AllOn()
	if tg.Until != NumStages {
		t.Fatalf("Until = %d", tg.Until)
	}
	for i := 1; i <= NumStages; i++ {
		if !tg.Run[i] {
			t.Fatalf("stage %d not enabled", i)
		}
	}
}

func TestFromRange(t *testing.T) {
	tg, err := FromRange(3, 5)
	if err != nil {
		t.Fatalf("FromRange: %v", err)
	}
	if tg.Run[2] || !tg.Run[3] || !tg.Run[5] {
		t.Fatalf("wrong toggles: %+v", tg.Run)
	}
	if tg.Until != 5 {
		t.Fatalf("Until = %d", tg.Until)
	}

	if _, err := FromRange(5, 3); err == nil {
		t.Fatalf("inverted range must error")
	}
	if _, err := FromRange(0, 2); err == nil {
		t.Fatalf("zero start must error")
	}
	if _, err := FromRange(1, NumStages+1); err == nil {
		t.Fatalf("overshoot must error")
	}
}

func TestFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.toml")
	content := `
until = "video"

[stages]
fetch = false
newstext = false
narration = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tg, err := FromTOML(path)
	if err != nil {
		t.Fatalf("FromTOML: %v", err)
	}
	if tg.Run[1] || tg.Run[2] {
		t.Fatalf("disabled stages still run")
	}
	if !tg.Run[3] || !tg.Run[6] {
		t.Fatalf("enabled/default stages must run")
	}
	if tg.Until != 12 {
		t.Fatalf("Until = %d; want 12 (video)", tg.Until)
	}
}

func TestFromTOMLUnknownStage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.toml")
	if err := os.WriteFile(path, []byte("[stages]\nbogus = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromTOML(path); err == nil {
		t.Fatalf("unknown stage must error")
	}
}

func TestStageNames(t *testing.T) {
	seen := map[string]bool{}
	for i := 1; i <= NumStages; i++ {
		name := StageNames[i]
		if name == "" {
			t.Fatalf("stage %d unnamed", i)
		}
		if seen[name] {
			t.Fatalf("duplicate stage name %q", name)
		}
		seen[name] = true
		if stageNumber(name) != i {
			t.Fatalf("stageNumber(%q) = %d; want %d", name, stageNumber(name), i)
		}
	}
}
