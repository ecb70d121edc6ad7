package lola

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeInputs(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inputs.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write inputs: %v", err)
	}
	return path
}

func TestLoadInputs(t *testing.T) {
	path := writeInputs(t, `
[meetings]
monday = ["10:00 Standup"]
Friday = ["16:00 Review"]

[appointments]
wednesday = ["18:30 Gym"]

[birthdays]
"14.03" = ["Ada"]

[bills]
"05" = ["Rent"]
`)

	in, err := LoadInputs(path)
	if err != nil {
		t.Fatalf("LoadInputs: %v", err)
	}
	if got := in.Meetings[time.Monday]; len(got) != 1 || got[0] != "10:00 Standup" {
		t.Fatalf("monday meetings = %v", got)
	}
	if got := in.Meetings[time.Friday]; len(got) != 1 || got[0] != "16:00 Review" {
		t.Fatalf("friday meetings = %v", got)
	}
	if got := in.Appointments[time.Wednesday]; len(got) != 1 {
		t.Fatalf("wednesday appointments = %v", got)
	}
	if got := in.Birthdays["14.03"]; len(got) != 1 || got[0] != "Ada" {
		t.Fatalf("birthdays = %v", got)
	}
	if got := in.Bills["05"]; len(got) != 1 || got[0] != "Rent" {
		t.Fatalf("bills = %v", got)
	}
}

func TestLoadInputsRejectsBadKeys(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"weekday", "[meetings]\nmonntag = [\"x\"]\n"},
		{"birthday", "[birthdays]\n\"14/03\" = [\"x\"]\n"},
		{"bill", "[bills]\n\"5\" = [\"x\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadInputs(writeInputs(t, tt.content)); err == nil {
				t.Fatalf("bad %s key must error", tt.name)
			}
		})
	}
}
