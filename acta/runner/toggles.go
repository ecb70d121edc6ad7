package runner

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// NumStages is the number of pipeline stages.
const NumStages = 13

// StageNames maps stage number (1-based) to its short name. Stage
// numbers also label the checkpoint files trends_<N>.json.
var StageNames = [NumStages + 1]string{
	"",
	"fetch",
	"newstext",
	"narration",
	"image_queries",
	"mood",
	"image_search",
	"image_download",
	"image_process",
	"tts",
	"music",
	"metadata",
	"video",
	"upload",
}

// Toggles decides, per stage, whether the runner executes it (writing
// its checkpoint) or loads the checkpoint a prior run left behind.
// Stages past Until are skipped entirely.
type Toggles struct {
	Run   [NumStages + 1]bool
	Until int
}

// AllOn runs every stage.
func AllOn() Toggles {
	t := Toggles{Until: NumStages}
	for i := 1; i <= NumStages; i++ {
		t.Run[i] = true
	}
	return t
}

// FromRange runs stages from..until; earlier stages load from their
// checkpoints, later stages are skipped.
func FromRange(from, until int) (Toggles, error) {
	if from < 1 || until > NumStages || from > until {
		return Toggles{}, fmt.Errorf("stage range %d..%d out of 1..%d", from, until, NumStages)
	}
	t := Toggles{Until: until}
	for i := from; i <= until; i++ {
		t.Run[i] = true
	}
	return t, nil
}

// tomlToggles is the stage-toggle file layout: a [stages] table of
// name = true/false entries plus an optional until = <stage name>.
type tomlToggles struct {
	Stages map[string]bool `toml:"stages"`
	Until  string          `toml:"until"`
}

// FromTOML reads stage toggles from a TOML file. Stages absent from the
// file default to run.
func FromTOML(path string) (Toggles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Toggles{}, fmt.Errorf("read stage toggles %s: %w", path, err)
	}

	var parsed tomlToggles
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return Toggles{}, fmt.Errorf("parse stage toggles %s: %w", path, err)
	}

	t := AllOn()
	for name, run := range parsed.Stages {
		n := stageNumber(name)
		if n == 0 {
			return Toggles{}, fmt.Errorf("stage toggles %s: unknown stage %q", path, name)
		}
		t.Run[n] = run
	}
	if parsed.Until != "" {
		n := stageNumber(parsed.Until)
		if n == 0 {
			return Toggles{}, fmt.Errorf("stage toggles %s: unknown until stage %q", path, parsed.Until)
		}
		t.Until = n
	}
	return t, nil
}

func stageNumber(name string) int {
	for i := 1; i <= NumStages; i++ {
		if StageNames[i] == name {
			return i
		}
	}
	return 0
}
