package quincas

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// scoreEvent is one [[events]] entry in a score file. Times are in
// milliseconds, matching how samples are usually picked out by ear.
type scoreEvent struct {
	Path       string `toml:"path"`
	OffsetMS   int64  `toml:"offset_ms"`
	DurationMS int64  `toml:"duration_ms"`
}

type scoreFile struct {
	Events []scoreEvent `toml:"events"`
}

// LoadScore reads a TOML score file into a Timeline.
func LoadScore(path string) (Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Timeline{}, fmt.Errorf("read score %s: %w", path, err)
	}

	var parsed scoreFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return Timeline{}, fmt.Errorf("parse score %s: %w", path, err)
	}
	if len(parsed.Events) == 0 {
		return Timeline{}, fmt.Errorf("score %s has no events", path)
	}

	var tl Timeline
	for i, ev := range parsed.Events {
		if ev.Path == "" {
			return Timeline{}, fmt.Errorf("score %s: event %d has no path", path, i)
		}
		if ev.OffsetMS < 0 || ev.DurationMS <= 0 {
			return Timeline{}, fmt.Errorf("score %s: event %d has invalid timing", path, i)
		}
		tl.Add(ev.Path,
			time.Duration(ev.OffsetMS)*time.Millisecond,
			time.Duration(ev.DurationMS)*time.Millisecond)
	}
	return tl, nil
}
