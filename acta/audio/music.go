package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Volume applied to the music bed relative to the narration.
const musicBedVolume = "0.20"

var musicExtensions = map[string]struct{}{
	".mp3": {}, ".m4a": {}, ".wav": {}, ".ogg": {}, ".flac": {},
}

// PickTrack selects a music file for the category from the library dir.
// The library is laid out either as <dir>/<category>/<files> or as flat
// files prefixed "<category>_". Selection is deterministic: the first
// file in sorted order.
func PickTrack(libraryDir string, category int) (string, error) {
	catDir := filepath.Join(libraryDir, strconv.Itoa(category))
	if entries, err := os.ReadDir(catDir); err == nil {
		if p := firstAudioFile(catDir, entries); p != "" {
			return p, nil
		}
	}

	entries, err := os.ReadDir(libraryDir)
	if err != nil {
		return "", fmt.Errorf("music library: %w", err)
	}
	prefix := strconv.Itoa(category) + "_"
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		if _, ok := musicExtensions[strings.ToLower(filepath.Ext(e.Name()))]; ok {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("music library: no track for category %d in %s", category, libraryDir)
	}
	sort.Strings(names)
	return filepath.Join(libraryDir, names[0]), nil
}

func firstAudioFile(dir string, entries []os.DirEntry) string {
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := musicExtensions[strings.ToLower(filepath.Ext(e.Name()))]; ok {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0])
}

// Mix lays the music bed under the narration. The music loops for as
// long as the narration runs and is attenuated to a background level.
func Mix(narrationPath, musicPath, outPath string) error {
	narration := ffmpeg.Input(narrationPath)
	music := ffmpeg.Input(musicPath, ffmpeg.KwArgs{"stream_loop": -1}).
		Filter("volume", ffmpeg.Args{musicBedVolume})

	mixed := ffmpeg.Filter(
		[]*ffmpeg.Stream{narration, music},
		"amix",
		ffmpeg.Args{},
		ffmpeg.KwArgs{"inputs": 2, "duration": "first", "dropout_transition": 2},
	)

	err := mixed.
		Output(outPath, ffmpeg.KwArgs{"c:a": "aac", "b:a": "192k"}).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("music mix: %w", err)
	}
	log.Info("mixed music bed", "narration", narrationPath, "music", musicPath, "out", outPath)
	return nil
}
