package faust

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	dirStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	fileStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	matchStyle = lipgloss.NewStyle().Bold(true)
)

// StdoutIsTTY reports whether stdout is a character device, gating the
// colour default.
func StdoutIsTTY() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func buildRow(hit Hit, outputs []string, colour bool) []string {
	row := make([]string, 0, len(outputs))
	for _, field := range outputs {
		row = append(row, formatField(hit, field, colour))
	}
	return row
}

func formatField(hit Hit, field string, colour bool) string {
	switch field {
	case "absdir":
		abs, err := filepath.Abs(filepath.Dir(hit.Path))
		if err != nil {
			abs = filepath.Dir(hit.Path)
		}
		return paint(abs, dirStyle, colour)
	case "reldir":
		return paint(relDir(hit.Base, hit.Path), dirStyle, colour)
	case "filename":
		if hit.IsDir {
			return "."
		}
		return paint(filepath.Base(hit.Path), fileStyle, colour)
	case "fileline":
		if hit.FileLine == 0 {
			return "."
		}
		return strconv.Itoa(hit.FileLine)
	case "fullline":
		if hit.Line == "" && hit.Kind != TypeContent {
			return "."
		}
		return boldMatches(hit.Line, hit, colour)
	case "trim50":
		return trimmed(hit, 50, colour)
	case "trim100":
		return trimmed(hit, 100, colour)
	case "trim250":
		return trimmed(hit, 250, colour)
	}
	return "."
}

func relDir(base, path string) string {
	rel, err := filepath.Rel(base, filepath.Dir(path))
	if err != nil {
		return filepath.Dir(path)
	}
	if rel == "" {
		return "."
	}
	return rel
}

func trimmed(hit Hit, span int, colour bool) string {
	if hit.Line == "" && hit.Kind != TypeContent {
		return "."
	}
	loc := hit.Query.Pattern.FindStringIndex(hit.Line)
	if loc == nil {
		if len(hit.Line) > span {
			return hit.Line[:span]
		}
		return hit.Line
	}
	return boldMatches(trimAroundMatch(hit.Line, loc[0], loc[1], span), hit, colour)
}

// trimAroundMatch keeps span characters centered on the match, marking
// elided ends with an ellipsis.
func trimAroundMatch(line string, start, end, span int) string {
	half := span / 2
	left := start - half
	if left < 0 {
		left = 0
	}
	right := end + half
	if right > len(line) {
		right = len(line)
	}

	chunk := line[left:right]
	if left > 0 {
		chunk = "…" + chunk
	}
	if right < len(line) {
		chunk = chunk + "…"
	}
	return chunk
}

func boldMatches(text string, hit Hit, colour bool) string {
	if !colour {
		return text
	}
	return hit.Query.Pattern.ReplaceAllStringFunc(text, func(m string) string {
		return matchStyle.Render(m)
	})
}

func paint(text string, style lipgloss.Style, colour bool) string {
	if !colour {
		return text
	}
	return style.Render(text)
}
