package carmen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"uqbar/internal/execx"
)

// Deck is a directory holding card images named 0.jpg through 77.jpg.
type Deck struct {
	Dir string
}

// OpenDeck validates that dir exists and contains the full card set.
func OpenDeck(dir string) (*Deck, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("carmen: %s is not a directory", dir)
	}

	var missing []string
	for n := 0; n < DeckSize; n++ {
		p := filepath.Join(dir, strconv.Itoa(n)+".jpg")
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, strconv.Itoa(n)+".jpg")
			if len(missing) >= 10 {
				break
			}
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("carmen: deck %s is missing cards: %s",
			dir, strings.Join(missing, ", "))
	}
	return &Deck{Dir: dir}, nil
}

// CardPath returns the image path for a card index.
func (d *Deck) CardPath(index int) string {
	return filepath.Join(d.Dir, strconv.Itoa(index)+".jpg")
}

// RotatedCopy writes a 90-degree clockwise rotated sibling of the card,
// overwriting any previous copy, and returns its path. It uses magick
// when available and falls back to the macOS sips tool.
func (d *Deck) RotatedCopy(ctx context.Context, index int) (string, error) {
	card := d.CardPath(index)
	rotated := filepath.Join(d.Dir, strconv.Itoa(index)+"__rot90.jpg")

	var err error
	switch {
	case execx.LookPath("magick"):
		_, err = execx.Run(ctx, "magick", []string{card, "-rotate", "90", rotated}, execx.Options{Quiet: true})
	case execx.LookPath("sips"):
		_, err = execx.Run(ctx, "sips",
			[]string{"-s", "format", "jpeg", "-r", "90", card, "--out", rotated},
			execx.Options{Quiet: true})
	default:
		return "", fmt.Errorf("carmen: neither magick nor sips is on PATH")
	}
	if err != nil {
		return "", fmt.Errorf("carmen: rotate %s: %w", card, err)
	}
	return rotated, nil
}

// OpenViewer shows the image with the platform's default viewer. The
// call returns immediately; the window stays open until the user closes
// it.
func OpenViewer(ctx context.Context, path string) error {
	var name string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		name, args = "open", []string{path}
	case "windows":
		name, args = "cmd", []string{"/c", "start", "", path}
	default:
		name, args = "xdg-open", []string{path}
	}
	if !execx.LookPath(name) {
		return fmt.Errorf("carmen: no image opener (%s) on PATH", name)
	}
	_, err := execx.Run(ctx, name, args, execx.Options{Quiet: true})
	return err
}

// RenameSequential renames every .jpg in dir to 0.jpg, 1.jpg, ... in
// sorted order. A two-phase rename avoids clobbering files whose names
// collide with the target numbering.
func RenameSequential(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.jpg"))
	if err != nil {
		return err
	}
	sort.Strings(matches)

	tmp := make([]string, len(matches))
	for i, src := range matches {
		tmp[i] = filepath.Join(dir, fmt.Sprintf("__seq_%d.jpg", i))
		if err := os.Rename(src, tmp[i]); err != nil {
			return fmt.Errorf("carmen: rename %s: %w", src, err)
		}
	}
	for i, src := range tmp {
		dst := filepath.Join(dir, strconv.Itoa(i)+".jpg")
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("carmen: rename %s: %w", src, err)
		}
	}
	return nil
}
