package images

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"golang.org/x/text/unicode/norm"

	"uqbar/internal/execx"
)

// Extensions the processor accepts off the wire.
var commonExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".svg": {},
	".tif": {}, ".tiff": {}, ".webp": {}, ".gif": {},
}

var (
	cleanTokenRe = regexp.MustCompile(`[a-z0-9_]+`)
	finalNameRe  = regexp.MustCompile(`^[a-z0-9_]+\.[a-z]{3,4}$`)
)

// CleanName reduces an arbitrary downloaded filename to the restricted
// pattern [a-z0-9_]+.[a-z]{3,4}. Returns "" when the name has no usable
// base or its extension is not a known image type.
func CleanName(name string) string {
	dot := strings.LastIndexByte(name, '.')
	if name == "" || dot <= 0 || dot == len(name)-1 {
		return ""
	}

	base := stripDiacritics(strings.ToLower(name[:dot]))
	ext := "." + stripDiacritics(strings.ToLower(name[dot+1:]))

	tokens := cleanTokenRe.FindAllString(base, -1)
	if len(tokens) == 0 {
		return ""
	}
	if _, ok := commonExtensions[ext]; !ok {
		return ""
	}

	cleaned := strings.Join(tokens, "_") + ext
	if !finalNameRe.MatchString(cleaned) {
		return ""
	}
	return cleaned
}

func stripDiacritics(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Normalize converts every recognized image in dir into a sequential
// N.png series via ImageMagick. Animated gif/webp containers expand to
// one png per frame. Unconvertible files are left in place and skipped.
func Normalize(ctx context.Context, dir string) (int, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return 0, fmt.Errorf("normalize images: not a directory: %s", dir)
	}
	if !execx.LookPath("magick") {
		return 0, fmt.Errorf("normalize images: magick not found in PATH")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("normalize images: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i]) < strings.ToLower(files[j])
	})

	idx := 1
	for _, name := range files {
		if CleanName(name) == "" {
			continue
		}
		src := filepath.Join(dir, name)
		ext := strings.ToLower(filepath.Ext(name))
		target := filepath.Join(dir, fmt.Sprintf("%d.png", idx))

		switch ext {
		case ".jpg", ".jpeg", ".tif", ".tiff":
			if _, err := execx.Run(ctx, "magick", []string{src, target}, execx.Options{Quiet: true}); err != nil {
				log.Warn("magick convert failed", "file", name, "err", err)
				continue
			}
			_ = os.Remove(src)
			idx++

		case ".png":
			if name != filepath.Base(target) {
				if err := os.Rename(src, target); err != nil {
					log.Warn("rename failed", "file", name, "err", err)
					continue
				}
			}
			idx++

		case ".gif", ".webp":
			pattern := filepath.Join(dir, "__frame_%03d.png")
			if _, err := execx.Run(ctx, "magick", []string{src, pattern}, execx.Options{Quiet: true}); err != nil {
				log.Warn("magick frame expansion failed", "file", name, "err", err)
				continue
			}
			frames, _ := filepath.Glob(filepath.Join(dir, "__frame_*.png"))
			sort.Strings(frames)
			for _, frame := range frames {
				if err := os.Rename(frame, filepath.Join(dir, fmt.Sprintf("%d.png", idx))); err != nil {
					continue
				}
				idx++
			}
			_ = os.Remove(src)

		default:
			// svg and the rest stay untouched
		}
	}

	return idx - 1, nil
}

// PNGPaths returns the sequential N.png files in dir in numeric order.
func PNGPaths(dir string) []string {
	var out []string
	for i := 1; ; i++ {
		p := filepath.Join(dir, fmt.Sprintf("%d.png", i))
		if _, err := os.Stat(p); err != nil {
			break
		}
		out = append(out, p)
	}
	return out
}
