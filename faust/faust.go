// Package faust is a filesystem grep: it matches directory names, file
// names, file contents, or file metadata against wildcard or regex
// queries and prints TSV rows.
package faust

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// SearchType selects what a query is matched against.
type SearchType string

const (
	TypeDir      SearchType = "dir"
	TypeFile     SearchType = "file"
	TypeContent  SearchType = "content"
	TypeMetadata SearchType = "metadata"
)

// AllowedTypes in canonical order.
var AllowedTypes = []SearchType{TypeDir, TypeFile, TypeContent, TypeMetadata}

// AllowedOutputs in canonical order.
var AllowedOutputs = []string{
	"absdir", "reldir", "filename", "fileline",
	"fullline", "trim50", "trim100", "trim250",
}

// DefaultTypes and DefaultOutputs apply when the caller passes none.
var (
	DefaultTypes   = []SearchType{TypeFile, TypeContent}
	DefaultOutputs = []string{"reldir", "filename", "fileline", "trim100"}
)

// Options parameterizes a search.
type Options struct {
	Locations []string
	Queries   []string
	Types     []string
	Outputs   []string
	Recursive bool
	Colour    bool
}

// Query is a compiled search pattern with its raw form.
type Query struct {
	Raw     string
	Pattern *regexp.Regexp
}

// Hit is one match.
type Hit struct {
	Base     string
	Path     string
	IsDir    bool
	Kind     SearchType
	Query    *Query
	FileLine int // 0 when not a content hit
	Line     string
}

// Run executes the search and writes TSV rows (with a header) to w.
func Run(w io.Writer, opts Options) error {
	if len(opts.Queries) == 0 {
		return fmt.Errorf("faust: at least one search string is required")
	}

	queries := make([]*Query, 0, len(opts.Queries))
	for _, raw := range opts.Queries {
		q, err := CompileQuery(raw)
		if err != nil {
			return err
		}
		queries = append(queries, q)
	}

	types, err := expandTypes(opts.Types)
	if err != nil {
		return err
	}
	outputs, err := expandOutputs(opts.Outputs)
	if err != nil {
		return err
	}

	locations := opts.Locations
	if len(locations) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		locations = []string{wd}
	}

	fmt.Fprintln(w, strings.Join(outputs, "\t"))

	for _, loc := range locations {
		base := loc
		if info, err := os.Stat(loc); err == nil && !info.IsDir() {
			base = filepath.Dir(loc)
		}

		targets := collectTargets(loc, opts.Recursive)
		for _, t := range types {
			for _, hit := range search(t, targets, base, queries) {
				row := buildRow(hit, outputs, opts.Colour)
				fmt.Fprintln(w, strings.Join(row, "\t"))
			}
		}
	}
	return nil
}

// CompileQuery interprets raw as a regex when written /like this/ or
// with an r: prefix, and as an fnmatch-style wildcard otherwise.
// Matching is case-sensitive and substring-oriented.
func CompileQuery(raw string) (*Query, error) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return nil, fmt.Errorf("faust: empty search string")
	}

	var expr string
	switch {
	case len(q) >= 2 && strings.HasPrefix(q, "/") && strings.HasSuffix(q, "/"):
		expr = q[1 : len(q)-1]
	case strings.HasPrefix(q, "r:"):
		expr = q[2:]
	default:
		expr = wildcardToRegex(q)
	}

	pat, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("faust: bad query %q: %w", raw, err)
	}
	return &Query{Raw: raw, Pattern: pat}, nil
}

// wildcardToRegex translates an fnmatch wildcard (* ? [seq]) into an
// unanchored regex for substring search.
func wildcardToRegex(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			end := strings.IndexByte(pattern[i:], ']')
			if end < 0 {
				b.WriteString(regexp.QuoteMeta(string(c)))
				continue
			}
			set := pattern[i : i+end+1]
			if strings.HasPrefix(set, "[!") {
				set = "[^" + set[2:]
			}
			b.WriteString(set)
			i += end
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return b.String()
}

// expandTypes resolves type tokens, expanding wildcards against the
// allowed list and deduplicating in order.
func expandTypes(raw []string) ([]SearchType, error) {
	if len(raw) == 0 {
		return DefaultTypes, nil
	}
	var out []SearchType
	seen := map[SearchType]bool{}
	for _, tok := range raw {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		matched := false
		for _, a := range AllowedTypes {
			ok, _ := filepath.Match(tok, string(a))
			if tok == string(a) || ok {
				matched = true
				if !seen[a] {
					seen[a] = true
					out = append(out, a)
				}
			}
		}
		if !matched {
			return nil, fmt.Errorf("faust: unknown search type %q", tok)
		}
	}
	if len(out) == 0 {
		return DefaultTypes, nil
	}
	return out, nil
}

func expandOutputs(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return DefaultOutputs, nil
	}
	var out []string
	seen := map[string]bool{}
	for _, tok := range raw {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		matched := false
		for _, a := range AllowedOutputs {
			ok, _ := filepath.Match(tok, a)
			if tok == a || ok {
				matched = true
				if !seen[a] {
					seen[a] = true
					out = append(out, a)
				}
			}
		}
		if !matched {
			return nil, fmt.Errorf("faust: unknown output field %q", tok)
		}
	}
	if len(out) == 0 {
		return DefaultOutputs, nil
	}
	return out, nil
}

// collectTargets lists the search targets for one location: the file
// itself, the immediate children, or the whole tree.
func collectTargets(loc string, recursive bool) []string {
	info, err := os.Stat(loc)
	if err != nil {
		return nil
	}
	if !info.IsDir() {
		return []string{loc}
	}

	if !recursive {
		entries, err := os.ReadDir(loc)
		if err != nil {
			return nil
		}
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, filepath.Join(loc, e.Name()))
		}
		return out
	}

	var out []string
	_ = filepath.WalkDir(loc, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		out = append(out, path)
		return nil
	})
	return out
}
