package faust

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCompileQuery(t *testing.T) {
	cases := []struct {
		raw     string
		text    string
		matches bool
	}{
		{"ACCOUNT", "my ACCOUNT number", true},
		{"ACCOUNT", "my account number", false},
		{"*.txt", "notes.txt", true},
		{"no?e", "node", true},
		{"/ab+c/", "xabbbcx", true},
		{"r:^start", "start of line", true},
		{"r:^start", "not the start", false},
		{"[abc]at", "bat", true},
	}
	for _, tc := range cases {
		t.Run(tc.raw+"/"+tc.text, func(t *testing.T) {
			q, err := CompileQuery(tc.raw)
			if err != nil {
				t.Fatalf("CompileQuery(%q): %v", tc.raw, err)
			}
			if got := q.Pattern.MatchString(tc.text); got != tc.matches {
				t.Fatalf("match(%q, %q) = %v; want %v", tc.raw, tc.text, got, tc.matches)
			}
		})
	}

	if _, err := CompileQuery("  "); err == nil {
		t.Fatalf("blank query must error")
	}
}

func TestExpandTypes(t *testing.T) {
	got, err := expandTypes([]string{"*"})
	if err != nil {
		t.Fatalf("expandTypes: %v", err)
	}
	if len(got) != len(AllowedTypes) {
		t.Fatalf("wildcard expansion = %v", got)
	}

	got, err = expandTypes([]string{"content", "content"})
	if err != nil {
		t.Fatalf("expandTypes: %v", err)
	}
	if len(got) != 1 || got[0] != TypeContent {
		t.Fatalf("dedup failed: %v", got)
	}

	if _, err := expandTypes([]string{"bogus"}); err == nil {
		t.Fatalf("unknown type must error")
	}

	got, err = expandTypes(nil)
	if err != nil || len(got) != len(DefaultTypes) {
		t.Fatalf("default types = %v, %v", got, err)
	}
}

func TestRunContentSearch(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.txt"), "hello world\nthe ACCOUNT line\nbye\n")
	mustWrite(t, filepath.Join(dir, "b.bin"), "ACCOUNT\x00binary")
	mustWrite(t, filepath.Join(dir, "sub", "c.txt"), "another ACCOUNT here\n")

	var buf bytes.Buffer
	err := Run(&buf, Options{
		Locations: []string{dir},
		Queries:   []string{"ACCOUNT"},
		Types:     []string{"content"},
		Outputs:   []string{"filename", "fileline", "fullline"},
		Recursive: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "filename\tfileline\tfullline" {
		t.Fatalf("header = %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("hits = %d; want 2 (binary skipped):\n%s", len(lines)-1, out)
	}
	if !strings.Contains(out, "a.txt\t2\tthe ACCOUNT line") {
		t.Fatalf("missing expected row:\n%s", out)
	}
	if strings.Contains(out, "b.bin") {
		t.Fatalf("binary file must be skipped:\n%s", out)
	}
}

func TestRunFilenameSearchNonRecursive(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "report.txt"), "x")
	mustWrite(t, filepath.Join(dir, "sub", "report.txt"), "x")

	var buf bytes.Buffer
	err := Run(&buf, Options{
		Locations: []string{dir},
		Queries:   []string{"report*"},
		Types:     []string{"file"},
		Outputs:   []string{"filename"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("non-recursive search found %d hits; want 1:\n%s", len(lines)-1, buf.String())
	}
}

func TestTrimAroundMatch(t *testing.T) {
	line := strings.Repeat("a", 100) + "NEEDLE" + strings.Repeat("b", 100)
	got := trimAroundMatch(line, 100, 106, 50)
	if !strings.Contains(got, "NEEDLE") {
		t.Fatalf("trim lost the match: %q", got)
	}
	if !strings.HasPrefix(got, "…") || !strings.HasSuffix(got, "…") {
		t.Fatalf("elided ends must carry ellipses: %q", got)
	}
	if len([]rune(got)) > 60 {
		t.Fatalf("trim too long: %d runes", len([]rune(got)))
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
