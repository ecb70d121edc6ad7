package images

import (
	"context"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestCleanName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My Photo (1).JPG", "my_photo_1.jpg"},
		{"café-image.png", "cafe_image.png"},
		{"noextension", ""},
		{".hidden", ""},
		{"bad.exe", ""},
		{"ok.webp", "ok.webp"},
		{"UPPER.TIFF", "upper.tiff"},
		{"___.png", "___.png"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := CleanName(tc.in); got != tc.want {
				t.Fatalf("CleanName(%q) = %q; want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeLink(t *testing.T) {
	if got := normalizeLink("https://example.com/a.png"); got != "https://example.com/a.png" {
		t.Fatalf("direct link = %q", got)
	}
	if got := normalizeLink("ftp://example.com/a.png"); got != "" {
		t.Fatalf("non-http scheme should be dropped, got %q", got)
	}
	if got := normalizeLink("not a url"); got != "" {
		t.Fatalf("garbage should be dropped, got %q", got)
	}

	wrapped := "https://duckduckgo.com/l/?iai=" + url.QueryEscape("https://example.com/b.png")
	if got := normalizeLink(wrapped); got != "https://example.com/b.png" {
		t.Fatalf("redirect not unwrapped, got %q", got)
	}
	evil := "https://duckduckgo.com/l/?iai=" + url.QueryEscape("javascript:alert(1)")
	if got := normalizeLink(evil); got != "" {
		t.Fatalf("non-http redirect target should be dropped, got %q", got)
	}
}

func TestUniqueStrings(t *testing.T) {
	got := uniqueStrings([]string{"a", "b", "a", "c", "b"})
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("uniqueStrings = %v", got)
	}
}

func TestCosineSimilarity(t *testing.T) {
	if s := CosineSimilarity([]float64{1, 0}, []float64{1, 0}); math.Abs(s-1.0) > 1e-9 {
		t.Fatalf("identical vectors = %v; want 1", s)
	}
	if s := CosineSimilarity([]float64{1, 0}, []float64{0, 1}); math.Abs(s) > 1e-9 {
		t.Fatalf("orthogonal vectors = %v; want 0", s)
	}
	if s := CosineSimilarity([]float64{0, 0}, []float64{1, 1}); s != 0 {
		t.Fatalf("zero vector = %v; want 0", s)
	}
	if s := CosineSimilarity([]float64{1}, []float64{1, 2}); s != 0 {
		t.Fatalf("length mismatch = %v; want 0", s)
	}
}

type fakeEmbedder struct {
	vecs [][]float64
}

func (f *fakeEmbedder) EmbedImages(ctx context.Context, paths []string) ([][]float64, error) {
	return f.vecs[:len(paths)], nil
}
func (f *fakeEmbedder) ModelName() string { return "fake" }

func TestDedupRemovesNearDuplicates(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 3; i++ {
		p := filepath.Join(dir, strconv.Itoa(i)+".png")
		if err := os.WriteFile(p, []byte("png"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	// 1 and 2 are near-identical; 3 is orthogonal.
	emb := &fakeEmbedder{vecs: [][]float64{
		{1, 0, 0},
		{0.999, 0.01, 0},
		{0, 1, 0},
	}}
	kept := Dedup(context.Background(), emb, dir)
	if len(kept) != 2 {
		t.Fatalf("kept %d images; want 2 (%v)", len(kept), kept)
	}
	if filepath.Base(kept[0]) != "1.png" || filepath.Base(kept[1]) != "3.png" {
		t.Fatalf("wrong survivors: %v", kept)
	}
	if _, err := os.Stat(filepath.Join(dir, "2.png")); !os.IsNotExist(err) {
		t.Fatalf("duplicate not removed from disk")
	}
}

func TestDedupNilEmbedderKeepsAll(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 2; i++ {
		if err := os.WriteFile(filepath.Join(dir, strconv.Itoa(i)+".png"), []byte("png"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if kept := Dedup(context.Background(), nil, dir); len(kept) != 2 {
		t.Fatalf("nil embedder must keep all, got %d", len(kept))
	}
}

func TestPNGPathsSequential(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"1.png", "2.png", "4.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got := PNGPaths(dir)
	if len(got) != 2 {
		t.Fatalf("sequence must stop at the gap, got %v", got)
	}
}
