package audio

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSynthesizeEmptyText(t *testing.T) {
	if err := Synthesize(context.Background(), "   ", "/tmp/out.wav"); err == nil {
		t.Fatalf("expected error for empty narration")
	}
}

func TestPickTrackFromCategoryDir(t *testing.T) {
	lib := t.TempDir()
	catDir := filepath.Join(lib, "13")
	if err := os.MkdirAll(catDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b.mp3", "a.mp3", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(catDir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := PickTrack(lib, 13)
	if err != nil {
		t.Fatalf("PickTrack: %v", err)
	}
	if filepath.Base(got) != "a.mp3" {
		t.Fatalf("track = %s; want a.mp3 (first sorted)", got)
	}
}

func TestPickTrackFlatLayout(t *testing.T) {
	lib := t.TempDir()
	for _, name := range []string{"4_solemn.mp3", "13_drums.wav", "readme.md"} {
		if err := os.WriteFile(filepath.Join(lib, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := PickTrack(lib, 4)
	if err != nil {
		t.Fatalf("PickTrack: %v", err)
	}
	if filepath.Base(got) != "4_solemn.mp3" {
		t.Fatalf("track = %s", got)
	}

	if _, err := PickTrack(lib, 21); err == nil {
		t.Fatalf("expected error for category without tracks")
	}
}
