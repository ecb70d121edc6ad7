package archive

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

type memStore struct {
	keys []string
}

func (m *memStore) Put(ctx context.Context, bucket, key string, body *os.File, contentType string) error {
	m.keys = append(m.keys, key)
	return nil
}

func TestRunUploadsKeptExtensions(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "trends_13.json"), "{}")
	mustWrite(t, filepath.Join(dir, "trend_01", "vids", "final.mp4"), "vid")
	mustWrite(t, filepath.Join(dir, "trend_01", "pics", "1.tmp"), "junk")

	store := &memStore{}
	if err := Run(context.Background(), store, "bucket", "run-1", dir); err != nil {
		t.Fatalf("Run: %v", err)
	}

	sort.Strings(store.keys)
	want := []string{
		"run-1/trend_01/vids/final.mp4",
		"run-1/trends_13.json",
	}
	if len(store.keys) != len(want) {
		t.Fatalf("keys = %v; want %v", store.keys, want)
	}
	for i := range want {
		if store.keys[i] != want[i] {
			t.Fatalf("key[%d] = %q; want %q", i, store.keys[i], want[i])
		}
	}
}

func TestRunRequiresBucket(t *testing.T) {
	if err := Run(context.Background(), &memStore{}, "", "run-1", t.TempDir()); err == nil {
		t.Fatalf("expected error without a bucket")
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
