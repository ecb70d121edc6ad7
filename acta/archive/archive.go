// Package archive copies a finished pipeline run's artifacts to S3.
package archive

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"uqbar/internal/s3"
)

// Store is the subset of the S3 client archiving depends on.
type Store interface {
	Put(ctx context.Context, bucket, key string, body *os.File, contentType string) error
}

// s3Store adapts *s3.Client to Store.
type s3Store struct{ c *s3.Client }

func (s s3Store) Put(ctx context.Context, bucket, key string, body *os.File, contentType string) error {
	return s.c.Put(ctx, bucket, key, body, contentType)
}

// Archivable extensions: checkpoints, rendered media, thumbnails.
var keepExtensions = map[string]struct{}{
	".json": {}, ".mp4": {}, ".png": {}, ".wav": {}, ".m4a": {}, ".txt": {},
}

// NewStore wraps an S3 client for Run.
func NewStore(c *s3.Client) Store { return s3Store{c: c} }

// Run uploads the run directory under s3://bucket/<runID>/..., keeping
// the relative layout. Individual upload failures are logged and the
// walk continues; Run fails only when nothing could be uploaded.
func Run(ctx context.Context, store Store, bucket, runID, runDir string) error {
	if bucket == "" {
		return fmt.Errorf("archive: bucket not configured")
	}

	var uploaded, failed int
	err := filepath.WalkDir(runDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, keep := keepExtensions[strings.ToLower(filepath.Ext(path))]; !keep {
			return nil
		}

		rel, err := filepath.Rel(runDir, path)
		if err != nil {
			return err
		}
		key := runID + "/" + filepath.ToSlash(rel)

		f, err := os.Open(path)
		if err != nil {
			log.Warn("archive skip", "path", path, "err", err)
			failed++
			return nil
		}
		defer f.Close()

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if err := store.Put(ctx, bucket, key, f, contentType); err != nil {
			log.Warn("archive upload failed", "key", key, "err", err)
			failed++
			return nil
		}
		uploaded++
		return nil
	})
	if err != nil {
		return fmt.Errorf("archive: walk %s: %w", runDir, err)
	}
	if uploaded == 0 && failed > 0 {
		return fmt.Errorf("archive: all %d uploads failed", failed)
	}

	log.Info("run archived", "bucket", bucket, "run_id", runID,
		"uploaded", uploaded, "failed", failed)
	return nil
}
