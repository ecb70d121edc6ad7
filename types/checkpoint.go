package types

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SchemaVersion is the checkpoint file format version.
const SchemaVersion = "1.0"

// Checkpoint is the on-disk snapshot written after a pipeline stage runs.
// Files are named trends_<N>.json where N is the stage label.
type Checkpoint struct {
	SchemaVersion string `json:"schema_version"`
	Stage         string `json:"stage"`
	TrendList
}

// CheckpointPath returns the checkpoint file path for a stage under dir.
func CheckpointPath(dir, stage string) string {
	return filepath.Join(dir, fmt.Sprintf("trends_%s.json", stage))
}

// SaveCheckpoint writes the trend list as the checkpoint for a stage.
func SaveCheckpoint(dir, stage string, tl *TrendList) error {
	cp := Checkpoint{
		SchemaVersion: SchemaVersion,
		Stage:         stage,
		TrendList:     *tl,
	}
	data, err := json.MarshalIndent(&cp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	path := CheckpointPath(dir, stage)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("finalize checkpoint %s: %w", path, err)
	}
	return nil
}

// LoadCheckpoint reads and validates the checkpoint for a stage.
func LoadCheckpoint(dir, stage string) (*TrendList, error) {
	path := CheckpointPath(dir, stage)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checkpoint %s: %w", path, err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("parse checkpoint %s: %w", path, err)
	}
	if cp.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("checkpoint %s: unsupported schema version %q", path, cp.SchemaVersion)
	}
	if len(cp.Items) == 0 {
		return nil, fmt.Errorf("checkpoint %s: no trend items", path)
	}

	tl := cp.TrendList
	return &tl, nil
}
