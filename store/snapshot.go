// Package store persists pipeline output as JSON snapshots on disk.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/agsist/agfeed/news"
)

// Snapshot is the on-disk shape consumed by the site frontend. Stats counts
// items per category as seen at extraction time, before filtering and ranking.
type Snapshot struct {
	Items              []news.Item    `json:"items"`
	Stats              map[string]int `json:"stats"`
	FeedCount          int            `json:"feed_count"`
	SuccessCount       int            `json:"success_count"`
	SummariesGenerated int            `json:"summaries_generated"`
	SummariesCached    int            `json:"summaries_cached"`
	Updated            time.Time      `json:"updated"`
}

// Load reads a snapshot from path. A missing file is not an error: the first
// run of the pipeline starts from an empty snapshot.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return snap, nil
}

// Write persists the snapshot atomically so a crash mid-write never leaves a
// truncated file for the frontend to read.
func Write(path string, snap Snapshot) error {
	return WriteJSON(path, snap)
}

// WriteJSON marshals v with indentation and writes it via a temp file plus
// rename in the target directory. Parent directories are created as needed.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
