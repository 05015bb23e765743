package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cmarcal/futmeet-sub000/internal/cache"
	"github.com/cmarcal/futmeet-sub000/internal/model"
)

// Cache is a single-file cache backend. Saves go through a temp file
// and a rename, so a crash mid-write never leaves a half-written
// snapshot behind.
type Cache struct {
	path string
}

// New creates a file cache writing to the given path
func New(path string) *Cache {
	return &Cache{path: path}
}

// Ensure Cache implements the interface
var _ cache.Cache = (*Cache)(nil)

// Save writes the snapshot atomically
func (c *Cache) Save(ctx context.Context, snap *model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".futmeet-snapshot-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing snapshot file: %w", err)
	}
	return nil
}

// Load reads the snapshot file
func (c *Cache) Load(ctx context.Context) (*model.Snapshot, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.ErrCacheMiss
		}
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCacheCorrupt, err)
	}
	return &snap, nil
}
