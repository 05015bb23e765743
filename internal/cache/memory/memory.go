package memory

import (
	"context"
	"sync"

	"github.com/cmarcal/futmeet-sub000/internal/cache"
	"github.com/cmarcal/futmeet-sub000/internal/model"
)

// Cache is an in-memory cache backend. Snapshots survive only as long
// as the process does; it exists for tests and for running the
// persister machinery without touching disk.
type Cache struct {
	mu   sync.RWMutex
	snap *model.Snapshot
}

// New creates a new in-memory cache instance
func New() *Cache {
	return &Cache{}
}

// Ensure Cache implements the interface
var _ cache.Cache = (*Cache)(nil)

// Save stores the snapshot as-is
func (c *Cache) Save(ctx context.Context, snap *model.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	return nil
}

// Load returns the last saved snapshot
func (c *Cache) Load(ctx context.Context) (*model.Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil {
		return nil, model.ErrCacheMiss
	}
	return c.snap, nil
}
