package cache

import (
	"context"

	"github.com/cmarcal/futmeet-sub000/internal/model"
)

// Cache persists store snapshots across process restarts. Persistence
// is best-effort: the store never waits on a cache and keeps working
// when one is absent or failing.
type Cache interface {
	// Save persists the snapshot, replacing any previous one
	Save(ctx context.Context, snap *model.Snapshot) error

	// Load returns the last saved snapshot. Returns model.ErrCacheMiss
	// when nothing has been saved yet and model.ErrCacheCorrupt when
	// the stored data cannot be decoded.
	Load(ctx context.Context) (*model.Snapshot, error)
}
