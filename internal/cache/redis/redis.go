package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cmarcal/futmeet-sub000/internal/cache"
	"github.com/cmarcal/futmeet-sub000/internal/model"
)

// snapshotKey is the single key holding the serialized store snapshot
const snapshotKey = "futmeet:snapshot"

// Cache is a Redis-backed cache storing the whole snapshot under one key
type Cache struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis cache instance
func New(cfg Config) (*Cache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Cache{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis cache with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Cache {
	return &Cache{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

// Ensure Cache implements the interface
var _ cache.Cache = (*Cache)(nil)

// Save stores the snapshot under the snapshot key with the configured TTL
func (c *Cache) Save(ctx context.Context, snap *model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return c.client.Set(ctx, snapshotKey, data, c.cfg.SnapshotTTL).Err()
}

// Load reads the snapshot key
func (c *Cache) Load(ctx context.Context) (*model.Snapshot, error) {
	data, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCacheMiss
		}
		return nil, err
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCacheCorrupt, err)
	}
	return &snap, nil
}
