package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/cmarcal/futmeet-sub000/internal/cache"
	filecache "github.com/cmarcal/futmeet-sub000/internal/cache/file"
	memorycache "github.com/cmarcal/futmeet-sub000/internal/cache/memory"
	rediscache "github.com/cmarcal/futmeet-sub000/internal/cache/redis"
	"github.com/cmarcal/futmeet-sub000/internal/dependencies/clock"
	"github.com/cmarcal/futmeet-sub000/internal/notify"
	"github.com/cmarcal/futmeet-sub000/internal/services/session"
	"github.com/cmarcal/futmeet-sub000/internal/services/sorter"
	"github.com/cmarcal/futmeet-sub000/internal/share"
)

// Cache type constants
const (
	CacheTypeNone   = "none"
	CacheTypeMemory = "memory"
	CacheTypeFile   = "file"
	CacheTypeRedis  = "redis"
)

// hydrateTimeout bounds the snapshot load at startup
const hydrateTimeout = 10 * time.Second

// App contains all wired application components
type App struct {
	// Persistence (nil when CacheType is "none")
	Cache     cache.Cache
	Persister *cache.Persister

	// External dependencies
	Clock clock.Clock

	// Services
	Store         *session.Store
	Notifier      *notify.Notifier
	SorterService *sorter.Service
	ShareService  *share.Service

	cacheCloser io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// CacheType selects the snapshot cache backend
	// ("none", "memory", "file" or "redis"). If empty, defaults to "none".
	CacheType string
	// CacheFile is the snapshot file path (required if CacheType is "file")
	CacheFile string
	// RedisConfig holds Redis connection settings (required if CacheType is "redis")
	RedisConfig *rediscache.Config
	// Debounce overrides the persister debounce window (optional)
	Debounce time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create the snapshot cache based on type
	var (
		c      cache.Cache
		closer io.Closer
	)
	cacheType := cfg.CacheType
	if cacheType == "" {
		cacheType = CacheTypeNone
	}

	switch cacheType {
	case CacheTypeNone:
		c = nil
	case CacheTypeMemory:
		c = memorycache.New()
	case CacheTypeFile:
		if cfg.CacheFile == "" {
			return nil, errors.New("CacheFile required when CacheType is file")
		}
		c = filecache.New(cfg.CacheFile)
	case CacheTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when CacheType is redis")
		}
		redisCache, err := rediscache.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		c = redisCache
		closer = redisCache
	default:
		return nil, errors.New("invalid CacheType: must be 'none', 'memory', 'file' or 'redis'")
	}

	app := newWithDependencies(c, clock.New(), cfg.Debounce, logger)
	app.cacheCloser = closer
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(c cache.Cache, clk clock.Clock, debounce time.Duration, logger *slog.Logger) *App {
	notifier := notify.NewNotifier(logger)
	go notifier.Run()

	sorterService := sorter.New()
	store := session.NewStore(sorterService, clk, notifier, logger)
	shareService := share.New()

	// Restore before the persister subscribes so hydration does not
	// immediately write the snapshot back.
	var persister *cache.Persister
	if c != nil {
		ctx, cancel := context.WithTimeout(context.Background(), hydrateTimeout)
		store.Restore(cache.Hydrate(ctx, c, clk, logger))
		cancel()

		events, unsubscribe := notifier.Subscribe()
		persister = cache.NewPersister(store, c, events, unsubscribe, debounce, logger)
		go persister.Run()
	}

	return &App{
		Cache:         c,
		Persister:     persister,
		Clock:         clk,
		Store:         store,
		Notifier:      notifier,
		SorterService: sorterService,
		ShareService:  shareService,
	}
}

// Close flushes pending snapshot writes and stops background goroutines
func (a *App) Close() error {
	if a.Persister != nil {
		a.Persister.Close()
	}
	a.Notifier.Close()
	if a.cacheCloser != nil {
		return a.cacheCloser.Close()
	}
	return nil
}
