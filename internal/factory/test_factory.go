package factory

import (
	"io"
	"log/slog"
	"time"

	memorycache "github.com/cmarcal/futmeet-sub000/internal/cache/memory"
	"github.com/cmarcal/futmeet-sub000/internal/dependencies/mocks"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks and backends for test control
	MockClock    *mocks.MockClock
	CacheBackend *memorycache.Cache
}

// NewTestApp creates an App configured for testing with a mocked clock,
// an in-memory snapshot cache and a short persister debounce
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC))
	backend := memorycache.New()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(backend, mockClock, 5*time.Millisecond, logger)

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		CacheBackend: backend,
	}
}
