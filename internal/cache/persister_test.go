package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmarcal/futmeet-sub000/internal/cache"
	"github.com/cmarcal/futmeet-sub000/internal/cache/memory"
	"github.com/cmarcal/futmeet-sub000/internal/dependencies/mocks"
	"github.com/cmarcal/futmeet-sub000/internal/model"
	"github.com/cmarcal/futmeet-sub000/internal/notify"
	"github.com/cmarcal/futmeet-sub000/internal/services/session"
	"github.com/cmarcal/futmeet-sub000/internal/services/sorter"
	"github.com/cmarcal/futmeet-sub000/internal/testutil"
)

// countingCache records every save
type countingCache struct {
	mu    sync.Mutex
	saves int
	fail  error
	last  *model.Snapshot
}

func (c *countingCache) Save(ctx context.Context, snap *model.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saves++
	if c.fail != nil {
		return c.fail
	}
	c.last = snap
	return nil
}

func (c *countingCache) Load(ctx context.Context) (*model.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return nil, model.ErrCacheMiss
	}
	return c.last, nil
}

func (c *countingCache) saveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves
}

func (c *countingCache) lastSnapshot() *model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// staticSource returns a fixed snapshot
type staticSource struct {
	snap *model.Snapshot
}

func (s *staticSource) Snapshot() *model.Snapshot { return s.snap }

func someEvent() model.Event {
	return model.Event{Type: model.EventPlayerAdded, Kind: model.KindGame, SessionID: "x"}
}

func TestPersisterCoalescesBursts(t *testing.T) {
	c := &countingCache{}
	source := &staticSource{snap: &model.Snapshot{}}
	events := make(chan model.Event, 16)
	p := cache.NewPersister(source, c, events, func() {}, 20*time.Millisecond, testutil.NopLogger())
	go p.Run()
	defer p.Close()

	for i := 0; i < 10; i++ {
		events <- someEvent()
	}

	assert.Eventually(t, func() bool { return c.saveCount() == 1 },
		time.Second, 5*time.Millisecond, "a burst should collapse into one save")

	// A later, separate mutation triggers a fresh save
	time.Sleep(40 * time.Millisecond)
	events <- someEvent()
	assert.Eventually(t, func() bool { return c.saveCount() >= 2 },
		time.Second, 5*time.Millisecond)
}

func TestPersisterFlushesOnClose(t *testing.T) {
	c := &countingCache{}
	source := &staticSource{snap: &model.Snapshot{}}
	events := make(chan model.Event, 16)
	cancelled := false
	p := cache.NewPersister(source, c, events, func() { cancelled = true }, time.Hour, testutil.NopLogger())
	go p.Run()

	events <- someEvent()
	time.Sleep(10 * time.Millisecond)

	// The debounce window is an hour, so only Close can flush this
	p.Close()

	assert.Equal(t, 1, c.saveCount())
	assert.True(t, cancelled, "Close must cancel the subscription")
}

func TestPersisterFlushesWhenSubscriptionEnds(t *testing.T) {
	c := &countingCache{}
	source := &staticSource{snap: &model.Snapshot{}}
	events := make(chan model.Event, 16)
	p := cache.NewPersister(source, c, events, func() {}, time.Hour, testutil.NopLogger())
	go p.Run()

	events <- someEvent()
	time.Sleep(10 * time.Millisecond)
	close(events)

	assert.Eventually(t, func() bool { return c.saveCount() == 1 },
		time.Second, 5*time.Millisecond)

	// Close after the loop already exited must not hang
	done := make(chan struct{})
	go func() { p.Close(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close hung after the subscription ended")
	}
}

func TestPersisterKeepsRunningWhenSavesFail(t *testing.T) {
	c := &countingCache{fail: errors.New("disk full")}
	source := &staticSource{snap: &model.Snapshot{}}
	events := make(chan model.Event, 16)
	p := cache.NewPersister(source, c, events, func() {}, 10*time.Millisecond, testutil.NopLogger())
	go p.Run()
	defer p.Close()

	events <- someEvent()
	assert.Eventually(t, func() bool { return c.saveCount() >= 1 },
		time.Second, 5*time.Millisecond)

	// Still alive: the next event attempts another save
	events <- someEvent()
	assert.Eventually(t, func() bool { return c.saveCount() >= 2 },
		time.Second, 5*time.Millisecond)
}

func TestPersisterFlushSavesImmediately(t *testing.T) {
	c := &countingCache{}
	source := &staticSource{snap: &model.Snapshot{}}
	events := make(chan model.Event)
	p := cache.NewPersister(source, c, events, func() {}, time.Hour, testutil.NopLogger())
	go p.Run()
	defer p.Close()

	p.Flush()

	assert.Equal(t, 1, c.saveCount())
}

// Full pipeline: store mutations end up in the cache

func TestPersisterPersistsStoreMutations(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC))
	notifier := notify.NewNotifier(testutil.NopLogger())
	go notifier.Run()
	defer notifier.Close()

	store := session.NewStore(sorter.New(), clk, notifier, testutil.NopLogger())
	backend := memory.New()

	events, cancel := notifier.Subscribe()
	p := cache.NewPersister(store, backend, events, cancel, 10*time.Millisecond, testutil.NopLogger())
	go p.Run()
	defer p.Close()

	store.InitGame("V1StGXR8Z5jdHi6BmyT91")
	store.AddPlayer("V1StGXR8Z5jdHi6BmyT91", "Ana")

	require.Eventually(t, func() bool {
		snap, err := backend.Load(context.Background())
		if err != nil {
			return false
		}
		g, ok := snap.Games["V1StGXR8Z5jdHi6BmyT91"]
		return ok && len(g.Players) == 1 && g.Players[0].Name == "Ana"
	}, time.Second, 5*time.Millisecond, "mutations should reach the cache")
}
