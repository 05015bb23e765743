package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmarcal/futmeet-sub000/internal/model"
)

const (
	// DefaultDebounce is how long the persister waits after a mutation
	// before snapshotting, so bursts collapse into one save.
	DefaultDebounce = 250 * time.Millisecond

	// saveTimeout bounds a single cache save
	saveTimeout = 5 * time.Second
)

// Snapshotter is the slice of the session store the persister needs
type Snapshotter interface {
	Snapshot() *model.Snapshot
}

// Persister watches the store's event stream and writes a snapshot to
// the cache shortly after each burst of mutations. Saves are
// best-effort: failures are logged and the next mutation tries again.
type Persister struct {
	source Snapshotter
	cache  Cache
	logger *slog.Logger

	debounce time.Duration
	events   <-chan model.Event
	cancel   func()

	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewPersister wires a persister to an event subscription. The events
// channel and cancel func come from the notifier's Subscribe. The
// caller must start Run in a goroutine.
func NewPersister(
	source Snapshotter,
	c Cache,
	events <-chan model.Event,
	cancel func(),
	debounce time.Duration,
	logger *slog.Logger,
) *Persister {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Persister{
		source:   source,
		cache:    c,
		logger:   logger.With(slog.String("component", "persister")),
		debounce: debounce,
		events:   events,
		cancel:   cancel,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Run consumes events until Close is called or the subscription ends,
// then flushes a final snapshot. The final save is unconditional: events
// still in flight at shutdown never see the subscriber channel, but the
// store itself already holds their mutations.
func (p *Persister) Run() {
	defer close(p.stopped)

	var timer *time.Timer
	var fire <-chan time.Time
	dirty := false

	for {
		select {
		case _, ok := <-p.events:
			if !ok {
				p.save()
				return
			}
			dirty = true
			if fire == nil {
				timer = time.NewTimer(p.debounce)
				fire = timer.C
			}

		case <-fire:
			fire = nil
			if dirty {
				p.save()
				dirty = false
			}

		case <-p.done:
			if timer != nil {
				timer.Stop()
			}
			p.save()
			return
		}
	}
}

// Close unsubscribes, flushes a final snapshot and waits for the run
// loop to finish
func (p *Persister) Close() {
	p.closeOnce.Do(func() {
		p.cancel()
		close(p.done)
	})
	<-p.stopped
}

// Flush saves a snapshot immediately, regardless of pending debounce
func (p *Persister) Flush() {
	p.save()
}

func (p *Persister) save() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	snap := p.source.Snapshot()
	if err := p.cache.Save(ctx, snap); err != nil {
		p.logger.Warn("snapshot save failed", slog.Any("error", err))
		return
	}
	p.logger.Debug("snapshot saved",
		slog.Int("games", len(snap.Games)),
		slog.Int("rooms", len(snap.Rooms)))
}
