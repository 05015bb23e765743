package notify

import (
	"log/slog"
	"sync"

	"github.com/cmarcal/futmeet-sub000/internal/model"
)

const (
	// publishBuffer is the notifier's inbound event buffer.
	publishBuffer = 256

	// subscriberBuffer is the per-subscriber delivery buffer. Slow
	// subscribers drop events rather than stall the store.
	subscriberBuffer = 64
)

// Notifier fans out session store events to in-process subscribers.
type Notifier struct {
	subscribers map[*subscriber]bool
	mu          sync.RWMutex
	logger      *slog.Logger

	// Channels for managing subscribers
	register   chan *subscriber
	unregister chan *subscriber
	publish    chan model.Event
	done       chan struct{}
	closeOnce  sync.Once
}

type subscriber struct {
	events chan model.Event
}

// NewNotifier creates a new Notifier. The caller must start Run in a
// goroutine before subscribing or publishing.
func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{
		subscribers: make(map[*subscriber]bool),
		logger:      logger.With(slog.String("component", "notify")),
		register:    make(chan *subscriber),
		unregister:  make(chan *subscriber),
		publish:     make(chan model.Event, publishBuffer),
		done:        make(chan struct{}),
	}
}

// Run starts the notifier's event loop
func (n *Notifier) Run() {
	n.logger.Debug("notifier started")
	for {
		select {
		case sub := <-n.register:
			n.mu.Lock()
			n.subscribers[sub] = true
			count := len(n.subscribers)
			n.mu.Unlock()
			n.logger.Debug("subscriber registered", slog.Int("total_subscribers", count))

		case sub := <-n.unregister:
			n.mu.Lock()
			if _, ok := n.subscribers[sub]; ok {
				delete(n.subscribers, sub)
				close(sub.events)
				count := len(n.subscribers)
				n.mu.Unlock()
				n.logger.Debug("subscriber unregistered", slog.Int("total_subscribers", count))
			} else {
				n.mu.Unlock()
			}

		case event := <-n.publish:
			n.mu.RLock()
			droppedCount := 0
			for sub := range n.subscribers {
				select {
				case sub.events <- event:
				default:
					droppedCount++
				}
			}
			n.mu.RUnlock()
			if droppedCount > 0 {
				n.logger.Warn("event dropped - subscriber buffer full",
					slog.String("event_type", string(event.Type)),
					slog.Int("dropped", droppedCount))
			}

		case <-n.done:
			n.mu.Lock()
			for sub := range n.subscribers {
				close(sub.events)
				delete(n.subscribers, sub)
			}
			n.mu.Unlock()
			n.logger.Debug("notifier stopped")
			return
		}
	}
}

// Subscribe registers a new subscriber and returns its event channel
// along with a cancel function. The channel is closed on cancel or when
// the notifier shuts down.
func (n *Notifier) Subscribe() (<-chan model.Event, func()) {
	sub := &subscriber{events: make(chan model.Event, subscriberBuffer)}

	select {
	case n.register <- sub:
	case <-n.done:
		close(sub.events)
		return sub.events, func() {}
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			select {
			case n.unregister <- sub:
			case <-n.done:
			}
		})
	}
	return sub.events, cancel
}

// Publish sends an event to all subscribers without blocking the caller
func (n *Notifier) Publish(event model.Event) {
	select {
	case n.publish <- event:
	default:
		n.logger.Warn("event dropped - notifier buffer full",
			slog.String("event_type", string(event.Type)))
	}
}

// Close shuts down the notifier and closes all subscriber channels.
// It is safe to call more than once.
func (n *Notifier) Close() {
	n.closeOnce.Do(func() {
		close(n.done)
	})
}

// SubscriberCount returns the number of active subscribers
func (n *Notifier) SubscriberCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subscribers)
}
