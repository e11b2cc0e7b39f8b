package streaming

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Fraud-stop/shield-wise-guard/pkg/logger"
)

const subscriberBuffer = 100

// EventBus distributes alert events to local subscribers and, when NATS is
// configured, to other instances.
type EventBus struct {
	nats     *NATSPublisher
	instance string
	logger   *logger.Logger

	mu          sync.RWMutex
	subscribers map[uint64]*subscriber
	nextID      uint64
	closed      bool
}

type subscriber struct {
	ch     chan *AlertEvent
	filter *AlertFilter
}

// NewEventBus creates a new event bus. nats may be nil.
func NewEventBus(nats *NATSPublisher, log *logger.Logger) *EventBus {
	return &EventBus{
		nats:        nats,
		instance:    uuid.NewString(),
		logger:      log.WithComponent("event-bus"),
		subscribers: make(map[uint64]*subscriber),
	}
}

// Publish sends an event to NATS (best effort) and all local subscribers
func (eb *EventBus) Publish(ctx context.Context, event *AlertEvent) error {
	event.Origin = eb.instance

	if eb.nats != nil && eb.nats.IsConnected() {
		if err := eb.nats.PublishAlert(ctx, event); err != nil {
			eb.logger.Warn().Err(err).Msg("failed to publish to NATS, using local broadcast only")
		}
	}

	eb.broadcast(event)
	return nil
}

func (eb *EventBus) broadcast(event *AlertEvent) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for id, sub := range eb.subscribers {
		if !sub.filter.Matches(event) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			eb.logger.Debug().Uint64("subscriber", id).Msg("subscriber channel full, dropping event")
		}
	}
}

// Subscribe registers a subscriber and returns its channel and an
// unsubscribe function. filter may be nil.
func (eb *EventBus) Subscribe(filter *AlertFilter) (<-chan *AlertEvent, func()) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan *AlertEvent, subscriberBuffer)
	if eb.closed {
		close(ch)
		return ch, func() {}
	}

	eb.nextID++
	id := eb.nextID
	eb.subscribers[id] = &subscriber{ch: ch, filter: filter}
	eb.logger.Debug().Uint64("subscriber_id", id).Msg("new subscriber")

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			eb.mu.Lock()
			defer eb.mu.Unlock()
			if sub, ok := eb.subscribers[id]; ok {
				close(sub.ch)
				delete(eb.subscribers, id)
				eb.logger.Debug().Uint64("subscriber_id", id).Msg("subscriber removed")
			}
		})
	}

	return ch, unsubscribe
}

// Run relays events published by other instances to local subscribers. It
// returns when ctx is done or immediately when NATS is not configured.
func (eb *EventBus) Run(ctx context.Context) error {
	if eb.nats == nil {
		return nil
	}

	events, err := eb.nats.Subscribe(ctx)
	if err != nil {
		return err
	}

	eb.logger.Info().Msg("relaying alert events from NATS")
	for event := range events {
		if event.Origin == eb.instance {
			continue
		}
		eb.broadcast(event)
	}
	return nil
}

// SubscriberCount returns the number of active subscribers
func (eb *EventBus) SubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// Close closes every subscriber channel and the NATS connection
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.closed = true
	for id, sub := range eb.subscribers {
		close(sub.ch)
		delete(eb.subscribers, id)
	}

	if eb.nats != nil {
		eb.nats.Close()
	}
}
