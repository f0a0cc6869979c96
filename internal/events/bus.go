package events

import (
	"context"
	"sync"
)

// CartEvent describes one mutation of a session's cart.
type CartEvent struct {
	Kind      string
	SessionID string
	ProductID string
	Quantity  int
}

// Event kinds published by the bus.
const (
	KindItemAdded   = "item_added"
	KindItemRemoved = "item_removed"
	KindCartCleared = "cart_cleared"
)

// Subscriber receives cart events. Handlers run synchronously in publish
// order and must not block.
type Subscriber func(ctx context.Context, event CartEvent)

// Bus is an in-process publish-subscribe fan-out for cart events.
type Bus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	metrics     *Metrics
}

// NewBus returns a bus with no subscribers. Metrics may be nil.
func NewBus(metrics *Metrics) *Bus {
	return &Bus{metrics: metrics}
}

// Subscribe registers a handler for all subsequent events.
func (b *Bus) Subscribe(subscriber Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, subscriber)
}

func (b *Bus) publish(ctx context.Context, event CartEvent) error {
	b.mu.RLock()
	subscribers := make([]Subscriber, len(b.subscribers))
	copy(subscribers, b.subscribers)
	b.mu.RUnlock()

	for _, subscriber := range subscribers {
		subscriber(ctx, event)
	}

	if b.metrics != nil {
		b.metrics.RecordPublish(ctx, event.Kind, true)
	}

	return nil
}

func (b *Bus) PublishItemAdded(ctx context.Context, sessionID, productID string, quantity int) error {
	return b.publish(ctx, CartEvent{Kind: KindItemAdded, SessionID: sessionID, ProductID: productID, Quantity: quantity})
}

func (b *Bus) PublishItemRemoved(ctx context.Context, sessionID, productID string) error {
	return b.publish(ctx, CartEvent{Kind: KindItemRemoved, SessionID: sessionID, ProductID: productID})
}

func (b *Bus) PublishCartCleared(ctx context.Context, sessionID string) error {
	return b.publish(ctx, CartEvent{Kind: KindCartCleared, SessionID: sessionID})
}
