package events

import (
	"context"
	"log/slog"
)

// NoopEventBus logs cart events without delivering them anywhere. Useful for
// tests and for running without observers wired.
type NoopEventBus struct{}

// NewNoopEventBus returns a new no-op event publisher.
func NewNoopEventBus() *NoopEventBus {
	return &NoopEventBus{}
}

func (n *NoopEventBus) PublishItemAdded(_ context.Context, sessionID, productID string, quantity int) error {
	slog.Debug("event::item_added", "session_id", sessionID, "product_id", productID, "quantity", quantity)
	return nil
}

func (n *NoopEventBus) PublishItemRemoved(_ context.Context, sessionID, productID string) error {
	slog.Debug("event::item_removed", "session_id", sessionID, "product_id", productID)
	return nil
}

func (n *NoopEventBus) PublishCartCleared(_ context.Context, sessionID string) error {
	slog.Debug("event::cart_cleared", "session_id", sessionID)
	return nil
}
