package ports

import "context"

// EventBus defines the contract for publishing cart lifecycle events, so
// observers (logs, metrics, future consumers) see mutations explicitly
// instead of polling cart state.
type EventBus interface {
	PublishItemAdded(ctx context.Context, sessionID, productID string, quantity int) error
	PublishItemRemoved(ctx context.Context, sessionID, productID string) error
	PublishCartCleared(ctx context.Context, sessionID string) error
}
