package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/dejobratic/vitrine/internal/cart/domain"
	"github.com/dejobratic/vitrine/internal/cart/metrics"
	"github.com/dejobratic/vitrine/internal/cart/ports"
	catalog "github.com/dejobratic/vitrine/internal/catalog/domain"
	"github.com/dejobratic/vitrine/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Service owns the session-scoped cart lifecycle: it hydrates the cart from
// the store, applies one mutation, persists the result and notifies the
// event bus. Mutations on one session are applied in invocation order; each
// session owns an independent cart.
type Service struct {
	store   ports.CartStore
	events  ports.EventBus
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewService wires required dependencies.
func NewService(store ports.CartStore, events ports.EventBus, logger *slog.Logger, metrics *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		events:  events,
		logger:  logger,
		metrics: metrics,
	}
}

// GetCart returns the current cart for a session, empty when none is stored.
func (s *Service) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, ports.ErrSessionRequired
	}
	return s.store.Get(ctx, sessionID)
}

// AddToCart merges a catalog product into the session's cart. The product is
// trusted as supplied by the catalog; the cart performs no shape validation.
func (s *Service) AddToCart(ctx context.Context, sessionID string, product catalog.Product) (*domain.Cart, error) {
	cart, err := s.mutate(ctx, sessionID, "add", func(cart *domain.Cart) {
		cart.Add(product)
	})
	if err != nil {
		return nil, err
	}

	if err := s.events.PublishItemAdded(ctx, sessionID, product.ID, 1); err != nil {
		s.logger.WarnContext(ctx, "failed to publish item added event", "error", err, "product_id", product.ID)
	}

	return cart, nil
}

// RemoveFromCart deletes the line for a product id. Absent ids are a silent
// no-op and publish nothing.
func (s *Service) RemoveFromCart(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	var removed bool
	cart, err := s.mutate(ctx, sessionID, "remove", func(cart *domain.Cart) {
		removed = cart.Remove(productID)
	})
	if err != nil {
		return nil, err
	}

	if removed {
		if err := s.events.PublishItemRemoved(ctx, sessionID, productID); err != nil {
			s.logger.WarnContext(ctx, "failed to publish item removed event", "error", err, "product_id", productID)
		}
	}

	return cart, nil
}

// UpdateQuantity sets the absolute quantity for a line. A quantity of zero
// or less removes the line. Absent ids are a silent no-op.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	removal := quantity <= 0

	var changed bool
	cart, err := s.mutate(ctx, sessionID, "update_quantity", func(cart *domain.Cart) {
		changed = cart.SetQuantity(productID, quantity)
	})
	if err != nil {
		return nil, err
	}

	if changed && removal {
		if err := s.events.PublishItemRemoved(ctx, sessionID, productID); err != nil {
			s.logger.WarnContext(ctx, "failed to publish item removed event", "error", err, "product_id", productID)
		}
	}

	return cart, nil
}

// ClearCart empties the session's cart.
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ports.ErrSessionRequired
	}

	ctx, span := telemetry.StartSpan(ctx, "Cart.Clear")
	defer span.End()

	if err := s.store.Delete(ctx, sessionID); err != nil {
		telemetry.RecordSpanError(span, err)
		s.metrics.RecordMutation(ctx, "clear", false)
		return err
	}

	s.metrics.RecordMutation(ctx, "clear", true)

	if err := s.events.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart cleared event", "error", err)
	}

	return nil
}

// mutate runs a single load-modify-save cycle for one session.
func (s *Service) mutate(ctx context.Context, sessionID, operation string, apply func(cart *domain.Cart)) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, ports.ErrSessionRequired
	}

	ctx, span := telemetry.StartSpan(ctx, "Cart.Mutate")
	defer span.End()
	telemetry.AddSpanAttributes(span, attribute.String("cart.operation", operation))

	start := time.Now()
	var success bool
	defer func() {
		s.metrics.RecordMutationDuration(ctx, operation, time.Since(start).Seconds())
		s.metrics.RecordMutation(ctx, operation, success)
	}()

	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	apply(cart)

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.Int("cart.count", cart.Count()),
		attribute.String("cart.total", cart.Total().String()),
	)

	success = true
	telemetry.SetSpanSuccess(span)

	return cart, nil
}
