package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/dejobratic/vitrine/internal/catalog/domain"
	"github.com/dejobratic/vitrine/internal/catalog/metrics"
	"github.com/dejobratic/vitrine/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableCommandHandler struct {
	handler CommandHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCommandHandler(handler CommandHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCommandHandler {
	return &ObservableCommandHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "CreateProductCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		duration := time.Since(start).Seconds()
		o.metrics.RecordProductCreationDuration(ctx, duration)
		o.metrics.RecordProductCreated(ctx, success)
	}()

	o.logger.InfoContext(ctx, "creating product",
		"name", cmd.Name,
		"category", cmd.Category,
	)

	product, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to create product",
			"error", err,
			"name", cmd.Name,
		)
		return nil, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("product.id", product.ID),
		attribute.String("product.category", product.Category),
		attribute.String("product.price", product.Price.String()),
	)

	o.logger.InfoContext(ctx, "product created successfully",
		"product_id", product.ID,
		"category", product.Category,
	)

	success = true
	telemetry.SetSpanSuccess(span)

	return product, nil
}
