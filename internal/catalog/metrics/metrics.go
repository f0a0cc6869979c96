package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	productsCreatedTotal    metric.Int64Counter
	productCreationDuration metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.productsCreatedTotal, err = meter.Int64Counter(
		"products_created_total",
		metric.WithDescription("Total number of catalog products created"),
		metric.WithUnit("{product}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create products_created_total counter: %w", err)
	}

	m.productCreationDuration, err = meter.Float64Histogram(
		"product_creation_duration_seconds",
		metric.WithDescription("Duration of product creation operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create product_creation_duration histogram: %w", err)
	}

	return m, nil
}

func (m *Metrics) RecordProductCreated(ctx context.Context, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.productsCreatedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

func (m *Metrics) RecordProductCreationDuration(ctx context.Context, durationSeconds float64) {
	m.productCreationDuration.Record(ctx, durationSeconds)
}
