// Package adapters holds cross-cutting decorators shared by the catalog's
// storage backends.
package adapters

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dejobratic/vitrine/internal/catalog/domain"
	"github.com/dejobratic/vitrine/internal/catalog/ports"
	"github.com/dejobratic/vitrine/internal/database"
	"github.com/dejobratic/vitrine/internal/telemetry"
)

// ObservableRepository wraps a product repository with spans and query
// metrics. It works over any backend, memory included.
type ObservableRepository struct {
	repo    ports.ProductRepository
	metrics *database.Metrics
}

func NewObservableRepository(repo ports.ProductRepository, metrics *database.Metrics) *ObservableRepository {
	return &ObservableRepository{
		repo:    repo,
		metrics: metrics,
	}
}

func (r *ObservableRepository) Create(ctx context.Context, product domain.Product) error {
	ctx, span := telemetry.StartSpan(ctx, "ProductRepository.Create")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("product.id", product.ID),
		attribute.String("operation", "create"),
	)

	start := time.Now()
	err := r.repo.Create(ctx, product)
	r.metrics.RecordQuery(ctx, "create_product", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (r *ObservableRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "ProductRepository.GetByID")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("product.id", id),
		attribute.String("operation", "get_by_id"),
	)

	start := time.Now()
	product, err := r.repo.GetByID(ctx, id)
	r.metrics.RecordQuery(ctx, "get_product_by_id", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.SetSpanSuccess(span)
	return product, nil
}

func (r *ObservableRepository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "ProductRepository.List")
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.String("operation", "list"),
		attribute.Int("page", filter.Page),
		attribute.Int("page_size", filter.PageSize),
	}
	if filter.Category != nil {
		attrs = append(attrs, attribute.String("filter.category", *filter.Category))
	}
	telemetry.AddSpanAttributes(span, attrs...)

	start := time.Now()
	products, err := r.repo.List(ctx, filter)
	r.metrics.RecordQuery(ctx, "list_products", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(products)))
	telemetry.SetSpanSuccess(span)
	return products, nil
}

func (r *ObservableRepository) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "ProductRepository.ListByCategory")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("operation", "list_by_category"),
		attribute.String("product.category", category),
	)

	start := time.Now()
	products, err := r.repo.ListByCategory(ctx, category)
	r.metrics.RecordQuery(ctx, "list_products_by_category", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(products)))
	telemetry.SetSpanSuccess(span)
	return products, nil
}

func (r *ObservableRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "ProductRepository.ListFeatured")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("operation", "list_featured"),
		attribute.Int("limit", limit),
	)

	start := time.Now()
	products, err := r.repo.ListFeatured(ctx, limit)
	r.metrics.RecordQuery(ctx, "list_featured_products", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.SetSpanSuccess(span)
	return products, nil
}

func (r *ObservableRepository) Update(ctx context.Context, product domain.Product) error {
	ctx, span := telemetry.StartSpan(ctx, "ProductRepository.Update")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("product.id", product.ID),
		attribute.String("operation", "update"),
	)

	start := time.Now()
	err := r.repo.Update(ctx, product)
	r.metrics.RecordQuery(ctx, "update_product", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (r *ObservableRepository) Delete(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "ProductRepository.Delete")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("product.id", id),
		attribute.String("operation", "delete"),
	)

	start := time.Now()
	err := r.repo.Delete(ctx, id)
	r.metrics.RecordQuery(ctx, "delete_product", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
