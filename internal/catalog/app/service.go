package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dejobratic/vitrine/internal/catalog/app/commands"
	"github.com/dejobratic/vitrine/internal/catalog/app/queries"
	"github.com/dejobratic/vitrine/internal/catalog/domain"
	"github.com/dejobratic/vitrine/internal/catalog/metrics"
	"github.com/dejobratic/vitrine/internal/catalog/ports"
	"github.com/dejobratic/vitrine/internal/catalog/seed"
)

// featuredLimit bounds the featured strip on the home page.
const featuredLimit = 8

// Service bundles catalog use cases for the storefront and the admin UI.
type Service struct {
	repo                 ports.ProductRepository
	createProductHandler commands.CommandHandler
	getProductHandler    *queries.GetProductQueryHandler
}

// NewService wires required dependencies.
func NewService(repo ports.ProductRepository, logger *slog.Logger, metrics *metrics.Metrics) *Service {
	coreHandler := commands.NewCreateProductCommandHandler(repo)
	observableHandler := commands.NewObservableCommandHandler(coreHandler, logger, metrics)

	return &Service{
		repo:                 repo,
		createProductHandler: observableHandler,
		getProductHandler:    queries.NewGetProductQueryHandler(repo),
	}
}

// CreateProduct creates a new catalog entry from admin form input.
func (s *Service) CreateProduct(ctx context.Context, cmd commands.CreateProductCommand) (*domain.Product, error) {
	return s.createProductHandler.Handle(ctx, cmd)
}

// GetProduct retrieves a product by ID.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.getProductHandler.Handle(ctx, queries.GetProductQuery{ProductID: id})
}

// ListProducts returns products using an admin list filter.
func (s *Service) ListProducts(ctx context.Context, filter ports.ListFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

// ProductsByCategory returns products whose category matches, ignoring case.
func (s *Service) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.ListByCategory(ctx, category)
}

// FeaturedProducts returns the promotional selection for the home page.
func (s *Service) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListFeatured(ctx, featuredLimit)
}

// Recommendations returns other products from the same category as the given
// product, excluding the product itself.
func (s *Service) Recommendations(ctx context.Context, productID string, limit int) ([]domain.Product, error) {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.ListByCategory(ctx, product.Category)
	if err != nil {
		return nil, err
	}

	recommended := make([]domain.Product, 0, limit)
	for _, candidate := range candidates {
		if candidate.ID == product.ID {
			continue
		}
		recommended = append(recommended, candidate)
		if len(recommended) == limit {
			break
		}
	}

	return recommended, nil
}

// UpdateProduct replaces an existing catalog entry.
func (s *Service) UpdateProduct(ctx context.Context, product domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, product)
}

// Seed loads the demo catalog, skipping products that already exist.
func (s *Service) Seed(ctx context.Context) error {
	return seed.LoadProducts(ctx, s.repo)
}

// DeleteProduct removes a product from the catalog.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ports.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
