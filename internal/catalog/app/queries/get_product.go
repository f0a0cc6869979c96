package queries

import (
	"context"
	"errors"
	"strings"

	"github.com/dejobratic/vitrine/internal/catalog/domain"
	"github.com/dejobratic/vitrine/internal/catalog/ports"
)

// GetProductQuery represents a request to retrieve a product by its ID.
type GetProductQuery struct {
	ProductID string
}

// GetProductQueryHandler executes GetProductQuery and returns the product if found.
type GetProductQueryHandler struct {
	repo ports.ProductRepository
}

// NewGetProductQueryHandler constructs a GetProductQueryHandler.
func NewGetProductQueryHandler(repo ports.ProductRepository) *GetProductQueryHandler {
	return &GetProductQueryHandler{repo: repo}
}

// Handle executes the query and retrieves the product.
func (h *GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (*domain.Product, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	product, err := h.repo.GetByID(ctx, query.ProductID)
	if err != nil {
		return nil, err
	}

	return product, nil
}

// Validate ensures the query has valid parameters.
func (q GetProductQuery) Validate() error {
	if strings.TrimSpace(q.ProductID) == "" {
		return errors.New("product_id is required")
	}
	return nil
}
