package ports

import (
	"context"
	"errors"

	"github.com/dejobratic/vitrine/internal/catalog/domain"
)

// ProductRepository exposes catalog persistence operations required by the
// storefront and the admin back office.
type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	ListFeatured(ctx context.Context, limit int) ([]domain.Product, error)
	Update(ctx context.Context, product domain.Product) error
	Delete(ctx context.Context, id string) error
}

// ListFilter narrows admin list queries by category and pagination.
type ListFilter struct {
	Category *string
	Page     int
	PageSize int
}

var (
	// ErrNotFound is returned when the requested product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrAlreadyExists is returned when creating a product with a taken id.
	ErrAlreadyExists = errors.New("product already exists")
)
