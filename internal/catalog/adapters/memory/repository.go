package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dejobratic/vitrine/internal/catalog/domain"
	"github.com/dejobratic/vitrine/internal/catalog/ports"
)

// Repository provides an in-memory catalog useful for local development and tests.
type Repository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	order    []string
}

// NewRepository constructs a new in-memory repository.
func NewRepository() *Repository {
	return &Repository{products: make(map[string]domain.Product)}
}

// Create stores a new product.
func (r *Repository) Create(_ context.Context, product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.products[product.ID]; exists {
		return ports.ErrAlreadyExists
	}
	r.products[product.ID] = product.Clone()
	r.order = append(r.order, product.ID)
	return nil
}

// GetByID fetches a single product by identifier.
func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := product.Clone()
	return &clone, nil
}

// List returns products respecting the provided filter. Pagination is 1-based.
func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Product
	for _, id := range r.order {
		product, ok := r.products[id]
		if !ok {
			continue
		}
		if filter.Category != nil && !strings.EqualFold(product.Category, *filter.Category) {
			continue
		}
		result = append(result, product.Clone())
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	if start >= len(result) {
		return []domain.Product{}, nil
	}

	end := start + pageSize
	if end > len(result) {
		end = len(result)
	}

	return result[start:end], nil
}

// ListByCategory returns products whose category matches, ignoring case.
func (r *Repository) ListByCategory(_ context.Context, category string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Product
	for _, id := range r.order {
		product, ok := r.products[id]
		if !ok {
			continue
		}
		if strings.EqualFold(product.Category, category) {
			result = append(result, product.Clone())
		}
	}
	return result, nil
}

// ListFeatured returns up to limit products flagged for the home page.
func (r *Repository) ListFeatured(_ context.Context, limit int) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Product
	for _, id := range r.order {
		product, ok := r.products[id]
		if !ok || !product.Featured {
			continue
		}
		result = append(result, product.Clone())
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

// Update replaces an existing product.
func (r *Repository) Update(_ context.Context, product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return ports.ErrNotFound
	}
	r.products[product.ID] = product.Clone()
	return nil
}

// Delete removes a product by identifier.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
