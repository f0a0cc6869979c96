package ports

import (
	"context"
	"errors"

	"github.com/dejobratic/vitrine/internal/content/domain"
)

// ContentRepository persists editable homepage content: hero slides,
// featured category tiles and promotional banners.
type ContentRepository interface {
	ListSlides(ctx context.Context) ([]domain.HeroSlide, error)
	GetSlide(ctx context.Context, id string) (*domain.HeroSlide, error)
	CreateSlide(ctx context.Context, slide domain.HeroSlide) error
	UpdateSlide(ctx context.Context, slide domain.HeroSlide) error
	DeleteSlide(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]domain.FeaturedCategory, error)
	GetCategory(ctx context.Context, id string) (*domain.FeaturedCategory, error)
	CreateCategory(ctx context.Context, category domain.FeaturedCategory) error
	UpdateCategory(ctx context.Context, category domain.FeaturedCategory) error
	DeleteCategory(ctx context.Context, id string) error

	ListBanners(ctx context.Context) ([]domain.Banner, error)
	CreateBanner(ctx context.Context, banner domain.Banner) error
	DeleteBanner(ctx context.Context, id string) error
}

var (
	// ErrNotFound is returned when the requested content entry does not exist.
	ErrNotFound = errors.New("content not found")
)
