package memory

import (
	"context"
	"sync"

	"github.com/dejobratic/vitrine/internal/content/domain"
	"github.com/dejobratic/vitrine/internal/content/ports"
)

// Repository keeps homepage content in process memory, insertion-ordered.
type Repository struct {
	mu         sync.RWMutex
	slides     []domain.HeroSlide
	categories []domain.FeaturedCategory
	banners    []domain.Banner
}

// NewRepository constructs an empty in-memory content repository.
func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) ListSlides(_ context.Context) ([]domain.HeroSlide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slides := make([]domain.HeroSlide, len(r.slides))
	copy(slides, r.slides)
	return slides, nil
}

func (r *Repository) GetSlide(_ context.Context, id string) (*domain.HeroSlide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, slide := range r.slides {
		if slide.ID == id {
			found := slide
			return &found, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) CreateSlide(_ context.Context, slide domain.HeroSlide) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slides = append(r.slides, slide)
	return nil
}

func (r *Repository) UpdateSlide(_ context.Context, slide domain.HeroSlide) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.slides {
		if r.slides[i].ID == slide.ID {
			r.slides[i] = slide
			return nil
		}
	}
	return ports.ErrNotFound
}

func (r *Repository) DeleteSlide(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.slides {
		if r.slides[i].ID == id {
			r.slides = append(r.slides[:i], r.slides[i+1:]...)
			return nil
		}
	}
	return ports.ErrNotFound
}

func (r *Repository) ListCategories(_ context.Context) ([]domain.FeaturedCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	categories := make([]domain.FeaturedCategory, len(r.categories))
	copy(categories, r.categories)
	return categories, nil
}

func (r *Repository) GetCategory(_ context.Context, id string) (*domain.FeaturedCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, category := range r.categories {
		if category.ID == id {
			found := category
			return &found, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) CreateCategory(_ context.Context, category domain.FeaturedCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = append(r.categories, category)
	return nil
}

func (r *Repository) UpdateCategory(_ context.Context, category domain.FeaturedCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.categories {
		if r.categories[i].ID == category.ID {
			r.categories[i] = category
			return nil
		}
	}
	return ports.ErrNotFound
}

func (r *Repository) DeleteCategory(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return ports.ErrNotFound
}

func (r *Repository) ListBanners(_ context.Context) ([]domain.Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	banners := make([]domain.Banner, len(r.banners))
	copy(banners, r.banners)
	return banners, nil
}

func (r *Repository) CreateBanner(_ context.Context, banner domain.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banners = append(r.banners, banner)
	return nil
}

func (r *Repository) DeleteBanner(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.banners {
		if r.banners[i].ID == id {
			r.banners = append(r.banners[:i], r.banners[i+1:]...)
			return nil
		}
	}
	return ports.ErrNotFound
}
