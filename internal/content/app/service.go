package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dejobratic/vitrine/internal/content/domain"
	"github.com/dejobratic/vitrine/internal/content/ports"
)

// Service bundles homepage content use cases for the storefront and admin UI.
type Service struct {
	repo   ports.ContentRepository
	logger *slog.Logger
}

// NewService wires required dependencies.
func NewService(repo ports.ContentRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Slides(ctx context.Context) ([]domain.HeroSlide, error) {
	return s.repo.ListSlides(ctx)
}

func (s *Service) SlideByID(ctx context.Context, id string) (*domain.HeroSlide, error) {
	return s.repo.GetSlide(ctx, id)
}

func (s *Service) CreateSlide(ctx context.Context, slide domain.HeroSlide) (*domain.HeroSlide, error) {
	slide.ID = uuid.NewString()
	if err := slide.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateSlide(ctx, slide); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "hero slide created", "slide_id", slide.ID, "title", slide.Title)
	return &slide, nil
}

func (s *Service) UpdateSlide(ctx context.Context, slide domain.HeroSlide) error {
	if err := slide.Validate(); err != nil {
		return err
	}
	return s.repo.UpdateSlide(ctx, slide)
}

func (s *Service) DeleteSlide(ctx context.Context, id string) error {
	return s.repo.DeleteSlide(ctx, id)
}

func (s *Service) Categories(ctx context.Context) ([]domain.FeaturedCategory, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) CategoryByID(ctx context.Context, id string) (*domain.FeaturedCategory, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, category domain.FeaturedCategory) (*domain.FeaturedCategory, error) {
	category.ID = uuid.NewString()
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "featured category created", "category_id", category.ID, "name", category.Name)
	return &category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, category domain.FeaturedCategory) error {
	if err := category.Validate(); err != nil {
		return err
	}
	return s.repo.UpdateCategory(ctx, category)
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *Service) Banners(ctx context.Context) ([]domain.Banner, error) {
	return s.repo.ListBanners(ctx)
}

func (s *Service) CreateBanner(ctx context.Context, banner domain.Banner) (*domain.Banner, error) {
	banner.ID = uuid.NewString()
	if err := banner.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateBanner(ctx, banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

func (s *Service) DeleteBanner(ctx context.Context, id string) error {
	return s.repo.DeleteBanner(ctx, id)
}

// Seed loads the initial slides and category tiles when the store is empty,
// so a fresh install renders a complete home page.
func (s *Service) Seed(ctx context.Context) error {
	slides, err := s.repo.ListSlides(ctx)
	if err != nil {
		return err
	}
	if len(slides) == 0 {
		for _, slide := range initialSlides() {
			slide.ID = uuid.NewString()
			if err := s.repo.CreateSlide(ctx, slide); err != nil {
				return err
			}
		}
		s.logger.InfoContext(ctx, "seeded hero slides")
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		for _, category := range initialCategories() {
			category.ID = uuid.NewString()
			if err := s.repo.CreateCategory(ctx, category); err != nil {
				return err
			}
		}
		s.logger.InfoContext(ctx, "seeded featured categories")
	}

	return nil
}

func initialSlides() []domain.HeroSlide {
	return []domain.HeroSlide{
		{
			ImgSrc:   "https://picsum.photos/seed/laptops/1200/400",
			Alt:      "Back to school",
			Title:    "BACK TO SCHOOL",
			Subtitle: "UNE RENTRÉE PARFAITE...",
			CTAText:  "J'en profite",
			CTALink:  "#",
		},
		{
			ImgSrc:   "https://picsum.photos/seed/laptopdeal/1200/400",
			Alt:      "Offres technologiques",
			Title:    "Nouvelles Offres",
			Subtitle: "Découvrez nos derniers produits.",
			CTAText:  "Explorer",
			CTALink:  "/category/laptops",
		},
		{
			ImgSrc:   "https://picsum.photos/seed/phone-sale/1200/400",
			Alt:      "Vente de téléphones",
			Title:    "Les derniers smartphones",
			Subtitle: "À des prix imbattables.",
			CTAText:  "Voir les offres",
			CTALink:  "/category/smartphones",
		},
	}
}

func initialCategories() []domain.FeaturedCategory {
	return []domain.FeaturedCategory{
		{Name: "Laptops", Href: "/category/laptops", ImgSrc: "https://picsum.photos/seed/cat-laptops/400/400"},
		{Name: "Smartphones", Href: "/category/smartphones", ImgSrc: "https://picsum.photos/seed/cat-phones/400/400"},
		{Name: "Accessoires", Href: "/category/accessoires", ImgSrc: "https://picsum.photos/seed/cat-accessories/400/400"},
	}
}
