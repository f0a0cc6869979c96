package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dejobratic/vitrine/internal/content/domain"
	"github.com/dejobratic/vitrine/internal/content/ports"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) ListSlides(ctx context.Context) ([]domain.HeroSlide, error) {
	query := `
		SELECT id, img_src, alt, title, subtitle, cta_text, cta_link
		FROM hero_slides
		ORDER BY title
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	defer rows.Close()

	slides := []domain.HeroSlide{}
	for rows.Next() {
		var slide domain.HeroSlide
		if err := rows.Scan(&slide.ID, &slide.ImgSrc, &slide.Alt, &slide.Title, &slide.Subtitle, &slide.CTAText, &slide.CTALink); err != nil {
			return nil, fmt.Errorf("scan slide: %w", err)
		}
		slides = append(slides, slide)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slides: %w", err)
	}

	return slides, nil
}

func (r *Repository) GetSlide(ctx context.Context, id string) (*domain.HeroSlide, error) {
	query := `
		SELECT id, img_src, alt, title, subtitle, cta_text, cta_link
		FROM hero_slides
		WHERE id = $1
	`

	var slide domain.HeroSlide
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&slide.ID, &slide.ImgSrc, &slide.Alt, &slide.Title, &slide.Subtitle, &slide.CTAText, &slide.CTALink,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select slide: %w", err)
	}

	return &slide, nil
}

func (r *Repository) CreateSlide(ctx context.Context, slide domain.HeroSlide) error {
	query := `
		INSERT INTO hero_slides (id, img_src, alt, title, subtitle, cta_text, cta_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		slide.ID, slide.ImgSrc, slide.Alt, slide.Title, slide.Subtitle, slide.CTAText, slide.CTALink,
	)
	if err != nil {
		return fmt.Errorf("insert slide: %w", err)
	}

	return nil
}

func (r *Repository) UpdateSlide(ctx context.Context, slide domain.HeroSlide) error {
	query := `
		UPDATE hero_slides
		SET img_src = $2, alt = $3, title = $4, subtitle = $5, cta_text = $6, cta_link = $7
		WHERE id = $1
	`

	commandTag, err := r.pool.Exec(ctx, query,
		slide.ID, slide.ImgSrc, slide.Alt, slide.Title, slide.Subtitle, slide.CTAText, slide.CTALink,
	)
	if err != nil {
		return fmt.Errorf("update slide: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteSlide(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "hero_slides", id)
}

func (r *Repository) ListCategories(ctx context.Context) ([]domain.FeaturedCategory, error) {
	query := `
		SELECT id, name, href, img_src
		FROM featured_categories
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.FeaturedCategory{}
	for rows.Next() {
		var category domain.FeaturedCategory
		if err := rows.Scan(&category.ID, &category.Name, &category.Href, &category.ImgSrc); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

func (r *Repository) GetCategory(ctx context.Context, id string) (*domain.FeaturedCategory, error) {
	query := `
		SELECT id, name, href, img_src
		FROM featured_categories
		WHERE id = $1
	`

	var category domain.FeaturedCategory
	err := r.pool.QueryRow(ctx, query, id).Scan(&category.ID, &category.Name, &category.Href, &category.ImgSrc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select category: %w", err)
	}

	return &category, nil
}

func (r *Repository) CreateCategory(ctx context.Context, category domain.FeaturedCategory) error {
	query := `
		INSERT INTO featured_categories (id, name, href, img_src)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, category.ID, category.Name, category.Href, category.ImgSrc)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}

	return nil
}

func (r *Repository) UpdateCategory(ctx context.Context, category domain.FeaturedCategory) error {
	query := `
		UPDATE featured_categories
		SET name = $2, href = $3, img_src = $4
		WHERE id = $1
	`

	commandTag, err := r.pool.Exec(ctx, query, category.ID, category.Name, category.Href, category.ImgSrc)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "featured_categories", id)
}

func (r *Repository) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	query := `
		SELECT id, img_src, alt, href
		FROM banners
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()

	banners := []domain.Banner{}
	for rows.Next() {
		var banner domain.Banner
		if err := rows.Scan(&banner.ID, &banner.ImgSrc, &banner.Alt, &banner.Href); err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		banners = append(banners, banner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate banners: %w", err)
	}

	return banners, nil
}

func (r *Repository) CreateBanner(ctx context.Context, banner domain.Banner) error {
	query := `
		INSERT INTO banners (id, img_src, alt, href)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, banner.ID, banner.ImgSrc, banner.Alt, banner.Href)
	if err != nil {
		return fmt.Errorf("insert banner: %w", err)
	}

	return nil
}

func (r *Repository) DeleteBanner(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "banners", id)
}

func (r *Repository) deleteByID(ctx context.Context, table, id string) error {
	commandTag, err := r.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if commandTag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}
