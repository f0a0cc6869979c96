package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dejobratic/vitrine/internal/catalog/domain"
	"github.com/dejobratic/vitrine/internal/catalog/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const productColumns = `id, name, description, category, price, discount, tag, images, featured, specs, reviews`

func (r *Repository) Create(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	images, specs, reviews, err := marshalDocuments(product)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Category,
		product.Price,
		product.Discount,
		string(product.Tag),
		images,
		product.Featured,
		specs,
		reviews,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ports.ErrAlreadyExists
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select product: %w", err)
	}

	return product, nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Product, error) {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var (
		rows pgx.Rows
		err  error
	)
	if filter.Category != nil {
		query := `
			SELECT ` + productColumns + `
			FROM products
			WHERE lower(category) = lower($1)
			ORDER BY name
			LIMIT $2 OFFSET $3
		`
		rows, err = r.pool.Query(ctx, query, *filter.Category, pageSize, offset)
	} else {
		query := `
			SELECT ` + productColumns + `
			FROM products
			ORDER BY name
			LIMIT $1 OFFSET $2
		`
		rows, err = r.pool.Query(ctx, query, pageSize, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *Repository) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE lower(category) = lower($1)
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *Repository) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE featured
		ORDER BY name
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *Repository) Update(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4, price = $5, discount = $6,
		    tag = $7, images = $8, featured = $9, specs = $10, reviews = $11
		WHERE id = $1
	`

	images, specs, reviews, err := marshalDocuments(product)
	if err != nil {
		return err
	}

	commandTag, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Category,
		product.Price,
		product.Discount,
		string(product.Tag),
		images,
		product.Featured,
		specs,
		reviews,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`

	commandTag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}

	return nil
}

func marshalDocuments(product domain.Product) (images, specs, reviews []byte, err error) {
	images, err = json.Marshal(product.Images)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal images: %w", err)
	}
	specs, err = json.Marshal(product.Specs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal specs: %w", err)
	}
	reviews, err = json.Marshal(product.Reviews)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal reviews: %w", err)
	}
	return images, specs, reviews, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		product domain.Product
		tag     string
		images  []byte
		specs   []byte
		reviews []byte
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Category,
		&product.Price,
		&product.Discount,
		&tag,
		&images,
		&product.Featured,
		&specs,
		&reviews,
	)
	if err != nil {
		return nil, err
	}

	product.Tag = domain.Tag(tag)
	if err := json.Unmarshal(images, &product.Images); err != nil {
		return nil, fmt.Errorf("unmarshal images: %w", err)
	}
	if err := json.Unmarshal(specs, &product.Specs); err != nil {
		return nil, fmt.Errorf("unmarshal specs: %w", err)
	}
	if err := json.Unmarshal(reviews, &product.Reviews); err != nil {
		return nil, fmt.Errorf("unmarshal reviews: %w", err)
	}

	return &product, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
