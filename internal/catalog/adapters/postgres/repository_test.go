//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	testpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dejobratic/vitrine/internal/catalog/adapters/postgres"
	"github.com/dejobratic/vitrine/internal/catalog/domain"
	"github.com/dejobratic/vitrine/internal/catalog/ports"
	"github.com/dejobratic/vitrine/internal/database"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := testpostgres.Run(ctx,
		"postgres:16-alpine",
		testpostgres.WithDatabase("test"),
		testpostgres.WithUsername("test"),
		testpostgres.WithPassword("test"),
		testpostgres.BasicWaitStrategies(),
		testpostgres.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").WithOccurrence(2)),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	migrationsPath := filepath.Join(findProjectRoot(t), "migrations")
	if err := database.RunMigrations(connStr, migrationsPath); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	pool, err := database.NewPool(ctx, connStr)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("go.mod not found in any parent directory")
		}
		dir = parent
	}
}

func testProduct(id string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "Laptop " + id,
		Category: "Laptops",
		Price:    decimal.NewFromInt(999),
		Discount: decimal.NewFromFloat(0.10),
		Tag:      domain.TagPromo,
		Images:   []string{"https://example.test/" + id + ".jpg"},
		Featured: true,
		Specs:    map[string]string{"RAM": "16GB"},
		Reviews:  []domain.Review{{Rating: 5, Text: "excellent", Author: "client"}},
	}
}

func TestRepositoryCreateAndGet(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	product := testProduct("pg-1")
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, "pg-1")
	if err != nil {
		t.Fatalf("failed to get product: %v", err)
	}

	if retrieved.Name != product.Name {
		t.Errorf("expected name %s, got %s", product.Name, retrieved.Name)
	}
	if !retrieved.Price.Equal(product.Price) {
		t.Errorf("expected price %s, got %s", product.Price, retrieved.Price)
	}
	if retrieved.Tag != domain.TagPromo {
		t.Errorf("expected tag %s, got %s", domain.TagPromo, retrieved.Tag)
	}
	if len(retrieved.Images) != 1 || retrieved.Images[0] != product.Images[0] {
		t.Errorf("expected images %v, got %v", product.Images, retrieved.Images)
	}
	if retrieved.Specs["RAM"] != "16GB" {
		t.Errorf("expected specs to round-trip, got %v", retrieved.Specs)
	}
	if len(retrieved.Reviews) != 1 || retrieved.Reviews[0].Author != "client" {
		t.Errorf("expected reviews to round-trip, got %v", retrieved.Reviews)
	}
}

func TestRepositoryCreate_Duplicate(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	if err := repo.Create(ctx, testProduct("pg-dup")); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	err := repo.Create(ctx, testProduct("pg-dup"))
	if !errors.Is(err, ports.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRepositoryGet_NotFound(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepositoryListByCategory_IgnoresCase(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	if err := repo.Create(ctx, testProduct("pg-cat-1")); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	other := testProduct("pg-cat-2")
	other.Category = "Smartphones"
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	products, err := repo.ListByCategory(ctx, "LAPTOPS")
	if err != nil {
		t.Fatalf("failed to list by category: %v", err)
	}
	if len(products) != 1 || products[0].ID != "pg-cat-1" {
		t.Errorf("expected only the laptop, got %v", products)
	}
}

func TestRepositoryUpdateAndDelete(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	product := testProduct("pg-upd")
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	product.Name = "Laptop renamed"
	product.Featured = false
	if err := repo.Update(ctx, product); err != nil {
		t.Fatalf("failed to update product: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, "pg-upd")
	if err != nil {
		t.Fatalf("failed to get product: %v", err)
	}
	if retrieved.Name != "Laptop renamed" || retrieved.Featured {
		t.Errorf("update did not apply: %+v", retrieved)
	}

	missing := testProduct("pg-missing")
	if err := repo.Update(ctx, missing); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("expected ErrNotFound on update of missing product, got %v", err)
	}

	if err := repo.Delete(ctx, "pg-upd"); err != nil {
		t.Fatalf("failed to delete product: %v", err)
	}
	if err := repo.Delete(ctx, "pg-upd"); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
