//go:build integration

package postgres_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	testpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dejobratic/vitrine/internal/database"
	"github.com/dejobratic/vitrine/internal/idempotency"
	"github.com/dejobratic/vitrine/internal/idempotency/postgres"
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

// findProjectRoot walks up from the test's working directory until it
// finds go.mod, so the migrations directory resolves regardless of
// which package the test runs from.
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

func TestStoreSaveAndGet(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)
	ctx := context.Background()

	token := "test-form-token-1"
	submission := idempotency.Submission{ResourceID: "product-1"}

	err := store.Save(ctx, token, submission)
	if err != nil {
		t.Fatalf("failed to save form token: %v", err)
	}

	retrieved, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("failed to get form token: %v", err)
	}

	if retrieved == nil {
		t.Fatal("expected submission, got nil")
	}

	if retrieved.ResourceID != submission.ResourceID {
		t.Errorf("expected resource ID %s, got %s", submission.ResourceID, retrieved.ResourceID)
	}
}

func TestStoreGet_NotFound(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)
	ctx := context.Background()

	retrieved, err := store.Get(ctx, "nonexistent-token")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if retrieved != nil {
		t.Errorf("expected nil submission, got %v", retrieved)
	}
}

func TestStoreSave_Conflict(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)
	ctx := context.Background()

	token := "test-form-token-conflict"

	if err := store.Save(ctx, token, idempotency.Submission{ResourceID: "product-1"}); err != nil {
		t.Fatalf("failed to save first submission: %v", err)
	}

	if err := store.Save(ctx, token, idempotency.Submission{ResourceID: "product-2"}); err != nil {
		t.Fatalf("failed to save second submission (conflict): %v", err)
	}

	retrieved, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("failed to get submission: %v", err)
	}

	if retrieved.ResourceID != "product-1" {
		t.Errorf("expected first submission to be preserved, got resource ID %s", retrieved.ResourceID)
	}
}
