package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dejobratic/vitrine/internal/catalog/app/commands"
	"github.com/dejobratic/vitrine/internal/catalog/domain"
	"github.com/dejobratic/vitrine/internal/catalog/ports"
)

type mockRepository struct {
	created   []domain.Product
	createErr error
}

func (m *mockRepository) Create(_ context.Context, product domain.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, product)
	return nil
}

func (m *mockRepository) GetByID(context.Context, string) (*domain.Product, error) {
	return nil, ports.ErrNotFound
}

func (m *mockRepository) List(context.Context, ports.ListFilter) ([]domain.Product, error) {
	return nil, nil
}

func (m *mockRepository) ListByCategory(context.Context, string) ([]domain.Product, error) {
	return nil, nil
}

func (m *mockRepository) ListFeatured(context.Context, int) ([]domain.Product, error) {
	return nil, nil
}

func (m *mockRepository) Update(context.Context, domain.Product) error { return nil }

func (m *mockRepository) Delete(context.Context, string) error { return nil }

func validCommand() commands.CreateProductCommand {
	return commands.CreateProductCommand{
		Name:     "Laptop",
		Category: "Laptops",
		Price:    decimal.NewFromInt(999),
		Images:   []string{"https://example.test/laptop.jpg"},
	}
}

func TestCreateProductHandle(t *testing.T) {
	repo := &mockRepository{}
	handler := commands.NewCreateProductCommandHandler(repo)

	product, err := handler.Handle(context.Background(), validCommand())
	if err != nil {
		t.Fatalf("Handle() failed: %v", err)
	}

	if product.ID == "" {
		t.Error("Handle() did not assign a product id")
	}
	if product.Reviews == nil {
		t.Error("Handle() should initialize reviews to an empty slice")
	}
	if len(repo.created) != 1 {
		t.Fatalf("repository received %d products, want 1", len(repo.created))
	}
	if repo.created[0].ID != product.ID {
		t.Errorf("stored id = %q, want %q", repo.created[0].ID, product.ID)
	}
}

func TestCreateProductAssignsUniqueIDs(t *testing.T) {
	repo := &mockRepository{}
	handler := commands.NewCreateProductCommandHandler(repo)

	first, err := handler.Handle(context.Background(), validCommand())
	if err != nil {
		t.Fatalf("Handle() failed: %v", err)
	}
	second, err := handler.Handle(context.Background(), validCommand())
	if err != nil {
		t.Fatalf("Handle() failed: %v", err)
	}

	if first.ID == second.ID {
		t.Errorf("both products got id %q", first.ID)
	}
}

func TestCreateProductValidation(t *testing.T) {
	repo := &mockRepository{}
	handler := commands.NewCreateProductCommandHandler(repo)

	cmd := validCommand()
	cmd.Images = nil

	if _, err := handler.Handle(context.Background(), cmd); err == nil {
		t.Fatal("Handle() succeeded with no images")
	}
	if len(repo.created) != 0 {
		t.Error("invalid product must not reach the repository")
	}
}

func TestCreateProductRepositoryError(t *testing.T) {
	wantErr := errors.New("connection lost")
	repo := &mockRepository{createErr: wantErr}
	handler := commands.NewCreateProductCommandHandler(repo)

	if _, err := handler.Handle(context.Background(), validCommand()); !errors.Is(err, wantErr) {
		t.Errorf("Handle() error = %v, want %v", err, wantErr)
	}
}
