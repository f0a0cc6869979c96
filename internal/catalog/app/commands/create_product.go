package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/dejobratic/vitrine/internal/catalog/domain"
	"github.com/dejobratic/vitrine/internal/catalog/ports"
	"github.com/shopspring/decimal"
)

type CreateProductCommand struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Discount    decimal.Decimal
	Tag         domain.Tag
	Images      []string
	Featured    bool
	Specs       map[string]string
}

type CommandHandler interface {
	Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error)
}

type CreateProductCommandHandler struct {
	repo ports.ProductRepository
}

func NewCreateProductCommandHandler(repo ports.ProductRepository) *CreateProductCommandHandler {
	return &CreateProductCommandHandler{repo: repo}
}

func (h *CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	productID, err := generateProductID()
	if err != nil {
		return nil, err
	}

	product := domain.Product{
		ID:          productID,
		Name:        cmd.Name,
		Description: cmd.Description,
		Category:    cmd.Category,
		Price:       cmd.Price,
		Discount:    cmd.Discount,
		Tag:         cmd.Tag,
		Images:      cmd.Images,
		Featured:    cmd.Featured,
		Specs:       cmd.Specs,
		Reviews:     []domain.Review{},
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return &product, nil
}

func generateProductID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate product id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
