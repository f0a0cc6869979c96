package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dejobratic/vitrine/internal/catalog/domain"
)

func validProduct() domain.Product {
	return domain.Product{
		ID:       "p1",
		Name:     "Laptop",
		Category: "Laptops",
		Price:    decimal.NewFromInt(1000),
		Images:   []string{"https://example.test/laptop.jpg"},
	}
}

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Product)
		wantErr bool
	}{
		{
			name:   "valid product",
			mutate: func(*domain.Product) {},
		},
		{
			name:    "missing id",
			mutate:  func(p *domain.Product) { p.ID = "" },
			wantErr: true,
		},
		{
			name:    "missing name",
			mutate:  func(p *domain.Product) { p.Name = "  " },
			wantErr: true,
		},
		{
			name:    "missing category",
			mutate:  func(p *domain.Product) { p.Category = "" },
			wantErr: true,
		},
		{
			name:    "negative price",
			mutate:  func(p *domain.Product) { p.Price = decimal.NewFromInt(-1) },
			wantErr: true,
		},
		{
			name:    "discount above one",
			mutate:  func(p *domain.Product) { p.Discount = decimal.NewFromFloat(1.5) },
			wantErr: true,
		},
		{
			name:    "no images",
			mutate:  func(p *domain.Product) { p.Images = nil },
			wantErr: true,
		},
		{
			name:    "unknown tag",
			mutate:  func(p *domain.Product) { p.Tag = "soldes" },
			wantErr: true,
		},
		{
			name:   "known tag",
			mutate: func(p *domain.Product) { p.Tag = domain.TagPromo },
		},
		{
			name: "review rating out of range",
			mutate: func(p *domain.Product) {
				p.Reviews = []domain.Review{{Rating: 6, Text: "trop bien", Author: "x"}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := validProduct()
			tt.mutate(&product)

			err := product.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestProductOriginalPrice(t *testing.T) {
	product := validProduct()
	product.Price = decimal.NewFromInt(2699)
	product.Discount = decimal.NewFromFloat(0.20)

	want := decimal.NewFromFloat(3238.8)
	if got := product.OriginalPrice(); !got.Equal(want) {
		t.Errorf("OriginalPrice() = %s, want %s", got, want)
	}
	if !product.HasDiscount() {
		t.Error("HasDiscount() = false, want true")
	}
}

func TestProductOriginalPriceWithoutDiscount(t *testing.T) {
	product := validProduct()

	if got := product.OriginalPrice(); !got.Equal(product.Price) {
		t.Errorf("OriginalPrice() = %s, want selling price %s", got, product.Price)
	}
	if product.HasDiscount() {
		t.Error("HasDiscount() = true, want false")
	}
}

func TestProductClone(t *testing.T) {
	product := validProduct()
	product.Specs = map[string]string{"RAM": "16GB"}
	product.Reviews = []domain.Review{{Rating: 5, Text: "parfait", Author: "a"}}

	clone := product.Clone()
	clone.Images[0] = "changed"
	clone.Specs["RAM"] = "32GB"
	clone.Reviews[0].Rating = 1

	if product.Images[0] == "changed" {
		t.Error("Clone() shares the images slice")
	}
	if product.Specs["RAM"] != "16GB" {
		t.Error("Clone() shares the specs map")
	}
	if product.Reviews[0].Rating != 5 {
		t.Error("Clone() shares the reviews slice")
	}
}
