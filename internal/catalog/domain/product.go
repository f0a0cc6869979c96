package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Tag is an optional promotional label attached to a product.
type Tag string

const (
	TagNone    Tag = ""
	TagPromo   Tag = "promo"
	TagNouveau Tag = "nouveau"
)

// Review is a single customer review on a product.
type Review struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Product is a catalog entry as shown on the storefront. Price is the
// effective selling price; when Discount is set it is already applied.
type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Price       decimal.Decimal   `json:"price"`
	Discount    decimal.Decimal   `json:"discount,omitempty"`
	Tag         Tag               `json:"tag,omitempty"`
	Images      []string          `json:"images"`
	Featured    bool              `json:"featured,omitempty"`
	Specs       map[string]string `json:"specs,omitempty"`
	Reviews     []Review          `json:"reviews,omitempty"`
}

// Validate ensures the product adheres to catalog constraints.
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return errors.New("category is required")
	}
	if p.Price.IsNegative() {
		return errors.New("price must not be negative")
	}
	if p.Discount.IsNegative() || p.Discount.GreaterThan(decimal.NewFromInt(1)) {
		return errors.New("discount must be a fraction between 0 and 1")
	}
	if len(p.Images) == 0 {
		return errors.New("at least one image is required")
	}
	switch p.Tag {
	case TagNone, TagPromo, TagNouveau:
	default:
		return errors.New("unknown tag")
	}
	for _, review := range p.Reviews {
		if review.Rating < 1 || review.Rating > 5 {
			return errors.New("review rating must be between 1 and 5")
		}
	}
	return nil
}

// HasDiscount reports whether the product is marked down.
func (p Product) HasDiscount() bool {
	return p.Discount.IsPositive()
}

// OriginalPrice derives the pre-markdown price from the selling price.
// Convention: Price is the discounted price, original = Price * (1 + Discount).
func (p Product) OriginalPrice() decimal.Decimal {
	if !p.HasDiscount() {
		return p.Price
	}
	return p.Price.Mul(decimal.NewFromInt(1).Add(p.Discount))
}

// Clone returns a deep copy so callers can hold a product without
// aliasing the catalog's slices and maps.
func (p Product) Clone() Product {
	clone := p
	if p.Images != nil {
		clone.Images = make([]string, len(p.Images))
		copy(clone.Images, p.Images)
	}
	if p.Specs != nil {
		clone.Specs = make(map[string]string, len(p.Specs))
		for name, value := range p.Specs {
			clone.Specs[name] = value
		}
	}
	if p.Reviews != nil {
		clone.Reviews = make([]Review, len(p.Reviews))
		copy(clone.Reviews, p.Reviews)
	}
	return clone
}
