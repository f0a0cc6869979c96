package domain

import (
	"github.com/shopspring/decimal"

	catalog "github.com/dejobratic/vitrine/internal/catalog/domain"
)

// CartItem pairs a product with the requested quantity. The product is an
// explicit copy, never a reference into the shared catalog record.
type CartItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal is the line total: price times quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is an ordered collection of line items, at most one per product id.
// Insertion order is display order. Count and Total are recomputed on every
// read, never stored.
type Cart struct {
	Items []CartItem `json:"items"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{Items: []CartItem{}}
}

// Add merges a product into the cart: an already-present product has its
// quantity incremented by one, otherwise a new line with quantity 1 is
// appended. The product is deep-copied so later catalog edits cannot leak
// into the cart. Add never fails.
func (c *Cart) Add(product catalog.Product) {
	for i := range c.Items {
		if c.Items[i].Product.ID == product.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{Product: product.Clone(), Quantity: 1})
}

// Remove deletes the line for the given product id. Removing an absent id
// is a silent no-op: a stale UI row must not become an error.
func (c *Cart) Remove(productID string) bool {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// SetQuantity sets the line quantity to an absolute value. A quantity of
// zero or less removes the line, so the cart can never hold a non-positive
// quantity. Absent ids are a no-op.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	if quantity <= 0 {
		return c.Remove(productID)
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Count is the total number of articles across all lines.
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Total is the sum of line subtotals. Prices are taken as stored on each
// line, already discounted; the discount fraction is display-only.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Clone returns a deep copy of the cart.
func (c *Cart) Clone() *Cart {
	clone := New()
	clone.Items = make([]CartItem, len(c.Items))
	for i, item := range c.Items {
		clone.Items[i] = CartItem{Product: item.Product.Clone(), Quantity: item.Quantity}
	}
	return clone
}
