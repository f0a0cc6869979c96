package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dejobratic/vitrine/internal/cart/domain"
	catalog "github.com/dejobratic/vitrine/internal/catalog/domain"
)

func product(id string, price int64) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "product " + id,
		Category: "Laptops",
		Price:    decimal.NewFromInt(price),
		Images:   []string{"https://example.com/" + id + ".jpg"},
	}
}

func assertTotals(t *testing.T, cart *domain.Cart, wantCount int, wantTotal int64) {
	t.Helper()

	if got := cart.Count(); got != wantCount {
		t.Errorf("expected count %d, got %d", wantCount, got)
	}

	want := decimal.NewFromInt(wantTotal)
	if got := cart.Total(); !got.Equal(want) {
		t.Errorf("expected total %s, got %s", want, got)
	}

	sum := 0
	for _, item := range cart.Items {
		sum += item.Quantity
	}
	if sum != cart.Count() {
		t.Errorf("count %d does not match sum of quantities %d", cart.Count(), sum)
	}
}

func TestAdd(t *testing.T) {
	t.Run("adds new product with quantity one", func(t *testing.T) {
		cart := domain.New()

		cart.Add(product("p1", 100))

		if len(cart.Items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(cart.Items))
		}
		if cart.Items[0].Quantity != 1 {
			t.Errorf("expected quantity 1, got %d", cart.Items[0].Quantity)
		}
		assertTotals(t, cart, 1, 100)
	})

	t.Run("adding the same product twice merges into one line", func(t *testing.T) {
		cart := domain.New()

		cart.Add(product("p1", 100))
		cart.Add(product("p1", 100))

		if len(cart.Items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(cart.Items))
		}
		if cart.Items[0].Quantity != 2 {
			t.Errorf("expected quantity 2, got %d", cart.Items[0].Quantity)
		}
		assertTotals(t, cart, 2, 200)
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		cart := domain.New()

		cart.Add(product("p2", 250))
		cart.Add(product("p1", 100))
		cart.Add(product("p2", 250))

		if cart.Items[0].Product.ID != "p2" || cart.Items[1].Product.ID != "p1" {
			t.Errorf("expected order [p2 p1], got [%s %s]", cart.Items[0].Product.ID, cart.Items[1].Product.ID)
		}
	})

	t.Run("deep-copies the product", func(t *testing.T) {
		cart := domain.New()
		original := product("p1", 100)
		original.Specs = map[string]string{"CPU": "M3"}

		cart.Add(original)
		original.Images[0] = "mutated"
		original.Specs["CPU"] = "mutated"

		stored := cart.Items[0].Product
		if stored.Images[0] == "mutated" {
			t.Error("cart aliases the caller's images slice")
		}
		if stored.Specs["CPU"] == "mutated" {
			t.Error("cart aliases the caller's specs map")
		}
	})
}

func TestRemove(t *testing.T) {
	t.Run("removes the line completely", func(t *testing.T) {
		cart := domain.New()
		cart.Add(product("p1", 100))
		cart.Add(product("p1", 100))
		cart.Add(product("p2", 250))

		removed := cart.Remove("p1")

		if !removed {
			t.Error("expected Remove to report a removal")
		}
		for _, item := range cart.Items {
			if item.Product.ID == "p1" {
				t.Error("expected p1 to be gone")
			}
		}
		assertTotals(t, cart, 1, 250)
	})

	t.Run("removing the only item empties the cart", func(t *testing.T) {
		cart := domain.New()
		cart.Add(product("p1", 100))

		cart.Remove("p1")

		if !cart.IsEmpty() {
			t.Error("expected cart to be empty")
		}
		assertTotals(t, cart, 0, 0)
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		cart := domain.New()
		cart.Add(product("p1", 100))

		removed := cart.Remove("missing")

		if removed {
			t.Error("expected no removal to be reported")
		}
		assertTotals(t, cart, 1, 100)
	})
}

func TestSetQuantity(t *testing.T) {
	t.Run("sets an absolute quantity", func(t *testing.T) {
		cart := domain.New()
		cart.Add(product("p1", 100))
		cart.Add(product("p1", 100))

		cart.SetQuantity("p1", 5)

		if cart.Items[0].Quantity != 5 {
			t.Errorf("expected quantity 5, got %d", cart.Items[0].Quantity)
		}
		assertTotals(t, cart, 5, 500)
	})

	t.Run("zero quantity removes the line", func(t *testing.T) {
		cart := domain.New()
		cart.Add(product("p1", 100))

		cart.SetQuantity("p1", 0)

		if !cart.IsEmpty() {
			t.Error("expected cart to be empty")
		}
	})

	t.Run("negative quantity removes the line", func(t *testing.T) {
		cart := domain.New()
		cart.Add(product("p1", 100))

		cart.SetQuantity("p1", -3)

		if !cart.IsEmpty() {
			t.Error("expected cart to be empty")
		}
		for _, item := range cart.Items {
			if item.Quantity <= 0 {
				t.Error("cart must never hold a non-positive quantity")
			}
		}
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		cart := domain.New()
		cart.Add(product("p1", 100))

		updated := cart.SetQuantity("missing", 3)

		if updated {
			t.Error("expected no update to be reported")
		}
		assertTotals(t, cart, 1, 100)
	})
}

func TestClear(t *testing.T) {
	cart := domain.New()
	cart.Add(product("p1", 100))
	cart.Add(product("p2", 250))

	cart.Clear()

	if !cart.IsEmpty() {
		t.Error("expected cart to be empty")
	}
	assertTotals(t, cart, 0, 0)
}

func TestMixedCartTotal(t *testing.T) {
	cart := domain.New()

	cart.Add(product("p1", 100))
	cart.Add(product("p2", 250))
	cart.SetQuantity("p1", 3)

	assertTotals(t, cart, 4, 550)
}

func TestTotalUsesStoredPriceNotDiscount(t *testing.T) {
	discounted := product("p1", 100)
	discounted.Discount = decimal.NewFromFloat(0.5)

	cart := domain.New()
	cart.Add(discounted)
	cart.Add(discounted)

	// The stored price is already discounted; the fraction must not be reapplied.
	assertTotals(t, cart, 2, 200)
}
