package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	cartdomain "github.com/dejobratic/vitrine/internal/cart/domain"
	catalogports "github.com/dejobratic/vitrine/internal/catalog/ports"
)

type cartView struct {
	page
	Cart *cartdomain.Cart
}

func (s *Server) handleCartPage(w http.ResponseWriter, r *http.Request) {
	cart, err := s.carts.GetCart(r.Context(), SessionID(r.Context()))
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	view := cartView{page: s.pageData(r, "Votre panier"), Cart: cart}
	view.CartCount = cart.Count()
	s.render(w, r, http.StatusOK, "cart.html", view)
}

// handleAddToCart resolves the product from the catalog and hands it whole
// to the cart service.
func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	productID := r.PostFormValue("product_id")
	if productID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if _, err := s.carts.AddToCart(ctx, SessionID(ctx), *product); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// handleUpdateQuantity sets an absolute quantity for a line. Non-integer
// input is rejected deterministically; the cart stays untouched.
func (s *Server) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	quantity, err := strconv.Atoi(r.PostFormValue("quantity"))
	if err != nil {
		http.Error(w, "quantity must be an integer", http.StatusUnprocessableEntity)
		return
	}

	ctx := r.Context()
	if _, err := s.carts.UpdateQuantity(ctx, SessionID(ctx), mux.Vars(r)["id"], quantity); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.carts.ClearCart(ctx, SessionID(ctx)); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (s *Server) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, err := s.carts.RemoveFromCart(ctx, SessionID(ctx), mux.Vars(r)["id"]); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// handleCheckout is a deliberate stub: payment is not implemented, and the
// response says so explicitly instead of silently succeeding.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	view := struct{ page }{s.pageData(r, "Paiement non disponible")}
	s.render(w, r, http.StatusNotImplemented, "checkout_unavailable.html", view)
}
