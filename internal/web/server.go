// Package web renders the storefront and the admin back office over the
// cart, catalog, content and upload services.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	cartapp "github.com/dejobratic/vitrine/internal/cart/app"
	catalogapp "github.com/dejobratic/vitrine/internal/catalog/app"
	contentapp "github.com/dejobratic/vitrine/internal/content/app"
	"github.com/dejobratic/vitrine/internal/idempotency"
	"github.com/dejobratic/vitrine/internal/uploads"
)

// Server wires HTTP routes to the application services.
type Server struct {
	router    *mux.Router
	templates *templates
	logger    *slog.Logger

	carts   *cartapp.Service
	catalog *catalogapp.Service
	content *contentapp.Service
	uploads *uploads.Service
	tokens  idempotency.Store

	uploadOptions uploads.Options
}

// Config carries the server's dependencies and settings.
type Config struct {
	Carts   *cartapp.Service
	Catalog *catalogapp.Service
	Content *contentapp.Service
	Uploads *uploads.Service
	Tokens  idempotency.Store

	Logger     *slog.Logger
	Metrics    *Metrics
	SessionTTL time.Duration

	UploadOptions uploads.Options
}

// NewServer builds the router and parses templates.
func NewServer(cfg Config) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:        mux.NewRouter(),
		templates:     tmpl,
		logger:        cfg.Logger,
		carts:         cfg.Carts,
		catalog:       cfg.Catalog,
		content:       cfg.Content,
		uploads:       cfg.Uploads,
		tokens:        cfg.Tokens,
		uploadOptions: cfg.UploadOptions,
	}

	s.router.Use(WithRecovery(cfg.Logger))
	s.router.Use(WithLogging(cfg.Logger))
	s.router.Use(WithMetrics(cfg.Metrics))
	s.router.Use(WithSession(cfg.SessionTTL))

	// Storefront.
	s.router.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	s.router.HandleFunc("/category/{slug}", s.handleCategory).Methods(http.MethodGet)
	s.router.HandleFunc("/products/{id}", s.handleProduct).Methods(http.MethodGet)

	// Cart.
	s.router.HandleFunc("/cart", s.handleCartPage).Methods(http.MethodGet)
	s.router.HandleFunc("/cart/items", s.handleAddToCart).Methods(http.MethodPost)
	s.router.HandleFunc("/cart/items/{id}/update", s.handleUpdateQuantity).Methods(http.MethodPost)
	s.router.HandleFunc("/cart/items/{id}/remove", s.handleRemoveFromCart).Methods(http.MethodPost)
	s.router.HandleFunc("/cart/clear", s.handleClearCart).Methods(http.MethodPost)
	s.router.HandleFunc("/checkout", s.handleCheckout).Methods(http.MethodPost)

	// Admin.
	s.router.HandleFunc("/admin", s.handleAdminHome).Methods(http.MethodGet)
	s.router.HandleFunc("/admin/products", s.handleAdminProducts).Methods(http.MethodGet)
	s.router.HandleFunc("/admin/products/new", s.handleAdminProductNew).Methods(http.MethodGet)
	s.router.HandleFunc("/admin/products", s.handleAdminProductCreate).Methods(http.MethodPost)
	s.router.HandleFunc("/admin/products/{id}/edit", s.handleAdminProductEdit).Methods(http.MethodGet)
	s.router.HandleFunc("/admin/products/{id}", s.handleAdminProductUpdate).Methods(http.MethodPost)
	s.router.HandleFunc("/admin/products/{id}/delete", s.handleAdminProductDelete).Methods(http.MethodPost)

	s.router.HandleFunc("/admin/homepage", s.handleAdminHomepage).Methods(http.MethodGet)
	s.router.HandleFunc("/admin/homepage/slides/new", s.handleAdminSlideNew).Methods(http.MethodGet)
	s.router.HandleFunc("/admin/homepage/slides", s.handleAdminSlideCreate).Methods(http.MethodPost)
	s.router.HandleFunc("/admin/homepage/slides/{id}/edit", s.handleAdminSlideEdit).Methods(http.MethodGet)
	s.router.HandleFunc("/admin/homepage/slides/{id}", s.handleAdminSlideUpdate).Methods(http.MethodPost)
	s.router.HandleFunc("/admin/homepage/slides/{id}/delete", s.handleAdminSlideDelete).Methods(http.MethodPost)

	s.router.HandleFunc("/admin/homepage/categories/new", s.handleAdminCategoryNew).Methods(http.MethodGet)
	s.router.HandleFunc("/admin/homepage/categories", s.handleAdminCategoryCreate).Methods(http.MethodPost)
	s.router.HandleFunc("/admin/homepage/categories/{id}/edit", s.handleAdminCategoryEdit).Methods(http.MethodGet)
	s.router.HandleFunc("/admin/homepage/categories/{id}", s.handleAdminCategoryUpdate).Methods(http.MethodPost)
	s.router.HandleFunc("/admin/homepage/categories/{id}/delete", s.handleAdminCategoryDelete).Methods(http.MethodPost)

	s.router.HandleFunc("/admin/homepage/banners/{id}/delete", s.handleAdminBannerDelete).Methods(http.MethodPost)

	s.router.HandleFunc("/admin/uploads", s.handleAdminUpload).Methods(http.MethodPost)
	s.router.HandleFunc("/admin/uploads/delete", s.handleAdminUploadDelete).Methods(http.MethodPost)

	s.router.HandleFunc("/admin/seed", s.handleAdminSeed).Methods(http.MethodPost)

	s.router.PathPrefix("/static/").Handler(staticHandler()).Methods(http.MethodGet)

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// page is the view data shared by every rendered page.
type page struct {
	Title     string
	CartCount int
}

// pageData resolves the layout fields; a cart store failure degrades to a
// zero badge rather than failing the page.
func (s *Server) pageData(r *http.Request, title string) page {
	count := 0
	if cart, err := s.carts.GetCart(r.Context(), SessionID(r.Context())); err == nil {
		count = cart.Count()
	}
	return page{Title: title, CartCount: count}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, template string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.render(w, template, data); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to render template", "error", err, "template", template)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
