package web

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	catalogdomain "github.com/dejobratic/vitrine/internal/catalog/domain"
	catalogports "github.com/dejobratic/vitrine/internal/catalog/ports"
	contentdomain "github.com/dejobratic/vitrine/internal/content/domain"
)

const recommendationLimit = 4

type homeView struct {
	page
	Slides     []contentdomain.HeroSlide
	Categories []contentdomain.FeaturedCategory
	Banners    []contentdomain.Banner
	Products   []catalogdomain.Product
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view := homeView{page: s.pageData(r, "Accueil")}

	var err error
	if view.Slides, err = s.content.Slides(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to load slides", "error", err)
	}
	if view.Categories, err = s.content.Categories(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to load featured categories", "error", err)
	}
	if view.Banners, err = s.content.Banners(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to load banners", "error", err)
	}
	if view.Products, err = s.catalog.FeaturedProducts(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to load featured products", "error", err)
	}

	s.render(w, r, http.StatusOK, "home.html", view)
}

type categoryView struct {
	page
	Category string
	Products []catalogdomain.Product
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	products, err := s.catalog.ProductsByCategory(r.Context(), slug)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	view := categoryView{
		page:     s.pageData(r, slug),
		Category: slug,
		Products: products,
	}
	s.render(w, r, http.StatusOK, "category.html", view)
}

type productView struct {
	page
	Product         *catalogdomain.Product
	Recommendations []catalogdomain.Product
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	product, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	recommendations, err := s.catalog.Recommendations(ctx, id, recommendationLimit)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load recommendations", "error", err, "product_id", id)
	}

	view := productView{
		page:            s.pageData(r, product.Name),
		Product:         product,
		Recommendations: recommendations,
	}
	s.render(w, r, http.StatusOK, "product.html", view)
}
