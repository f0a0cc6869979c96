package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/dejobratic/vitrine/internal/catalog/app/commands"
	catalogdomain "github.com/dejobratic/vitrine/internal/catalog/domain"
	catalogports "github.com/dejobratic/vitrine/internal/catalog/ports"
	contentdomain "github.com/dejobratic/vitrine/internal/content/domain"
	contentports "github.com/dejobratic/vitrine/internal/content/ports"
	"github.com/dejobratic/vitrine/internal/idempotency"
	"github.com/dejobratic/vitrine/internal/uploads"
)

const maxUploadMemory = 32 << 20

const adminPageSize = 100

func (s *Server) handleAdminHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

type adminProductsView struct {
	page
	Products []catalogdomain.Product
}

func (s *Server) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.ListProducts(r.Context(), catalogports.ListFilter{Page: 1, PageSize: adminPageSize})
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	view := adminProductsView{page: s.pageData(r, "Produits"), Products: products}
	s.render(w, r, http.StatusOK, "admin_products.html", view)
}

type productFormView struct {
	page
	Product   catalogdomain.Product
	Action    string
	FormToken string
	Error     string
}

func (s *Server) handleAdminProductNew(w http.ResponseWriter, r *http.Request) {
	view := productFormView{
		page:      s.pageData(r, "Nouveau produit"),
		Action:    "/admin/products",
		FormToken: uuid.NewString(),
	}
	s.render(w, r, http.StatusOK, "admin_product_form.html", view)
}

// handleAdminProductCreate consumes the form token first: a replayed POST is
// redirected to the product created by the original submission instead of
// creating a duplicate.
func (s *Server) handleAdminProductCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	token := r.PostFormValue("form_token")
	if replayed, resourceID := s.consumedToken(r, token); replayed {
		http.Redirect(w, r, "/admin/products/"+resourceID+"/edit", http.StatusSeeOther)
		return
	}

	input, err := parseProductForm(r)
	if err != nil {
		s.renderProductForm(w, r, catalogdomain.Product{}, "/admin/products", token, err)
		return
	}

	product, err := s.catalog.CreateProduct(ctx, commands.CreateProductCommand{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Discount:    input.Discount,
		Tag:         input.Tag,
		Images:      input.Images,
		Featured:    input.Featured,
		Specs:       map[string]string{},
	})
	if err != nil {
		s.renderProductForm(w, r, catalogdomain.Product{}, "/admin/products", token, err)
		return
	}

	if token != "" {
		if err := s.tokens.Save(ctx, token, idempotency.Submission{ResourceID: product.ID}); err != nil {
			s.logger.WarnContext(ctx, "failed to record form token", "error", err)
		}
	}

	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (s *Server) handleAdminProductEdit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	product, err := s.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	view := productFormView{
		page:    s.pageData(r, "Modifier le produit"),
		Product: *product,
		Action:  "/admin/products/" + id,
	}
	s.render(w, r, http.StatusOK, "admin_product_form.html", view)
}

func (s *Server) handleAdminProductUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	id := mux.Vars(r)["id"]
	existing, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	input, err := parseProductForm(r)
	if err != nil {
		s.renderProductForm(w, r, *existing, "/admin/products/"+id, "", err)
		return
	}

	// Specs and reviews are not editable from this form; keep the stored ones.
	updated := *existing
	updated.Name = input.Name
	updated.Description = input.Description
	updated.Category = input.Category
	updated.Price = input.Price
	updated.Discount = input.Discount
	updated.Tag = input.Tag
	updated.Images = input.Images
	updated.Featured = input.Featured

	if err := s.catalog.UpdateProduct(ctx, updated); err != nil {
		s.renderProductForm(w, r, updated, "/admin/products/"+id, "", err)
		return
	}

	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (s *Server) handleAdminProductDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil && !errors.Is(err, catalogports.ErrNotFound) {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (s *Server) renderProductForm(w http.ResponseWriter, r *http.Request, product catalogdomain.Product, action, token string, formErr error) {
	view := productFormView{
		page:      s.pageData(r, "Produit"),
		Product:   product,
		Action:    action,
		FormToken: token,
		Error:     formErr.Error(),
	}
	s.render(w, r, http.StatusUnprocessableEntity, "admin_product_form.html", view)
}

// productFormInput holds the editable fields parsed from the admin form.
type productFormInput struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Discount    decimal.Decimal
	Tag         catalogdomain.Tag
	Images      []string
	Featured    bool
}

func parseProductForm(r *http.Request) (productFormInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(r.PostFormValue("price")))
	if err != nil {
		return productFormInput{}, fmt.Errorf("invalid price: %w", err)
	}

	discount := decimal.Zero
	if raw := strings.TrimSpace(r.PostFormValue("discount")); raw != "" {
		discount, err = decimal.NewFromString(raw)
		if err != nil {
			return productFormInput{}, fmt.Errorf("invalid discount: %w", err)
		}
	}

	return productFormInput{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: r.PostFormValue("description"),
		Category:    strings.TrimSpace(r.PostFormValue("category")),
		Price:       price,
		Discount:    discount,
		Tag:         catalogdomain.Tag(r.PostFormValue("tag")),
		Images:      splitLines(r.PostFormValue("images")),
		Featured:    r.PostFormValue("featured") != "",
	}, nil
}

func splitLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

type adminHomepageView struct {
	page
	Slides     []contentdomain.HeroSlide
	Categories []contentdomain.FeaturedCategory
	Banners    []contentdomain.Banner
}

func (s *Server) handleAdminHomepage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view := adminHomepageView{page: s.pageData(r, "Page d'accueil")}

	var err error
	if view.Slides, err = s.content.Slides(ctx); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if view.Categories, err = s.content.Categories(ctx); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if view.Banners, err = s.content.Banners(ctx); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, r, http.StatusOK, "admin_homepage.html", view)
}

type slideFormView struct {
	page
	Slide     contentdomain.HeroSlide
	Action    string
	FormToken string
	Error     string
}

func (s *Server) handleAdminSlideNew(w http.ResponseWriter, r *http.Request) {
	view := slideFormView{
		page:      s.pageData(r, "Nouvelle diapositive"),
		Action:    "/admin/homepage/slides",
		FormToken: uuid.NewString(),
	}
	s.render(w, r, http.StatusOK, "admin_slide_form.html", view)
}

func (s *Server) handleAdminSlideCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	token := r.PostFormValue("form_token")
	if replayed, _ := s.consumedToken(r, token); replayed {
		http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
		return
	}

	slide, err := s.content.CreateSlide(ctx, parseSlideForm(r))
	if err != nil {
		view := slideFormView{
			page:      s.pageData(r, "Nouvelle diapositive"),
			Slide:     parseSlideForm(r),
			Action:    "/admin/homepage/slides",
			FormToken: token,
			Error:     err.Error(),
		}
		s.render(w, r, http.StatusUnprocessableEntity, "admin_slide_form.html", view)
		return
	}

	if token != "" {
		if err := s.tokens.Save(ctx, token, idempotency.Submission{ResourceID: slide.ID}); err != nil {
			s.logger.WarnContext(ctx, "failed to record form token", "error", err)
		}
	}

	http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
}

func (s *Server) handleAdminSlideEdit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	slide, err := s.content.SlideByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, contentports.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	view := slideFormView{
		page:   s.pageData(r, "Modifier la diapositive"),
		Slide:  *slide,
		Action: "/admin/homepage/slides/" + id,
	}
	s.render(w, r, http.StatusOK, "admin_slide_form.html", view)
}

func (s *Server) handleAdminSlideUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	id := mux.Vars(r)["id"]
	slide := parseSlideForm(r)
	slide.ID = id

	if err := s.content.UpdateSlide(r.Context(), slide); err != nil {
		if errors.Is(err, contentports.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		view := slideFormView{
			page:   s.pageData(r, "Modifier la diapositive"),
			Slide:  slide,
			Action: "/admin/homepage/slides/" + id,
			Error:  err.Error(),
		}
		s.render(w, r, http.StatusUnprocessableEntity, "admin_slide_form.html", view)
		return
	}

	http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
}

func (s *Server) handleAdminSlideDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.content.DeleteSlide(r.Context(), mux.Vars(r)["id"]); err != nil && !errors.Is(err, contentports.ErrNotFound) {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
}

func parseSlideForm(r *http.Request) contentdomain.HeroSlide {
	return contentdomain.HeroSlide{
		ImgSrc:   strings.TrimSpace(r.PostFormValue("img_src")),
		Alt:      strings.TrimSpace(r.PostFormValue("alt")),
		Title:    strings.TrimSpace(r.PostFormValue("title")),
		Subtitle: strings.TrimSpace(r.PostFormValue("subtitle")),
		CTAText:  strings.TrimSpace(r.PostFormValue("cta_text")),
		CTALink:  strings.TrimSpace(r.PostFormValue("cta_link")),
	}
}

type categoryFormView struct {
	page
	Category  contentdomain.FeaturedCategory
	Action    string
	FormToken string
	Error     string
}

func (s *Server) handleAdminCategoryNew(w http.ResponseWriter, r *http.Request) {
	view := categoryFormView{
		page:      s.pageData(r, "Nouvelle catégorie"),
		Action:    "/admin/homepage/categories",
		FormToken: uuid.NewString(),
	}
	s.render(w, r, http.StatusOK, "admin_category_form.html", view)
}

func (s *Server) handleAdminCategoryCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	token := r.PostFormValue("form_token")
	if replayed, _ := s.consumedToken(r, token); replayed {
		http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
		return
	}

	category, err := s.content.CreateCategory(ctx, parseCategoryForm(r))
	if err != nil {
		view := categoryFormView{
			page:      s.pageData(r, "Nouvelle catégorie"),
			Category:  parseCategoryForm(r),
			Action:    "/admin/homepage/categories",
			FormToken: token,
			Error:     err.Error(),
		}
		s.render(w, r, http.StatusUnprocessableEntity, "admin_category_form.html", view)
		return
	}

	if token != "" {
		if err := s.tokens.Save(ctx, token, idempotency.Submission{ResourceID: category.ID}); err != nil {
			s.logger.WarnContext(ctx, "failed to record form token", "error", err)
		}
	}

	http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
}

func (s *Server) handleAdminCategoryEdit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	category, err := s.content.CategoryByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, contentports.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	view := categoryFormView{
		page:     s.pageData(r, "Modifier la catégorie"),
		Category: *category,
		Action:   "/admin/homepage/categories/" + id,
	}
	s.render(w, r, http.StatusOK, "admin_category_form.html", view)
}

func (s *Server) handleAdminCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	id := mux.Vars(r)["id"]
	category := parseCategoryForm(r)
	category.ID = id

	if err := s.content.UpdateCategory(r.Context(), category); err != nil {
		if errors.Is(err, contentports.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		view := categoryFormView{
			page:     s.pageData(r, "Modifier la catégorie"),
			Category: category,
			Action:   "/admin/homepage/categories/" + id,
			Error:    err.Error(),
		}
		s.render(w, r, http.StatusUnprocessableEntity, "admin_category_form.html", view)
		return
	}

	http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
}

func (s *Server) handleAdminCategoryDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.content.DeleteCategory(r.Context(), mux.Vars(r)["id"]); err != nil && !errors.Is(err, contentports.ErrNotFound) {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
}

func parseCategoryForm(r *http.Request) contentdomain.FeaturedCategory {
	return contentdomain.FeaturedCategory{
		Name:   strings.TrimSpace(r.PostFormValue("name")),
		Href:   strings.TrimSpace(r.PostFormValue("href")),
		ImgSrc: strings.TrimSpace(r.PostFormValue("img_src")),
	}
}

func (s *Server) handleAdminBannerDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.content.DeleteBanner(r.Context(), mux.Vars(r)["id"]); err != nil && !errors.Is(err, contentports.ErrNotFound) {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
}

// handleAdminUpload accepts a multipart batch under the "files" field and
// answers with one JSON result per file, in input order.
func (s *Server) handleAdminUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "no files provided")
		return
	}

	files := make([]uploads.File, 0, len(headers))
	for _, header := range headers {
		src, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read uploaded file")
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read uploaded file")
			return
		}
		files = append(files, uploads.File{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	opts := s.uploadOptions
	if folder := r.FormValue("folder"); folder != "" {
		opts.Folder = folder
	}

	results := s.uploads.UploadImages(r.Context(), files, opts)
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleAdminUploadDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	object := r.PostFormValue("object")
	if err := s.uploads.DeleteImage(r.Context(), object); err != nil {
		writeError(w, http.StatusNotFound, "object not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": object})
}

func (s *Server) handleAdminSeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.catalog.Seed(ctx); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if err := s.content.Seed(ctx); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/homepage", http.StatusSeeOther)
}

// consumedToken reports whether the form token was already consumed by a
// previous submission, and if so which resource it created.
func (s *Server) consumedToken(r *http.Request, token string) (bool, string) {
	if token == "" {
		return false, ""
	}
	submission, err := s.tokens.Get(r.Context(), token)
	if err != nil {
		s.logger.WarnContext(r.Context(), "failed to look up form token", "error", err)
		return false, ""
	}
	if submission == nil {
		return false, ""
	}
	return true, submission.ResourceID
}
