package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"money": func(value decimal.Decimal) string {
		return value.StringFixed(2) + " DH"
	},
	"percent": func(value decimal.Decimal) string {
		return value.Mul(decimal.NewFromInt(100)).Round(0).String() + "%"
	},
}

type templates struct {
	pages map[string]*template.Template
}

// parseTemplates builds one template set per page, each paired with the
// shared layout.
func parseTemplates() (*templates, error) {
	pageNames := []string{
		"home.html",
		"category.html",
		"product.html",
		"cart.html",
		"checkout_unavailable.html",
		"admin_products.html",
		"admin_product_form.html",
		"admin_homepage.html",
		"admin_slide_form.html",
		"admin_category_form.html",
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &templates{pages: pages}, nil
}

func (t *templates) render(w io.Writer, page string, data any) error {
	tmpl, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("unknown template %s", page)
	}
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	return nil
}
