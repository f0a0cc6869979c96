package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	cartmemory "github.com/dejobratic/vitrine/internal/cart/adapters/memory"
	cartapp "github.com/dejobratic/vitrine/internal/cart/app"
	cartmetrics "github.com/dejobratic/vitrine/internal/cart/metrics"
	catalogmemory "github.com/dejobratic/vitrine/internal/catalog/adapters/memory"
	catalogapp "github.com/dejobratic/vitrine/internal/catalog/app"
	catalogdomain "github.com/dejobratic/vitrine/internal/catalog/domain"
	catalogmetrics "github.com/dejobratic/vitrine/internal/catalog/metrics"
	catalogports "github.com/dejobratic/vitrine/internal/catalog/ports"
	contentmemory "github.com/dejobratic/vitrine/internal/content/adapters/memory"
	contentapp "github.com/dejobratic/vitrine/internal/content/app"
	"github.com/dejobratic/vitrine/internal/events"
	idemmemory "github.com/dejobratic/vitrine/internal/idempotency/memory"
	"github.com/dejobratic/vitrine/internal/uploads"
	uploadsmemory "github.com/dejobratic/vitrine/internal/uploads/adapters/memory"
	"github.com/dejobratic/vitrine/internal/web"
)

type fixture struct {
	server   *httptest.Server
	client   *http.Client
	products *catalogmemory.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.Default()
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	cartMet, err := cartmetrics.NewMetrics(meter)
	if err != nil {
		t.Fatalf("cart metrics: %v", err)
	}
	catalogMet, err := catalogmetrics.NewMetrics(meter)
	if err != nil {
		t.Fatalf("catalog metrics: %v", err)
	}
	webMet, err := web.NewMetrics(meter)
	if err != nil {
		t.Fatalf("web metrics: %v", err)
	}

	products := catalogmemory.NewRepository()

	server, err := web.NewServer(web.Config{
		Carts:      cartapp.NewService(cartmemory.NewStore(), events.NewNoopEventBus(), logger, cartMet),
		Catalog:    catalogapp.NewService(products, logger, catalogMet),
		Content:    contentapp.NewService(contentmemory.NewRepository(), logger),
		Uploads:    uploads.NewService(uploadsmemory.NewStore("/uploads"), logger),
		Tokens:     idemmemory.NewStore(),
		Logger:     logger,
		Metrics:    webMet,
		SessionTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}

	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}

	return &fixture{
		server:   ts,
		client:   &http.Client{Jar: jar},
		products: products,
	}
}

func (f *fixture) seedProduct(t *testing.T, id string, price int64) {
	t.Helper()
	product := catalogdomain.Product{
		ID:       id,
		Name:     "Produit " + id,
		Category: "Laptops",
		Price:    decimal.NewFromInt(price),
		Images:   []string{"https://example.test/" + id + ".jpg"},
	}
	if err := f.products.Create(context.Background(), product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.Get(f.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func (f *fixture) postForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.PostForm(f.server.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestHomePage(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", 100)

	resp, body := f.get(t, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if !strings.Contains(body, "Vitrine") {
		t.Error("home page missing site header")
	}
}

func TestProductPageNotFound(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.get(t, "/products/missing")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestCartFlow(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", 150)
	f.seedProduct(t, "p2", 200)

	// Adding twice merges into a single line with quantity 2.
	for i := 0; i < 2; i++ {
		resp, _ := f.postForm(t, "/cart/items", url.Values{"product_id": {"p1"}})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("add to cart status = %d, want %d after redirect", resp.StatusCode, http.StatusOK)
		}
	}

	_, body := f.get(t, "/cart")
	if !strings.Contains(body, "Produit p1") {
		t.Fatal("cart page missing added product")
	}
	if !strings.Contains(body, "300.00 DH") {
		t.Errorf("cart page missing merged line total, body: %s", body)
	}

	resp, _ := f.postForm(t, "/cart/items/p1/update", url.Values{"quantity": {"3"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update quantity status = %d", resp.StatusCode)
	}
	_, body = f.get(t, "/cart")
	if !strings.Contains(body, "450.00 DH") {
		t.Error("cart page missing updated line total")
	}

	resp, _ = f.postForm(t, "/cart/items/p1/update", url.Values{"quantity": {"deux"}})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("non-integer quantity status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
	_, body = f.get(t, "/cart")
	if !strings.Contains(body, "450.00 DH") {
		t.Error("rejected quantity update must leave the cart untouched")
	}

	// Quantity zero removes the line.
	f.postForm(t, "/cart/items/p1/update", url.Values{"quantity": {"0"}})
	_, body = f.get(t, "/cart")
	if !strings.Contains(body, "panier est vide") {
		t.Error("cart should be empty after zero-quantity update")
	}

	f.postForm(t, "/cart/items", url.Values{"product_id": {"p2"}})
	f.postForm(t, "/cart/items/p2/remove", nil)
	_, body = f.get(t, "/cart")
	if !strings.Contains(body, "panier est vide") {
		t.Error("cart should be empty after removal")
	}
}

func TestClearCart(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", 100)
	f.seedProduct(t, "p2", 250)

	f.postForm(t, "/cart/items", url.Values{"product_id": {"p1"}})
	f.postForm(t, "/cart/items", url.Values{"product_id": {"p2"}})

	resp, _ := f.postForm(t, "/cart/clear", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	_, body := f.get(t, "/cart")
	if !strings.Contains(body, "panier est vide") {
		t.Error("cart should be empty after clearing")
	}
}

func TestAddUnknownProduct(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.postForm(t, "/cart/items", url.Values{"product_id": {"missing"}})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestCartsAreSessionScoped(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", 100)

	f.postForm(t, "/cart/items", url.Values{"product_id": {"p1"}})

	// A second client has its own session cookie and therefore its own cart.
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	other := &http.Client{Jar: jar}
	resp, err := other.Get(f.server.URL + "/cart")
	if err != nil {
		t.Fatalf("GET /cart: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "panier est vide") {
		t.Error("a fresh session must start with an empty cart")
	}
}

func TestCheckoutNotImplemented(t *testing.T) {
	f := newFixture(t)

	resp, body := f.postForm(t, "/checkout", nil)
	if resp.StatusCode != http.StatusNotImplemented {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotImplemented)
	}
	if !strings.Contains(body, "Paiement non disponible") {
		t.Error("checkout page missing unavailability notice")
	}
}

func TestAdminProductCreateReplay(t *testing.T) {
	f := newFixture(t)

	form := url.Values{
		"form_token": {"token-1"},
		"name":       {"Nouveau laptop"},
		"category":   {"Laptops"},
		"price":      {"999"},
		"images":     {"https://example.test/laptop.jpg"},
	}

	for i := 0; i < 2; i++ {
		resp, _ := f.postForm(t, "/admin/products", form)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("create status = %d after redirect", resp.StatusCode)
		}
	}

	products, err := f.products.List(context.Background(), catalogports.ListFilter{Page: 1, PageSize: 50})
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1: a replayed form must not create a duplicate", len(products))
	}
}

func TestAdminProductCreateInvalidPrice(t *testing.T) {
	f := newFixture(t)

	form := url.Values{
		"name":     {"Produit cassé"},
		"category": {"Laptops"},
		"price":    {"pas-un-prix"},
		"images":   {"https://example.test/x.jpg"},
	}

	resp, body := f.postForm(t, "/admin/products", form)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(body, "invalid price") {
		t.Error("form should re-render with the validation error")
	}
}

func TestAdminUploadBatch(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	addFile(t, writer, "photo1.png", "image/png", []byte("png-bytes"))
	addFile(t, writer, "doc.pdf", "application/pdf", []byte("pdf-bytes"))
	addFile(t, writer, "photo2.jpg", "image/jpeg", []byte("jpg-bytes"))
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	resp, err := f.client.Post(f.server.URL+"/admin/uploads", writer.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST /admin/uploads: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var results []uploads.Result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if !results[0].Success || results[1].Success || !results[2].Success {
		t.Errorf("unexpected verdicts: %+v", results)
	}
	if results[1].Error == "" {
		t.Error("rejected file must carry an error message")
	}
}

func addFile(t *testing.T, writer *multipart.Writer, name, contentType string, data []byte) {
	t.Helper()
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="files"; filename="`+name+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
}
