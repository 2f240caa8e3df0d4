package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lambrugeorge/colipop-site/internal/catalog"
	"github.com/lambrugeorge/colipop-site/internal/domain"
)

// --- Mock ---

type catalogMock struct {
	products []*domain.Product
	err      error
}

func (m catalogMock) GetAllProducts(context.Context) ([]*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m catalogMock) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, catalog.ErrProductNotFound
}

func (m catalogMock) Close() error               { return nil }
func (m catalogMock) RunMigrations(string) error { return nil }

var shopCatalog = catalogMock{products: []*domain.Product{
	{ID: "p1", Name: "Colivă tradițională", Price: 45, Category: "coliva"},
	{ID: "p2", Name: "Cozonac felie", Price: 18, Category: "deserturi"},
}}

// --- helpers ---

func withProductID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("product_id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// --- tests ---

func TestListProducts_Success(t *testing.T) {
	handler := NewProductsHandler(shopCatalog, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/products", nil)

	handler.ListProducts(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected %d, got %d", http.StatusOK, recorder.Code)
	}

	var products []domain.Product
	if err := json.NewDecoder(recorder.Body).Decode(&products); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != "p1" {
		t.Errorf("expected p1 first, got %s", products[0].ID)
	}
}

func TestListProducts_RepoError(t *testing.T) {
	handler := NewProductsHandler(catalogMock{err: errors.New("db down")}, 5*time.Second)
	recorder := httptest.NewRecorder()

	handler.ListProducts(recorder, httptest.NewRequest("GET", "/api/v1/products", nil))

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("expected %d, got %d", http.StatusInternalServerError, recorder.Code)
	}
}

func TestGetProduct_Success(t *testing.T) {
	handler := NewProductsHandler(shopCatalog, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := withProductID(httptest.NewRequest("GET", "/api/v1/products/p2", nil), "p2")

	handler.GetProduct(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, recorder.Code)
	}

	var p domain.Product
	if err := json.NewDecoder(recorder.Body).Decode(&p); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if p.Name != "Cozonac felie" {
		t.Errorf("unexpected product: %+v", p)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	handler := NewProductsHandler(shopCatalog, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := withProductID(httptest.NewRequest("GET", "/api/v1/products/p99", nil), "p99")

	handler.GetProduct(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, recorder.Code)
	}
}
