package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/atinyakov/storefront/internal/models"
	"github.com/atinyakov/storefront/internal/service"
)

// CatalogService defines the catalog reads required by the HTTP handlers.
type CatalogService interface {
	Products(ctx context.Context, q service.ProductQuery) []models.Product
	Product(ctx context.Context, id string) (models.Product, error)
	Categories(ctx context.Context) []models.Category
	Category(ctx context.Context, id string) (models.Category, error)
}

// CatalogHandler serves products and categories.
type CatalogHandler struct {
	Catalog CatalogService
}

func productQuery(r *http.Request) service.ProductQuery {
	q := r.URL.Query()
	query := service.ProductQuery{
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
		Order:  q.Get("order"),
		Page:   intParam(r, "page"),
		Limit:  intParam(r, "limit"),
	}
	// ids are numeric; "0" means no filter
	if id := intParam(r, "category_id"); id > 0 {
		query.CategoryID = strconv.Itoa(id)
	}
	if id := intParam(r, "manufacturer_id"); id > 0 {
		query.ManufacturerID = strconv.Itoa(id)
	}
	return query
}

// Products handles GET /products with optional category_id,
// manufacturer_id, sort, order, page and limit parameters.
func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	ok(w, h.Catalog.Products(r.Context(), productQuery(r)))
}

// Search handles GET /search. It is Products with a required search term;
// a blank term yields an empty list.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := productQuery(r)
	if q.Search == "" {
		ok(w, []models.Product{})
		return
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	ok(w, h.Catalog.Products(r.Context(), q))
}

// Product handles GET /product?product_id=.
func (h *CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	p, err := h.Catalog.Product(r.Context(), r.URL.Query().Get("product_id"))
	if errors.Is(err, service.ErrNotFound) {
		fail(w, http.StatusOK, "Product not found!")
		return
	}
	if err != nil {
		serverError(w)
		return
	}
	ok(w, p)
}

// Categories handles GET /categories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ok(w, h.Catalog.Categories(r.Context()))
}

// Category handles GET /category?category_id=.
func (h *CatalogHandler) Category(w http.ResponseWriter, r *http.Request) {
	c, err := h.Catalog.Category(r.Context(), r.URL.Query().Get("category_id"))
	if errors.Is(err, service.ErrNotFound) {
		fail(w, http.StatusOK, "Category not found!")
		return
	}
	if err != nil {
		serverError(w)
		return
	}
	ok(w, c)
}
