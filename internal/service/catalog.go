package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/atinyakov/storefront/internal/models"
	"github.com/atinyakov/storefront/internal/repository"
)

// CatalogRepository defines the read operations
// required by the catalog, cart and checkout services.
type CatalogRepository interface {
	// Products returns every product in listing order.
	Products(ctx context.Context) []repository.ProductRecord
	// Product returns one product or repository.ErrNotFound.
	Product(ctx context.Context, id string) (repository.ProductRecord, error)
	// Categories returns every category.
	Categories(ctx context.Context) []models.Category
	// Category returns one category or repository.ErrNotFound.
	Category(ctx context.Context, id string) (models.Category, error)
}

// ProductQuery filters, orders and pages a product listing.
// Zero values mean "no constraint".
type ProductQuery struct {
	CategoryID     string
	ManufacturerID string
	// Search matches product name or model, ignoring case.
	Search string
	// Sort is one of "pd.name", "p.price", "rating", "p.model";
	// anything else keeps the catalog order.
	Sort string
	// Order is "DESC" for descending; anything else is ascending.
	Order string
	Page  int
	Limit int
}

// CatalogService serves product and category listings.
type CatalogService struct {
	repo CatalogRepository
}

// NewCatalogService constructs a CatalogService using the provided repository.
func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// present fills the display price fields of a product.
func present(p repository.ProductRecord) models.Product {
	out := p.Product
	out.Price = formatMoney(p.Amount)
	out.Special = ""
	if p.SpecialAmount > 0 {
		out.Special = formatMoney(p.SpecialAmount)
	}
	out.Tax = formatMoney(p.UnitPrice())
	return out
}

func (q ProductQuery) match(p repository.ProductRecord) bool {
	if q.CategoryID != "" && !p.InCategory(q.CategoryID) {
		return false
	}
	if q.ManufacturerID != "" && p.ManufacturerID != q.ManufacturerID {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		if !strings.Contains(strings.ToLower(p.Name), s) && !strings.Contains(strings.ToLower(p.Model), s) {
			return false
		}
	}
	return true
}

// Products returns the products matching q.
func (s *CatalogService) Products(ctx context.Context, q ProductQuery) []models.Product {
	var recs []repository.ProductRecord
	for _, p := range s.repo.Products(ctx) {
		if q.match(p) {
			recs = append(recs, p)
		}
	}

	var less func(a, b repository.ProductRecord) bool
	switch q.Sort {
	case "pd.name":
		less = func(a, b repository.ProductRecord) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case "p.price":
		less = func(a, b repository.ProductRecord) bool { return a.UnitPrice() < b.UnitPrice() }
	case "rating":
		less = func(a, b repository.ProductRecord) bool { return a.Rating < b.Rating }
	case "p.model":
		less = func(a, b repository.ProductRecord) bool { return strings.ToLower(a.Model) < strings.ToLower(b.Model) }
	}
	if less != nil {
		desc := strings.EqualFold(q.Order, "DESC")
		sort.SliceStable(recs, func(i, j int) bool {
			if desc {
				return less(recs[j], recs[i])
			}
			return less(recs[i], recs[j])
		})
	}

	if q.Limit > 0 {
		page := max(q.Page, 1)
		start := (page - 1) * q.Limit
		if start >= len(recs) {
			recs = nil
		} else {
			recs = recs[start:min(start+q.Limit, len(recs))]
		}
	}

	out := make([]models.Product, 0, len(recs))
	for _, p := range recs {
		out = append(out, present(p))
	}
	return out
}

// Product returns one product with display prices.
func (s *CatalogService) Product(ctx context.Context, id string) (models.Product, error) {
	p, err := s.repo.Product(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return present(p), nil
}

// Categories returns every category.
func (s *CatalogService) Categories(ctx context.Context) []models.Category {
	return s.repo.Categories(ctx)
}

// Category returns one category.
func (s *CatalogService) Category(ctx context.Context, id string) (models.Category, error) {
	c, err := s.repo.Category(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Category{}, ErrNotFound
	}
	return c, err
}
