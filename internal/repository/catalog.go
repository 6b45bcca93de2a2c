package repository

import (
	"context"

	"github.com/atinyakov/storefront/internal/models"
)

// ProductRecord is a catalog product with its numeric pricing and
// category membership. The embedded Product's price strings are filled in by
// the service layer.
type ProductRecord struct {
	models.Product
	// Amount is the regular price.
	Amount float64
	// SpecialAmount is the discounted price, 0 when there is none.
	SpecialAmount  float64
	CategoryIDs    []string
	ManufacturerID string
}

// UnitPrice is the price a cart line is charged at.
func (p ProductRecord) UnitPrice() float64 {
	if p.SpecialAmount > 0 {
		return p.SpecialAmount
	}
	return p.Amount
}

// InCategory reports whether the product is listed under category id.
func (p ProductRecord) InCategory(id string) bool {
	for _, c := range p.CategoryIDs {
		if c == id {
			return true
		}
	}
	return false
}

// CatalogRepository is a read-only product and category catalog.
type CatalogRepository struct {
	products   []ProductRecord
	byID       map[string]int
	categories []models.Category
}

// NewCatalogRepository indexes products and categories. Listing order is the
// order given.
func NewCatalogRepository(products []ProductRecord, categories []models.Category) *CatalogRepository {
	r := &CatalogRepository{
		products:   products,
		byID:       make(map[string]int, len(products)),
		categories: categories,
	}
	for i, p := range products {
		r.byID[p.ID] = i
	}
	return r
}

// Products returns every product.
func (r *CatalogRepository) Products(_ context.Context) []ProductRecord {
	return append([]ProductRecord(nil), r.products...)
}

// Product returns product id.
func (r *CatalogRepository) Product(_ context.Context, id string) (ProductRecord, error) {
	i, ok := r.byID[id]
	if !ok {
		return ProductRecord{}, ErrNotFound
	}
	return r.products[i], nil
}

// Categories returns every category.
func (r *CatalogRepository) Categories(_ context.Context) []models.Category {
	return append([]models.Category(nil), r.categories...)
}

// Category returns category id.
func (r *CatalogRepository) Category(_ context.Context, id string) (models.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, ErrNotFound
}
