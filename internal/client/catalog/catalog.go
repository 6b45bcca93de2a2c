// Package catalog filters and orders product and category lists that are
// already in memory.
package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/atinyakov/storefront/internal/models"
)

// SortKey selects the product field SortProducts orders by.
type SortKey string

const (
	SortByName  SortKey = "name"
	SortByPrice SortKey = "price"
)

// Order is the sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

func matches(name, query string) bool {
	return strings.Contains(strings.ToLower(name), query)
}

// FilterProducts returns the products whose name contains query, ignoring
// case. A blank query returns products unchanged.
func FilterProducts(products []models.Product, query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(p.Name, q) {
			out = append(out, p)
		}
	}
	return out
}

// FilterCategories is FilterProducts for categories.
func FilterCategories(categories []models.Category, query string) []models.Category {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return categories
	}
	out := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if matches(c.Name, q) {
			out = append(out, c)
		}
	}
	return out
}

// SortProducts returns a sorted copy of products. Equal keys keep their
// input order. Unknown keys leave the order unchanged.
func SortProducts(products []models.Product, key SortKey, order Order) []models.Product {
	out := append([]models.Product(nil), products...)

	var less func(a, b models.Product) bool
	switch key {
	case SortByName:
		less = func(a, b models.Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortByPrice:
		less = func(a, b models.Product) bool {
			return EffectivePrice(a) < EffectivePrice(b)
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// EffectivePrice is the special price when one is set, otherwise the regular
// price, parsed from the backend's formatted string ("$1,202.00").
// Unparseable prices are 0.
func EffectivePrice(p models.Product) float64 {
	if v, ok := ParsePrice(p.Special); ok {
		return v
	}
	v, _ := ParsePrice(p.Price)
	return v
}

// ParsePrice extracts the number from a formatted price. Currency symbols and
// thousands separators are ignored.
func ParsePrice(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
