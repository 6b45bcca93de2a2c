package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/atinyakov/storefront/internal/models"
)

// ProductFilter narrows a product listing. Zero values are not sent.
type ProductFilter struct {
	CategoryID     int
	ManufacturerID int
	// Sort is a backend sort key such as "p.price" or "pd.name".
	Sort string
	// Order is "ASC" or "DESC".
	Order string
	Page  int
	Limit int
}

func (f ProductFilter) values() url.Values {
	q := url.Values{}
	setInt := func(k string, v int) {
		if v != 0 {
			q.Set(k, strconv.Itoa(v))
		}
	}
	setInt("category_id", f.CategoryID)
	setInt("manufacturer_id", f.ManufacturerID)
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	if f.Order != "" {
		q.Set("order", f.Order)
	}
	setInt("page", f.Page)
	setInt("limit", f.Limit)
	return q
}

// Products lists catalog products. A body that is not a product list yields
// an unsuccessful Result with an empty, non-nil list.
func (c *Client) Products(ctx context.Context, f ProductFilter) (Result[[]models.Product], error) {
	var raw json.RawMessage
	if err := c.get(ctx, "products", f.values(), &raw); err != nil {
		return Result[[]models.Product]{Data: []models.Product{}}, err
	}
	return listResult[models.Product](raw, "Failed to load products"), nil
}

// Product fetches one product with its options and images.
func (c *Client) Product(ctx context.Context, productID string) (Result[models.Product], error) {
	var raw json.RawMessage
	if err := c.get(ctx, "product", url.Values{"product_id": {productID}}, &raw); err != nil {
		return Result[models.Product]{}, err
	}
	return decodeOne(raw, func(p models.Product) bool { return p.ID != "" }), nil
}

// SearchProducts runs a full-text product search. page and limit default to
// 1 and 20 when not positive.
func (c *Client) SearchProducts(ctx context.Context, query string, page, limit int) (Result[[]models.Product], error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	q := url.Values{}
	q.Set("search", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var raw json.RawMessage
	if err := c.get(ctx, "search", q, &raw); err != nil {
		return Result[[]models.Product]{Data: []models.Product{}}, err
	}
	return listResult[models.Product](raw, "No products found"), nil
}

// Categories lists all catalog categories.
func (c *Client) Categories(ctx context.Context) (Result[[]models.Category], error) {
	var raw json.RawMessage
	if err := c.get(ctx, "categories", nil, &raw); err != nil {
		return Result[[]models.Category]{Data: []models.Category{}}, err
	}
	return listResult[models.Category](raw, "Failed to load categories"), nil
}

// Category fetches one category.
func (c *Client) Category(ctx context.Context, categoryID string) (Result[models.Category], error) {
	var raw json.RawMessage
	if err := c.get(ctx, "category", url.Values{"category_id": {categoryID}}, &raw); err != nil {
		return Result[models.Category]{}, err
	}
	return decodeOne(raw, func(c models.Category) bool { return c.ID != "" }), nil
}

func listResult[T any](raw json.RawMessage, failure string) Result[[]T] {
	items, ok := decodeList[T](raw)
	if !ok {
		return Result[[]T]{Data: []T{}, Message: failure}
	}
	if items == nil {
		items = []T{}
	}
	return Result[[]T]{Success: true, Data: items}
}
