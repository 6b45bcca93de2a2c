package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/atinyakov/storefront/internal/models"
)

// Wishlist returns the signed-in customer's saved products.
func (c *Client) Wishlist(ctx context.Context) ([]models.Product, error) {
	var resp struct {
		Products []models.Product `json:"products"`
	}
	if err := c.get(ctx, "wishlist", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Products == nil {
		return []models.Product{}, nil
	}
	return resp.Products, nil
}

// AddToWishlist saves a product to the wishlist.
func (c *Client) AddToWishlist(ctx context.Context, productID string) (Ack, error) {
	return c.mutate(ctx, "wishlist_add", url.Values{"product_id": {productID}})
}

// RemoveFromWishlist drops a product from the wishlist.
func (c *Client) RemoveFromWishlist(ctx context.Context, productID string) (Ack, error) {
	return c.mutate(ctx, "wishlist_remove", url.Values{"product_id": {productID}})
}

// Orders lists the customer's orders; anything but a list yields an empty slice.
func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "orders", nil, &raw); err != nil {
		return nil, err
	}
	orders, _ := decodeList[models.Order](raw)
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// OrderDetails fetches one order with products, totals and history.
func (c *Client) OrderDetails(ctx context.Context, orderID string) (Result[models.OrderDetails], error) {
	var raw json.RawMessage
	if err := c.get(ctx, "order_info", url.Values{"order_id": {orderID}}, &raw); err != nil {
		return Result[models.OrderDetails]{}, err
	}
	return decodeOne(raw, func(o models.OrderDetails) bool { return o.ID != "" }), nil
}

// PaymentMethods returns the available payment methods keyed by code.
func (c *Client) PaymentMethods(ctx context.Context) (map[string]models.PaymentMethod, error) {
	var resp struct {
		Methods map[string]models.PaymentMethod `json:"payment_methods"`
	}
	if err := c.get(ctx, "payment_methods", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Methods == nil {
		return map[string]models.PaymentMethod{}, nil
	}
	return resp.Methods, nil
}

// ShippingMethods returns the available shipping methods keyed by code.
func (c *Client) ShippingMethods(ctx context.Context) (map[string]models.ShippingMethod, error) {
	var resp struct {
		Methods map[string]models.ShippingMethod `json:"shipping_methods"`
	}
	if err := c.get(ctx, "shipping_methods", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Methods == nil {
		return map[string]models.ShippingMethod{}, nil
	}
	return resp.Methods, nil
}

// CreateOrder places an order from the current cart. Data holds the new order id.
func (c *Client) CreateOrder(ctx context.Context, r models.OrderRequest) (Result[string], error) {
	form := url.Values{}
	for k, v := range r.Extra {
		form.Set(k, v)
	}
	if r.PaymentMethod != "" {
		form.Set("payment_method", r.PaymentMethod)
	}
	if r.ShippingMethod != "" {
		form.Set("shipping_method", r.ShippingMethod)
	}
	if r.Comment != "" {
		form.Set("comment", r.Comment)
	}

	var resp struct {
		envelope
		OrderID json.Number `json:"order_id"`
	}
	if err := c.post(ctx, "order_create", form, &resp); err != nil {
		return Result[string]{}, err
	}

	id := resp.OrderID.String()
	if id == "" {
		msg := resp.message()
		if msg == "" {
			msg = "Failed to create order"
		}
		return Result[string]{Message: msg, Errors: resp.Errors}, nil
	}
	return Result[string]{Success: true, Data: id, Message: resp.message()}, nil
}
