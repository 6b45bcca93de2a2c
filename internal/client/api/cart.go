package api

import (
	"context"
	"net/url"
	"sort"
	"strconv"

	"github.com/atinyakov/storefront/internal/models"
)

// Cart fetches the full cart snapshot. Missing lists decode as empty.
func (c *Client) Cart(ctx context.Context) (models.Cart, error) {
	var cart models.Cart
	if err := c.get(ctx, "cart", nil, &cart); err != nil {
		return models.Cart{}, err
	}
	if cart.Products == nil {
		cart.Products = []models.CartLine{}
	}
	if cart.Totals == nil {
		cart.Totals = []models.CartTotal{}
	}
	return cart, nil
}

// AddToCart adds quantity units of a product. options maps product option ids
// to chosen values. The new cart is not returned; call Cart to observe it.
func (c *Client) AddToCart(ctx context.Context, productID string, quantity int, options map[string]string) (Ack, error) {
	if quantity <= 0 {
		quantity = 1
	}
	form := url.Values{}
	form.Set("product_id", productID)
	form.Set("quantity", strconv.Itoa(quantity))
	for k, v := range options {
		form.Set("option["+k+"]", v)
	}
	return c.mutate(ctx, "cart_add", form)
}

// UpdateCart sets line quantities keyed by cart id.
func (c *Client) UpdateCart(ctx context.Context, quantities map[string]int) (Ack, error) {
	ids := make([]string, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	form := url.Values{}
	for _, id := range ids {
		form.Set("quantity["+id+"]", strconv.Itoa(quantities[id]))
	}
	return c.mutate(ctx, "cart_update", form)
}

// RemoveFromCart deletes one cart line.
func (c *Client) RemoveFromCart(ctx context.Context, cartID string) (Ack, error) {
	return c.mutate(ctx, "cart_remove", url.Values{"key": {cartID}})
}

func (c *Client) mutate(ctx context.Context, endpoint string, form url.Values) (Ack, error) {
	var resp mutation
	if err := c.post(ctx, endpoint, form, &resp); err != nil {
		return Ack{}, err
	}
	return resp.ack(), nil
}
