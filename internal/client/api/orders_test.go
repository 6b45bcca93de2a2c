package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/storefront/internal/models"
)

func TestWishlist(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/mobile/wishlist":
			jsonResponse(w, `{"products":[{"product_id":"42","name":"Lamp"}]}`)
		case "/api/mobile/wishlist_add", "/api/mobile/wishlist_remove":
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "42", r.PostForm.Get("product_id"))
			jsonResponse(w, `{"success":"Wishlist updated"}`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	items, err := c.Wishlist(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Lamp", items[0].Name)

	res, err := c.AddToWishlist(ctx, "42")
	require.NoError(t, err)
	assert.True(t, res.Success)

	res, err = c.RemoveFromWishlist(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "Wishlist updated", res.Message)
}

func TestWishlist_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, `{}`)
	})

	items, err := c.Wishlist(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestOrders(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{"list", `[{"order_id":"1","status":"Pending","total":"$20.00"},{"order_id":"2","status":"Complete"}]`, 2},
		{"not a list", `{"error":"login required"}`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				jsonResponse(w, tc.body)
			})

			orders, err := c.Orders(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, orders)
			assert.Len(t, orders, tc.want)
		})
	}
}

func TestOrderDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("order_id"))
		jsonResponse(w, `{"order_id":"7","status":"Pending","invoice_no":"INV-7",
			"products":[{"order_product_id":"1","product_id":"42","name":"Lamp","quantity":"2","total":"$20.00"}],
			"totals":[{"title":"Total","text":"$20.00","value":20}],
			"histories":[{"date_added":"2025-08-01","status":"Pending","comment":"","notify":false}]}`)
	})

	res, err := c.OrderDetails(context.Background(), "7")
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "INV-7", res.Data.InvoiceNo)
	assert.Equal(t, "Pending", res.Data.Status)
	require.Len(t, res.Data.Products, 1)
	require.Len(t, res.Data.Histories, 1)
}

func TestPaymentAndShippingMethods(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/mobile/payment_methods":
			jsonResponse(w, `{"payment_methods":{"cod":{"code":"cod","title":"Cash On Delivery","terms":"","sort_order":"1"}}}`)
		case "/api/mobile/shipping_methods":
			jsonResponse(w, `{"shipping_methods":{"flat":{"title":"Flat Rate","quote":{"flat":{"code":"flat.flat","title":"Flat Shipping Rate","cost":5,"text":"$5.00"}},"sort_order":"1"}}}`)
		}
	})
	ctx := context.Background()

	pay, err := c.PaymentMethods(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Cash On Delivery", pay["cod"].Title)

	ship, err := c.ShippingMethods(ctx)
	require.NoError(t, err)
	assert.Equal(t, "flat.flat", ship["flat"].Quote["flat"].Code)
	assert.Equal(t, 5.0, ship["flat"].Quote["flat"].Cost)
}

func TestPaymentMethods_Missing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, `{}`)
	})

	pay, err := c.PaymentMethods(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, pay)
	assert.Empty(t, pay)
}

func TestCreateOrder(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "cod", r.PostForm.Get("payment_method"))
			assert.Equal(t, "flat.flat", r.PostForm.Get("shipping_method"))
			assert.Equal(t, "ring twice", r.PostForm.Get("comment"))
			assert.Equal(t, "1", r.PostForm.Get("agree"))
			jsonResponse(w, `{"success":true,"order_id":17}`)
		})

		res, err := c.CreateOrder(context.Background(), models.OrderRequest{
			PaymentMethod:  "cod",
			ShippingMethod: "flat.flat",
			Comment:        "ring twice",
			Extra:          map[string]string{"agree": "1"},
		})
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "17", res.Data)
	})

	t.Run("string id", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			jsonResponse(w, `{"order_id":"18"}`)
		})

		res, err := c.CreateOrder(context.Background(), models.OrderRequest{})
		require.NoError(t, err)
		assert.Equal(t, "18", res.Data)
	})

	t.Run("rejected", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			jsonResponse(w, `{"success":false,"error":"Cart is empty"}`)
		})

		res, err := c.CreateOrder(context.Background(), models.OrderRequest{})
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "Cart is empty", res.Message)
	})
}
