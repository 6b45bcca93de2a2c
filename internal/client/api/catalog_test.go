package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducts(t *testing.T) {
	t.Run("list with filter", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "3", q.Get("category_id"))
			assert.Equal(t, "50", q.Get("limit"))
			assert.Equal(t, "p.price", q.Get("sort"))
			assert.False(t, q.Has("page"), "zero page must not be sent")
			jsonResponse(w, `[{"product_id":"1","name":"Mug","price":"$5.00"},{"product_id":"2","name":"Cap","price":"$9.00"}]`)
		})

		res, err := c.Products(context.Background(), ProductFilter{CategoryID: 3, Limit: 50, Sort: "p.price"})
		require.NoError(t, err)
		assert.True(t, res.Success)
		require.Len(t, res.Data, 2)
		assert.Equal(t, "Mug", res.Data[0].Name)
	})

	t.Run("unexpected shape degrades to empty list", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			jsonResponse(w, `{"error":"category disabled"}`)
		})

		res, err := c.Products(context.Background(), ProductFilter{})
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.NotNil(t, res.Data)
		assert.Empty(t, res.Data)
		assert.Equal(t, "Failed to load products", res.Message)
	})

	t.Run("transport failure still returns empty list", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		res, err := c.Products(context.Background(), ProductFilter{})
		require.Error(t, err)
		assert.NotNil(t, res.Data)
		assert.Empty(t, res.Data)
	})
}

func TestSearchProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api/mobile/search", r.URL.Path)
		assert.Equal(t, "red mug", q.Get("search"))
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "20", q.Get("limit"))
		jsonResponse(w, `{"success":true,"data":[{"product_id":"1","name":"Red Mug"}]}`)
	})

	res, err := c.SearchProducts(context.Background(), "red mug", 0, 0)
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Red Mug", res.Data[0].Name)
}

func TestSearchProducts_NoResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, `{"success":false}`)
	})

	res, err := c.SearchProducts(context.Background(), "zzz", 1, 10)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, res.Data)
}

func TestProduct(t *testing.T) {
	cases := []struct {
		name string
		body string
		ok   bool
	}{
		{"envelope", `{"success":true,"data":{"product_id":"42","name":"Lamp","options":[{"product_option_id":"5","name":"Color","required":true,"product_option_value":[{"product_option_value_id":"9","name":"Red"}]}]}}`, true},
		{"bare record", `{"product_id":"42","name":"Lamp"}`, true},
		{"not found", `{"success":false,"message":"Product not found"}`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "42", r.URL.Query().Get("product_id"))
				jsonResponse(w, tc.body)
			})

			res, err := c.Product(context.Background(), "42")
			require.NoError(t, err)
			assert.Equal(t, tc.ok, res.Success)
			if tc.ok {
				assert.Equal(t, "Lamp", res.Data.Name)
			} else {
				assert.Equal(t, "Product not found", res.Message)
			}
		})
	}
}

func TestProduct_Options(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, `{"success":true,"data":{"product_id":"42","name":"Lamp","options":[{"product_option_id":"5","name":"Color","required":true,"product_option_value":[{"product_option_value_id":"9","name":"Red"}]}]}}`)
	})

	res, err := c.Product(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, res.Data.Options, 1)
	opt := res.Data.Options[0]
	assert.True(t, opt.Required)
	require.Len(t, opt.Values, 1)
	assert.Equal(t, "Red", opt.Values[0].Name)
}

func TestCategories(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, `{"success":true,"data":[{"category_id":"20","name":"Desktops"},{"category_id":"18","name":"Laptops"}]}`)
	})

	res, err := c.Categories(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "Laptops", res.Data[1].Name)
}

func TestCategory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("category_id"))
		jsonResponse(w, `{"success":true,"data":{"category_id":"20","name":"Desktops"}}`)
	})

	res, err := c.Category(context.Background(), "20")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Desktops", res.Data.Name)
}
