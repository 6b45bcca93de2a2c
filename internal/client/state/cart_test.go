package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/storefront/internal/client/api"
	"github.com/atinyakov/storefront/internal/models"
)

type mockCartAPI struct {
	CartFunc   func(ctx context.Context) (models.Cart, error)
	AddFunc    func(ctx context.Context, productID string, quantity int, options map[string]string) (api.Ack, error)
	UpdateFunc func(ctx context.Context, quantities map[string]int) (api.Ack, error)
	RemoveFunc func(ctx context.Context, cartID string) (api.Ack, error)

	mu    sync.Mutex
	loads int
}

func (m *mockCartAPI) Cart(ctx context.Context) (models.Cart, error) {
	m.mu.Lock()
	m.loads++
	m.mu.Unlock()
	return m.CartFunc(ctx)
}
func (m *mockCartAPI) AddToCart(ctx context.Context, productID string, quantity int, options map[string]string) (api.Ack, error) {
	return m.AddFunc(ctx, productID, quantity, options)
}
func (m *mockCartAPI) UpdateCart(ctx context.Context, quantities map[string]int) (api.Ack, error) {
	return m.UpdateFunc(ctx, quantities)
}
func (m *mockCartAPI) RemoveFromCart(ctx context.Context, cartID string) (api.Ack, error) {
	return m.RemoveFunc(ctx, cartID)
}

func (m *mockCartAPI) loadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

func twoLineCart() models.Cart {
	return models.Cart{
		Products: []models.CartLine{
			{CartID: "c1", ProductID: "42", Quantity: "2"},
			{CartID: "c2", ProductID: "43", Quantity: "3"},
		},
		Totals: []models.CartTotal{
			{Title: "Sub-Total", Text: "$90.00", Value: 90},
			{Title: "Total", Text: "$99.50", Value: 99.5},
		},
	}
}

func TestLoadCart_DerivesCountAndTotal(t *testing.T) {
	m := &mockCartAPI{CartFunc: func(ctx context.Context) (models.Cart, error) { return twoLineCart(), nil }}
	c := NewCart(m, nil)

	require.NoError(t, c.LoadCart(context.Background()))

	s := c.Snapshot()
	assert.Len(t, s.Items, 2)
	assert.Len(t, s.Totals, 2)
	assert.Equal(t, 5, s.ItemCount)
	assert.Equal(t, 99.5, s.TotalAmount)
	assert.False(t, s.IsLoading)
}

func TestLoadCart_FailureKeepsPreviousState(t *testing.T) {
	fail := false
	m := &mockCartAPI{CartFunc: func(ctx context.Context) (models.Cart, error) {
		if fail {
			return models.Cart{}, errNetwork
		}
		return twoLineCart(), nil
	}}
	c := NewCart(m, nil)
	require.NoError(t, c.LoadCart(context.Background()))
	before := c.Snapshot()

	fail = true
	err := c.LoadCart(context.Background())
	require.Error(t, err)

	after := c.Snapshot()
	assert.False(t, after.IsLoading)
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.ItemCount, after.ItemCount)
	assert.Equal(t, before.TotalAmount, after.TotalAmount)
}

func TestLoadCart_IsLoadingDuringFetch(t *testing.T) {
	release := make(chan struct{})
	m := &mockCartAPI{CartFunc: func(ctx context.Context) (models.Cart, error) {
		<-release
		return twoLineCart(), nil
	}}
	c := NewCart(m, nil)

	loading := make(chan bool, 1)
	unsubscribe := c.Subscribe(func(s CartState) {
		if s.IsLoading {
			select {
			case loading <- true:
			default:
			}
		}
	})
	defer unsubscribe()

	done := make(chan error)
	go func() { done <- c.LoadCart(context.Background()) }()

	<-loading
	assert.True(t, c.Snapshot().IsLoading)
	close(release)
	require.NoError(t, <-done)
	assert.False(t, c.Snapshot().IsLoading)
}

func TestLoadCart_StaleResponseDiscarded(t *testing.T) {
	slow := make(chan struct{})
	started := make(chan struct{})
	calls := 0
	var mu sync.Mutex

	m := &mockCartAPI{CartFunc: func(ctx context.Context) (models.Cart, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(started)
			<-slow
			return models.Cart{Products: []models.CartLine{{CartID: "old", Quantity: "9"}}}, nil
		}
		return twoLineCart(), nil
	}}
	c := NewCart(m, nil)

	done := make(chan error)
	go func() { done <- c.LoadCart(context.Background()) }()
	<-started

	require.NoError(t, c.LoadCart(context.Background()))
	close(slow)
	require.NoError(t, <-done)

	s := c.Snapshot()
	assert.Equal(t, 5, s.ItemCount, "older fetch must not overwrite newer result")
	assert.False(t, s.IsLoading)
}

func TestAddToCart(t *testing.T) {
	t.Run("success reloads", func(t *testing.T) {
		m := &mockCartAPI{
			AddFunc: func(ctx context.Context, productID string, quantity int, options map[string]string) (api.Ack, error) {
				assert.Equal(t, "42", productID)
				assert.Equal(t, 2, quantity)
				assert.Equal(t, map[string]string{"225": "Red"}, options)
				return api.Ack{Success: true}, nil
			},
			CartFunc: func(ctx context.Context) (models.Cart, error) { return twoLineCart(), nil },
		}
		c := NewCart(m, nil)

		res := c.AddToCart(context.Background(), "42", 2, map[string]string{"225": "Red"})
		assert.Equal(t, ActionResult{Success: true, Message: "Product added to cart"}, res)
		assert.Equal(t, 1, m.loadCount())
		assert.Equal(t, 5, c.Snapshot().ItemCount)
	})

	t.Run("backend message kept", func(t *testing.T) {
		m := &mockCartAPI{
			AddFunc: func(ctx context.Context, productID string, quantity int, options map[string]string) (api.Ack, error) {
				return api.Ack{Success: true, Message: "Success: added"}, nil
			},
			CartFunc: func(ctx context.Context) (models.Cart, error) { return twoLineCart(), nil },
		}
		res := NewCart(m, nil).AddToCart(context.Background(), "42", 1, nil)
		assert.Equal(t, "Success: added", res.Message)
	})

	t.Run("rejected does not reload", func(t *testing.T) {
		m := &mockCartAPI{
			AddFunc: func(ctx context.Context, productID string, quantity int, options map[string]string) (api.Ack, error) {
				return api.Ack{}, nil
			},
		}
		c := NewCart(m, nil)

		res := c.AddToCart(context.Background(), "42", 1, nil)
		assert.Equal(t, ActionResult{Message: "Failed to add to cart"}, res)
		assert.Zero(t, m.loadCount())
	})

	t.Run("network error", func(t *testing.T) {
		m := &mockCartAPI{
			AddFunc: func(ctx context.Context, productID string, quantity int, options map[string]string) (api.Ack, error) {
				return api.Ack{}, errNetwork
			},
		}
		c := NewCart(m, nil)

		res := c.AddToCart(context.Background(), "42", 1, nil)
		assert.Equal(t, ActionResult{Message: NetworkErrorMessage}, res)
		assert.Zero(t, m.loadCount())
	})
}

func TestUpdateQuantity(t *testing.T) {
	m := &mockCartAPI{
		UpdateFunc: func(ctx context.Context, quantities map[string]int) (api.Ack, error) {
			assert.Equal(t, map[string]int{"c1": 4}, quantities)
			return api.Ack{Success: true}, nil
		},
		CartFunc: func(ctx context.Context) (models.Cart, error) { return twoLineCart(), nil },
	}
	c := NewCart(m, nil)

	res := c.UpdateQuantity(context.Background(), "c1", 4)
	assert.True(t, res.Success)
	assert.Equal(t, 1, m.loadCount())
}

func TestUpdateQuantity_RejectedStillReloads(t *testing.T) {
	m := &mockCartAPI{
		UpdateFunc: func(ctx context.Context, quantities map[string]int) (api.Ack, error) {
			return api.Ack{Message: "Out of stock"}, nil
		},
		CartFunc: func(ctx context.Context) (models.Cart, error) { return twoLineCart(), nil },
	}
	res := NewCart(m, nil).UpdateQuantity(context.Background(), "c1", 100)
	assert.Equal(t, ActionResult{Message: "Out of stock"}, res)
	assert.Equal(t, 1, m.loadCount())
}

func TestRemoveItem(t *testing.T) {
	m := &mockCartAPI{
		RemoveFunc: func(ctx context.Context, cartID string) (api.Ack, error) {
			assert.Equal(t, "c2", cartID)
			return api.Ack{Success: true}, nil
		},
		CartFunc: func(ctx context.Context) (models.Cart, error) {
			cart := twoLineCart()
			cart.Products = cart.Products[:1]
			return cart, nil
		},
	}
	c := NewCart(m, nil)

	res := c.RemoveItem(context.Background(), "c2")
	assert.True(t, res.Success)
	assert.Equal(t, 2, c.Snapshot().ItemCount)
}

func TestRemoveItem_NetworkError(t *testing.T) {
	m := &mockCartAPI{
		RemoveFunc: func(ctx context.Context, cartID string) (api.Ack, error) {
			return api.Ack{}, errors.New("dial tcp: refused")
		},
	}
	res := NewCart(m, nil).RemoveItem(context.Background(), "c2")
	assert.Equal(t, ActionResult{Message: NetworkErrorMessage}, res)
	assert.Zero(t, m.loadCount())
}

func TestClearCart(t *testing.T) {
	m := &mockCartAPI{CartFunc: func(ctx context.Context) (models.Cart, error) { return twoLineCart(), nil }}
	c := NewCart(m, nil)
	require.NoError(t, c.LoadCart(context.Background()))
	c.ShowCart()

	c.ClearCart()

	s := c.Snapshot()
	assert.Empty(t, s.Items)
	assert.Empty(t, s.Totals)
	assert.Zero(t, s.ItemCount)
	assert.Zero(t, s.TotalAmount)
	assert.True(t, s.IsVisible, "visibility is not part of the cart contents")
	assert.Equal(t, 1, m.loadCount(), "clearing is local only")
}

func TestClearCart_DropsInFlightFetch(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	m := &mockCartAPI{CartFunc: func(ctx context.Context) (models.Cart, error) {
		close(started)
		<-release
		return twoLineCart(), nil
	}}
	c := NewCart(m, nil)

	done := make(chan error)
	go func() { done <- c.LoadCart(context.Background()) }()
	<-started
	c.ClearCart()
	close(release)
	require.NoError(t, <-done)

	assert.Zero(t, c.Snapshot().ItemCount)
}

func TestCartVisibility(t *testing.T) {
	c := NewCart(&mockCartAPI{}, nil)

	assert.False(t, c.Snapshot().IsVisible)
	c.ToggleCart()
	assert.True(t, c.Snapshot().IsVisible)
	c.ToggleCart()
	assert.False(t, c.Snapshot().IsVisible)
	c.ShowCart()
	c.ShowCart()
	assert.True(t, c.Snapshot().IsVisible)
	c.HideCart()
	assert.False(t, c.Snapshot().IsVisible)
}

func TestItemCount(t *testing.T) {
	tests := []struct {
		name    string
		lines   []models.CartLine
		want    int
		wantBad []string
	}{
		{"empty", nil, 0, nil},
		{"sums", []models.CartLine{{Quantity: "1"}, {Quantity: "4"}}, 5, nil},
		{"whitespace", []models.CartLine{{Quantity: " 3 "}}, 3, nil},
		{"non numeric", []models.CartLine{{CartID: "x", Quantity: "two"}, {Quantity: "2"}}, 2, []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, bad := ItemCount(tt.lines)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantBad, bad)
		})
	}
}

func TestTotalAmount(t *testing.T) {
	grand := 12.25
	tests := []struct {
		name string
		cart models.Cart
		want float64
	}{
		{"no totals", models.Cart{}, 0},
		{"total row", twoLineCart(), 99.5},
		{"only sub-total", models.Cart{Totals: []models.CartTotal{{Title: "Sub-Total", Value: 10}}}, 0},
		{"title must match exactly", models.Cart{Totals: []models.CartTotal{{Title: "total", Value: 10}}}, 0},
		{"typed grand total wins", models.Cart{GrandTotal: &grand, Totals: twoLineCart().Totals}, 12.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalAmount(tt.cart))
		})
	}
}
