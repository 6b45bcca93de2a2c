package state

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/atinyakov/storefront/internal/client/api"
	"github.com/atinyakov/storefront/internal/models"
)

// CartAPI is the part of the API client the cart store needs.
type CartAPI interface {
	Cart(ctx context.Context) (models.Cart, error)
	AddToCart(ctx context.Context, productID string, quantity int, options map[string]string) (api.Ack, error)
	UpdateCart(ctx context.Context, quantities map[string]int) (api.Ack, error)
	RemoveFromCart(ctx context.Context, cartID string) (api.Ack, error)
}

// CartState is a snapshot of the cart. Items, Totals, ItemCount and
// TotalAmount always come from one full backend fetch.
type CartState struct {
	Items       []models.CartLine
	Totals      []models.CartTotal
	IsLoading   bool
	IsVisible   bool
	ItemCount   int
	TotalAmount float64
}

func (s CartState) clone() CartState {
	s.Items = append([]models.CartLine(nil), s.Items...)
	s.Totals = append([]models.CartTotal(nil), s.Totals...)
	return s
}

// Cart mirrors the backend cart. Mutations write through the API and then
// re-read the whole cart; nothing is patched locally.
type Cart struct {
	api CartAPI
	log *zap.Logger

	mu       sync.Mutex
	state    CartState
	inflight int
	// issued numbers each fetch; applied is the newest fetch whose result is shown.
	issued  uint64
	applied uint64
	subs    listeners[CartState]
}

// NewCart returns an empty, hidden cart store.
func NewCart(client CartAPI, log *zap.Logger) *Cart {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cart{
		api: client,
		log: log,
		state: CartState{
			Items:  []models.CartLine{},
			Totals: []models.CartTotal{},
		},
	}
}

// Snapshot returns a copy of the current state.
func (c *Cart) Snapshot() CartState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subscribe registers fn to receive every new state.
func (c *Cart) Subscribe(fn func(CartState)) (unsubscribe func()) {
	return c.subs.add(fn)
}

func (c *Cart) update(mutate func(*CartState)) {
	c.mu.Lock()
	mutate(&c.state)
	snap := c.state.clone()
	seq := c.subs.stamp()
	c.mu.Unlock()
	c.subs.notify(seq, snap)
}

// LoadCart re-fetches the full cart. On failure the previous items and totals
// stay in place. A fetch that completes after a newer fetch was applied is
// discarded.
func (c *Cart) LoadCart(ctx context.Context) error {
	var seq uint64
	c.update(func(s *CartState) {
		c.issued++
		seq = c.issued
		c.inflight++
		s.IsLoading = true
	})

	cart, err := c.api.Cart(ctx)
	if err != nil {
		c.log.Error("failed to load cart", zap.Error(err))
	}

	c.update(func(s *CartState) {
		c.inflight--
		s.IsLoading = c.inflight > 0
		if err != nil || seq <= c.applied {
			return
		}
		c.applied = seq
		s.Items = cart.Products
		s.Totals = cart.Totals
		s.ItemCount = c.itemCount(cart.Products)
		s.TotalAmount = TotalAmount(cart)
	})
	return err
}

// AddToCart adds a product and reloads the cart when the backend accepts it.
func (c *Cart) AddToCart(ctx context.Context, productID string, quantity int, options map[string]string) ActionResult {
	res, err := c.api.AddToCart(ctx, productID, quantity, options)
	if err != nil {
		c.log.Error("add to cart error", zap.Error(err))
		return ActionResult{Message: NetworkErrorMessage}
	}
	if !res.Success {
		return ActionResult{Message: orDefault(res.Message, "Failed to add to cart")}
	}

	_ = c.LoadCart(ctx)
	return ActionResult{Success: true, Message: orDefault(res.Message, "Product added to cart")}
}

// UpdateQuantity sets a line's quantity and reloads the cart. Removing a line
// when the quantity drops to zero is the caller's decision.
func (c *Cart) UpdateQuantity(ctx context.Context, cartID string, quantity int) ActionResult {
	res, err := c.api.UpdateCart(ctx, map[string]int{cartID: quantity})
	if err != nil {
		c.log.Error("update quantity error", zap.Error(err))
		return ActionResult{Message: NetworkErrorMessage}
	}

	_ = c.LoadCart(ctx)
	return ActionResult{Success: res.Success, Message: res.Message}
}

// RemoveItem deletes a line and reloads the cart.
func (c *Cart) RemoveItem(ctx context.Context, cartID string) ActionResult {
	res, err := c.api.RemoveFromCart(ctx, cartID)
	if err != nil {
		c.log.Error("remove item error", zap.Error(err))
		return ActionResult{Message: NetworkErrorMessage}
	}

	_ = c.LoadCart(ctx)
	return ActionResult{Success: res.Success, Message: res.Message}
}

// ClearCart resets the local snapshot without calling the backend. Fetches
// already in flight are not applied afterwards.
func (c *Cart) ClearCart() {
	c.update(func(s *CartState) {
		c.applied = c.issued
		s.Items = []models.CartLine{}
		s.Totals = []models.CartTotal{}
		s.ItemCount = 0
		s.TotalAmount = 0
	})
}

// ShowCart makes the cart overlay visible.
func (c *Cart) ShowCart() { c.update(func(s *CartState) { s.IsVisible = true }) }

// HideCart hides the cart overlay.
func (c *Cart) HideCart() { c.update(func(s *CartState) { s.IsVisible = false }) }

// ToggleCart flips overlay visibility.
func (c *Cart) ToggleCart() { c.update(func(s *CartState) { s.IsVisible = !s.IsVisible }) }

func (c *Cart) itemCount(lines []models.CartLine) int {
	n, bad := ItemCount(lines)
	for _, id := range bad {
		c.log.Warn("non-numeric cart quantity", zap.String("cart_id", id))
	}
	return n
}

// ItemCount sums line quantities. Lines whose quantity is not an integer
// count as zero; their cart ids are returned in bad.
func ItemCount(lines []models.CartLine) (n int, bad []string) {
	for _, l := range lines {
		q, err := strconv.Atoi(strings.TrimSpace(l.Quantity))
		if err != nil {
			bad = append(bad, l.CartID)
			continue
		}
		n += q
	}
	return n, bad
}

// TotalAmount is the cart's grand total: the typed grand_total field when the
// backend sends one, else the value of the row titled exactly "Total", else 0.
func TotalAmount(cart models.Cart) float64 {
	if cart.GrandTotal != nil {
		return *cart.GrandTotal
	}
	for _, t := range cart.Totals {
		if t.Title == models.TotalTitle {
			return t.Value
		}
	}
	return 0
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
