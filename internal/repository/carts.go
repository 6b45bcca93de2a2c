package repository

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"
)

// CartItem is one stored cart line. Options maps product option ids to the
// chosen value (a product option value id for select options).
type CartItem struct {
	CartID    string
	ProductID string
	Quantity  int
	Options   map[string]string
}

// CartRepository keeps one cart per session.
type CartRepository struct {
	mu    sync.Mutex
	carts map[string][]CartItem
}

// NewCartRepository returns an empty repository.
func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string][]CartItem)}
}

// Items returns the lines of session's cart in insertion order.
func (r *CartRepository) Items(_ context.Context, session string) []CartItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]CartItem(nil), r.carts[session]...)
}

// Add puts item in session's cart. A line for the same product with the same
// options absorbs the quantity instead of a new line being created. The
// returned item carries the cart id.
func (r *CartRepository) Add(_ context.Context, session string, item CartItem) CartItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.carts[session]
	for i, l := range lines {
		if l.ProductID == item.ProductID && maps.Equal(l.Options, item.Options) {
			lines[i].Quantity += item.Quantity
			return lines[i]
		}
	}
	item.CartID = uuid.NewString()
	r.carts[session] = append(lines, item)
	return item
}

// SetQuantity changes the quantity of line cartID. A quantity below 1
// removes the line.
func (r *CartRepository) SetQuantity(_ context.Context, session, cartID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.carts[session]
	for i, l := range lines {
		if l.CartID != cartID {
			continue
		}
		if quantity < 1 {
			r.carts[session] = append(lines[:i], lines[i+1:]...)
			return nil
		}
		lines[i].Quantity = quantity
		return nil
	}
	return ErrNotFound
}

// Remove deletes line cartID.
func (r *CartRepository) Remove(ctx context.Context, session, cartID string) error {
	return r.SetQuantity(ctx, session, cartID, 0)
}

// Clear empties session's cart.
func (r *CartRepository) Clear(_ context.Context, session string) {
	r.mu.Lock()
	delete(r.carts, session)
	r.mu.Unlock()
}
