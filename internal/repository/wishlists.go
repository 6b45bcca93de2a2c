package repository

import (
	"context"
	"slices"
	"sync"
)

// WishlistRepository keeps each customer's saved product ids.
type WishlistRepository struct {
	mu    sync.Mutex
	lists map[string][]string
}

// NewWishlistRepository returns an empty repository.
func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{lists: make(map[string][]string)}
}

// Add saves productID for customerID. Saving twice keeps one entry.
func (r *WishlistRepository) Add(_ context.Context, customerID, productID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !slices.Contains(r.lists[customerID], productID) {
		r.lists[customerID] = append(r.lists[customerID], productID)
	}
}

// Remove drops productID from customerID's list.
func (r *WishlistRepository) Remove(_ context.Context, customerID, productID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lists[customerID] = slices.DeleteFunc(r.lists[customerID], func(id string) bool {
		return id == productID
	})
}

// List returns customerID's saved product ids, oldest first.
func (r *WishlistRepository) List(_ context.Context, customerID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.lists[customerID])
}
