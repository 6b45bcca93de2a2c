package catalog

import (
	"strings"
	"sync"
)

// DefaultRecentLimit is how many searches RecentSearches keeps by default.
const DefaultRecentLimit = 5

// RecentSearches is a bounded, de-duplicated search history, newest first.
type RecentSearches struct {
	mu    sync.Mutex
	limit int
	items []string
}

// NewRecentSearches returns a history holding at most limit entries seeded
// with initial (newest first). limit <= 0 means DefaultRecentLimit.
func NewRecentSearches(limit int, initial ...string) *RecentSearches {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	r := &RecentSearches{limit: limit}
	for i := len(initial) - 1; i >= 0; i-- {
		r.Add(initial[i])
	}
	return r
}

// Add records query as the newest search. Blank queries are ignored and a
// repeated query moves to the front.
func (r *RecentSearches) Add(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]string, 0, r.limit)
	items = append(items, query)
	for _, s := range r.items {
		if s != query && len(items) < r.limit {
			items = append(items, s)
		}
	}
	r.items = items
}

// Remove drops query from the history.
func (r *RecentSearches) Remove(query string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.items[:0]
	for _, s := range r.items {
		if s != query {
			out = append(out, s)
		}
	}
	r.items = out
}

// Clear empties the history.
func (r *RecentSearches) Clear() {
	r.mu.Lock()
	r.items = nil
	r.mu.Unlock()
}

// List returns the history, newest first.
func (r *RecentSearches) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.items...)
}
