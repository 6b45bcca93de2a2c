// Package state holds the client-side stores that mirror backend state:
// the signed-in session, the cart snapshot, and the single-slot toast.
//
// Stores are plain values owned by the application root. Actions catch
// transport failures at their own boundary and report a result instead of
// returning the error to the presentation layer.
package state

import (
	"sync"
	"sync/atomic"
)

// NetworkErrorMessage is shown when an action failed to reach the backend.
const NetworkErrorMessage = "Network error. Please try again."

// ActionResult is the outcome of a store action.
type ActionResult struct {
	Success bool
	Message string
}

// RegisterResult adds field-keyed validation messages to ActionResult.
type RegisterResult struct {
	Success bool
	Message string
	Errors  map[string]string
}

// listeners fans a state snapshot out to subscribers. Snapshots are
// stamped under the store lock and delivered one at a time; a snapshot
// older than one already delivered is dropped, so subscribers never see
// state go backwards. Subscribers must not update the store they observe
// from inside the callback.
type listeners[T any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(T)

	seq       atomic.Uint64
	deliver   sync.Mutex
	delivered uint64
}

func (l *listeners[T]) add(fn func(T)) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func(T))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() {
		l.mu.Lock()
		delete(l.fns, id)
		l.mu.Unlock()
	}
}

// stamp orders a snapshot. Call it while holding the store lock.
func (l *listeners[T]) stamp() uint64 {
	return l.seq.Add(1)
}

func (l *listeners[T]) notify(seq uint64, v T) {
	l.deliver.Lock()
	defer l.deliver.Unlock()
	if seq <= l.delivered {
		return
	}
	l.delivered = seq

	l.mu.Lock()
	fns := make([]func(T), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
