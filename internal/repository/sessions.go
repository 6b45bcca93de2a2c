package repository

import (
	"context"
	"sync"
	"time"
)

// Session is a backend session identified by the OCSESSID cookie value.
type Session struct {
	ID string
	// CustomerID is empty for guest sessions.
	CustomerID string
	LastSeen   time.Time
}

// SessionRepository tracks sessions and when they were last used.
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewSessionRepository returns an empty repository using the wall clock.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Touch marks session id as used now, creating it when unknown.
func (r *SessionRepository) Touch(_ context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = &Session{ID: id}
		r.sessions[id] = s
	}
	s.LastSeen = r.now()
}

// Get returns session id.
func (r *SessionRepository) Get(_ context.Context, id string) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// Bind signs customerID in on session id.
func (r *SessionRepository) Bind(_ context.Context, id, customerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = &Session{ID: id}
		r.sessions[id] = s
	}
	s.CustomerID = customerID
	s.LastSeen = r.now()
}

// Unbind signs session id out, keeping the session itself.
func (r *SessionRepository) Unbind(_ context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		s.CustomerID = ""
	}
}

// DeleteIdle removes sessions not seen since before and returns their ids.
func (r *SessionRepository) DeleteIdle(_ context.Context, before time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []string
	for id, s := range r.sessions {
		if s.LastSeen.Before(before) {
			delete(r.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed
}
