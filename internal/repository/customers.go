// Package repository provides the in-memory stores behind the development
// commerce backend: customers, sessions, catalog, carts, wishlists and orders.
package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/atinyakov/storefront/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned by CustomerRepository.Create for a duplicate e-mail.
	ErrEmailTaken = errors.New("email already registered")
)

// CustomerRecord is a customer together with the bcrypt hash of their password.
type CustomerRecord struct {
	models.Customer
	PasswordHash []byte
}

// CustomerRepository keeps customer accounts indexed by id and by e-mail.
type CustomerRepository struct {
	mu      sync.RWMutex
	byID    map[string]CustomerRecord
	byEmail map[string]string
	nextID  int
}

// NewCustomerRepository returns an empty repository.
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		byID:    make(map[string]CustomerRecord),
		byEmail: make(map[string]string),
		nextID:  1,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create stores rec under a newly assigned id. E-mail addresses are unique
// regardless of case.
func (r *CustomerRepository) Create(_ context.Context, rec CustomerRecord) (models.Customer, error) {
	key := normalizeEmail(rec.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[key]; ok {
		return models.Customer{}, ErrEmailTaken
	}
	rec.ID = strconv.Itoa(r.nextID)
	r.nextID++
	r.byID[rec.ID] = rec
	r.byEmail[key] = rec.ID
	return rec.Customer, nil
}

// ByEmail looks a customer up by e-mail address.
func (r *CustomerRepository) ByEmail(_ context.Context, email string) (CustomerRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return CustomerRecord{}, ErrNotFound
	}
	return r.byID[id], nil
}

// ByID returns the profile of customer id.
func (r *CustomerRepository) ByID(_ context.Context, id string) (models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return models.Customer{}, ErrNotFound
	}
	return rec.Customer, nil
}
