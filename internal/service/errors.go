// Package service implements the development commerce backend's business
// logic, delegating storage to repository interfaces.
package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized is returned when an operation needs a signed-in customer.
	ErrUnauthorized = errors.New("customer not logged in")
	// ErrInvalidCredentials is returned by Login for an unknown e-mail or a wrong password.
	ErrInvalidCredentials = errors.New("no match for e-mail address and/or password")
	// ErrNotFound is returned for unknown products, categories, cart lines and orders.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart is returned when checking out an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError maps request field names to human readable messages.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
