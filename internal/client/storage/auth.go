package storage

import (
	"context"

	"github.com/atinyakov/storefront/internal/models"
)

// AuthKey is the key the auth slice is persisted under.
const AuthKey = "auth-storage"

// AuthSnapshot is the persisted part of the auth state.
type AuthSnapshot struct {
	SessionToken    string           `json:"sessionToken"`
	Customer        *models.Customer `json:"customer"`
	IsAuthenticated bool             `json:"isAuthenticated"`
}

// AuthRecord is the on-disk envelope of AuthSnapshot.
type AuthRecord struct {
	State   AuthSnapshot `json:"state"`
	Version int          `json:"version"`
}

// SaveAuth persists s under AuthKey.
func SaveAuth(ctx context.Context, b Backend, s AuthSnapshot) error {
	return SaveJSON(ctx, b, AuthKey, AuthRecord{State: s})
}

// LoadAuth reads the persisted auth slice. A missing record yields the zero
// (signed out) snapshot.
func LoadAuth(ctx context.Context, b Backend) (AuthSnapshot, error) {
	var rec AuthRecord
	if _, err := LoadJSON(ctx, b, AuthKey, &rec); err != nil {
		return AuthSnapshot{}, err
	}
	return rec.State, nil
}
