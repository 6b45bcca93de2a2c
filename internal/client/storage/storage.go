// Package storage is the client's persistence boundary. State slices are
// stored as JSON documents under string keys in a pluggable Backend.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Backend.Load when nothing is stored under a key.
var ErrNotFound = errors.New("storage: key not found")

// Backend persists raw JSON documents by key.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, b Backend, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return b.Save(ctx, key, data)
}

// LoadJSON decodes the document stored under key into v. It reports false,
// leaving v untouched, when the key is absent.
func LoadJSON(ctx context.Context, b Backend, key string, v any) (bool, error) {
	data, err := b.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
