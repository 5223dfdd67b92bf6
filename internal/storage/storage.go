// Package storage defines the key-value slot interface used for persistence.
// Backends live under internal/backend and never leak into callers.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Storage is a local key-value store holding whole documents per key,
// in the manner of a browser's localStorage.
type Storage interface {
	// GetItem returns the value stored under key.
	// ok is false when nothing has been stored under key.
	GetItem(ctx context.Context, key string) (value []byte, ok bool, err error)

	// SetItem replaces the value stored under key.
	// A write is all-or-nothing: readers never observe a partial value.
	SetItem(ctx context.Context, key string, value []byte) error

	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ErrInvalidKey is returned for keys that are empty or contain characters
// outside [a-z0-9_-].
var ErrInvalidKey = errors.New("invalid storage key")

// MaxKeyLen is the longest accepted key.
const MaxKeyLen = 64

// ValidateKey checks that key is usable by every backend (file names included).
func ValidateKey(key string) error {
	if key == "" || len(key) > MaxKeyLen {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}
