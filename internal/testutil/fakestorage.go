// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"taskpad/internal/storage"
)

// FakeStorage is an in-memory implementation of storage.Storage for testing.
type FakeStorage struct {
	mu    sync.RWMutex
	items map[string][]byte

	// Writes counts successful SetItem calls.
	Writes int

	// Error injection for testing
	GetItemErr    error
	SetItemErr    error
	RemoveItemErr error
	CloseErr      error

	Closed bool
}

// NewFakeStorage creates an empty FakeStorage.
func NewFakeStorage() *FakeStorage {
	return &FakeStorage{items: make(map[string][]byte)}
}

// Put seeds key with a raw value without counting a write.
func (f *FakeStorage) Put(key string, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = []byte(value)
}

// Raw returns the raw value stored under key.
func (f *FakeStorage) Raw(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.items[key]
	return string(v), ok
}

// GetItem implements storage.Storage.
func (f *FakeStorage) GetItem(ctx context.Context, key string) ([]byte, bool, error) {
	if f.GetItemErr != nil {
		return nil, false, f.GetItemErr
	}
	if err := storage.ValidateKey(key); err != nil {
		return nil, false, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	v, ok := f.items[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// SetItem implements storage.Storage.
func (f *FakeStorage) SetItem(ctx context.Context, key string, value []byte) error {
	if f.SetItemErr != nil {
		return f.SetItemErr
	}
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	f.items[key] = v
	f.Writes++
	return nil
}

// RemoveItem implements storage.Storage.
func (f *FakeStorage) RemoveItem(ctx context.Context, key string) error {
	if f.RemoveItemErr != nil {
		return f.RemoveItemErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, key)
	return nil
}

// Close implements storage.Storage.
func (f *FakeStorage) Close() error {
	f.Closed = true
	return f.CloseErr
}
