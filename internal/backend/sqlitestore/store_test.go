package sqlitestore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskpad/internal/storage"
)

// setupTestStore creates a Store over an in-memory SQLite database.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	s, err := New(db)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_GetMissingKey(t *testing.T) {
	s := setupTestStore(t)

	value, ok, err := s.GetItem(context.Background(), "tasks")
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if ok {
		t.Errorf("expected ok=false, got value %q", value)
	}
}

func TestStore_Upsert(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if err := s.SetItem(ctx, "tasks", []byte("first")); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	if err := s.SetItem(ctx, "tasks", []byte("second")); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}

	value, ok, err := s.GetItem(ctx, "tasks")
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true")
	}
	if string(value) != "second" {
		t.Errorf("expected %q, got %q", "second", value)
	}

	var count int64
	if err := s.db.Model(&item{}).Count(&count).Error; err != nil {
		t.Fatalf("count error = %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}
}

func TestStore_RemoveItem(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if err := s.SetItem(ctx, "tasks", []byte("x")); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	if err := s.RemoveItem(ctx, "tasks"); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if _, ok, _ := s.GetItem(ctx, "tasks"); ok {
		t.Error("expected key to be removed")
	}
	if err := s.RemoveItem(ctx, "tasks"); err != nil {
		t.Errorf("removing absent key should not fail, got %v", err)
	}
}

func TestStore_InvalidKey(t *testing.T) {
	s := setupTestStore(t)

	err := s.SetItem(context.Background(), "no spaces", []byte("x"))
	if !errors.Is(err, storage.ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestOpen_PersistsAcrossConnections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskpad.db")
	ctx := context.Background()

	s, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.SetItem(ctx, "tasks", []byte(`[]`)); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = Open(path, false)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	value, ok, err := s.GetItem(ctx, "tasks")
	if err != nil || !ok {
		t.Fatalf("GetItem() = %q, %v, %v", value, ok, err)
	}
	if string(value) != "[]" {
		t.Errorf("expected %q, got %q", "[]", value)
	}
}
