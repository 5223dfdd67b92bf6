// Package filestore implements storage.Storage with one JSON file per key.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"taskpad/internal/storage"
)

const (
	// fileExt is appended to every key to form the slot file name.
	fileExt = ".json"

	// lockExt names the sidecar lock file. Locking a sidecar instead of the
	// slot itself keeps the lock valid across the atomic rename.
	lockExt = ".lock"

	// lockRetryDelay is the polling interval while waiting for a lock.
	lockRetryDelay = 20 * time.Millisecond
)

// Store keeps each key in <dir>/<key>.json.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates a Store rooted at dir, creating the directory with mode 0700.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the slot file for key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

// GetItem implements storage.Storage.
func (s *Store) GetItem(ctx context.Context, key string) ([]byte, bool, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, false, err
	}

	fl, err := s.lock(ctx, key, true)
	if err != nil {
		return nil, false, err
	}
	defer s.unlock(fl)

	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", s.Path(key), err)
	}
	return data, true, nil
}

// SetItem implements storage.Storage.
// The value is written to a temp file in the same directory and renamed
// over the slot, so a crash mid-write leaves the previous value intact.
func (s *Store) SetItem(ctx context.Context, key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}

	fl, err := s.lock(ctx, key, false)
	if err != nil {
		return err
	}
	defer s.unlock(fl)

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		cleanup()
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.Path(key)); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s: %w", s.Path(key), err)
	}

	s.logger.Debug("slot written", "key", key, "bytes", len(value))
	return nil
}

// RemoveItem implements storage.Storage.
func (s *Store) RemoveItem(ctx context.Context, key string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}

	fl, err := s.lock(ctx, key, false)
	if err != nil {
		return err
	}
	defer s.unlock(fl)

	if err := os.Remove(s.Path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", s.Path(key), err)
	}
	return nil
}

// Close implements storage.Storage. Locks are released per call, so there
// is nothing left to release.
func (s *Store) Close() error {
	return nil
}

func (s *Store) lock(ctx context.Context, key string, shared bool) (*flock.Flock, error) {
	fl := flock.New(filepath.Join(s.dir, key+lockExt))

	var (
		locked bool
		err    error
	)
	if shared {
		locked, err = fl.TryRLockContext(ctx, lockRetryDelay)
	} else {
		locked, err = fl.TryLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", key, err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to lock %s: lock not acquired", key)
	}
	return fl, nil
}

func (s *Store) unlock(fl *flock.Flock) {
	if err := fl.Unlock(); err != nil {
		s.logger.Warn("failed to release lock", "path", fl.Path(), "error", err)
	}
}
