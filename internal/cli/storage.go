package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"taskpad/internal/backend/filestore"
	"taskpad/internal/backend/sqlitestore"
	"taskpad/internal/config"
	"taskpad/internal/storage"
)

// OpenStorage opens the backend selected by cfg.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	path := cfg.DataPath()
	logger.Debug("opening storage", "backend", cfg.Storage.Backend, "path", path)

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
		}
		st, err := sqlitestore.Open(path, cfg.Debug)
		if err != nil {
			return nil, err
		}
		return st, nil
	case config.BackendFile, "":
		st, err := filestore.New(path, logger)
		if err != nil {
			return nil, err
		}
		return st, nil
	}
	return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
}
