// Package backend opens the kv.Storage named by the storage config.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/babarot/sweep/internal/config"
	"github.com/babarot/sweep/internal/env"
	"github.com/babarot/sweep/internal/kv"
	"github.com/babarot/sweep/internal/kv/filekv"
	"github.com/babarot/sweep/internal/kv/sqlitekv"
	"github.com/babarot/sweep/internal/kv/valkeykv"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

func Open(ctx context.Context, cfg config.Storage) (kv.Storage, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = config.BackendFile
	}

	slog.Debug("opening storage", "backend", backend, "path", cfg.Path)

	var (
		storage kv.Storage
		err     error
	)
	switch backend {
	case config.BackendFile:
		storage, err = filekv.Open(pathOr(cfg.Path, filekv.Filename))
	case config.BackendSQLite:
		storage, err = sqlitekv.Open(ctx, pathOr(cfg.Path, sqlitekv.Filename))
	case config.BackendValkey:
		if cfg.Valkey.Address == "" {
			return nil, errors.New("storage.valkey.address is required for the valkey backend")
		}
		storage, err = valkeykv.Open(cfg.Valkey.Address, cfg.Valkey.Prefix)
	case config.BackendMemory:
		slog.Warn("memory storage is not durable, trash is lost on exit")
		storage = kv.NewMemory()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", backend, err)
	}
	return storage, nil
}

func pathOr(path, filename string) string {
	if path != "" {
		return path
	}
	return filepath.Join(env.SWEEP_DATA_DIR, filename)
}
