// Package store implements durable storage for the serialized watchlist.
// Each backend keeps a single value under types.StorageKey and overwrites
// it wholesale on every save.
package store

import (
	"fmt"
	"os"

	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

// Compile-time interface checks.
var (
	_ types.Store = (*FileStore)(nil)
	_ types.Store = (*SQLiteStore)(nil)
	_ types.Store = (*MemoryStore)(nil)
)

// Open validates cfg, creates the data directory when the backend needs
// one, and opens the selected backend.
func Open(cfg types.Config) (types.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Backend == types.BackendMemory {
		return NewMemoryStore(), nil
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	switch cfg.Backend {
	case types.BackendJSON:
		return OpenFileStore(cfg.DataDir)
	case types.BackendSQLite:
		return OpenSQLiteStore(cfg.DataDir)
	default:
		return nil, types.ErrBackendUnknown
	}
}
