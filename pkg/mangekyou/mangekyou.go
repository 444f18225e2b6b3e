// Package mangekyou is the public entry point for the watchlist. It opens
// the configured store and returns an engine bound to it, keeping the
// store and engine implementations internal.
package mangekyou

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/mangekyou/internal/engine"
	"github.com/mesh-intelligence/mangekyou/internal/store"
	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

// Version is the release version of mangekyou.
const Version = "0.3.0"

// Watchlist is an open collection bound to its store. See Open.
type Watchlist = engine.Engine

// ImportResult counts the outcome of Watchlist.ImportBatch and
// Watchlist.ImportJSON.
type ImportResult = engine.ImportResult

// Open opens the store described by cfg and loads the collection from it.
// The caller must Close the returned Watchlist.
//
// Example:
//
//	wl, err := mangekyou.Open(types.Config{
//	    Backend: types.BackendJSON,
//	    DataDir: ".mangekyou-db",
//	}, logger)
//	if err != nil {
//	    return err
//	}
//	defer wl.Close()
func Open(cfg types.Config, logger *slog.Logger) (*Watchlist, error) {
	s, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	return engine.New(s, engine.WithLogger(logger)), nil
}
