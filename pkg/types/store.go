package types

import "errors"

// StorageKey is the fixed key under which the serialized collection is
// stored by every backend.
const StorageKey = "mangekyou_tracker_items"

// Store is durable storage for the serialized collection. Every save
// overwrites the previous value wholesale; there are no partial writes.
type Store interface {
	// Load returns the saved representation. ok is false when nothing
	// has been saved yet.
	Load() (data []byte, ok bool, err error)

	// Save overwrites the saved representation.
	Save(data []byte) error

	// Erase removes the saved representation. Erasing when nothing is
	// saved succeeds.
	Erase() error

	// Close releases the backend. Idempotent.
	Close() error
}

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrStoreLocked = errors.New("store is locked by another process")
)
