package store

import (
	"sync"

	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

// MemoryStore keeps the collection in process memory. Nothing survives
// the process.
type MemoryStore struct {
	mu     sync.Mutex
	data   []byte
	saved  bool
	closed bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the last saved value.
func (s *MemoryStore) Load() ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false, types.ErrStoreClosed
	}
	if !s.saved {
		return nil, false, nil
	}
	return append([]byte(nil), s.data...), true, nil
}

// Save keeps a copy of data.
func (s *MemoryStore) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrStoreClosed
	}
	s.data = append([]byte(nil), data...)
	s.saved = true
	return nil
}

// Erase forgets the saved value.
func (s *MemoryStore) Erase() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrStoreClosed
	}
	s.data = nil
	s.saved = false
	return nil
}

// Close marks the store closed; later calls return types.ErrStoreClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
