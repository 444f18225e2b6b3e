package store

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

// File names inside the data directory for the json backend.
const (
	fileName     = types.StorageKey + ".json"
	lockFileName = "mangekyou.lock"
)

// FileStore keeps the collection in a single JSON file. An advisory file
// lock held from open to close keeps a second process from writing the
// same data directory.
type FileStore struct {
	mu     sync.Mutex
	path   string
	lock   *flock.Flock
	closed bool
}

// OpenFileStore opens the json backend in dataDir, which must exist.
// Returns types.ErrStoreLocked when another process holds the lock.
func OpenFileStore(dataDir string) (*FileStore, error) {
	lock := flock.New(filepath.Join(dataDir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring store lock: %w", err)
	}
	if !ok {
		return nil, types.ErrStoreLocked
	}
	return &FileStore{
		path: filepath.Join(dataDir, fileName),
		lock: lock,
	}, nil
}

// Path returns the location of the collection file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the collection file. A missing file means nothing was saved.
func (s *FileStore) Load() ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false, types.ErrStoreClosed
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return data, true, nil
}

// Save replaces the collection file atomically.
func (s *FileStore) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrStoreClosed
	}
	return writeFileAtomic(s.path, data)
}

// Erase deletes the collection file. A missing file is not an error.
func (s *FileStore) Erase() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrStoreClosed
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", s.path, err)
	}
	return nil
}

// Close releases the file lock. Idempotent.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.lock.Unlock(); err != nil {
		return fmt.Errorf("releasing store lock: %w", err)
	}
	return nil
}

// writeFileAtomic writes data using the temp-file, fsync, rename pattern so
// readers never observe a partially written collection.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".collection-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing collection: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
