package store

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

// dbFileName is the database file inside the data directory.
const dbFileName = "mangekyou.db"

// createKV is the key-value table holding the serialized collection.
const createKV = `CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

// SQLiteStore keeps the collection as one row of a key-value table.
type SQLiteStore struct {
	mu  sync.Mutex
	db  *sql.DB
	key string
}

// OpenSQLiteStore opens or creates the database in dataDir.
func OpenSQLiteStore(dataDir string) (*SQLiteStore, error) {
	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbPath, err)
	}
	// A single connection serializes writers inside this process.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec(createKV); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db, key: types.StorageKey}, nil
}

// Load returns the stored value; ok is false when no row exists.
func (s *SQLiteStore) Load() ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, false, types.ErrStoreClosed
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", s.key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("loading %s: %w", s.key, err)
	}
	return []byte(value), true, nil
}

// Save upserts the stored value.
func (s *SQLiteStore) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return types.ErrStoreClosed
	}

	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving %s: %w", s.key, err)
	}
	return nil
}

// Erase deletes the stored row.
func (s *SQLiteStore) Erase() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return types.ErrStoreClosed
	}
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", s.key); err != nil {
		return fmt.Errorf("erasing %s: %w", s.key, err)
	}
	return nil
}

// Close closes the database. Idempotent.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
