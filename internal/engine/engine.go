// Package engine owns the in-memory watchlist and routes every mutation
// through a mutate-then-persist sequence against a types.Store.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mesh-intelligence/mangekyou/internal/codec"
	"github.com/mesh-intelligence/mangekyou/internal/logging"
	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

// Engine holds the ordered collection, newest first. Callers only ever
// receive copies of the items slice.
type Engine struct {
	mu     sync.RWMutex
	items  []types.Item
	store  types.Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logging.NewComponentLogger(logger, "engine")
	}
}

// WithClock overrides the time source used for new items.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator overrides the ID generator used for new items.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

// New creates an Engine on store and loads the saved collection. Load
// problems never fail construction: an unreadable or corrupt record is
// logged and the engine starts empty.
func New(store types.Store, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		logger: logging.NewComponentLogger(nil, "engine"),
		now:    time.Now,
		newID:  types.NewItemID,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.items = e.load()
	return e
}

func (e *Engine) load() []types.Item {
	data, ok, err := e.store.Load()
	if err != nil {
		e.logger.Warn("collection unavailable, starting empty", slog.Any("error", err))
		return []types.Item{}
	}
	if !ok {
		return []types.Item{}
	}

	items, err := codec.DecodePersisted(data)
	if err != nil {
		e.logger.Warn("collection corrupt, starting empty", slog.Any("error", err))
		return []types.Item{}
	}
	e.logger.Debug("collection loaded", slog.Int("items", len(items)))
	return items
}

// commit persists next and publishes it as the current collection. On a
// save failure the current collection is left as it was. The caller must
// hold e.mu.
func (e *Engine) commit(next []types.Item) error {
	data, err := codec.EncodePersisted(next)
	if err != nil {
		return err
	}
	if err := e.store.Save(data); err != nil {
		return fmt.Errorf("persisting collection: %w", err)
	}
	e.items = next
	return nil
}

// Add creates an item and puts it at the front of the collection. A title
// that is empty after trimming is a silent no-op: ok is false and err is
// nil. An unrecognized category returns types.ErrInvalidCategory.
func (e *Engine) Add(title string, category types.Category, notes string) (types.Item, bool, error) {
	item, err := types.NewItem(e.newID(), title, category, notes, e.now())
	if err != nil {
		if errors.Is(err, types.ErrInvalidTitle) {
			return types.Item{}, false, nil
		}
		return types.Item{}, false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for e.indexOf(item.ID) >= 0 {
		item.ID = e.newID()
	}

	next := make([]types.Item, 0, len(e.items)+1)
	next = append(next, item)
	next = append(next, e.items...)
	if err := e.commit(next); err != nil {
		return types.Item{}, false, err
	}

	e.logger.Debug("item added", slog.String(logging.FieldItemID, item.ID))
	return item, true, nil
}

// Remove deletes the item with the given id. Removing an id that is not
// present is not an error; removed reports whether anything changed.
func (e *Engine) Remove(id string) (removed bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := make([]types.Item, 0, len(e.items)-1)
	next = append(next, e.items[:idx]...)
	next = append(next, e.items[idx+1:]...)
	if err := e.commit(next); err != nil {
		return false, err
	}

	e.logger.Debug("item removed", slog.String(logging.FieldItemID, id))
	return true, nil
}

// Clear empties the collection and erases the persisted record.
func (e *Engine) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Erase(); err != nil {
		return fmt.Errorf("erasing collection: %w", err)
	}
	n := len(e.items)
	e.items = []types.Item{}

	e.logger.Debug("collection cleared", slog.Int("items", n))
	return nil
}

// Items returns a copy of the collection in current order.
func (e *Engine) Items() []types.Item {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]types.Item, len(e.items))
	copy(out, e.items)
	return out
}

// Len returns the number of items.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.items)
}

// Get returns the item with the given id, or types.ErrNotFound.
func (e *Engine) Get(id string) (types.Item, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	idx := e.indexOf(id)
	if idx < 0 {
		return types.Item{}, types.ErrNotFound
	}
	return e.items[idx], nil
}

// ExportTable renders the current collection as CSV.
func (e *Engine) ExportTable() ([]byte, error) {
	return codec.EncodeTable(e.Items())
}

// Close releases the underlying store.
func (e *Engine) Close() error {
	return e.store.Close()
}

// indexOf returns the position of id, or -1. The caller must hold e.mu.
func (e *Engine) indexOf(id string) int {
	for i, it := range e.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
