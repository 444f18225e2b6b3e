package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/mangekyou/internal/codec"
	"github.com/mesh-intelligence/mangekyou/internal/store"
	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

var errDiskFull = errors.New("disk full")

// flakyStore wraps a MemoryStore and fails saves or loads on demand.
type flakyStore struct {
	*store.MemoryStore
	failSave  bool
	failLoad  bool
	failErase bool
	saves     int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: store.NewMemoryStore()}
}

func (s *flakyStore) Load() ([]byte, bool, error) {
	if s.failLoad {
		return nil, false, errDiskFull
	}
	return s.MemoryStore.Load()
}

func (s *flakyStore) Save(data []byte) error {
	if s.failSave {
		return errDiskFull
	}
	s.saves++
	return s.MemoryStore.Save(data)
}

func (s *flakyStore) Erase() error {
	if s.failErase {
		return errDiskFull
	}
	return s.MemoryStore.Erase()
}

// testClock returns increasing timestamps one second apart.
func testClock() func() time.Time {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Second)
	}
}

func newTestEngine(t *testing.T, s types.Store) *Engine {
	t.Helper()
	return New(s, WithClock(testClock()))
}

func mustAdd(t *testing.T, e *Engine, title string, category types.Category, notes string) types.Item {
	t.Helper()
	it, ok, err := e.Add(title, category, notes)
	require.NoError(t, err)
	require.True(t, ok)
	return it
}

func ids(items []types.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestAddPrependsWithDistinctIDs(t *testing.T) {
	e := newTestEngine(t, store.NewMemoryStore())

	const n = 25
	var added []types.Item
	for i := 0; i < n; i++ {
		added = append(added, mustAdd(t, e, fmt.Sprintf("Title %d", i), types.CategoryAnime, ""))
	}

	assert.Equal(t, n, e.Len())

	seen := make(map[string]bool)
	for _, it := range e.Items() {
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
	}

	items := e.Items()
	assert.Equal(t, added[n-1].ID, items[0].ID, "newest first")
	assert.Equal(t, added[0].ID, items[n-1].ID)
}

func TestAddTrimsAndStamps(t *testing.T) {
	e := newTestEngine(t, store.NewMemoryStore())

	it := mustAdd(t, e, "  Cowboy Bebop ", types.CategoryAnime, " session 5 ")
	assert.Equal(t, "Cowboy Bebop", it.Title)
	assert.Equal(t, "session 5", it.Notes)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC), it.CreatedAt)
	assert.NotEmpty(t, it.ID)
}

func TestAddUsesIDGeneratorOnce(t *testing.T) {
	calls := 0
	e := New(store.NewMemoryStore(), WithIDGenerator(func() string {
		calls++
		return fmt.Sprintf("id-%d", calls)
	}))

	it := mustAdd(t, e, "Perfect Blue", types.CategoryMovie, "")
	assert.Equal(t, "id-1", it.ID)
	assert.Equal(t, 1, calls)
}

func TestInvalidUTF8SurvivesReload(t *testing.T) {
	s := store.NewMemoryStore()
	e := newTestEngine(t, s)

	added := mustAdd(t, e, "Na\xffruto", types.CategoryAnime, "n\xfe")
	assert.Equal(t, "Na\uFFFDruto", added.Title)
	assert.Equal(t, "n\uFFFD", added.Notes)

	res, err := e.ImportBatch([]types.RawRecord{{"id": "imp-1", "title": "Ak\xc3ira", "notes": "\xff\xfe"}})
	require.NoError(t, err)
	require.Equal(t, 1, res.Imported)

	before := e.Items()
	reloaded := New(s).Items()
	assert.Equal(t, ids(before), ids(reloaded))
	for i := range before {
		assert.Equal(t, before[i].Title, reloaded[i].Title)
		assert.Equal(t, before[i].Notes, reloaded[i].Notes)
	}
}

func TestAddWhitespaceTitleIsNoOp(t *testing.T) {
	s := newFlakyStore()
	e := newTestEngine(t, s)
	mustAdd(t, e, "Existing", types.CategoryGame, "")
	before := e.Items()
	saves := s.saves

	for _, title := range []string{"", " ", "\t\n  "} {
		it, ok, err := e.Add(title, types.CategoryMovie, "notes")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, types.Item{}, it)
	}

	assert.Equal(t, before, e.Items())
	assert.Equal(t, saves, s.saves, "no-op add does not persist")
}

func TestAddInvalidCategory(t *testing.T) {
	e := newTestEngine(t, store.NewMemoryStore())
	_, ok, err := e.Add("Chess", types.Category("board"), "")
	assert.ErrorIs(t, err, types.ErrInvalidCategory)
	assert.False(t, ok)
	assert.Zero(t, e.Len())
}

func TestAddRegeneratesCollidingID(t *testing.T) {
	gen := []string{"dup", "dup", "fresh"}
	i := 0
	e := New(store.NewMemoryStore(), WithIDGenerator(func() string {
		id := gen[i]
		i++
		return id
	}))

	first := mustAdd(t, e, "One", types.CategoryAnime, "")
	second := mustAdd(t, e, "Two", types.CategoryAnime, "")
	assert.Equal(t, "dup", first.ID)
	assert.Equal(t, "fresh", second.ID)
}

func TestAddPersistFailureLeavesCollection(t *testing.T) {
	s := newFlakyStore()
	e := newTestEngine(t, s)
	mustAdd(t, e, "Kept", types.CategoryDrama, "")

	s.failSave = true
	_, ok, err := e.Add("Lost", types.CategoryDrama, "")
	assert.ErrorIs(t, err, errDiskFull)
	assert.False(t, ok)
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, "Kept", e.Items()[0].Title)
}

func TestRemove(t *testing.T) {
	e := newTestEngine(t, store.NewMemoryStore())
	a := mustAdd(t, e, "A", types.CategoryAnime, "")
	b := mustAdd(t, e, "B", types.CategoryMovie, "")
	c := mustAdd(t, e, "C", types.CategoryGame, "")

	t.Run("absent id leaves collection unchanged", func(t *testing.T) {
		before := e.Items()
		removed, err := e.Remove("no-such-id")
		require.NoError(t, err)
		assert.False(t, removed)
		assert.Equal(t, before, e.Items())
	})

	t.Run("present id removes exactly that item", func(t *testing.T) {
		removed, err := e.Remove(b.ID)
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Equal(t, []string{c.ID, a.ID}, ids(e.Items()))

		_, err = e.Get(b.ID)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestRemovePersistFailure(t *testing.T) {
	s := newFlakyStore()
	e := newTestEngine(t, s)
	a := mustAdd(t, e, "A", types.CategoryAnime, "")

	s.failSave = true
	removed, err := e.Remove(a.ID)
	assert.ErrorIs(t, err, errDiskFull)
	assert.False(t, removed)
	assert.Equal(t, 1, e.Len())
}

func TestMutationsPersist(t *testing.T) {
	s := store.NewMemoryStore()
	e := newTestEngine(t, s)
	a := mustAdd(t, e, "A", types.CategoryAnime, "first")
	b := mustAdd(t, e, "B", types.CategoryMovie, "")
	_, err := e.Remove(a.ID)
	require.NoError(t, err)

	data, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)
	saved, err := codec.DecodePersisted(data)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, ids(saved))

	reopened := New(s)
	assert.Equal(t, e.Items(), reopened.Items())
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendJSON, DataDir: dir}

	s, err := store.Open(cfg)
	require.NoError(t, err)
	e := newTestEngine(t, s)
	mustAdd(t, e, "A", types.CategoryAnime, "")
	mustAdd(t, e, "B", types.CategoryGame, "")

	require.NoError(t, e.Clear())
	assert.Zero(t, e.Len())
	require.NoError(t, e.Close())

	s, err = store.Open(cfg)
	require.NoError(t, err)
	_, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok, "clear erases the persisted record")

	fresh := New(s)
	defer fresh.Close()
	assert.Zero(t, fresh.Len())
}

func TestClearEraseFailure(t *testing.T) {
	s := newFlakyStore()
	e := newTestEngine(t, s)
	mustAdd(t, e, "A", types.CategoryAnime, "")

	s.failErase = true
	assert.ErrorIs(t, e.Clear(), errDiskFull)
	assert.Equal(t, 1, e.Len())
}

func TestNewRecoversFromBadStore(t *testing.T) {
	t.Run("corrupt data", func(t *testing.T) {
		s := store.NewMemoryStore()
		require.NoError(t, s.Save([]byte("{not json")))

		e := New(s)
		assert.Zero(t, e.Len())
		assert.NotNil(t, e.Items())

		mustAdd(t, e, "After", types.CategoryAnime, "")
		assert.Equal(t, 1, e.Len())
	})

	t.Run("load error", func(t *testing.T) {
		s := newFlakyStore()
		s.failLoad = true
		e := New(s)
		assert.Zero(t, e.Len())
	})
}

func TestGetReturnsItem(t *testing.T) {
	e := newTestEngine(t, store.NewMemoryStore())
	a := mustAdd(t, e, "A", types.CategoryAnime, "note")

	got, err := e.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestItemsReturnsCopy(t *testing.T) {
	e := newTestEngine(t, store.NewMemoryStore())
	mustAdd(t, e, "A", types.CategoryAnime, "")

	items := e.Items()
	items[0].Title = "mutated"
	assert.Equal(t, "A", e.Items()[0].Title)
}

func TestExportTable(t *testing.T) {
	e := newTestEngine(t, store.NewMemoryStore())
	mustAdd(t, e, `Na"ruto`, types.CategoryAnime, "")

	data, err := e.ExportTable()
	require.NoError(t, err)
	assert.Contains(t, string(data), "id,title,category,notes,createdAt\n")
	assert.Contains(t, string(data), `"Na""ruto"`)
}
