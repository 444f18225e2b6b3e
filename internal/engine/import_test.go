package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/mangekyou/internal/store"
	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

func TestImportBatchPrependsInOrder(t *testing.T) {
	e := newTestEngine(t, store.NewMemoryStore())
	existing := mustAdd(t, e, "Existing", types.CategoryAnime, "")

	res, err := e.ImportBatch([]types.RawRecord{
		{"id": "i1", "title": "First", "category": "movie"},
		{"id": "i2", "title": "Second", "category": "game"},
	})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 2, Skipped: 0}, res)
	assert.Equal(t, []string{"i1", "i2", existing.ID}, ids(e.Items()))

	res, err = e.ImportBatch([]types.RawRecord{{"id": "i3", "title": "Third"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, []string{"i3", "i1", "i2", existing.ID}, ids(e.Items()), "newest batch first")
}

func TestImportBatchSkipsDuplicates(t *testing.T) {
	e := newTestEngine(t, store.NewMemoryStore())
	_, err := e.ImportBatch([]types.RawRecord{{"id": "dup", "title": "Original", "notes": "keep me"}})
	require.NoError(t, err)

	res, err := e.ImportBatch([]types.RawRecord{
		{"id": "dup", "title": "Replacement", "notes": "should not win"},
		{"id": "new", "title": "New"},
	})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 1, Skipped: 1}, res)

	got, err := e.Get("dup")
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Title)
	assert.Equal(t, "keep me", got.Notes)
	assert.Equal(t, 2, e.Len())
}

func TestImportBatchSkipsDuplicatesWithinBatch(t *testing.T) {
	e := newTestEngine(t, store.NewMemoryStore())

	res, err := e.ImportBatch([]types.RawRecord{
		{"id": "x", "title": "First"},
		{"id": "x", "title": "Second"},
	})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 1, Skipped: 1}, res)

	got, err := e.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
}

func TestImportBatchSkipsEmptyTitles(t *testing.T) {
	e := newTestEngine(t, store.NewMemoryStore())

	res, err := e.ImportBatch([]types.RawRecord{
		{"id": "a"},
		{"id": "b", "title": "   "},
		{},
		{"title": "Kept"},
	})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 1, Skipped: 3}, res)
	require.Equal(t, 1, e.Len())
	assert.Equal(t, "Kept", e.Items()[0].Title)
}

func TestImportBatchNormalizes(t *testing.T) {
	e := newTestEngine(t, store.NewMemoryStore())

	_, err := e.ImportBatch([]types.RawRecord{
		{"title": "No ID", "category": "book"},
	})
	require.NoError(t, err)

	it := e.Items()[0]
	assert.NotEmpty(t, it.ID)
	assert.Equal(t, types.CategoryAnime, it.Category)
	assert.False(t, it.CreatedAt.IsZero())
}

func TestImportBatchNothingAcceptedDoesNotPersist(t *testing.T) {
	s := newFlakyStore()
	e := newTestEngine(t, s)
	a := mustAdd(t, e, "A", types.CategoryAnime, "")
	saves := s.saves

	res, err := e.ImportBatch([]types.RawRecord{{"id": a.ID, "title": "A again"}})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 0, Skipped: 1}, res)
	assert.Equal(t, saves, s.saves)
}

func TestImportBatchPersistFailure(t *testing.T) {
	s := newFlakyStore()
	e := newTestEngine(t, s)
	s.failSave = true

	res, err := e.ImportBatch([]types.RawRecord{{"id": "a", "title": "A"}})
	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, ImportResult{}, res)
	assert.Zero(t, e.Len())
}

func TestImportJSON(t *testing.T) {
	e := newTestEngine(t, store.NewMemoryStore())

	res, err := e.ImportJSON([]byte(`[
		{"id":"1","title":"Spirited Away","category":"movie","notes":"Ghibli","createdAt":"2024-03-01T10:00:00.000Z"},
		{"id":"2","title":"Hades","category":"game"}
	]`))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	got, err := e.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Spirited Away", got.Title)
	assert.Equal(t, types.CategoryMovie, got.Category)
	assert.Equal(t, "2024-03-01T10:00:00Z", got.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
}

func TestImportJSONRejectsWithoutMutation(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{name: "object", payload: `{"a":1}`, wantErr: types.ErrImportShapeInvalid},
		{name: "scalar", payload: `7`, wantErr: types.ErrImportShapeInvalid},
		{name: "malformed", payload: `[{"title":`, wantErr: types.ErrImportMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFlakyStore()
			e := newTestEngine(t, s)
			mustAdd(t, e, "A", types.CategoryAnime, "")
			before := e.Items()
			saves := s.saves

			res, err := e.ImportJSON([]byte(tt.payload))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, ImportResult{}, res)
			assert.Equal(t, before, e.Items())
			assert.Equal(t, saves, s.saves)
		})
	}
}
