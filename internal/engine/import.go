package engine

import (
	"log/slog"

	"github.com/mesh-intelligence/mangekyou/internal/codec"
	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

// ImportResult counts the outcome of an import.
type ImportResult struct {
	Imported int // candidates added to the collection
	Skipped  int // duplicates by id and records with no title
}

// ImportJSON decodes an import file and merges it with ImportBatch. A
// payload that is not valid JSON, or not a JSON array, is rejected with
// types.ErrImportMalformed or types.ErrImportShapeInvalid and nothing
// changes.
func (e *Engine) ImportJSON(data []byte) (ImportResult, error) {
	records, err := codec.DecodeImport(data)
	if err != nil {
		return ImportResult{}, err
	}
	return e.ImportBatch(records)
}

// ImportBatch merges loosely-typed records into the collection. A record
// whose id is already present, either in the collection or earlier in the
// same batch, is skipped. Every other record is coerced to an Item; those
// with an empty title are skipped too. Accepted items are placed ahead of
// the existing collection as one block in input order. Nothing is written
// when no record is accepted.
func (e *Engine) ImportBatch(records []types.RawRecord) (ImportResult, error) {
	norm := codec.Normalizer{Now: e.now, NewID: e.newID}

	e.mu.Lock()
	defer e.mu.Unlock()

	seen := make(map[string]bool, len(e.items)+len(records))
	for _, it := range e.items {
		seen[it.ID] = true
	}

	var res ImportResult
	batch := make([]types.Item, 0, len(records))
	for _, rec := range records {
		if id := rec.ID(); id != "" && seen[id] {
			res.Skipped++
			continue
		}

		item := norm.CoerceToItem(rec)
		if item.Title == "" {
			res.Skipped++
			continue
		}
		for seen[item.ID] {
			item.ID = e.newID()
		}
		seen[item.ID] = true
		batch = append(batch, item)
	}

	if len(batch) == 0 {
		e.logger.Debug("import added nothing", slog.Int("skipped", res.Skipped))
		return res, nil
	}

	next := make([]types.Item, 0, len(batch)+len(e.items))
	next = append(next, batch...)
	next = append(next, e.items...)
	if err := e.commit(next); err != nil {
		return ImportResult{}, err
	}

	res.Imported = len(batch)
	e.logger.Debug("import merged",
		slog.Int("imported", res.Imported),
		slog.Int("skipped", res.Skipped))
	return res, nil
}
