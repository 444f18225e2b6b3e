package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

// EncodePersisted serializes the full collection as a JSON array. An empty
// collection encodes as "[]".
func EncodePersisted(items []types.Item) ([]byte, error) {
	records := make([]itemJSON, len(items))
	for i, it := range items {
		records[i] = toJSON(it)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encoding collection: %w", err)
	}
	return data, nil
}

// EncodePersistedIndent is EncodePersisted with two-space indentation, for
// output meant to be read by people.
func EncodePersistedIndent(items []types.Item) ([]byte, error) {
	records := make([]itemJSON, len(items))
	for i, it := range items {
		records[i] = toJSON(it)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding collection: %w", err)
	}
	return data, nil
}

// DecodePersisted parses the persisted JSON array. Empty input decodes to
// an empty collection. Any malformed input returns an empty, non-nil slice
// together with an error wrapping types.ErrStorageCorrupt, so callers can
// log the problem and continue with nothing.
func DecodePersisted(data []byte) ([]types.Item, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []types.Item{}, nil
	}

	var records []itemJSON
	if err := json.Unmarshal(data, &records); err != nil {
		return []types.Item{}, fmt.Errorf("%w: %v", types.ErrStorageCorrupt, err)
	}

	items := make([]types.Item, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		it, err := fromJSON(rec)
		if err != nil {
			return []types.Item{}, fmt.Errorf("%w: record %d: %v", types.ErrStorageCorrupt, i, err)
		}
		if seen[it.ID] {
			return []types.Item{}, fmt.Errorf("%w: record %d: duplicate id %q", types.ErrStorageCorrupt, i, it.ID)
		}
		seen[it.ID] = true
		items = append(items, it)
	}
	return items, nil
}

// fromJSON validates a persisted record. Persisted data was written by
// EncodePersisted, so nothing is defaulted here.
func fromJSON(rec itemJSON) (types.Item, error) {
	if rec.ID == "" {
		return types.Item{}, fmt.Errorf("missing id")
	}
	if strings.TrimSpace(rec.Title) == "" {
		return types.Item{}, types.ErrInvalidTitle
	}
	category := types.Category(rec.Category)
	if !category.IsValid() {
		return types.Item{}, fmt.Errorf("%w %q", types.ErrInvalidCategory, rec.Category)
	}
	createdAt, err := time.Parse(timeFormat, rec.CreatedAt)
	if err != nil {
		return types.Item{}, fmt.Errorf("parsing createdAt: %w", err)
	}
	return types.Item{
		ID:        rec.ID,
		Title:     rec.Title,
		Category:  category,
		Notes:     rec.Notes,
		CreatedAt: createdAt.UTC(),
	}, nil
}
