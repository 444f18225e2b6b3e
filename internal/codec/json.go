// Package codec converts the watchlist between Items and its external text
// forms: the persisted JSON array, loosely-typed import files, and the CSV
// export table.
package codec

import (
	"time"

	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

// timeFormat is the createdAt layout for persisted records. RFC 3339 with
// nanoseconds keeps the round trip lossless.
const timeFormat = time.RFC3339Nano

// itemJSON is the persisted record for one item.
type itemJSON struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"createdAt"`
}

func toJSON(it types.Item) itemJSON {
	return itemJSON{
		ID:        it.ID,
		Title:     it.Title,
		Category:  string(it.Category),
		Notes:     it.Notes,
		CreatedAt: it.CreatedAt.UTC().Format(timeFormat),
	}
}
