package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

// ExportFileName is the file name offered for the CSV export.
const ExportFileName = "mangekyou_watchlist.csv"

// tableHeader is the fixed CSV header row.
var tableHeader = []string{"id", "title", "category", "notes", "createdAt"}

// EncodeTable renders items as CSV with a fixed header. Fields holding a
// comma, quote, or line break are quoted and embedded quotes are doubled.
// The output is for download only and is never parsed back.
func EncodeTable(items []types.Item) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(tableHeader); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	for _, it := range items {
		row := []string{
			it.ID,
			it.Title,
			string(it.Category),
			it.Notes,
			it.CreatedAt.UTC().Format(timeFormat),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing item %s: %w", it.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}
