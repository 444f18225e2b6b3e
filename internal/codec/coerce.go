package codec

import (
	"strings"
	"time"

	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

// importTimeLayouts are the createdAt layouts accepted on import, tried in
// order.
var importTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02",
}

// Normalizer fills defaults while coercing import records. Nil fields fall
// back to time.Now and types.NewItemID.
type Normalizer struct {
	Now   func() time.Time
	NewID func() string
}

// CoerceToItem coerces rec using the default clock and ID generator.
func CoerceToItem(rec types.RawRecord) types.Item {
	return Normalizer{}.CoerceToItem(rec)
}

// CoerceToItem turns a loosely-typed record into a structurally valid Item.
// It never fails: a missing id gets a fresh one, a missing or unrecognized
// category becomes types.DefaultCategory, missing title and notes become "",
// and a missing or unparseable createdAt becomes the current time. Text
// fields are passed through types.ValidText. The result may have an empty
// title; callers that store items must check it.
func (n Normalizer) CoerceToItem(rec types.RawRecord) types.Item {
	now := n.Now
	if now == nil {
		now = time.Now
	}
	newID := n.NewID
	if newID == nil {
		newID = types.NewItemID
	}

	id := types.ValidText(rec.ID())
	if id == "" {
		id = newID()
	}

	category := types.Category(strings.TrimSpace(rec.String(types.FieldCategory)))
	if !category.IsValid() {
		category = types.DefaultCategory
	}

	createdAt, ok := parseImportTime(rec.String(types.FieldCreatedAt))
	if !ok {
		createdAt = now()
	}

	return types.Item{
		ID:        id,
		Title:     strings.TrimSpace(types.ValidText(rec.String(types.FieldTitle))),
		Category:  category,
		Notes:     types.ValidText(rec.String(types.FieldNotes)),
		CreatedAt: createdAt.UTC(),
	}
}

func parseImportTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range importTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
