package types

import (
	"strconv"
	"strings"
)

// RawRecord is an untyped item-like object decoded from an import file.
// Fields may be missing or carry unexpected JSON types; codec.CoerceToItem
// is the only place a RawRecord becomes an Item.
type RawRecord map[string]any

// Import record field names.
const (
	FieldID        = "id"
	FieldTitle     = "title"
	FieldCategory  = "category"
	FieldNotes     = "notes"
	FieldCreatedAt = "createdAt"
)

// String returns the named field as a string. Strings are returned as is,
// JSON numbers are formatted without a trailing ".0", and booleans use
// strconv.FormatBool. Anything else, including a missing field, yields "".
func (r RawRecord) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// ID returns the record's id field, trimmed. Empty means absent.
func (r RawRecord) ID() string {
	return strings.TrimSpace(r.String(FieldID))
}
