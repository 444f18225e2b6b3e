package engine

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

// Query returns the items matching both predicates, in collection order.
// filterCategory is types.FilterAll (or empty) to pass every category, or
// one of the categories; anything else is types.ErrInvalidFilter. A
// non-empty searchText keeps items whose title or notes contain it,
// ignoring case.
func (e *Engine) Query(filterCategory, searchText string) ([]types.Item, error) {
	match, err := newMatcher(filterCategory, searchText)
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]types.Item, 0, len(e.items))
	for _, it := range e.items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

func newMatcher(filterCategory, searchText string) (func(types.Item) bool, error) {
	var category types.Category
	filter := strings.TrimSpace(filterCategory)
	if filter != "" && !strings.EqualFold(filter, types.FilterAll) {
		c, err := types.ParseCategory(filter)
		if err != nil {
			return nil, types.ErrInvalidFilter
		}
		category = c
	}

	fold := cases.Fold()
	needle := fold.String(searchText)

	return func(it types.Item) bool {
		if category != "" && it.Category != category {
			return false
		}
		if needle == "" {
			return true
		}
		return strings.Contains(fold.String(it.Title), needle) ||
			strings.Contains(fold.String(it.Notes), needle)
	}, nil
}
