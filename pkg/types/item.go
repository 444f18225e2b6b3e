package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category classifies a tracked title.
type Category string

// Recognized categories.
const (
	CategoryAnime Category = "anime"
	CategoryMovie Category = "movie"
	CategoryDrama Category = "drama"
	CategoryGame  Category = "game"
)

// DefaultCategory is used when an imported record carries no usable category.
const DefaultCategory = CategoryAnime

// FilterAll is the query filter value that passes every category.
const FilterAll = "all"

// Categories lists the recognized categories in display order.
var Categories = []Category{
	CategoryAnime,
	CategoryMovie,
	CategoryDrama,
	CategoryGame,
}

// validCategories is the set of recognized category values.
var validCategories = map[Category]bool{
	CategoryAnime: true,
	CategoryMovie: true,
	CategoryDrama: true,
	CategoryGame:  true,
}

// IsValid reports whether c is one of the recognized categories.
func (c Category) IsValid() bool {
	return validCategories[c]
}

// String returns the category value.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts user input to a Category. Matching ignores case
// and surrounding whitespace. Returns ErrInvalidCategory for anything else.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Item is a single tracked media entry. Items are created by the engine
// and never modified afterwards.
type Item struct {
	ID        string    // UUID v7, generated on creation.
	Title     string    // Display title (required, trimmed, non-empty).
	Category  Category  // One of the Category constants.
	Notes     string    // Optional free text.
	CreatedAt time.Time // UTC timestamp of creation.
}

// NewItem builds an Item with the given ID and creation time. An empty id
// gets a fresh NewItemID. Title and notes pass through ValidText and are
// trimmed. Returns ErrInvalidTitle when the trimmed title is empty and
// ErrInvalidCategory for an unrecognized category.
func NewItem(id, title string, category Category, notes string, createdAt time.Time) (Item, error) {
	title = strings.TrimSpace(ValidText(title))
	if title == "" {
		return Item{}, ErrInvalidTitle
	}
	if !category.IsValid() {
		return Item{}, ErrInvalidCategory
	}
	if id == "" {
		id = NewItemID()
	}
	return Item{
		ID:        id,
		Title:     title,
		Category:  category,
		Notes:     strings.TrimSpace(ValidText(notes)),
		CreatedAt: createdAt.UTC(),
	}, nil
}

// ValidText replaces each run of invalid UTF-8 bytes in s with U+FFFD.
// Stored text must be valid UTF-8 so that it survives a JSON round trip
// unchanged.
func ValidText(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

// NewItemID generates a new UUID v7 for item IDs. The v7 layout is a
// millisecond timestamp followed by random bits, so two items created in
// the same instant still get distinct IDs.
func NewItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// ClipboardText returns the short "title — category" form used when
// copying an item.
func (it Item) ClipboardText() string {
	return it.Title + " — " + string(it.Category)
}
