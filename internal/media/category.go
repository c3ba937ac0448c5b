package media

import (
	"fmt"
	"strings"
)

// Category identifies which field set and cascade rules apply to an item.
type Category string

const (
	CategoryBook  Category = "book"
	CategoryMovie Category = "movie"
	CategoryMusic Category = "music"
)

// Categories lists every supported category in display order.
func Categories() []Category {
	return []Category{CategoryBook, CategoryMovie, CategoryMusic}
}

// ParseCategory accepts the canonical names plus the plural forms used in
// routes ("books", "movies"). Any other value is a caller error.
func ParseCategory(raw string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "book", "books":
		return CategoryBook, nil
	case "movie", "movies":
		return CategoryMovie, nil
	case "music":
		return CategoryMusic, nil
	default:
		return "", fmt.Errorf("unsupported category %q", raw)
	}
}

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBook, CategoryMovie, CategoryMusic:
		return true
	default:
		return false
	}
}

func (c Category) String() string { return string(c) }

// Table returns the relational table that stores records of this category.
func (c Category) Table() string {
	switch c {
	case CategoryBook:
		return "books"
	case CategoryMovie:
		return "movies"
	case CategoryMusic:
		return "music"
	default:
		return ""
	}
}
