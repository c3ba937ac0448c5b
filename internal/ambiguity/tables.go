package ambiguity

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

//go:embed tables.json
var defaultTablesJSON []byte

// TitleEntry associates a known album or work title with its artist.
type TitleEntry struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

type tableFile struct {
	IDs    map[string]string `json:"ids"`
	Titles []TitleEntry      `json:"titles"`
	Names  []string          `json:"names"`
}

// Tables is the immutable lookup data consulted by the Resolver.
type Tables struct {
	ids    map[string]string
	titles []TitleEntry
	names  []string
}

// NewTables builds tables from raw entries. Blank entries are dropped and
// repeated titles and names keep their first occurrence.
func NewTables(ids map[string]string, titles []TitleEntry, names []string) *Tables {
	t := &Tables{ids: make(map[string]string, len(ids))}
	for id, artist := range ids {
		id, artist = strings.TrimSpace(id), strings.TrimSpace(artist)
		if id != "" && artist != "" {
			t.ids[id] = artist
		}
	}
	seenTitles := make(map[string]struct{}, len(titles))
	for _, entry := range titles {
		entry.Title, entry.Artist = strings.TrimSpace(entry.Title), strings.TrimSpace(entry.Artist)
		if entry.Title == "" || entry.Artist == "" {
			continue
		}
		if _, dup := seenTitles[entry.Title]; dup {
			continue
		}
		seenTitles[entry.Title] = struct{}{}
		t.titles = append(t.titles, entry)
	}
	seenNames := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seenNames[name]; dup {
			continue
		}
		seenNames[name] = struct{}{}
		t.names = append(t.names, name)
	}
	return t
}

// ParseTables decodes a table document.
func ParseTables(data []byte) (*Tables, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return NewTables(nil, nil, nil), nil
	}
	var file tableFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode ambiguity tables: %w", err)
	}
	return NewTables(file.IDs, file.Titles, file.Names), nil
}

// DefaultTables returns the built-in tables.
func DefaultTables() *Tables {
	tables, err := ParseTables(defaultTablesJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded ambiguity tables invalid: %v", err))
	}
	return tables
}

// LoadTables returns the built-in tables merged with the user file at path.
// User entries take precedence. A missing file is not an error.
func LoadTables(path string) (*Tables, error) {
	base := DefaultTables()
	path = strings.TrimSpace(path)
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return nil, fmt.Errorf("read ambiguity tables: %w", err)
	}
	user, err := ParseTables(data)
	if err != nil {
		return nil, err
	}
	return Merge(user, base), nil
}

// Merge combines tables; entries from earlier tables win.
func Merge(tables ...*Tables) *Tables {
	ids := make(map[string]string)
	var titles []TitleEntry
	var names []string
	for i := len(tables) - 1; i >= 0; i-- {
		if tables[i] == nil {
			continue
		}
		for id, artist := range tables[i].ids {
			ids[id] = artist
		}
	}
	for _, t := range tables {
		if t == nil {
			continue
		}
		titles = append(titles, t.titles...)
		names = append(names, t.names...)
	}
	return NewTables(ids, titles, names)
}

// LookupID returns the curated artist for an external identifier.
func (t *Tables) LookupID(externalID string) (string, bool) {
	if t == nil {
		return "", false
	}
	artist, ok := t.ids[strings.TrimSpace(externalID)]
	return artist, ok
}

// MatchTitle returns the artist of the first known title contained in title.
func (t *Tables) MatchTitle(title string) (string, bool) {
	if t == nil || title == "" {
		return "", false
	}
	for _, entry := range t.titles {
		if strings.Contains(title, entry.Title) {
			return entry.Artist, true
		}
	}
	return "", false
}

// MatchName returns the first known name contained in title.
func (t *Tables) MatchName(title string) (string, bool) {
	if t == nil || title == "" {
		return "", false
	}
	for _, name := range t.names {
		if strings.Contains(title, name) {
			return name, true
		}
	}
	return "", false
}

// Len reports the number of id, title, and name entries.
func (t *Tables) Len() (ids, titles, names int) {
	if t == nil {
		return 0, 0, 0
	}
	return len(t.ids), len(t.titles), len(t.names)
}
