package library

import (
	"database/sql"
	"fmt"
	"strings"

	"mediashelf/internal/media"
)

type columnKind int

const (
	kindText columnKind = iota
	kindInt
	kindTags
	kindLines
)

// column binds a table column to a Record field. Exactly one accessor is set,
// matching kind.
type column struct {
	name string
	kind columnKind
	text func(*Record) *string
	num  func(*Record) **int
	list func(*Record) *[]string
}

func textColumn(name string, field func(*Record) *string) column {
	return column{name: name, kind: kindText, text: field}
}

func intColumn(name string, field func(*Record) **int) column {
	return column{name: name, kind: kindInt, num: field}
}

func listColumn(name string, kind columnKind, field func(*Record) *[]string) column {
	return column{name: name, kind: kind, list: field}
}

var (
	colExternalID  = textColumn("external_id", func(r *Record) *string { return &r.ExternalID })
	colNotes       = textColumn("notes", func(r *Record) *string { return &r.Notes })
	colDescription = textColumn("description", func(r *Record) *string { return &r.Description })
	colCover       = textColumn("cover_url", func(r *Record) *string { return &r.CoverURL })
	colTags        = listColumn("tags", kindTags, func(r *Record) *[]string { return &r.Tags })
	colGenre       = textColumn("genre", func(r *Record) *string { return &r.Genre })
	colYear        = intColumn("year", func(r *Record) **int { return &r.Year })
	colPublisher   = textColumn("publisher", func(r *Record) *string { return &r.Publisher })
)

// categoryColumns lists the per-table columns besides id, title, status,
// rating, is_owned and the timestamps, which every table shares.
var categoryColumns = map[media.Category][]column{
	media.CategoryBook: {
		colExternalID,
		textColumn("author", func(r *Record) *string { return &r.Author }),
		textColumn("translator", func(r *Record) *string { return &r.Translator }),
		textColumn("isbn", func(r *Record) *string { return &r.ISBN }),
		colPublisher,
		textColumn("series", func(r *Record) *string { return &r.Series }),
		textColumn("price", func(r *Record) *string { return &r.Price }),
		textColumn("publish_date", func(r *Record) *string { return &r.PublishDate }),
		intColumn("pages", func(r *Record) **int { return &r.Pages }),
		colNotes,
		colDescription,
		colCover,
		colTags,
	},
	media.CategoryMovie: {
		colExternalID,
		textColumn("original_title", func(r *Record) *string { return &r.OriginalTitle }),
		textColumn("director", func(r *Record) *string { return &r.Director }),
		textColumn(`"cast"`, func(r *Record) *string { return &r.Cast }),
		colYear,
		colGenre,
		textColumn("country", func(r *Record) *string { return &r.Country }),
		textColumn("language", func(r *Record) *string { return &r.Language }),
		textColumn("duration", func(r *Record) *string { return &r.Duration }),
		textColumn("imdb_id", func(r *Record) *string { return &r.IMDbID }),
		colNotes,
		colDescription,
		textColumn("poster_url", func(r *Record) *string { return &r.CoverURL }),
		colTags,
	},
	media.CategoryMusic: {
		colExternalID,
		textColumn("artist", func(r *Record) *string { return &r.Artist }),
		textColumn("album", func(r *Record) *string { return &r.Album }),
		colYear,
		colGenre,
		colPublisher,
		textColumn("medium", func(r *Record) *string { return &r.Medium }),
		listColumn("tracks", kindLines, func(r *Record) *[]string { return &r.Tracks }),
		colNotes,
		colDescription,
		colCover,
		colTags,
	},
}

// table describes how one category is stored.
type table struct {
	category media.Category
	name     string
	columns  []column
}

func tableFor(category media.Category) (table, error) {
	columns, ok := categoryColumns[category]
	if !ok {
		return table{}, fmt.Errorf("unsupported category %q", category)
	}
	return table{category: category, name: category.Table(), columns: columns}, nil
}

const sharedColumns = "id, title, status, rating, is_owned, created_at, updated_at"

func (t table) selectList() string {
	names := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		names = append(names, col.name)
	}
	return sharedColumns + ", " + strings.Join(names, ", ")
}

func (t table) insertSQL() string {
	names := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		names = append(names, col.name)
	}
	count := 7 + len(t.columns)
	return fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (%s)",
		t.name, sharedColumns, strings.Join(names, ", "), makePlaceholders(count))
}

func (t table) updateSQL() string {
	sets := []string{"title = ?", "status = ?", "rating = ?", "is_owned = ?", "updated_at = ?"}
	for _, col := range t.columns {
		sets = append(sets, col.name+" = ?")
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", t.name, strings.Join(sets, ", "))
}

// values returns the category column values of r in column order.
func (t table) values(r *Record) []any {
	out := make([]any, 0, len(t.columns))
	for _, col := range t.columns {
		switch col.kind {
		case kindText:
			out = append(out, nullableString(strings.TrimSpace(*col.text(r))))
		case kindInt:
			out = append(out, nullableInt(*col.num(r)))
		case kindTags:
			out = append(out, nullableString(joinTags(*col.list(r))))
		case kindLines:
			out = append(out, nullableString(joinLines(*col.list(r))))
		}
	}
	return out
}

func (t table) scan(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		id        string
		title     string
		status    sql.NullString
		rating    sql.NullFloat64
		isOwned   sql.NullInt64
		createdAt sql.NullString
		updatedAt sql.NullString
	)
	dests := []any{&id, &title, &status, &rating, &isOwned, &createdAt, &updatedAt}
	holders := make([]any, len(t.columns))
	for i, col := range t.columns {
		if col.kind == kindInt {
			holders[i] = &sql.NullInt64{}
		} else {
			holders[i] = &sql.NullString{}
		}
	}
	dests = append(dests, holders...)
	if err := scanner.Scan(dests...); err != nil {
		return nil, err
	}

	record := &Record{
		ID:       id,
		Category: t.category,
		Title:    title,
		Status:   media.Status(status.String),
		Rating:   rating.Float64,
		IsOwned:  isOwned.Valid && isOwned.Int64 != 0,
	}
	if created, err := parseTimeString(createdAt.String); err == nil {
		record.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedAt.String); err == nil {
		record.UpdatedAt = updated
	}
	for i, col := range t.columns {
		switch col.kind {
		case kindText:
			*col.text(record) = holders[i].(*sql.NullString).String
		case kindInt:
			if n := holders[i].(*sql.NullInt64); n.Valid {
				v := int(n.Int64)
				*col.num(record) = &v
			}
		case kindTags:
			*col.list(record) = splitTags(holders[i].(*sql.NullString).String)
		case kindLines:
			*col.list(record) = splitLines(holders[i].(*sql.NullString).String)
		}
	}
	return record, nil
}
