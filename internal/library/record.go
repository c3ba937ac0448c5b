package library

import (
	"strings"
	"time"

	"mediashelf/internal/media"
)

// Record is one catalog entry. Only the fields of the record's category are
// persisted; the others are ignored on write and left empty on read.
type Record struct {
	ID          string         `json:"id"`
	Category    media.Category `json:"category"`
	ExternalID  string         `json:"external_id,omitempty"`
	Title       string         `json:"title"`
	Status      media.Status   `json:"status"`
	Rating      float64        `json:"rating"`
	Notes       string         `json:"notes,omitempty"`
	Description string         `json:"description,omitempty"`
	CoverURL    string         `json:"cover_url,omitempty"`
	Tags        []string       `json:"tags"`
	IsOwned     bool           `json:"is_owned"`

	Author      string `json:"author,omitempty"`
	Translator  string `json:"translator,omitempty"`
	ISBN        string `json:"isbn,omitempty"`
	Series      string `json:"series,omitempty"`
	Price       string `json:"price,omitempty"`
	PublishDate string `json:"publish_date,omitempty"`
	Pages       *int   `json:"pages,omitempty"`

	OriginalTitle string `json:"original_title,omitempty"`
	Director      string `json:"director,omitempty"`
	Cast          string `json:"cast,omitempty"`
	Country       string `json:"country,omitempty"`
	Language      string `json:"language,omitempty"`
	Duration      string `json:"duration,omitempty"`
	IMDbID        string `json:"imdb_id,omitempty"`

	Artist string   `json:"artist,omitempty"`
	Album  string   `json:"album,omitempty"`
	Medium string   `json:"medium,omitempty"`
	Tracks []string `json:"tracks,omitempty"`

	Publisher string `json:"publisher,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Year      *int   `json:"year,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromCandidate maps an import candidate onto a record ready to be created.
func FromCandidate(c media.ImportCandidate) Record {
	return Record{
		Category:    c.Category,
		ExternalID:  c.ExternalID,
		Title:       c.Title,
		Status:      c.Status,
		Rating:      c.NormalizedRating,
		Notes:       c.Notes,
		Description: c.Description,
		CoverURL:    c.CoverURL,
		Tags:        append([]string{}, c.Tags...),
		IsOwned:     c.IsOwned,

		Author:      c.Author,
		Translator:  c.Translator,
		ISBN:        c.ISBN,
		Series:      c.Series,
		Price:       c.Price,
		PublishDate: c.PublishDate,
		Pages:       copyInt(c.PageCount),

		OriginalTitle: c.OriginalTitle,
		Director:      c.Director,
		Cast:          c.Cast,
		Country:       c.Country,
		Language:      c.Language,
		Duration:      c.Duration,
		IMDbID:        c.IMDbID,

		Artist: c.Artist,
		Album:  c.Album,
		Medium: c.Medium,
		Tracks: append([]string(nil), c.Tracks...),

		Publisher: c.Publisher,
		Genre:     c.Genre,
		Year:      copyInt(c.Year),
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(raw string) []string {
	out := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

func splitLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
