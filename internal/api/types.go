package api

import (
	"mediashelf/internal/douban"
	"mediashelf/internal/library"
	"mediashelf/internal/media"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// SearchResponse lists search listing entries.
type SearchResponse struct {
	Query    string                `json:"query"`
	Category string                `json:"category,omitempty"`
	Results  []douban.SearchResult `json:"results"`
}

// ImportRequest carries caller overrides for an import. Save defaults to true
// on POST; a false value returns the candidate without persisting it.
type ImportRequest struct {
	media.Overrides
	Save *bool `json:"save,omitempty"`
}

// ImportResponse returns the candidate and, when persisted, its record id.
type ImportResponse struct {
	Candidate *media.ImportCandidate `json:"candidate"`
	RecordID  string                 `json:"record_id,omitempty"`
	Created   bool                   `json:"created"`
}

// RecordListResponse lists the records of one category.
type RecordListResponse struct {
	Category string           `json:"category"`
	Count    int              `json:"count"`
	Records  []library.Record `json:"records"`
}

// RecordResponse wraps a single record.
type RecordResponse struct {
	Record *library.Record `json:"record"`
}

// HealthResponse reports server readiness.
type HealthResponse struct {
	Status             string `json:"status"`
	Database           string `json:"database,omitempty"`
	ArtistCacheEntries int    `json:"artist_cache_entries"`
}
