package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mediashelf/internal/api"
	"mediashelf/internal/artistcache"
	"mediashelf/internal/config"
	"mediashelf/internal/douban"
	"mediashelf/internal/importer"
	"mediashelf/internal/library"
	"mediashelf/internal/media"
	"mediashelf/internal/services"
	"mediashelf/internal/testsupport"
)

type stubImporter struct {
	cache     *artistcache.Cache
	err       error
	searchErr error
	calls     int
	overrides media.Overrides
}

func (s *stubImporter) Import(_ context.Context, category, externalID string, overrides media.Overrides) (*media.ImportCandidate, error) {
	s.calls++
	s.overrides = overrides
	if s.err != nil {
		return nil, s.err
	}
	title := "Imported " + externalID
	if overrides.Title != nil {
		title = *overrides.Title
	}
	return &media.ImportCandidate{
		ExternalID: externalID,
		Category:   media.Category(category),
		Title:      title,
		Status:     media.StatusWantToRead,
	}, nil
}

func (s *stubImporter) Search(_ context.Context, keyword, _ string) ([]douban.SearchResult, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("search: %w", services.ErrValidation)
	}
	return []douban.SearchResult{{ID: "42", Title: keyword}}, nil
}

func (s *stubImporter) Cache() *artistcache.Cache { return s.cache }

type harness struct {
	handler  http.Handler
	importer *stubImporter
	store    *library.Store
}

func newHarness(t *testing.T, opts ...testsupport.ConfigOption) *harness {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	return newHarnessWithConfig(t, cfg)
}

func newHarnessWithConfig(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	store := testsupport.MustOpenStore(t, cfg)
	imp := &stubImporter{cache: artistcache.NewCache(0, nil)}
	server := api.New(cfg, imp, store, nil)
	return &harness{handler: server.Handler(), importer: imp, store: store}
}

func (h *harness) do(t *testing.T, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthReportsDatabase(t *testing.T) {
	h := newHarness(t)
	h.importer.cache.Store("1", "Artist", "Album")

	rec := h.do(t, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[api.HealthResponse](t, rec)
	if resp.Status != "ok" || resp.Database != h.store.Path() || resp.ArtistCacheEntries != 1 {
		t.Fatalf("unexpected health: %+v", resp)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/api/health", "", http.Header{"X-Request-Id": {"abc-123"}})
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("request id = %q", got)
	}
}

func TestImportErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{
			name:   "not found",
			err:    &importer.ImportError{Kind: importer.KindNotFound, Category: "book", ExternalID: "1"},
			status: http.StatusNotFound,
			kind:   "not_found",
		},
		{
			name:   "fetch failed",
			err:    &importer.ImportError{Kind: importer.KindFetchFailed, Category: "book", ExternalID: "1", Err: &douban.FetchError{StatusCode: http.StatusForbidden}},
			status: http.StatusBadGateway,
			kind:   "fetch_failed",
		},
		{
			name:   "invalid category",
			err:    &importer.ImportError{Kind: importer.KindInvalidCategory, Category: "game"},
			status: http.StatusBadRequest,
			kind:   "invalid_category",
		},
		{
			name:   "invalid id",
			err:    &importer.ImportError{Kind: importer.KindInvalidID, Category: "book"},
			status: http.StatusBadRequest,
			kind:   "invalid_id",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.importer.err = tc.err

			rec := h.do(t, http.MethodGet, "/api/import/book/1", "", nil)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			resp := decode[api.ErrorResponse](t, rec)
			if resp.Kind != tc.kind {
				t.Fatalf("kind = %q, want %q", resp.Kind, tc.kind)
			}
		})
	}
}

func TestImportPreviewDoesNotPersist(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/api/import/book/100", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	resp := decode[api.ImportResponse](t, rec)
	if resp.Candidate == nil || resp.Candidate.Title != "Imported 100" || resp.RecordID != "" {
		t.Fatalf("unexpected preview: %+v", resp)
	}
	records, err := h.store.List(context.Background(), media.CategoryBook)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("preview persisted %d records", len(records))
	}
}

func TestImportSavesAndUpserts(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/api/import/movie/7", "", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	first := decode[api.ImportResponse](t, rec)
	if !first.Created || first.RecordID == "" {
		t.Fatalf("unexpected first import: %+v", first)
	}

	rec = h.do(t, http.MethodPost, "/api/import/movie/7", `{"title":"Renamed","rating":4.5}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	second := decode[api.ImportResponse](t, rec)
	if second.Created || second.RecordID != first.RecordID {
		t.Fatalf("expected update of %s, got %+v", first.RecordID, second)
	}
	if h.importer.overrides.Rating == nil || *h.importer.overrides.Rating != 4.5 {
		t.Fatalf("rating override not forwarded: %+v", h.importer.overrides)
	}

	record, err := h.store.Get(context.Background(), media.CategoryMovie, first.RecordID)
	if err != nil || record == nil {
		t.Fatalf("Get: %v %v", record, err)
	}
	if record.Title != "Renamed" {
		t.Fatalf("title = %q", record.Title)
	}
}

func TestImportWithSaveFalse(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/api/import/music/9", `{"save":false}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[api.ImportResponse](t, rec)
	if resp.RecordID != "" || resp.Created {
		t.Fatalf("expected no persistence: %+v", resp)
	}
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/api/import/book/1", `{"title":`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if h.importer.calls != 0 {
		t.Fatal("importer should not run on malformed body")
	}
}

func TestSearch(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/api/search?q=dune&type=book", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[api.SearchResponse](t, rec)
	if resp.Query != "dune" || resp.Category != "book" || len(resp.Results) != 1 {
		t.Fatalf("unexpected search: %+v", resp)
	}

	rec = h.do(t, http.MethodGet, "/api/search?q=", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty query status = %d", rec.Code)
	}
}

func TestSearchUpstreamFailure(t *testing.T) {
	h := newHarness(t)
	h.importer.searchErr = &douban.FetchError{StatusCode: http.StatusInternalServerError}

	rec := h.do(t, http.MethodGet, "/api/search?q=x", "", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRateLimitRejectsAfterBurst(t *testing.T) {
	h := newHarness(t, testsupport.WithAPIRate(1, 2))

	for i := 0; i < 2; i++ {
		rec := h.do(t, http.MethodGet, "/api/search?q=x", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
	rec := h.do(t, http.MethodGet, "/api/search?q=x", "", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}

	// Catalog reads are not limited.
	rec = h.do(t, http.MethodGet, "/api/book", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	h := newHarness(t, testsupport.WithAPIRate(0, 0))
	for i := 0; i < 20; i++ {
		rec := h.do(t, http.MethodGet, "/api/search?q=x", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
}

func TestRecordCRUD(t *testing.T) {
	h := newHarness(t)
	id := testsupport.NewRecord(t, h.store, media.CategoryBook, "Dune")

	rec := h.do(t, http.MethodGet, "/api/book", "", nil)
	list := decode[api.RecordListResponse](t, rec)
	if list.Count != 1 || list.Records[0].ID != id {
		t.Fatalf("unexpected list: %+v", list)
	}

	rec = h.do(t, http.MethodGet, "/api/book/"+id, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = h.do(t, http.MethodPut, "/api/book/"+id, `{"notes":"reread","rating":4}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d body=%s", rec.Code, rec.Body.String())
	}
	updated := decode[api.RecordResponse](t, rec)
	if updated.Record.Title != "Dune" || updated.Record.Notes != "reread" || updated.Record.Rating != 4 {
		t.Fatalf("merge lost fields: %+v", updated.Record)
	}

	rec = h.do(t, http.MethodDelete, "/api/book/"+id, "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = h.do(t, http.MethodGet, "/api/book/"+id, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
	rec = h.do(t, http.MethodDelete, "/api/book/"+id, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", rec.Code)
	}
}

func TestUnknownCategoryRoute(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/api/game", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp := decode[api.ErrorResponse](t, rec); resp.Kind != "invalid_category" {
		t.Fatalf("kind = %q", resp.Kind)
	}
}
