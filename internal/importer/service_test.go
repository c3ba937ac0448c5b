package importer_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"mediashelf/internal/ambiguity"
	"mediashelf/internal/artistcache"
	"mediashelf/internal/douban"
	"mediashelf/internal/importer"
	"mediashelf/internal/media"
	"mediashelf/internal/services"
	"mediashelf/internal/testsupport"
)

type stubSource struct {
	pages   map[string]string
	results []douban.SearchResult
	err     error
	fetches int
}

func (s *stubSource) Fetch(_ context.Context, category media.Category, id string) (string, error) {
	s.fetches++
	if s.err != nil {
		return "", s.err
	}
	return s.pages[string(category)+"/"+id], nil
}

func (s *stubSource) Search(context.Context, string, media.Category) ([]douban.SearchResult, error) {
	return s.results, s.err
}

func newPageServer(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newService(t *testing.T, server *httptest.Server) *importer.Service {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithDoubanBaseURL(server.URL))
	svc, err := importer.NewFromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	return svc
}

func TestImportNotFoundReturnsNoCandidate(t *testing.T) {
	server := newPageServer(t, nil)
	svc := newService(t, server)

	candidate, err := svc.Import(context.Background(), "book", "404404", media.Overrides{})
	if candidate != nil {
		t.Fatalf("expected nil candidate, got %+v", candidate)
	}
	if !errors.Is(err, importer.ErrFetchFailed) || !errors.Is(err, importer.ErrNotFound) {
		t.Fatalf("expected fetch_failed and not_found, got %v", err)
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected services.ErrNotFound marker, got %v", err)
	}
	importErr, ok := importer.AsImportError(err)
	if !ok || importErr.Kind != importer.KindNotFound {
		t.Fatalf("unexpected error: %#v", err)
	}
	want := []string{"idle", "fetching", "failed"}
	if !reflect.DeepEqual(importErr.Trace, want) {
		t.Fatalf("trace = %v, want %v", importErr.Trace, want)
	}
	if fetchErr, ok := douban.AsFetchError(err); !ok || fetchErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
}

func TestImportUpstreamFailureIsFetchFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(server.Close)
	svc := newService(t, server)

	_, err := svc.Import(context.Background(), "movie", "1291546", media.Overrides{})
	if !errors.Is(err, importer.ErrFetchFailed) {
		t.Fatalf("expected fetch_failed, got %v", err)
	}
	if errors.Is(err, importer.ErrNotFound) {
		t.Fatal("403 must not be reported as not_found")
	}
	if services.HTTPStatus(err) != http.StatusBadGateway {
		t.Fatalf("expected 502 mapping, got %d", services.HTTPStatus(err))
	}
}

func TestImportInvalidCategoryFailsBeforeFetch(t *testing.T) {
	source := &stubSource{}
	svc := importer.NewService(source, nil, nil, nil)

	candidate, err := svc.Import(context.Background(), "podcast", "1", media.Overrides{})
	if candidate != nil || !errors.Is(err, importer.ErrInvalidCategory) {
		t.Fatalf("expected invalid_category, got %v / %+v", err, candidate)
	}
	if source.fetches != 0 {
		t.Fatalf("fetch attempted %d times", source.fetches)
	}
	if services.HTTPStatus(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 mapping, got %d", services.HTTPStatus(err))
	}

	_, err = svc.Import(context.Background(), "music", "  ", media.Overrides{})
	if !errors.Is(err, importer.ErrInvalidID) || source.fetches != 0 {
		t.Fatalf("expected invalid_id before fetch, got %v", err)
	}
}

func TestImportMusicFallsBackToDescriptionArtist(t *testing.T) {
	server := newPageServer(t, map[string]string{
		"/subject/99000001/": testsupport.LoadFixture(t, "music_sparse.html"),
	})
	svc := newService(t, server)

	candidate, err := svc.Import(context.Background(), "music", "99000001", media.Overrides{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if candidate.Artist != "周杰伦" {
		t.Fatalf("artist = %q, want 周杰伦", candidate.Artist)
	}
	if candidate.Diagnostics.AmbiguityRule != string(ambiguity.RuleDescription) {
		t.Fatalf("rule = %q", candidate.Diagnostics.AmbiguityRule)
	}
	if candidate.Title != "霍元甲" || candidate.Medium != "CD" {
		t.Fatalf("unexpected candidate: title=%q medium=%q", candidate.Title, candidate.Medium)
	}
	want := []string{"idle", "fetching", "extracting", "resolving", "normalizing", "done"}
	if !reflect.DeepEqual(candidate.Diagnostics.Trace, want) {
		t.Fatalf("trace = %v, want %v", candidate.Diagnostics.Trace, want)
	}
	if candidate.Diagnostics.StructuredData {
		t.Fatal("fixture carries no structured block")
	}
}

func TestImportBookPrefersStructuredDate(t *testing.T) {
	server := newPageServer(t, map[string]string{
		"/subject/1829226/": testsupport.LoadFixture(t, "book_jsonld.html"),
	})
	svc := newService(t, server)

	candidate, err := svc.Import(context.Background(), "book", "1829226", media.Overrides{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !strings.HasPrefix(candidate.PublishDate, "2001") {
		t.Fatalf("publish date = %q", candidate.PublishDate)
	}
	if src := candidate.Diagnostics.Sources[media.FieldPublishDate]; !strings.HasPrefix(src, "structured:") {
		t.Fatalf("publish date source = %q", src)
	}
	if candidate.PageCount == nil || *candidate.PageCount != 302 {
		t.Fatalf("page count = %v", candidate.PageCount)
	}
	if candidate.Status != media.StatusRead {
		t.Fatalf("status = %q", candidate.Status)
	}
	if candidate.RawScore != "9.1" || candidate.NormalizedRating < 4.5 || candidate.NormalizedRating > 4.6 {
		t.Fatalf("rating = %v from %q", candidate.NormalizedRating, candidate.RawScore)
	}
}

func TestImportOverridesWin(t *testing.T) {
	server := newPageServer(t, map[string]string{
		"/subject/1829226/": testsupport.LoadFixture(t, "book_jsonld.html"),
	})
	svc := newService(t, server)

	title := "自定义标题"
	status := "想读"
	rating := 3.0
	candidate, err := svc.Import(context.Background(), "books", "1829226", media.Overrides{
		Title:  &title,
		Status: &status,
		Rating: &rating,
		Tags:   []string{"收藏", "收藏"},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if candidate.Title != title || candidate.Status != media.StatusWantToRead || candidate.NormalizedRating != 3 {
		t.Fatalf("overrides not applied: %+v", candidate)
	}
	if !reflect.DeepEqual(candidate.Tags, []string{"收藏"}) {
		t.Fatalf("tags = %v", candidate.Tags)
	}
}

func TestSearchTeachesArtistCache(t *testing.T) {
	source := &stubSource{
		results: []douban.SearchResult{
			{ID: "42", Title: "未知专辑", Category: media.CategoryMusic, Artist: "缓存歌手"},
			{ID: "43", Title: "电影", Category: media.CategoryMovie, Director: "某导演"},
		},
		pages: map[string]string{
			"music/42": `<html><body><h1><span>未知专辑</span></h1></body></html>`,
		},
	}
	cache := artistcache.NewCache(10, nil)
	svc := importer.NewService(source, ambiguity.NewTables(nil, nil, nil), cache, nil)

	results, err := svc.Search(context.Background(), "专辑", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 || cache.Count() != 1 {
		t.Fatalf("results=%d cached=%d", len(results), cache.Count())
	}

	candidate, err := svc.Import(context.Background(), "music", "42", media.Overrides{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if candidate.Artist != "缓存歌手" || candidate.Diagnostics.AmbiguityRule != string(ambiguity.RuleCache) {
		t.Fatalf("artist=%q rule=%q", candidate.Artist, candidate.Diagnostics.AmbiguityRule)
	}
}

func TestSearchRejectsBadInput(t *testing.T) {
	svc := importer.NewService(&stubSource{}, nil, nil, nil)
	if _, err := svc.Search(context.Background(), "  ", "music"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty query, got %v", err)
	}
	if _, err := svc.Search(context.Background(), "x", "games"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for category, got %v", err)
	}
}

func TestNewFromConfigRejectsMalformedTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.json")
	testsupport.WriteFile(t, path, "{")
	cfg := testsupport.NewConfig(t,
		testsupport.WithDoubanBaseURL("http://127.0.0.1:1"),
		testsupport.WithTablesPath(path),
	)
	if _, err := importer.NewFromConfig(cfg, nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
