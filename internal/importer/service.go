package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"mediashelf/internal/ambiguity"
	"mediashelf/internal/artistcache"
	"mediashelf/internal/config"
	"mediashelf/internal/douban"
	"mediashelf/internal/logging"
	"mediashelf/internal/media"
	"mediashelf/internal/normalize"
	"mediashelf/internal/resolve"
	"mediashelf/internal/services"
	"mediashelf/internal/structured"
)

// Service runs the fetch, extract, resolve, normalize pipeline for one item
// at a time. It is safe for concurrent use; the artist cache is the only
// shared mutable state.
type Service struct {
	source   douban.Source
	resolver *ambiguity.Resolver
	cache    *artistcache.Cache
	logger   *slog.Logger
}

// NewService wires a service from its parts. A nil cache disables the search
// to import artist hand-off.
func NewService(source douban.Source, tables *ambiguity.Tables, cache *artistcache.Cache, logger *slog.Logger) *Service {
	var lookup ambiguity.ArtistLookup
	if cache != nil {
		lookup = cache
	}
	return &Service{
		source:   source,
		resolver: ambiguity.NewResolver(tables, lookup, logger),
		cache:    cache,
		logger:   logging.NewComponentLogger(logger, "importer"),
	}
}

// NewFromConfig builds the page client, artist tables, and cache described by
// cfg.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	client, err := douban.New(cfg.Douban, douban.WithLogger(logger))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "importer", "build client", "", err)
	}
	tables, err := ambiguity.LoadTables(cfg.Ambiguity.TablesPath)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "importer", "load artist tables",
			"Fix or remove the file at ambiguity.tables_path", err)
	}
	cache := artistcache.NewCache(cfg.ArtistCache.MaxEntries, logger)
	return NewService(client, tables, cache, logger), nil
}

// Cache exposes the advisory artist cache.
func (s *Service) Cache() *artistcache.Cache {
	return s.cache
}

// Import produces a candidate for one external item. On error no candidate is
// returned and the error is an *ImportError. Missing fields are not errors: a
// sparse page still yields a candidate, flagged LowConfidence when untitled.
func (s *Service) Import(ctx context.Context, category, externalID string, overrides media.Overrides) (*media.ImportCandidate, error) {
	externalID = strings.TrimSpace(externalID)
	ctx = services.WithCategory(ctx, strings.TrimSpace(category))
	ctx = services.WithExternalID(ctx, externalID)
	r := newRun(logging.WithContext(ctx, s.logger))

	parsed, err := media.ParseCategory(category)
	if err != nil {
		return nil, r.fail(&ImportError{Kind: KindInvalidCategory, Category: category, ExternalID: externalID, Err: err})
	}
	if externalID == "" {
		return nil, r.fail(&ImportError{Kind: KindInvalidID, Category: string(parsed)})
	}

	r.enter(StateFetching)
	markup, err := s.source.Fetch(ctx, parsed, externalID)
	if err != nil {
		kind := KindFetchFailed
		if fetchErr, ok := douban.AsFetchError(err); ok && fetchErr.NotFound() {
			kind = KindNotFound
		}
		return nil, r.fail(&ImportError{Kind: kind, Category: string(parsed), ExternalID: externalID, Err: err})
	}

	r.enter(StateExtracting)
	doc := parseDocument(markup, r.logger)
	data, parseErrs := structured.ExtractBlocks(doc)
	for _, parseErr := range parseErrs {
		r.logger.Debug("structured block skipped", logging.Error(parseErr))
	}

	r.enter(StateResolving)
	result, err := resolve.Resolve(parsed, doc, data)
	if err != nil {
		return nil, r.fail(&ImportError{Kind: KindInvalidCategory, Category: string(parsed), ExternalID: externalID, Err: err})
	}
	rule := s.resolver.Resolve(parsed, externalID, result.Fields)

	r.enter(StateNormalizing)
	candidate := normalize.Candidate(parsed, externalID, result.Fields)
	normalize.ApplyOverrides(&candidate, overrides)

	r.enter(StateDone)
	candidate.Diagnostics = media.Diagnostics{
		Trace:          r.Trace(),
		AmbiguityRule:  string(rule),
		StructuredData: len(data) > 0,
		Sources:        result.Sources,
	}
	r.logger.Info("import candidate ready",
		logging.String(logging.FieldEventType, "import_complete"),
		logging.String("title", candidate.Title),
		logging.Bool("low_confidence", candidate.LowConfidence),
		logging.Bool("structured_data", candidate.Diagnostics.StructuredData),
	)
	return &candidate, nil
}

// Search queries the source's search listing. Music results teach the artist
// cache which performer belongs to which id; a later import of the same item
// uses that when its detail page omits the performer.
func (s *Service) Search(ctx context.Context, keyword string, category string) ([]douban.SearchResult, error) {
	var parsed media.Category
	if strings.TrimSpace(category) != "" {
		c, err := media.ParseCategory(category)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "search", "parse category", "", err)
		}
		parsed = c
	}
	if strings.TrimSpace(keyword) == "" {
		return nil, services.Wrap(services.ErrValidation, "search", "validate query", "query must not be empty", nil)
	}

	results, err := s.source.Search(ctx, keyword, parsed)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", keyword, err)
	}
	cached := 0
	for _, result := range results {
		if result.Category != media.CategoryMusic || result.Artist == "" {
			continue
		}
		s.cache.Store(result.ID, result.Artist, result.Title)
		cached++
	}
	logging.WithContext(ctx, s.logger).Debug("search complete",
		logging.String("query", keyword),
		logging.Int("results", len(results)),
		logging.Int("artists_cached", cached),
	)
	return results, nil
}

func parseDocument(markup string, logger *slog.Logger) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err == nil {
		return doc
	}
	logger.Debug("page markup unreadable; resolving against an empty document", logging.Error(err))
	return goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
}
