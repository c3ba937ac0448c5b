package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mediashelf/internal/artistcache"
	"mediashelf/internal/config"
	"mediashelf/internal/douban"
	"mediashelf/internal/library"
	"mediashelf/internal/logging"
	"mediashelf/internal/media"
)

// Importer runs imports and searches against the source site.
type Importer interface {
	Import(ctx context.Context, category, externalID string, overrides media.Overrides) (*media.ImportCandidate, error)
	Search(ctx context.Context, keyword, category string) ([]douban.SearchResult, error)
	Cache() *artistcache.Cache
}

// Store is the record persistence used by the API.
type Store interface {
	Get(ctx context.Context, category media.Category, id string) (*library.Record, error)
	Update(ctx context.Context, category media.Category, id string, record library.Record) (bool, error)
	List(ctx context.Context, category media.Category) ([]library.Record, error)
	Delete(ctx context.Context, category media.Category, id string) (bool, error)
	Save(ctx context.Context, candidate media.ImportCandidate) (string, bool, error)
	Path() string
}

// Server exposes import, search, and catalog routes over HTTP.
type Server struct {
	importer Importer
	store    Store
	logger   *slog.Logger
	limiter  *clientLimiter
	engine   *gin.Engine
}

// New builds the route table. cfg supplies the rate limit.
func New(cfg *config.Config, importer Importer, store Store, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		importer: importer,
		store:    store,
		logger:   logging.NewComponentLogger(logger, "api"),
	}
	if cfg != nil {
		s.limiter = newClientLimiter(cfg.API.RatePerMinute, cfg.API.Burst)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestContext())

	engine.GET("/api/health", s.handleHealth)

	routes := engine.Group("/api")
	limited := routes.Group("", s.limiter.middleware())
	limited.GET("/search", s.handleSearch)
	limited.GET("/import/:category/:id", s.handleImportPreview)
	limited.POST("/import/:category/:id", s.handleImport)

	routes.GET("/:category", s.handleList)
	routes.GET("/:category/:id", s.handleGet)
	routes.PUT("/:category/:id", s.handleUpdate)
	routes.DELETE("/:category/:id", s.handleDelete)

	s.engine = engine
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.engine
}
