package testsupport

import (
	"path/filepath"
	"testing"

	"mediashelf/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.DatabasePath = filepath.Join(base, "data", "mediashelf.db")
	cfgVal.Paths.APIBind = "127.0.0.1:0"
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := cfgVal.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithDoubanBaseURL points every page endpoint at baseURL, typically an
// httptest server.
func WithDoubanBaseURL(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Douban.BookBaseURL = baseURL
		b.cfg.Douban.MovieBaseURL = baseURL
		b.cfg.Douban.MusicBaseURL = baseURL
		b.cfg.Douban.SearchBaseURL = baseURL
	}
}

// WithTablesPath sets the user ambiguity table file.
func WithTablesPath(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ambiguity.TablesPath = path
	}
}

// WithAPIRate overrides the API limiter settings.
func WithAPIRate(perMinute, burst int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.RatePerMinute = perMinute
		b.cfg.API.Burst = burst
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
