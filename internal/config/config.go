package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory, database, and bind address configuration.
type Paths struct {
	DataDir      string `toml:"data_dir"`
	LogDir       string `toml:"log_dir"`
	DatabasePath string `toml:"database_path"`
	APIBind      string `toml:"api_bind"`
}

// Douban contains configuration for the metadata source pages.
type Douban struct {
	BookBaseURL    string `toml:"book_base_url"`
	MovieBaseURL   string `toml:"movie_base_url"`
	MusicBaseURL   string `toml:"music_base_url"`
	SearchBaseURL  string `toml:"search_base_url"`
	UserAgent      string `toml:"user_agent"`
	MobileAgent    string `toml:"mobile_user_agent"`
	Cookie         string `toml:"cookie"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Ambiguity points at an optional user table file merged over the built-in artist tables.
type Ambiguity struct {
	TablesPath string `toml:"tables_path"`
}

// ArtistCache bounds the in-process search result artist cache.
type ArtistCache struct {
	MaxEntries int `toml:"max_entries"`
}

// API contains HTTP API limits.
type API struct {
	RatePerMinute int    `toml:"rate_per_minute"`
	Burst         int    `toml:"burst"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for mediashelf.
//
// Configuration sections by subsystem:
//   - Paths: data/log directories, catalog database, and API bind address
//   - Douban: detail and search page endpoints, request headers, and timeout
//   - Ambiguity: user-maintained artist lookup tables
//   - ArtistCache: search result artist cache size
//   - API: per-client request rate limits
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	Douban      Douban      `toml:"douban"`
	Ambiguity   Ambiguity   `toml:"ambiguity"`
	ArtistCache ArtistCache `toml:"artist_cache"`
	API         API         `toml:"api"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("mediashelf.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories plus the database parent.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DataDir, c.Paths.LogDir, filepath.Dir(c.Paths.DatabasePath)}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath returns the file used to keep a single API server running per data directory.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "mediashelf.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
