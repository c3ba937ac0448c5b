package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDouban()
	if err := c.normalizeAmbiguity(); err != nil {
		return err
	}
	c.normalizeLimits()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		if value, ok := os.LookupEnv("MEDIASHELF_DATA_DIR"); ok && strings.TrimSpace(value) != "" {
			c.Paths.DataDir = strings.TrimSpace(value)
		} else {
			c.Paths.DataDir = defaultDataDir
		}
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DatabasePath) == "" {
		c.Paths.DatabasePath = filepath.Join(c.Paths.DataDir, defaultDatabaseName)
	}
	if c.Paths.DatabasePath, err = expandPath(c.Paths.DatabasePath); err != nil {
		return fmt.Errorf("paths.database_path: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		if value, ok := os.LookupEnv("MEDIASHELF_API_BIND"); ok {
			c.Paths.APIBind = strings.TrimSpace(value)
		}
	}
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeDouban() {
	trimURL := func(value, fallback string) string {
		value = strings.TrimRight(strings.TrimSpace(value), "/")
		if value == "" {
			return fallback
		}
		return value
	}
	c.Douban.BookBaseURL = trimURL(c.Douban.BookBaseURL, defaultBookBaseURL)
	c.Douban.MovieBaseURL = trimURL(c.Douban.MovieBaseURL, defaultMovieBaseURL)
	c.Douban.MusicBaseURL = trimURL(c.Douban.MusicBaseURL, defaultMusicBaseURL)
	c.Douban.SearchBaseURL = trimURL(c.Douban.SearchBaseURL, defaultSearchBaseURL)

	c.Douban.UserAgent = strings.TrimSpace(c.Douban.UserAgent)
	if c.Douban.UserAgent == "" {
		c.Douban.UserAgent = defaultUserAgent
	}
	c.Douban.MobileAgent = strings.TrimSpace(c.Douban.MobileAgent)
	if c.Douban.MobileAgent == "" {
		c.Douban.MobileAgent = defaultMobileAgent
	}
	c.Douban.Cookie = strings.TrimSpace(c.Douban.Cookie)
	if c.Douban.Cookie == "" {
		if value, ok := os.LookupEnv("MEDIASHELF_DOUBAN_COOKIE"); ok {
			c.Douban.Cookie = strings.TrimSpace(value)
		}
	}
	if c.Douban.TimeoutSeconds <= 0 {
		c.Douban.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeAmbiguity() error {
	c.Ambiguity.TablesPath = strings.TrimSpace(c.Ambiguity.TablesPath)
	if c.Ambiguity.TablesPath == "" {
		return nil
	}
	var err error
	if c.Ambiguity.TablesPath, err = expandPath(c.Ambiguity.TablesPath); err != nil {
		return fmt.Errorf("ambiguity.tables_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLimits() {
	if c.ArtistCache.MaxEntries < 0 {
		c.ArtistCache.MaxEntries = 0
	}
	if c.API.Burst <= 0 {
		c.API.Burst = defaultAPIBurst
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
