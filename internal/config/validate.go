package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDouban(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.DatabasePath) == "" {
		return errors.New("paths.database_path must be set")
	}
	return nil
}

func (c *Config) validateDouban() error {
	for key, value := range map[string]string{
		"douban.book_base_url":   c.Douban.BookBaseURL,
		"douban.movie_base_url":  c.Douban.MovieBaseURL,
		"douban.music_base_url":  c.Douban.MusicBaseURL,
		"douban.search_base_url": c.Douban.SearchBaseURL,
	} {
		parsed, err := url.Parse(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("%s must be an http(s) URL, got %q", key, value)
		}
	}
	return ensurePositiveMap(map[string]int{
		"douban.timeout_seconds": c.Douban.TimeoutSeconds,
	})
}

func (c *Config) validateAPI() error {
	if c.API.RatePerMinute < 0 {
		return errors.New("api.rate_per_minute must not be negative (0 disables limiting)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
