package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mediashelf/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("MEDIASHELF_DATA_DIR", "")
	t.Setenv("MEDIASHELF_API_BIND", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "mediashelf")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.LogDir != filepath.Join(wantData, "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Paths.DatabasePath != filepath.Join(wantData, "mediashelf.db") {
		t.Fatalf("unexpected database path: %q", cfg.Paths.DatabasePath)
	}
	if cfg.Paths.APIBind != "127.0.0.1:5000" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.Douban.TimeoutSeconds != 10 {
		t.Fatalf("expected default timeout of 10s, got %d", cfg.Douban.TimeoutSeconds)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadUsesEnvironmentFallbacks(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	dataDir := filepath.Join(tempHome, "shelf")
	t.Setenv("MEDIASHELF_DATA_DIR", dataDir)
	t.Setenv("MEDIASHELF_API_BIND", "0.0.0.0:9000")
	t.Setenv("MEDIASHELF_DOUBAN_COOKIE", "bid=abc")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DataDir != dataDir {
		t.Fatalf("expected data dir from env, got %q", cfg.Paths.DataDir)
	}
	if cfg.Paths.APIBind != "0.0.0.0:9000" {
		t.Fatalf("expected api bind from env, got %q", cfg.Paths.APIBind)
	}
	if cfg.Douban.Cookie != "bid=abc" {
		t.Fatalf("expected cookie from env, got %q", cfg.Douban.Cookie)
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(tempHome, "custom.toml")
	payload := struct {
		Paths   config.Paths   `toml:"paths"`
		Douban  config.Douban  `toml:"douban"`
		Logging config.Logging `toml:"logging"`
	}{
		Paths: config.Paths{
			DataDir: "~/catalog",
		},
		Douban: config.Douban{
			MusicBaseURL:   "http://127.0.0.1:8080/",
			TimeoutSeconds: 3,
		},
		Logging: config.Logging{
			Format: "JSON",
			Level:  "Debug",
		},
	}
	data, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.DataDir != filepath.Join(tempHome, "catalog") {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.Douban.MusicBaseURL != "http://127.0.0.1:8080" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Douban.MusicBaseURL)
	}
	if cfg.Douban.BookBaseURL != "https://book.douban.com" {
		t.Fatalf("expected default book base url, got %q", cfg.Douban.BookBaseURL)
	}
	if cfg.Douban.TimeoutSeconds != 3 {
		t.Fatalf("unexpected timeout: %d", cfg.Douban.TimeoutSeconds)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased logging options, got %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidBaseURL(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(tempHome, "bad.toml")
	content := "[douban]\nbook_base_url = \"ftp://example.com\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(configPath)
	if err == nil {
		t.Fatal("expected error for non-http base url")
	}
	if !strings.Contains(err.Error(), "douban.book_base_url") {
		t.Fatalf("expected error to name the field, got %v", err)
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	target := filepath.Join(tempHome, "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.API.RatePerMinute != 30 {
		t.Fatalf("unexpected sample rate: %d", cfg.API.RatePerMinute)
	}
}

func TestEnsureDirectoriesCreatesDatabaseParent(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.DatabasePath = filepath.Join(base, "db", "catalog.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir, filepath.Dir(cfg.Paths.DatabasePath)} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s to exist: %v", dir, err)
		}
	}
}
