package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// LoadFixture reads testdata/<name> relative to the calling package.
func LoadFixture(t testing.TB, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(data)
}

// ParseFixture loads a fixture page and parses it into a document.
func ParseFixture(t testing.TB, name string) *goquery.Document {
	t.Helper()

	return ParseMarkup(t, LoadFixture(t, name))
}

// ParseMarkup parses inline markup into a document.
func ParseMarkup(t testing.TB, markup string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	return doc
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
