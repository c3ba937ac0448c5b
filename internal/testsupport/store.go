package testsupport

import (
	"context"
	"testing"

	"mediashelf/internal/config"
	"mediashelf/internal/library"
	"mediashelf/internal/media"
)

// MustOpenStore opens a library.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg, nil)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewRecord creates a titled record of category and returns its id.
func NewRecord(t testing.TB, store *library.Store, category media.Category, title string) string {
	t.Helper()

	id, err := store.Create(context.Background(), category, library.Record{Title: title})
	if err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	return id
}
