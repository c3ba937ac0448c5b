package artistcache

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"mediashelf/internal/logging"
)

// DefaultMaxEntries bounds the cache when no limit is configured.
const DefaultMaxEntries = 2048

// Entry is one identifier to artist mapping learned from a search listing.
type Entry struct {
	ExternalID string    `json:"external_id"`
	Artist     string    `json:"artist"`
	Title      string    `json:"title"`
	CachedAt   time.Time `json:"cached_at"`

	seq uint64
}

// Cache is an advisory, process-lifetime map from external identifier to
// artist. Misses are normal, stale hits are tolerated, and the oldest entry is
// evicted once the cache is full.
type Cache struct {
	logger     *slog.Logger
	maxEntries int
	now        func() time.Time

	mu      sync.RWMutex
	seq     uint64
	entries map[string]Entry
}

// NewCache creates an empty cache holding at most maxEntries mappings.
func NewCache(maxEntries int, logger *slog.Logger) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache{
		logger:     logging.NewComponentLogger(logger, "artistcache"),
		maxEntries: maxEntries,
		now:        time.Now,
		entries:    make(map[string]Entry),
	}
}

// Lookup returns the cached artist for an external identifier.
func (c *Cache) Lookup(externalID string) (string, bool) {
	if c == nil {
		return "", false
	}
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return "", false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[externalID]
	if !found || entry.Artist == "" {
		return "", false
	}
	return entry.Artist, true
}

// Store records a mapping. Blank identifiers or artists are ignored; storing
// an existing identifier refreshes it.
func (c *Cache) Store(externalID, artist, title string) {
	if c == nil {
		return
	}
	externalID = strings.TrimSpace(externalID)
	artist = strings.TrimSpace(artist)
	if externalID == "" || artist == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.entries[externalID] = Entry{
		ExternalID: externalID,
		Artist:     artist,
		Title:      strings.TrimSpace(title),
		CachedAt:   c.now(),
		seq:        c.seq,
	}
	for len(c.entries) > c.maxEntries {
		c.evictOldestLocked()
	}

	c.logger.Debug("cached artist mapping",
		logging.String(logging.FieldExternalID, externalID),
		logging.String("artist", artist))
}

func (c *Cache) evictOldestLocked() {
	var oldestID string
	var oldestSeq uint64
	for id, entry := range c.entries {
		if oldestID == "" || entry.seq < oldestSeq {
			oldestID, oldestSeq = id, entry.seq
		}
	}
	if oldestID != "" {
		delete(c.entries, oldestID)
	}
}

// List returns all entries, newest first.
func (c *Cache) List() []Entry {
	if c == nil {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq > entries[j].seq
	})
	return entries
}

// Count returns the number of entries in the cache.
func (c *Cache) Count() int {
	if c == nil {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Entry)
	c.logger.Debug("cleared artist cache")
}
