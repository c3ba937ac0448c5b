// Package artistcache remembers which artist a search listing showed for a
// music identifier, so a later import of the same item can fill a performer
// the detail page omits.
//
// The cache is in memory only and lives as long as the process. It is
// advisory: the importer treats a miss as normal and tolerates a stale hit.
// Size is bounded by [artist_cache] max_entries; the oldest mapping is evicted
// first.
package artistcache
