// Package importer orchestrates a single import: validate the request, fetch
// the detail page once, pull the structured-data block, resolve every target
// field through its cascade, patch ambiguity-prone fields, and normalize the
// result into a candidate.
//
// The pipeline moves through idle, fetching, extracting, resolving,
// normalizing and done. Only request validation and the fetch can fail; from
// extraction on, missing data degrades the candidate instead of aborting it.
// Every failure is an *ImportError whose kind is one of invalid_category,
// invalid_id, not_found, or fetch_failed.
package importer
