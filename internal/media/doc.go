// Package media defines the vocabulary shared by the import pipeline and the
// library store: categories, canonical status tokens, raw field keys, and the
// ImportCandidate shape handed to callers.
package media
