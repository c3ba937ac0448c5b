// Package normalize turns a resolved field map into a typed import candidate.
//
// Scores move from the source's ten-point scale to a five-point rating,
// consumption labels collapse onto canonical per-category tokens, tags become
// a deduplicated list, and numeric fields are coerced leniently. Nothing here
// returns an error: unusable input becomes an absent value or the category
// default.
package normalize
