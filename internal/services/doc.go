// Package services defines shared utilities consumed by the import pipeline,
// the record store, and the HTTP layer.
//
// Key responsibilities:
//   - Context helpers that stamp categories, source identifiers, pipeline
//     stages, and correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent HTTP statuses and CLI messages.
package services
