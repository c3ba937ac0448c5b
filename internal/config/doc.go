// Package config loads, normalizes, and validates mediashelf configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MEDIASHELF_DOUBAN_COOKIE. The Config type centralizes every knob the CLI and
// API server need, so the catalog database, source endpoints, and artist
// tables are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
