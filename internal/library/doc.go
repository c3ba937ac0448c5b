// Package library stores catalog records in SQLite.
//
// Each category has its own table (books, movies, music) with the shared
// columns id, title, status, rating, is_owned and timestamps plus the columns
// specific to the category. Record ids are random UUIDs. The schema is
// embedded and versioned; a database written by a different schema version is
// rejected with ErrSchemaMismatch instead of being migrated.
package library
