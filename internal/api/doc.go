// Package api serves the catalog over HTTP with gin.
//
// # Routes
//
//	GET    /api/health                 readiness
//	GET    /api/search?q=&type=        search listing (rate limited)
//	GET    /api/import/:category/:id   preview a candidate (rate limited)
//	POST   /api/import/:category/:id   import with JSON overrides and save (rate limited)
//	GET    /api/:category              list records
//	GET    /api/:category/:id          fetch one record
//	PUT    /api/:category/:id          merge JSON fields into a record
//	DELETE /api/:category/:id          remove a record
//
// Import failures map by kind: invalid_category and invalid_id give 400,
// not_found gives 404, fetch_failed gives 502. The per-client token bucket
// rejects with 429 instead of waiting.
package api
