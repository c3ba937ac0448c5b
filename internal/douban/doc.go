// Package douban retrieves item detail pages and mobile search listings from
// the metadata source site.
//
// The Client sends a browser-like header set (desktop for detail pages,
// mobile for search), honours an optional session cookie, and enforces a
// per-request timeout. Failed retrievals surface as *FetchError classified as
// network, timeout, or http_status; nothing in this package retries.
package douban
