// Package structured pulls the embedded JSON-LD block out of a detail page.
// A page without a usable block is the common case and yields an empty Map.
package structured
