// Package ambiguity patches fields that detail pages frequently omit, which
// in practice is the performer of a music item.
//
// The Resolver walks a fixed chain and stops at the first hit: the advisory
// search cache, the identifier table, known-title containment, the prefix of
// the description's first line, and known-name containment. Tables ship as
// embedded JSON and can be extended with a user file of the same shape:
//
//	{"ids": {"1406522": "周杰伦"},
//	 "titles": [{"title": "叶惠美", "artist": "周杰伦"}],
//	 "names": ["五月天"]}
package ambiguity
