// Package textutil provides the text cleanup rules shared by the field
// resolvers and the normalizer.
//
// The primary use cases are:
//   - Collapsing whitespace and stripping bracketed nationality annotations
//     such as "[美]" or "（英）" from person names
//   - Splitting and joining comma-style lists while keeping source order
//   - Pulling the first digit run or four-digit year out of free text
//
// Full-width ASCII variants are folded to their narrow forms before digits or
// list separators are inspected, so "２００６" and "2006" parse the same way
// and "a，b；c" splits like "a,b;c". List entries themselves are not folded.
package textutil
