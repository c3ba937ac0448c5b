// Package resolve fills the per-category field map of one subject page.
//
// Every target field has a FieldRule: a Cascade of named strategies and a
// Shape. Strategies read either the JSON-LD block (fromData, fromNames) or the
// markup (fromText, fromLabel and friends), and the first one to return a
// non-empty value wins. A key may carry more than one rule; later rules only
// run while the field is still empty.
//
// The info block is read through labels such as "出版社:". Where the site has
// used several wordings for the same fact, the synonyms are tried in order,
// for example 出版年 before 出版时间, and 表演者 before 歌手.
//
// Resolve returns a Result whose Fields hold every key media.FieldKeys lists
// for the category, empty when no source had a value, and whose Sources name
// the winning strategy per filled key. Values are cleaned by shape: scalars
// lose nationality marks and extra whitespace, lists and tags are re-joined
// with bare commas, and line fields keep one entry per line.
package resolve
