package textutil

import (
	"strings"

	"golang.org/x/text/width"
)

// listSeparators are the delimiters accepted when a scalar holds several
// values, in narrow form. Wide variants such as "，" and "／" fold onto them.
const listSeparators = ",/、;"

func isListSeparator(r rune) bool {
	if r <= 0x7f {
		return strings.ContainsRune(listSeparators, r)
	}
	folded := width.Fold.String(string(r))
	return folded != "" && strings.Contains(listSeparators, folded)
}

// SplitList splits s on any list separator, trims each entry, and drops empty
// entries. Order is preserved and duplicates are kept. Only the separators are
// width-folded; entries keep their original characters.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, isListSeparator)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := CollapseSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Dedup removes repeated entries case-sensitively, keeping the first occurrence.
func Dedup(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

// CleanList trims and drops empty entries without splitting them further.
func CleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if cleaned := Clean(value); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// JoinList joins values with a single comma and no padding.
func JoinList(values []string) string {
	return strings.Join(values, ",")
}

// NormalizeList reshapes a comma-style scalar: separators lose their padding,
// empty entries go away, and order is kept. Dedup is applied only when asked,
// since ordered fields such as cast or track lists keep repeats.
func NormalizeList(s string, dedup bool) string {
	items := SplitList(s)
	if dedup {
		items = Dedup(items)
	}
	return JoinList(items)
}
