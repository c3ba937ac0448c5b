package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	digitRun = regexp.MustCompile(`\d+`)
	yearRun  = regexp.MustCompile(`\d{4}`)
)

// FirstDigits returns the first run of ASCII digits in s after width folding.
func FirstDigits(s string) string {
	return digitRun.FindString(FoldWidth(s))
}

// FirstYear returns the first four-digit run in s after width folding.
func FirstYear(s string) string {
	return yearRun.FindString(FoldWidth(s))
}

// ParseInt tries a direct integer parse first and falls back to the first
// digit run. ok is false when s carries no digits at all.
func ParseInt(s string) (int, bool) {
	folded := strings.TrimSpace(FoldWidth(s))
	if folded == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(folded); err == nil {
		return n, true
	}
	run := digitRun.FindString(folded)
	if run == "" {
		return 0, false
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		return 0, false
	}
	return n, true
}
