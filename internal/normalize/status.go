package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"mediashelf/internal/media"
)

type statusLabel struct {
	label  string
	status media.Status
}

// Negated and "want" forms come before their bare counterparts so that
// containment matching picks "unread" over "read".
var statusLabels = map[media.Category][]statusLabel{
	media.CategoryBook: {
		{"未读", media.StatusUnread},
		{"unread", media.StatusUnread},
		{"想读", media.StatusWantToRead},
		{"want-to-read", media.StatusWantToRead},
		{"want to read", media.StatusWantToRead},
		{"在读", media.StatusReading},
		{"reading", media.StatusReading},
		{"读过", media.StatusRead},
		{"已读", media.StatusRead},
		{"read", media.StatusRead},
	},
	media.CategoryMovie: {
		{"未看", media.StatusUnwatched},
		{"unwatched", media.StatusUnwatched},
		{"想看", media.StatusWatching},
		{"want-to-watch", media.StatusWatching},
		{"want to watch", media.StatusWatching},
		{"在看", media.StatusWatching},
		{"watching", media.StatusWatching},
		{"看过", media.StatusWatched},
		{"已看", media.StatusWatched},
		{"watched", media.StatusWatched},
	},
	media.CategoryMusic: {
		{"未听", media.StatusUnlistened},
		{"unlistened", media.StatusUnlistened},
		{"想听", media.StatusListening},
		{"在听", media.StatusListening},
		{"listening", media.StatusListening},
		{"听过", media.StatusListened},
		{"已听", media.StatusListened},
		{"listened", media.StatusListened},
		{"未知", media.StatusUnknown},
		{"unknown", media.StatusUnknown},
	},
}

var folder = cases.Fold()

// Status maps a free-form consumption label onto the category's canonical
// token. Exact matches win, then the first label found in the input: CJK
// labels match anywhere, latin labels only as whole words.
// Anything unrecognised becomes the category default rather than an error.
func Status(category media.Category, raw string) media.Status {
	labels := statusLabels[category]
	value := strings.TrimSpace(folder.String(raw))
	if value == "" {
		return media.DefaultStatus(category)
	}
	for _, entry := range labels {
		if value == entry.label {
			return entry.status
		}
	}
	words := wordPadded(value)
	for _, entry := range labels {
		if isASCII(entry.label) {
			if strings.Contains(words, wordPadded(entry.label)) {
				return entry.status
			}
			continue
		}
		if strings.Contains(value, entry.label) {
			return entry.status
		}
	}
	return media.DefaultStatus(category)
}

// wordPadded joins the letter and digit runs of s with single spaces and pads
// both ends, so substring search only lands on word boundaries.
func wordPadded(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return " " + strings.Join(fields, " ") + " "
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
