package normalize

import (
	"math"
	"strconv"
	"strings"

	"mediashelf/internal/media"
	"mediashelf/internal/textutil"
)

// Candidate shapes a resolved field map into an import candidate. The external
// identifier is removed from fields and kept only on the candidate. Coercion
// failures fall back to absent values; Candidate never fails.
func Candidate(category media.Category, externalID string, fields media.Fields) media.ImportCandidate {
	if fields == nil {
		fields = media.Fields{}
	}
	delete(fields, media.FieldExternalID)

	get := func(key string) string { return strings.TrimSpace(fields.Get(key)) }

	candidate := media.ImportCandidate{
		ExternalID:       strings.TrimSpace(externalID),
		Category:         category,
		Title:            get(media.FieldTitle),
		Description:      get(media.FieldDescription),
		CoverURL:         get(media.FieldCoverURL),
		RawScore:         get(media.FieldScore),
		NormalizedRating: Rating(get(media.FieldScore)),
		Tags:             SplitTags(get(media.FieldTags)),
		Status:           Status(category, get(media.FieldStatus)),
		Genre:            get(media.FieldGenre),
		Year:             Int(get(media.FieldYear)),
		Publisher:        get(media.FieldPublisher),
		Tracks:           []string{},
	}

	switch category {
	case media.CategoryBook:
		candidate.Author = get(media.FieldAuthor)
		candidate.Translator = get(media.FieldTranslator)
		candidate.Series = get(media.FieldSeries)
		candidate.ISBN = get(media.FieldISBN)
		candidate.Price = get(media.FieldPrice)
		candidate.PageCount = Int(get(media.FieldPageCount))
		candidate.PublishDate = get(media.FieldPublishDate)
	case media.CategoryMovie:
		candidate.OriginalTitle = get(media.FieldOriginalTitle)
		candidate.Director = get(media.FieldDirector)
		candidate.Cast = get(media.FieldCast)
		candidate.Country = get(media.FieldCountry)
		candidate.Language = get(media.FieldLanguage)
		candidate.Duration = get(media.FieldDuration)
		candidate.IMDbID = get(media.FieldIMDbID)
	case media.CategoryMusic:
		candidate.Artist = get(media.FieldArtist)
		candidate.Album = get(media.FieldAlbum)
		candidate.Tracks = Lines(fields.Get(media.FieldTracks))
		candidate.Medium = get(media.FieldMedium)
	}

	candidate.LowConfidence = candidate.Title == ""
	return candidate
}

// Rating converts a ten-point score into the five-point scale, rounded to one
// decimal. Empty or unparseable scores give 0.
func Rating(raw string) float64 {
	raw = strings.TrimSpace(textutil.FoldWidth(raw))
	if raw == "" {
		return 0
	}
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
		return 0
	}
	return Round1(score / 2)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Int parses a numeric field. nil means unset, which is distinct from zero.
func Int(raw string) *int {
	n, ok := textutil.ParseInt(raw)
	if !ok {
		return nil
	}
	return &n
}

// JoinTags renders tags in canonical form: trimmed, deduplicated
// case-sensitively in first-seen order, comma-joined.
func JoinTags(values []string) string {
	var items []string
	for _, value := range values {
		items = append(items, textutil.SplitList(value)...)
	}
	return textutil.JoinList(textutil.Dedup(items))
}

// SplitTags parses a tag scalar into its canonical list. The result is never
// nil so an untagged candidate encodes as [] rather than null.
func SplitTags(raw string) []string {
	tags := textutil.Dedup(textutil.SplitList(raw))
	if tags == nil {
		return []string{}
	}
	return tags
}

// Lines splits a newline-joined field into trimmed non-empty entries. Like
// SplitTags it returns an empty slice, not nil.
func Lines(raw string) []string {
	out := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
