package media

// Field keys shared by the resolver, the ambiguity resolver and the
// normalizer. Values are always strings; list-shaped fields are comma-joined
// except tracks, which are newline-joined because track names may contain
// commas.
const (
	FieldExternalID  = "external_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCoverURL    = "cover_url"
	FieldScore       = "score"
	FieldTags        = "tags"
	FieldStatus      = "status"

	FieldAuthor      = "author"
	FieldTranslator  = "translator"
	FieldPublisher   = "publisher"
	FieldSeries      = "series"
	FieldISBN        = "isbn"
	FieldPrice       = "price"
	FieldPageCount   = "page_count"
	FieldPublishDate = "publish_date"

	FieldOriginalTitle = "original_title"
	FieldDirector      = "director"
	FieldCast          = "cast"
	FieldGenre         = "genre"
	FieldCountry       = "country"
	FieldLanguage      = "language"
	FieldDuration      = "duration"
	FieldIMDbID        = "imdb_id"
	FieldYear          = "year"

	FieldArtist = "artist"
	FieldAlbum  = "album"
	FieldTracks = "tracks"
	FieldMedium = "medium"
)

// Fields is the raw, string-valued field map produced by the resolver.
type Fields map[string]string

// Get returns the value for key or the empty string.
func (f Fields) Get(key string) string {
	if f == nil {
		return ""
	}
	return f[key]
}

// Clone returns an independent copy.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// FieldKeys returns every target field of a category, common fields first.
func FieldKeys(c Category) []string {
	common := []string{FieldTitle, FieldDescription, FieldCoverURL, FieldScore, FieldTags, FieldStatus}
	switch c {
	case CategoryBook:
		return append(common, FieldAuthor, FieldTranslator, FieldPublisher, FieldSeries,
			FieldISBN, FieldPrice, FieldPageCount, FieldPublishDate)
	case CategoryMovie:
		return append(common, FieldOriginalTitle, FieldDirector, FieldCast, FieldGenre,
			FieldCountry, FieldLanguage, FieldDuration, FieldIMDbID, FieldYear)
	case CategoryMusic:
		return append(common, FieldArtist, FieldAlbum, FieldGenre, FieldTracks,
			FieldPublisher, FieldMedium, FieldYear)
	default:
		return nil
	}
}
