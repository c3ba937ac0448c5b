package media

// ImportCandidate is the fully shaped record produced for one external item.
// It lives for a single import request; persisted copies belong to the
// library store.
type ImportCandidate struct {
	ExternalID string   `json:"external_id"`
	Category   Category `json:"category"`
	Title      string   `json:"title"`

	Description      string   `json:"description"`
	CoverURL         string   `json:"cover_url"`
	RawScore         string   `json:"raw_score"`
	NormalizedRating float64  `json:"rating"`
	Tags             []string `json:"tags"`
	Status           Status   `json:"status"`
	Notes            string   `json:"notes"`
	IsOwned          bool     `json:"is_owned"`

	// Book
	Author      string `json:"author"`
	Translator  string `json:"translator"`
	Publisher   string `json:"publisher"`
	Series      string `json:"series"`
	ISBN        string `json:"isbn"`
	Price       string `json:"price"`
	PageCount   *int   `json:"page_count"`
	PublishDate string `json:"publish_date"`

	// Movie
	OriginalTitle string `json:"original_title"`
	Director      string `json:"director"`
	Cast          string `json:"cast"`
	Country       string `json:"country"`
	Language      string `json:"language"`
	Duration      string `json:"duration"`
	IMDbID        string `json:"imdb_id"`

	// Music
	Artist string   `json:"artist"`
	Album  string   `json:"album"`
	Tracks []string `json:"tracks"`
	Medium string   `json:"medium"`

	// Shared by movie and music.
	Genre string `json:"genre"`
	Year  *int   `json:"year"`

	LowConfidence bool        `json:"low_confidence"`
	Diagnostics   Diagnostics `json:"diagnostics"`
}

// Diagnostics records how a candidate was assembled.
type Diagnostics struct {
	Trace          []string          `json:"trace"`
	AmbiguityRule  string            `json:"ambiguity_rule,omitempty"`
	StructuredData bool              `json:"structured_data"`
	Sources        map[string]string `json:"sources,omitempty"`
}

// Overrides carries caller-chosen values that always win over scraped ones.
// Nil pointers and a nil Tags slice mean "keep the pipeline value".
type Overrides struct {
	Title   *string  `json:"title,omitempty"`
	Status  *string  `json:"status,omitempty"`
	Rating  *float64 `json:"rating,omitempty"`
	Notes   *string  `json:"notes,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	IsOwned *bool    `json:"is_owned,omitempty"`
}

// Empty reports whether no override is set.
func (o Overrides) Empty() bool {
	return o.Title == nil && o.Status == nil && o.Rating == nil && o.Notes == nil &&
		o.Tags == nil && o.IsOwned == nil
}
