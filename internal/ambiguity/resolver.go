package ambiguity

import (
	"log/slog"
	"strings"

	"mediashelf/internal/logging"
	"mediashelf/internal/media"
	"mediashelf/internal/textutil"
)

// Rule names the heuristic that filled a field.
type Rule string

const (
	RuleNone        Rule = ""
	RuleCache       Rule = "cache"
	RuleIDTable     Rule = "id_table"
	RuleTitleTable  Rule = "title_table"
	RuleDescription Rule = "description"
	RuleNameTable   Rule = "name_table"
)

// descriptionSeparators end the artist prefix on a description's first line,
// tried in this order.
var descriptionSeparators = []string{"/", ":", "：", "-", "–", "—", "|"}

// ArtistLookup is the advisory cache consulted before the tables.
type ArtistLookup interface {
	Lookup(externalID string) (string, bool)
}

// Prone reports whether field is patched by the resolver for category.
func Prone(category media.Category, field string) bool {
	return category == media.CategoryMusic && field == media.FieldArtist
}

// Resolver fills ambiguity-prone fields left empty by the cascade. It is a
// best-effort layer: a filled value may be wrong and nothing here fails.
type Resolver struct {
	tables *Tables
	cache  ArtistLookup
	logger *slog.Logger
}

// NewResolver constructs a resolver. A nil cache disables the cache step.
func NewResolver(tables *Tables, cache ArtistLookup, logger *slog.Logger) *Resolver {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Resolver{
		tables: tables,
		cache:  cache,
		logger: logging.NewComponentLogger(logger, "ambiguity"),
	}
}

// Resolve patches fields in place and reports which rule fired. A field that
// already holds a value is left alone and no table is consulted.
func (r *Resolver) Resolve(category media.Category, externalID string, fields media.Fields) Rule {
	if r == nil || fields == nil || !Prone(category, media.FieldArtist) {
		return RuleNone
	}
	if strings.TrimSpace(fields[media.FieldArtist]) != "" {
		return RuleNone
	}
	artist, rule := r.artist(externalID, fields)
	if rule == RuleNone {
		r.logger.Debug("artist unresolved", logging.String(logging.FieldExternalID, externalID))
		return RuleNone
	}
	fields[media.FieldArtist] = artist
	r.logger.Debug("artist resolved",
		logging.String(logging.FieldExternalID, externalID),
		logging.String("rule", string(rule)),
		logging.String("artist", artist),
	)
	return rule
}

func (r *Resolver) artist(externalID string, fields media.Fields) (string, Rule) {
	if r.cache != nil {
		if artist, ok := r.cache.Lookup(externalID); ok && strings.TrimSpace(artist) != "" {
			return strings.TrimSpace(artist), RuleCache
		}
	}
	if artist, ok := r.tables.LookupID(externalID); ok {
		return artist, RuleIDTable
	}
	title := fields[media.FieldTitle]
	if artist, ok := r.tables.MatchTitle(title); ok {
		return artist, RuleTitleTable
	}
	if artist := ArtistFromDescription(fields[media.FieldDescription]); artist != "" {
		return artist, RuleDescription
	}
	if artist, ok := r.tables.MatchName(title); ok {
		return artist, RuleNameTable
	}
	return "", RuleNone
}

// ArtistFromDescription cuts the first line of description at the first
// separator, in priority order, that is present and leaves a non-empty prefix.
func ArtistFromDescription(description string) string {
	line := textutil.FirstLine(description)
	for _, sep := range descriptionSeparators {
		before, _, found := strings.Cut(line, sep)
		if !found {
			continue
		}
		if candidate := textutil.Clean(before); candidate != "" {
			return candidate
		}
	}
	return ""
}
