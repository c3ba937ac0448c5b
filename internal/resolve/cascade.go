package resolve

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"mediashelf/internal/media"
	"mediashelf/internal/structured"
	"mediashelf/internal/textutil"
)

// Extract reads one candidate value for a field. An empty result means the
// source had nothing to offer.
type Extract func(doc *goquery.Document, data structured.Map) string

// Strategy is a named extraction step.
type Strategy struct {
	Name    string
	Extract Extract
}

// Cascade is an ordered list of strategies. The first non-empty result wins
// and later strategies are not evaluated.
type Cascade []Strategy

// Resolve runs the cascade and reports the value and the winning strategy.
func (c Cascade) Resolve(doc *goquery.Document, data structured.Map) (string, string) {
	for _, strategy := range c {
		if strategy.Extract == nil {
			continue
		}
		if value := strings.TrimSpace(strategy.Extract(doc, data)); value != "" {
			return value, strategy.Name
		}
	}
	return "", ""
}

// Shape selects the cleanup applied to a resolved value.
type Shape int

const (
	// ShapeScalar trims, collapses whitespace and strips nationality marks.
	ShapeScalar Shape = iota
	// ShapeList splits on list separators and keeps order and repeats.
	ShapeList
	// ShapeTags is ShapeList with case-sensitive dedup.
	ShapeTags
	// ShapeLines keeps one entry per line, in order.
	ShapeLines
	// ShapeText keeps line structure but cleans each line.
	ShapeText
	// ShapeURL only trims.
	ShapeURL
)

// FieldRule binds a target field to its cascade and cleanup.
type FieldRule struct {
	Key     string
	Shape   Shape
	Cascade Cascade
}

// Result holds the resolved fields of one page. Every target field of the
// category is present in Fields, empty when no source had a value.
type Result struct {
	Fields  media.Fields
	Sources map[string]string
}

// Resolve fills every target field of category from the structured block and
// the page markup.
func Resolve(category media.Category, doc *goquery.Document, data structured.Map) (Result, error) {
	rules, err := Rules(category)
	if err != nil {
		return Result{}, err
	}
	if data == nil {
		data = structured.Map{}
	}
	result := Result{
		Fields:  make(media.Fields, len(rules)),
		Sources: make(map[string]string, len(rules)),
	}
	for _, key := range media.FieldKeys(category) {
		result.Fields[key] = ""
	}
	for _, rule := range rules {
		if result.Fields[rule.Key] != "" {
			continue
		}
		raw, source := rule.Cascade.Resolve(doc, data)
		value := Clean(rule.Shape, raw)
		if value == "" {
			continue
		}
		result.Fields[rule.Key] = value
		result.Sources[rule.Key] = source
	}
	return result, nil
}

// Rules returns the field rules for category in evaluation order.
func Rules(category media.Category) ([]FieldRule, error) {
	switch category {
	case media.CategoryBook:
		return bookRules, nil
	case media.CategoryMovie:
		return movieRules, nil
	case media.CategoryMusic:
		return musicRules, nil
	default:
		return nil, fmt.Errorf("unsupported category %q", category)
	}
}

// Clean applies the cleanup for shape to a raw value.
func Clean(shape Shape, raw string) string {
	switch shape {
	case ShapeURL:
		return strings.TrimSpace(raw)
	case ShapeList:
		return textutil.NormalizeList(textutil.StripNationality(raw), false)
	case ShapeTags:
		return textutil.NormalizeList(textutil.StripNationality(raw), true)
	case ShapeLines:
		return strings.Join(cleanLines(raw, textutil.Clean), "\n")
	case ShapeText:
		return strings.Join(cleanLines(raw, textutil.CollapseSpace), "\n")
	default:
		return textutil.Clean(raw)
	}
}

func cleanLines(raw string, clean func(string) string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if cleaned := clean(line); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
