package resolve

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"mediashelf/internal/structured"
	"mediashelf/internal/textutil"
)

func fromData(path ...string) Strategy {
	return Strategy{
		Name: "structured:" + strings.Join(path, "."),
		Extract: func(_ *goquery.Document, data structured.Map) string {
			return data.String(path...)
		},
	}
}

func fromNames(key string, limit int) Strategy {
	return Strategy{
		Name: "structured:" + key,
		Extract: func(_ *goquery.Document, data structured.Map) string {
			return textutil.JoinList(head(data.Names(key), limit))
		},
	}
}

// fromText reads the text of the first match of selector.
func fromText(selector string) Strategy {
	return Strategy{
		Name: "html:" + selector,
		Extract: func(doc *goquery.Document, _ structured.Map) string {
			if doc == nil {
				return ""
			}
			return doc.Find(selector).First().Text()
		},
	}
}

// fromBlock reads the first match of selector keeping line breaks.
func fromBlock(selector string) Strategy {
	return Strategy{
		Name: "html:" + selector,
		Extract: func(doc *goquery.Document, _ structured.Map) string {
			if doc == nil {
				return ""
			}
			sel := doc.Find(selector).First()
			if sel.Length() == 0 {
				return ""
			}
			return blockText(sel.Get(0))
		},
	}
}

// fromAll joins the text of every match of selector, up to limit when positive.
func fromAll(selector string, limit int) Strategy {
	return Strategy{
		Name:    "html:" + selector,
		Extract: allText(selector, limit),
	}
}

func allText(selector string, limit int) Extract {
	return func(doc *goquery.Document, _ structured.Map) string {
		if doc == nil {
			return ""
		}
		var values []string
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if text := textutil.CollapseSpace(sel.Text()); text != "" {
				values = append(values, text)
			}
			return limit <= 0 || len(values) < limit
		})
		return textutil.JoinList(values)
	}
}

// fromLines joins the text of every match of selector with newlines.
func fromLines(selector string) Strategy {
	return Strategy{
		Name: "html:" + selector,
		Extract: func(doc *goquery.Document, _ structured.Map) string {
			if doc == nil {
				return ""
			}
			var lines []string
			doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
				if text := textutil.CollapseSpace(sel.Text()); text != "" {
					lines = append(lines, text)
				}
			})
			return strings.Join(lines, "\n")
		},
	}
}

func fromAttr(selector, attr string) Strategy {
	return Strategy{
		Name: fmt.Sprintf("html:%s[%s]", selector, attr),
		Extract: func(doc *goquery.Document, _ structured.Map) string {
			if doc == nil {
				return ""
			}
			value, _ := doc.Find(selector).First().Attr(attr)
			return value
		},
	}
}

// fromLabel reads the value following an #info label.
func fromLabel(label string) Strategy {
	return Strategy{
		Name: "label:" + label,
		Extract: func(doc *goquery.Document, _ structured.Map) string {
			return labelValue(findLabel(doc, label))
		},
	}
}

// fromLabels tries each synonym in order as its own strategy.
func fromLabels(labels ...string) []Strategy {
	out := make([]Strategy, 0, len(labels))
	for _, label := range labels {
		out = append(out, fromLabel(label))
	}
	return out
}

// fromLabelLinks collects the links after an #info label.
func fromLabelLinks(label string) Strategy {
	return Strategy{
		Name: "label-links:" + label,
		Extract: func(doc *goquery.Document, _ structured.Map) string {
			return textutil.JoinList(labelLinks(findLabel(doc, label)))
		},
	}
}

// fromLabelText collects the plain text run after an #info label.
func fromLabelText(label string) Strategy {
	return Strategy{
		Name: "label-text:" + label,
		Extract: func(doc *goquery.Document, _ structured.Map) string {
			return labelText(findLabel(doc, label))
		},
	}
}

// year narrows a strategy to the first four-digit run of its value.
func year(s Strategy) Strategy {
	inner := s.Extract
	return Strategy{
		Name: s.Name,
		Extract: func(doc *goquery.Document, data structured.Map) string {
			return textutil.FirstYear(inner(doc, data))
		},
	}
}

// mapped post-processes the value of a strategy.
func mapped(s Strategy, fn func(string) string) Strategy {
	inner := s.Extract
	return Strategy{
		Name: s.Name,
		Extract: func(doc *goquery.Document, data structured.Map) string {
			return fn(inner(doc, data))
		},
	}
}

func combine(name string, parts ...Strategy) Strategy {
	return Strategy{
		Name: name,
		Extract: func(doc *goquery.Document, data structured.Map) string {
			var values []string
			for _, part := range parts {
				if value := strings.TrimSpace(part.Extract(doc, data)); value != "" {
					values = append(values, value)
				}
			}
			return textutil.JoinList(values)
		},
	}
}

func head(values []string, limit int) []string {
	if limit > 0 && len(values) > limit {
		return values[:limit]
	}
	return values
}

// secondWord returns what follows the first space, used to split the native
// and original titles joined in one heading.
func secondWord(s string) string {
	_, rest, found := strings.Cut(strings.TrimSpace(s), " ")
	if !found {
		return ""
	}
	return rest
}

// firstSlashPart returns the text before the first slash.
func firstSlashPart(s string) string {
	before, _, _ := strings.Cut(s, "/")
	return strings.TrimSpace(before)
}

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:\d+S)?$`)

// minutesFromISO turns "PT2H51M" into "171分钟". Other values pass through.
func minutesFromISO(s string) string {
	s = strings.TrimSpace(s)
	match := isoDurationPattern.FindStringSubmatch(s)
	if match == nil {
		return s
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	total := hours*60 + minutes
	if total == 0 {
		return ""
	}
	return strconv.Itoa(total) + "分钟"
}

func bookState(s string) string {
	return strings.NewReplacer("在看", "在读", "看过", "读过").Replace(s)
}
