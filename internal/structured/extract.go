package structured

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelector = `script[type="application/ld+json"]`

// ParseError describes a structured-data block that could not be decoded.
// It never aborts extraction; the next block is tried instead.
type ParseError struct {
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("structured block %d: %v", e.Index, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Extract returns the first valid structured-data block of the page, or an
// empty map when none parses.
func Extract(doc *goquery.Document) Map {
	data, _ := ExtractBlocks(doc)
	return data
}

// ExtractBlocks behaves like Extract and also reports every block skipped on
// the way to the first valid one.
func ExtractBlocks(doc *goquery.Document) (Map, []error) {
	if doc == nil {
		return Map{}, nil
	}
	var skipped []error
	var found Map
	doc.Find(blockSelector).EachWithBreak(func(i int, script *goquery.Selection) bool {
		data, err := decodeBlock(script.Text())
		if err != nil {
			skipped = append(skipped, &ParseError{Index: i, Err: err})
			return true
		}
		found = data
		return false
	})
	if found == nil {
		return Map{}, skipped
	}
	return found, skipped
}

func decodeBlock(raw string) (Map, error) {
	cleaned := stripControl(raw)
	if strings.TrimSpace(cleaned) == "" {
		return nil, fmt.Errorf("empty block")
	}
	decoder := json.NewDecoder(bytes.NewReader([]byte(cleaned)))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, err
	}
	switch value := payload.(type) {
	case map[string]any:
		return Map(value), nil
	case []any:
		if len(value) > 0 {
			if first, ok := value[0].(map[string]any); ok {
				return Map(first), nil
			}
		}
		return nil, fmt.Errorf("array block without object")
	default:
		return nil, fmt.Errorf("unexpected block type %T", payload)
	}
}

// stripControl replaces raw control characters with spaces. Source pages put
// literal newlines inside JSON strings, which strict decoding rejects.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
}
