package structured

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Map is a decoded structured-data block. Keys keep the source schema names
// (name, author, datePublished, aggregateRating, ...).
type Map map[string]any

// String walks path through nested objects and renders the leaf as text.
// Arrays of scalars are joined with a comma. Missing paths yield "".
func (m Map) String(path ...string) string {
	value, ok := m.lookup(path...)
	if !ok {
		return ""
	}
	return render(value)
}

// Names returns display names under key. The value may be a string, an
// object with a name, or an array of either.
func (m Map) Names(key string) []string {
	value, ok := m.lookup(key)
	if !ok {
		return nil
	}
	var out []string
	appendName := func(v any) {
		switch item := v.(type) {
		case string:
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		case map[string]any:
			if s := render(item["name"]); s != "" {
				out = append(out, s)
			}
		}
	}
	if list, ok := value.([]any); ok {
		for _, item := range list {
			appendName(item)
		}
		return out
	}
	appendName(value)
	return out
}

// Has reports whether key holds a non-empty value.
func (m Map) Has(key string) bool {
	return m.String(key) != "" || len(m.Names(key)) > 0
}

func (m Map) lookup(path ...string) (any, bool) {
	if len(m) == 0 || len(path) == 0 {
		return nil, false
	}
	var current any = map[string]any(m)
	for _, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[key]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

func render(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return ""
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := render(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}
