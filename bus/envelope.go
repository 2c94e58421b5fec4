package bus

import (
	"encoding/json"
	"strconv"
	"time"
)

// Total, default-valued navigation over decoded JSON. Upstream envelopes
// are deeply nested and frequently partial; absent or wrong-typed fields
// must degrade to zero values, never to a decode failure.

// dig walks nested objects by key, returning nil as soon as a level is
// missing or not an object.
func dig(v any, keys ...string) any {
	for _, k := range keys {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = m[k]
	}
	return v
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	}
	return ""
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}

// firstString accepts a bare string or a list whose first element is a
// string. Some upstream fields flip between the two shapes.
func firstString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if l := asList(v); len(l) > 0 {
		return asString(l[0])
	}
	return ""
}

// parseTimestamp parses the upstream's ISO 8601 arrival times. Offset-less
// timestamps occur in the wild and are taken as UTC.
func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
