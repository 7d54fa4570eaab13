package dico

import (
	"bytes"
	"fmt"
	"time"

	gojson "github.com/goccy/go-json"
)

// FromJSON constructs a Document from a JSON object. Alias resolution,
// unknown-key rejection and embedded cascading follow NewFrom. Numbers are
// decoded as json.Number and narrowed to int64 or float64; strings destined
// for date-time fields are parsed as RFC 3339. This narrowing is codec
// behavior at the ingestion boundary; plain NewFrom/Set never coerce.
func FromJSON(s *Schema, data []byte) (*Document, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("dico: decode json: %w", err)
	}
	conv, err := convertIn(s, raw)
	if err != nil {
		return nil, err
	}
	return s.NewFrom(conv)
}

func convertIn(s *Schema, raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		name, ok := s.Resolve(key)
		if !ok {
			// NewFrom owns unknown-key rejection; keep the original key so
			// the error names what the caller sent.
			out[key] = value
			continue
		}
		cv, err := convertValue(s.byName[name], value)
		if err != nil {
			return nil, err
		}
		out[key] = cv
	}
	return out, nil
}

func convertValue(f *Field, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch f.kind {
	case KindDateTime:
		if str, ok := value.(string); ok {
			t, err := parseRFC3339(str)
			if err != nil {
				// keep the raw string; validation will reject it
				return value, nil
			}
			return t, nil
		}
		return value, nil
	case KindEmbedded:
		if m, ok := value.(map[string]any); ok {
			return convertIn(f.embedded, m)
		}
		return value, nil
	case KindList:
		items, ok := value.([]any)
		if !ok || f.item == nil {
			return normalizeNumber(value), nil
		}
		out := make([]any, 0, len(items))
		for _, it := range items {
			cv, err := convertValue(f.item, it)
			if err != nil {
				return nil, err
			}
			out = append(out, cv)
		}
		return out, nil
	default:
		return normalizeNumber(value), nil
	}
}

// normalizeNumber narrows json.Number into int64 when integral, float64
// otherwise.
func normalizeNumber(value any) any {
	n, ok := value.(gojson.Number)
	if !ok {
		return value
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return value
}

// parseRFC3339 accepts RFC3339Nano first, plain RFC3339 as fallback.
func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}
