package record

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Record is one archive search hit: a flat map of field names to
// semi-structured values. Records are treated as immutable; operations
// that change fields return a fresh copy.
type Record map[string]Value

// FromJSON decodes a JSON object into a Record.
func FromJSON(data []byte) (Record, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return FromAnyMap(raw), nil
}

// FromAnyMap converts a decoded JSON object into a Record.
func FromAnyMap(raw map[string]any) Record {
	rec := make(Record, len(raw))
	for k, v := range raw {
		rec[k] = FromAny(v)
	}
	return rec
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Has reports whether a field is present and non-empty.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && !v.IsZero()
}

// Text returns the concatenated string content of a field, joining list
// items and nested leaves with single spaces. Missing fields yield "".
func (r Record) Text(key string) string {
	v, ok := r[key]
	if !ok {
		return ""
	}
	parts := leafStrings(v)
	return strings.Join(parts, " ")
}

// FirstText returns the text of the first present field among keys.
func (r Record) FirstText(keys ...string) string {
	for _, k := range keys {
		if s := r.Text(k); s != "" {
			return s
		}
	}
	return ""
}

// Strings returns every string leaf reachable under a field,
// in deterministic order.
func (r Record) Strings(key string) []string {
	v, ok := r[key]
	if !ok {
		return nil
	}
	return leafStrings(v)
}

// Number returns the numeric content of a field. String digits are parsed;
// anything else degrades to 0.
func (r Record) Number(key string) float64 {
	v, ok := r[key]
	if !ok {
		return 0
	}
	switch v.Kind() {
	case KindNumber:
		return v.Num()
	case KindString:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Str()), 64)
		if err != nil {
			return 0
		}
		return n
	case KindList:
		if len(v.Items()) > 0 {
			first := v.Items()[0]
			if first.Kind() == KindNumber {
				return first.Num()
			}
		}
	}
	return 0
}

// Identifier returns the record's archive identifier, if any.
func (r Record) Identifier() string {
	return r.FirstText("identifier", "id")
}

// MediaType returns the record's media type, lowercased.
func (r Record) MediaType() string {
	return strings.ToLower(r.FirstText("mediatype", "media_type", "type"))
}

// AsMap converts the record back into its plain JSON shape.
func (r Record) AsMap() map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = valueToAny(v, 0)
	}
	return out
}

func valueToAny(v Value, depth int) any {
	if depth > MaxDepth {
		return nil
	}
	switch v.Kind() {
	case KindString:
		return v.Str()
	case KindNumber:
		return v.Num()
	case KindList:
		items := make([]any, 0, len(v.Items()))
		for _, item := range v.Items() {
			items = append(items, valueToAny(item, depth+1))
		}
		return items
	case KindMap:
		obj := make(map[string]any, len(v.Fields()))
		for k, item := range v.Fields() {
			obj[k] = valueToAny(item, depth+1)
		}
		return obj
	default:
		return nil
	}
}

// leafStrings collects string leaves of a value, stringifying numbers.
// Map keys are visited in sorted order so output is deterministic.
func leafStrings(v Value) []string {
	var out []string
	var walk func(v Value, depth int)
	walk = func(v Value, depth int) {
		if depth > MaxDepth {
			return
		}
		switch v.Kind() {
		case KindString:
			if v.Str() != "" {
				out = append(out, v.Str())
			}
		case KindNumber:
			out = append(out, strconv.FormatFloat(v.Num(), 'f', -1, 64))
		case KindList:
			for _, item := range v.Items() {
				walk(item, depth+1)
			}
		case KindMap:
			keys := make([]string, 0, len(v.Fields()))
			for k := range v.Fields() {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				walk(v.Fields()[k], depth+1)
			}
		}
	}
	walk(v, 0)
	return out
}
