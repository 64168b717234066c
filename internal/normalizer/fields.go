package normalizer

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// placeholders are stringified non-values that upstream clients leak into text.
var placeholders = map[string]bool{
	"[object Object]": true,
	"undefined":       true,
	"null":            true,
	"NaN":             true,
}

func isPlaceholder(s string) bool {
	return placeholders[strings.TrimSpace(s)]
}

// fields looks up values by alias. Aliases match keys exactly first, then by
// folded form ("Evaluación" matches "evaluacion"), with keys visited in
// sorted order so the result does not depend on map iteration.
type fields struct {
	m      map[string]any
	folded []foldedKey
}

type foldedKey struct {
	key    string
	folded string
}

func newFields(m map[string]any) fields {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	folded := make([]foldedKey, len(keys))
	for i, k := range keys {
		folded[i] = foldedKey{key: k, folded: foldKey(strings.TrimSpace(k))}
	}
	return fields{m: m, folded: folded}
}

// get returns the first non-null value stored under any alias.
func (f fields) get(aliases ...string) (any, bool) {
	for _, a := range aliases {
		if v, ok := f.m[a]; ok && v != nil {
			return v, true
		}
	}
	for _, a := range aliases {
		fa := foldKey(a)
		for _, k := range f.folded {
			if k.folded == fa && f.m[k.key] != nil {
				return f.m[k.key], true
			}
		}
	}
	return nil, false
}

// text returns the first non-empty text value stored under any alias.
func (f fields) text(aliases ...string) string {
	for _, a := range aliases {
		if v, ok := f.get(a); ok {
			if s := textOf(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// str is text restricted to string values.
func (f fields) str(aliases ...string) string {
	for _, a := range aliases {
		if v, ok := f.get(a); ok {
			if s, isStr := v.(string); isStr && !isPlaceholder(s) {
				if s = strings.TrimSpace(s); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// number returns the first value under any alias that reads as a number.
func (f fields) number(aliases ...string) (float64, bool) {
	for _, a := range aliases {
		if v, ok := f.get(a); ok {
			if n, isNum := numberOf(v); isNum {
				return n, true
			}
		}
	}
	return 0, false
}

// section returns a nested object stored under any alias.
func (f fields) section(aliases ...string) (fields, bool) {
	v, ok := f.get(aliases...)
	if !ok {
		return fields{}, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return fields{}, false
	}
	return newFields(m), true
}

// textOf renders scalar values and string lists as text. Objects, booleans
// and placeholders render as the empty string.
func textOf(v any) string {
	switch t := v.(type) {
	case string:
		if isPlaceholder(t) {
			return ""
		}
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := textOf(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}

// numberOf reads numbers and numeric strings such as "91%" or "0,91".
// NaN and infinities are not numbers here; they cannot be encoded as JSON.
func numberOf(v any) (float64, bool) {
	var (
		n   float64
		err error
	)
	switch t := v.(type) {
	case float64:
		n = t
	case json.Number:
		n, err = t.Float64()
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(t), "%"))
		s = strings.Replace(s, ",", ".", 1)
		n, err = strconv.ParseFloat(s, 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// listOf returns v as a list; a lone string or object becomes a one-item list.
func listOf(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case nil:
		return nil
	case string, map[string]any:
		return []any{t}
	default:
		return nil
	}
}
