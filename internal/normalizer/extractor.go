package normalizer

import (
	"encoding/json"
	"sort"
	"strings"
)

// maxCandidateStarts bounds the brace scan on pathological input.
const maxCandidateStarts = 256

// Document is a decoded JSON object recovered from a raw payload.
type Document map[string]any

// Strategy names the extraction step that produced a Document.
type Strategy string

const (
	StrategyObject    Strategy = "object"
	StrategyDirect    Strategy = "direct"
	StrategySpan      Strategy = "span"
	StrategyCandidate Strategy = "candidate"
	StrategyNone      Strategy = "none"
)

// Extract recovers a JSON object from raw, or an empty Document if none can be found.
func Extract(raw RawResponse) Document {
	doc, _ := ExtractWithStrategy(raw)
	return doc
}

// ExtractWithStrategy is Extract that also reports which step succeeded.
// Steps run in order of decreasing trust and stop at the first success:
// an object payload as-is, the whole text as JSON, the outermost brace span,
// then every balanced brace fragment longest first.
func ExtractWithStrategy(raw RawResponse) (Document, Strategy) {
	switch raw.kind {
	case KindObject:
		return Document(raw.object), StrategyObject
	case KindText:
		return extractText(raw.text, 1)
	default:
		return Document{}, StrategyNone
	}
}

func extractText(s string, unwrap int) (Document, Strategy) {
	if doc, ok := parseObject(s, unwrap); ok {
		return doc, StrategyDirect
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		if doc, ok := parseObject(s[start:end+1], 0); ok {
			return doc, StrategySpan
		}
	}

	for _, candidate := range braceCandidates(s) {
		if doc, ok := parseObject(candidate, 0); ok {
			return doc, StrategyCandidate
		}
	}

	return Document{}, StrategyNone
}

// parseObject decodes s as a JSON object. A JSON string literal is unwrapped
// and extracted again while unwrap > 0, which covers double-encoded payloads.
func parseObject(s string, unwrap int) (Document, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	switch t := v.(type) {
	case map[string]any:
		return Document(t), true
	case string:
		if unwrap > 0 {
			if doc, strategy := extractText(t, unwrap-1); strategy != StrategyNone {
				return doc, true
			}
		}
	}
	return nil, false
}

// braceCandidates returns every balanced {...} fragment of s, longest first.
// Truncated fragments never close and are left out; equal lengths keep
// their order of appearance.
func braceCandidates(s string) []string {
	var out []string
	starts := 0
	for i := 0; i < len(s) && starts < maxCandidateStarts; i++ {
		if s[i] != '{' {
			continue
		}
		starts++
		if end := matchBrace(s, i); end > i {
			out = append(out, s[i:end+1])
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return len(out[a]) > len(out[b]) })
	return out
}

// matchBrace returns the index of the brace closing s[start], skipping braces
// inside string literals, or -1.
func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
