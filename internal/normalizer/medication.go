package normalizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// medicationNames maps folded spellings (lower case, no diacritics) to the
// display form. Every display form folds to one of its own keys so that
// normalizing twice is a no-op.
var medicationNames = map[string]string{
	"lyrica":          "Lyrica",
	"lirica":          "Lyrica",
	"lyrika":          "Lyrica",
	"pregabalina":     "Pregabalina",
	"pregabalin":      "Pregabalina",
	"pregabalyna":     "Pregabalina",
	"gabapentina":     "Gabapentina",
	"gabapentin":      "Gabapentina",
	"gabapentine":     "Gabapentina",
	"neurontin":       "Neurontin",
	"ibuprofeno":      "Ibuprofeno",
	"ibuprofen":       "Ibuprofeno",
	"ibuprophen":      "Ibuprofeno",
	"paracetamol":     "Paracetamol",
	"acetaminofen":    "Paracetamol",
	"acetaminofeno":   "Paracetamol",
	"acetaminophen":   "Paracetamol",
	"diclofenaco":     "Diclofenaco",
	"diclofenac":      "Diclofenaco",
	"voltaren":        "Voltaren",
	"tramadol":        "Tramadol",
	"metamizol":       "Metamizol",
	"metamizole":      "Metamizol",
	"dipirona":        "Metamizol",
	"nolotil":         "Nolotil",
	"naproxeno":       "Naproxeno",
	"naproxen":        "Naproxeno",
	"dexketoprofeno":  "Dexketoprofeno",
	"dexketoprofen":   "Dexketoprofeno",
	"enantyum":        "Enantyum",
	"ciclobenzaprina": "Ciclobenzaprina",
	"cyclobenzaprine": "Ciclobenzaprina",
	"duloxetina":      "Duloxetina",
	"duloxetine":      "Duloxetina",
	"celecoxib":       "Celecoxib",
	"omeprazol":       "Omeprazol",
	"omeprazole":      "Omeprazol",
	"prednisona":      "Prednisona",
	"prednisone":      "Prednisona",
}

// foldKey lower-cases s without locale rules and strips combining marks.
// Transformers carry state, so a fresh chain is built per call.
func foldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Fold())
	folded, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// NormalizeMedicationName returns the display form of a known medication, or
// the input with collapsed whitespace when the name is not in the table.
func NormalizeMedicationName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" || isPlaceholder(name) {
		return ""
	}
	if canonical, ok := medicationNames[foldKey(name)]; ok {
		return canonical
	}
	return name
}

// NormalizeMedications normalizes each name and drops blanks and duplicates,
// keeping the first occurrence. The result is never nil.
func NormalizeMedications(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		normalized := NormalizeMedicationName(n)
		if normalized == "" {
			continue
		}
		key := foldKey(normalized)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

// NormalizeMedicationText rewrites whole words of free text that name a known
// medication. Word boundaries are runs of letters and digits.
func NormalizeMedicationText(text string) string {
	if text == "" {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	wordStart := -1
	flush := func(end int) {
		word := text[wordStart:end]
		if canonical, ok := medicationNames[foldKey(word)]; ok {
			b.WriteString(canonical)
		} else {
			b.WriteString(word)
		}
		wordStart = -1
	}
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if isWordRune(r) {
			if wordStart < 0 {
				wordStart = i
			}
		} else {
			if wordStart >= 0 {
				flush(i)
			}
			b.WriteString(text[i : i+size])
		}
		i += size
	}
	if wordStart >= 0 {
		flush(len(text))
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
