package normalizer

import (
	"strconv"
	"strings"
)

const rationaleSeparator = " — "

// withRationale appends rationale to label after an em-dash. An empty
// rationale leaves the label untouched.
func withRationale(label, rationale string) string {
	if rationale == "" {
		return label
	}
	if label == "" {
		return rationale
	}
	return label + rationaleSeparator + rationale
}

// withMetrics appends a sensitivity/specificity pair. The pair is omitted
// unless both values are non-zero.
func withMetrics(label string, sensitivity, specificity float64) string {
	if sensitivity == 0 || specificity == 0 {
		return label
	}
	var b strings.Builder
	b.WriteString(label)
	b.WriteString(" (S: ")
	b.WriteString(strconv.FormatFloat(sensitivity, 'f', -1, 64))
	b.WriteString(", E: ")
	b.WriteString(strconv.FormatFloat(specificity, 'f', -1, 64))
	b.WriteString(")")
	return b.String()
}
