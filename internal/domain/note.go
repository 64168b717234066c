package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ClinicalNote is the canonical SOAP note handed to display and storage consumers.
// List fields are never nil; SuggestedEvaluations is never empty.
type ClinicalNote struct {
	Subjective           string         `json:"subjective"`
	Objective            string         `json:"objective"`
	Assessment           string         `json:"assessment"`
	Plan                 string         `json:"plan"`
	Patient              Patient        `json:"patient"`
	PhysicalTests        []PhysicalTest `json:"physical_tests"`
	RedFlags             []RedFlag      `json:"red_flags"`
	Entities             []Entity       `json:"entities"`
	SuggestedEvaluations []string       `json:"suggested_evaluations"`
	Medications          []string       `json:"medications"`
}

// Patient holds the demographic fields the model reports alongside the note.
type Patient struct {
	Age Age    `json:"age"`
	Sex string `json:"sex,omitempty"`
}

// PhysicalTest is a physical examination manoeuvre with optional diagnostic accuracy.
type PhysicalTest struct {
	Name        string  `json:"name"`
	Result      string  `json:"result,omitempty"`
	Sensitivity float64 `json:"sensitivity,omitempty"`
	Specificity float64 `json:"specificity,omitempty"`
	Rationale   string  `json:"rationale,omitempty"`
	Display     string  `json:"display"`
}

// RedFlag is a finding that warrants referral or urgent follow-up.
type RedFlag struct {
	Description string `json:"description"`
	Severity    string `json:"severity,omitempty"`
	Rationale   string `json:"rationale,omitempty"`
	Display     string `json:"display"`
}

// Entity is a clinical concept mentioned in the source text.
type Entity struct {
	Text string `json:"text"`
	Type string `json:"type,omitempty"`
}

// Age is a patient age as reported upstream, numeric or free text ("84", 84, "84 años").
type Age struct {
	raw     string
	numeric bool
}

// NumericAge builds an Age from a number.
func NumericAge(v float64) Age {
	return Age{raw: strconv.FormatFloat(v, 'f', -1, 64), numeric: true}
}

// TextAge builds an Age from free text. Blank text yields the zero Age.
func TextAge(s string) Age {
	s = strings.TrimSpace(s)
	if s == "" {
		return Age{}
	}
	return Age{raw: s}
}

// IsZero reports whether no age was given.
func (a Age) IsZero() bool { return a.raw == "" }

func (a Age) String() string { return a.raw }

// Is reports whether the age matches n, either numerically or by the decimal
// form of n appearing in the text.
func (a Age) Is(n int) bool {
	if a.raw == "" {
		return false
	}
	if f, err := strconv.ParseFloat(a.raw, 64); err == nil && f == float64(n) {
		return true
	}
	return strings.Contains(a.raw, strconv.Itoa(n))
}

func (a Age) MarshalJSON() ([]byte, error) {
	if a.raw == "" {
		return []byte("null"), nil
	}
	if a.numeric {
		return []byte(a.raw), nil
	}
	return json.Marshal(a.raw)
}

func (a *Age) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*a = NumericAge(t)
	case string:
		*a = TextAge(t)
	default:
		*a = Age{}
	}
	return nil
}
