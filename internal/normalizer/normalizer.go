package normalizer

import (
	"strings"

	"fisionote/internal/domain"
)

// Normalizer maps an extracted Document onto the canonical note. It holds no
// mutable state and is safe for concurrent use.
type Normalizer struct {
	defaultEvaluations []string
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithDefaultEvaluations replaces the fallback evaluation battery. Blank
// entries are dropped; an empty list keeps DefaultEvaluations.
func WithDefaultEvaluations(evaluations []string) Option {
	return func(n *Normalizer) {
		var kept []string
		for _, e := range evaluations {
			if e = strings.TrimSpace(e); e != "" && !isPlaceholder(e) {
				kept = append(kept, e)
			}
		}
		if len(kept) > 0 {
			n.defaultEvaluations = kept
		}
	}
}

// New creates a Normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{defaultEvaluations: DefaultEvaluations}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var defaultNormalizer = New()

// Normalize maps doc onto a canonical note using the default options.
func Normalize(doc Document) *domain.ClinicalNote {
	return defaultNormalizer.Normalize(doc)
}

// Normalize maps doc onto a canonical note. Missing or malformed fields take
// their defaults; the same doc always yields the same note.
func (n *Normalizer) Normalize(doc Document) *domain.ClinicalNote {
	f := newFields(doc)
	soap, hasSOAP := f.section(soapKeys...)
	soapText := func(keys []string) string {
		if hasSOAP {
			if s := soap.text(keys...); s != "" {
				return NormalizeMedicationText(s)
			}
		}
		return NormalizeMedicationText(f.text(keys...))
	}

	note := &domain.ClinicalNote{
		Subjective:    soapText(subjectiveKeys),
		Objective:     soapText(objectiveKeys),
		Assessment:    soapText(assessmentKeys),
		Plan:          soapText(planKeys),
		Patient:       patientOf(f),
		PhysicalTests: physicalTests(f),
		RedFlags:      redFlags(f),
		Entities:      entities(f),
		Medications:   medications(f),
	}
	note.SuggestedEvaluations = n.suggestedEvaluations(f)
	return note
}

func patientOf(f fields) domain.Patient {
	src := f
	if nested, ok := f.section(patientKeys...); ok {
		src = nested
	}
	var p domain.Patient
	if v, ok := src.get(ageKeys...); ok {
		switch t := v.(type) {
		case string:
			if !isPlaceholder(t) {
				p.Age = domain.TextAge(t)
			}
		default:
			if num, isNum := numberOf(t); isNum {
				p.Age = domain.NumericAge(num)
			}
		}
	}
	p.Sex = src.str(sexKeys...)
	return p
}

// suggestedEvaluations keeps string entries verbatim, takes the name of
// object entries and drops everything else. An empty result is replaced by
// a copy of the default battery.
func (n *Normalizer) suggestedEvaluations(f fields) []string {
	v, _ := f.get(evaluationKeys...)
	out := make([]string, 0)
	for _, item := range listOf(v) {
		if name := entryName(item, testNameKeys); name != "" {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		out = append(out, n.defaultEvaluations...)
	}
	return out
}

// entryName resolves one entry of a mixed-type list to a string.
func entryName(item any, nameKeys []string) string {
	switch t := item.(type) {
	case string:
		if strings.TrimSpace(t) == "" || isPlaceholder(t) {
			return ""
		}
		return t
	case map[string]any:
		return newFields(t).str(nameKeys...)
	case float64:
		if t == 0 {
			return ""
		}
		return textOf(t)
	default:
		return ""
	}
}

func physicalTests(f fields) []domain.PhysicalTest {
	v, _ := f.get(physicalTestKeys...)
	out := make([]domain.PhysicalTest, 0)
	for _, item := range listOf(v) {
		var t domain.PhysicalTest
		switch e := item.(type) {
		case string:
			t.Name = entryName(e, nil)
		case map[string]any:
			ef := newFields(e)
			t.Name = ef.str(testNameKeys...)
			t.Result = ef.text(resultKeys...)
			t.Sensitivity, _ = ef.number(sensitivityKeys...)
			t.Specificity, _ = ef.number(specificityKeys...)
			t.Rationale = ef.str(rationaleKeys...)
		}
		t.Name = strings.TrimSpace(t.Name)
		if t.Name == "" {
			continue
		}
		t.Display = withMetrics(withRationale(t.Name, t.Rationale), t.Sensitivity, t.Specificity)
		out = append(out, t)
	}
	return out
}

func redFlags(f fields) []domain.RedFlag {
	v, _ := f.get(redFlagKeys...)
	out := make([]domain.RedFlag, 0)
	for _, item := range listOf(v) {
		var rf domain.RedFlag
		switch e := item.(type) {
		case string:
			rf.Description = strings.TrimSpace(entryName(e, nil))
		case map[string]any:
			ef := newFields(e)
			rf.Description = ef.str(redFlagTextKeys...)
			rf.Severity = ef.str(severityKeys...)
			rf.Rationale = ef.str(rationaleKeys...)
		}
		if rf.Description == "" {
			continue
		}
		rf.Display = withRationale(rf.Description, rf.Rationale)
		out = append(out, rf)
	}
	return out
}

func entities(f fields) []domain.Entity {
	v, _ := f.get(entityKeys...)
	out := make([]domain.Entity, 0)
	for _, item := range listOf(v) {
		var e domain.Entity
		switch t := item.(type) {
		case string:
			e.Text = strings.TrimSpace(entryName(t, nil))
		case map[string]any:
			ef := newFields(t)
			e.Text = ef.str(entityTextKeys...)
			e.Type = ef.str(entityTypeKeys...)
		}
		if e.Text == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

// medications accepts a list of names or objects, or a single delimited string.
func medications(f fields) []string {
	v, _ := f.get(medicationKeys...)
	var names []string
	if s, ok := v.(string); ok {
		names = strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ';' || r == '\n'
		})
	} else {
		for _, item := range listOf(v) {
			names = append(names, entryName(item, medicationNameKeys))
		}
	}
	return NormalizeMedications(names)
}
