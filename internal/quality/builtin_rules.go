package quality

import (
	"fmt"
	"slices"

	"fisionote/internal/domain"
	"fisionote/internal/normalizer"
)

// BuiltinCheckers returns all built-in quality checks.
func BuiltinCheckers() []Checker {
	return []Checker{
		&extractionChecker{},
		&heuristicExtractionChecker{},
		&contentChecker{},
		&evaluationsChecker{},
		&sectionChecker{ruleKey: "note.soap.subjective", ruleName: "Subjective section present", fieldPath: "subjective",
			extract: func(n *domain.ClinicalNote) string { return n.Subjective }},
		&sectionChecker{ruleKey: "note.soap.objective", ruleName: "Objective section present", fieldPath: "objective",
			extract: func(n *domain.ClinicalNote) string { return n.Objective }},
		&sectionChecker{ruleKey: "note.soap.assessment", ruleName: "Assessment section present", fieldPath: "assessment",
			extract: func(n *domain.ClinicalNote) string { return n.Assessment }},
		&sectionChecker{ruleKey: "note.soap.plan", ruleName: "Plan section present", fieldPath: "plan",
			extract: func(n *domain.ClinicalNote) string { return n.Plan }},
	}
}

// extractionChecker fails when no JSON object could be recovered at all.
type extractionChecker struct{}

func (c *extractionChecker) RuleKey() string           { return "note.extraction.recovered" }
func (c *extractionChecker) RuleName() string          { return "Model response contained a JSON object" }
func (c *extractionChecker) Severity() domain.Severity { return domain.SeverityError }

func (c *extractionChecker) Check(in Input) []Result {
	passed := in.Strategy != normalizer.StrategyNone
	msg := "JSON object recovered"
	if !passed {
		msg = "no JSON object could be recovered from the model response"
	}
	return []Result{{Passed: passed, FieldPath: "$", Message: msg}}
}

// heuristicExtractionChecker flags notes recovered from a fragment of the
// response, which usually means the output was truncated.
type heuristicExtractionChecker struct{}

func (c *heuristicExtractionChecker) RuleKey() string           { return "note.extraction.direct" }
func (c *heuristicExtractionChecker) RuleName() string          { return "Model response parsed without fragment recovery" }
func (c *heuristicExtractionChecker) Severity() domain.Severity { return domain.SeverityInfo }

func (c *heuristicExtractionChecker) Check(in Input) []Result {
	passed := in.Strategy != normalizer.StrategyCandidate
	msg := fmt.Sprintf("extracted via %s", in.Strategy)
	if !passed {
		msg = "extracted from a fragment of the response; output may be truncated"
	}
	return []Result{{Passed: passed, FieldPath: "$", Message: msg}}
}

// contentChecker fails when every field holds its default.
type contentChecker struct{}

func (c *contentChecker) RuleKey() string           { return "note.content.present" }
func (c *contentChecker) RuleName() string          { return "Note has clinical content" }
func (c *contentChecker) Severity() domain.Severity { return domain.SeverityError }

func (c *contentChecker) Check(in Input) []Result {
	n := in.Note
	hasContent := n.Subjective != "" || n.Objective != "" || n.Assessment != "" || n.Plan != "" ||
		len(n.PhysicalTests) > 0 || len(n.RedFlags) > 0 || len(n.Entities) > 0 || len(n.Medications) > 0 ||
		!n.Patient.Age.IsZero() || n.Patient.Sex != "" || !usesDefaults(n.SuggestedEvaluations, in.DefaultEvaluations)
	msg := "note has clinical content"
	if !hasContent {
		msg = "note contains only default values"
	}
	return []Result{{Passed: hasContent, FieldPath: "$", Message: msg}}
}

// evaluationsChecker notes when the default evaluation battery was substituted.
type evaluationsChecker struct{}

func (c *evaluationsChecker) RuleKey() string           { return "note.suggested_evaluations.provided" }
func (c *evaluationsChecker) RuleName() string          { return "Model suggested physical evaluations" }
func (c *evaluationsChecker) Severity() domain.Severity { return domain.SeverityInfo }

func (c *evaluationsChecker) Check(in Input) []Result {
	passed := !usesDefaults(in.Note.SuggestedEvaluations, in.DefaultEvaluations)
	msg := "suggested evaluations provided by the model"
	if !passed {
		msg = "no evaluations suggested; default battery substituted"
	}
	return []Result{{Passed: passed, FieldPath: "suggested_evaluations", Message: msg}}
}

// sectionChecker checks that a SOAP section is not empty.
type sectionChecker struct {
	ruleKey   string
	ruleName  string
	fieldPath string
	extract   func(*domain.ClinicalNote) string
}

func (c *sectionChecker) RuleKey() string           { return c.ruleKey }
func (c *sectionChecker) RuleName() string          { return c.ruleName }
func (c *sectionChecker) Severity() domain.Severity { return domain.SeverityWarning }

func (c *sectionChecker) Check(in Input) []Result {
	passed := c.extract(in.Note) != ""
	msg := fmt.Sprintf("%s: present", c.ruleName)
	if !passed {
		msg = fmt.Sprintf("%s section is empty", c.fieldPath)
	}
	return []Result{{Passed: passed, FieldPath: c.fieldPath, Message: msg}}
}

func usesDefaults(evaluations, defaults []string) bool {
	if len(defaults) == 0 {
		defaults = normalizer.DefaultEvaluations
	}
	return slices.Equal(evaluations, defaults)
}
