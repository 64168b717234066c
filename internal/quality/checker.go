// Package quality grades normalized notes so callers can tell a sparse or
// fallback-only note apart from a well-populated one.
package quality

import (
	"fisionote/internal/domain"
	"fisionote/internal/normalizer"
)

// Input carries the note under review and how it was produced.
type Input struct {
	Note               *domain.ClinicalNote
	Strategy           normalizer.Strategy
	DefaultEvaluations []string
}

// Result is the outcome of one check on one field.
type Result struct {
	Passed    bool
	FieldPath string
	Message   string
}

// Checker is a single built-in quality rule.
type Checker interface {
	Check(in Input) []Result
	RuleKey() string
	RuleName() string
	Severity() domain.Severity
}
