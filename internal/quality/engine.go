package quality

import "fisionote/internal/domain"

// Finding is a failed check reported back to the caller.
type Finding struct {
	RuleKey   string          `json:"rule_key"`
	RuleName  string          `json:"rule_name"`
	Severity  domain.Severity `json:"severity"`
	FieldPath string          `json:"field_path"`
	Message   string          `json:"message"`
}

// Report summarises the quality of one note.
type Report struct {
	Status   domain.QualityStatus `json:"status"`
	Findings []Finding            `json:"findings"`
}

// Engine runs every registered checker against a note.
type Engine struct {
	registry *Registry
}

// NewEngine creates a new quality engine.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Evaluate runs all checks. Error findings make the note sparse, warnings
// make it degraded; info findings do not affect the status.
func (e *Engine) Evaluate(in Input) Report {
	report := Report{Status: domain.QualityGood, Findings: make([]Finding, 0)}
	hasError, hasWarning := false, false

	for _, c := range e.registry.All() {
		for _, r := range c.Check(in) {
			if r.Passed {
				continue
			}
			report.Findings = append(report.Findings, Finding{
				RuleKey:   c.RuleKey(),
				RuleName:  c.RuleName(),
				Severity:  c.Severity(),
				FieldPath: r.FieldPath,
				Message:   r.Message,
			})
			switch c.Severity() {
			case domain.SeverityError:
				hasError = true
			case domain.SeverityWarning:
				hasWarning = true
			}
		}
	}

	switch {
	case hasError:
		report.Status = domain.QualitySparse
	case hasWarning:
		report.Status = domain.QualityDegraded
	}
	return report
}
