package normalizer

import (
	"slices"

	"fisionote/internal/domain"
)

// Result is the outcome of one pipeline run.
type Result struct {
	Note     *domain.ClinicalNote
	Kind     Kind
	Strategy Strategy
}

// Pipeline chains Accept, Extract and Normalize.
type Pipeline struct {
	normalizer *Normalizer
}

// NewPipeline creates a Pipeline whose Normalizer is built with opts.
func NewPipeline(opts ...Option) *Pipeline {
	return &Pipeline{normalizer: New(opts...)}
}

// Run turns any upstream payload into a canonical note. It never fails.
func (p *Pipeline) Run(raw any) Result {
	accepted := Accept(raw)
	doc, strategy := ExtractWithStrategy(accepted)
	return Result{
		Note:     p.normalizer.Normalize(doc),
		Kind:     accepted.Kind(),
		Strategy: strategy,
	}
}

// DefaultEvaluations returns the battery substituted when a payload suggests
// no evaluations.
func (p *Pipeline) DefaultEvaluations() []string {
	return slices.Clone(p.normalizer.defaultEvaluations)
}
