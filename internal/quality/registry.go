package quality

import "sort"

// Registry maps rule keys to Checker implementations.
type Registry struct {
	checkers map[string]Checker
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{checkers: make(map[string]Checker)}
}

// NewBuiltinRegistry creates a Registry holding every built-in check.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, c := range BuiltinCheckers() {
		r.Register(c)
	}
	return r
}

// Register adds a checker to the registry.
func (r *Registry) Register(c Checker) {
	r.checkers[c.RuleKey()] = c
}

// Get returns the checker for a given rule key, or nil if not found.
func (r *Registry) Get(key string) Checker {
	return r.checkers[key]
}

// All returns all registered checkers ordered by rule key.
func (r *Registry) All() []Checker {
	out := make([]Checker, 0, len(r.checkers))
	for _, c := range r.checkers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RuleKey() < out[j].RuleKey() })
	return out
}
