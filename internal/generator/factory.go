package generator

import (
	"fmt"
	"sync"

	"fisionote/internal/config"
	"fisionote/internal/domain"
	"fisionote/internal/port"
)

// ProviderFactory is a function that creates a NoteGenerator from a provider config.
type ProviderFactory func(cfg *config.GeneratorProviderConfig) (port.NoteGenerator, error)

var (
	providersMu sync.RWMutex
	// registry of provider factories, populated by main or via RegisterProvider.
	providers = map[string]ProviderFactory{}
)

// RegisterProvider registers a generator provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providersMu.Lock()
	defer providersMu.Unlock()
	providers[name] = factory
}

// New creates a NoteGenerator from a provider config using the registered factory.
func New(cfg *config.GeneratorProviderConfig) (port.NoteGenerator, error) {
	providersMu.RLock()
	factory, ok := providers[cfg.Provider]
	providersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, cfg.Provider)
	}
	return factory(cfg)
}

// NewFromConfig builds the configured provider chain. A single provider is
// returned directly; two or more are wrapped in a FallbackGenerator.
func NewFromConfig(cfg *config.GeneratorConfig, opts ...FallbackOption) (port.NoteGenerator, error) {
	provCfgs := cfg.ProviderConfigs()
	gens := make([]port.NoteGenerator, 0, len(provCfgs))
	names := make([]string, 0, len(provCfgs))
	for _, pc := range provCfgs {
		g, err := New(pc)
		if err != nil {
			return nil, fmt.Errorf("creating %s generator: %w", pc.Provider, err)
		}
		gens = append(gens, g)
		names = append(names, pc.Provider)
	}
	if len(gens) == 1 {
		return gens[0], nil
	}
	return NewFallbackGenerator(gens, names, opts...), nil
}
