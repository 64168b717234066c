package generator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fisionote/internal/config"
	"fisionote/internal/domain"
	"fisionote/internal/generator"
	"fisionote/internal/port"
)

// stubGenerator is a minimal NoteGenerator for testing the factory.
type stubGenerator struct {
	model string
}

func (s *stubGenerator) Generate(_ context.Context, _ port.GenerateInput) (*port.GenerateOutput, error) {
	return &port.GenerateOutput{ModelUsed: s.model}, nil
}

func registerStub(name string) {
	generator.RegisterProvider(name, func(cfg *config.GeneratorProviderConfig) (port.NoteGenerator, error) {
		return &stubGenerator{model: cfg.DefaultModel}, nil
	})
}

func TestFactory_RegisterAndCreate(t *testing.T) {
	registerStub("test-provider")

	g, err := generator.New(&config.GeneratorProviderConfig{
		Provider:     "test-provider",
		DefaultModel: "test-model",
	})

	require.NoError(t, err)
	out, err := g.Generate(context.Background(), port.GenerateInput{})
	require.NoError(t, err)
	assert.Equal(t, "test-model", out.ModelUsed)
}

func TestFactory_UnknownProvider(t *testing.T) {
	g, err := generator.New(&config.GeneratorProviderConfig{Provider: "nonexistent-provider-xyz"})

	assert.Nil(t, g)
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
}

func TestNewFromConfig_SingleProvider(t *testing.T) {
	registerStub("stub-a")

	g, err := generator.NewFromConfig(&config.GeneratorConfig{Provider: "stub-a", DefaultModel: "m1"})

	require.NoError(t, err)
	_, isFallback := g.(*generator.FallbackGenerator)
	assert.False(t, isFallback)
}

func TestNewFromConfig_FallbackChain(t *testing.T) {
	registerStub("stub-a")
	registerStub("stub-b")

	g, err := generator.NewFromConfig(&config.GeneratorConfig{
		Primary:   config.GeneratorProviderConfig{Provider: "stub-a", DefaultModel: "primary"},
		Secondary: config.GeneratorProviderConfig{Provider: "stub-b", DefaultModel: "secondary"},
	})

	require.NoError(t, err)
	assert.IsType(t, &generator.FallbackGenerator{}, g)
	out, err := g.Generate(context.Background(), port.GenerateInput{})
	require.NoError(t, err)
	assert.Equal(t, "primary", out.ModelUsed)
}

func TestNewFromConfig_UnknownProvider(t *testing.T) {
	_, err := generator.NewFromConfig(&config.GeneratorConfig{Provider: "nope"})

	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
}
