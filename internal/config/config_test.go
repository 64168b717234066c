package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fisionote/internal/config"
)

func TestGeneratorConfig_PrimaryConfig_LegacyFallback(t *testing.T) {
	cfg := config.GeneratorConfig{
		Provider:     "gemini",
		APIKey:       "key-legacy",
		DefaultModel: "gemini-2.0-flash",
		TimeoutSecs:  30,
	}

	primary := cfg.PrimaryConfig()

	assert.Equal(t, "gemini", primary.Provider)
	assert.Equal(t, "key-legacy", primary.APIKey)
	assert.Equal(t, "gemini-2.0-flash", primary.DefaultModel)
	assert.Equal(t, 30, primary.TimeoutSecs)
}

func TestGeneratorConfig_PrimaryConfig_ExplicitPrimary(t *testing.T) {
	cfg := config.GeneratorConfig{
		Provider: "legacy-should-be-ignored",
		Primary: config.GeneratorProviderConfig{
			Provider:     "claude",
			APIKey:       "sk-primary",
			DefaultModel: "claude-sonnet-4-20250514",
		},
	}

	primary := cfg.PrimaryConfig()

	assert.Equal(t, "claude", primary.Provider)
	assert.Equal(t, "sk-primary", primary.APIKey)
}

func TestGeneratorConfig_ProviderConfigs(t *testing.T) {
	cfg := config.GeneratorConfig{
		Primary:  config.GeneratorProviderConfig{Provider: "gemini"},
		Tertiary: config.GeneratorProviderConfig{Provider: "openai"},
	}

	assert.Nil(t, cfg.SecondaryConfig())
	require.NotNil(t, cfg.TertiaryConfig())

	provs := cfg.ProviderConfigs()
	require.Len(t, provs, 2)
	assert.Equal(t, "gemini", provs[0].Provider)
	assert.Equal(t, "openai", provs[1].Provider)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(2<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "gemini", cfg.Generator.PrimaryConfig().Provider)
	assert.Equal(t, 50000, cfg.Generator.MaxTranscriptChars)
	assert.Empty(t, cfg.Normalizer.DefaultEvaluations)
	assert.False(t, cfg.Archive.Enabled)
	assert.Equal(t, "notes", cfg.Archive.Prefix)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:5173")
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("FISIONOTE_SERVER_PORT", ":9090")
	t.Setenv("FISIONOTE_LOG_FORMAT", "json")
	t.Setenv("FISIONOTE_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("FISIONOTE_GENERATOR_PRIMARY_PROVIDER", "claude")
	t.Setenv("FISIONOTE_GENERATOR_PRIMARY_API_KEY", "sk-1")
	t.Setenv("FISIONOTE_GENERATOR_SECONDARY_PROVIDER", "openai")
	t.Setenv("FISIONOTE_NORMALIZER_DEFAULT_EVALUATIONS", "Test de Lasègue | Slump test, sentado ||")
	t.Setenv("FISIONOTE_ARCHIVE_ENABLED", "true")
	t.Setenv("FISIONOTE_ARCHIVE_BUCKET", "clinic-notes")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "claude", cfg.Generator.PrimaryConfig().Provider)
	assert.Equal(t, "sk-1", cfg.Generator.PrimaryConfig().APIKey)
	require.NotNil(t, cfg.Generator.SecondaryConfig())
	assert.Equal(t, "openai", cfg.Generator.SecondaryConfig().Provider)
	assert.Equal(t, []string{"Test de Lasègue", "Slump test, sentado"}, cfg.Normalizer.DefaultEvaluations)
	assert.True(t, cfg.Archive.Enabled)
	assert.Equal(t, "clinic-notes", cfg.Archive.Bucket)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "3000")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Server.Port)
}
