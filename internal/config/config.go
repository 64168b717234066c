package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	CORS       CORSConfig
	Generator  GeneratorConfig
	Normalizer NormalizerConfig
	Archive    ArchiveConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeneratorProviderConfig holds settings for a single generative-text provider.
type GeneratorProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	Endpoint     string `mapstructure:"endpoint"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// GeneratorConfig holds note generation settings with multi-provider support.
type GeneratorConfig struct {
	// Legacy flat fields (single provider)
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	// Multi-provider fields, tried in order
	Primary   GeneratorProviderConfig `mapstructure:"primary"`
	Secondary GeneratorProviderConfig `mapstructure:"secondary"`
	Tertiary  GeneratorProviderConfig `mapstructure:"tertiary"`

	MaxTranscriptChars int `mapstructure:"max_transcript_chars"`
}

// PrimaryConfig returns the primary provider config, falling back to legacy flat fields.
func (g *GeneratorConfig) PrimaryConfig() *GeneratorProviderConfig {
	if g.Primary.Provider != "" {
		return &g.Primary
	}
	return &GeneratorProviderConfig{
		Provider:     g.Provider,
		APIKey:       g.APIKey,
		DefaultModel: g.DefaultModel,
		TimeoutSecs:  g.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (g *GeneratorConfig) SecondaryConfig() *GeneratorProviderConfig {
	if g.Secondary.Provider != "" {
		return &g.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (g *GeneratorConfig) TertiaryConfig() *GeneratorProviderConfig {
	if g.Tertiary.Provider != "" {
		return &g.Tertiary
	}
	return nil
}

// ProviderConfigs returns the configured providers in fallback order.
func (g *GeneratorConfig) ProviderConfigs() []*GeneratorProviderConfig {
	out := []*GeneratorProviderConfig{g.PrimaryConfig()}
	if s := g.SecondaryConfig(); s != nil {
		out = append(out, s)
	}
	if t := g.TertiaryConfig(); t != nil {
		out = append(out, t)
	}
	return out
}

// NormalizerConfig holds response normalization settings.
type NormalizerConfig struct {
	// DefaultEvaluations replaces the built-in fallback battery when non-empty.
	DefaultEvaluations []string `mapstructure:"default_evaluations"`
}

// ArchiveConfig holds settings for archiving raw responses and notes to S3.
type ArchiveConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the FISIONOTE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FISIONOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "150s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_body_bytes", 2<<20)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Generator defaults (legacy flat)
	v.SetDefault("generator.provider", "gemini")
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.default_model", "gemini-2.0-flash")
	v.SetDefault("generator.timeout_secs", 120)
	v.SetDefault("generator.max_transcript_chars", 50000)

	// Generator primary/secondary/tertiary defaults
	for _, slot := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("generator."+slot+".provider", "")
		v.SetDefault("generator."+slot+".api_key", "")
		v.SetDefault("generator."+slot+".default_model", "")
		v.SetDefault("generator."+slot+".endpoint", "")
		v.SetDefault("generator."+slot+".timeout_secs", 120)
	}

	// Normalizer defaults
	v.SetDefault("normalizer.default_evaluations", "")

	// Archive defaults
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.bucket", "fisionote-notes")
	v.SetDefault("archive.prefix", "notes")
	v.SetDefault("archive.endpoint", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "FISIONOTE_SERVER_PORT",
		"server.read_timeout":               "FISIONOTE_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "FISIONOTE_SERVER_WRITE_TIMEOUT",
		"server.environment":                "FISIONOTE_SERVER_ENVIRONMENT",
		"server.max_body_bytes":             "FISIONOTE_SERVER_MAX_BODY_BYTES",
		"log.level":                         "FISIONOTE_LOG_LEVEL",
		"log.format":                        "FISIONOTE_LOG_FORMAT",
		"cors.allowed_origins":              "FISIONOTE_CORS_ALLOWED_ORIGINS",
		"generator.provider":                "FISIONOTE_GENERATOR_PROVIDER",
		"generator.api_key":                 "FISIONOTE_GENERATOR_API_KEY",
		"generator.default_model":           "FISIONOTE_GENERATOR_DEFAULT_MODEL",
		"generator.timeout_secs":            "FISIONOTE_GENERATOR_TIMEOUT_SECS",
		"generator.max_transcript_chars":    "FISIONOTE_GENERATOR_MAX_TRANSCRIPT_CHARS",
		"generator.primary.provider":        "FISIONOTE_GENERATOR_PRIMARY_PROVIDER",
		"generator.primary.api_key":         "FISIONOTE_GENERATOR_PRIMARY_API_KEY",
		"generator.primary.default_model":   "FISIONOTE_GENERATOR_PRIMARY_DEFAULT_MODEL",
		"generator.primary.endpoint":        "FISIONOTE_GENERATOR_PRIMARY_ENDPOINT",
		"generator.primary.timeout_secs":    "FISIONOTE_GENERATOR_PRIMARY_TIMEOUT_SECS",
		"generator.secondary.provider":      "FISIONOTE_GENERATOR_SECONDARY_PROVIDER",
		"generator.secondary.api_key":       "FISIONOTE_GENERATOR_SECONDARY_API_KEY",
		"generator.secondary.default_model": "FISIONOTE_GENERATOR_SECONDARY_DEFAULT_MODEL",
		"generator.secondary.endpoint":      "FISIONOTE_GENERATOR_SECONDARY_ENDPOINT",
		"generator.secondary.timeout_secs":  "FISIONOTE_GENERATOR_SECONDARY_TIMEOUT_SECS",
		"generator.tertiary.provider":       "FISIONOTE_GENERATOR_TERTIARY_PROVIDER",
		"generator.tertiary.api_key":        "FISIONOTE_GENERATOR_TERTIARY_API_KEY",
		"generator.tertiary.default_model":  "FISIONOTE_GENERATOR_TERTIARY_DEFAULT_MODEL",
		"generator.tertiary.endpoint":       "FISIONOTE_GENERATOR_TERTIARY_ENDPOINT",
		"generator.tertiary.timeout_secs":   "FISIONOTE_GENERATOR_TERTIARY_TIMEOUT_SECS",
		"normalizer.default_evaluations":    "FISIONOTE_NORMALIZER_DEFAULT_EVALUATIONS",
		"archive.enabled":                   "FISIONOTE_ARCHIVE_ENABLED",
		"archive.region":                    "FISIONOTE_ARCHIVE_REGION",
		"archive.bucket":                    "FISIONOTE_ARCHIVE_BUCKET",
		"archive.prefix":                    "FISIONOTE_ARCHIVE_PREFIX",
		"archive.endpoint":                  "FISIONOTE_ARCHIVE_ENDPOINT",
		"archive.access_key":                "FISIONOTE_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":                "FISIONOTE_ARCHIVE_SECRET_KEY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Cloud Run/Railway set a PORT env var. Use it if FISIONOTE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FISIONOTE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		MaxBodyBytes: v.GetInt64("server.max_body_bytes"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins"), ","),
	}

	provider := func(slot string) GeneratorProviderConfig {
		return GeneratorProviderConfig{
			Provider:     v.GetString("generator." + slot + ".provider"),
			APIKey:       v.GetString("generator." + slot + ".api_key"),
			DefaultModel: v.GetString("generator." + slot + ".default_model"),
			Endpoint:     v.GetString("generator." + slot + ".endpoint"),
			TimeoutSecs:  v.GetInt("generator." + slot + ".timeout_secs"),
		}
	}
	cfg.Generator = GeneratorConfig{
		Provider:           v.GetString("generator.provider"),
		APIKey:             v.GetString("generator.api_key"),
		DefaultModel:       v.GetString("generator.default_model"),
		TimeoutSecs:        v.GetInt("generator.timeout_secs"),
		Primary:            provider("primary"),
		Secondary:          provider("secondary"),
		Tertiary:           provider("tertiary"),
		MaxTranscriptChars: v.GetInt("generator.max_transcript_chars"),
	}

	// Evaluations contain commas, so the list is pipe-separated.
	cfg.Normalizer = NormalizerConfig{
		DefaultEvaluations: splitList(v.GetString("normalizer.default_evaluations"), "|"),
	}

	cfg.Archive = ArchiveConfig{
		Enabled:   v.GetBool("archive.enabled"),
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Prefix:    v.GetString("archive.prefix"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
	}

	return cfg, nil
}

func splitList(s, sep string) []string {
	var out []string
	for _, item := range strings.Split(s, sep) {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
