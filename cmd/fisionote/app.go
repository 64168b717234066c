package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"fisionote/internal/archive"
	"fisionote/internal/config"
	"fisionote/internal/generator"
	"fisionote/internal/generator/claude"
	"fisionote/internal/generator/gemini"
	"fisionote/internal/generator/openai"
	"fisionote/internal/normalizer"
	"fisionote/internal/port"
	"fisionote/internal/quality"
	"fisionote/internal/service"
	s3storage "fisionote/internal/storage/s3"
)

func init() {
	generator.RegisterProvider("gemini", func(cfg *config.GeneratorProviderConfig) (port.NoteGenerator, error) {
		return gemini.NewGenerator(cfg), nil
	})
	generator.RegisterProvider("claude", func(cfg *config.GeneratorProviderConfig) (port.NoteGenerator, error) {
		return claude.NewGenerator(cfg), nil
	})
	generator.RegisterProvider("openai", func(cfg *config.GeneratorProviderConfig) (port.NoteGenerator, error) {
		return openai.NewGenerator(cfg), nil
	})
}

// app holds the components shared by every command.
type app struct {
	cfg       *config.Config
	service   service.NoteService
	generator port.NoteGenerator
	archived  bool
}

type appOptions struct {
	withGenerator bool
	withArchive   bool
}

func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts appOptions) (*app, error) {
	pipeline := normalizer.NewPipeline(normalizer.WithDefaultEvaluations(cfg.Normalizer.DefaultEvaluations))
	engine := quality.NewEngine(quality.NewBuiltinRegistry())

	var gen port.NoteGenerator
	if opts.withGenerator {
		if cfg.Generator.PrimaryConfig().APIKey == "" {
			logger.Warn().Msg("generator API key not set; note generation is disabled")
		} else {
			g, err := generator.NewFromConfig(&cfg.Generator, generator.WithLogger(logger))
			if err != nil {
				return nil, fmt.Errorf("failed to initialize generator: %w", err)
			}
			gen = g
		}
	}

	var noteArchive port.NoteArchive = archive.Nop{}
	archived := false
	if opts.withArchive && cfg.Archive.Enabled {
		storage, err := s3storage.NewS3Client(ctx, &cfg.Archive)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		noteArchive = archive.NewObjectArchive(storage, cfg.Archive.Bucket, cfg.Archive.Prefix)
		archived = true
		logger.Info().Str("bucket", cfg.Archive.Bucket).Msg("note archive enabled")
	}

	svc := service.NewNoteService(pipeline, engine, gen, noteArchive, cfg.Generator.MaxTranscriptChars, logger)
	return &app{cfg: cfg, service: svc, generator: gen, archived: archived}, nil
}
