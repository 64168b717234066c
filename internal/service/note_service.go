package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fisionote/internal/domain"
	"fisionote/internal/generator"
	"fisionote/internal/logger"
	"fisionote/internal/normalizer"
	"fisionote/internal/port"
	"fisionote/internal/quality"
)

// GenerateNoteInput is the DTO for note generation requests.
type GenerateNoteInput struct {
	Transcript string
	Specialty  domain.Specialty
	Locale     string
}

// Extraction reports how the note was recovered from the raw payload.
type Extraction struct {
	Kind     string `json:"kind"`
	Strategy string `json:"strategy"`
}

// NoteResult is a canonical note together with how it was produced.
type NoteResult struct {
	ID         uuid.UUID            `json:"id"`
	Note       *domain.ClinicalNote `json:"note"`
	Quality    quality.Report       `json:"quality"`
	Extraction Extraction           `json:"extraction"`
	Model      string               `json:"model,omitempty"`
	Truncated  bool                 `json:"truncated,omitempty"`
	ArchiveKey string               `json:"archive_key,omitempty"`
}

// NoteService defines the note normalization contract.
type NoteService interface {
	Normalize(ctx context.Context, raw any) (*NoteResult, error)
	Generate(ctx context.Context, input GenerateNoteInput) (*NoteResult, error)
}

type noteService struct {
	pipeline           *normalizer.Pipeline
	quality            *quality.Engine
	generator          port.NoteGenerator
	archive            port.NoteArchive
	maxTranscriptChars int
	logger             zerolog.Logger
	now                func() time.Time
}

// NewNoteService creates a new NoteService implementation. gen may be nil,
// in which case Generate returns domain.ErrGeneratorNotConfigured.
func NewNoteService(
	pipeline *normalizer.Pipeline,
	engine *quality.Engine,
	gen port.NoteGenerator,
	archive port.NoteArchive,
	maxTranscriptChars int,
	log zerolog.Logger,
) NoteService {
	return &noteService{
		pipeline:           pipeline,
		quality:            engine,
		generator:          gen,
		archive:            archive,
		maxTranscriptChars: maxTranscriptChars,
		logger:             log,
		now:                time.Now,
	}
}

func (s *noteService) Normalize(ctx context.Context, raw any) (*NoteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.process(ctx, raw, "", false), nil
}

func (s *noteService) Generate(ctx context.Context, input GenerateNoteInput) (*NoteResult, error) {
	if s.generator == nil {
		return nil, domain.ErrGeneratorNotConfigured
	}

	transcript := strings.TrimSpace(input.Transcript)
	if transcript == "" {
		return nil, domain.ErrEmptyTranscript
	}
	if s.maxTranscriptChars > 0 && utf8.RuneCountInString(transcript) > s.maxTranscriptChars {
		return nil, domain.ErrTranscriptTooLong
	}

	specialty := input.Specialty
	if specialty == "" {
		specialty = domain.SpecialtyGeneral
	}
	if !domain.ValidSpecialties[specialty] {
		return nil, domain.ErrInvalidSpecialty
	}

	out, err := s.generator.Generate(ctx, port.GenerateInput{
		Transcript: transcript,
		Specialty:  specialty,
		Locale:     input.Locale,
	})
	if err != nil {
		var rlErr *generator.RateLimitError
		if errors.As(err, &rlErr) {
			return nil, fmt.Errorf("%w: %w", domain.ErrGeneratorRateLimit, err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrGeneratorFailed, err)
	}

	return s.process(ctx, out.RawText, out.ModelUsed, out.Truncated), nil
}

func (s *noteService) process(ctx context.Context, raw any, model string, truncated bool) *NoteResult {
	log := logger.FromContext(ctx, s.logger)

	res := s.pipeline.Run(raw)
	report := s.quality.Evaluate(quality.Input{
		Note:               res.Note,
		Strategy:           res.Strategy,
		DefaultEvaluations: s.pipeline.DefaultEvaluations(),
	})

	result := &NoteResult{
		ID:      uuid.New(),
		Note:    res.Note,
		Quality: report,
		Extraction: Extraction{
			Kind:     res.Kind.String(),
			Strategy: string(res.Strategy),
		},
		Model:     model,
		Truncated: truncated,
	}

	if report.Status == domain.QualitySparse {
		evt := log.Warn().
			Str("note_id", result.ID.String()).
			Str("kind", result.Extraction.Kind).
			Str("strategy", result.Extraction.Strategy)
		if model != "" {
			evt = evt.Str("model", model)
		}
		evt.Msg("normalized note holds only defaults")
	} else {
		log.Debug().
			Str("note_id", result.ID.String()).
			Str("strategy", result.Extraction.Strategy).
			Str("quality", string(report.Status)).
			Msg("note normalized")
	}

	key, err := s.archive.Save(ctx, &port.ArchiveRecord{
		ID:        result.ID,
		RequestID: logger.RequestID(ctx),
		CreatedAt: s.now().UTC(),
		Kind:      result.Extraction.Kind,
		Strategy:  result.Extraction.Strategy,
		Model:     model,
		Raw:       rawJSON(raw),
		Note:      res.Note,
		Quality:   report.Status,
	})
	if err != nil {
		log.Error().Err(err).Str("note_id", result.ID.String()).Msg("failed to archive note")
	}
	result.ArchiveKey = key

	return result
}

// rawJSON renders an upstream payload for the archive. Text that is valid
// JSON is stored as-is; other text is stored as a JSON string.
func rawJSON(raw any) json.RawMessage {
	var text []byte
	switch v := raw.(type) {
	case nil:
		return json.RawMessage("null")
	case string:
		text = []byte(v)
	case *string:
		if v == nil {
			return json.RawMessage("null")
		}
		text = []byte(*v)
	case []byte:
		text = v
	case json.RawMessage:
		text = v
	default:
		if b, err := json.Marshal(v); err == nil {
			return b
		}
		b, _ := json.Marshal(fmt.Sprintf("%v", v))
		return b
	}
	if json.Valid(text) {
		return json.RawMessage(text)
	}
	b, _ := json.Marshal(string(text))
	return b
}
