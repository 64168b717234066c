package port

import (
	"context"

	"fisionote/internal/domain"
)

// GenerateInput carries the data needed to draft a clinical note.
type GenerateInput struct {
	Transcript string
	Specialty  domain.Specialty
	Locale     string
}

// GenerateOutput contains the raw model response. The text is not parsed here;
// it is handed to the normalizer as-is.
type GenerateOutput struct {
	RawText    string
	ModelUsed  string
	PromptUsed string
	Truncated  bool // provider stopped at its output token limit
}

// NoteGenerator abstracts LLM-based note drafting.
type NoteGenerator interface {
	Generate(ctx context.Context, input GenerateInput) (*GenerateOutput, error)
}
