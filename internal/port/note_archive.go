package port

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"fisionote/internal/domain"
)

// ArchiveRecord is one normalization run as stored in the archive.
type ArchiveRecord struct {
	ID        uuid.UUID            `json:"id"`
	RequestID string               `json:"request_id,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	Kind      string               `json:"kind"`
	Strategy  string               `json:"strategy"`
	Model     string               `json:"model,omitempty"`
	Raw       json.RawMessage      `json:"raw"`
	Note      *domain.ClinicalNote `json:"note"`
	Quality   domain.QualityStatus `json:"quality"`
}

// NoteArchive persists normalization runs for later review.
type NoteArchive interface {
	Save(ctx context.Context, record *ArchiveRecord) (string, error)
}
