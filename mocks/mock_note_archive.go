package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fisionote/internal/port"
)

// MockNoteArchive is a mock implementation of port.NoteArchive.
type MockNoteArchive struct {
	mock.Mock
}

func (m *MockNoteArchive) Save(ctx context.Context, record *port.ArchiveRecord) (string, error) {
	args := m.Called(ctx, record)
	return args.String(0), args.Error(1)
}
