package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fisionote/internal/service"
)

// MockNoteService is a mock implementation of service.NoteService.
type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) Normalize(ctx context.Context, raw any) (*service.NoteResult, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NoteResult), args.Error(1)
}

func (m *MockNoteService) Generate(ctx context.Context, input service.GenerateNoteInput) (*service.NoteResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NoteResult), args.Error(1)
}
