package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"vixip/internal/domain"
	"vixip/internal/port"
	"vixip/internal/service"
)

// MockDeckService is a mock implementation of service.DeckService.
type MockDeckService struct {
	mock.Mock
}

func (m *MockDeckService) Upload(ctx context.Context, input service.DeckUploadInput) (*domain.Deck, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *MockDeckService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *MockDeckService) List(ctx context.Context) ([]domain.Deck, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deck), args.Error(1)
}

func (m *MockDeckService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeckService) ExtractedText(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockDeckService) DownloadResult(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockDeckService) ExportWorkbook(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

// MockChatService is a mock implementation of service.ChatService.
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Ask(ctx context.Context, deckID uuid.UUID, question string) (<-chan port.Fragment, error) {
	args := m.Called(ctx, deckID, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan port.Fragment), args.Error(1)
}

// MockTransformService is a mock implementation of service.TransformService.
type MockTransformService struct {
	mock.Mock
}

func (m *MockTransformService) Transform(ctx context.Context, deckID uuid.UUID, instruction string) (*domain.TransformResult, error) {
	args := m.Called(ctx, deckID, instruction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransformResult), args.Error(1)
}
