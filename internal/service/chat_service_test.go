package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vixip/internal/domain"
	"vixip/internal/port"
	"vixip/internal/service"
	"vixip/mocks"
)

func TestAsk_StreamsAnswerGroundedInSnapshot(t *testing.T) {
	deckRepo := new(mocks.MockDeckRepository)
	generator := new(mocks.MockTextGenerator)
	svc := service.NewChatService(deckRepo, generator)

	deckID := uuid.New()
	deckRepo.On("GetByID", mock.Anything, deckID).Return(&domain.Deck{
		ID:       deckID,
		Snapshot: "{S0:Sh0:P0} || Revenue grew 40%",
	}, nil)
	generator.On("Stream", mock.Anything, mock.MatchedBy(func(input port.GenerateInput) bool {
		return input.SystemPrompt == "" &&
			strings.Contains(input.UserPrompt, "{S0:Sh0:P0} || Revenue grew 40%") &&
			strings.Contains(input.UserPrompt, "User Question: How did revenue do?")
	})).Return(mocks.TextFragments("It grew ", "40%."), nil)

	ch, err := svc.Ask(context.Background(), deckID, "How did revenue do?")
	require.NoError(t, err)

	var answer string
	for f := range ch {
		require.NoError(t, f.Err)
		answer += f.Text
	}
	assert.Equal(t, "It grew 40%.", answer)
	generator.AssertExpectations(t)
}

func TestAsk_EmptyQuestion(t *testing.T) {
	deckRepo := new(mocks.MockDeckRepository)
	generator := new(mocks.MockTextGenerator)
	svc := service.NewChatService(deckRepo, generator)

	_, err := svc.Ask(context.Background(), uuid.New(), "  \n ")

	assert.ErrorIs(t, err, domain.ErrEmptyQuestion)
	deckRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAsk_DeckNotFound(t *testing.T) {
	deckRepo := new(mocks.MockDeckRepository)
	generator := new(mocks.MockTextGenerator)
	svc := service.NewChatService(deckRepo, generator)

	deckID := uuid.New()
	deckRepo.On("GetByID", mock.Anything, deckID).Return(nil, domain.ErrNotFound)

	_, err := svc.Ask(context.Background(), deckID, "hello?")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	generator.AssertNotCalled(t, "Stream", mock.Anything, mock.Anything)
}
