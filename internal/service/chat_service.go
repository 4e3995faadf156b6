package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"vixip/internal/domain"
	"vixip/internal/llm"
	"vixip/internal/port"
)

// ChatService answers questions about a deck's content. Turns are
// stateless on the server: every question is grounded in the deck's
// extracted snapshot, and conversation display belongs to the client.
type ChatService interface {
	Ask(ctx context.Context, deckID uuid.UUID, question string) (<-chan port.Fragment, error)
}

type chatService struct {
	deckRepo  port.DeckRepository
	generator port.TextGenerator
}

// NewChatService creates a new ChatService implementation.
func NewChatService(deckRepo port.DeckRepository, generator port.TextGenerator) ChatService {
	return &chatService{deckRepo: deckRepo, generator: generator}
}

// Ask streams the model's answer about the deck. Chat mode sends a single
// combined context prompt with no system prompt.
func (s *chatService) Ask(ctx context.Context, deckID uuid.UUID, question string) (<-chan port.Fragment, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrEmptyQuestion
	}

	deck, err := s.deckRepo.GetByID(ctx, deckID)
	if err != nil {
		return nil, err
	}

	return s.generator.Stream(ctx, port.GenerateInput{
		UserPrompt: llm.BuildChatPrompt(deck.Snapshot, question),
	})
}
