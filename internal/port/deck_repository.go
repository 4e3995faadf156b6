package port

import (
	"context"

	"github.com/google/uuid"

	"vixip/internal/domain"
)

// DeckRepository manages deck sessions. Sessions are ephemeral: one
// extraction snapshot and at most one patch pass per upload, so
// implementations need not survive restarts.
type DeckRepository interface {
	Create(ctx context.Context, deck *domain.Deck) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	Update(ctx context.Context, deck *domain.Deck) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Deck, error)
}
