// Package memory implements DeckRepository as a mutex-guarded map. Deck
// sessions are ephemeral by design: one extraction snapshot, at most one
// transform pass, then download.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"vixip/internal/domain"
	"vixip/internal/port"
)

type deckRepo struct {
	mu    sync.RWMutex
	decks map[uuid.UUID]domain.Deck
}

// NewDeckRepo creates an in-memory DeckRepository.
func NewDeckRepo() port.DeckRepository {
	return &deckRepo{decks: make(map[uuid.UUID]domain.Deck)}
}

func (r *deckRepo) Create(ctx context.Context, deck *domain.Deck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decks[deck.ID] = *deck
	return nil
}

func (r *deckRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	deck, ok := r.decks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &deck, nil
}

func (r *deckRepo) Update(ctx context.Context, deck *domain.Deck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.decks[deck.ID]; !ok {
		return domain.ErrNotFound
	}
	deck.UpdatedAt = time.Now()
	r.decks[deck.ID] = *deck
	return nil
}

func (r *deckRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.decks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.decks, id)
	return nil
}

func (r *deckRepo) List(ctx context.Context) ([]domain.Deck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	decks := make([]domain.Deck, 0, len(r.decks))
	for _, d := range r.decks {
		decks = append(decks, d)
	}
	sort.Slice(decks, func(i, j int) bool {
		return decks[i].UploadedAt.After(decks[j].UploadedAt)
	})
	return decks, nil
}
