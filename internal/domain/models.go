package domain

import (
	"time"

	"github.com/google/uuid"
)

// Deck represents an uploaded slide deck session. The source bytes live in
// object storage; the extracted text snapshot is kept in memory for prompt
// construction across chat turns.
type Deck struct {
	ID           uuid.UUID  `json:"id"`
	OriginalName string     `json:"original_name"`
	FileSize     int64      `json:"file_size"`
	SourceKey    string     `json:"-"`
	ResultKey    string     `json:"-"`
	Snapshot     string     `json:"-"`
	SlideCount   int        `json:"slide_count"`
	LineCount    int        `json:"line_count"`
	Status       DeckStatus `json:"status"`
	UploadedAt   time.Time  `json:"uploaded_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TransformResult summarizes one transform pass over a deck.
type TransformResult struct {
	DeckID         uuid.UUID        `json:"deck_id"`
	Outcome        TransformOutcome `json:"outcome"`
	Recovered      bool             `json:"recovered"`
	EditsRequested int              `json:"edits_requested"`
	EditsApplied   int              `json:"edits_applied"`
}
