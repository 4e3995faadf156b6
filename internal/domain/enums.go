package domain

// DeckStatus represents the lifecycle of an uploaded deck.
type DeckStatus string

const (
	DeckStatusUploaded    DeckStatus = "uploaded"
	DeckStatusTransformed DeckStatus = "transformed"
)

// TransformOutcome records how the edit payload was obtained from the
// model's output stream.
type TransformOutcome string

const (
	// OutcomeClean means the model emitted the separator and the payload
	// was split off cleanly.
	OutcomeClean TransformOutcome = "clean"
	// OutcomeRecovered means the separator never appeared and the payload
	// was reconstructed heuristically from the reasoning text.
	OutcomeRecovered TransformOutcome = "recovered"
	// OutcomeEmpty means no edit lines could be recovered by any means.
	OutcomeEmpty TransformOutcome = "empty"
)
