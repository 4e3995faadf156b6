package port

import "context"

// GenerateInput carries one generation request. SystemPrompt may be empty
// (chat mode sends a single combined user prompt).
type GenerateInput struct {
	SystemPrompt string
	UserPrompt   string
}

// Fragment is one increment of a generation stream. A non-nil Err is
// terminal: the channel closes after it and any accumulated output for the
// turn should be discarded.
type Fragment struct {
	Text string
	Err  error
}

// TextGenerator abstracts a streaming language model backend. Stream
// returns a finite, non-restartable sequence of fragments paced by the
// producer; the channel is closed when generation completes or fails.
type TextGenerator interface {
	Stream(ctx context.Context, input GenerateInput) (<-chan Fragment, error)
	Healthy(ctx context.Context) error
}
