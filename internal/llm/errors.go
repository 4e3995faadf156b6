package llm

import "fmt"

// BackendError indicates the generation backend failed or is unreachable.
// It is fatal for the current turn only; accumulated partial output is
// discarded while deck and conversation state are preserved.
type BackendError struct {
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NewBackendError wraps a backend failure with the backend's name.
func NewBackendError(backend string, err error) *BackendError {
	return &BackendError{Backend: backend, Err: err}
}
