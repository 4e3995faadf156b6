package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vixip/internal/port"
)

// MockTextGenerator is a mock implementation of port.TextGenerator.
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Stream(ctx context.Context, input port.GenerateInput) (<-chan port.Fragment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan port.Fragment), args.Error(1)
}

func (m *MockTextGenerator) Healthy(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// FragmentChannel builds a closed-when-drained fragment channel from the
// given fragments, for wiring into Stream expectations.
func FragmentChannel(fragments ...port.Fragment) <-chan port.Fragment {
	ch := make(chan port.Fragment, len(fragments))
	for _, f := range fragments {
		ch <- f
	}
	close(ch)
	return ch
}

// TextFragments builds a fragment channel carrying the given texts.
func TextFragments(texts ...string) <-chan port.Fragment {
	fragments := make([]port.Fragment, len(texts))
	for i, t := range texts {
		fragments[i] = port.Fragment{Text: t}
	}
	return FragmentChannel(fragments...)
}
