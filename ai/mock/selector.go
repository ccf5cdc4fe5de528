package mock

import (
	"context"
	"slices"
	"sync"

	"github.com/poiesic/semsimilar/core"
)

// MockSenseSelector is a test double for ai.SenseSelector.
// It allows custom behavior injection via function fields.
type MockSenseSelector struct {
	// SelectSenseFunc is called by SelectSense if set.
	// If nil, the first candidate whose gloss mentions a window word wins,
	// falling back to the first candidate.
	SelectSenseFunc func(ctx context.Context, target string, window []string, candidates []core.SenseEntry) (string, error)

	mu        sync.Mutex
	callCount int
}

// NewMockSenseSelector creates a mock selector with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockSenseSelector() *MockSenseSelector {
	return &MockSenseSelector{}
}

// WithSelectSenseFunc sets custom selection behavior.
func (m *MockSenseSelector) WithSelectSenseFunc(fn func(ctx context.Context, target string, window []string, candidates []core.SenseEntry) (string, error)) *MockSenseSelector {
	m.SelectSenseFunc = fn
	return m
}

// SelectSense picks a candidate deterministically.
func (m *MockSenseSelector) SelectSense(ctx context.Context, target string, window []string, candidates []core.SenseEntry) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.SelectSenseFunc != nil {
		return m.SelectSenseFunc(ctx, target, window, candidates)
	}
	if len(candidates) == 0 {
		return "", nil
	}
	for _, c := range candidates {
		for _, word := range window {
			if word != target && slices.Contains(glossWords(c.Gloss), word) {
				return c.Id, nil
			}
		}
	}
	return candidates[0].Id, nil
}

// CallCount returns the number of times SelectSense was called.
func (m *MockSenseSelector) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockSenseSelector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.SelectSenseFunc = nil
}
