// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.SenseSelector and
// ai.AIProvider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewMockProvider()
//	id, err := provider.SenseSelector().SelectSense(ctx, "bank", window, candidates)
//
//	// Custom behavior injection
//	selector := mock.NewMockSenseSelector().
//	    WithSelectSenseFunc(func(ctx context.Context, target string, window []string, candidates []core.SenseEntry) (string, error) {
//	        return candidates[1].Id, nil
//	    })
//
//	// Check call counts
//	count := selector.CallCount()
//
// # Default Behavior
//
// MockSenseSelector returns the first candidate whose gloss contains a word of
// the window, or the first candidate when none does.
package mock
