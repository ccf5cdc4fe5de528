package ai

import (
	"context"

	"github.com/poiesic/semsimilar/core"
)

// SenseSelector picks the meaning of a word from a list of candidate senses.
// Implementations must be thread-safe for concurrent use.
type SenseSelector interface {
	// SelectSense returns the id of the candidate that best fits target as
	// used in window, or "" when none of them fits.
	// Returns an error if the underlying service fails.
	SelectSense(ctx context.Context, target string, window []string, candidates []core.SenseEntry) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// SenseSelector returns the sense selection service.
	// The returned SenseSelector is safe for concurrent use.
	SenseSelector() SenseSelector

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
