package openai

import (
	"log/slog"

	"github.com/poiesic/semsimilar/ai"
)

// Provider implements ai.AIProvider using OpenAI-compatible services.
type Provider struct {
	config   *ai.Config
	selector *SenseSelector
	logger   *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.AIProvider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	selector, err := newSenseSelector(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:   config,
		selector: selector,
		logger:   slog.Default().With("component", "openai-provider"),
	}, nil
}

// SenseSelector returns the sense selection service.
func (p *Provider) SenseSelector() ai.SenseSelector {
	return p.selector
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying client doesn't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
