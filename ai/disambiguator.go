package ai

import (
	"context"
	"log/slog"

	"github.com/poiesic/semsimilar/wsd"
)

// Disambiguator resolves senses by asking a SenseSelector to choose among
// the inventory's candidates for a word.
type Disambiguator struct {
	inventory wsd.Inventory
	selector  SenseSelector
	logger    *slog.Logger
}

var _ wsd.Disambiguator = (*Disambiguator)(nil)

// NewDisambiguator creates a Disambiguator. A nil logger uses slog.Default().
func NewDisambiguator(inventory wsd.Inventory, selector SenseSelector, logger *slog.Logger) *Disambiguator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Disambiguator{
		inventory: inventory,
		selector:  selector,
		logger:    logger.With("component", "ai-disambiguator"),
	}
}

// Disambiguate implements wsd.Disambiguator. Words without candidates are
// Undefined and words with a single candidate never reach the selector.
// A selection that is not one of the candidates is treated as Undefined.
func (d *Disambiguator) Disambiguate(ctx context.Context, window []string, target string) (wsd.Sense, error) {
	candidates := d.inventory.Senses(target)
	switch len(candidates) {
	case 0:
		return wsd.Undefined, nil
	case 1:
		return wsd.Sense(candidates[0].Id), nil
	}

	id, err := d.selector.SelectSense(ctx, target, window, candidates)
	if err != nil {
		return wsd.Undefined, err
	}
	if id == "" {
		return wsd.Undefined, nil
	}
	for _, c := range candidates {
		if c.Id == id {
			return wsd.Sense(id), nil
		}
	}
	d.logger.Warn("selector chose unknown sense", "target", target, "sense", id)
	return wsd.Undefined, nil
}
