package wsd

import (
	"context"
	"strings"
)

const glossPunctuation = ".,;:!?()[]\"'"

// Lesk is a simplified Lesk disambiguator. It picks the candidate sense whose
// gloss and usage examples share the most words with the context window. Ties keep inventory
// order, so the first listed sense wins when nothing overlaps.
type Lesk struct {
	inventory Inventory
}

var _ Disambiguator = (*Lesk)(nil)

// NewLesk creates a Lesk disambiguator over inventory.
func NewLesk(inventory Inventory) *Lesk {
	return &Lesk{inventory: inventory}
}

// Disambiguate never returns an error. A word with no candidate senses
// resolves to Undefined.
func (l *Lesk) Disambiguate(_ context.Context, window []string, target string) (Sense, error) {
	if l.inventory == nil {
		return Undefined, nil
	}
	candidates := l.inventory.Senses(target)
	if len(candidates) == 0 {
		return Undefined, nil
	}

	inWindow := make(map[string]bool, len(window))
	for _, w := range window {
		inWindow[w] = true
	}

	best := Sense(candidates[0].Id)
	bestOverlap := -1
	for _, candidate := range candidates {
		overlap := 0
		seen := make(map[string]bool)
		signature := candidate.Gloss + " " + strings.Join(candidate.Examples, " ")
		for _, w := range strings.Fields(strings.ToLower(signature)) {
			w = strings.Trim(w, glossPunctuation)
			if inWindow[w] && !seen[w] {
				seen[w] = true
				overlap++
			}
		}
		if overlap > bestOverlap {
			best = Sense(candidate.Id)
			bestOverlap = overlap
		}
	}
	return best, nil
}
