package wsd

import "context"

// Sense identifies one resolved word meaning.
type Sense string

// Undefined is the Sense of a token that could not be disambiguated.
const Undefined Sense = ""

// Resolved reports whether s names an actual sense.
func (s Sense) Resolved() bool {
	return s != Undefined
}

// Disambiguator chooses the sense of target given its context window.
// It returns Undefined, nil when no sense fits; errors are reserved for
// failures of the underlying service.
type Disambiguator interface {
	Disambiguate(ctx context.Context, window []string, target string) (Sense, error)
}

// PathSimilarity scores two senses by their distance in a sense hierarchy.
// The second return value is false when the senses cannot be compared.
type PathSimilarity interface {
	PathSimilarity(a, b Sense) (float64, bool)
}

// Senses converts stored sense ids into Senses.
func Senses(ids []string) []Sense {
	senses := make([]Sense, len(ids))
	for i, id := range ids {
		senses[i] = Sense(id)
	}
	return senses
}

// IDs converts Senses into their stored form.
func IDs(senses []Sense) []string {
	ids := make([]string, len(senses))
	for i, s := range senses {
		ids[i] = string(s)
	}
	return ids
}

// DisambiguatorFunc adapts a function to the Disambiguator interface.
type DisambiguatorFunc func(ctx context.Context, window []string, target string) (Sense, error)

// Disambiguate calls f.
func (f DisambiguatorFunc) Disambiguate(ctx context.Context, window []string, target string) (Sense, error) {
	return f(ctx, window, target)
}
