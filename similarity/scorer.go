package similarity

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/poiesic/semsimilar/document"
	"github.com/poiesic/semsimilar/wsd"
)

// Result is a document with its pair score against a query.
type Result struct {
	Document *document.Document
	Score    float64
}

// Scorer compares documents by their senses, falling back to character
// overlap for sense tokens that could not be disambiguated.
type Scorer struct {
	paths  wsd.PathSimilarity
	logger *slog.Logger
}

// Option configures a Scorer.
type Option func(*Scorer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScorer creates a scorer that measures resolved senses with paths.
// A nil paths scores every resolved pair as 0.
func NewScorer(paths wsd.PathSimilarity, opts ...Option) (*Scorer, error) {
	s := &Scorer{
		paths:  paths,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// PairScore returns
//
//	(directed(a, b) + directed(b, a)) / (len(a.SenseTokens) + len(b.SenseTokens))
//
// and 0 when either document has no senses. The score is symmetric.
func (s *Scorer) PairScore(a, b *document.Document) float64 {
	if len(a.Senses()) == 0 || len(b.Senses()) == 0 {
		return 0
	}
	total := s.directed(a, b) + s.directed(b, a)
	return total / float64(len(a.SenseTokens())+len(b.SenseTokens()))
}

// directed sums, over every sense position of from, the best match in to.
// A resolved sense is matched against the resolved senses of to by path
// similarity; an undefined one is matched against the sense tokens of to by
// character overlap.
func (s *Scorer) directed(from, to *document.Document) float64 {
	var semantic, fallback float64
	tokens := from.SenseTokens()
	for i, sense := range from.Senses() {
		if sense.Resolved() {
			semantic += s.bestPath(sense, to.Senses())
			continue
		}
		var best float64
		for _, other := range to.SenseTokens() {
			best = max(best, charOverlap(tokens[i], other))
		}
		fallback += best
	}
	return semantic + fallback
}

func (s *Scorer) bestPath(sense wsd.Sense, candidates []wsd.Sense) float64 {
	if s.paths == nil {
		return 0
	}
	var best float64
	for _, other := range candidates {
		if !other.Resolved() {
			continue
		}
		if sim, ok := s.paths.PathSimilarity(sense, other); ok && sim > best {
			best = sim
		}
	}
	return best
}

// charOverlap is 1 - Jaccard distance between the character sets of a and b.
func charOverlap(a, b string) float64 {
	setA := make(map[rune]bool)
	for _, r := range a {
		setA[r] = true
	}
	setB := make(map[rune]bool)
	for _, r := range b {
		setB[r] = true
	}
	union := len(setA)
	var inter int
	for r := range setB {
		if setA[r] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// TopK scores every document against query and keeps the best count of
// them, best first. Equal scores keep input order. A count below one is
// treated as one.
func (s *Scorer) TopK(docs []*document.Document, query *document.Document, count int) []Result {
	if count <= 0 {
		count = 1
	}

	type ranked struct {
		Result
		pos int
	}
	byScore := func(a, b ranked) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.pos, b.pos)
	}

	kept := make([]ranked, 0, min(count, len(docs)))
	for pos, doc := range docs {
		r := ranked{Result: Result{Document: doc, Score: s.PairScore(query, doc)}, pos: pos}
		switch {
		case len(kept) < count:
			kept = append(kept, r)
			if len(kept) == count {
				slices.SortFunc(kept, byScore)
			}
		case r.Score > kept[count-1].Score:
			kept[count-1] = r
			slices.SortFunc(kept, byScore)
		}
	}
	slices.SortFunc(kept, byScore)

	results := make([]Result, len(kept))
	for i, r := range kept {
		results[i] = r.Result
	}
	s.logger.Debug("ranked shortlist", "candidates", len(docs), "kept", len(results))
	return results
}
