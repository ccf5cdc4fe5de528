package corpus

import (
	"cmp"
	"slices"
	"strings"
)

// Hit is a scored document index.
type Hit struct {
	Index int
	Score float64
}

// Group collects every score a document received across searches.
type Group struct {
	Index  int
	Scores []float64
}

// Vectorize projects tokens onto the vocabulary using the corpus idf. The
// result has unit length, or is all zeros when no token is in the
// vocabulary.
func (m *Model) Vectorize(tokens []string) []float64 {
	return m.weigh(analyze(strings.Join(tokens, " ")))
}

// KeywordSearch returns up to MaxResults documents containing any query term
// whose cosine score against the query exceeds the threshold, best first.
// Equal scores keep document order.
func (m *Model) KeywordSearch(tokens []string) []Hit {
	return m.score(m.Vectorize(tokens), m.containing(m.queryTerms(tokens)), m.threshold)
}

// RelatedVocabulary returns the ascending, distinct indices of every term
// whose relatedness from some query term exceeds the semantic threshold.
func (m *Model) RelatedVocabulary(tokens []string) []int {
	n := len(m.vocabulary)
	related := make([]bool, n)
	for _, id := range m.queryTerms(tokens) {
		for j, r := range m.relatedness.Row(id) {
			if r > m.semanticThreshold {
				related[j] = true
			}
		}
	}
	var ids []int
	for j, ok := range related {
		if ok {
			ids = append(ids, j)
		}
	}
	return ids
}

// CoOccurrenceSearch expands the query with RelatedVocabulary and returns up
// to MaxResults documents containing any expanded term with a positive
// cosine score, best first.
func (m *Model) CoOccurrenceSearch(tokens []string) []Hit {
	return m.score(m.Vectorize(tokens), m.containing(m.RelatedVocabulary(tokens)), 0)
}

// SemanticSearch merges KeywordSearch and CoOccurrenceSearch. A document
// found by both keeps both scores, keyword score first. Groups are ordered by
// their first score, best first, and are not truncated.
func (m *Model) SemanticSearch(tokens []string) []Group {
	var groups []Group
	pos := make(map[int]int)
	add := func(hits []Hit) {
		for _, h := range hits {
			if i, ok := pos[h.Index]; ok {
				groups[i].Scores = append(groups[i].Scores, h.Score)
				continue
			}
			pos[h.Index] = len(groups)
			groups = append(groups, Group{Index: h.Index, Scores: []float64{h.Score}})
		}
	}
	add(m.KeywordSearch(tokens))
	add(m.CoOccurrenceSearch(tokens))

	slices.SortStableFunc(groups, func(a, b Group) int {
		return cmp.Compare(b.Scores[0], a.Scores[0])
	})
	return groups
}

// queryTerms returns the vocabulary indices of the terms in tokens.
// Out-of-vocabulary terms are skipped.
func (m *Model) queryTerms(tokens []string) []int {
	var ids []int
	for _, term := range analyze(strings.Join(tokens, " ")) {
		if id, ok := m.termIDs[term]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// containing returns the ascending indices of documents with a non-zero
// weight for any of terms.
func (m *Model) containing(terms []int) []int {
	_, n := m.weights.Dims()
	found := make([]bool, n)
	for _, t := range terms {
		for d, w := range m.weights.Row(t) {
			if w != 0 {
				found[d] = true
			}
		}
	}
	var docs []int
	for d, ok := range found {
		if ok {
			docs = append(docs, d)
		}
	}
	return docs
}

// score keeps documents whose cosine against query exceeds cutoff and returns
// the best MaxResults of them.
func (m *Model) score(query []float64, docs []int, cutoff float64) []Hit {
	hits := make([]Hit, 0, len(docs))
	for _, d := range docs {
		if s := Cosine(query, m.weights.Col(d)); s > cutoff {
			hits = append(hits, Hit{Index: d, Score: s})
		}
	}
	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(hits) > MaxResults {
		hits = hits[:MaxResults]
	}
	return hits
}
