package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/semsimilar/corpus"
	"github.com/poiesic/semsimilar/document"
	"github.com/poiesic/semsimilar/similarity"
)

// Searcher combines corpus search and pairwise sense scoring.
type Searcher struct {
	scorer *similarity.Scorer
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(scorer *similarity.Scorer, opts ...Option) (*Searcher, error) {
	if scorer == nil {
		return nil, ErrScorerRequired
	}

	s := &Searcher{
		scorer: scorer,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindSimilar returns up to count documents of corpusDocs most similar to
// query, best first. corpusDocs must be in the order model was built from.
func (s *Searcher) FindSimilar(ctx context.Context, corpusDocs []*document.Document, query *document.Document, model *corpus.Model, count int) ([]similarity.Result, error) {
	return s.FindSimilarWithMonitor(ctx, corpusDocs, query, model, count, nil)
}

// FindSimilarWithMonitor is FindSimilar with monitoring.
// The monitor receives callbacks at each stage of the search process.
// The only error it returns is the context's.
func (s *Searcher) FindSimilarWithMonitor(ctx context.Context, corpusDocs []*document.Document, query *document.Document, model *corpus.Model, count int, monitor SearchMonitor) ([]similarity.Result, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if count <= 0 {
		count = 1
	}
	if query == nil || model == nil {
		return []similarity.Result{}, nil
	}

	monitor.Start(query)

	if len(corpusDocs) == 0 || len(query.SenseTokens()) == 0 {
		s.logger.Debug("nothing to compare", "corpus", len(corpusDocs), "senseTokens", len(query.SenseTokens()))
		results := []similarity.Result{}
		monitor.Finish(results)
		return results, nil
	}

	// 1. Coarse stage over the whole corpus
	groups := model.SemanticSearch(query.StemmedTokens())
	monitor.AfterSemanticSearch(groups)
	if len(groups) == 0 {
		results := []similarity.Result{}
		monitor.Finish(results)
		return results, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 2. Map corpus indices back to documents
	shortlist := make([]*document.Document, 0, len(groups))
	for _, g := range groups {
		if g.Index < 0 || g.Index >= len(corpusDocs) {
			s.logger.Warn("corpus index out of range", "index", g.Index, "corpus", len(corpusDocs))
			monitor.SkippedIndex(g.Index)
			continue
		}
		shortlist = append(shortlist, corpusDocs[g.Index])
	}
	monitor.AfterShortlist(shortlist)

	// 3. Fine stage over the shortlist
	results := s.scorer.TopK(shortlist, query, count)
	if len(results) > count {
		results = results[:count]
	}
	monitor.Finish(results)

	return results, nil
}
