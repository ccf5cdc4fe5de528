package search

import (
	"github.com/poiesic/semsimilar/corpus"
	"github.com/poiesic/semsimilar/document"
	"github.com/poiesic/semsimilar/similarity"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query *document.Document)
	AfterSemanticSearch(groups []corpus.Group)
	SkippedIndex(index int)
	AfterShortlist(shortlist []*document.Document)
	Finish(results []similarity.Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *document.Document)            {}
func (n *noopMonitor) AfterSemanticSearch(_ []corpus.Group)  {}
func (n *noopMonitor) SkippedIndex(_ int)                    {}
func (n *noopMonitor) AfterShortlist(_ []*document.Document) {}
func (n *noopMonitor) Finish(_ []similarity.Result)          {}
