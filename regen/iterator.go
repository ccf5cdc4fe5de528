package regen

import (
	"context"

	"github.com/poiesic/semsimilar/core"
	"github.com/poiesic/semsimilar/storage"
)

const (
	// DefaultBatchSize is the default number of documents to fetch in each batch
	DefaultBatchSize = 100
)

// DocumentIterator walks stored documents in corpus order, one batch at a
// time. Only one batch is held in memory.
type DocumentIterator struct {
	repo      storage.DocumentRepository
	batchSize int
}

// NewDocumentIterator creates a new document iterator.
// A batchSize <= 0 uses DefaultBatchSize.
func NewDocumentIterator(repo storage.DocumentRepository, batchSize int) *DocumentIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &DocumentIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach calls fn for each batch. Iteration stops on the first error from
// fn. Context cancellation is checked between batches.
func (it *DocumentIterator) ForEach(ctx context.Context, fn func([]*core.DocumentRecord) error) error {
	var after uint64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch, err := it.repo.GetDocumentsAfter(ctx, after, it.batchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		last := batch[len(batch)-1].Seq
		if err := fn(batch); err != nil {
			return err
		}
		if len(batch) < it.batchSize {
			return nil
		}
		after = last
	}
}
