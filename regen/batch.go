package regen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/semsimilar/core"
	"github.com/poiesic/semsimilar/document"
	"github.com/poiesic/semsimilar/ingestion"
	"github.com/poiesic/semsimilar/storage"
)

// BatchProcessor rebuilds the derived fields of a batch of records.
type BatchProcessor struct {
	repo           storage.DocumentRepository
	cfg            document.Config
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of attempts per document
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.DocumentRepository, cfg document.Config, maxRetries int, retryBaseDelay time.Duration, logger *slog.Logger) *BatchProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchProcessor{
		repo:           repo,
		cfg:            cfg,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
		logger:         logger,
	}
}

// Process regenerates every record of the batch and stores the results.
// A document that cannot be rebuilt keeps its stored form and is counted
// in failed; only cancellation and storage errors abort the batch.
func (bp *BatchProcessor) Process(ctx context.Context, records []*core.DocumentRecord) (failed int, err error) {
	if len(records) == 0 {
		return 0, nil
	}

	updated := make([]*core.DocumentRecord, 0, len(records))
	for _, record := range records {
		doc, err := document.FromRecord(bp.cfg, record)
		if err != nil {
			bp.logger.Warn("skipping invalid record", "key", record.Key, "err", err)
			failed++
			continue
		}

		err = RetryWithBackoff(ctx, doc.Regenerate, bp.maxRetries, bp.retryBaseDelay)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return failed, err
			}
			bp.logger.Warn("failed to regenerate document",
				"key", record.Key, "attempts", bp.maxRetries, "err", err)
			failed++
			continue
		}
		doc.RemoveSpecialWords(ingestion.MarkupWords)
		updated = append(updated, doc.ToRecord())
	}

	if len(updated) == 0 {
		return failed, nil
	}
	if _, err := bp.repo.UpdateDocuments(ctx, updated...); err != nil {
		return failed, fmt.Errorf("failed to update documents: %w", err)
	}
	return failed, nil
}
