package regen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/semsimilar/core"
	"github.com/poiesic/semsimilar/document"
	"github.com/poiesic/semsimilar/storage"
)

// Config holds configuration for a regeneration run.
type Config struct {
	// BatchSize is the number of documents to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of documents)
	ReportInterval int

	// MaxRetries is the maximum number of attempts per document
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Result summarizes a regeneration run.
type Result struct {
	Total   int
	Failed  int
	Elapsed time.Duration
}

// Regenerator rebuilds every stored document with a document configuration.
type Regenerator struct {
	repo      storage.DocumentRepository
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *DocumentIterator
	logger    *slog.Logger
}

// Option configures a Regenerator.
type Option func(*Regenerator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Regenerator) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRegenerator creates a new regenerator.
// progress: where to write progress output (typically os.Stderr)
func NewRegenerator(repo storage.DocumentRepository, docConfig document.Config, config *Config, progress io.Writer, opts ...Option) (*Regenerator, error) {
	if repo == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	r := &Regenerator{
		repo:     repo,
		config:   config,
		progress: progress,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	r.processor = NewBatchProcessor(repo, docConfig, config.MaxRetries, config.RetryDelay, r.logger)
	r.iterator = NewDocumentIterator(repo, config.BatchSize)
	return r, nil
}

// Run regenerates all stored documents. Progress is reported to the
// configured writer.
func (r *Regenerator) Run(ctx context.Context) (Result, error) {
	total, err := r.repo.CountDocuments(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to count documents: %w", err)
	}
	if total == 0 {
		fmt.Fprintf(r.progress, "No documents found in database (0 documents)\n")
		return Result{}, nil
	}

	fmt.Fprintf(r.progress, "Starting regeneration of %d documents (batch size: %d)\n",
		total, r.iterator.batchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	err = r.iterator.ForEach(ctx, func(records []*core.DocumentRecord) error {
		failed, err := r.processor.Process(ctx, records)
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}
		tracker.Add(len(records), failed)
		return nil
	})
	if err != nil {
		return Result{Total: tracker.Done(), Failed: tracker.Failed(), Elapsed: tracker.Elapsed()}, err
	}

	tracker.Finish()
	result := Result{Total: tracker.Done(), Failed: tracker.Failed(), Elapsed: tracker.Elapsed()}
	r.logger.Info("regeneration complete", "documents", result.Total, "failed", result.Failed, "elapsed", result.Elapsed)

	fmt.Fprintf(r.progress, "Regeneration complete. Processed %d documents in %v (%.1f documents/sec)\n",
		result.Total, result.Elapsed.Round(time.Second), float64(result.Total)/result.Elapsed.Seconds())
	return result, nil
}
