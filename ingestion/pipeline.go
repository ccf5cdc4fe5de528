package ingestion

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/poiesic/semsimilar/core"
	"github.com/poiesic/semsimilar/document"
	"github.com/poiesic/semsimilar/storage"
)

// Pipeline builds documents from posts and stores them.
type Pipeline struct {
	documents  storage.DocumentRepository
	cfg        document.Config
	processors int
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithProcessors sets the number of workers used to build documents.
// Default is runtime.NumCPU() / 2, with a minimum of 1. Values outside
// 1..runtime.NumCPU() are clamped.
func WithProcessors(n int) Option {
	return func(p *Pipeline) error {
		p.processors = max(1, min(n, runtime.NumCPU()))
		return nil
	}
}

// WithConfig sets the document configuration.
// Default is document.DefaultConfig().
func WithConfig(cfg document.Config) Option {
	return func(p *Pipeline) error {
		p.cfg = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(documents storage.DocumentRepository, opts ...Option) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}

	p := &Pipeline{
		documents:  documents,
		cfg:        document.DefaultConfig(),
		processors: max(1, runtime.NumCPU()/2),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Ingest builds documents for posts and stores their records. Posts whose
// key is already stored replace the earlier copy and keep its corpus
// position. The stored records are returned in input order.
func (p *Pipeline) Ingest(ctx context.Context, posts []core.Post) ([]*core.DocumentRecord, error) {
	if len(posts) == 0 {
		return nil, nil
	}

	workers := min(p.processors, len(posts))
	p.logger.Info("processing posts", "posts", len(posts), "workers", workers)

	docs, _, err := ParallelProcess(ctx, posts, workers, p.cfg)
	if err != nil {
		p.logger.Error("error processing posts", "err", err)
		return nil, err
	}

	records := make([]*core.DocumentRecord, len(docs))
	for i, doc := range docs {
		records[i] = doc.ToRecord()
	}

	added, err := p.documents.AddDocuments(ctx, records...)
	if err != nil {
		p.logger.Error("error storing documents", "err", err)
		return nil, err
	}
	p.logger.Debug("stored documents", "documents", len(added))
	return added, nil
}
