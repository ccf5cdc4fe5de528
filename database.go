// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package semsimilar

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/poiesic/semsimilar/ai"
	"github.com/poiesic/semsimilar/ai/openai"
	"github.com/poiesic/semsimilar/core"
	"github.com/poiesic/semsimilar/corpus"
	"github.com/poiesic/semsimilar/document"
	"github.com/poiesic/semsimilar/ingestion"
	"github.com/poiesic/semsimilar/regen"
	"github.com/poiesic/semsimilar/search"
	"github.com/poiesic/semsimilar/similarity"
	"github.com/poiesic/semsimilar/storage"
	"github.com/poiesic/semsimilar/storage/badger"
	"github.com/poiesic/semsimilar/wsd"
)

// Database ties together the stored documents, the sense inventory and the
// similarity search built on top of them.
type Database struct {
	backend   *badger.Backend
	docRepo   storage.DocumentRepository
	senseRepo storage.SenseRepository
	provider  ai.AIProvider
	docConfig document.Config
	corpusOpt []corpus.Option
	logger    *slog.Logger

	mu        sync.Mutex
	inventory *wsd.MemoryInventory
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig  *ai.Config
	provider  ai.AIProvider
	inMemory  bool
	docConfig document.Config
	corpusOpt []corpus.Option
	logger    *slog.Logger
}

// WithAIConfig disambiguates with an OpenAI-compatible model instead of
// gloss overlap.
func WithAIConfig(cfg *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = cfg
	}
}

// WithAIProvider disambiguates with provider. It takes precedence over
// WithAIConfig; the Database closes it on Close.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemory keeps everything in memory; the path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithDocumentConfig sets the token pipeline settings. Its Disambiguator is
// replaced by the one the Database builds over its sense inventory.
func WithDocumentConfig(cfg document.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.docConfig = cfg
	}
}

// WithCorpusOptions sets options for the corpus model built by LoadCorpus.
func WithCorpusOptions(opts ...corpus.Option) DatabaseOption {
	return func(o *databaseOptions) {
		o.corpusOpt = append(o.corpusOpt, opts...)
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// NewDatabase opens or creates a database at filePath.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		docConfig: document.DefaultConfig(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory, badger.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	docRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	senseRepo, err := badger.NewSenseRepository(backend)
	if err != nil {
		docRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil && options.aiConfig != nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			senseRepo.Close()
			docRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:   backend,
		docRepo:   docRepo,
		senseRepo: senseRepo,
		provider:  provider,
		docConfig: options.docConfig,
		corpusOpt: options.corpusOpt,
		logger:    options.logger,
	}, nil
}

// Close releases the AI provider, the repositories and the backend.
func (db *Database) Close() error {
	var errs []error
	if db.provider != nil {
		if err := db.provider.Close(); err != nil {
			db.logger.Error("error closing AI provider", "err", err)
		}
	}
	if err := db.senseRepo.Close(); err != nil {
		db.logger.Error("error closing sense repository", "err", err)
		errs = append(errs, err)
	}
	if err := db.docRepo.Close(); err != nil {
		db.logger.Error("error closing document repository", "err", err)
		errs = append(errs, err)
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (db *Database) DocumentRepository() storage.DocumentRepository {
	return db.docRepo
}

func (db *Database) SenseRepository() storage.SenseRepository {
	return db.senseRepo
}

// AddSenses stores sense entries in the inventory.
func (db *Database) AddSenses(ctx context.Context, entries ...*core.SenseEntry) error {
	if err := db.senseRepo.AddSenses(ctx, entries...); err != nil {
		return err
	}
	db.mu.Lock()
	db.inventory = nil
	db.mu.Unlock()
	return nil
}

// Inventory returns the stored sense inventory, loading it on first use.
func (db *Database) Inventory(ctx context.Context) (*wsd.MemoryInventory, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.inventory != nil {
		return db.inventory, nil
	}

	stored, err := db.senseRepo.GetAllSenses(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]core.SenseEntry, len(stored))
	for i, entry := range stored {
		entries[i] = *entry
	}
	db.inventory = wsd.NewMemoryInventory(entries...)
	db.logger.Debug("loaded sense inventory", "senses", db.inventory.Len())
	return db.inventory, nil
}

// DocumentConfig returns the token pipeline settings with a disambiguator
// over the current inventory.
func (db *Database) DocumentConfig(ctx context.Context) (document.Config, error) {
	inventory, err := db.Inventory(ctx)
	if err != nil {
		return document.Config{}, err
	}
	cfg := db.docConfig
	if db.provider != nil {
		cfg.Disambiguator = ai.NewDisambiguator(inventory, db.provider.SenseSelector(), db.logger)
	} else {
		cfg.Disambiguator = wsd.NewLesk(inventory)
	}
	return cfg, nil
}

// NewIngestionPipeline creates a pipeline that stores documents built with
// DocumentConfig.
func (db *Database) NewIngestionPipeline(ctx context.Context, opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	cfg, err := db.DocumentConfig(ctx)
	if err != nil {
		return nil, err
	}
	opts = append([]ingestion.Option{ingestion.WithConfig(cfg), ingestion.WithLogger(db.logger)}, opts...)
	return ingestion.NewPipeline(db.docRepo, opts...)
}

// NewRegenerator creates a regenerator that rebuilds stored documents with
// DocumentConfig.
func (db *Database) NewRegenerator(ctx context.Context, config *regen.Config, progress io.Writer) (*regen.Regenerator, error) {
	cfg, err := db.DocumentConfig(ctx)
	if err != nil {
		return nil, err
	}
	return regen.NewRegenerator(db.docRepo, cfg, config, progress, regen.WithLogger(db.logger))
}

// Corpus is a snapshot of the stored documents and the model built from them.
// Model indices refer to Documents.
type Corpus struct {
	Documents []*document.Document
	Model     *corpus.Model
}

// LoadCorpus reads every stored document in corpus order and builds the
// corpus model.
func (db *Database) LoadCorpus(ctx context.Context) (*Corpus, error) {
	cfg, err := db.DocumentConfig(ctx)
	if err != nil {
		return nil, err
	}
	records, err := db.docRepo.GetAllDocuments(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]*document.Document, len(records))
	texts := make([]string, len(records))
	for i, record := range records {
		if docs[i], err = document.FromRecord(cfg, record); err != nil {
			return nil, err
		}
		texts[i] = docs[i].CorpusText()
	}

	opts := append([]corpus.Option{corpus.WithLogger(db.logger)}, db.corpusOpt...)
	model, err := corpus.New(texts, opts...)
	if err != nil {
		return nil, err
	}
	return &Corpus{Documents: docs, Model: model}, nil
}

// NewSearcher creates a searcher that scores senses by path similarity in
// the current inventory.
func (db *Database) NewSearcher(ctx context.Context, opts ...search.Option) (*search.Searcher, error) {
	inventory, err := db.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	scorer, err := similarity.NewScorer(inventory, similarity.WithLogger(db.logger))
	if err != nil {
		return nil, err
	}
	opts = append([]search.Option{search.WithLogger(db.logger)}, opts...)
	return search.NewSearcher(scorer, opts...)
}

// NewQuery builds a query document from post with DocumentConfig.
func (db *Database) NewQuery(ctx context.Context, post core.Post) (*document.Document, error) {
	cfg, err := db.DocumentConfig(ctx)
	if err != nil {
		return nil, err
	}
	query, err := document.New(ctx, cfg, post)
	if err != nil {
		return nil, err
	}
	query.RemoveSpecialWords(ingestion.MarkupWords)
	return query, nil
}

// FindSimilar returns up to count stored documents most similar to post.
// The corpus is loaded for every call; use LoadCorpus and NewSearcher to
// run many queries against one snapshot.
func (db *Database) FindSimilar(ctx context.Context, post core.Post, count int) ([]similarity.Result, error) {
	c, err := db.LoadCorpus(ctx)
	if err != nil {
		return nil, err
	}
	searcher, err := db.NewSearcher(ctx)
	if err != nil {
		return nil, err
	}
	query, err := db.NewQuery(ctx, post)
	if err != nil {
		return nil, err
	}
	return searcher.FindSimilar(ctx, c.Documents, query, c.Model, count)
}
