package storage

import (
	"context"

	"github.com/poiesic/semsimilar/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DocumentRepository stores documents in corpus order.
//
// A document's ID is the content ID of its Key and its Seq is its corpus
// position. Seq values only grow, so deleting documents leaves gaps but
// never reorders the corpus.
type DocumentRepository interface {
	Repository

	// AddDocuments validates and stores documents.
	// A document whose key is new gets the next Seq and InsertedAt.
	// A document whose key is already stored replaces the old record but
	// keeps its Seq and InsertedAt.
	// Returns the records with IDs, Seq and timestamps populated.
	AddDocuments(ctx context.Context, records ...*core.DocumentRecord) ([]*core.DocumentRecord, error)

	// UpdateDocuments replaces existing documents.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any document doesn't exist.
	UpdateDocuments(ctx context.Context, records ...*core.DocumentRecord) ([]*core.DocumentRecord, error)

	// DeleteDocuments removes documents by their IDs.
	// Returns ErrNotFound if any document doesn't exist.
	DeleteDocuments(ctx context.Context, ids ...core.ID) error

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.DocumentRecord, error)

	// GetDocuments retrieves multiple documents by their IDs.
	// Returns only the documents that exist (no error for missing documents).
	GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.DocumentRecord, error)

	// GetDocumentsAfter returns up to limit documents with Seq > after,
	// in corpus order.
	GetDocumentsAfter(ctx context.Context, after uint64, limit int) ([]*core.DocumentRecord, error)

	// GetAllDocuments returns every document in corpus order.
	GetAllDocuments(ctx context.Context) ([]*core.DocumentRecord, error)

	// CountDocuments returns the number of stored documents.
	CountDocuments(ctx context.Context) (int, error)
}

// SenseRepository stores the sense inventory.
// Senses keep the order in which they were first added.
type SenseRepository interface {
	Repository

	// AddSenses validates and stores sense entries.
	// An entry whose id is already stored replaces the old entry in place.
	AddSenses(ctx context.Context, entries ...*core.SenseEntry) error

	// GetSense retrieves a single sense by id.
	// Returns ErrNotFound if the sense doesn't exist.
	GetSense(ctx context.Context, id string) (*core.SenseEntry, error)

	// GetSensesByLemma returns the senses of lemma in inventory order.
	GetSensesByLemma(ctx context.Context, lemma string) ([]*core.SenseEntry, error)

	// GetAllSenses returns every sense in inventory order.
	GetAllSenses(ctx context.Context) ([]*core.SenseEntry, error)

	// CountSenses returns the number of stored senses.
	CountSenses(ctx context.Context) (int, error)
}
