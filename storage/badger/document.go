package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/semsimilar/core"
	"github.com/poiesic/semsimilar/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
// Documents are keyed by Seq so a prefix scan yields corpus order.
type DocumentRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	seq, err := backend.GetSequence(documentSeqName)
	if err != nil {
		return nil, err
	}

	return &DocumentRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the corpus sequence.
func (r *DocumentRepository) Close() error {
	return r.seq.Release()
}

// WithTransaction delegates to the backend.
func (r *DocumentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddDocuments stores documents, assigning Seq to new keys.
func (r *DocumentRepository) AddDocuments(ctx context.Context, records ...*core.DocumentRecord) ([]*core.DocumentRecord, error) {
	for _, record := range records {
		if err := core.ValidateDocumentRecord(record); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC().Truncate(time.Microsecond)
		for _, record := range records {
			record.Id = core.IDFromContent(record.Key)

			seq, found, err := readSeq(tx, makeDocumentIDKey(record.Id))
			if err != nil {
				return err
			}
			if found {
				old, err := readDocument(tx, makeDocumentKey(seq))
				if err != nil {
					return err
				}
				if old != nil {
					record.InsertedAt = old.InsertedAt
				}
			} else {
				if seq, err = nextSeq(r.seq); err != nil {
					return err
				}
				record.InsertedAt = now
				if err := tx.Set(makeDocumentIDKey(record.Id), storage.MarshalSeq(seq)); err != nil {
					return err
				}
			}
			record.Seq = seq
			record.UpdatedAt = now

			if err := tx.Set(makeDocumentKey(seq), storage.MarshalDocumentRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateDocuments replaces existing documents.
func (r *DocumentRepository) UpdateDocuments(ctx context.Context, records ...*core.DocumentRecord) ([]*core.DocumentRecord, error) {
	for _, record := range records {
		if err := core.ValidateDocumentRecord(record); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			id := core.IDFromContent(record.Key)
			seq, found, err := readSeq(tx, makeDocumentIDKey(id))
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%w: document %q", storage.ErrNotFound, record.Key)
			}
			old, err := readDocument(tx, makeDocumentKey(seq))
			if err != nil {
				return err
			}
			if old == nil {
				return fmt.Errorf("%w: document %q", storage.ErrNotFound, record.Key)
			}

			record.Id = id
			record.Seq = seq
			record.InsertedAt = old.InsertedAt
			record.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

			if err := tx.Set(makeDocumentKey(seq), storage.MarshalDocumentRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteDocuments removes documents by their IDs.
func (r *DocumentRepository) DeleteDocuments(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			idKey := makeDocumentIDKey(id)
			seq, found, err := readSeq(tx, idKey)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%w: document %d", storage.ErrNotFound, id)
			}
			if err := tx.Delete(makeDocumentKey(seq)); err != nil {
				return err
			}
			if err := tx.Delete(idKey); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetDocument retrieves a single document by ID.
func (r *DocumentRepository) GetDocument(ctx context.Context, id core.ID) (*core.DocumentRecord, error) {
	var result *core.DocumentRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readDocumentByID(tx, id)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetDocuments retrieves multiple documents by their IDs.
func (r *DocumentRepository) GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.DocumentRecord, error) {
	var result []*core.DocumentRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			record, err := readDocumentByID(tx, id)
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetDocumentsAfter returns up to limit documents with Seq > after.
func (r *DocumentRepository) GetDocumentsAfter(ctx context.Context, after uint64, limit int) ([]*core.DocumentRecord, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit %d", storage.ErrInvalidQuery, limit)
	}
	return r.scan(ctx, after+1, limit)
}

// GetAllDocuments returns every document in corpus order.
func (r *DocumentRepository) GetAllDocuments(ctx context.Context) ([]*core.DocumentRecord, error) {
	return r.scan(ctx, 0, -1)
}

// CountDocuments returns the number of stored documents.
func (r *DocumentRepository) CountDocuments(ctx context.Context) (int, error) {
	return r.backend.countPrefix([]byte(documentRecordPrefix))
}

// scan reads documents from Seq from onwards. A negative limit reads all.
func (r *DocumentRepository) scan(ctx context.Context, from uint64, limit int) ([]*core.DocumentRecord, error) {
	var results []*core.DocumentRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(makeDocumentKey(from)); iter.Valid(); iter.Next() {
			if limit >= 0 && len(results) >= limit {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			var record *core.DocumentRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = unmarshalDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, record)
		}
		return nil
	}, false)
	return results, err
}

// Helper functions

// readSeq reads a seq stored under key.
func readSeq(tx *badger.Txn, key []byte) (seq uint64, found bool, err error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		seq, unmarshalErr = storage.UnmarshalSeq(val)
		return unmarshalErr
	})
	return seq, err == nil, err
}

func readDocumentByID(tx *badger.Txn, id core.ID) (*core.DocumentRecord, error) {
	seq, found, err := readSeq(tx, makeDocumentIDKey(id))
	if err != nil || !found {
		return nil, err
	}
	return readDocument(tx, makeDocumentKey(seq))
}

// readDocument reads a document from the transaction.
// Returns nil, nil if the key does not exist.
func readDocument(tx *badger.Txn, key []byte) (*core.DocumentRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record *core.DocumentRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = unmarshalDocument(val)
		return unmarshalErr
	})
	return record, err
}

func unmarshalDocument(val []byte) (*core.DocumentRecord, error) {
	record, err := storage.UnmarshalDocumentRecord(val)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return record, nil
}
