package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/semsimilar/core"
	"github.com/poiesic/semsimilar/storage"
)

// SenseRepository implements storage.SenseRepository for BadgerDB.
// Entries are keyed by insertion order; an id index and a lemma index point
// at that order.
type SenseRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.SenseRepository = (*SenseRepository)(nil)

// NewSenseRepository creates a new SenseRepository.
func NewSenseRepository(backend *Backend) (*SenseRepository, error) {
	seq, err := backend.GetSequence(senseSeqName)
	if err != nil {
		return nil, err
	}

	return &SenseRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the inventory sequence.
func (r *SenseRepository) Close() error {
	return r.seq.Release()
}

// WithTransaction delegates to the backend.
func (r *SenseRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddSenses stores sense entries. Lemmas are indexed in lowercase.
func (r *SenseRepository) AddSenses(ctx context.Context, entries ...*core.SenseEntry) error {
	for _, entry := range entries {
		if err := core.ValidateSenseEntry(entry); err != nil {
			return err
		}
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			idKey := makeSenseIDKey(entry.Id)
			seq, found, err := readSeq(tx, idKey)
			if err != nil {
				return err
			}

			if found {
				old, err := readSense(tx, makeSenseKey(seq))
				if err != nil {
					return err
				}
				if old != nil && !strings.EqualFold(old.Lemma, entry.Lemma) {
					if err := tx.Delete(makeSenseLemmaKey(strings.ToLower(old.Lemma), seq)); err != nil {
						return err
					}
				}
			} else {
				if seq, err = nextSeq(r.seq); err != nil {
					return err
				}
				if err := tx.Set(idKey, storage.MarshalSeq(seq)); err != nil {
					return err
				}
			}

			if err := tx.Set(makeSenseKey(seq), storage.MarshalSenseEntry(entry)); err != nil {
				return err
			}
			if err := tx.Set(makeSenseLemmaKey(strings.ToLower(entry.Lemma), seq), nil); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetSense retrieves a single sense by id.
func (r *SenseRepository) GetSense(ctx context.Context, id string) (*core.SenseEntry, error) {
	var result *core.SenseEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		seq, found, err := readSeq(tx, makeSenseIDKey(id))
		if err != nil {
			return err
		}
		if found {
			result, err = readSense(tx, makeSenseKey(seq))
			if err != nil {
				return err
			}
		}
		if result == nil {
			return fmt.Errorf("%w: sense %q", storage.ErrNotFound, id)
		}
		return nil
	}, false)
	return result, err
}

// GetSensesByLemma returns the senses of lemma in inventory order.
func (r *SenseRepository) GetSensesByLemma(ctx context.Context, lemma string) ([]*core.SenseEntry, error) {
	var results []*core.SenseEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makePartialSenseLemmaKey(strings.ToLower(lemma))
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			entry, err := readSense(tx, makeSenseKey(seqFromKey(iter.Item().Key())))
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)
	return results, err
}

// GetAllSenses returns every sense in inventory order.
func (r *SenseRepository) GetAllSenses(ctx context.Context) ([]*core.SenseEntry, error) {
	var results []*core.SenseEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(senseRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var entry *core.SenseEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = unmarshalSense(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, entry)
		}
		return nil
	}, false)
	return results, err
}

// CountSenses returns the number of stored senses.
func (r *SenseRepository) CountSenses(ctx context.Context) (int, error) {
	return r.backend.countPrefix([]byte(senseRecordPrefix))
}

// readSense reads a sense entry from the transaction.
// Returns nil, nil if the key does not exist.
func readSense(tx *badger.Txn, key []byte) (*core.SenseEntry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var entry *core.SenseEntry
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		entry, unmarshalErr = unmarshalSense(val)
		return unmarshalErr
	})
	return entry, err
}

func unmarshalSense(val []byte) (*core.SenseEntry, error) {
	entry, err := storage.UnmarshalSenseEntry(val)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return entry, nil
}
