package regen

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/semsimilar/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentIterator_BatchSizes(t *testing.T) {
	repo := setupTestDB(t)
	seedDocuments(t, repo, 10)

	tests := []struct {
		batchSize int
		batches   []int
	}{
		{1, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
		{3, []int{3, 3, 3, 1}},
		{5, []int{5, 5}},
		{20, []int{10}},
		{0, []int{10}},
	}

	for _, tt := range tests {
		var sizes []int
		var keys []string
		err := NewDocumentIterator(repo, tt.batchSize).ForEach(context.Background(), func(batch []*core.DocumentRecord) error {
			sizes = append(sizes, len(batch))
			for _, record := range batch {
				keys = append(keys, record.Key)
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, tt.batches, sizes, "batchSize=%d", tt.batchSize)
		assert.Equal(t, "q00", keys[0])
		assert.Equal(t, "q09", keys[len(keys)-1])
	}
}

func TestDocumentIterator_EmptyDatabase(t *testing.T) {
	calls := 0
	err := NewDocumentIterator(setupTestDB(t), 10).ForEach(context.Background(), func([]*core.DocumentRecord) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestDocumentIterator_StopsOnError(t *testing.T) {
	repo := setupTestDB(t)
	seedDocuments(t, repo, 6)
	boom := errors.New("boom")

	calls := 0
	err := NewDocumentIterator(repo, 2).ForEach(context.Background(), func([]*core.DocumentRecord) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestDocumentIterator_ContextCancellation(t *testing.T) {
	repo := setupTestDB(t)
	seedDocuments(t, repo, 6)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := NewDocumentIterator(repo, 2).ForEach(ctx, func([]*core.DocumentRecord) error {
		calls++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
