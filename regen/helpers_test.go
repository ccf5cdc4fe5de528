package regen

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/semsimilar/core"
	"github.com/poiesic/semsimilar/document"
	"github.com/poiesic/semsimilar/storage"
	"github.com/poiesic/semsimilar/storage/badger"
	"github.com/poiesic/semsimilar/wsd"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) storage.DocumentRepository {
	t.Helper()
	docs, senses, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		senses.Close()
		docs.Close()
		backend.Close()
	})
	return docs
}

// seedDocuments stores n documents built without a disambiguator.
func seedDocuments(t *testing.T, repo storage.DocumentRepository, n int) {
	t.Helper()
	ctx := context.Background()
	records := make([]*core.DocumentRecord, n)
	for i := range records {
		doc, err := document.New(ctx, document.Config{}, core.Post{
			Key:   fmt.Sprintf("q%02d", i),
			Title: fmt.Sprintf("install java release%d", i),
		})
		require.NoError(t, err)
		records[i] = doc.ToRecord()
	}
	_, err := repo.AddDocuments(ctx, records...)
	require.NoError(t, err)
}

// suffixSenses resolves every token to "<token>.n.01".
var suffixSenses = wsd.DisambiguatorFunc(func(_ context.Context, _ []string, target string) (wsd.Sense, error) {
	return wsd.Sense(target + ".n.01"), nil
})
