package badger

import (
	"context"
	"testing"

	"github.com/poiesic/semsimilar/core"
	"github.com/poiesic/semsimilar/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSenseRepo(t *testing.T) storage.SenseRepository {
	t.Helper()
	docs, senses, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		senses.Close()
		docs.Close()
		backend.Close()
	})
	return senses
}

func bankSenses() []*core.SenseEntry {
	return []*core.SenseEntry{
		{Id: "bank.n.01", Lemma: "bank", Gloss: "sloping land beside a body of water", Hypernyms: []string{"slope.n.01"}},
		{Id: "bank.n.02", Lemma: "bank", Gloss: "a financial institution that accepts deposits", Examples: []string{"he cashed a check at the bank"}},
		{Id: "river.n.01", Lemma: "River", Gloss: "a large natural stream of water"},
	}
}

func TestSenseRepository_AddAndGet(t *testing.T) {
	repo := newTestSenseRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.AddSenses(ctx, bankSenses()...))

	got, err := repo.GetSense(ctx, "bank.n.02")
	require.NoError(t, err)
	assert.Equal(t, "bank", got.Lemma)
	assert.Equal(t, []string{"he cashed a check at the bank"}, got.Examples)

	_, err = repo.GetSense(ctx, "nope.n.01")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	count, err := repo.CountSenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSenseRepository_Invalid(t *testing.T) {
	repo := newTestSenseRepo(t)
	ctx := context.Background()

	err := repo.AddSenses(ctx, &core.SenseEntry{Id: "x.n.01"})
	assert.ErrorIs(t, err, core.ErrInvalidSenseEntry)
}

func TestSenseRepository_ByLemma(t *testing.T) {
	repo := newTestSenseRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.AddSenses(ctx, bankSenses()...))

	got, err := repo.GetSensesByLemma(ctx, "bank")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bank.n.01", got[0].Id)
	assert.Equal(t, "bank.n.02", got[1].Id)

	got, err = repo.GetSensesByLemma(ctx, "river")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "river.n.01", got[0].Id)

	got, err = repo.GetSensesByLemma(ctx, "ban")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSenseRepository_Redefine(t *testing.T) {
	repo := newTestSenseRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.AddSenses(ctx, bankSenses()...))

	moved := &core.SenseEntry{Id: "bank.n.01", Lemma: "shore", Gloss: "land along the edge of water"}
	require.NoError(t, repo.AddSenses(ctx, moved))

	count, err := repo.CountSenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	got, err := repo.GetSensesByLemma(ctx, "bank")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bank.n.02", got[0].Id)

	got, err = repo.GetSensesByLemma(ctx, "shore")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "land along the edge of water", got[0].Gloss)
}

func TestSenseRepository_GetAllInOrder(t *testing.T) {
	repo := newTestSenseRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.AddSenses(ctx, bankSenses()...))

	all, err := repo.GetAllSenses(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "bank.n.01", all[0].Id)
	assert.Equal(t, "bank.n.02", all[1].Id)
	assert.Equal(t, "river.n.01", all[2].Id)
}
