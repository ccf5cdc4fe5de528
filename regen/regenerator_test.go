package regen

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/semsimilar/document"
	"github.com/poiesic/semsimilar/wsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		BatchSize:      3,
		ReportInterval: 3,
		MaxRetries:     3,
		RetryDelay:     time.Millisecond,
	}
}

func TestRegenerator_Run(t *testing.T) {
	repo := setupTestDB(t)
	seedDocuments(t, repo, 7)
	ctx := context.Background()

	var buf bytes.Buffer
	r, err := NewRegenerator(repo, document.Config{Disambiguator: suffixSenses}, testConfig(), &buf)
	require.NoError(t, err)

	result, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, result.Total)
	assert.Zero(t, result.Failed)

	all, err := repo.GetAllDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 7)
	for _, record := range all {
		require.Len(t, record.Senses, len(record.SenseTokens))
		for i, token := range record.SenseTokens {
			assert.Equal(t, token+".n.01", record.Senses[i])
		}
	}
	assert.Contains(t, buf.String(), "7/7")
	assert.Contains(t, buf.String(), "Regeneration complete")
}

func TestRegenerator_AppliesNewConfig(t *testing.T) {
	repo := setupTestDB(t)
	seedDocuments(t, repo, 2)
	ctx := context.Background()

	r, err := NewRegenerator(repo, document.Config{Stopwords: customStopwords{"java": true}}, testConfig(), nil)
	require.NoError(t, err)

	_, err = r.Run(ctx)
	require.NoError(t, err)

	all, err := repo.GetAllDocuments(ctx)
	require.NoError(t, err)
	for _, record := range all {
		assert.NotContains(t, record.Tokens, "java")
		assert.Contains(t, record.Tokens, "install")
	}
}

func TestRegenerator_EmptyDatabase(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRegenerator(setupTestDB(t), document.Config{}, nil, &buf)
	require.NoError(t, err)

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Total)
	assert.Contains(t, buf.String(), "0 documents")
}

func TestRegenerator_RetriesTransientFailures(t *testing.T) {
	repo := setupTestDB(t)
	seedDocuments(t, repo, 3)

	var calls atomic.Int32
	flaky := wsd.DisambiguatorFunc(func(_ context.Context, _ []string, target string) (wsd.Sense, error) {
		if calls.Add(1) == 1 {
			return wsd.Undefined, errors.New("temporary")
		}
		return wsd.Sense(target + ".n.01"), nil
	})

	r, err := NewRegenerator(repo, document.Config{Disambiguator: flaky}, testConfig(), nil)
	require.NoError(t, err)

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Failed)
}

func TestRegenerator_CountsPermanentFailures(t *testing.T) {
	repo := setupTestDB(t)
	seedDocuments(t, repo, 4)
	ctx := context.Background()

	before, err := repo.GetAllDocuments(ctx)
	require.NoError(t, err)

	broken := wsd.DisambiguatorFunc(func(_ context.Context, _ []string, target string) (wsd.Sense, error) {
		if target == "release2" {
			return wsd.Undefined, errors.New("always fails")
		}
		return wsd.Sense(target + ".n.01"), nil
	})

	r, err := NewRegenerator(repo, document.Config{Disambiguator: broken}, testConfig(), nil)
	require.NoError(t, err)

	result, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 1, result.Failed)

	after, err := repo.GetAllDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, before[2].Senses, after[2].Senses, "failed document keeps its stored senses")
	assert.Equal(t, "install.n.01", after[0].Senses[0])
}

func TestRegenerator_ContextCancellation(t *testing.T) {
	repo := setupTestDB(t)
	seedDocuments(t, repo, 9)
	ctx, cancel := context.WithCancel(context.Background())

	cancelling := wsd.DisambiguatorFunc(func(_ context.Context, _ []string, target string) (wsd.Sense, error) {
		cancel()
		return wsd.Undefined, nil
	})

	r, err := NewRegenerator(repo, document.Config{Disambiguator: cancelling}, testConfig(), nil)
	require.NoError(t, err)

	_, err = r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRegenerator_RequiresRepository(t *testing.T) {
	_, err := NewRegenerator(nil, document.Config{}, nil, nil)
	assert.ErrorIs(t, err, ErrDocumentRepositoryRequired)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 100, cfg.ReportInterval)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.RetryDelay)
}

type customStopwords map[string]bool

func (s customStopwords) Remove(tokens []string) []string {
	kept := tokens[:0:0]
	for _, token := range tokens {
		if !s[token] {
			kept = append(kept, token)
		}
	}
	return kept
}
