package ingestion

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/poiesic/semsimilar/core"
	"github.com/poiesic/semsimilar/document"
	"github.com/poiesic/semsimilar/wsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPosts(n int) []core.Post {
	posts := make([]core.Post, n)
	for i := range posts {
		posts[i] = core.Post{
			Key:   fmt.Sprintf("q%d", i),
			Title: fmt.Sprintf("install java version%d", i),
		}
	}
	return posts
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		posts int
		n     int
		sizes []int
	}{
		{"even", 6, 3, []int{2, 2, 2}},
		{"remainder to last", 7, 3, []int{2, 2, 3}},
		{"single", 5, 1, []int{5}},
		{"fewer posts than batches", 2, 4, []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := split(testPosts(tt.posts), tt.n)
			var sizes []int
			offset := 0
			for _, b := range batches {
				assert.Equal(t, offset, b.offset)
				sizes = append(sizes, len(b.posts))
				offset += len(b.posts)
			}
			assert.Equal(t, tt.sizes, sizes)
			assert.Equal(t, tt.posts, offset)
		})
	}
}

func TestParallelProcess_InvalidProcessorCount(t *testing.T) {
	for _, n := range []int{0, -1, runtime.NumCPU() + 1} {
		_, _, err := ParallelProcess(context.Background(), testPosts(3), n, document.Config{})
		assert.ErrorIs(t, err, ErrInvalidProcessorCount, "processors=%d", n)
	}
}

func TestParallelProcess_Empty(t *testing.T) {
	docs, texts, err := ParallelProcess(context.Background(), nil, 1, document.Config{})
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Empty(t, texts)
}

func TestParallelProcess_InputOrder(t *testing.T) {
	posts := testPosts(11)
	processors := min(3, runtime.NumCPU())

	docs, texts, err := ParallelProcess(context.Background(), posts, processors, document.Config{})
	require.NoError(t, err)
	require.Len(t, docs, len(posts))
	require.Len(t, texts, len(posts))

	for i, doc := range docs {
		assert.Equal(t, posts[i].Key, doc.Key())
		assert.Equal(t, doc.CorpusText(), texts[i])
		assert.Contains(t, texts[i], fmt.Sprintf("version%d", i))
	}
}

func TestParallelProcess_RemovesMarkup(t *testing.T) {
	posts := []core.Post{{
		Key:         "1",
		Title:       "Java install",
		Description: "<p>use the <code>installer</code></p> <pre>java -jar</pre>",
	}}
	cfg := document.Config{IncludeDescription: true}

	docs, _, err := ParallelProcess(context.Background(), posts, 1, cfg)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	for _, word := range MarkupWords {
		assert.NotContains(t, docs[0].Tokens(), word)
	}
	assert.Contains(t, docs[0].Tokens(), "installer")
}

func TestParallelProcess_DisambiguatorError(t *testing.T) {
	failing := wsd.DisambiguatorFunc(func(_ context.Context, _ []string, target string) (wsd.Sense, error) {
		if target == "version3" {
			return wsd.Undefined, errors.New("service unavailable")
		}
		return wsd.Undefined, nil
	})

	_, _, err := ParallelProcess(context.Background(), testPosts(6), 1, document.Config{Disambiguator: failing})
	require.Error(t, err)
	assert.ErrorIs(t, err, document.ErrDisambiguation)
	assert.Contains(t, err.Error(), `"q3"`)
}

func TestParallelProcess_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := ParallelProcess(ctx, testPosts(4), 1, document.Config{})
	assert.ErrorIs(t, err, context.Canceled)
}
