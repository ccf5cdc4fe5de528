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

package ingestion

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/semsimilar/core"
	"github.com/poiesic/semsimilar/document"
)

// MarkupWords are tokens left behind by HTML post bodies. They are removed
// from every processed document.
var MarkupWords = []string{
	"p", "&#xa", "&#xd", "pre", "code", "blockquote",
	"strong", "ul", "li", "a", "href", "em",
}

// batch is a contiguous run of posts starting at offset.
type batch struct {
	offset int
	posts  []core.Post
}

// split divides posts into n batches. The remainder goes to the last batch;
// empty batches are dropped.
func split(posts []core.Post, n int) []batch {
	size := len(posts) / n
	batches := make([]batch, 0, n)
	for i := range n {
		start := i * size
		end := start + size
		if i == n-1 {
			end = len(posts)
		}
		if start == end {
			continue
		}
		batches = append(batches, batch{offset: start, posts: posts[start:end]})
	}
	return batches
}

// ParallelProcess builds a document for every post using processors workers.
// It returns the documents and their corpus texts, both in input order.
// processors must be between 1 and runtime.NumCPU().
func ParallelProcess(ctx context.Context, posts []core.Post, processors int, cfg document.Config) ([]*document.Document, []string, error) {
	if processors < 1 || processors > runtime.NumCPU() {
		return nil, nil, fmt.Errorf("%w: %d (must be between 1 and %d)",
			ErrInvalidProcessorCount, processors, runtime.NumCPU())
	}
	if len(posts) == 0 {
		return []*document.Document{}, []string{}, nil
	}

	pool, err := ants.NewPool(processors)
	if err != nil {
		return nil, nil, err
	}
	defer pool.Release()

	docs := make([]*document.Document, len(posts))
	texts := make([]string, len(posts))
	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)

	for _, b := range split(posts, processors) {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			built, err := processBatch(ctx, b.posts, cfg)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			for i, doc := range built {
				docs[b.offset+i] = doc
				texts[b.offset+i] = doc.CorpusText()
			}
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
	}
	wg.Wait()

	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}
	return docs, texts, nil
}

func processBatch(ctx context.Context, posts []core.Post, cfg document.Config) ([]*document.Document, error) {
	docs := make([]*document.Document, len(posts))
	for i, post := range posts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := document.New(ctx, cfg, post)
		if err != nil {
			return nil, fmt.Errorf("post %q: %w", post.Key, err)
		}
		doc.RemoveSpecialWords(MarkupWords)
		docs[i] = doc
	}
	return docs, nil
}
