package document

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/semsimilar/core"
	"github.com/poiesic/semsimilar/text"
	"github.com/poiesic/semsimilar/wsd"
)

// Document is one post together with its derived token sequences.
//
// Derived fields are computed by New and Regenerate. Setters change raw
// fields only and mark the document stale; derived fields must not be
// trusted until Regenerate is called again. A Document is not safe for
// concurrent mutation.
type Document struct {
	cfg Config

	seq         uint64
	key         string
	title       string
	description string
	tags        string

	tokens        []string
	senseTokens   []string
	senses        []wsd.Sense
	stemmedTokens []string

	insertedAt time.Time
	updatedAt  time.Time
	stale      bool
}

// New builds a document from post and derives its tokens and senses.
// The only error source is the configured disambiguator.
func New(ctx context.Context, cfg Config, post core.Post) (*Document, error) {
	d := &Document{
		cfg:         cfg.withDefaults(),
		key:         post.Key,
		title:       post.Title,
		description: post.Description,
		tags:        post.Tags,
	}
	if err := d.Regenerate(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// FromRecord restores a document from its persisted form without running
// the token pipeline again.
func FromRecord(cfg Config, record *core.DocumentRecord) (*Document, error) {
	if err := core.ValidateDocumentRecord(record); err != nil {
		return nil, err
	}
	return &Document{
		cfg:           cfg.withDefaults(),
		seq:           record.Seq,
		key:           record.Key,
		title:         record.Title,
		description:   record.Description,
		tags:          record.Tags,
		tokens:        slices.Clone(record.Tokens),
		senseTokens:   slices.Clone(record.SenseTokens),
		senses:        wsd.Senses(record.Senses),
		stemmedTokens: slices.Clone(record.StemmedTokens),
		insertedAt:    record.InsertedAt,
		updatedAt:     record.UpdatedAt,
	}, nil
}

// ToRecord returns the persisted form of d.
func (d *Document) ToRecord() *core.DocumentRecord {
	return &core.DocumentRecord{
		Id:            d.ID(),
		Seq:           d.seq,
		Key:           d.key,
		Title:         d.title,
		Description:   d.description,
		Tags:          d.tags,
		Tokens:        slices.Clone(d.tokens),
		SenseTokens:   slices.Clone(d.senseTokens),
		Senses:        wsd.IDs(d.senses),
		StemmedTokens: slices.Clone(d.stemmedTokens),
		InsertedAt:    d.insertedAt,
		UpdatedAt:     d.updatedAt,
	}
}

// Regenerate recomputes every derived field from the raw fields.
// Running it twice with unchanged inputs yields identical results.
func (d *Document) Regenerate(ctx context.Context) error {
	cfg := d.cfg

	tokens := cfg.Stopwords.Remove(cfg.Tokenizer.Tokenize(d.fullText()))
	senseTokens := dedupe(cfg.Stopwords.Remove(cfg.Tokenizer.Tokenize(d.senseText())))

	senses := make([]wsd.Sense, len(senseTokens))
	if cfg.Disambiguator != nil {
		for i, token := range senseTokens {
			if err := ctx.Err(); err != nil {
				return err
			}
			window := wsd.Window(senseTokens, i, cfg.SenseWindowSize)
			sense, err := cfg.Disambiguator.Disambiguate(ctx, window, token)
			if err != nil {
				return fmt.Errorf("%w: %q: %w", ErrDisambiguation, token, err)
			}
			senses[i] = sense
		}
	}

	d.tokens = tokens
	d.senseTokens = senseTokens
	d.senses = senses
	d.stemmedTokens = text.StemTokens(cfg.Stemmer, tokens)
	d.stale = false
	return nil
}

// RemoveSpecialWords drops every token found in words, such as markup
// left over from HTML bodies, and recomputes the stems. Sense tokens are
// left untouched.
func (d *Document) RemoveSpecialWords(words []string) {
	special := make(map[string]bool, len(words))
	for _, w := range words {
		special[w] = true
	}
	tokens := d.tokens[:0:0]
	for _, token := range d.tokens {
		if !special[token] {
			tokens = append(tokens, token)
		}
	}
	d.tokens = tokens
	d.stemmedTokens = text.StemTokens(d.cfg.Stemmer, tokens)
}

func (d *Document) fullText() string {
	parts := []string{d.title}
	if d.cfg.IncludeDescription {
		parts = append(parts, d.description)
	}
	if d.cfg.IncludeTags {
		parts = append(parts, d.tags)
	}
	return strings.Join(parts, " ")
}

func (d *Document) senseText() string {
	if d.cfg.IncludeTags {
		return d.title + " " + d.tags
	}
	return d.title
}

// dedupe keeps the first occurrence of every token.
func dedupe(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if seen[token] {
			continue
		}
		seen[token] = true
		out = append(out, token)
	}
	return out
}

// ID is the content id derived from the document key.
func (d *Document) ID() core.ID { return core.IDFromContent(d.key) }

// Seq is the corpus position assigned when the document was first stored.
func (d *Document) Seq() uint64 { return d.seq }

func (d *Document) Key() string         { return d.key }
func (d *Document) Title() string       { return d.title }
func (d *Document) Description() string { return d.description }
func (d *Document) Tags() string        { return d.tags }

// Tokens are the stopword-filtered tokens of the full text.
func (d *Document) Tokens() []string { return d.tokens }

// SenseTokens are the distinct stopword-filtered tokens of the sense-window text.
func (d *Document) SenseTokens() []string { return d.senseTokens }

// Senses holds one sense per sense token; wsd.Undefined marks a failure.
func (d *Document) Senses() []wsd.Sense { return d.senses }

// StemmedTokens are Tokens after stemming.
func (d *Document) StemmedTokens() []string { return d.stemmedTokens }

// CorpusText is the joined stemmed text used to build a corpus model.
func (d *Document) CorpusText() string { return strings.Join(d.stemmedTokens, " ") }

// Stale reports whether raw fields changed since the last Regenerate.
func (d *Document) Stale() bool { return d.stale }

// Config returns the configuration d was built with.
func (d *Document) Config() Config { return d.cfg }

func (d *Document) SetTitle(title string) {
	d.title = title
	d.stale = true
}

func (d *Document) SetDescription(description string) {
	d.description = description
	d.stale = true
}

func (d *Document) SetTags(tags string) {
	d.tags = tags
	d.stale = true
}
