package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored entities.
// Documents derive it from their external key so re-ingesting a post
// replaces the earlier copy instead of duplicating it.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Post is a raw item (question, answer, article) before any text processing.
type Post struct {
	Key         string
	Title       string
	Description string
	Tags        string
}

// DocumentRecord is the persisted form of a document.
// It carries the raw fields together with the derived token and sense
// sequences so that disambiguation does not have to be repeated on load.
type DocumentRecord struct {
	Id            ID
	Seq           uint64 // Corpus position, assigned on first insert
	Key           string // Caller supplied identifier
	Title         string
	Description   string
	Tags          string
	Tokens        []string
	SenseTokens   []string
	Senses        []string // "" marks a token whose sense could not be resolved
	StemmedTokens []string
	InsertedAt    time.Time
	UpdatedAt     time.Time
}

// SenseEntry is one meaning of a lemma in the sense inventory.
type SenseEntry struct {
	Id        string   // e.g. "bank.n.01"
	Lemma     string   // lowercase surface form the sense belongs to
	Gloss     string   // short definition used for gloss overlap
	Examples  []string // usage examples, also used for gloss overlap
	Hypernyms []string // ids of more general senses
}
