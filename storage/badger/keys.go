package badger

import (
	"encoding/binary"

	"github.com/poiesic/semsimilar/core"
)

// Key prefixes for different data types. Every prefix ends in ':' so no
// prefix is a prefix of another.
const (
	documentRecordPrefix = "docrec:"
	documentIDPrefix     = "docid:"
	documentSeqName      = "docseq"
	senseRecordPrefix    = "senrec:"
	senseIDPrefix        = "senid:"
	senseLemmaPrefix     = "senlem:"
	senseSeqName         = "senseq"
)

// appendUint64 appends v in BigEndian order so lexicographic sort matches
// numeric order.
func appendUint64(buf []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(buf, v)
}

// makeDocumentKey generates the primary key of a document.
// Format: prefix + seq
func makeDocumentKey(seq uint64) []byte {
	return appendUint64([]byte(documentRecordPrefix), seq)
}

// makeDocumentIDKey generates the key of the ID index, which maps a
// document ID to its seq.
// Format: prefix + id
func makeDocumentIDKey(id core.ID) []byte {
	return appendUint64([]byte(documentIDPrefix), uint64(id))
}

// makeSenseKey generates the primary key of a sense entry.
// Format: prefix + seq
func makeSenseKey(seq uint64) []byte {
	return appendUint64([]byte(senseRecordPrefix), seq)
}

// makeSenseIDKey generates the key of the sense id index.
// Format: prefix + id
func makeSenseIDKey(id string) []byte {
	return append([]byte(senseIDPrefix), id...)
}

// makeSenseLemmaKey generates a composite key for the lemma index.
// Format: prefix + lemma + 0x00 + seq
func makeSenseLemmaKey(lemma string, seq uint64) []byte {
	return appendUint64(makePartialSenseLemmaKey(lemma), seq)
}

// makePartialSenseLemmaKey generates the lemma index prefix for lemma queries.
func makePartialSenseLemmaKey(lemma string) []byte {
	buf := append([]byte(senseLemmaPrefix), lemma...)
	return append(buf, 0)
}

// seqFromKey returns the trailing seq of a key.
func seqFromKey(key []byte) uint64 {
	return binary.BigEndian.Uint64(key[len(key)-8:])
}
