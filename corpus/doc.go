// Package corpus implements the coarse retrieval stage: a TF-IDF
// term-document model of a fixed corpus plus a term-term relatedness
// matrix used to expand queries with co-occurring vocabulary.
//
// A Model is built once from the joined stemmed text of every corpus
// document. The position of a text in that input is the document index
// used by every query result. Models are immutable after construction and
// safe for concurrent readers.
package corpus
