// Package regen re-derives the tokens, senses and stems of stored documents.
//
// Stored records carry the output of the token pipeline so that loading a
// corpus does not repeat disambiguation. When the pipeline changes (a new
// stopword list, window size or disambiguator) the records are regenerated
// in place. Documents are walked in corpus order in batches; each document
// is rebuilt with retry and exponential backoff, and progress is reported to
// a writer.
package regen
