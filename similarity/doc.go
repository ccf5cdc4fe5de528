// Package similarity implements the fine retrieval stage: a pairwise,
// sense-aware score between two documents and bounded top-K selection over
// a shortlist.
package similarity
