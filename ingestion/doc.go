// Package ingestion turns raw posts into documents.
//
// ParallelProcess builds documents concurrently on a worker pool, splitting
// the posts into one batch per processor. Pipeline persists the resulting
// records in a storage.DocumentRepository.
//
// Results always come back in the order the posts were given, which is the
// corpus order used by the corpus model.
package ingestion
