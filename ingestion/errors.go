package ingestion

import "errors"

var (
	// ErrInvalidProcessorCount is returned when the processor count is not
	// between 1 and the number of CPUs.
	ErrInvalidProcessorCount = errors.New("invalid processor count")

	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")
)
