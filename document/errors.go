package document

import "errors"

var (
	// ErrDisambiguation is returned when the configured disambiguator fails.
	ErrDisambiguation = errors.New("disambiguation failed")
)
