package mock

import "strings"

// glossWords splits a gloss into lowercase words without punctuation.
func glossWords(gloss string) []string {
	return strings.FieldsFunc(strings.ToLower(gloss), func(r rune) bool {
		return strings.ContainsRune(" .,;:!?\"'()", r)
	})
}
