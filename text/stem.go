package text

import (
	"github.com/kljensen/snowball/english"
)

// Stemmer reduces a token to its stem.
type Stemmer interface {
	Stem(token string) string
}

// SnowballStemmer applies the English Snowball (Porter2) algorithm.
type SnowballStemmer struct{}

var _ Stemmer = SnowballStemmer{}

// Stem returns the Snowball stem of token.
func (SnowballStemmer) Stem(token string) string {
	return english.Stem(token, false)
}

// StemTokens stems every token, preserving order.
func StemTokens(stemmer Stemmer, tokens []string) []string {
	stemmed := make([]string, len(tokens))
	for i, token := range tokens {
		stemmed[i] = stemmer.Stem(token)
	}
	return stemmed
}
