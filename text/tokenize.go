package text

import (
	"regexp"
	"strings"
	"unicode"
)

// Tokenizer splits text into an ordered sequence of tokens.
// Implementations must be safe for concurrent use.
type Tokenizer interface {
	Tokenize(s string) []string
}

// punctuation matches separators that never belong to a code token.
// A period only separates when it is not followed by a word character,
// so "node.js" survives while "end." does not.
var punctuation = regexp.MustCompile(`[?!:;\-()\[\]"/,<>]|\.\B|\s'`)

// CodeTokenizer tokenizes technical prose. It lowercases, strips punctuation,
// expands English contractions and splits on whitespace.
type CodeTokenizer struct {
	replacer *ContractionReplacer
}

var _ Tokenizer = (*CodeTokenizer)(nil)

// NewCodeTokenizer creates a CodeTokenizer with the default contraction rules.
func NewCodeTokenizer() *CodeTokenizer {
	return &CodeTokenizer{replacer: NewContractionReplacer()}
}

// Tokenize splits s into tokens. Empty input yields no tokens.
func (t *CodeTokenizer) Tokenize(s string) []string {
	s = strings.ToLower(s)
	s = strings.TrimSpace(punctuation.ReplaceAllString(s, " "))
	if t.replacer != nil {
		s = t.replacer.Replace(s)
	}
	return strings.Fields(s)
}

// WordTokenizer splits on every rune that is not a letter or a number.
type WordTokenizer struct{}

var _ Tokenizer = WordTokenizer{}

// Tokenize splits s into lowercase words.
func (WordTokenizer) Tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsNumber(c)
	})
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		tokens = append(tokens, strings.ToLower(field))
	}
	return tokens
}
