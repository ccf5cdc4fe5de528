package document

import (
	"sync"

	"github.com/poiesic/semsimilar/text"
	"github.com/poiesic/semsimilar/wsd"
)

// Config selects the text fields and collaborators used to derive a
// document's tokens. Nil collaborators are replaced with defaults when a
// document is built:
//   - Tokenizer: text.NewCodeTokenizer()
//   - Stopwords: text.EnglishStopwords()
//   - Stemmer: text.SnowballStemmer
//
// A nil Disambiguator leaves every sense Undefined.
type Config struct {
	Tokenizer text.Tokenizer

	// SenseWindowSize is the number of context tokens around each sense
	// token. Values that are not an even number of at least two fall back
	// to wsd.DefaultWindowSize.
	SenseWindowSize int

	// IncludeDescription adds the description to the full text.
	IncludeDescription bool

	// IncludeTags adds the tags to the full text and to the sense-window text.
	IncludeTags bool

	Stopwords     text.StopwordFilter
	Stemmer       text.Stemmer
	Disambiguator wsd.Disambiguator
}

var (
	defaultMu     sync.RWMutex
	defaultConfig = Config{SenseWindowSize: wsd.DefaultWindowSize}
)

// DefaultConfig returns the process wide default configuration.
func DefaultConfig() Config {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultConfig
}

// SetDefaultConfig replaces the process wide default. Documents that were
// already built keep their configuration.
func SetDefaultConfig(cfg Config) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultConfig = cfg
}

func (c Config) withDefaults() Config {
	if c.Tokenizer == nil {
		c.Tokenizer = text.NewCodeTokenizer()
	}
	if c.Stopwords == nil {
		c.Stopwords = text.EnglishStopwords()
	}
	if c.Stemmer == nil {
		c.Stemmer = text.SnowballStemmer{}
	}
	c.SenseWindowSize = wsd.ValidWindowSize(c.SenseWindowSize)
	return c
}
