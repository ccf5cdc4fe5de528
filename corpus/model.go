package corpus

import (
	"log/slog"
	"maps"
	"slices"
)

const (
	// DefaultThreshold is the minimum cosine score a keyword hit must exceed.
	DefaultThreshold = 0.1

	// DefaultSemanticThreshold is the minimum relatedness a term must exceed
	// to join an expanded query.
	DefaultSemanticThreshold = 0.4

	// MaxResults bounds keyword and co-occurrence results.
	MaxResults = 10
)

// Model is a TF-IDF term-document model with a term-term relatedness
// matrix.
//
// The weight matrix is |V| x |N|: entry (t, d) is the raw count of term t in
// document d times the smoothed idf of t, and every document column has unit
// length. Relatedness is |V| x |V| and row normalized, so in general
// Relatedness(i, j) != Relatedness(j, i).
type Model struct {
	vocabulary  []string
	termIDs     map[string]int
	idf         []float64
	weights     *Matrix
	relatedness *Matrix

	threshold         float64
	semanticThreshold float64
	weighted          bool
	logger            *slog.Logger
}

// Option configures a Model.
type Option func(*Model) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithThreshold sets the keyword search cutoff. Values outside [0, 1) are
// ignored.
func WithThreshold(t float64) Option {
	return func(m *Model) error {
		if validThreshold(t) {
			m.threshold = t
		}
		return nil
	}
}

// WithSemanticThreshold sets the relatedness cutoff for query expansion.
// Values outside [0, 1) are ignored.
func WithSemanticThreshold(t float64) Option {
	return func(m *Model) error {
		if validThreshold(t) {
			m.semanticThreshold = t
		}
		return nil
	}
}

// WithWeightedCoOccurrence derives relatedness from TF-IDF weights instead
// of document counts: co(i, j) is the dot product of the weight rows of i
// and j, and the occurrence of i is co(i, i).
func WithWeightedCoOccurrence() Option {
	return func(m *Model) error {
		m.weighted = true
		return nil
	}
}

func validThreshold(t float64) bool {
	return t >= 0 && t < 1
}

// New builds a model from texts, one per document in corpus order.
func New(texts []string, opts ...Option) (*Model, error) {
	m := &Model{
		threshold:         DefaultThreshold,
		semanticThreshold: DefaultSemanticThreshold,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	docs := make([][]string, len(texts))
	df := make(map[string]int)
	for d, text := range texts {
		docs[d] = analyze(text)
		seen := make(map[string]bool, len(docs[d]))
		for _, term := range docs[d] {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	m.vocabulary = slices.Sorted(maps.Keys(df))
	m.termIDs = make(map[string]int, len(m.vocabulary))
	m.idf = make([]float64, len(m.vocabulary))
	for i, term := range m.vocabulary {
		m.termIDs[term] = i
		m.idf[i] = smoothIDF(len(texts), df[term])
	}

	m.weights = NewMatrix(len(m.vocabulary), len(texts))
	for d, terms := range docs {
		col := m.weigh(terms)
		for t, w := range col {
			if w != 0 {
				m.weights.Set(t, d, w)
			}
		}
	}

	if m.weighted {
		m.relatedness = m.weightedRelatedness()
	} else {
		m.relatedness = m.countRelatedness(docs)
	}

	m.logger.Debug("built corpus model",
		"documents", len(texts),
		"vocabulary", len(m.vocabulary),
		"weighted", m.weighted)
	return m, nil
}

// weigh returns the normalized TF-IDF vector of terms.
func (m *Model) weigh(terms []string) []float64 {
	v := make([]float64, len(m.vocabulary))
	for _, term := range terms {
		if id, ok := m.termIDs[term]; ok {
			v[id]++
		}
	}
	for i := range v {
		v[i] *= m.idf[i]
	}
	normalize(v)
	return v
}

// countRelatedness sets rel(i, j) to the number of documents containing both
// i and j divided by the number of documents containing i.
func (m *Model) countRelatedness(docs [][]string) *Matrix {
	n := len(m.vocabulary)
	co := NewMatrix(n, n)
	occ := make([]float64, n)
	for _, terms := range docs {
		ids := m.distinctIDs(terms)
		for _, i := range ids {
			occ[i]++
			row := co.Row(i)
			for _, j := range ids {
				row[j]++
			}
		}
	}
	divideRows(co, occ)
	return co
}

func (m *Model) weightedRelatedness() *Matrix {
	n, docs := m.weights.Dims()
	co := NewMatrix(n, n)
	for d := 0; d < docs; d++ {
		var ids []int
		for t := 0; t < n; t++ {
			if m.weights.At(t, d) != 0 {
				ids = append(ids, t)
			}
		}
		for _, i := range ids {
			wi := m.weights.At(i, d)
			row := co.Row(i)
			for _, j := range ids {
				row[j] += wi * m.weights.At(j, d)
			}
		}
	}
	occ := make([]float64, n)
	for i := range occ {
		occ[i] = co.At(i, i)
	}
	divideRows(co, occ)
	return co
}

// divideRows divides row i of m by occ[i]. Rows with zero occurrence stay 0.
func divideRows(m *Matrix, occ []float64) {
	for i, o := range occ {
		row := m.Row(i)
		if o == 0 {
			clear(row)
			continue
		}
		for j := range row {
			row[j] /= o
		}
	}
}

func (m *Model) distinctIDs(terms []string) []int {
	seen := make(map[int]bool, len(terms))
	ids := make([]int, 0, len(terms))
	for _, term := range terms {
		id, ok := m.termIDs[term]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// WithDocument returns a copy of m with one more document column built from
// text against the existing vocabulary. Terms outside the vocabulary are
// dropped; idf and relatedness are shared with m and not recomputed.
func (m *Model) WithDocument(text string) *Model {
	out := *m
	out.weights = m.weights.appendCol(m.weigh(analyze(text)))
	return &out
}

// Vocabulary returns the sorted vocabulary.
func (m *Model) Vocabulary() []string {
	return slices.Clone(m.vocabulary)
}

// TermID returns the vocabulary index of term.
func (m *Model) TermID(term string) (int, bool) {
	id, ok := m.termIDs[term]
	return id, ok
}

// Documents returns the number of documents in the model.
func (m *Model) Documents() int {
	_, n := m.weights.Dims()
	return n
}

// Weights returns the |V| x |N| weight matrix. It must not be modified.
func (m *Model) Weights() *Matrix { return m.weights }

// Relatedness returns the |V| x |V| relatedness matrix. It must not be modified.
func (m *Model) Relatedness() *Matrix { return m.relatedness }

// Threshold returns the keyword search cutoff.
func (m *Model) Threshold() float64 { return m.threshold }

// SemanticThreshold returns the relatedness cutoff for query expansion.
func (m *Model) SemanticThreshold() float64 { return m.semanticThreshold }
