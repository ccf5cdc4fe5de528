package corpus

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// wordRun matches maximal runs of word characters.
var wordRun = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

// analyze lowercases s and returns its terms: every run of two or more
// word characters, in order of appearance.
func analyze(s string) []string {
	runs := wordRun.FindAllString(strings.ToLower(s), -1)
	terms := runs[:0]
	for _, r := range runs {
		if utf8.RuneCountInString(r) >= 2 {
			terms = append(terms, r)
		}
	}
	return terms
}

// smoothIDF is ln((1+n)/(1+df)) + 1.
func smoothIDF(docs, df int) float64 {
	return math.Log(float64(1+docs)/float64(1+df)) + 1
}

// normalize scales v to unit Euclidean length in place. Zero vectors are
// left unchanged.
func normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}

// Cosine returns the cosine similarity of a and b. It is 0 when either
// vector has zero norm or the lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
