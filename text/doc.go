// Package text provides the text-processing collaborators used to turn raw
// document fields into token sequences.
//
// The pieces are deliberately small and pluggable:
//   - Tokenizer splits text into lowercase tokens (CodeTokenizer keeps
//     programming terms such as "c++" and "asp.net" intact; WordTokenizer
//     splits on anything that is not a letter or digit)
//   - Stopwords removes common English words while preserving order
//   - SnowballStemmer reduces tokens to their English Snowball stem
package text
