// Package wsd provides word sense disambiguation over a sense inventory.
//
// A Sense is an opaque sense identifier such as "bank.n.01"; Undefined marks a
// token whose meaning could not be resolved. The package offers:
//   - Window, which cuts a bounded context around a target token
//   - MemoryInventory, an in-memory sense database with lemma lookup and a
//     hypernym hierarchy used for path similarity
//   - Lesk, a gloss-overlap Disambiguator
//
// Disambiguation failures are not errors. Callers branch on Sense.Resolved.
package wsd
