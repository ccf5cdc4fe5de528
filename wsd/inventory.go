package wsd

import (
	"slices"
	"strings"

	"github.com/poiesic/semsimilar/core"
)

// Inventory is a read-only sense database.
type Inventory interface {
	// Senses returns the candidate senses of word in inventory order.
	// Inflected forms are reduced to their base form before lookup.
	Senses(word string) []core.SenseEntry

	// Entry returns the entry for a sense id.
	Entry(id Sense) (core.SenseEntry, bool)
}

// MemoryInventory is an Inventory held in memory. It is immutable after
// construction and safe for concurrent use.
type MemoryInventory struct {
	byLemma map[string][]core.SenseEntry
	byID    map[string]core.SenseEntry
	count   int
}

var (
	_ Inventory      = (*MemoryInventory)(nil)
	_ PathSimilarity = (*MemoryInventory)(nil)
)

// NewMemoryInventory builds an inventory from entries. Later entries with an
// id already seen replace the earlier definition but keep its position.
func NewMemoryInventory(entries ...core.SenseEntry) *MemoryInventory {
	inv := &MemoryInventory{
		byLemma: make(map[string][]core.SenseEntry),
		byID:    make(map[string]core.SenseEntry, len(entries)),
	}
	for _, entry := range entries {
		lemma := strings.ToLower(entry.Lemma)
		if old, ok := inv.byID[entry.Id]; ok {
			inv.byID[entry.Id] = entry
			oldLemma := strings.ToLower(old.Lemma)
			list := inv.byLemma[oldLemma]
			i := slices.IndexFunc(list, func(e core.SenseEntry) bool { return e.Id == entry.Id })
			if oldLemma == lemma {
				list[i] = entry
				continue
			}
			// A new lemma moves the entry to the end of that lemma's senses.
			if list = slices.Delete(list, i, i+1); len(list) == 0 {
				delete(inv.byLemma, oldLemma)
			} else {
				inv.byLemma[oldLemma] = list
			}
			inv.byLemma[lemma] = append(inv.byLemma[lemma], entry)
			continue
		}
		inv.byID[entry.Id] = entry
		inv.byLemma[lemma] = append(inv.byLemma[lemma], entry)
		inv.count++
	}
	return inv
}

// Len returns the number of distinct senses.
func (m *MemoryInventory) Len() int {
	return m.count
}

// Entry returns the entry for id.
func (m *MemoryInventory) Entry(id Sense) (core.SenseEntry, bool) {
	entry, ok := m.byID[string(id)]
	return entry, ok
}

// Senses returns the senses of word and of its base forms, without duplicates.
func (m *MemoryInventory) Senses(word string) []core.SenseEntry {
	var result []core.SenseEntry
	seen := make(map[string]bool)
	for _, form := range baseForms(strings.ToLower(word)) {
		for _, entry := range m.byLemma[form] {
			if seen[entry.Id] {
				continue
			}
			seen[entry.Id] = true
			result = append(result, entry)
		}
	}
	return result
}

// detachments are the inflection rules used to find base forms, in the
// order nouns, verbs, adjectives.
var detachments = []struct{ suffix, replace string }{
	{"ses", "s"}, {"xes", "x"}, {"zes", "z"}, {"ches", "ch"}, {"shes", "sh"},
	{"men", "man"}, {"ies", "y"}, {"s", ""},
	{"es", "e"}, {"es", ""}, {"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
}

// baseForms returns word followed by every distinct candidate base form.
func baseForms(word string) []string {
	forms := []string{word}
	seen := map[string]bool{word: true}
	for _, d := range detachments {
		if !strings.HasSuffix(word, d.suffix) || len(word) <= len(d.suffix) {
			continue
		}
		form := strings.TrimSuffix(word, d.suffix) + d.replace
		if !seen[form] {
			seen[form] = true
			forms = append(forms, form)
		}
	}
	return forms
}
