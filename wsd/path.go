package wsd

// PathSimilarity returns 1 / (d + 1), where d is the length of the shortest
// path between a and b through a common hypernym. Identical senses score 1.
// It returns false when either sense is unknown or no common hypernym exists.
func (m *MemoryInventory) PathSimilarity(a, b Sense) (float64, bool) {
	if _, ok := m.byID[string(a)]; !ok {
		return 0, false
	}
	if _, ok := m.byID[string(b)]; !ok {
		return 0, false
	}
	if a == b {
		return 1, true
	}

	upA := m.ancestors(string(a))
	upB := m.ancestors(string(b))

	best := -1
	for id, da := range upA {
		db, ok := upB[id]
		if !ok {
			continue
		}
		if d := da + db; best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return 0, false
	}
	return 1 / float64(best+1), true
}

// ancestors maps id and every hypernym reachable from it to its minimum
// number of hypernym steps from id.
func (m *MemoryInventory) ancestors(id string) map[string]int {
	dist := map[string]int{id: 0}
	frontier := []string{id}
	for depth := 1; len(frontier) > 0; depth++ {
		var next []string
		for _, node := range frontier {
			entry, ok := m.byID[node]
			if !ok {
				continue
			}
			for _, h := range entry.Hypernyms {
				if _, seen := dist[h]; seen {
					continue
				}
				dist[h] = depth
				next = append(next, h)
			}
		}
		frontier = next
	}
	return dist
}
