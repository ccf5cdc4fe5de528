package wsd

// DefaultWindowSize is the number of context tokens used around a target.
const DefaultWindowSize = 4

// ValidWindowSize returns size when it is an even number of at least two,
// and DefaultWindowSize otherwise.
func ValidWindowSize(size int) int {
	if size >= 2 && size%2 == 0 {
		return size
	}
	return DefaultWindowSize
}

// Window returns the context of tokens[target]: the target plus up to size/2
// tokens on each side. Near either end the window shifts inward so it still
// spans size+1 tokens. When tokens holds no more than size tokens the whole
// slice is the window. An out of range target yields nil.
//
// Boundaries use integer floor division. The returned slice shares the
// backing array of tokens.
func Window(tokens []string, target, size int) []string {
	if target < 0 || target >= len(tokens) {
		return nil
	}
	size = ValidWindowSize(size)
	if len(tokens) < size+1 {
		return tokens
	}

	half := size / 2
	left := max(target-half, 0)
	right := left + size + 1
	if right > len(tokens) {
		right = len(tokens)
		left = right - size - 1
	}
	return tokens[left:right]
}
