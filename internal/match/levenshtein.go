package match

// Levenshtein computes the edit distance between two strings, counting
// runes rather than bytes. The distance is the minimum number of single-rune
// insertions, deletions or substitutions turning one string into the other.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)

	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	// Two rows are enough; ra is the shorter side.
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity returns 1 - distance/maxLen over the normalized identifiers,
// so 1.0 means equal after normalization and 0.0 means nothing in common.
func Similarity(a, b string) float64 {
	na, nb := []rune(NormalizeIdent(a)), []rune(NormalizeIdent(b))

	maxLen := max(len(na), len(nb))
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(string(na), string(nb)))/float64(maxLen)
}
