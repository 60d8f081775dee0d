package match

import (
	"cmp"
	"slices"

	"fieldsync/internal/common"
)

// DefaultMinScore is the similarity a candidate needs to be suggested.
const DefaultMinScore = 0.5

// Candidate is a known name scored against an unknown one.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name and returns them sorted by
// score (descending), then by name for determinism.
func Rank(name string, candidates []string) []Candidate {
	ranked := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, Candidate{Name: c, Score: Similarity(name, c)})
	}

	slices.SortFunc(ranked, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return ranked
}

// Suggest returns the best candidate for name when it scores at least
// DefaultMinScore.
func Suggest(name string, candidates []string) (string, bool) {
	best, ok := common.First(Rank(name, candidates))
	if !ok || best.Score < DefaultMinScore {
		return "", false
	}

	return best.Name, true
}
