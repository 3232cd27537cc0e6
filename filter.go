package fzmatch

import "sort"

// Match is one ranked candidate produced by Filter.
type Match struct {
	// Str is the original candidate string.
	Str string

	// Score is the optimal-alignment score. ScoreMax for an exact match,
	// ScoreMin when the candidate matched but exceeded MaxLen.
	Score float64

	// Positions holds the haystack rune indices of the best alignment,
	// one per needle rune. Nil when no alignment exists (over-length
	// candidates).
	Positions []int
}

// Filter ranks candidates against needle, best first.
//
// An empty needle acts as "show everything, unranked": every candidate is
// returned with score exactly 0. Note the asymmetry with Score, which
// returns ScoreMin for an empty needle; both behaviors are deliberate.
//
// With a non-empty needle, candidates failing the cheap subsequence test are
// dropped entirely. Survivors are scored and ordered by descending score;
// ties order by candidate text, so identical input always yields identical
// output.
func Filter(needle string, candidates []string) []Match {
	if needle == "" {
		matches := make([]Match, len(candidates))
		for i, c := range candidates {
			matches[i] = Match{Str: c, Positions: []int{}}
		}
		return matches
	}

	nr := []rune(needle)
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		hr := []rune(c)
		if !hasMatchRunes(nr, hr) {
			continue
		}
		score, positions := matchRunes(nr, hr)
		matches = append(matches, Match{Str: c, Score: score, Positions: positions})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Str < matches[j].Str
	})
	return matches
}
