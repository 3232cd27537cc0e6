package fzmatch

import "math"

// HasMatch reports whether every needle character appears in haystack in
// order, ignoring case. It is a cheap O(len(haystack)) prefilter with no
// scoring semantics and no length cap. An empty needle always matches,
// including against an empty haystack.
func HasMatch(needle, haystack string) bool {
	if needle == "" {
		return true
	}
	return hasMatchRunes([]rune(needle), []rune(haystack))
}

func hasMatchRunes(needle, haystack []rune) bool {
	i := 0
	for _, r := range haystack {
		if lowerRune(r) == lowerRune(needle[i]) {
			if i++; i == len(needle) {
				return true
			}
		}
	}
	return i == len(needle)
}

// Score computes the optimal-alignment score of needle against haystack.
//
// The result is ScoreMin for an empty needle, an empty haystack, a needle
// longer than the haystack, a haystack longer than MaxLen runes, or a needle
// that is not a case-insensitive subsequence of the haystack. It is ScoreMax
// when needle and haystack are case-insensitively identical. All other
// matches score finite.
func Score(needle, haystack string) float64 {
	n := []rune(needle)
	h := []rune(haystack)
	if len(n) == 0 || len(h) == 0 || len(n) > len(h) || len(h) > MaxLen {
		return ScoreMin
	}
	if len(n) == len(h) {
		// A same-length subsequence match is necessarily an exact match.
		if hasMatchRunes(n, h) {
			return ScoreMax
		}
		return ScoreMin
	}
	return newMatchState(n, h).score()
}

// Positions returns the haystack rune indices of one optimal alignment of
// needle, strictly increasing, one per needle rune. When alignments tie, the
// earliest (leftmost) positions are preferred.
//
// An empty needle yields an empty, non-nil slice. A non-matching needle, a
// needle longer than the haystack, or a haystack longer than MaxLen runes
// yields nil.
func Positions(needle, haystack string) []int {
	n := []rune(needle)
	if len(n) == 0 {
		return []int{}
	}
	h := []rune(haystack)
	if len(h) == 0 || len(n) > len(h) || len(h) > MaxLen || !hasMatchRunes(n, h) {
		return nil
	}
	_, positions := matchRunes(n, h)
	return positions
}

// matchRunes computes score and positions in one pass for a needle already
// known to be a case-insensitive subsequence of haystack.
func matchRunes(needle, haystack []rune) (float64, []int) {
	n, m := len(needle), len(haystack)
	if n == 0 || n > m || m > MaxLen {
		return ScoreMin, nil
	}
	if n == m {
		positions := make([]int, n)
		for i := range positions {
			positions[i] = i
		}
		return ScoreMax, positions
	}
	return newMatchState(needle, haystack).positions()
}

// matchState holds the case-folded inputs and the precomputed boundary bonus
// for each haystack position. The dynamic program runs over two matrices:
//
//	D[i][j] best score of an alignment of needle[:i+1] whose last match is
//	        pinned exactly at haystack position j
//	M[i][j] best score of an alignment of needle[:i+1] using haystack
//	        positions up to and including j, match not required to end at j
type matchState struct {
	needle   []rune // lowercased
	haystack []rune // lowercased
	bonus    []float64
}

func newMatchState(needle, haystack []rune) *matchState {
	s := &matchState{
		needle:   make([]rune, len(needle)),
		haystack: make([]rune, len(haystack)),
		bonus:    make([]float64, len(haystack)),
	}
	for i, r := range needle {
		s.needle[i] = lowerRune(r)
	}
	for j, r := range haystack {
		if j > 0 {
			// Bonuses inspect original case; the camelCase rule
			// would vanish after folding. Position 0 has no
			// preceding character: matching there is the leading
			// case, costed as gap, not bonus.
			s.bonus[j] = matchBonus(haystack[j-1], r)
		}
		s.haystack[j] = lowerRune(r)
	}
	return s
}

// scoreRow fills row i of D and M. lastD and lastM are row i-1 and may be nil
// when i == 0.
func (s *matchState) scoreRow(i int, curD, curM, lastD, lastM []float64) {
	n := len(s.needle)
	gap := ScoreGapInner
	if i == n-1 {
		gap = ScoreGapTrailing
	}

	prevScore := ScoreMin
	for j := range s.haystack {
		score := ScoreMin
		if s.needle[i] == s.haystack[j] {
			if i == 0 {
				score = float64(j)*ScoreGapLeading + s.bonus[j]
			} else if j > 0 {
				// Either open a fresh run from the best prior
				// alignment, paying the boundary bonus, or
				// extend an adjacent run.
				score = math.Max(
					lastM[j-1]+s.bonus[j],
					lastD[j-1]+ScoreMatchConsecutive)
			}
		}
		curD[j] = score
		prevScore = math.Max(score, prevScore+gap)
		curM[j] = prevScore
	}
}

// score runs the dynamic program keeping only two rows. Positions cannot be
// recovered from this form; use positions for that.
func (s *matchState) score() float64 {
	n, m := len(s.needle), len(s.haystack)
	lastD := make([]float64, m)
	lastM := make([]float64, m)
	curD := make([]float64, m)
	curM := make([]float64, m)

	for i := 0; i < n; i++ {
		s.scoreRow(i, curD, curM, lastD, lastM)
		lastD, curD = curD, lastD
		lastM, curM = curM, lastM
	}
	return lastM[m-1]
}

// positions runs the full dynamic program and backtracks one optimal
// alignment out of it.
func (s *matchState) positions() (float64, []int) {
	n, m := len(s.needle), len(s.haystack)
	D := make([][]float64, n)
	M := make([][]float64, n)
	cells := make([]float64, 2*n*m)
	for i := range D {
		D[i] = cells[2*i*m : (2*i+1)*m]
		M[i] = cells[(2*i+1)*m : (2*i+2)*m]
	}

	for i := 0; i < n; i++ {
		var lastD, lastM []float64
		if i > 0 {
			lastD, lastM = D[i-1], M[i-1]
		}
		s.scoreRow(i, D[i], M[i], lastD, lastM)
	}

	// Walk backward. Where M[i][j] == D[i][j] the optimum at j comes from
	// a match pinned there rather than from a gap; scanning down from the
	// right edge to the first such cell settles ties on the leftmost
	// alignment. A cell reached through a consecutive run fixes the next
	// position outright, no rescan.
	positions := make([]int, n)
	matchRequired := false
	j := m - 1
	for i := n - 1; i >= 0; i-- {
		for ; j >= 0; j-- {
			if D[i][j] != ScoreMin && (matchRequired || D[i][j] == M[i][j]) {
				matchRequired = i > 0 && j > 0 &&
					D[i][j] == D[i-1][j-1]+ScoreMatchConsecutive
				positions[i] = j
				j--
				break
			}
		}
	}
	return M[n-1][m-1], positions
}
