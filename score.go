package fzmatch

import (
	"math"
	"unicode"
)

// Scoring constants. These are part of the observable contract: callers that
// depend on specific numeric scores (for thresholds, serialization, or
// cross-tool compatibility) rely on these exact values.
const (
	// ScoreGapLeading is the per-character cost of haystack characters
	// skipped before the first match.
	ScoreGapLeading = -0.005

	// ScoreGapTrailing is the per-character cost of haystack characters
	// skipped after the last match.
	ScoreGapTrailing = -0.005

	// ScoreGapInner is the per-character cost of haystack characters
	// skipped between two matched needle characters. Inner gaps cost more
	// than leading or trailing ones.
	ScoreGapInner = -0.01

	// ScoreMatchConsecutive is the bonus for extending a run of adjacent
	// matches. It is larger than any boundary bonus so that consecutive
	// runs win over scattered boundary matches.
	ScoreMatchConsecutive = 1.0

	// Boundary bonuses, by the character preceding the match position.
	ScoreMatchSlash   = 0.9 // after '/'
	ScoreMatchWord    = 0.8 // after '-', '_' or space
	ScoreMatchCapital = 0.7 // uppercase after lowercase or digit
	ScoreMatchDot     = 0.6 // after '.'
)

// MaxLen is the maximum haystack length (in runes) that participates in
// scoring and position reconstruction. Longer haystacks score ScoreMin and
// yield no positions; HasMatch is not subject to this cap.
const MaxLen = 1024

var (
	// ScoreMin is the score of a non-match. It is a true -Inf so that any
	// finite score orders above it.
	ScoreMin = math.Inf(-1)

	// ScoreMax is the score of an exact (case-insensitive) full-string
	// match. It is a true +Inf so that exact matches order above any
	// finite score.
	ScoreMax = math.Inf(1)
)

// matchBonus returns the boundary bonus earned by matching cur when it is
// immediately preceded by prev in the haystack. Matching is case-insensitive
// but the camelCase rule inspects original case, so callers must pass
// unlowered runes. Digits classify like lowercase letters: they can open a
// camelCase boundary but never close one.
func matchBonus(prev, cur rune) float64 {
	switch prev {
	case '/':
		return ScoreMatchSlash
	case '-', '_', ' ':
		return ScoreMatchWord
	case '.':
		return ScoreMatchDot
	}
	if (unicode.IsLower(prev) || unicode.IsDigit(prev)) && unicode.IsUpper(cur) {
		return ScoreMatchCapital
	}
	return 0
}

// lowerRune lowercases a rune with a fast path for ASCII, which dominates
// real candidate sets (paths, identifiers, command names).
func lowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	if r > unicode.MaxASCII {
		return unicode.ToLower(r)
	}
	return r
}
