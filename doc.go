// Package fzmatch provides fuzzy subsequence matching and ranking for
// interactive narrowing tools like file pickers and command palettes.
//
// A query ("needle") matches a candidate ("haystack") when its characters
// appear in the candidate in order, ignoring case. The score of a match is
// the value of the best alignment under a constrained dynamic program with
// hand-tuned constants: consecutive runs earn ScoreMatchConsecutive, matches
// after path separators, word separators, dots, and at camelCase boundaries
// earn the ScoreMatch* bonuses, and skipped characters cost the ScoreGap*
// penalties. An exact full-string match scores ScoreMax (+Inf); a non-match
// scores ScoreMin (-Inf).
//
// # Features
//
//   - HasMatch: O(n) subsequence prefilter, no length cap
//   - Score: optimal-alignment score via a two-row dynamic program
//   - Positions: exact rune indices of one optimal alignment, leftmost on ties
//   - Filter: batch ranking of a candidate list, best first
//   - Matcher: payload-carrying layer with result limits and an LRU query cache
//   - AsyncMatcher / StreamingMatcher: parallel and cancelable matching for
//     large item sets
//
// # Usage
//
// Ranking plain strings:
//
//	for _, m := range fzmatch.Filter("amo", paths) {
//	    fmt.Printf("%s %f %v\n", m.Str, m.Score, m.Positions)
//	}
//
// Palette-style matching with payloads:
//
//	matcher := fzmatch.NewMatcher(fzmatch.DefaultOptions())
//	items := []fzmatch.Item{
//	    {Text: "Open File", Data: cmdOpenFile},
//	    {Text: "Close Buffer", Data: cmdCloseBuffer},
//	}
//	results := matcher.Match("of", items, 10)
//
// # Thread Safety
//
// HasMatch, Score, Positions, and Filter are pure functions. Matcher and the
// async layers are safe for concurrent use.
//
// # Performance
//
// Score and Positions are O(n*m) time and space in the needle and haystack
// rune lengths, with haystacks capped at MaxLen (1024) runes; longer
// candidates degrade to the no-match result rather than erroring. HasMatch
// has no cap and is the cheap reject used before paying for the full
// dynamic program.
package fzmatch
