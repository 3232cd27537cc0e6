package fzmatch

import (
	"sort"
	"strings"
)

// Item represents a searchable item.
type Item struct {
	// Text is the string to match against.
	Text string

	// Data is arbitrary data associated with this item.
	Data any
}

// Result represents a match result with scoring information.
type Result struct {
	// Item is the matched item.
	Item Item

	// Score is the match score (higher is better).
	Score float64

	// Positions contains the rune indices of matched characters.
	Positions []int
}

// Options configures matcher behavior.
type Options struct {
	// CacheSize is the maximum number of cached query results.
	// Set to 0 to disable caching.
	CacheSize int

	// MinScore is the minimum score for a match to be included.
	// Default is ScoreMin (include every match).
	MinScore float64
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		CacheSize: 1000,
		MinScore:  ScoreMin,
	}
}

// Matcher ranks items for interactive pickers. Unlike the plain Filter
// function it carries a payload per candidate, applies result limits and a
// score floor, and memoizes repeated queries.
//
// The cache is keyed by query alone: when the item set changes between
// calls, call ClearCache.
type Matcher struct {
	cache   *Cache
	options Options
}

// NewMatcher creates a new matcher with the given options.
func NewMatcher(opts Options) *Matcher {
	var cache *Cache
	if opts.CacheSize > 0 {
		cache = NewCache(opts.CacheSize)
	}
	return &Matcher{
		cache:   cache,
		options: opts,
	}
}

// Match finds items matching the query and returns results sorted by score.
// At most limit results are returned; limit <= 0 means no limit.
func (m *Matcher) Match(query string, items []Item, limit int) []Result {
	query = normalizeQuery(query)

	// Empty query returns the first items with zero score.
	if query == "" {
		return m.emptyQueryResults(items, limit)
	}

	if m.cache != nil {
		if cached := m.cache.Get(query); cached != nil {
			return applyLimit(cached, limit)
		}
	}

	queryRunes := []rune(query)
	results := make([]Result, 0, len(items))
	for _, item := range items {
		score, positions, ok := matchItem(queryRunes, item.Text)
		if ok && score >= m.options.MinScore {
			results = append(results, Result{
				Item:      item,
				Score:     score,
				Positions: positions,
			})
		}
	}

	sortResults(results)

	if m.cache != nil {
		m.cache.Set(query, results)
	}
	return applyLimit(results, limit)
}

// MatchWithHighlight matches items and returns results with highlighted text.
// The highlight function receives each result's text and matched positions;
// rendering is entirely the caller's concern.
func (m *Matcher) MatchWithHighlight(query string, items []Item, limit int, highlight func(text string, positions []int) string) []struct {
	Result
	Highlighted string
} {
	results := m.Match(query, items, limit)

	highlighted := make([]struct {
		Result
		Highlighted string
	}, len(results))

	for i, r := range results {
		highlighted[i].Result = r
		highlighted[i].Highlighted = highlight(r.Item.Text, r.Positions)
	}
	return highlighted
}

// ClearCache clears the result cache.
func (m *Matcher) ClearCache() {
	if m.cache != nil {
		m.cache.Clear()
	}
}

// matchItem scores a single item against the query. ok is false when the
// query is not a subsequence of the text; over-length texts still match but
// score ScoreMin with nil positions.
func matchItem(queryRunes []rune, text string) (score float64, positions []int, ok bool) {
	textRunes := []rune(text)
	if !hasMatchRunes(queryRunes, textRunes) {
		return ScoreMin, nil, false
	}
	score, positions = matchRunes(queryRunes, textRunes)
	return score, positions, true
}

// emptyQueryResults returns results for an empty query.
func (m *Matcher) emptyQueryResults(items []Item, limit int) []Result {
	count := len(items)
	if limit > 0 && limit < count {
		count = limit
	}

	results := make([]Result, count)
	for i := 0; i < count; i++ {
		results[i] = Result{
			Item:      items[i],
			Positions: []int{},
		}
	}
	return results
}

// sortResults orders by score descending, then by text for deterministic
// ordering across runs.
func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Item.Text < results[j].Item.Text
	})
}

// applyLimit returns at most limit results.
func applyLimit(results []Result, limit int) []Result {
	if limit <= 0 || limit >= len(results) {
		return results
	}
	return results[:limit]
}

// normalizeQuery folds and trims a query so equivalent inputs share one
// cache entry. Matching itself is case-insensitive either way.
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
