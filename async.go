package fzmatch

import (
	"container/heap"
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// AsyncMatcher parallelizes matching across item chunks. Each candidate's
// match is independent, so the work fans out across CPU cores and merges
// into the same sorted result a sequential Match would produce.
type AsyncMatcher struct {
	matcher    *Matcher
	numWorkers int
}

// NewAsyncMatcher creates an async matcher over the given base matcher.
// If numWorkers is 0, it defaults to runtime.NumCPU().
// Panics if matcher is nil.
func NewAsyncMatcher(matcher *Matcher, numWorkers int) *AsyncMatcher {
	if matcher == nil {
		panic("fzmatch: NewAsyncMatcher called with nil matcher")
	}
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &AsyncMatcher{
		matcher:    matcher,
		numWorkers: numWorkers,
	}
}

// MatchAsync performs matching asynchronously. It returns a channel that
// receives results in score order (highest first).
//
// The caller MUST either drain the channel completely or call the returned
// cancel function; doing neither leaks the producing goroutine.
func (m *AsyncMatcher) MatchAsync(ctx context.Context, query string, items []Item, limit int) (<-chan Result, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	results := make(chan Result, 100)

	go func() {
		defer close(results)
		for _, r := range m.MatchParallel(ctx, query, items, limit) {
			select {
			case results <- r:
			case <-ctx.Done():
				return
			}
		}
	}()

	return results, cancel
}

// MatchParallel matches in parallel and returns all results at once. Each
// worker keeps a top-k heap when a limit is set, so memory stays bounded on
// large item sets. Cancellation via ctx returns whatever was collected.
func (m *AsyncMatcher) MatchParallel(ctx context.Context, query string, items []Item, limit int) []Result {
	query = normalizeQuery(query)
	if query == "" {
		return m.matcher.emptyQueryResults(items, limit)
	}
	queryRunes := []rune(query)

	chunkSize := chunkFor(len(items), m.numWorkers)

	// Workers keep 2x the limit so the merge still has enough candidates
	// when good matches cluster in one chunk.
	workerLimit := limit
	if workerLimit > 0 {
		workerLimit = limit * 2
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.numWorkers)

	var mu sync.Mutex
	var collected []Result

	for start := 0; start < len(items); start += chunkSize {
		end := min(start+chunkSize, len(items))
		chunk := items[start:end]
		g.Go(func() error {
			local := m.matchChunk(ctx, queryRunes, chunk, workerLimit)
			mu.Lock()
			collected = append(collected, local...)
			mu.Unlock()
			return ctx.Err()
		})
	}
	_ = g.Wait() // the only error is context cancellation

	sortResults(collected)
	return applyLimit(collected, limit)
}

// matchChunk scores one chunk of items, keeping only the k best when k > 0.
func (m *AsyncMatcher) matchChunk(ctx context.Context, queryRunes []rune, chunk []Item, k int) []Result {
	h := &resultHeap{}
	heap.Init(h)
	var all []Result

	for _, item := range chunk {
		select {
		case <-ctx.Done():
			if k > 0 {
				return h.toSlice()
			}
			return all
		default:
		}

		score, positions, ok := matchItem(queryRunes, item.Text)
		if !ok || score < m.matcher.options.MinScore {
			continue
		}
		r := Result{Item: item, Score: score, Positions: positions}
		switch {
		case k <= 0:
			all = append(all, r)
		case h.Len() < k:
			heap.Push(h, r)
		case score > (*h)[0].Score:
			(*h)[0] = r
			heap.Fix(h, 0)
		}
	}

	if k > 0 {
		return h.toSlice()
	}
	return all
}

// chunkFor sizes chunks so small item sets still spread across workers while
// tiny chunks don't drown the work in scheduling overhead.
func chunkFor(numItems, numWorkers int) int {
	chunkSize := (numItems + numWorkers - 1) / numWorkers
	minChunk := 50
	if numItems < 1000 {
		minChunk = 10
	}
	if chunkSize < minChunk {
		chunkSize = minChunk
	}
	return chunkSize
}

// resultHeap is a min-heap of Results by score, for top-k selection.
type resultHeap []Result

func (h resultHeap) Len() int           { return len(h) }
func (h resultHeap) Less(i, j int) bool { return h[i].Score < h[j].Score }
func (h resultHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *resultHeap) Push(x any) {
	*h = append(*h, x.(Result))
}

func (h *resultHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

func (h *resultHeap) toSlice() []Result {
	out := make([]Result, len(*h))
	copy(out, *h)
	return out
}

// StreamingMatcher serves incremental narrowing as the user types: starting
// a new search cancels the previous one.
type StreamingMatcher struct {
	matcher   *AsyncMatcher
	cancel    context.CancelFunc
	mu        sync.Mutex
	lastQuery string
}

// NewStreamingMatcher creates a streaming matcher.
// Panics if matcher is nil.
func NewStreamingMatcher(matcher *Matcher) *StreamingMatcher {
	if matcher == nil {
		panic("fzmatch: NewStreamingMatcher called with nil matcher")
	}
	return &StreamingMatcher{
		matcher: NewAsyncMatcher(matcher, 0),
	}
}

// Search starts a new search, canceling any previous one. Uses
// context.Background internally; use SearchWithContext for a custom context.
func (m *StreamingMatcher) Search(query string, items []Item, limit int) <-chan Result {
	return m.SearchWithContext(context.Background(), query, items, limit)
}

// SearchWithContext starts a new search with a custom context, canceling any
// previous search first.
func (m *StreamingMatcher) SearchWithContext(ctx context.Context, query string, items []Item, limit int) <-chan Result {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	m.lastQuery = query
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.mu.Unlock()

	results, _ := m.matcher.MatchAsync(ctx, query, items, limit)
	return results
}

// Cancel stops the current search.
func (m *StreamingMatcher) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// LastQuery returns the most recent query string.
func (m *StreamingMatcher) LastQuery() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastQuery
}
