package fzmatch

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestAsyncMatcherBasic(t *testing.T) {
	defer goleak.VerifyNone(t)

	matcher := NewMatcher(DefaultOptions())
	async := NewAsyncMatcher(matcher, 2)

	items := benchmarkItems(1000)

	results := async.MatchParallel(context.Background(), "file1", items, 10)
	require.Len(t, results, 10)

	found := false
	for _, r := range results {
		if r.Item.Text == "src/pkg/component/file1.go" {
			found = true
		}
	}
	assert.True(t, found, "best candidate missing from top results")

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestAsyncMatcherMatchesSequential(t *testing.T) {
	defer goleak.VerifyNone(t)

	opts := DefaultOptions()
	opts.CacheSize = 0
	matcher := NewMatcher(opts)
	async := NewAsyncMatcher(matcher, 4)

	items := benchmarkItems(500)

	sequential := matcher.Match("file123", items, 10)
	parallel := async.MatchParallel(context.Background(), "file123", items, 10)

	assert.Equal(t, sequential, parallel)
}

func TestAsyncMatcherNoLimit(t *testing.T) {
	defer goleak.VerifyNone(t)

	matcher := NewMatcher(DefaultOptions())
	async := NewAsyncMatcher(matcher, 2)

	items := benchmarkItems(200)
	results := async.MatchParallel(context.Background(), "file", items, 0)
	assert.Len(t, results, 200)
}

func TestAsyncMatcherEmptyQuery(t *testing.T) {
	defer goleak.VerifyNone(t)

	matcher := NewMatcher(DefaultOptions())
	async := NewAsyncMatcher(matcher, 2)

	items := benchmarkItems(20)
	results := async.MatchParallel(context.Background(), "", items, 5)
	require.Len(t, results, 5)
	for _, r := range results {
		assert.Zero(t, r.Score)
	}
}

func TestAsyncMatcherNilMatcherPanics(t *testing.T) {
	assert.Panics(t, func() { NewAsyncMatcher(nil, 0) })
	assert.Panics(t, func() { NewStreamingMatcher(nil) })
}

func TestMatchAsyncDrain(t *testing.T) {
	defer goleak.VerifyNone(t)

	matcher := NewMatcher(DefaultOptions())
	async := NewAsyncMatcher(matcher, 2)

	items := benchmarkItems(1000)
	results, cancel := async.MatchAsync(context.Background(), "file42", items, 10)
	defer cancel()

	var collected []Result
	for r := range results {
		collected = append(collected, r)
	}

	require.NotEmpty(t, collected)
	for i := 1; i < len(collected); i++ {
		assert.GreaterOrEqual(t, collected[i-1].Score, collected[i].Score,
			"results must arrive in score order")
	}
}

func TestMatchAsyncCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	matcher := NewMatcher(DefaultOptions())
	async := NewAsyncMatcher(matcher, 2)

	items := benchmarkItems(100000)
	results, cancel := async.MatchAsync(context.Background(), "file", items, 1000)
	cancel()

	// The producer must wind down without the channel being drained.
	deadline := time.After(2 * time.Second)
	count := 0
loop:
	for {
		select {
		case _, ok := <-results:
			if !ok {
				break loop
			}
			count++
		case <-deadline:
			t.Fatal("results channel never closed after cancel")
		}
	}
	t.Logf("received %d results before cancellation", count)
}

func TestStreamingMatcher(t *testing.T) {
	defer goleak.VerifyNone(t)

	matcher := NewMatcher(DefaultOptions())
	streaming := NewStreamingMatcher(matcher)
	defer streaming.Cancel()

	items := []Item{
		{Text: "main.go"},
		{Text: "handler.go"},
	}

	results := streaming.Search("main", items, 10)

	count := 0
	for range results {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestStreamingMatcherCancelPrevious(t *testing.T) {
	defer goleak.VerifyNone(t)

	matcher := NewMatcher(DefaultOptions())
	streaming := NewStreamingMatcher(matcher)
	defer streaming.Cancel()

	items := benchmarkItems(10000)

	// The first search is abandoned, not drained; starting the second
	// must cancel it.
	first := streaming.Search("file1", items, 100)
	second := streaming.Search("file2", items, 10)

	for range second {
	}
	drainWithin(t, first, 2*time.Second)

	assert.Equal(t, "file2", streaming.LastQuery())
}

// drainWithin consumes a result channel until close, failing the test if it
// does not close in time.
func drainWithin(t *testing.T, ch <-chan Result, timeout time.Duration) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel never closed")
		}
	}
}

func TestChunkFor(t *testing.T) {
	tests := []struct {
		items   int
		workers int
		want    int
	}{
		{10000, 4, 2500},
		{100, 4, 25},
		{20, 4, 10},  // small sets keep a 10-item floor
		{4000, 4, 1000},
		{1200, 100, 50}, // large sets keep a 50-item floor
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%d", tt.items, tt.workers), func(t *testing.T) {
			assert.Equal(t, tt.want, chunkFor(tt.items, tt.workers))
		})
	}
}

func BenchmarkMatchParallel(b *testing.B) {
	matcher := NewMatcher(Options{MinScore: ScoreMin})
	async := NewAsyncMatcher(matcher, 0)
	items := benchmarkItems(10000)

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		async.MatchParallel(ctx, "file123", items, 10)
	}
}
