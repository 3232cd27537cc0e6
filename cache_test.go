package fzmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheBasic(t *testing.T) {
	cache := NewCache(10)

	results := []Result{
		{Item: Item{Text: "test"}, Score: 1.5, Positions: []int{0, 1}},
	}
	cache.Set("query", results)

	got := cache.Get("query")
	require.NotNil(t, got)
	require.Len(t, got, 1)
	assert.Equal(t, "test", got[0].Item.Text)
	assert.Equal(t, 1.5, got[0].Score)
	assert.Equal(t, []int{0, 1}, got[0].Positions)

	assert.Nil(t, cache.Get("other"))
}

func TestCacheLRU(t *testing.T) {
	cache := NewCache(3)

	cache.Set("a", []Result{{Item: Item{Text: "a"}}})
	cache.Set("b", []Result{{Item: Item{Text: "b"}}})
	cache.Set("c", []Result{{Item: Item{Text: "c"}}})

	// Touch "a" so "b" becomes the eviction candidate.
	cache.Get("a")

	cache.Set("d", []Result{{Item: Item{Text: "d"}}})

	assert.Nil(t, cache.Get("b"), "least recently used entry should be evicted")
	assert.NotNil(t, cache.Get("a"))
	assert.NotNil(t, cache.Get("c"))
	assert.NotNil(t, cache.Get("d"))
}

func TestCacheOverwrite(t *testing.T) {
	cache := NewCache(10)

	cache.Set("q", []Result{{Item: Item{Text: "old"}}})
	cache.Set("q", []Result{{Item: Item{Text: "new"}}})

	got := cache.Get("q")
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Item.Text)
	assert.Equal(t, 1, cache.Len())
}

func TestCacheDelete(t *testing.T) {
	cache := NewCache(10)

	cache.Set("q", []Result{})
	cache.Delete("q")
	assert.Nil(t, cache.Get("q"))
	assert.Equal(t, 0, cache.Len())

	// Deleting a missing key is a no-op.
	cache.Delete("missing")
}

func TestCacheClear(t *testing.T) {
	cache := NewCache(10)

	cache.Set("a", []Result{})
	cache.Set("b", []Result{})
	cache.Clear()

	assert.Equal(t, 0, cache.Len())
	assert.Nil(t, cache.Get("a"))
}

func TestCacheCopySemantics(t *testing.T) {
	cache := NewCache(10)

	original := []Result{
		{Item: Item{Text: "test"}, Score: 2, Positions: []int{0, 1}},
	}
	cache.Set("query", original)

	// Mutating the stored-from slice must not reach the cache.
	original[0].Score = 999
	original[0].Positions[0] = 99

	got := cache.Get("query")
	require.Len(t, got, 1)
	assert.Equal(t, 2.0, got[0].Score)
	assert.Equal(t, 0, got[0].Positions[0])

	// Nor may mutating a retrieved copy.
	got[0].Positions[0] = 77
	again := cache.Get("query")
	assert.Equal(t, 0, again[0].Positions[0])
}

func TestCacheDefaultSize(t *testing.T) {
	cache := NewCache(0)
	cache.Set("q", []Result{})
	assert.NotNil(t, cache.Get("q"))
}
