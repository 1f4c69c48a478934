package main

import "testing"

func TestCacheProbeMiss(t *testing.T) {
	cache := newTranspositionCache()
	if _, ok := cache.Probe(42); ok {
		t.Fatalf("empty cache must miss")
	}
	if cache.probes != 1 || cache.hits != 0 {
		t.Fatalf("expected 1 probe 0 hits, got %d/%d", cache.probes, cache.hits)
	}
}

func TestCacheStoreAndHit(t *testing.T) {
	cache := newTranspositionCache()
	cache.Store(42, 1.5)
	got, ok := cache.Probe(42)
	if !ok || got != 1.5 {
		t.Fatalf("expected cached 1.5, got %f (%v)", got, ok)
	}
	if cache.hits != 1 {
		t.Fatalf("expected 1 hit, got %d", cache.hits)
	}
	if cache.Size() != 1 {
		t.Fatalf("expected size 1, got %d", cache.Size())
	}
}

func TestCacheOverwrite(t *testing.T) {
	cache := newTranspositionCache()
	cache.Store(42, 1.5)
	cache.Store(42, -2.0)
	if got, _ := cache.Probe(42); got != -2.0 {
		t.Fatalf("latest store must win, got %f", got)
	}
	if cache.Size() != 1 {
		t.Fatalf("overwrite must not grow the cache")
	}
}

func TestSearchPopulatesCache(t *testing.T) {
	board, history := fullBoard(t)
	cfg := testSearchConfig()
	result, err := AlphaBetaSearch(board, PlayerSouth, cfg, history, nil, CategoryNone)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if result.Stats.CacheSize == 0 {
		t.Fatalf("search should leave entries in its cache")
	}
	if result.Stats.CacheHits > result.Stats.CacheProbes {
		t.Fatalf("hits %d cannot exceed probes %d", result.Stats.CacheHits, result.Stats.CacheProbes)
	}
}
