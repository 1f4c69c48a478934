package main

// TranspositionCache maps a position fingerprint to a previously computed
// backed-up value. Entries are not depth-qualified: a value cached at any
// depth is reused at any other, a deliberate lightweight approximation. The
// cache is scoped to a single top-level search invocation and never shared
// across calls, so no locking is needed and no eviction runs; it grows
// unbounded for the duration of one search. Only nodes searched to
// completion store a value; cut nodes do not, so every entry is exact for
// the beam-limited tree it was computed in.
type TranspositionCache struct {
	entries map[uint64]float64
	probes  int
	hits    int
	stores  int
}

func newTranspositionCache() *TranspositionCache {
	return &TranspositionCache{entries: make(map[uint64]float64)}
}

func (c *TranspositionCache) Probe(key uint64) (float64, bool) {
	c.probes++
	value, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return value, ok
}

func (c *TranspositionCache) Store(key uint64, value float64) {
	c.stores++
	c.entries[key] = value
}

func (c *TranspositionCache) Size() int {
	return len(c.entries)
}
