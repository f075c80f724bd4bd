// File: hashcache.go
// Role: the hash-indexed Cache strategy (grounded on original_source's
// simple_hash_map_cache.rs), appropriate when an algorithm's state ids,
// though dense in principle, are sparsely populated during a partial
// expansion (e.g. a caller that only ever visits a handful of states out
// of a StateTable that could in principle grow very large).

package lazyfst

import (
	"sync"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
)

// HashCache is a Cache implementation indexed by map[StateId]*entry,
// trading the VectorCache's O(1) slice indexing for no up-front
// allocation proportional to the largest state id seen.
type HashCache struct {
	startMu    sync.RWMutex
	startKnown bool
	start      fst.StateId

	trsMu sync.RWMutex
	trs   map[fst.StateId]trsEntry

	finalMu sync.RWMutex
	final   map[fst.StateId]finalSlot
}

// finalSlot distinguishes "computed: none" (present, weight nil) from
// "not computed" (absent from the map).
type finalSlot struct {
	weight semiring.Weight
}

// NewHashCache constructs an empty HashCache.
func NewHashCache() *HashCache {
	return &HashCache{
		start: fst.NoStateId,
		trs:   make(map[fst.StateId]trsEntry),
		final: make(map[fst.StateId]finalSlot),
	}
}

func (c *HashCache) GetStart() (fst.StateId, bool) {
	c.startMu.RLock()
	defer c.startMu.RUnlock()
	return c.start, c.startKnown
}

func (c *HashCache) InsertStart(s fst.StateId) {
	c.startMu.Lock()
	defer c.startMu.Unlock()
	c.start = s
	c.startKnown = true
}

func (c *HashCache) GetTrs(s fst.StateId) (fst.Trs, bool) {
	c.trsMu.RLock()
	defer c.trsMu.RUnlock()
	e, ok := c.trs[s]
	if !ok {
		return fst.Trs{}, false
	}
	return e.trs, true
}

func (c *HashCache) InsertTrs(s fst.StateId, trs fst.Trs) {
	c.trsMu.Lock()
	defer c.trsMu.Unlock()
	ni, no := 0, 0
	trs.ForEach(func(i int, tr fst.Tr) {
		if tr.ILabel == fst.Epsilon {
			ni++
		}
		if tr.OLabel == fst.Epsilon {
			no++
		}
	})
	c.trs[s] = trsEntry{trs: trs, niEpsilons: ni, noEpsilons: no}
}

func (c *HashCache) GetFinalWeight(s fst.StateId) (semiring.Weight, bool) {
	c.finalMu.RLock()
	defer c.finalMu.RUnlock()
	slot, ok := c.final[s]
	if !ok {
		return nil, false
	}
	return slot.weight, true
}

func (c *HashCache) InsertFinalWeight(s fst.StateId, w semiring.Weight) {
	c.finalMu.Lock()
	defer c.finalMu.Unlock()
	c.final[s] = finalSlot{weight: w}
}

func (c *HashCache) NumKnownStates() int {
	c.trsMu.RLock()
	c.finalMu.RLock()
	defer c.trsMu.RUnlock()
	defer c.finalMu.RUnlock()
	seen := make(map[fst.StateId]bool, len(c.trs)+len(c.final))
	for s := range c.trs {
		seen[s] = true
	}
	for s := range c.final {
		seen[s] = true
	}
	return len(seen)
}

func (c *HashCache) NumInputEpsilons(s fst.StateId) int {
	c.trsMu.RLock()
	defer c.trsMu.RUnlock()
	return c.trs[s].niEpsilons
}

func (c *HashCache) NumOutputEpsilons(s fst.StateId) int {
	c.trsMu.RLock()
	defer c.trsMu.RUnlock()
	return c.trs[s].noEpsilons
}

var _ Cache = (*HashCache)(nil)
