// File: cache.go
// Role: the Cache contract (C9) and its vector-indexed implementation.
// Each field (start, trs, final) is guarded by its own RWMutex, so
// get_trs(q) issued after insert_trs(q,v) in the same goroutine observes
// v, and a successful insert is visible to get calls on any goroutine
// thereafter (release/acquire), per spec.md §5.

package lazyfst

import (
	"sync"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
)

// Cache is the thread-safe memoization contract a LazyFst reads through.
// Every getter returns (value, known): known==false means "not computed
// yet"; known==true with a zero value (NoStateId / nil weight) means
// "computed: none".
type Cache interface {
	GetStart() (fst.StateId, bool)
	InsertStart(s fst.StateId)

	GetTrs(s fst.StateId) (fst.Trs, bool)
	InsertTrs(s fst.StateId, trs fst.Trs)

	GetFinalWeight(s fst.StateId) (semiring.Weight, bool)
	InsertFinalWeight(s fst.StateId, w semiring.Weight)

	NumKnownStates() int
	NumInputEpsilons(s fst.StateId) int
	NumOutputEpsilons(s fst.StateId) int
}

// trsEntry additionally records the epsilon counts for O(1) queries,
// mirroring VectorFst's cached niEpsilons/noEpsilons.
type trsEntry struct {
	trs        fst.Trs
	niEpsilons int
	noEpsilons int
}

// VectorCache is a Cache implementation indexed by a growable slice,
// appropriate when states are assigned small dense ids (the common case,
// since every lazy algorithm here sources its ids from a StateTable).
// Mirrors lvlath/core.Graph's per-resource RWMutex split: one lock per
// cache slot rather than one global lock, so readers of different states
// never contend.
type VectorCache struct {
	startMu      sync.RWMutex
	startKnown   bool
	start        fst.StateId

	trsMu    sync.RWMutex
	trsKnown []bool
	trs      []trsEntry

	finalMu    sync.RWMutex
	finalKnown []bool
	final      []semiring.Weight
}

// NewVectorCache constructs an empty VectorCache.
func NewVectorCache() *VectorCache {
	return &VectorCache{start: fst.NoStateId}
}

// GetStart returns the cached start state, if computed.
func (c *VectorCache) GetStart() (fst.StateId, bool) {
	c.startMu.RLock()
	defer c.startMu.RUnlock()
	return c.start, c.startKnown
}

// InsertStart memoizes the start state.
func (c *VectorCache) InsertStart(s fst.StateId) {
	c.startMu.Lock()
	defer c.startMu.Unlock()
	c.start = s
	c.startKnown = true
}

func (c *VectorCache) ensureLen(n int) {
	for len(c.trsKnown) < n {
		c.trsKnown = append(c.trsKnown, false)
		c.trs = append(c.trs, trsEntry{})
	}
	for len(c.finalKnown) < n {
		c.finalKnown = append(c.finalKnown, false)
		c.final = append(c.final, nil)
	}
}

// GetTrs returns the cached transitions for s, if computed.
func (c *VectorCache) GetTrs(s fst.StateId) (fst.Trs, bool) {
	c.trsMu.RLock()
	defer c.trsMu.RUnlock()
	if int(s) >= len(c.trsKnown) || !c.trsKnown[s] {
		return fst.Trs{}, false
	}
	return c.trs[s].trs, true
}

// InsertTrs memoizes s's transitions and its epsilon counts.
func (c *VectorCache) InsertTrs(s fst.StateId, trs fst.Trs) {
	c.trsMu.Lock()
	defer c.trsMu.Unlock()
	c.ensureLen(int(s) + 1)
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
	c.trsKnown[s] = true
}

// GetFinalWeight returns the cached final weight for s, if computed.
// A computed nil means "computed: not final".
func (c *VectorCache) GetFinalWeight(s fst.StateId) (semiring.Weight, bool) {
	c.finalMu.RLock()
	defer c.finalMu.RUnlock()
	if int(s) >= len(c.finalKnown) || !c.finalKnown[s] {
		return nil, false
	}
	return c.final[s], true
}

// InsertFinalWeight memoizes s's final weight (nil means non-final).
func (c *VectorCache) InsertFinalWeight(s fst.StateId, w semiring.Weight) {
	c.finalMu.Lock()
	defer c.finalMu.Unlock()
	c.ensureLen(int(s) + 1)
	c.final[s] = w
	c.finalKnown[s] = true
}

// NumKnownStates returns the number of distinct states that have had
// either their transitions or final weight computed so far.
func (c *VectorCache) NumKnownStates() int {
	c.trsMu.RLock()
	c.finalMu.RLock()
	defer c.trsMu.RUnlock()
	defer c.finalMu.RUnlock()
	n := 0
	for i := 0; i < len(c.trsKnown) || i < len(c.finalKnown); i++ {
		if (i < len(c.trsKnown) && c.trsKnown[i]) || (i < len(c.finalKnown) && c.finalKnown[i]) {
			n++
		}
	}
	return n
}

// NumInputEpsilons answers from the cached Trs entry without rescanning.
func (c *VectorCache) NumInputEpsilons(s fst.StateId) int {
	c.trsMu.RLock()
	defer c.trsMu.RUnlock()
	if int(s) >= len(c.trsKnown) || !c.trsKnown[s] {
		return 0
	}
	return c.trs[s].niEpsilons
}

// NumOutputEpsilons answers from the cached Trs entry without rescanning.
func (c *VectorCache) NumOutputEpsilons(s fst.StateId) int {
	c.trsMu.RLock()
	defer c.trsMu.RUnlock()
	if int(s) >= len(c.trsKnown) || !c.trsKnown[s] {
		return 0
	}
	return c.trs[s].noEpsilons
}

var _ Cache = (*VectorCache)(nil)
