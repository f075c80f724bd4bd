// File: statetable.go
// Role: StateTable[T], the thread-safe bi-map from an algorithm-specific
// state tuple T to a dense StateId, used by determinize (weighted
// subsets), compose (state pairs), replace (stack frames), and
// factor-weight ((state,residual) pairs) to hash-cons identical tuples
// from different call sites onto the same id (spec.md §4.5, §8 scenario 6).

package lazyfst

import (
	"sync"

	"github.com/katalvlaran/gofst/fst"
)

// StateTable maps values of T to dense StateIds by an explicit key
// function (T need not be `comparable`; e.g. a weighted-subset tuple is
// typically a slice, canonicalized to a string key by the caller).
type StateTable[T any] struct {
	mu      sync.Mutex
	keyFn   func(T) string
	byKey   map[string]fst.StateId
	tuples  []T
}

// NewStateTable constructs a StateTable keyed by keyFn.
func NewStateTable[T any](keyFn func(T) string) *StateTable[T] {
	return &StateTable[T]{keyFn: keyFn, byKey: make(map[string]fst.StateId)}
}

// FindIdFromRef returns the id for tuple, inserting it (assigning the next
// dense id) if this is the first time an equal-keyed tuple has been seen.
// Concurrent callers inserting the same tuple observe the same id.
func (t *StateTable[T]) FindIdFromRef(tuple T) fst.StateId {
	key := t.keyFn(tuple)
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.byKey[key]; ok {
		return id
	}
	id := fst.StateId(len(t.tuples))
	t.tuples = append(t.tuples, tuple)
	t.byKey[key] = id
	return id
}

// FindTuple returns the tuple bound to id. Panics if id is out of range,
// mirroring an internal-invariant violation rather than a user error:
// callers only ever pass back ids this table itself issued.
func (t *StateTable[T]) FindTuple(id fst.StateId) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tuples[id]
}

// Len returns the number of distinct tuples hash-consed so far.
func (t *StateTable[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.tuples)
}
