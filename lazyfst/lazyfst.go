// File: lazyfst.go
// Role: LazyFst, the (Op, Cache, isymt, osymt) container implementing
// fst.Reader by querying the cache and falling back to Op's compute_*
// methods on miss (spec.md §4.5 "Read path").

package lazyfst

import (
	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
)

// LazyFst adapts an FstOp into an fst.Reader, memoizing every answer in
// Cache so repeated traversal (e.g. by two different downstream
// algorithms, or by materialization followed by further queries) never
// recomputes a state.
type LazyFst struct {
	op    FstOp
	cache Cache

	isymt fst.SymbolTableRef
	osymt fst.SymbolTableRef
}

// New constructs a LazyFst over op, caching answers in cache.
func New(op FstOp, cache Cache, isymt, osymt fst.SymbolTableRef) *LazyFst {
	return &LazyFst{op: op, cache: cache, isymt: isymt, osymt: osymt}
}

// Start returns the start state, computing and caching it on first call.
func (l *LazyFst) Start() fst.StateId {
	if s, known := l.cache.GetStart(); known {
		return s
	}
	s, ok := l.op.ComputeStart()
	if !ok {
		s = fst.NoStateId
	}
	l.cache.InsertStart(s)
	return s
}

// Trs returns s's outgoing transitions, computing and caching them (and,
// when op implements FstOp2, s's final weight in the same pass) on miss.
func (l *LazyFst) Trs(s fst.StateId) fst.Trs {
	if trs, known := l.cache.GetTrs(s); known {
		return trs
	}
	if op2, ok := l.op.(FstOp2); ok {
		trs, w, isFinal := op2.ComputeTrsAndFinalWeight(s)
		l.cache.InsertTrs(s, trs)
		if isFinal {
			l.cache.InsertFinalWeight(s, w)
		} else {
			l.cache.InsertFinalWeight(s, nil)
		}
		return trs
	}
	trs := l.op.ComputeTrs(s)
	l.cache.InsertTrs(s, trs)
	return trs
}

// Final returns s's final weight, computing and caching it on miss.
func (l *LazyFst) Final(s fst.StateId) (semiring.Weight, bool) {
	if w, known := l.cache.GetFinalWeight(s); known {
		if w == nil {
			return nil, false
		}
		return w, true
	}
	if op2, ok := l.op.(FstOp2); ok {
		trs, w, isFinal := op2.ComputeTrsAndFinalWeight(s)
		l.cache.InsertTrs(s, trs)
		if isFinal {
			l.cache.InsertFinalWeight(s, w)
			return w, true
		}
		l.cache.InsertFinalWeight(s, nil)
		return nil, false
	}
	w, isFinal := l.op.ComputeFinalWeight(s)
	if isFinal {
		l.cache.InsertFinalWeight(s, w)
		return w, true
	}
	l.cache.InsertFinalWeight(s, nil)
	return nil, false
}

// NumStates forces full expansion via Materialize and returns the
// resulting state count, per fst.Reader's documented contract.
func (l *LazyFst) NumStates() int {
	return Materialize(l).NumStates()
}

// NumKnownStates returns the number of states the cache has touched so
// far, without forcing expansion — the cheap, lazy-friendly alternative
// to NumStates.
func (l *LazyFst) NumKnownStates() int { return l.cache.NumKnownStates() }

// InputSymbols returns the attached input alphabet, or nil.
func (l *LazyFst) InputSymbols() fst.SymbolTableRef { return l.isymt }

// OutputSymbols returns the attached output alphabet, or nil.
func (l *LazyFst) OutputSymbols() fst.SymbolTableRef { return l.osymt }

// Properties returns Op's constant-time-known properties.
func (l *LazyFst) Properties() fst.Properties { return l.op.Properties() }

var _ fst.Reader = (*LazyFst)(nil)
