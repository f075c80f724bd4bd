// Package lazyfst implements the lazy FST framework (C8): on-demand state
// expansion through a pluggable FstOp, a thread-safe per-slot Cache (C9),
// and StateTable hash-consing for algorithms whose states are keyed by an
// algorithm-specific tuple (determinize's weighted subset, compose's state
// pair, replace's stack frame, factor-weight's (state,residual) pair).
//
// Concurrency mirrors lvlath/core.Graph's split-lock convention: each
// cache slot (start, trs, final) is guarded by its own RWMutex so that
// concurrent readers of different states never contend, and serialize
// only on the slot they share (spec.md §5).
package lazyfst

import (
	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
)

// FstOp is the contract every lazy algorithm implements: how to compute a
// state's start-ness, outgoing transitions, and final weight, plus a
// constant-time Properties known from construction (spec.md §4.5).
type FstOp interface {
	ComputeStart() (fst.StateId, bool)
	ComputeTrs(s fst.StateId) fst.Trs
	ComputeFinalWeight(s fst.StateId) (semiring.Weight, bool)
	Properties() fst.Properties
}

// FstOp2 is implemented by lazy algorithms (e.g. determinize, compose)
// where a single pass naturally produces both the transition list and the
// final weight together; LazyFst prefers ComputeTrsAndFinalWeight when an
// op implements this interface, avoiding a duplicated pass.
type FstOp2 interface {
	FstOp
	ComputeTrsAndFinalWeight(s fst.StateId) (fst.Trs, semiring.Weight, bool)
}
