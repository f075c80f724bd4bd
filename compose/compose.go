// Package compose implements FST composition (spec.md §4.9): for A
// (alphabets I, K) and B (alphabets K, O), compose(A, B) has states in
// Q_A × Q_B × FilterState. A transition ((p, r, f), x, z, w_a ⊗ w_b, (p′,
// r′, f′)) exists iff there are transitions (p, x, k, w_a, p′) ∈ A and
// (r, k, z, w_b, r′) ∈ B accepted by the epsilon filter f.
//
// Three kinds of composed transition are generated per visited pair
// state (p, r):
//
//  1. a real match: A has (p, x, k, w_a, p′) with k != ε and B has
//     (r, k, z, w_b, r′) with the same k — always accepted, resets the
//     filter to its neutral state.
//  2. an A-only ε move: A has (p, x, ε, w_a, p′) — B stays at r; accepted
//     only when the filter isn't currently restricted to B-only moves.
//  3. a B-only ε move: B has (r, ε, z, w_b, r′) — A stays at p; accepted
//     only when the filter isn't currently restricted to A-only moves.
//
// Without (2)/(3) bookkeeping, an ε:ε pair straddling both sides could be
// processed in two different interleavings, producing duplicate paths of
// the same weight; the filter picks one canonical interleaving.
//
// Implemented as a lazyfst.FstOp2 over a lazyfst.StateTable keyed by the
// state-pair-plus-filter tuple; Compose forces full materialization.
package compose

import (
	"strconv"
	"strings"
	"sync"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/lazyfst"
	"github.com/katalvlaran/gofst/semiring"
)

// Filter selects the epsilon-matching discipline (spec.md §4.9).
type Filter int

// Filter kinds.
const (
	// Auto picks Sequence when either input carries epsilon transitions
	// on the matching axis, else Null.
	Auto Filter = iota
	// Null performs no epsilon bookkeeping at all: callers must guarantee
	// both inputs are epsilon-free on the matching axis.
	Null
	// Trivial allows both A-only and B-only epsilon moves unconditionally,
	// which can produce redundant same-weight paths for epsilon cycles —
	// "trivial" names the lack of redundancy avoidance, not an error.
	Trivial
	// Sequence is the canonical 3-state filter: once an A-only move has
	// been taken, a B-only move is disallowed until a real match resets
	// the filter, and vice versa.
	Sequence
	// AltSequence is Sequence with the two epsilon kinds' priority swapped.
	AltSequence
	// Match behaves like Trivial (kept distinct for callers that reason
	// about composition in Mohri's filter vocabulary).
	Match
	// NoMatch disables epsilon moves (2) and (3) entirely: only real
	// matches are composed.
	NoMatch
)

func hasEpsilonOnAxis(r fst.Reader, olabelSide bool) bool {
	for s := 0; s < r.NumStates(); s++ {
		trs := r.Trs(fst.StateId(s))
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			lbl := tr.ILabel
			if olabelSide {
				lbl = tr.OLabel
			}
			if lbl == fst.Epsilon {
				return true
			}
		}
	}
	return false
}

func resolveFilter(f Filter, a, b fst.Reader) Filter {
	if f != Auto {
		return f
	}
	if hasEpsilonOnAxis(a, true) || hasEpsilonOnAxis(b, false) {
		return Sequence
	}
	return Null
}

// filter state values used by Sequence/AltSequence.
const (
	fNeutral = 0
	fAOnly   = 1
	fBOnly   = 2
)

func allowAEps(kind Filter, f int) (bool, int) {
	switch kind {
	case Null, NoMatch:
		return false, f
	case Sequence:
		if f == fBOnly {
			return false, f
		}
		return true, fAOnly
	case AltSequence:
		if f == fAOnly {
			return false, f
		}
		return true, fBOnly
	default: // Trivial, Match
		return true, fNeutral
	}
}

func allowBEps(kind Filter, f int) (bool, int) {
	switch kind {
	case Null, NoMatch:
		return false, f
	case Sequence:
		if f == fAOnly {
			return false, f
		}
		return true, fBOnly
	case AltSequence:
		if f == fBOnly {
			return false, f
		}
		return true, fAOnly
	default: // Trivial, Match
		return true, fNeutral
	}
}

type pairState struct {
	a, b fst.StateId
	f    int
}

func pairKey(p pairState) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(int64(p.a), 10))
	b.WriteByte(',')
	b.WriteString(strconv.FormatInt(int64(p.b), 10))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(p.f))
	return b.String()
}

func times(a, bw semiring.Weight) semiring.Weight {
	w, err := a.Times(bw)
	if err != nil {
		panic(err)
	}
	return w
}

type op struct {
	a, b   fst.Reader
	filter Filter
	table  *lazyfst.StateTable[pairState]

	mu  sync.Mutex
	err error
}

func (o *op) fail(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err == nil {
		o.err = err
	}
}

// Err returns the first error seen while expanding states, if any.
func (o *op) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

func (o *op) ComputeStart() (fst.StateId, bool) {
	sa, sb := o.a.Start(), o.b.Start()
	if sa == fst.NoStateId || sb == fst.NoStateId {
		return fst.NoStateId, false
	}
	return o.table.FindIdFromRef(pairState{a: sa, b: sb, f: fNeutral}), true
}

func (o *op) ComputeTrs(s fst.StateId) fst.Trs {
	trs, _, _ := o.ComputeTrsAndFinalWeight(s)
	return trs
}

func (o *op) ComputeFinalWeight(s fst.StateId) (semiring.Weight, bool) {
	_, w, ok := o.ComputeTrsAndFinalWeight(s)
	return w, ok
}

func (o *op) ComputeTrsAndFinalWeight(s fst.StateId) (fst.Trs, semiring.Weight, bool) {
	cur := o.table.FindTuple(s)

	var outTrs []fst.Tr

	trsA := o.a.Trs(cur.a)
	trsB := o.b.Trs(cur.b)

	byLabelB := map[fst.Label][]int{}
	for i := 0; i < trsB.Len(); i++ {
		tr := trsB.At(i)
		if tr.ILabel == fst.Epsilon {
			continue
		}
		byLabelB[tr.ILabel] = append(byLabelB[tr.ILabel], i)
	}

	for i := 0; i < trsA.Len(); i++ {
		trA := trsA.At(i)
		if trA.OLabel == fst.Epsilon {
			continue
		}
		for _, j := range byLabelB[trA.OLabel] {
			trB := trsB.At(j)
			next := pairState{a: trA.NextState, b: trB.NextState, f: fNeutral}
			nextID := o.table.FindIdFromRef(next)
			outTrs = append(outTrs, fst.NewTr(trA.ILabel, trB.OLabel, times(trA.Weight, trB.Weight), nextID))
		}
	}

	for i := 0; i < trsA.Len(); i++ {
		trA := trsA.At(i)
		if trA.OLabel != fst.Epsilon {
			continue
		}
		ok, nextF := allowAEps(o.filter, cur.f)
		if !ok {
			continue
		}
		next := pairState{a: trA.NextState, b: cur.b, f: nextF}
		nextID := o.table.FindIdFromRef(next)
		outTrs = append(outTrs, fst.NewTr(trA.ILabel, fst.Epsilon, trA.Weight, nextID))
	}

	for i := 0; i < trsB.Len(); i++ {
		trB := trsB.At(i)
		if trB.ILabel != fst.Epsilon {
			continue
		}
		ok, nextF := allowBEps(o.filter, cur.f)
		if !ok {
			continue
		}
		next := pairState{a: cur.a, b: trB.NextState, f: nextF}
		nextID := o.table.FindIdFromRef(next)
		outTrs = append(outTrs, fst.NewTr(fst.Epsilon, trB.OLabel, trB.Weight, nextID))
	}

	fwA, okA := o.a.Final(cur.a)
	fwB, okB := o.b.Final(cur.b)
	if okA && okB {
		return fst.NewTrs(outTrs), times(fwA, fwB), true
	}
	return fst.NewTrs(outTrs), nil, false
}

func (o *op) Properties() fst.Properties {
	return 0
}

var _ lazyfst.FstOp2 = (*op)(nil)

// Lazy returns the on-demand lazyfst.LazyFst for compose(a, b) under
// filter, plus the underlying op for error inspection.
func Lazy(a, b fst.Reader, filter Filter) (*lazyfst.LazyFst, *op) {
	kind := resolveFilter(filter, a, b)
	o := &op{
		a:      a,
		b:      b,
		filter: kind,
		table:  lazyfst.NewStateTable(pairKey),
	}
	cache := lazyfst.NewVectorCache()
	return lazyfst.New(o, cache, a.InputSymbols(), b.OutputSymbols()), o
}

// Compose fully materializes compose(a, b) under filter.
func Compose(a, b fst.Reader, filter Filter) (*fst.VectorFst, error) {
	lf, o := Lazy(a, b, filter)
	out := lazyfst.Materialize(lf)
	if err := o.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
