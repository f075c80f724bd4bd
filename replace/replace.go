// Package replace implements the replace operation (spec.md §4.15):
// given a list of (nonterminal_label, sub_fst) entries and a root
// nonterminal, constructs an FST whose paths are the expansions of the
// root where each nonterminal-labeled transition (ILabel == OLabel ==
// that nonterminal's label) is replaced by the corresponding sub-FST.
//
// States are stacks of (fst_id, state): the top frame is the position
// currently being expanded; a frame below the top records the state to
// resume at once the frame above it finishes. A transition whose label
// matches a table entry pushes a new frame at that sub-FST's start
// state and records the transition's destination as the return state;
// a sub-FST reaching one of its own final states, with more than one
// frame on the stack, pops back to the recorded return state.
//
// epsilon_on_replace controls how the pop step is exposed: true emits it
// as its own explicit epsilon:epsilon transition carrying the popped
// sub-FST's final weight; false elides that extra hop by fusing it
// directly into the resumed frame's next transitions (one level of
// lookahead, bounded — it does not recurse through further pops).
//
// closure/concat/union (spec.md §4.15's table) are thin callers of
// Replace over fst.ClosureSkeletonStar/Plus, fst.ConcatSkeleton, and
// fst.UnionSkeleton.
package replace

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/lazyfst"
	"github.com/katalvlaran/gofst/semiring"
)

// ErrUnknownRoot is returned when root does not appear among entries.
var ErrUnknownRoot = errors.New("replace: root nonterminal has no matching entry")

// Entry binds a nonterminal label to the sub-FST it expands to.
type Entry struct {
	Label fst.Label
	Fst   fst.Reader
}

type frame struct {
	fstLabel fst.Label
	state    fst.StateId
}

type stack []frame

func stackKey(s stack) string {
	var b strings.Builder
	for _, f := range s {
		b.WriteString(strconv.FormatInt(int64(f.fstLabel), 10))
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(int64(f.state), 10))
		b.WriteByte(';')
	}
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
	table            map[fst.Label]fst.Reader
	root             fst.Label
	epsilonOnReplace bool
	stacks           *lazyfst.StateTable[stack]

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
	rootFst, ok := o.table[o.root]
	if !ok {
		o.fail(ErrUnknownRoot)
		return fst.NoStateId, false
	}
	start := rootFst.Start()
	if start == fst.NoStateId {
		return fst.NoStateId, false
	}
	return o.stacks.FindIdFromRef(stack{{fstLabel: o.root, state: start}}), true
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
	cur := o.stacks.FindTuple(s)
	top := cur[len(cur)-1]
	active := o.table[top.fstLabel]

	var outTrs []fst.Tr
	trs := active.Trs(top.state)
	for i := 0; i < trs.Len(); i++ {
		tr := trs.At(i)
		if tr.ILabel == tr.OLabel {
			if sub, isNonterminal := o.table[tr.ILabel]; isNonterminal {
				base := append(append(stack{}, cur[:len(cur)-1]...), frame{fstLabel: top.fstLabel, state: tr.NextState})
				subStart := sub.Start()
				if subStart == fst.NoStateId {
					continue
				}
				pushed := append(append(stack{}, base...), frame{fstLabel: tr.ILabel, state: subStart})
				nextID := o.stacks.FindIdFromRef(pushed)
				outTrs = append(outTrs, fst.NewTr(fst.Epsilon, fst.Epsilon, tr.Weight, nextID))
				continue
			}
		}
		next := append(append(stack{}, cur[:len(cur)-1]...), frame{fstLabel: top.fstLabel, state: tr.NextState})
		nextID := o.stacks.FindIdFromRef(next)
		outTrs = append(outTrs, fst.NewTr(tr.ILabel, tr.OLabel, tr.Weight, nextID))
	}

	fw, isFinal := active.Final(top.state)
	if !isFinal {
		return fst.NewTrs(outTrs), nil, false
	}
	if len(cur) == 1 {
		// True root final: nothing to pop back to.
		return fst.NewTrs(outTrs), fw, true
	}

	popped := cur[:len(cur)-1]
	returned := popped[len(popped)-1]
	if o.epsilonOnReplace {
		nextID := o.stacks.FindIdFromRef(append(stack{}, popped...))
		outTrs = append(outTrs, fst.NewTr(fst.Epsilon, fst.Epsilon, fw, nextID))
		return fst.NewTrs(outTrs), nil, false
	}

	// Elide the bookkeeping hop: fuse directly into the resumed frame's
	// next transitions (one level of lookahead).
	resumedFst := o.table[returned.fstLabel]
	resumedTrs := resumedFst.Trs(returned.state)
	for i := 0; i < resumedTrs.Len(); i++ {
		rtr := resumedTrs.At(i)
		base := popped[:len(popped)-1]
		if rtr.ILabel == rtr.OLabel {
			if sub, isNonterminal := o.table[rtr.ILabel]; isNonterminal {
				frameBelow := append(append(stack{}, base...), frame{fstLabel: returned.fstLabel, state: rtr.NextState})
				subStart := sub.Start()
				if subStart == fst.NoStateId {
					continue
				}
				pushed := append(append(stack{}, frameBelow...), frame{fstLabel: rtr.ILabel, state: subStart})
				nextID := o.stacks.FindIdFromRef(pushed)
				outTrs = append(outTrs, fst.NewTr(fst.Epsilon, fst.Epsilon, times(fw, rtr.Weight), nextID))
				continue
			}
		}
		next := append(append(stack{}, base...), frame{fstLabel: returned.fstLabel, state: rtr.NextState})
		nextID := o.stacks.FindIdFromRef(next)
		outTrs = append(outTrs, fst.NewTr(rtr.ILabel, rtr.OLabel, times(fw, rtr.Weight), nextID))
	}
	if rfw, rok := resumedFst.Final(returned.state); rok {
		if len(popped) == 1 {
			return fst.NewTrs(outTrs), times(fw, rfw), true
		}
	}

	return fst.NewTrs(outTrs), nil, false
}

func (o *op) Properties() fst.Properties {
	return 0
}

var _ lazyfst.FstOp2 = (*op)(nil)

// Lazy returns the on-demand lazyfst.LazyFst for replace(entries, root),
// plus the underlying op for error inspection.
func Lazy(entries []Entry, root fst.Label, epsilonOnReplace bool) (*lazyfst.LazyFst, *op) {
	table := make(map[fst.Label]fst.Reader, len(entries))
	var isymt, osymt fst.SymbolTableRef
	for _, e := range entries {
		table[e.Label] = e.Fst
		if e.Label == root {
			isymt = e.Fst.InputSymbols()
			osymt = e.Fst.OutputSymbols()
		}
	}
	o := &op{
		table:            table,
		root:             root,
		epsilonOnReplace: epsilonOnReplace,
		stacks:           lazyfst.NewStateTable(stackKey),
	}
	cache := lazyfst.NewVectorCache()
	return lazyfst.New(o, cache, isymt, osymt), o
}

// Replace fully materializes the replace expansion of root over entries.
func Replace(entries []Entry, root fst.Label, epsilonOnReplace bool) (*fst.VectorFst, error) {
	lf, o := Lazy(entries, root, epsilonOnReplace)
	out := lazyfst.Materialize(lf)
	if err := o.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// rootSentinel labels the synthetic skeleton entry in Closure/Concat/Union:
// a value outside any realistic alphabet, distinct from fst.NoLabel so
// the two sentinels can never be confused in a stack key.
const rootSentinel fst.Label = fst.NoLabel - 1

// Closure builds the closure(F, star|plus) replace configuration.
func Closure(f fst.Reader, one semiring.Weight, nonterminal fst.Label, plus bool) (*fst.VectorFst, error) {
	var skeleton *fst.VectorFst
	if plus {
		skeleton = fst.ClosureSkeletonPlus(one, nonterminal)
	} else {
		skeleton = fst.ClosureSkeletonStar(one, nonterminal)
	}
	entries := []Entry{{Label: rootSentinel, Fst: skeleton}, {Label: nonterminal, Fst: f}}
	return Replace(entries, rootSentinel, true)
}

// Concat builds the concat(A,B) replace configuration.
func Concat(a, b fst.Reader, one semiring.Weight, ntA, ntB fst.Label) (*fst.VectorFst, error) {
	skeleton := fst.ConcatSkeleton(one, ntA, ntB)
	entries := []Entry{{Label: rootSentinel, Fst: skeleton}, {Label: ntA, Fst: a}, {Label: ntB, Fst: b}}
	return Replace(entries, rootSentinel, true)
}

// Union builds the union(A,B) replace configuration.
func Union(a, b fst.Reader, one semiring.Weight, ntA, ntB fst.Label) (*fst.VectorFst, error) {
	skeleton := fst.UnionSkeleton(one, ntA, ntB)
	entries := []Entry{{Label: rootSentinel, Fst: skeleton}, {Label: ntA, Fst: a}, {Label: ntB, Fst: b}}
	return Replace(entries, rootSentinel, true)
}
