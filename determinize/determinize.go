// Package determinize implements weighted subset construction (spec.md
// §4.6): rewriting an FST so its transitions are deterministic on input
// label, preserving the transduction. A determinized state is a weighted
// subset {(q, r)} of (original state, residual weight); the successor
// subset for input label x aggregates, over every (q, r) in the current
// subset and every (q, x, y, w, q') transition, the pair (q', r ⊗ w)
// summed by ⊕ per destination. A divisor D is factored out of the
// aggregated per-destination weights so the outgoing transition carries D
// and the successor subset carries the normalized residuals.
//
// Three modes select how output labels are handled (spec.md §4.6):
// Functional assumes the input is already a functional transducer and
// determinizes directly; NonFunctional and Disambiguate fold the output
// label into a Gallic-lifted weight (semiring.ToGallic) so an acceptor-
// style subset construction over input labels alone stays well-defined,
// then unfold (semiring.FromGallic) on materialization.
//
// Implementation is a lazyfst.FstOp2 over a lazyfst.StateTable keyed by
// the weighted subset, per spec.md §4.5/§4.6: expansion is on demand, and
// Determinize forces full materialization for callers that want a static
// result.
//
// Complexity: O(2^|Q|) worst case (subset construction is exponential in
// general), O(|Q|) typical for acyclic, label-disjoint transducers.
package determinize

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/lazyfst"
	"github.com/katalvlaran/gofst/semiring"
)

// Sentinel errors, per spec.md §7.
var (
	// ErrNonFunctionalInput is returned by Functional mode when two
	// transitions leaving the same subset on the same input label
	// disagree on output label, violating the functional-transducer
	// precondition.
	ErrNonFunctionalInput = errors.New("determinize: input is not a functional transducer")
	// ErrUnsupportedSemiring is returned when the weight type (or its
	// Gallic lift, for NonFunctional/Disambiguate) does not implement
	// semiring.WeaklyDivisible.
	ErrUnsupportedSemiring = errors.New("determinize: semiring does not support weak division")
)

// Mode selects how determinize handles non-input-deterministic output
// labels (spec.md §4.6).
type Mode int

// Determinize modes.
const (
	// Functional assumes src is a functional transducer: for any state and
	// input label, at most one output-label/destination class is reachable
	// modulo the subset residual weights. Violations fail fast.
	Functional Mode = iota
	// NonFunctional allows multiple outputs per input by folding the
	// output label into a GallicWeight (Left mode) and factor-weighting
	// it back out on materialization.
	NonFunctional
	// Disambiguate keeps only the cheapest path per input-string
	// equivalence class, via GallicMin's "keep the smaller Base" Plus.
	Disambiguate
)

type subsetElem struct {
	state    fst.StateId
	residual semiring.Weight
}

type subset []subsetElem

func subsetKey(s subset) string {
	var b strings.Builder
	for _, e := range s {
		b.WriteString(strconv.FormatInt(int64(e.state), 10))
		b.WriteByte(':')
		b.WriteString(e.residual.String())
		b.WriteByte(';')
	}
	return b.String()
}

func sortSubset(s subset) {
	sort.Slice(s, func(i, j int) bool { return s[i].state < s[j].state })
}

func plus(a, b semiring.Weight) semiring.Weight {
	w, err := a.Plus(b)
	if err != nil {
		panic(err)
	}
	return w
}

func times(a, b semiring.Weight) semiring.Weight {
	w, err := a.Times(b)
	if err != nil {
		panic(err)
	}
	return w
}

// op is the lazyfst.FstOp2 implementing the weighted subset construction.
type op struct {
	src        fst.Reader
	mode       Mode
	gallicMode semiring.GallicMode
	table      *lazyfst.StateTable[subset]
	zero       semiring.Weight
	lift       bool // true for NonFunctional/Disambiguate

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

// Err returns the first precondition violation encountered while
// expanding states, or nil. Only meaningful after full traversal (e.g.
// via Determinize, which Materializes before checking).
func (o *op) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

func (o *op) liftWeight(olabel fst.Label, w semiring.Weight) semiring.Weight {
	if !o.lift {
		return w
	}
	return semiring.ToGallic(o.gallicMode, int64(olabel), w)
}

func (o *op) unliftWeight(w semiring.Weight) (fst.Label, semiring.Weight) {
	if !o.lift {
		return fst.Epsilon, w
	}
	ol, base := semiring.FromGallic(w.(semiring.GallicWeight))
	return fst.Label(ol), base
}

func (o *op) ComputeStart() (fst.StateId, bool) {
	start := o.src.Start()
	if start == fst.NoStateId {
		return fst.NoStateId, false
	}
	one := o.zero.One()
	if o.lift {
		one = o.liftWeight(fst.Epsilon, o.zero.One())
	}
	id := o.table.FindIdFromRef(subset{{state: start, residual: one}})
	return id, true
}

func (o *op) ComputeTrs(s fst.StateId) fst.Trs {
	trs, _, _ := o.ComputeTrsAndFinalWeight(s)
	return trs
}

func (o *op) ComputeFinalWeight(s fst.StateId) (semiring.Weight, bool) {
	_, w, ok := o.ComputeTrsAndFinalWeight(s)
	return w, ok
}

// ComputeTrsAndFinalWeight expands subset s: groups every outgoing
// transition of every element by input label, aggregates the weighted
// destinations, factors a divisor, and emits one determinized transition
// per distinct input label.
func (o *op) ComputeTrsAndFinalWeight(s fst.StateId) (fst.Trs, semiring.Weight, bool) {
	cur := o.table.FindTuple(s)

	type dest struct {
		olabel fst.Label // only meaningful when !o.lift
		weight semiring.Weight
	}
	byLabel := map[fst.Label]map[fst.StateId]*dest{}
	var labelOrder []fst.Label

	for _, elem := range cur {
		trs := o.src.Trs(elem.state)
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			ew := o.liftWeight(tr.OLabel, tr.Weight)
			contrib := times(elem.residual, ew)

			perDest, ok := byLabel[tr.ILabel]
			if !ok {
				perDest = map[fst.StateId]*dest{}
				byLabel[tr.ILabel] = perDest
				labelOrder = append(labelOrder, tr.ILabel)
			}
			if d, ok := perDest[tr.NextState]; ok {
				if !o.lift && d.olabel != tr.OLabel {
					o.fail(ErrNonFunctionalInput)
					continue
				}
				d.weight = plus(d.weight, contrib)
			} else {
				perDest[tr.NextState] = &dest{olabel: tr.OLabel, weight: contrib}
			}
		}
	}

	sort.Slice(labelOrder, func(i, j int) bool { return labelOrder[i] < labelOrder[j] })

	var outTrs []fst.Tr
	for _, lbl := range labelOrder {
		perDest := byLabel[lbl]
		states := make([]fst.StateId, 0, len(perDest))
		for st := range perDest {
			states = append(states, st)
		}
		sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })

		// Default divisor strategy: the ⊕ of every destination's weight
		// (spec.md §4.6's "default" divisor). In Functional mode every
		// destination must also agree on the output label.
		divisor := perDest[states[0]].weight
		for _, st := range states[1:] {
			divisor = plus(divisor, perDest[st].weight)
			if !o.lift && perDest[st].olabel != perDest[states[0]].olabel {
				o.fail(ErrNonFunctionalInput)
			}
		}

		next := make(subset, 0, len(states))
		for _, st := range states {
			w := perDest[st].weight
			wd, ok := w.(semiring.WeaklyDivisible)
			if !ok {
				o.fail(ErrUnsupportedSemiring)
				continue
			}
			// Solve w = divisor ⊗ residual for residual.
			residual, err := wd.Divide(divisor, semiring.DivideLeft)
			if err != nil {
				o.fail(err)
				continue
			}
			next = append(next, subsetElem{state: st, residual: residual})
		}
		sortSubset(next)
		nextID := o.table.FindIdFromRef(next)

		var olabel fst.Label
		outWeight := divisor
		if !o.lift {
			olabel = perDest[states[0]].olabel
		} else {
			olabel, outWeight = o.unliftWeight(divisor)
		}
		outTrs = append(outTrs, fst.NewTr(lbl, olabel, outWeight, nextID))
	}

	var finalAccum semiring.Weight = o.liftWeight(fst.Epsilon, o.zero)
	hasFinal := false
	for _, elem := range cur {
		if fw, ok := o.src.Final(elem.state); ok {
			lifted := o.liftWeight(fst.Epsilon, fw)
			finalAccum = plus(finalAccum, times(elem.residual, lifted))
			hasFinal = true
		}
	}
	if hasFinal {
		_, finalAccum = o.unliftWeight(finalAccum)
	}

	return fst.NewTrs(outTrs), finalAccum, hasFinal
}

func (o *op) Properties() fst.Properties {
	return fst.IDeterministic
}

var _ lazyfst.FstOp2 = (*op)(nil)

func inferZero(r fst.Reader) (semiring.Weight, bool) {
	for s := fst.StateId(0); int(s) < r.NumStates(); s++ {
		trs := r.Trs(s)
		if trs.Len() > 0 {
			return trs.At(0).Weight.Zero(), true
		}
		if fw, ok := r.Final(s); ok {
			return fw.Zero(), true
		}
	}
	return nil, false
}

// Lazy returns the on-demand lazyfst.LazyFst for src under mode, plus the
// underlying op so callers that traverse only part of the result can
// still inspect op.Err() for a precondition violation seen so far.
func Lazy(src fst.Reader, mode Mode) (*lazyfst.LazyFst, *op) {
	zero, ok := inferZero(src)
	if !ok {
		zero = semiring.TropicalZero
	}
	o := &op{
		src:        src,
		mode:       mode,
		gallicMode: semiring.GallicLeft,
		table:      lazyfst.NewStateTable(subsetKey),
		zero:       zero,
		lift:       mode != Functional,
	}
	if mode == Disambiguate {
		o.gallicMode = semiring.GallicMin
	}
	cache := lazyfst.NewVectorCache()
	return lazyfst.New(o, cache, src.InputSymbols(), src.OutputSymbols()), o
}

// Determinize fully materializes the determinized FST, returning
// ErrNonFunctionalInput / ErrUnsupportedSemiring if a precondition was
// violated anywhere in the reachable subset graph.
func Determinize(src fst.Reader, mode Mode) (*fst.VectorFst, error) {
	lf, o := Lazy(src, mode)
	out := lazyfst.Materialize(lf)
	if err := o.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
