// Package factorweight implements factor-weight (spec.md §4.16):
// redistributes a string-valued (semiring.GallicWeight) weight across
// newly introduced states to move weight earlier, so a multi-label
// Gallic weight attached to one transition or final weight becomes a
// chain of single-label hops instead.
//
// Parameters: mode, a bitset of FactorFinalWeights/FactorArcWeights
// selecting which weight sites get unwound; a disambiguation label and
// increment flag for the synthetic hops' output label, since they don't
// correspond to any label in the original FST; and a quantization delta
// reserved for callers that also want to dedup near-equal residuals
// (unused by the core algorithm, which only ever shrinks a label list by
// exactly one element per hop).
//
// State tuples are (original_state, pending residual, final_mode) —
// pending carries the not-yet-emitted tail of a label sequence being
// unwound, and final_mode distinguishes unwinding a final weight from
// unwinding an arc weight, since both can be in flight for the same
// original state simultaneously. Hash-consed via a lazyfst.StateTable,
// per spec.md §4.16's "(original_state, residual_weight)" tuple.
package factorweight

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/lazyfst"
	"github.com/katalvlaran/gofst/semiring"
)

// Mode is a bitset selecting which weight sites get factored.
type Mode uint8

// Mode bits.
const (
	FactorFinalWeights Mode = 1 << iota
	FactorArcWeights
)

// Has reports whether m includes bit.
func (m Mode) Has(bit Mode) bool { return m&bit != 0 }

// Options configures Factor.
type Options struct {
	Mode Mode
	// DisambiguateLabel is the output label synthetic (non-consuming)
	// continuation hops carry, since they don't correspond to any label
	// in the source FST.
	DisambiguateLabel fst.Label
	// Increment, when true, offsets DisambiguateLabel by the remaining
	// chain depth at each hop, so parallel factored chains at the same
	// state don't collide on an identical synthetic label.
	Increment bool
	// Delta is reserved for residual-deduplication policies; the core
	// algorithm's hops are exact (always shrink by exactly one label).
	Delta float64
}

// Option mutates an Options value under construction.
type Option func(*Options)

// WithMode sets which weight sites are factored.
func WithMode(m Mode) Option { return func(o *Options) { o.Mode = m } }

// WithDisambiguateLabel sets the synthetic hops' base output label.
func WithDisambiguateLabel(l fst.Label) Option { return func(o *Options) { o.DisambiguateLabel = l } }

// WithIncrement toggles per-depth disambiguation label offsetting.
func WithIncrement(v bool) Option { return func(o *Options) { o.Increment = v } }

// WithDelta sets the quantization tolerance.
func WithDelta(d float64) Option { return func(o *Options) { o.Delta = d } }

func resolve(opts ...Option) Options {
	o := Options{Mode: FactorFinalWeights | FactorArcWeights, DisambiguateLabel: 1}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

type tuple struct {
	state   fst.StateId
	pending semiring.GallicWeight
	final   bool
}

func tupleKey(t tuple) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(int64(t.state), 10))
	b.WriteByte(':')
	b.WriteString(t.pending.String())
	b.WriteByte(':')
	if t.final {
		b.WriteByte('F')
	}
	return b.String()
}

func onePending(mode semiring.GallicMode, base semiring.Weight) semiring.GallicWeight {
	return semiring.ToGallic(mode, 0, base.One())
}

type op struct {
	src   fst.Reader
	o     Options
	mode  semiring.GallicMode
	table *lazyfst.StateTable[tuple]
}

func (op *op) disambiguate(remaining int) fst.Label {
	if !op.o.Increment {
		return op.o.DisambiguateLabel
	}
	return op.o.DisambiguateLabel + fst.Label(remaining)
}

func (op *op) ComputeStart() (fst.StateId, bool) {
	start := op.src.Start()
	if start == fst.NoStateId {
		return fst.NoStateId, false
	}
	base := semiring.Weight(semiring.TropicalOne)
	gw, ok := sampleGallic(op.src)
	if ok {
		op.mode = gw.Mode
		base = gw.Base
	}
	return op.table.FindIdFromRef(tuple{state: start, pending: onePending(op.mode, base), final: false}), true
}

func sampleGallic(r fst.Reader) (semiring.GallicWeight, bool) {
	for s := 0; s < r.NumStates(); s++ {
		trs := r.Trs(fst.StateId(s))
		for i := 0; i < trs.Len(); i++ {
			if gw, ok := trs.At(i).Weight.(semiring.GallicWeight); ok {
				return gw, true
			}
		}
		if fw, ok := r.Final(fst.StateId(s)); ok {
			if gw, ok := fw.(semiring.GallicWeight); ok {
				return gw, true
			}
		}
	}
	return semiring.GallicWeight{}, false
}

func (op *op) ComputeTrs(s fst.StateId) fst.Trs {
	trs, _, _ := op.ComputeTrsAndFinalWeight(s)
	return trs
}

func (op *op) ComputeFinalWeight(s fst.StateId) (semiring.Weight, bool) {
	_, w, ok := op.ComputeTrsAndFinalWeight(s)
	return w, ok
}

func (op *op) ComputeTrsAndFinalWeight(s fst.StateId) (fst.Trs, semiring.Weight, bool) {
	cur := op.table.FindTuple(s)

	if labels := semiring.GallicLabels(cur.pending); len(labels) > 0 {
		first := labels[0]
		rest := labels[1:]
		hop := semiring.GallicWeight{Mode: cur.pending.Mode, Labels: singleLabel(cur.pending.Mode, first), Base: cur.pending.Base}
		if cur.final && len(rest) == 0 {
			return fst.NewTrs(nil), hop, true
		}
		nextPending := semiring.GallicWeight{Mode: cur.pending.Mode, Labels: remainingLabels(cur.pending.Mode, rest), Base: cur.pending.Base.One()}
		nextID := op.table.FindIdFromRef(tuple{state: cur.state, pending: nextPending, final: cur.final})
		tr := fst.NewTr(fst.Epsilon, op.disambiguate(len(rest)), hop, nextID)
		return fst.NewTrs([]fst.Tr{tr}), nil, false
	}

	if cur.final {
		// A final-weight chain with zero labels at creation is handled
		// directly below without ever entering this branch; reaching it
		// would be a construction error, so treat as not-final defensively.
		return fst.NewTrs(nil), nil, false
	}

	var outTrs []fst.Tr
	trs := op.src.Trs(cur.state)
	for i := 0; i < trs.Len(); i++ {
		tr := trs.At(i)
		gw, isGallic := tr.Weight.(semiring.GallicWeight)
		if !op.o.Mode.Has(FactorArcWeights) || !isGallic {
			nextID := op.table.FindIdFromRef(tuple{state: tr.NextState, pending: onePending(op.mode, tr.Weight), final: false})
			outTrs = append(outTrs, fst.NewTr(tr.ILabel, tr.OLabel, tr.Weight, nextID))
			continue
		}
		labels := semiring.GallicLabels(gw)
		if len(labels) <= 1 {
			nextID := op.table.FindIdFromRef(tuple{state: tr.NextState, pending: onePending(op.mode, gw.Base), final: false})
			outTrs = append(outTrs, fst.NewTr(tr.ILabel, tr.OLabel, gw, nextID))
			continue
		}
		first := labels[0]
		rest := labels[1:]
		hop := semiring.GallicWeight{Mode: gw.Mode, Labels: singleLabel(gw.Mode, first), Base: gw.Base}
		nextPending := semiring.GallicWeight{Mode: gw.Mode, Labels: remainingLabels(gw.Mode, rest), Base: gw.Base.One()}
		nextID := op.table.FindIdFromRef(tuple{state: tr.NextState, pending: nextPending, final: false})
		outTrs = append(outTrs, fst.NewTr(tr.ILabel, tr.OLabel, hop, nextID))
	}

	fw, isFinal := op.src.Final(cur.state)
	if !isFinal {
		return fst.NewTrs(outTrs), nil, false
	}
	gw, isGallic := fw.(semiring.GallicWeight)
	if !op.o.Mode.Has(FactorFinalWeights) || !isGallic {
		return fst.NewTrs(outTrs), fw, true
	}
	labels := semiring.GallicLabels(gw)
	if len(labels) <= 1 {
		return fst.NewTrs(outTrs), gw, true
	}
	first := labels[0]
	rest := labels[1:]
	hop := semiring.GallicWeight{Mode: gw.Mode, Labels: singleLabel(gw.Mode, first), Base: gw.Base}
	nextPending := semiring.GallicWeight{Mode: gw.Mode, Labels: remainingLabels(gw.Mode, rest), Base: gw.Base.One()}
	nextID := op.table.FindIdFromRef(tuple{state: cur.state, pending: nextPending, final: true})
	outTrs = append(outTrs, fst.NewTr(fst.Epsilon, op.disambiguate(len(rest)), hop, nextID))
	return fst.NewTrs(outTrs), nil, false
}

func singleLabel(mode semiring.GallicMode, lbl int64) semiring.Weight {
	switch mode {
	case semiring.GallicRight:
		return semiring.NewStringWeightRight(lbl)
	case semiring.GallicRestrict, semiring.GallicMin:
		return semiring.NewStringWeightRestrict(lbl)
	default:
		return semiring.NewStringWeightLeft(lbl)
	}
}

func remainingLabels(mode semiring.GallicMode, rest []int64) semiring.Weight {
	switch mode {
	case semiring.GallicRight:
		return semiring.NewStringWeightRight(rest...)
	case semiring.GallicRestrict, semiring.GallicMin:
		return semiring.NewStringWeightRestrict(rest...)
	default:
		return semiring.NewStringWeightLeft(rest...)
	}
}

func (op *op) Properties() fst.Properties { return 0 }

var _ lazyfst.FstOp2 = (*op)(nil)

// Lazy returns the on-demand lazyfst.LazyFst factoring src under opts.
func Lazy(src fst.Reader, opts ...Option) *lazyfst.LazyFst {
	o := resolve(opts...)
	fo := &op{src: src, o: o, mode: semiring.GallicLeft, table: lazyfst.NewStateTable(tupleKey)}
	cache := lazyfst.NewVectorCache()
	return lazyfst.New(fo, cache, src.InputSymbols(), src.OutputSymbols())
}

// Factor fully materializes the factored FST.
func Factor(src fst.Reader, opts ...Option) *fst.VectorFst {
	return lazyfst.Materialize(Lazy(src, opts...))
}
