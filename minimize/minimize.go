// Package minimize implements partition-refinement minimization (spec.md
// §4.7): given a deterministic, epsilon-free FST, produces an equivalent
// FST with the fewest states.
//
// Policy:
//  1. If the input is not an acceptor, fold it into one via encode
//     (encode_labels|encode_weights), minimize that, then decode back.
//  2. If the input carries epsilon transitions, remove them via rmepsilon
//     first — minimize's refinement only operates over a label-bearing,
//     epsilon-free transition relation.
//  3. Refine an initial partition (states grouped by final-weight class up
//     to quantization δ) by (label, destination-class, weight-class)
//     until no class splits further.
//  4. Rebuild the FST with one representative state per class.
//
// Complexity: O(k * V * E) for k refinement rounds (naive re-partition
// each round, grounded on lvlath/matrix/ops's iterate-to-fixpoint style
// rather than Hopcroft's O(E log V) queue-driven refinement).
package minimize

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/gofst/encode"
	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/rmepsilon"
	"github.com/katalvlaran/gofst/semiring"
)

// ErrNonDeterministic is returned when allow_nondet is false and the
// input has two outgoing transitions from the same state sharing an
// input label (spec.md §4.7 step 4, §7).
var ErrNonDeterministic = errors.New("minimize: input is nondeterministic")

// Options configures Minimize.
type Options struct {
	// AllowNondet, when true, tolerates a nondeterministic input instead
	// of failing; the resulting partition is then a bisimulation
	// approximation rather than a provably-minimal deterministic result.
	AllowNondet bool
	// Delta is the quantization tolerance used to compare weights when
	// building the initial and refined partitions.
	Delta float64
}

// Option mutates an Options value under construction.
type Option func(*Options)

// WithAllowNondet tolerates nondeterministic input instead of failing.
func WithAllowNondet(v bool) Option { return func(o *Options) { o.AllowNondet = v } }

// WithDelta sets the quantization tolerance.
func WithDelta(d float64) Option { return func(o *Options) { o.Delta = d } }

func resolve(opts ...Option) Options {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func quantizeKey(w semiring.Weight, delta float64) string {
	if w == nil {
		return "\x00nonfinal"
	}
	if q, ok := w.(semiring.Quantizable); ok && delta > 0 {
		return q.Quantize(delta).String()
	}
	return w.String()
}

func isDeterministic(r fst.Reader) bool {
	for s := 0; s < r.NumStates(); s++ {
		trs := r.Trs(fst.StateId(s))
		seen := map[fst.Label]bool{}
		for i := 0; i < trs.Len(); i++ {
			lbl := trs.At(i).ILabel
			if seen[lbl] {
				return false
			}
			seen[lbl] = true
		}
	}
	return true
}

func hasEpsilons(r fst.Reader) bool {
	for s := 0; s < r.NumStates(); s++ {
		trs := r.Trs(fst.StateId(s))
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			if tr.ILabel == fst.Epsilon || tr.OLabel == fst.Epsilon {
				return true
			}
		}
	}
	return false
}

// Minimize returns an equivalent FST with the fewest states, per the
// policy above.
func Minimize(src fst.Reader, opts ...Option) (*fst.VectorFst, error) {
	o := resolve(opts...)

	props := fst.ComputeProperties(src)
	if props.Has(fst.NotAcceptor) {
		enc, table := encode.Encode(src, encode.EncodeLabels|encode.EncodeWeights)
		min, err := minimizeAcceptor(enc, o)
		if err != nil {
			return nil, err
		}
		return encode.Decode(min, table), nil
	}
	return minimizeAcceptor(src, o)
}

func minimizeAcceptor(src fst.Reader, o Options) (*fst.VectorFst, error) {
	work := src
	if hasEpsilons(src) {
		work = rmepsilon.RmEpsilon(src)
	}

	if !o.AllowNondet && !isDeterministic(work) {
		return nil, ErrNonDeterministic
	}

	n := work.NumStates()
	out := fst.NewVectorFst()
	if n == 0 {
		return out, nil
	}

	class := make([]int, n)
	initial := map[string]int{}
	for s := 0; s < n; s++ {
		var key string
		if fw, ok := work.Final(fst.StateId(s)); ok {
			key = "F:" + quantizeKey(fw, o.Delta)
		} else {
			key = "NF"
		}
		id, ok := initial[key]
		if !ok {
			id = len(initial)
			initial[key] = id
		}
		class[s] = id
	}

	for {
		changed := false
		next := make([]int, n)
		sigToClass := map[string]int{}
		nextID := 0
		for s := 0; s < n; s++ {
			sig := signature(work, fst.StateId(s), class, o.Delta)
			id, ok := sigToClass[sig]
			if !ok {
				id = nextID
				nextID++
				sigToClass[sig] = id
			}
			next[s] = id
		}
		for s := 0; s < n; s++ {
			if next[s] != class[s] {
				changed = true
				break
			}
		}
		class = next
		if !changed {
			break
		}
	}

	numClasses := 0
	for _, c := range class {
		if c+1 > numClasses {
			numClasses = c + 1
		}
	}
	rep := make([]int, numClasses) // representative original state per class
	seen := make([]bool, numClasses)
	for s := 0; s < n; s++ {
		c := class[s]
		if !seen[c] {
			rep[c] = s
			seen[c] = true
		}
	}

	for i := 0; i < numClasses; i++ {
		out.AddState()
	}
	if work.Start() != fst.NoStateId {
		_ = out.SetStart(fst.StateId(class[work.Start()]))
	}
	for c := 0; c < numClasses; c++ {
		s := fst.StateId(rep[c])
		if fw, ok := work.Final(s); ok {
			_ = out.SetFinal(fst.StateId(c), fw)
		}
		trs := work.Trs(s)
		added := map[fst.Label]bool{}
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			if added[tr.ILabel] {
				continue // collapse duplicate labels from a nondeterministic rep
			}
			added[tr.ILabel] = true
			_ = out.AddTr(fst.StateId(c), fst.NewTr(tr.ILabel, tr.OLabel, tr.Weight, fst.StateId(class[tr.NextState])))
		}
	}

	out.SetInputSymbols(work.InputSymbols())
	out.SetOutputSymbols(work.OutputSymbols())
	out.SetProperties(fst.ComputeProperties(out))
	return out, nil
}

func signature(r fst.Reader, s fst.StateId, class []int, delta float64) string {
	var b strings.Builder
	if fw, ok := r.Final(s); ok {
		b.WriteString("F:")
		b.WriteString(quantizeKey(fw, delta))
	} else {
		b.WriteString("NF")
	}
	b.WriteByte('|')

	trs := r.Trs(s)
	type edge struct {
		label fst.Label
		class int
		w     string
	}
	edges := make([]edge, 0, trs.Len())
	for i := 0; i < trs.Len(); i++ {
		tr := trs.At(i)
		edges = append(edges, edge{label: tr.ILabel, class: class[tr.NextState], w: quantizeKey(tr.Weight, delta)})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].label != edges[j].label {
			return edges[i].label < edges[j].label
		}
		return edges[i].class < edges[j].class
	})
	for _, e := range edges {
		b.WriteString(strconv.FormatInt(int64(e.label), 10))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(e.class))
		b.WriteByte(':')
		b.WriteString(e.w)
		b.WriteByte(';')
	}
	return b.String()
}

