// Package path implements path enumeration (spec.md §4.5 materialization,
// §4.10): walking an FST's accepted paths as (input-label-sequence,
// output-label-sequence, weight) triples.
//
// Enumeration is iterative and lazy: Iterator holds an explicit DFS stack
// instead of recursing, so a caller can pull the first few paths of a
// large or even cyclic FST (e.g. the output of shortestpath.ShortestPath,
// or a replace expansion with a closure cycle) without the walk itself
// ever materializing more of the FST than the caller actually asks for.
package path

import (
	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
	"github.com/katalvlaran/gofst/symtab"
)

func times(a, b semiring.Weight) semiring.Weight {
	w, err := a.Times(b)
	if err != nil {
		panic(err)
	}
	return w
}

// StringPath is one accepted path: its input and output label sequences
// (epsilons omitted, matching how shortestpath's reconstructed chains and
// fstio's text format both treat epsilon as "no symbol") and its total
// ⊗-accumulated weight, including the final weight.
type StringPath struct {
	ILabels []fst.Label
	OLabels []fst.Label
	Weight  semiring.Weight
}

// InputString renders ILabels through st, space-separated.
func (p StringPath) InputString(st *symtab.SymbolTable) (string, error) {
	return renderLabels(p.ILabels, st)
}

// OutputString renders OLabels through st, space-separated.
func (p StringPath) OutputString(st *symtab.SymbolTable) (string, error) {
	return renderLabels(p.OLabels, st)
}

func renderLabels(labels []fst.Label, st *symtab.SymbolTable) (string, error) {
	out := make([]byte, 0, len(labels)*4)
	for i, l := range labels {
		sym, err := st.Symbol(int64(l))
		if err != nil {
			return "", err
		}
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, sym...)
	}
	return string(out), nil
}

type frame struct {
	state   fst.StateId
	ilabels []fst.Label
	olabels []fst.Label
	weight  semiring.Weight
}

// Iterator walks r's accepted paths one at a time via an explicit stack,
// so a caller controls exactly how much of r gets expanded.
type Iterator struct {
	r     fst.Reader
	stack []frame
}

// NewIterator starts an Iterator at r's start state. If r has no start
// state, Next always returns false.
func NewIterator(r fst.Reader) *Iterator {
	it := &Iterator{r: r}
	start := r.Start()
	if start == fst.NoStateId {
		return it
	}
	it.stack = []frame{{state: start, weight: inferOne(r)}}
	return it
}

func inferOne(r fst.Reader) semiring.Weight {
	trs := r.Trs(r.Start())
	if trs.Len() > 0 {
		return trs.At(0).Weight.One()
	}
	if w, ok := r.Final(r.Start()); ok {
		return w.One()
	}
	return semiring.TropicalOne
}

func (it *Iterator) push(f frame) {
	trs := it.r.Trs(f.state)
	for i := trs.Len() - 1; i >= 0; i-- {
		tr := trs.At(i)
		child := frame{state: tr.NextState, weight: times(f.weight, tr.Weight)}
		if tr.ILabel != fst.Epsilon {
			child.ilabels = append(append([]fst.Label{}, f.ilabels...), tr.ILabel)
		} else {
			child.ilabels = f.ilabels
		}
		if tr.OLabel != fst.Epsilon {
			child.olabels = append(append([]fst.Label{}, f.olabels...), tr.OLabel)
		} else {
			child.olabels = f.olabels
		}
		it.stack = append(it.stack, child)
	}
}

// Next pops the next accepted path off the DFS stack, pushing its
// children (if any) back on for subsequent calls. Returns false once the
// stack is exhausted.
func (it *Iterator) Next() (StringPath, bool) {
	for len(it.stack) > 0 {
		f := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		fw, isFinal := it.r.Final(f.state)
		it.push(f)
		if isFinal {
			return StringPath{ILabels: f.ilabels, OLabels: f.olabels, Weight: times(f.weight, fw)}, true
		}
	}
	return StringPath{}, false
}

// Collect drains an Iterator into a slice, stopping after limit paths (or
// never, if limit <= 0 — callers must only pass limit <= 0 for FSTs known
// to have finitely many accepting paths, e.g. acyclic ones).
func Collect(r fst.Reader, limit int) []StringPath {
	it := NewIterator(r)
	var out []StringPath
	for limit <= 0 || len(out) < limit {
		p, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, p)
	}
	return out
}
