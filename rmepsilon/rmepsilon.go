// Package rmepsilon removes epsilon transitions from an FST while
// preserving its transduction (spec.md §4.8). For each state p it first
// computes the epsilon-closure — every state reachable from p by zero or
// more (ε,ε) transitions, with the ⊕-summed path weight — then rewrites
// every non-epsilon transition and final weight reachable through that
// closure directly onto p.
//
// The closure itself is an algebraic-path-problem instance solved by a
// Floyd–Warshall-style triple loop over the epsilon subgraph, generalized
// from (min,+) to an arbitrary semiring's (⊕,⊗), grounded on
// lvlath/matrix/ops's FloydWarshall.
//
// Complexity:
//   - Time:  O(V^3) for the closure matrix, O(V*E) for rewriting
//     transitions through it; the closure step dominates only when
//     epsilon transitions are dense.
//   - Space: O(V^2) for the closure matrix.
package rmepsilon

import (
	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
)

// plus/times panic on error: rm-epsilon only ever combines weights drawn
// from the same semiring, so Plus/Times can only fail for StringRestrict
// on genuinely non-functional input, which ComputeProperties' acceptor
// check and the caller's semiring choice are expected to rule out.
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

// closure computes, for every pair (p, q), the ⊕-sum over all epsilon
// paths from p to q (including the empty path p=q, weight One()), or
// Zero() if q is unreachable from p via epsilons alone.
func closure(r fst.Reader, zero semiring.Weight) [][]semiring.Weight {
	n := r.NumStates()
	dist := make([][]semiring.Weight, n)
	for i := range dist {
		dist[i] = make([]semiring.Weight, n)
		for j := range dist[i] {
			dist[i][j] = zero
		}
		dist[i][i] = zero.One()
	}
	for s := fst.StateId(0); int(s) < n; s++ {
		trs := r.Trs(s)
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			if tr.ILabel != fst.Epsilon || tr.OLabel != fst.Epsilon {
				continue
			}
			dist[s][tr.NextState] = plus(dist[s][tr.NextState], tr.Weight)
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if dist[i][k].IsZero() {
				continue
			}
			for j := 0; j < n; j++ {
				if dist[k][j].IsZero() {
					continue
				}
				via := times(dist[i][k], dist[k][j])
				dist[i][j] = plus(dist[i][j], via)
			}
		}
	}
	return dist
}

// RmEpsilon returns an equivalent epsilon-free FST: every (p, x, y, w, q)
// transition in the output corresponds to an epsilon-closure step from p
// to some r, followed by a non-epsilon transition out of r to q.
func RmEpsilon(r fst.Reader) *fst.VectorFst {
	n := r.NumStates()
	out := fst.NewVectorFst()
	for i := 0; i < n; i++ {
		out.AddState()
	}
	if r.Start() != fst.NoStateId {
		_ = out.SetStart(r.Start())
	}

	if n == 0 {
		out.SetInputSymbols(r.InputSymbols())
		out.SetOutputSymbols(r.OutputSymbols())
		out.SetProperties(fst.ComputeProperties(out))
		return out
	}

	var zero semiring.Weight
	for s := fst.StateId(0); int(s) < n && zero == nil; s++ {
		trs := r.Trs(s)
		if trs.Len() > 0 {
			zero = trs.At(0).Weight.Zero()
		} else if fw, ok := r.Final(s); ok {
			zero = fw.Zero()
		}
	}
	if zero == nil {
		out.SetProperties(fst.ComputeProperties(out))
		return out
	}

	dist := closure(r, zero)

	for p := fst.StateId(0); int(p) < n; p++ {
		var finalAccum semiring.Weight = zero
		hasFinal := false
		for q := 0; q < n; q++ {
			cw := dist[p][q]
			if cw.IsZero() {
				continue
			}
			if fw, ok := r.Final(fst.StateId(q)); ok {
				finalAccum = plus(finalAccum, times(cw, fw))
				hasFinal = true
			}
			trs := r.Trs(fst.StateId(q))
			for i := 0; i < trs.Len(); i++ {
				tr := trs.At(i)
				if tr.ILabel == fst.Epsilon && tr.OLabel == fst.Epsilon {
					continue
				}
				_ = out.AddTr(p, fst.NewTr(tr.ILabel, tr.OLabel, times(cw, tr.Weight), tr.NextState))
			}
		}
		if hasFinal {
			_ = out.SetFinal(p, finalAccum)
		}
	}

	out.SetInputSymbols(r.InputSymbols())
	out.SetOutputSymbols(r.OutputSymbols())
	out.SetProperties(fst.ComputeProperties(out))
	return out
}
