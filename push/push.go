// Package push implements weight pushing (spec.md §4.11): redistributing
// weight along paths toward the initial state or toward the final states
// without changing the transduction. Requires a weakly divisible
// semiring.
//
// Algorithm: compute the shortest distance d in the appropriate direction
// (forward, from the start, for push-to-initial; reverse, to the finals,
// for push-to-final), then replace each transition weight w(p->q) with
// d(p)⁻¹ ⊗ w ⊗ d(q) (push-to-final) or d(p) ⊗ w ⊗ d(q)⁻¹ (push-to-
// initial), and update final weights symmetrically. Optionally divides
// the overall total weight out of the start/final weights to produce a
// stochastic FST.
package push

import (
	"errors"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
	"github.com/katalvlaran/gofst/shortestpath"
)

// ErrUnsupportedSemiring is returned when the FST's weight type does not
// implement semiring.WeaklyDivisible.
var ErrUnsupportedSemiring = errors.New("push: semiring does not support weak division")

func times(a, b semiring.Weight) semiring.Weight {
	w, err := a.Times(b)
	if err != nil {
		panic(err)
	}
	return w
}

// divide solves d ⊗ missing = w (DivideLeft), returning (w, nil) instead
// of erroring when d is Zero (an unreachable/non-coaccessible state),
// since there is nothing meaningful to normalize there.
func divide(w, d semiring.Weight) (semiring.Weight, error) {
	if d.IsZero() {
		return w, nil
	}
	wd, ok := w.(semiring.WeaklyDivisible)
	if !ok {
		return nil, ErrUnsupportedSemiring
	}
	return wd.Divide(d, semiring.DivideLeft)
}

// ToFinal redistributes weight toward the final states.
func ToFinal(r fst.Reader, removeTotalWeight bool) (*fst.VectorFst, error) {
	d, err := shortestpath.ShortestDistance(r, shortestpath.WithReverse(true))
	if err != nil {
		return nil, err
	}
	return reweight(r, d, true, removeTotalWeight)
}

// ToInitial redistributes weight toward the initial state.
func ToInitial(r fst.Reader, removeTotalWeight bool) (*fst.VectorFst, error) {
	d, err := shortestpath.ShortestDistance(r)
	if err != nil {
		return nil, err
	}
	return reweight(r, d, false, removeTotalWeight)
}

func reweight(r fst.Reader, d []semiring.Weight, toFinal, removeTotal bool) (*fst.VectorFst, error) {
	n := r.NumStates()
	out := fst.NewVectorFst()
	for i := 0; i < n; i++ {
		out.AddState()
	}
	if r.Start() != fst.NoStateId {
		_ = out.SetStart(r.Start())
	}

	for s := fst.StateId(0); int(s) < n; s++ {
		dp := d[s]
		trs := r.Trs(s)
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			dq := d[tr.NextState]
			var neww semiring.Weight
			var err error
			if toFinal {
				neww, err = divide(times(tr.Weight, dq), dp)
			} else {
				neww, err = divide(times(dp, tr.Weight), dq)
			}
			if err != nil {
				return nil, err
			}
			_ = out.AddTr(s, fst.NewTr(tr.ILabel, tr.OLabel, neww, tr.NextState))
		}
		if fw, ok := r.Final(s); ok {
			var newf semiring.Weight
			var err error
			if toFinal {
				newf, err = divide(fw, dp)
			} else {
				newf = times(dp, fw)
			}
			if err != nil {
				return nil, err
			}
			_ = out.SetFinal(s, newf)
		}
	}

	if removeTotal && r.Start() != fst.NoStateId {
		total := d[r.Start()]
		if !total.IsZero() {
			for s := fst.StateId(0); int(s) < n; s++ {
				if fw, ok := out.Final(s); ok {
					newf, err := divide(fw, total)
					if err != nil {
						return nil, err
					}
					_ = out.SetFinal(s, newf)
				}
			}
		}
	}

	out.SetInputSymbols(r.InputSymbols())
	out.SetOutputSymbols(r.OutputSymbols())
	out.SetProperties(fst.ComputeProperties(out))
	return out, nil
}
