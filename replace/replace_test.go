package replace_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/replace"
	"github.com/katalvlaran/gofst/semiring"
)

// buildLetter: single-transition acceptor s0 --(lbl,lbl,w=1)--> s1(final).
func buildLetter(t *testing.T, lbl fst.Label) *fst.VectorFst {
	t.Helper()
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(lbl, lbl, semiring.NewTropicalWeight(1), s1)))
	require.NoError(t, v.SetFinal(s1, semiring.NewTropicalWeight(0)))
	return v
}

func acceptedLabels(t *testing.T, r fst.Reader) [][]fst.Label {
	t.Helper()
	var paths [][]fst.Label
	var walk func(s fst.StateId, acc []fst.Label)
	walk = func(s fst.StateId, acc []fst.Label) {
		if _, ok := r.Final(s); ok {
			cp := append([]fst.Label{}, acc...)
			paths = append(paths, cp)
		}
		trs := r.Trs(s)
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			next := acc
			if tr.ILabel != fst.Epsilon {
				next = append(append([]fst.Label{}, acc...), tr.ILabel)
			}
			walk(tr.NextState, next)
		}
	}
	walk(r.Start(), nil)
	return paths
}

func TestConcat_AcceptsConcatenation(t *testing.T) {
	a := buildLetter(t, 10)
	b := buildLetter(t, 20)
	out, err := replace.Concat(a, b, semiring.TropicalOne, 100, 200)
	require.NoError(t, err)

	paths := acceptedLabels(t, out)
	require.Len(t, paths, 1)
	require.Equal(t, []fst.Label{10, 20}, paths[0])
}

func TestUnion_AcceptsEitherBranch(t *testing.T) {
	a := buildLetter(t, 10)
	b := buildLetter(t, 20)
	out, err := replace.Union(a, b, semiring.TropicalOne, 100, 200)
	require.NoError(t, err)

	paths := acceptedLabels(t, out)
	require.Len(t, paths, 2)
}

func TestClosureStar_AcceptsEmptyAndRepetition(t *testing.T) {
	a := buildLetter(t, 10)
	out, err := replace.Closure(a, semiring.TropicalOne, 100, false)
	require.NoError(t, err)

	// Star closure's start state is itself final: the empty string is
	// accepted directly, without expanding the nonterminal at all.
	_, ok := out.Final(out.Start())
	require.True(t, ok)
}
