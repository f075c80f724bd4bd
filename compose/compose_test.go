package compose_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gofst/compose"
	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
)

// buildMapper constructs a two-state acceptor s0 --(in,out,w)--> s1(final).
func buildMapper(t *testing.T, in, out fst.Label, w float64) *fst.VectorFst {
	t.Helper()
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(in, out, semiring.NewTropicalWeight(w), s1)))
	require.NoError(t, v.SetFinal(s1, semiring.NewTropicalWeight(0)))
	return v
}

func TestCompose_MatchesLabelsAndSumsWeights(t *testing.T) {
	a := buildMapper(t, 1, 2, 1) // 1:2/1
	b := buildMapper(t, 2, 3, 2) // 2:3/2

	out, err := compose.Compose(a, b, compose.Auto)
	require.NoError(t, err)

	trs := out.Trs(out.Start())
	require.Equal(t, 1, trs.Len())
	tr := trs.At(0)
	require.Equal(t, fst.Label(1), tr.ILabel)
	require.Equal(t, fst.Label(3), tr.OLabel)
	require.Equal(t, semiring.NewTropicalWeight(3), tr.Weight)

	w, ok := out.Final(tr.NextState)
	require.True(t, ok)
	require.Equal(t, semiring.NewTropicalWeight(0), w)
}

// buildEpsTail: s0 --(1,eps,w)--> s1(final, w=0); A emits nothing on the
// shared tape after consuming "1".
func buildEpsTail(t *testing.T, w float64) *fst.VectorFst {
	t.Helper()
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(1, fst.Epsilon, semiring.NewTropicalWeight(w), s1)))
	require.NoError(t, v.SetFinal(s1, semiring.NewTropicalWeight(0)))
	return v
}

func TestCompose_NullFilterDropsEpsilonTransitions(t *testing.T) {
	a := buildEpsTail(t, 1)
	b := buildMapper(t, 2, 3, 2)

	out, err := compose.Compose(a, b, compose.Null)
	require.NoError(t, err)
	// Null performs no epsilon bookkeeping: the A-only eps move never
	// fires, so the start state has no outgoing transitions.
	require.Equal(t, 0, out.Trs(out.Start()).Len())
}

func TestCompose_SequenceFilterComposesEpsilonTransitions(t *testing.T) {
	a := buildEpsTail(t, 1)
	b := buildMapper(t, 2, 3, 2)

	out, err := compose.Compose(a, b, compose.Sequence)
	require.NoError(t, err)
	trs := out.Trs(out.Start())
	require.Equal(t, 1, trs.Len())
	tr := trs.At(0)
	require.Equal(t, fst.Label(1), tr.ILabel)
	require.Equal(t, fst.Epsilon, tr.OLabel)
	require.Equal(t, semiring.NewTropicalWeight(1), tr.Weight)
}
