package rmepsilon_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/rmepsilon"
	"github.com/katalvlaran/gofst/semiring"
)

// buildEpsilonChain: 0 --ε/ε,w=2--> 1 --ε/ε,w=3--> 2 --a/b,w=5--> 3 (final,w=1)
func buildEpsilonChain(t *testing.T) *fst.VectorFst {
	t.Helper()
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	s2 := v.AddState()
	s3 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(fst.Epsilon, fst.Epsilon, semiring.NewTropicalWeight(2), s1)))
	require.NoError(t, v.AddTr(s1, fst.NewTr(fst.Epsilon, fst.Epsilon, semiring.NewTropicalWeight(3), s2)))
	require.NoError(t, v.AddTr(s2, fst.NewTr(1, 2, semiring.NewTropicalWeight(5), s3)))
	require.NoError(t, v.SetFinal(s3, semiring.NewTropicalWeight(1)))
	return v
}

func TestRmEpsilon_ChainCollapsesToDirectTransition(t *testing.T) {
	v := buildEpsilonChain(t)
	out := rmepsilon.RmEpsilon(v)

	trs := out.Trs(0)
	require.Equal(t, 1, trs.Len())
	require.Equal(t, fst.Label(1), trs.At(0).ILabel)
	// tropical: 2 + 3 + 5 = 10
	require.Equal(t, semiring.NewTropicalWeight(10), trs.At(0).Weight)
	require.Equal(t, fst.StateId(3), trs.At(0).NextState)

	_, ok := out.Final(0)
	require.False(t, ok)
	w, ok := out.Final(3)
	require.True(t, ok)
	require.Equal(t, semiring.NewTropicalWeight(1), w)
}

func TestRmEpsilon_FinalReachableThroughEpsilon(t *testing.T) {
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(fst.Epsilon, fst.Epsilon, semiring.NewTropicalWeight(4), s1)))
	require.NoError(t, v.SetFinal(s1, semiring.NewTropicalWeight(6)))

	out := rmepsilon.RmEpsilon(v)
	w, ok := out.Final(0)
	require.True(t, ok)
	require.Equal(t, semiring.NewTropicalWeight(10), w)
}
