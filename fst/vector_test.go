package fst_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
)

// buildScenario1 constructs the FST from spec.md §8 scenario 1:
// states {0,1,2}, start 0, 0->1 (3/5, w=10), 0->2 (5/7, w=18),
// finals 1:31, 2:45.
func buildScenario1(t *testing.T) *fst.VectorFst {
	t.Helper()
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	s2 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(3, 5, semiring.NewTropicalWeight(10), s1)))
	require.NoError(t, v.AddTr(s0, fst.NewTr(5, 7, semiring.NewTropicalWeight(18), s2)))
	require.NoError(t, v.SetFinal(s1, semiring.NewTropicalWeight(31)))
	require.NoError(t, v.SetFinal(s2, semiring.NewTropicalWeight(45)))
	return v
}

func TestVectorFst_BasicShape(t *testing.T) {
	v := buildScenario1(t)
	require.Equal(t, 3, v.NumStates())
	require.Equal(t, fst.StateId(0), v.Start())

	trs := v.Trs(0)
	require.Equal(t, 2, trs.Len())

	w1, ok := v.Final(1)
	require.True(t, ok)
	require.Equal(t, semiring.NewTropicalWeight(31), w1)

	_, ok = v.Final(0)
	require.False(t, ok)
}

func TestVectorFst_DeleteStates(t *testing.T) {
	v := buildScenario1(t)
	v.DeleteStates([]fst.StateId{2})

	require.Equal(t, 2, v.NumStates())
	trs := v.Trs(0)
	require.Equal(t, 1, trs.Len()) // the 0->2 transition is gone
	require.Equal(t, fst.StateId(1), trs.At(0).NextState)
}

func TestVectorFst_Clone_Independent(t *testing.T) {
	v := buildScenario1(t)
	clone := v.Clone()
	require.NoError(t, clone.AddTr(0, fst.NewTr(9, 9, semiring.TropicalOne, 1)))
	require.Equal(t, 2, v.Trs(0).Len())
	require.Equal(t, 3, clone.Trs(0).Len())
}

func TestConstFst_RoundTrip(t *testing.T) {
	v := buildScenario1(t)
	c := fst.NewConstFstFromVector(v)
	require.Equal(t, v.NumStates(), c.NumStates())

	back := c.ToVectorFst()
	require.Equal(t, v.NumStates(), back.NumStates())
	w, ok := back.Final(2)
	require.True(t, ok)
	require.Equal(t, semiring.NewTropicalWeight(45), w)
}

func TestTrs_ShallowClone(t *testing.T) {
	v := buildScenario1(t)
	a := v.Trs(0)
	b := a.ShallowClone()
	require.Equal(t, a.Len(), b.Len())
	require.Equal(t, a.At(0), b.At(0))
}

func TestRelabelPairs(t *testing.T) {
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(2, 3, semiring.TropicalOne, s1)))

	fst.RelabelPairs(v, map[fst.Label]fst.Label{2: 5}, map[fst.Label]fst.Label{3: 4})

	trs := v.Trs(s0)
	require.Equal(t, 1, trs.Len())
	require.Equal(t, fst.Label(5), trs.At(0).ILabel)
	require.Equal(t, fst.Label(4), trs.At(0).OLabel)
}

func TestComputeProperties_AcceptorDetection(t *testing.T) {
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(1, 1, semiring.TropicalOne, s1)))
	require.NoError(t, v.SetFinal(s1, semiring.TropicalOne))

	p := fst.ComputeProperties(v)
	require.True(t, p.Has(fst.Acceptor))
	require.True(t, p.Has(fst.Accessible))
	require.True(t, p.Has(fst.Coaccessible))
	require.True(t, p.Has(fst.Acyclic))
}
