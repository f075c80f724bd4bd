package path_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/path"
	"github.com/katalvlaran/gofst/semiring"
	"github.com/katalvlaran/gofst/symtab"
)

// buildFork: s0 --(1,10,w=1)--> s1(final,w=2)
//            s0 --(2,20,w=3)--> s2(final,w=4)
func buildFork(t *testing.T) *fst.VectorFst {
	t.Helper()
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	s2 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(1, 10, semiring.NewTropicalWeight(1), s1)))
	require.NoError(t, v.AddTr(s0, fst.NewTr(2, 20, semiring.NewTropicalWeight(3), s2)))
	require.NoError(t, v.SetFinal(s1, semiring.NewTropicalWeight(2)))
	require.NoError(t, v.SetFinal(s2, semiring.NewTropicalWeight(4)))
	return v
}

func TestCollect_EnumeratesBothPaths(t *testing.T) {
	v := buildFork(t)
	paths := path.Collect(v, 0)
	require.Len(t, paths, 2)

	byFirstLabel := map[fst.Label]path.StringPath{}
	for _, p := range paths {
		byFirstLabel[p.ILabels[0]] = p
	}

	p1 := byFirstLabel[1]
	require.Equal(t, []fst.Label{10}, p1.OLabels)
	require.True(t, p1.Weight.Equal(semiring.NewTropicalWeight(3)))

	p2 := byFirstLabel[2]
	require.Equal(t, []fst.Label{20}, p2.OLabels)
	require.True(t, p2.Weight.Equal(semiring.NewTropicalWeight(7)))
}

func TestCollect_Limit_StopsEarly(t *testing.T) {
	v := buildFork(t)
	paths := path.Collect(v, 1)
	require.Len(t, paths, 1)
}

func TestIterator_NoStartState_YieldsNothing(t *testing.T) {
	v := fst.NewVectorFst()
	it := path.NewIterator(v)
	_, ok := it.Next()
	require.False(t, ok)
}

func TestStringPath_RendersThroughSymbolTable(t *testing.T) {
	st := symtab.New("test")
	lbl := st.AddSymbol("hello")

	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(fst.Label(lbl), fst.Label(lbl), semiring.NewTropicalWeight(0), s1)))
	require.NoError(t, v.SetFinal(s1, semiring.NewTropicalWeight(0)))

	paths := path.Collect(v, 0)
	require.Len(t, paths, 1)
	s, err := paths[0].InputString(st)
	require.NoError(t, err)
	require.Equal(t, "hello", s)
}
