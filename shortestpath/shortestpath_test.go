package shortestpath_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
	"github.com/katalvlaran/gofst/shortestpath"
)

// buildDiamond: 0 -a/a,w=1-> 1 -b/b,w=1-> 3(final,w=0)
//               0 -a/a,w=5-> 2 -b/b,w=1-> 3
// so the shortest path (weight 2) goes through state 1, the next (weight
// 6) through state 2.
func buildDiamond(t *testing.T) *fst.VectorFst {
	t.Helper()
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	s2 := v.AddState()
	s3 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(1, 1, semiring.NewTropicalWeight(1), s1)))
	require.NoError(t, v.AddTr(s0, fst.NewTr(1, 1, semiring.NewTropicalWeight(5), s2)))
	require.NoError(t, v.AddTr(s1, fst.NewTr(2, 2, semiring.NewTropicalWeight(1), s3)))
	require.NoError(t, v.AddTr(s2, fst.NewTr(2, 2, semiring.NewTropicalWeight(1), s3)))
	require.NoError(t, v.SetFinal(s3, semiring.TropicalZero.One()))
	return v
}

func TestShortestDistance_Forward(t *testing.T) {
	v := buildDiamond(t)
	d, err := shortestpath.ShortestDistance(v)
	require.NoError(t, err)
	require.True(t, d[0].Equal(semiring.TropicalZero.One()))
	require.True(t, d[1].Equal(semiring.NewTropicalWeight(1)))
	require.True(t, d[2].Equal(semiring.NewTropicalWeight(5)))
	require.True(t, d[3].Equal(semiring.NewTropicalWeight(2)))
}

func TestShortestDistance_Reverse(t *testing.T) {
	v := buildDiamond(t)
	d, err := shortestpath.ShortestDistance(v, shortestpath.WithReverse(true))
	require.NoError(t, err)
	require.True(t, d[3].Equal(semiring.TropicalZero.One()))
	require.True(t, d[1].Equal(semiring.NewTropicalWeight(1)))
	require.True(t, d[0].Equal(semiring.NewTropicalWeight(2)))
}

func TestShortestPath_SingleBestTakesCheaperBranch(t *testing.T) {
	v := buildDiamond(t)
	out, err := shortestpath.ShortestPath(v, 1, false)
	require.NoError(t, err)

	start := out.Start()
	trs := out.Trs(start)
	require.Equal(t, 1, trs.Len())
	require.Equal(t, semiring.NewTropicalWeight(1), trs.At(0).Weight)

	mid := trs.At(0).NextState
	midTrs := out.Trs(mid)
	require.Equal(t, 1, midTrs.Len())
	final := midTrs.At(0).NextState
	w, ok := out.Final(final)
	require.True(t, ok)
	require.Equal(t, semiring.NewTropicalWeight(0), w)
}

func TestShortestPath_NBestFindsBothBranches(t *testing.T) {
	v := buildDiamond(t)
	out, err := shortestpath.ShortestPath(v, 2, false)
	require.NoError(t, err)

	var finals []semiring.Weight
	for s := fst.StateId(0); int(s) < out.NumStates(); s++ {
		if w, ok := out.Final(s); ok {
			finals = append(finals, w)
		}
	}
	require.Len(t, finals, 2)
}

func TestShortestPath_EmptyFstYieldsStartOnlyFst(t *testing.T) {
	v := fst.NewVectorFst()
	out, err := shortestpath.ShortestPath(v, 3, false)
	require.NoError(t, err)
	require.Equal(t, 1, out.NumStates())
	_, ok := out.Final(out.Start())
	require.False(t, ok)
}
