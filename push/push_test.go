package push_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/push"
	"github.com/katalvlaran/gofst/semiring"
)

// buildChain: s0 --a,w=2--> s1 --b,w=3--> s2(final,w=1)
// total path weight 2+3+1=6 (tropical). Pushing weight should not change
// the total weight of the accepted string, only its distribution.
func buildChain(t *testing.T) *fst.VectorFst {
	t.Helper()
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	s2 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(1, 1, semiring.NewTropicalWeight(2), s1)))
	require.NoError(t, v.AddTr(s1, fst.NewTr(2, 2, semiring.NewTropicalWeight(3), s2)))
	require.NoError(t, v.SetFinal(s2, semiring.NewTropicalWeight(1)))
	return v
}

func totalWeight(t *testing.T, r fst.Reader) float64 {
	t.Helper()
	s := r.Start()
	total := 0.0
	for {
		trs := r.Trs(s)
		if fw, ok := r.Final(s); ok && trs.Len() == 0 {
			total += float64(fw.(semiring.TropicalWeight))
			return total
		}
		require.Equal(t, 1, trs.Len())
		tr := trs.At(0)
		total += float64(tr.Weight.(semiring.TropicalWeight))
		s = tr.NextState
	}
}

// ToFinal normalizes every state's shortest-distance-to-a-final down to
// One, including the start state: the chain's single path total (6)
// collapses to One (0 in tropical), since d(start) is itself 6.
func TestPushToFinal_NormalizesTotalToOne(t *testing.T) {
	v := buildChain(t)
	out, err := push.ToFinal(v, false)
	require.NoError(t, err)
	require.Equal(t, 0.0, totalWeight(t, out))
}

// ToInitial preserves the raw total weight exactly: the forward distance
// from start to itself is always One, so nothing is rescaled away.
func TestPushToInitial_PreservesTotalWeight(t *testing.T) {
	v := buildChain(t)
	out, err := push.ToInitial(v, false)
	require.NoError(t, err)
	require.Equal(t, totalWeight(t, v), totalWeight(t, out))
}

func TestPushToFinal_EachStepLocallyBalancesToOne(t *testing.T) {
	v := buildChain(t)
	out, err := push.ToFinal(v, false)
	require.NoError(t, err)
	trs := out.Trs(out.Start())
	require.Equal(t, 1, trs.Len())
	require.Equal(t, semiring.NewTropicalWeight(0), trs.At(0).Weight)
}
