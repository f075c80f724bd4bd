package lazyfst_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/lazyfst"
	"github.com/katalvlaran/gofst/semiring"
)

// chainOp is a minimal FstOp producing an infinite chain 0->1->2->...
// truncated at length n, used to exercise the lazy read path without
// pulling in a real algorithm package (avoids an import cycle).
type chainOp struct{ n int }

func (c chainOp) ComputeStart() (fst.StateId, bool) { return 0, true }

func (c chainOp) ComputeTrs(s fst.StateId) fst.Trs {
	if int(s)+1 >= c.n {
		return fst.NewTrs(nil)
	}
	return fst.NewTrs([]fst.Tr{fst.NewTr(1, 1, semiring.TropicalOne, s+1)})
}

func (c chainOp) ComputeFinalWeight(s fst.StateId) (semiring.Weight, bool) {
	if int(s) == c.n-1 {
		return semiring.TropicalOne, true
	}
	return nil, false
}

func (c chainOp) Properties() fst.Properties { return fst.Acceptor }

func TestLazyFst_CachesOnFirstRead(t *testing.T) {
	op := chainOp{n: 4}
	cache := lazyfst.NewVectorCache()
	lf := lazyfst.New(op, cache, nil, nil)

	require.Equal(t, fst.StateId(0), lf.Start())
	trs := lf.Trs(0)
	require.Equal(t, 1, trs.Len())

	cached, known := cache.GetTrs(0)
	require.True(t, known)
	require.Equal(t, trs.Len(), cached.Len())
}

func TestLazyFst_Materialize(t *testing.T) {
	op := chainOp{n: 4}
	lf := lazyfst.New(op, lazyfst.NewVectorCache(), nil, nil)

	out := lazyfst.Materialize(lf)
	require.Equal(t, 4, out.NumStates())
	w, ok := out.Final(3)
	require.True(t, ok)
	require.True(t, w.IsOne())
}

func TestStateTable_HashConsing(t *testing.T) {
	st := lazyfst.NewStateTable[[]int](func(t []int) string { return fmt.Sprint(t) })

	var wg sync.WaitGroup
	ids := make([]fst.StateId, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = st.FindIdFromRef([]int{1, 2, 3})
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		require.Equal(t, ids[0], id)
	}
	require.Equal(t, 1, st.Len())

	other := st.FindIdFromRef([]int{4, 5})
	require.NotEqual(t, ids[0], other)
	require.Equal(t, 2, st.Len())
}

func TestHashCache_SameContractAsVectorCache(t *testing.T) {
	op := chainOp{n: 3}
	lf := lazyfst.New(op, lazyfst.NewHashCache(), nil, nil)
	out := lazyfst.Materialize(lf)
	require.Equal(t, 3, out.NumStates())
}
