package trsort_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
	"github.com/katalvlaran/gofst/trsort"
)

func buildUnsorted(t *testing.T) *fst.VectorFst {
	t.Helper()
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(5, 0, semiring.TropicalOne, s1)))
	require.NoError(t, v.AddTr(s0, fst.NewTr(1, 0, semiring.TropicalOne, s1)))
	require.NoError(t, v.AddTr(s0, fst.NewTr(3, 0, semiring.TropicalOne, s1)))
	require.NoError(t, v.SetFinal(s1, semiring.TropicalOne))
	return v
}

func TestTrSort_ByILabel(t *testing.T) {
	v := buildUnsorted(t)
	trsort.TrSort(v, trsort.ByILabel)

	trs := v.Trs(0)
	require.Equal(t, fst.Label(1), trs.At(0).ILabel)
	require.Equal(t, fst.Label(3), trs.At(1).ILabel)
	require.Equal(t, fst.Label(5), trs.At(2).ILabel)
	require.True(t, v.Properties().Has(fst.ILabelSorted))
}

func TestTrSort_CustomComparatorClearsSortBits(t *testing.T) {
	v := buildUnsorted(t)
	trsort.TrSort(v, func(a, b fst.Tr) int { return int(b.ILabel) - int(a.ILabel) })

	trs := v.Trs(0)
	require.Equal(t, fst.Label(5), trs.At(0).ILabel)
	require.False(t, v.Properties().Has(fst.ILabelSorted))
	require.False(t, v.Properties().Has(fst.OLabelSorted))
}
