package determinize_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gofst/determinize"
	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
)

// buildAmbiguous: s0 --1/1,w=2--> s1(final,w=0)
//                 s0 --1/1,w=5--> s2(final,w=1)
// both branches share the input label 1 and agree on output label 1, so
// this is a functional transducer whose two paths both accept "1" with
// total weights 2 and 6; the tropical-shortest is 2.
func buildAmbiguous(t *testing.T) *fst.VectorFst {
	t.Helper()
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	s2 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(1, 1, semiring.NewTropicalWeight(2), s1)))
	require.NoError(t, v.AddTr(s0, fst.NewTr(1, 1, semiring.NewTropicalWeight(5), s2)))
	require.NoError(t, v.SetFinal(s1, semiring.NewTropicalWeight(0)))
	require.NoError(t, v.SetFinal(s2, semiring.NewTropicalWeight(1)))
	return v
}

func TestDeterminize_Functional_MergesSubsetsAndKeepsShortestTotal(t *testing.T) {
	v := buildAmbiguous(t)
	out, err := determinize.Determinize(v, determinize.Functional)
	require.NoError(t, err)

	start := out.Start()
	trs := out.Trs(start)
	require.Equal(t, 1, trs.Len(), "determinized start must have exactly one outgoing transition per label")
	require.Equal(t, fst.Label(1), trs.At(0).ILabel)
	require.Equal(t, fst.Label(1), trs.At(0).OLabel)
	require.Equal(t, semiring.NewTropicalWeight(2), trs.At(0).Weight)

	mid := trs.At(0).NextState
	w, ok := out.Final(mid)
	require.True(t, ok)
	require.Equal(t, semiring.NewTropicalWeight(0), w)
}

// buildNonFunctional: s0 --1/1,w=2--> s1(final,w=0)
//                      s0 --1/2,w=1--> s2(final,w=0)
// same input label, DIFFERENT output labels: not a functional transducer.
func buildNonFunctional(t *testing.T) *fst.VectorFst {
	t.Helper()
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	s2 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(1, 1, semiring.NewTropicalWeight(2), s1)))
	require.NoError(t, v.AddTr(s0, fst.NewTr(1, 2, semiring.NewTropicalWeight(1), s2)))
	require.NoError(t, v.SetFinal(s1, semiring.NewTropicalWeight(0)))
	require.NoError(t, v.SetFinal(s2, semiring.NewTropicalWeight(0)))
	return v
}

func TestDeterminize_Functional_RejectsNonFunctionalInput(t *testing.T) {
	v := buildNonFunctional(t)
	_, err := determinize.Determinize(v, determinize.Functional)
	require.ErrorIs(t, err, determinize.ErrNonFunctionalInput)
}

func TestDeterminize_NonFunctional_FoldsOutputLabelsIntoWeight(t *testing.T) {
	v := buildNonFunctional(t)
	out, err := determinize.Determinize(v, determinize.NonFunctional)
	require.NoError(t, err)

	start := out.Start()
	trs := out.Trs(start)
	require.Equal(t, 1, trs.Len())
	require.Equal(t, fst.Label(1), trs.At(0).ILabel)
}
