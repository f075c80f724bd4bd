package factorweight_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gofst/factorweight"
	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
)

// buildMultiLabel: s0 --(1, Gallic{labels:[5,6], base:2})--> s1(final, Gallic{labels:[7], base:0}).
func buildMultiLabel(t *testing.T) *fst.VectorFst {
	t.Helper()
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	require.NoError(t, v.SetStart(s0))

	trW := semiring.GallicWeight{
		Mode:   semiring.GallicLeft,
		Labels: semiring.NewStringWeightLeft(5, 6),
		Base:   semiring.NewTropicalWeight(2),
	}
	require.NoError(t, v.AddTr(s0, fst.NewTr(1, 0, trW, s1)))

	finW := semiring.GallicWeight{
		Mode:   semiring.GallicLeft,
		Labels: semiring.NewStringWeightLeft(7),
		Base:   semiring.NewTropicalWeight(0),
	}
	require.NoError(t, v.SetFinal(s1, finW))
	return v
}

func walk(r fst.Reader, s fst.StateId, depth int, visit func(fst.StateId, fst.Tr)) {
	if depth > 10 {
		return
	}
	trs := r.Trs(s)
	for i := 0; i < trs.Len(); i++ {
		tr := trs.At(i)
		visit(s, tr)
		walk(r, tr.NextState, depth+1, visit)
	}
}

func TestFactor_UnwindsMultiLabelArcIntoSingleLabelHops(t *testing.T) {
	src := buildMultiLabel(t)
	out := factorweight.Factor(src, factorweight.WithMode(factorweight.FactorArcWeights))

	var hops []fst.Tr
	walk(out, out.Start(), 0, func(_ fst.StateId, tr fst.Tr) {
		hops = append(hops, tr)
	})

	require.Len(t, hops, 2)

	gw0, ok := hops[0].Weight.(semiring.GallicWeight)
	require.True(t, ok)
	require.Equal(t, []int64{5}, semiring.GallicLabels(gw0))
	require.True(t, gw0.Base.Equal(semiring.NewTropicalWeight(2)))
	require.Equal(t, fst.Label(1), hops[0].ILabel)

	gw1, ok := hops[1].Weight.(semiring.GallicWeight)
	require.True(t, ok)
	require.Equal(t, []int64{6}, semiring.GallicLabels(gw1))
	require.True(t, gw1.Base.IsOne())
	require.Equal(t, fst.Epsilon, hops[1].ILabel)
}

func TestFactor_SingleLabelArcPassesThroughUnchanged(t *testing.T) {
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	w := semiring.GallicWeight{Mode: semiring.GallicLeft, Labels: semiring.NewStringWeightLeft(9), Base: semiring.NewTropicalWeight(1)}
	require.NoError(t, v.AddTr(s0, fst.NewTr(1, 0, w, s1)))
	require.NoError(t, v.SetFinal(s1, semiring.GallicWeight{Mode: semiring.GallicLeft, Labels: semiring.NewStringWeightLeft(), Base: semiring.NewTropicalWeight(0)}))

	out := factorweight.Factor(v)
	trs := out.Trs(out.Start())
	require.Equal(t, 1, trs.Len())
	require.True(t, trs.At(0).Weight.(semiring.GallicWeight).Equal(w))
}

func TestFactor_UnwindsMultiLabelFinalWeight(t *testing.T) {
	v := fst.NewVectorFst()
	s0 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	fw := semiring.GallicWeight{
		Mode:   semiring.GallicLeft,
		Labels: semiring.NewStringWeightLeft(1, 2),
		Base:   semiring.NewTropicalWeight(3),
	}
	require.NoError(t, v.SetFinal(s0, fw))

	out := factorweight.Factor(v, factorweight.WithMode(factorweight.FactorFinalWeights))

	// Start is no longer directly final; it has one synthetic epsilon hop
	// carrying the first label and the full base weight.
	_, isFinal := out.Final(out.Start())
	require.False(t, isFinal)

	trs := out.Trs(out.Start())
	require.Equal(t, 1, trs.Len())
	hop := trs.At(0)
	require.Equal(t, fst.Epsilon, hop.ILabel)
	gw := hop.Weight.(semiring.GallicWeight)
	require.Equal(t, []int64{1}, semiring.GallicLabels(gw))
	require.True(t, gw.Base.Equal(semiring.NewTropicalWeight(3)))

	finalW, ok := out.Final(hop.NextState)
	require.True(t, ok)
	gw2 := finalW.(semiring.GallicWeight)
	require.Equal(t, []int64{2}, semiring.GallicLabels(gw2))
	require.True(t, gw2.Base.IsOne())
}
