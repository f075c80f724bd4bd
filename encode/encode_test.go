package encode_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gofst/encode"
	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
)

func buildTransducer(t *testing.T) *fst.VectorFst {
	t.Helper()
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(3, 5, semiring.NewTropicalWeight(10), s1)))
	require.NoError(t, v.SetFinal(s1, semiring.TropicalOne))
	return v
}

func TestEncodeDecode_LabelsAndWeights_RoundTrip(t *testing.T) {
	v := buildTransducer(t)
	enc, table := encode.Encode(v, encode.EncodeLabels|encode.EncodeWeights)

	trs := enc.Trs(0)
	require.Equal(t, 1, trs.Len())
	require.Equal(t, fst.Epsilon, trs.At(0).OLabel)
	require.True(t, trs.At(0).Weight.IsOne())

	dec := encode.Decode(enc, table)
	dtrs := dec.Trs(0)
	require.Equal(t, fst.Label(3), dtrs.At(0).ILabel)
	require.Equal(t, fst.Label(5), dtrs.At(0).OLabel)
	require.Equal(t, semiring.NewTropicalWeight(10), dtrs.At(0).Weight)
}

func TestEncodeDecode_LabelsOnly_KeepsWeight(t *testing.T) {
	v := buildTransducer(t)
	enc, table := encode.Encode(v, encode.EncodeLabels)
	trs := enc.Trs(0)
	require.Equal(t, semiring.NewTropicalWeight(10), trs.At(0).Weight)

	dec := encode.Decode(enc, table)
	require.Equal(t, fst.Label(5), dec.Trs(0).At(0).OLabel)
}
