package fstio_test

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/fstio"
	"github.com/katalvlaran/gofst/semiring"
	"github.com/katalvlaran/gofst/symtab"
)

func buildScenario(t *testing.T) *fst.VectorFst {
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
	v.SetProperties(fst.ComputeProperties(v))
	return v
}

func TestWriteReadFst_VectorRoundTrip(t *testing.T) {
	v := buildScenario(t)
	var buf bytes.Buffer
	require.NoError(t, fstio.WriteFst(&buf, v))

	out, err := fstio.ReadFst(&buf)
	require.NoError(t, err)
	require.Equal(t, v.NumStates(), out.NumStates())
	require.Equal(t, v.Start(), out.Start())

	trs := out.Trs(0)
	require.Equal(t, 2, trs.Len())
	require.Equal(t, fst.Label(3), trs.At(0).ILabel)
	require.Equal(t, semiring.NewTropicalWeight(10), trs.At(0).Weight)

	w, ok := out.Final(1)
	require.True(t, ok)
	require.Equal(t, semiring.NewTropicalWeight(31), w)
}

func TestWriteReadFst_ConstRoundTrip(t *testing.T) {
	v := buildScenario(t)
	var buf bytes.Buffer
	require.NoError(t, fstio.WriteConstFst(&buf, v))

	out, err := fstio.ReadFst(&buf)
	require.NoError(t, err)
	require.IsType(t, &fst.ConstFst{}, out)
	require.Equal(t, v.NumStates(), out.NumStates())

	w, ok := out.Final(2)
	require.True(t, ok)
	require.Equal(t, semiring.NewTropicalWeight(45), w)
}

func TestWriteReadFst_WithSymbolTables(t *testing.T) {
	v := buildScenario(t)
	isymt := symtab.New("inputs")
	isymt.AddSymbolWithLabel("a", 1)
	isymt.AddSymbolWithLabel("b", 2)
	v.SetInputSymbols(isymt)

	var buf bytes.Buffer
	require.NoError(t, fstio.WriteFst(&buf, v))

	out, err := fstio.ReadFst(&buf)
	require.NoError(t, err)
	require.NotNil(t, out.InputSymbols())
	require.Equal(t, 3, out.InputSymbols().Len())
}

func TestReadFst_BadMagic(t *testing.T) {
	_, err := fstio.ReadFst(bytes.NewReader([]byte{0, 0, 0, 0}))
	require.ErrorIs(t, err, fstio.ErrBadMagic)
}

func TestFstText_RoundTrip(t *testing.T) {
	v := buildScenario(t)
	var buf bytes.Buffer
	require.NoError(t, fstio.WriteFstText(&buf, v))

	parse := func(s string) (semiring.Weight, error) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return semiring.NewTropicalWeight(f), nil
	}
	out, err := fstio.ReadFstText(&buf, parse)
	require.NoError(t, err)
	require.Equal(t, v.NumStates(), out.NumStates())

	w, ok := out.Final(1)
	require.True(t, ok)
	require.Equal(t, semiring.NewTropicalWeight(31), w)
}
