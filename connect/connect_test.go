package connect_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gofst/connect"
	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
)

// buildWithDeadStates: 0 (start) -> 1 (final); 2 is unreachable from 0;
// 3 is reachable from 0 but cannot reach any final state.
func buildWithDeadStates(t *testing.T) *fst.VectorFst {
	t.Helper()
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	s2 := v.AddState()
	s3 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(1, 1, semiring.TropicalOne, s1)))
	require.NoError(t, v.AddTr(s0, fst.NewTr(2, 2, semiring.TropicalOne, s3)))
	require.NoError(t, v.SetFinal(s1, semiring.TropicalOne))
	_ = s2
	return v
}

func TestConnect_RemovesUnreachableAndDeadEnd(t *testing.T) {
	v := buildWithDeadStates(t)
	connect.Connect(v)

	require.Equal(t, 2, v.NumStates())
	require.Equal(t, fst.StateId(0), v.Start())
	_, ok := v.Final(1)
	require.True(t, ok)
}

func TestConnect_NoStartEmptiesFst(t *testing.T) {
	v := fst.NewVectorFst()
	v.AddState()
	v.AddState()
	connect.Connect(v)
	require.Equal(t, 0, v.NumStates())
}

func TestConnect_AlreadyConnectedNoOp(t *testing.T) {
	v := fst.NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	require.NoError(t, v.SetStart(s0))
	require.NoError(t, v.AddTr(s0, fst.NewTr(1, 1, semiring.TropicalOne, s1)))
	require.NoError(t, v.SetFinal(s1, semiring.TropicalOne))

	connect.Connect(v)
	require.Equal(t, 2, v.NumStates())
}
