package semiring_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gofst/semiring"
)

func TestTropicalWeight_PlusTimes(t *testing.T) {
	a := semiring.NewTropicalWeight(10)
	b := semiring.NewTropicalWeight(18)

	sum, err := a.Plus(b)
	require.NoError(t, err)
	require.Equal(t, semiring.NewTropicalWeight(10), sum) // min(10,18)

	prod, err := a.Times(b)
	require.NoError(t, err)
	require.Equal(t, semiring.NewTropicalWeight(28), prod) // 10+18
}

func TestTropicalWeight_ZeroAnnihilates(t *testing.T) {
	zero := semiring.TropicalZero
	v := semiring.NewTropicalWeight(5)

	prod, err := zero.Times(v)
	require.NoError(t, err)
	require.True(t, prod.(semiring.TropicalWeight).IsZero())

	sum, err := zero.Plus(v)
	require.NoError(t, err)
	require.Equal(t, v, sum)
}

func TestTropicalWeight_Divide(t *testing.T) {
	w := semiring.NewTropicalWeight(28)
	d, err := w.Divide(semiring.NewTropicalWeight(10), semiring.DivideAny)
	require.NoError(t, err)
	require.Equal(t, semiring.NewTropicalWeight(18), d)

	_, err = w.Divide(semiring.TropicalZero, semiring.DivideAny)
	require.ErrorIs(t, err, semiring.ErrDivisionUndefined)
}

func TestTropicalWeight_Properties(t *testing.T) {
	p := semiring.TropicalOne.Properties()
	require.True(t, p.Has(semiring.Idempotent))
	require.True(t, p.Has(semiring.Path))
	require.True(t, p.Has(semiring.Commutative))
}

func TestTropicalWeight_ApproxEqual(t *testing.T) {
	a := semiring.NewTropicalWeight(1.0000001)
	b := semiring.NewTropicalWeight(1.0000002)
	require.True(t, a.ApproxEqual(b, 1e-5))
	require.False(t, a.ApproxEqual(semiring.NewTropicalWeight(2), 1e-5))
}
