package semiring_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gofst/semiring"
)

func TestStringWeightLeft_CommonPrefix(t *testing.T) {
	a := semiring.NewStringWeightLeft(1, 2, 3)
	b := semiring.NewStringWeightLeft(1, 2, 4)
	sum, err := a.Plus(b)
	require.NoError(t, err)
	require.Equal(t, "1_2", sum.String())
}

func TestStringWeightRight_CommonSuffix(t *testing.T) {
	a := semiring.NewStringWeightRight(1, 2, 3)
	b := semiring.NewStringWeightRight(9, 2, 3)
	sum, err := a.Plus(b)
	require.NoError(t, err)
	require.Equal(t, "2_3", sum.String())
}

func TestStringWeightRestrict_EqualOperandsOK(t *testing.T) {
	a := semiring.NewStringWeightRestrict(5)
	b := semiring.NewStringWeightRestrict(5)
	sum, err := a.Plus(b)
	require.NoError(t, err)
	require.True(t, sum.Equal(a))
}

func TestStringWeightRestrict_UnequalOperandsError(t *testing.T) {
	a := semiring.NewStringWeightRestrict(5)
	b := semiring.NewStringWeightRestrict(6)
	_, err := a.Plus(b)
	require.ErrorIs(t, err, semiring.ErrNonFunctional)
}

func TestStringWeightRestrict_ZeroIsAdditiveIdentity(t *testing.T) {
	// spec.md §9: "one operand is 0̄ = Infinity" must behave as the identity,
	// not as an error, even under Restrict's otherwise-strict Plus.
	a := semiring.NewStringWeightRestrict(7)
	zero := semiring.StringWeightRestrict{}.Zero()

	sum, err := a.Plus(zero)
	require.NoError(t, err)
	require.True(t, sum.Equal(a))

	sum2, err := zero.(semiring.StringWeightRestrict).Plus(a)
	require.NoError(t, err)
	require.True(t, sum2.Equal(a))
}

func TestStringWeightLeft_Times(t *testing.T) {
	a := semiring.NewStringWeightLeft(1, 2)
	b := semiring.NewStringWeightLeft(3, 4)
	prod, err := a.Times(b)
	require.NoError(t, err)
	require.Equal(t, "1_2_3_4", prod.String())
}
