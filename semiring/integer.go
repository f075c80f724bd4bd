package semiring

import "strconv"

// IntegerWeight implements the counting semiring over ℤ: ⊕ is +, ⊗ is ·,
// 0̄ is 0, 1̄ is 1. Commutative but not idempotent; used to count paths.
type IntegerWeight int64

const IntegerZero = IntegerWeight(0)
const IntegerOne = IntegerWeight(1)

func (w IntegerWeight) Zero() Weight { return IntegerZero }
func (w IntegerWeight) One() Weight  { return IntegerOne }

func (w IntegerWeight) Plus(other Weight) (Weight, error) {
	return w + other.(IntegerWeight), nil
}

func (w IntegerWeight) Times(other Weight) (Weight, error) {
	return w * other.(IntegerWeight), nil
}

func (w IntegerWeight) IsZero() bool { return w == 0 }
func (w IntegerWeight) IsOne() bool  { return w == 1 }

func (w IntegerWeight) Equal(other Weight) bool {
	o, ok := other.(IntegerWeight)
	return ok && w == o
}

func (w IntegerWeight) ApproxEqual(other Weight, delta float64) bool { return w.Equal(other) }

func (w IntegerWeight) Reverse() Weight { return w }

func (w IntegerWeight) Properties() Properties { return LeftSemiring | RightSemiring | Commutative }

func (w IntegerWeight) WeightType() string { return "integer" }

func (w IntegerWeight) String() string { return strconv.FormatInt(int64(w), 10) }

var _ Weight = IntegerWeight(0)
