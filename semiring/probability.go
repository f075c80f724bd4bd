package semiring

import "math"

// ProbabilityWeight implements the probability semiring over ℝ≥0: ⊕ is +,
// ⊗ is ·, 0̄ is 0, 1̄ is 1. Commutative, weakly divisible; this is the
// non-log dual of LogWeight (probabilities rather than -log probabilities).
type ProbabilityWeight float64

const ProbabilityZero = ProbabilityWeight(0)
const ProbabilityOne = ProbabilityWeight(1)

func (w ProbabilityWeight) Zero() Weight { return ProbabilityZero }
func (w ProbabilityWeight) One() Weight  { return ProbabilityOne }

func (w ProbabilityWeight) Plus(other Weight) (Weight, error) {
	return w + other.(ProbabilityWeight), nil
}

func (w ProbabilityWeight) Times(other Weight) (Weight, error) {
	return w * other.(ProbabilityWeight), nil
}

func (w ProbabilityWeight) IsZero() bool { return float64(w) == 0 }
func (w ProbabilityWeight) IsOne() bool  { return float64(w) == 1 }

func (w ProbabilityWeight) Equal(other Weight) bool {
	o, ok := other.(ProbabilityWeight)
	return ok && w == o
}

func (w ProbabilityWeight) ApproxEqual(other Weight, delta float64) bool {
	o := other.(ProbabilityWeight)
	return math.Abs(float64(w)-float64(o)) <= delta
}

func (w ProbabilityWeight) Reverse() Weight { return w }

func (w ProbabilityWeight) Properties() Properties { return LeftSemiring | RightSemiring | Commutative }

func (w ProbabilityWeight) WeightType() string { return "probability" }

func (w ProbabilityWeight) String() string { return formatFloat(float64(w)) }

func (w ProbabilityWeight) Divide(other Weight, side DivideSide) (Weight, error) {
	o := other.(ProbabilityWeight)
	if o.IsZero() {
		return nil, ErrDivisionUndefined
	}
	return w / o, nil
}

var (
	_ Weight          = ProbabilityWeight(0)
	_ WeaklyDivisible = ProbabilityWeight(0)
)
