package semiring

// BooleanWeight implements the Boolean semiring {false,true}: ⊕ is ∨,
// ⊗ is ∧, 0̄ is false, 1̄ is true. Idempotent, commutative, and a path
// semiring — the weight type of an unweighted acceptor.
type BooleanWeight bool

// BooleanZero is false.
const BooleanZero = BooleanWeight(false)

// BooleanOne is true.
const BooleanOne = BooleanWeight(true)

func (w BooleanWeight) Zero() Weight { return BooleanZero }
func (w BooleanWeight) One() Weight  { return BooleanOne }

func (w BooleanWeight) Plus(other Weight) (Weight, error) {
	return BooleanWeight(bool(w) || bool(other.(BooleanWeight))), nil
}

func (w BooleanWeight) Times(other Weight) (Weight, error) {
	return BooleanWeight(bool(w) && bool(other.(BooleanWeight))), nil
}

func (w BooleanWeight) IsZero() bool { return !bool(w) }
func (w BooleanWeight) IsOne() bool  { return bool(w) }

func (w BooleanWeight) Equal(other Weight) bool {
	o, ok := other.(BooleanWeight)
	return ok && w == o
}

func (w BooleanWeight) ApproxEqual(other Weight, delta float64) bool { return w.Equal(other) }

func (w BooleanWeight) Reverse() Weight { return w }

func (w BooleanWeight) Properties() Properties {
	return LeftSemiring | RightSemiring | Commutative | Idempotent | Path
}

func (w BooleanWeight) WeightType() string { return "boolean" }

func (w BooleanWeight) String() string {
	if w {
		return "1"
	}
	return "0"
}

var _ Weight = BooleanWeight(false)
