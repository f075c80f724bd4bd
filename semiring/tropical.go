package semiring

import "math"

// TropicalWeight implements the tropical (min, +) semiring over ℝ ∪ {+∞}.
// It is the default weight type for shortest-path style FSTs: ⊕ is min,
// ⊗ is +, 0̄ is +∞, 1̄ is 0. Tropical is idempotent, commutative, and a
// path semiring (⊕ always selects one of its operands), so it satisfies
// the precondition for shortest-path (spec.md §4.10).
type TropicalWeight float64

// TropicalZero is +∞, the tropical semiring's 0̄.
var TropicalZero = TropicalWeight(math.Inf(1))

// TropicalOne is 0, the tropical semiring's 1̄.
const TropicalOne = TropicalWeight(0)

// NewTropicalWeight constructs a TropicalWeight from a raw float64.
func NewTropicalWeight(v float64) TropicalWeight { return TropicalWeight(v) }

// Zero returns +∞.
func (w TropicalWeight) Zero() Weight { return TropicalZero }

// One returns 0.
func (w TropicalWeight) One() Weight { return TropicalOne }

// Plus returns min(w, other).
func (w TropicalWeight) Plus(other Weight) (Weight, error) {
	o := other.(TropicalWeight)
	if o < w {
		return o, nil
	}
	return w, nil
}

// Times returns w + other, saturating at +∞ if either operand is Zero.
func (w TropicalWeight) Times(other Weight) (Weight, error) {
	o := other.(TropicalWeight)
	if w.IsZero() || o.IsZero() {
		return TropicalZero, nil
	}
	return w + o, nil
}

// IsZero reports whether w is +∞.
func (w TropicalWeight) IsZero() bool { return math.IsInf(float64(w), 1) }

// IsOne reports whether w is exactly 0.
func (w TropicalWeight) IsOne() bool { return float64(w) == 0 }

// Equal reports exact float equality (or both +∞).
func (w TropicalWeight) Equal(other Weight) bool {
	o, ok := other.(TropicalWeight)
	return ok && float64(w) == float64(o)
}

// ApproxEqual reports |w-other| <= delta, treating two +∞ as equal.
func (w TropicalWeight) ApproxEqual(other Weight, delta float64) bool {
	o := other.(TropicalWeight)
	if w.IsZero() && o.IsZero() {
		return true
	}
	return math.Abs(float64(w)-float64(o)) <= delta
}

// Reverse returns w unchanged: tropical is self-dual.
func (w TropicalWeight) Reverse() Weight { return w }

// Properties reports idempotent, commutative, path, left+right semiring.
func (w TropicalWeight) Properties() Properties {
	return LeftSemiring | RightSemiring | Commutative | Idempotent | Path
}

// WeightType returns "tropical".
func (w TropicalWeight) WeightType() string { return "tropical" }

func (w TropicalWeight) String() string {
	if w.IsZero() {
		return "Infinity"
	}
	return formatFloat(float64(w))
}

// Divide solves w = other ⊗ missing, i.e. missing = w - other, valid from
// either side since tropical ⊗ (+) is commutative.
func (w TropicalWeight) Divide(other Weight, side DivideSide) (Weight, error) {
	o := other.(TropicalWeight)
	if o.IsZero() {
		return nil, ErrDivisionUndefined
	}
	if w.IsZero() {
		return TropicalZero, nil
	}
	return w - o, nil
}

// Quantize snaps w to the nearest multiple of delta.
func (w TropicalWeight) Quantize(delta float64) Weight {
	if w.IsZero() || delta <= 0 {
		return w
	}
	return TropicalWeight(math.Floor(float64(w)/delta+0.5) * delta)
}

var (
	_ Weight          = TropicalWeight(0)
	_ WeaklyDivisible = TropicalWeight(0)
	_ Quantizable     = TropicalWeight(0)
)
