package semiring

import "math"

// LogWeight implements the log semiring over ℝ ∪ {+∞}: values are stored
// as -log(probability), ⊕ is log-sum-exp (so that probabilities actually
// add), ⊗ is +, 0̄ is +∞, 1̄ is 0. Commutative but not idempotent, so Log
// does not satisfy the Path property and cannot back shortest-path.
type LogWeight float64

// LogZero is +∞.
var LogZero = LogWeight(math.Inf(1))

// LogOne is 0.
const LogOne = LogWeight(0)

// NewLogWeight constructs a LogWeight from a raw float64 (a -log probability).
func NewLogWeight(v float64) LogWeight { return LogWeight(v) }

func (w LogWeight) Zero() Weight { return LogZero }
func (w LogWeight) One() Weight  { return LogOne }

// Plus implements log-sum-exp: -log(e^-w + e^-other) computed in the
// numerically stable min+log1p form.
func (w LogWeight) Plus(other Weight) (Weight, error) {
	o := other.(LogWeight)
	if w.IsZero() {
		return o, nil
	}
	if o.IsZero() {
		return w, nil
	}
	a, b := float64(w), float64(o)
	if b < a {
		a, b = b, a
	}
	return LogWeight(a - math.Log1p(math.Exp(a-b))), nil
}

func (w LogWeight) Times(other Weight) (Weight, error) {
	o := other.(LogWeight)
	if w.IsZero() || o.IsZero() {
		return LogZero, nil
	}
	return w + o, nil
}

func (w LogWeight) IsZero() bool { return math.IsInf(float64(w), 1) }
func (w LogWeight) IsOne() bool  { return float64(w) == 0 }

func (w LogWeight) Equal(other Weight) bool {
	o, ok := other.(LogWeight)
	return ok && float64(w) == float64(o)
}

func (w LogWeight) ApproxEqual(other Weight, delta float64) bool {
	o := other.(LogWeight)
	if w.IsZero() && o.IsZero() {
		return true
	}
	return math.Abs(float64(w)-float64(o)) <= delta
}

// Reverse returns w unchanged: Log is self-dual.
func (w LogWeight) Reverse() Weight { return w }

func (w LogWeight) Properties() Properties { return LeftSemiring | RightSemiring | Commutative }

func (w LogWeight) WeightType() string { return "log" }

func (w LogWeight) String() string {
	if w.IsZero() {
		return "Infinity"
	}
	return formatFloat(float64(w))
}

// Divide solves w = other + missing, commutative so side is irrelevant.
func (w LogWeight) Divide(other Weight, side DivideSide) (Weight, error) {
	o := other.(LogWeight)
	if o.IsZero() {
		return nil, ErrDivisionUndefined
	}
	if w.IsZero() {
		return LogZero, nil
	}
	return w - o, nil
}

func (w LogWeight) Quantize(delta float64) Weight {
	if w.IsZero() || delta <= 0 {
		return w
	}
	return LogWeight(math.Floor(float64(w)/delta+0.5) * delta)
}

var (
	_ Weight          = LogWeight(0)
	_ WeaklyDivisible = LogWeight(0)
	_ Quantizable     = LogWeight(0)
)
