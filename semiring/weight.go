package semiring

// Weight is the capability every concrete semiring value satisfies. It is
// the re-expression of the original source's parametric `W: Semiring` bound
// as a Go interface so that Tr, Fst, and every algorithm package can be
// written once against semiring.Weight rather than monomorphized per type.
//
// Implementations are expected to be small, comparable-by-value types
// (a wrapped float64, int64, or string slice) so that copying a Weight
// around is cheap and safe to share across goroutines without locking.
type Weight interface {
	// Zero returns 0̄ for this semiring (the ⊕-identity / ⊗-annihilator).
	Zero() Weight

	// One returns 1̄ for this semiring (the ⊗-identity).
	One() Weight

	// Plus returns self ⊕ other. Returns ErrNonFunctional for semirings
	// (StringRestrict) where ⊕ of two unequal non-zero operands is undefined.
	Plus(other Weight) (Weight, error)

	// Times returns self ⊗ other.
	Times(other Weight) (Weight, error)

	// IsZero reports whether self equals 0̄.
	IsZero() bool

	// IsOne reports whether self equals 1̄.
	IsOne() bool

	// Equal reports exact equality.
	Equal(other Weight) bool

	// ApproxEqual reports equality within tolerance delta, used by minimize
	// and determinize when comparing accumulated float weights.
	ApproxEqual(other Weight, delta float64) bool

	// Reverse returns the weight's image under the reverse-weight
	// isomorphism (used by the reverse/shortest-distance-to-finals path).
	// Self-dual semirings (Tropical, Boolean, Probability, Log) return self.
	Reverse() Weight

	// Properties reports the algebraic guarantees this semiring makes.
	Properties() Properties

	// WeightType is the serialization tag written into an FstHeader
	// (e.g. "tropical", "log", "boolean").
	WeightType() string

	// String renders the weight for the text FST format.
	String() string
}

// WeaklyDivisible is implemented by semirings where x ⊗ y = z can be solved
// for one operand given the other two. Required by determinize, minimize,
// and push.
type WeaklyDivisible interface {
	Weight
	// Divide solves for the missing operand of self = lhs ⊗ missing (or
	// missing ⊗ rhs, depending on side). Returns ErrDivisionUndefined if
	// side does not match the semiring's divisibility or other is Zero.
	Divide(other Weight, side DivideSide) (Weight, error)
}

// Quantizable is implemented by semirings with a numeric representative
// that can be snapped to a grid of width delta, making approximate equality
// usable as exact equality for minimize's state-partition refinement.
type Quantizable interface {
	Weight
	Quantize(delta float64) Weight
}

// StarSemiring is implemented by semirings with a closure operator
// x* = 1̄ ⊕ x ⊕ x² ⊕ …. No algorithm in gofst calls Star; rm-epsilon's
// epsilon closure sums with Plus and Times only.
type StarSemiring interface {
	Weight
	Star() (Weight, error)
}
