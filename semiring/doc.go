// Package semiring defines the Weight contract and the concrete semirings
// that every FST in gofst is parameterized over: Boolean, Tropical, Log,
// Probability, Integer, Product, Union, String (left/right/restrict) and
// Gallic.
//
// A semiring is the algebraic tuple (T, ⊕, ⊗, 0̄, 1̄): a commutative monoid
// under ⊕, a monoid under ⊗, two-sided distributivity of ⊗ over ⊕, and
// 0̄ ⊗ x = x ⊗ 0̄ = 0̄. Weight is the capability-set contract every concrete
// type must satisfy; WeaklyDivisible and Quantizable are narrower
// capability interfaces that algorithms assert against at runtime, and the
// Path property bit is checked the same way (e.g. determinize requires
// WeaklyDivisible, shortest-path requires Path).
//
// Complexity: every Weight operation below is O(1) unless documented
// otherwise (Log's Plus evaluates one exp/log pair).
// Concurrency: Weight values are small, Copy-like, and immutable by
// convention; no locking is required to share them across goroutines.
package semiring

import "errors"

// Sentinel errors shared by every concrete semiring implementation.
var (
	// ErrNonFunctional is returned by StringWeight.Plus when two unequal,
	// non-zero string weights are combined under the Restrict variant.
	ErrNonFunctional = errors.New("semiring: non-functional input (unequal strings)")

	// ErrDivisionUndefined is returned by Divide when called on the wrong
	// side for the semiring, or when the divisor is Zero.
	ErrDivisionUndefined = errors.New("semiring: division undefined")

	// ErrUnsupported is returned when an algorithm requests a capability
	// (weak division, quantize, closure, path) the semiring does not provide.
	ErrUnsupported = errors.New("semiring: capability not supported")
)

// DivideSide selects which side of x ⊗ y = z to solve for y given x and z.
type DivideSide int

// Division sides accepted by WeaklyDivisible.Divide.
const (
	DivideLeft DivideSide = iota
	DivideRight
	DivideAny
)

// Properties is a small bitset describing the algebraic guarantees a
// concrete semiring makes; algorithms consult it to pick a cheaper
// specialization or to reject an unsupported combination up front.
type Properties uint8

// Property bits returned by Weight.Properties.
const (
	LeftSemiring Properties = 1 << iota
	RightSemiring
	Commutative
	Idempotent
	Path
)

// Has reports whether all bits in mask are set in p.
func (p Properties) Has(mask Properties) bool { return p&mask == mask }
