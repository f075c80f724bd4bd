// File: traits.go
// Role: the contract every engine implements (C4), re-expressing the
// original source's existential-polymorphism-over-engines as Go
// interfaces: Reader (read-only traversal) and Mutable (in-place edits).

package fst

import "github.com/katalvlaran/gofst/semiring"

// Reader is the read contract every FST engine (vector, const, lazy)
// implements: start state, per-state transitions, and per-state final
// weight. Algorithms that only need to traverse an FST accept a Reader.
type Reader interface {
	// Start returns the start state, or NoStateId if none.
	Start() StateId

	// NumStates returns |Q|. For a lazy Fst this forces full expansion;
	// prefer NumKnownStates on lazy readers when only a lower bound will do.
	NumStates() int

	// Trs returns the outgoing transitions of s as a Trs view.
	Trs(s StateId) Trs

	// Final returns (weight, true) if s is final (weight != 0̄), or
	// (nil, false) if s is not final.
	Final(s StateId) (semiring.Weight, bool)

	// InputSymbols returns the input alphabet, or nil if unset.
	InputSymbols() SymbolTableRef

	// OutputSymbols returns the output alphabet, or nil if unset.
	OutputSymbols() SymbolTableRef

	// Properties returns the currently-known property bits.
	Properties() Properties
}

// SymbolTableRef is the narrow read contract fst needs from a symbol
// table, satisfied by *symtab.SymbolTable without fst importing symtab
// for its exported API surface (keeps fst's public contract engine-
// agnostic, matching how the original source keeps Arc<SymbolTable> behind
// a trait rather than a concrete import in fst_traits).
type SymbolTableRef interface {
	Label(sym string) (int64, error)
	Symbol(label int64) (string, error)
	Len() int
}

// Mutable is the write contract VectorFst implements: add states and
// transitions, set start/final, delete, and replace a state's outgoing
// transitions wholesale (used by code that rebuilds a state in place,
// e.g. trsort's per-state sort and RelabelPairs).
type Mutable interface {
	Reader

	// AddState appends a new, non-final state with no transitions and
	// returns its id (== NumStates() before the add).
	AddState() StateId

	// SetStart sets the start state. s must be a valid state id.
	SetStart(s StateId) error

	// SetFinal sets s's final weight. A Zero() weight is equivalent to
	// "not final" per spec.md §3.
	SetFinal(s StateId, w semiring.Weight) error

	// AddTr appends tr to s's outgoing transitions.
	AddTr(s StateId, tr Tr) error

	// SetTrs replaces s's entire outgoing transition list.
	SetTrs(s StateId, trs []Tr)

	// DeleteStates removes the given states (and every transition
	// referencing them), shifting remaining state ids downward to stay
	// dense. ids need not be sorted; duplicates are ignored.
	DeleteStates(ids []StateId)

	// SetInputSymbols / SetOutputSymbols attach alphabets.
	SetInputSymbols(st SymbolTableRef)
	SetOutputSymbols(st SymbolTableRef)

	// SetProperties overwrites the known property bits, used by
	// algorithms that compute properties out of band (e.g. after a bulk
	// rebuild) and want to avoid a redundant ComputeProperties pass.
	SetProperties(p Properties)
}
