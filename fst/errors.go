// File: errors.go
// Role: sentinel errors shared across the fst package, mirroring the
// table in spec.md §7 and the sentinel-error policy of lvlath/core/types.go.

package fst

import "errors"

var (
	// ErrBadState indicates a state id outside [0, NumStates()).
	ErrBadState = errors.New("fst: state id out of range")

	// ErrInvalidLabel indicates an operation received a label unknown to
	// the relevant symbol table.
	ErrInvalidLabel = errors.New("fst: invalid label")

	// ErrNoStart indicates an operation required a start state but the FST
	// has none (Start() == NoStateId).
	ErrNoStart = errors.New("fst: no start state")
)
