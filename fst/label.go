package fst

// Label identifies a symbol on one side (input or output) of a transition.
// 0 is the distinguished epsilon label (spec.md §3).
type Label int64

// Epsilon is the distinguished "no symbol on this side" label.
const Epsilon Label = 0

// NoLabel is the reserved sentinel meaning "no label", used by algorithms
// (e.g. replace's root sentinel) that need a label value outside the alphabet.
const NoLabel Label = 1<<63 - 1

// StateId identifies a state within an Fst. Non-negative.
type StateId int64

// NoStateId is the reserved sentinel marking "no state" (e.g. an FST with
// no start state).
const NoStateId StateId = -1
