// File: tr.go
// Role: Tr (transition) and Trs (transition sequence), the in-memory
// transition record and its cheaply-shareable slice, per spec.md §3.
// AI-HINT (file):
//   - Trs.ShallowClone is O(1): it shares the backing pointer, never copies Tr values.
//   - Use Trs.Slice(i,j) for matcher/compose windows instead of re-slicing
//     the backing array by hand; it preserves the shared-pointer contract.

package fst

import "github.com/katalvlaran/gofst/semiring"

// Tr is a single transition: an input label, an output label, a weight,
// and the id of the destination state. Trivially constructible and
// copyable by value.
type Tr struct {
	ILabel    Label
	OLabel    Label
	Weight    semiring.Weight
	NextState StateId
}

// NewTr constructs a Tr from its four fields.
func NewTr(ilabel, olabel Label, w semiring.Weight, next StateId) Tr {
	return Tr{ILabel: ilabel, OLabel: olabel, Weight: w, NextState: next}
}

// trsBacking is the backing array shared by pointer among every Trs view
// derived from the same owning slice, giving ShallowClone its O(1)
// pointer-copy semantics.
type trsBacking struct {
	data []Tr
}

// Trs is an owned-but-cheaply-shareable sequence of transitions. It is
// always a view (offset, length) over a shared backing array, so copying
// a Trs value is O(1): the backing array is never duplicated implicitly.
type Trs struct {
	backing *trsBacking
	offset  int
	length  int
}

// NewTrs wraps data as a fresh, uniquely-owned Trs (no other view shares
// its backing array yet).
func NewTrs(data []Tr) Trs {
	return Trs{backing: &trsBacking{data: data}, offset: 0, length: len(data)}
}

// Len returns the number of transitions in the view.
func (t Trs) Len() int { return t.length }

// At returns the i-th transition in the view (0 <= i < Len()).
func (t Trs) At(i int) Tr { return t.backing.data[t.offset+i] }

// Slice returns the sub-view [i,j) of t, sharing the same backing array.
func (t Trs) Slice(i, j int) Trs {
	return Trs{backing: t.backing, offset: t.offset + i, length: j - i}
}

// ShallowClone returns a copy of t that shares the same backing array.
// O(1): no transitions are copied.
func (t Trs) ShallowClone() Trs { return t }

// ToSlice materializes the view into a freshly allocated []Tr, safe for
// the caller to mutate without affecting other views.
func (t Trs) ToSlice() []Tr {
	out := make([]Tr, t.length)
	copy(out, t.backing.data[t.offset:t.offset+t.length])
	return out
}

// ForEach calls fn for every transition in the view, in order.
func (t Trs) ForEach(fn func(i int, tr Tr)) {
	for i := 0; i < t.length; i++ {
		fn(i, t.backing.data[t.offset+i])
	}
}
