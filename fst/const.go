// File: const.go
// Role: ConstFst (C6), the immutable, read-optimized packed layout: a flat
// Tr array indexed by state-pos plus a parallel ConstState array, per
// spec.md §4.4. Convertible to/from VectorFst by flattening/materializing.

package fst

import "github.com/katalvlaran/gofst/semiring"

// ConstState is one state's entry in a ConstFst: its final weight and the
// [pos, pos+ntrs) window into the flat transition array, plus cached
// epsilon counts.
type ConstState struct {
	Final      semiring.Weight
	Pos        int
	NTrs       int
	NIEpsilons int
	NOEpsilons int
}

// ConstFst is the immutable, read-optimized FST engine: a flat Tr array
// plus a parallel ConstState array. Faster to traverse than VectorFst
// (no per-state slice header indirection) at the cost of being immutable.
type ConstFst struct {
	trs    []Tr
	states []ConstState
	start  StateId
	props  Properties

	isymt SymbolTableRef
	osymt SymbolTableRef
}

// NewConstFstFromVector flattens v into an immutable ConstFst.
//
// Complexity: O(V+E).
func NewConstFstFromVector(v *VectorFst) *ConstFst {
	n := v.NumStates()
	c := &ConstFst{
		states: make([]ConstState, n),
		start:  v.Start(),
		props:  v.Properties(),
		isymt:  v.InputSymbols(),
		osymt:  v.OutputSymbols(),
	}
	pos := 0
	for s := 0; s < n; s++ {
		trs := v.Trs(StateId(s))
		final, _ := v.Final(StateId(s))
		cs := ConstState{Final: final, Pos: pos, NTrs: trs.Len()}
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			c.trs = append(c.trs, tr)
			if tr.ILabel == Epsilon {
				cs.NIEpsilons++
			}
			if tr.OLabel == Epsilon {
				cs.NOEpsilons++
			}
		}
		pos += trs.Len()
		c.states[s] = cs
	}
	return c
}

// ToVectorFst materializes c back into a fresh, independently-mutable
// VectorFst.
//
// Complexity: O(V+E).
func (c *ConstFst) ToVectorFst() *VectorFst {
	v := NewVectorFst()
	for range c.states {
		v.AddState()
	}
	for s, cs := range c.states {
		if cs.Final != nil && !cs.Final.IsZero() {
			_ = v.SetFinal(StateId(s), cs.Final)
		}
		trs := append([]Tr(nil), c.trs[cs.Pos:cs.Pos+cs.NTrs]...)
		v.SetTrs(StateId(s), trs)
	}
	if c.start != NoStateId {
		_ = v.SetStart(c.start)
	}
	v.SetInputSymbols(c.isymt)
	v.SetOutputSymbols(c.osymt)
	v.SetProperties(c.props)
	return v
}

func (c *ConstFst) Start() StateId    { return c.start }
func (c *ConstFst) NumStates() int    { return len(c.states) }
func (c *ConstFst) Properties() Properties { return c.props }

func (c *ConstFst) Trs(s StateId) Trs {
	cs := c.states[s]
	return NewTrs(append([]Tr(nil), c.trs[cs.Pos:cs.Pos+cs.NTrs]...))
}

func (c *ConstFst) Final(s StateId) (semiring.Weight, bool) {
	w := c.states[s].Final
	if w == nil || w.IsZero() {
		return nil, false
	}
	return w, true
}

func (c *ConstFst) InputSymbols() SymbolTableRef  { return c.isymt }
func (c *ConstFst) OutputSymbols() SymbolTableRef { return c.osymt }

// NumInputEpsilons returns the cached count for s, O(1).
func (c *ConstFst) NumInputEpsilons(s StateId) int { return c.states[s].NIEpsilons }

// NumOutputEpsilons returns the cached count for s, O(1).
func (c *ConstFst) NumOutputEpsilons(s StateId) int { return c.states[s].NOEpsilons }

var _ Reader = (*ConstFst)(nil)
