// File: skeleton.go
// Role: tiny fixed-shape VectorFst constructors used as the "skeleton FST"
// argument to replace (spec.md §4.15's table): closure, concat, and union
// are each a 1-3 state skeleton wired through nonterminal-labeled
// transitions to the caller's sub-FSTs. Grounded on lvlath/builder's
// Path/Cycle constructors (deterministic vertex/edge emission order).

package fst

import "github.com/katalvlaran/gofst/semiring"

// ClosureSkeletonStar builds the 1-state skeleton for closure(F, star):
// a single state, start==final, with a self-loop labeled nonterminal.
func ClosureSkeletonStar(one semiring.Weight, nonterminal Label) *VectorFst {
	v := NewVectorFst()
	s0 := v.AddState()
	_ = v.SetStart(s0)
	_ = v.SetFinal(s0, one)
	_ = v.AddTr(s0, NewTr(nonterminal, nonterminal, one, s0))
	return v
}

// ClosureSkeletonPlus builds the 2-state skeleton for closure(F, plus):
// 0 -> 1 via nonterminal, 1 -> 0 via epsilon, final at 1.
func ClosureSkeletonPlus(one semiring.Weight, nonterminal Label) *VectorFst {
	v := NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	_ = v.SetStart(s0)
	_ = v.SetFinal(s1, one)
	_ = v.AddTr(s0, NewTr(nonterminal, nonterminal, one, s1))
	_ = v.AddTr(s1, NewTr(Epsilon, Epsilon, one, s0))
	return v
}

// ConcatSkeleton builds the 3-state skeleton for concat(A,B):
// 0 -> 1 via ntA, 1 -> 2 via ntB, final at 2.
func ConcatSkeleton(one semiring.Weight, ntA, ntB Label) *VectorFst {
	v := NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	s2 := v.AddState()
	_ = v.SetStart(s0)
	_ = v.SetFinal(s2, one)
	_ = v.AddTr(s0, NewTr(ntA, ntA, one, s1))
	_ = v.AddTr(s1, NewTr(ntB, ntB, one, s2))
	return v
}

// UnionSkeleton builds the 2-state skeleton for union(A,B):
// 0 -> 1 via ntA or ntB, final at 1.
func UnionSkeleton(one semiring.Weight, ntA, ntB Label) *VectorFst {
	v := NewVectorFst()
	s0 := v.AddState()
	s1 := v.AddState()
	_ = v.SetStart(s0)
	_ = v.SetFinal(s1, one)
	_ = v.AddTr(s0, NewTr(ntA, ntA, one, s1))
	_ = v.AddTr(s0, NewTr(ntB, ntB, one, s1))
	return v
}
