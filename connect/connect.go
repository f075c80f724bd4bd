// Package connect trims an FST down to its accessible-and-coaccessible
// core: states reachable from the start state that can also reach some
// final state (spec.md §4.12). Every other state, and every transition
// touching one, is dead weight that Compose and Determinize would
// otherwise have to visit for nothing.
//
// Complexity:
//   - Time:  O(V+E), one forward DFS from the start state and one
//     reverse DFS seeded at every final state.
//   - Space: O(V+E) for the reverse adjacency list and the two
//     visited-state sets.
package connect

import "github.com/katalvlaran/gofst/fst"

// Connect removes every state of m that is not both accessible from the
// start state and coaccessible to some final state, along with any
// transition that referenced a removed state. m is modified in place.
func Connect(m fst.Mutable) {
	n := m.NumStates()
	if n == 0 || m.Start() == fst.NoStateId {
		keepNone(m)
		m.SetProperties(fst.ComputeProperties(m))
		return
	}

	accessible := forwardReachable(m, n)
	coaccessible := backwardReachable(m, n)

	dead := make([]fst.StateId, 0, n)
	for s := 0; s < n; s++ {
		id := fst.StateId(s)
		if !accessible[s] || !coaccessible[s] {
			dead = append(dead, id)
		}
	}
	if len(dead) > 0 {
		m.DeleteStates(dead)
	}
	m.SetProperties(fst.ComputeProperties(m))
}

// forwardReachable runs a DFS from m's start state over the transition
// relation, grounded on lvlath/dfs's stack-based three-color traversal,
// generalized from string vertex ids to dense StateIds.
func forwardReachable(m fst.Mutable, n int) []bool {
	seen := make([]bool, n)
	stack := []fst.StateId{m.Start()}
	seen[m.Start()] = true
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		trs := m.Trs(s)
		for i := 0; i < trs.Len(); i++ {
			next := trs.At(i).NextState
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return seen
}

// backwardReachable runs a DFS over the reverse transition relation,
// seeded at every final state.
func backwardReachable(m fst.Mutable, n int) []bool {
	rev := make([][]fst.StateId, n)
	for s := 0; s < n; s++ {
		trs := m.Trs(fst.StateId(s))
		for i := 0; i < trs.Len(); i++ {
			next := trs.At(i).NextState
			rev[next] = append(rev[next], fst.StateId(s))
		}
	}

	seen := make([]bool, n)
	var stack []fst.StateId
	for s := 0; s < n; s++ {
		if _, ok := m.Final(fst.StateId(s)); ok {
			if !seen[s] {
				seen[s] = true
				stack = append(stack, fst.StateId(s))
			}
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, prev := range rev[s] {
			if !seen[prev] {
				seen[prev] = true
				stack = append(stack, prev)
			}
		}
	}
	return seen
}

// keepNone empties m: an FST with no start state (or no states at all)
// accepts nothing, so its connected core is empty.
func keepNone(m fst.Mutable) {
	n := m.NumStates()
	if n == 0 {
		return
	}
	all := make([]fst.StateId, n)
	for i := range all {
		all[i] = fst.StateId(i)
	}
	m.DeleteStates(all)
}
