package shortestpath

import (
	"container/heap"
	"errors"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
)

// ErrPathRequired is returned when ShortestPath is asked to run over a
// semiring that does not satisfy the Path property (spec.md §4.10):
// without a total natural order there is no well-defined "n best" path.
var ErrPathRequired = errors.New("shortestpath: semiring does not satisfy the Path property")

// pathNode is one step of a partial path discovered during the n-best
// search: the state reached, the ⊗-accumulated weight to reach it, and a
// parent index (-1 for the root) letting ShortestPath reconstruct the
// full (ilabel, olabel) sequence once a final state is popped.
type pathNode struct {
	state    fst.StateId
	weight   semiring.Weight
	priority semiring.Weight // weight ⊗ heuristic(state), used only for ordering
	parent   int
	ilabel   fst.Label
	olabel   fst.Label
	trWeight semiring.Weight // weight of the transition that reached state
}

type pathHeap struct {
	nodes []pathNode
	less  func(a, b semiring.Weight) bool
}

func (h *pathHeap) Len() int { return len(h.nodes) }
func (h *pathHeap) Less(i, j int) bool {
	return h.less(h.nodes[i].priority, h.nodes[j].priority)
}
func (h *pathHeap) Swap(i, j int) { h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i] }
func (h *pathHeap) Push(x interface{}) {
	h.nodes = append(h.nodes, x.(pathNode))
}
func (h *pathHeap) Pop() interface{} {
	old := h.nodes
	n := len(old)
	item := old[n-1]
	h.nodes = old[:n-1]
	return item
}

// naturalLess reports a < b under the idempotent semiring's natural
// order: a <= b iff a ⊕ b == a, and a < b additionally requires a != b.
func naturalLess(a, b semiring.Weight) bool {
	sum := plus(a, b)
	return sum.Equal(a) && !a.Equal(b)
}

// ShortestPath returns the n lowest-weight accepting paths of r as a
// single VectorFst: a shared start state branching into n linear chains,
// one per path, each keeping the path's original transition weights and
// ending in its own final state carrying the original final weight of the
// path's last state (spec.md §4.10). If unique is true, paths that accept the
// same output-label sequence as an already-found path are skipped so
// that every accepted output string in the result is distinct.
//
// Complexity: O(n * (V+E) * log V) — one reverse shortest-distance pass
// to build the admissible heuristic, then a heap-driven best-first search
// bounded to at most n expansions per state (grounded on
// lvlath/dijkstra's lazy-decrease-key priority queue, generalized to an
// A*-style search ordered by weight ⊗ heuristic instead of raw distance).
func ShortestPath(r fst.Reader, n int, unique bool) (*fst.VectorFst, error) {
	out := fst.NewVectorFst()
	if n <= 0 {
		return out, nil
	}
	zero, ok := inferZero(r)
	if !ok {
		root := out.AddState()
		_ = out.SetStart(root)
		return out, nil
	}
	if !zero.Properties().Has(semiring.Path) {
		return nil, ErrPathRequired
	}
	start := r.Start()
	if start == fst.NoStateId {
		root := out.AddState()
		_ = out.SetStart(root)
		return out, nil
	}

	h, err := ShortestDistance(r, WithReverse(true))
	if err != nil {
		return nil, err
	}
	heuristic := func(s fst.StateId) semiring.Weight {
		if int(s) < len(h) {
			return h[s]
		}
		return zero
	}

	one := zero.One()
	var nodes []pathNode
	pq := &pathHeap{less: naturalLess}
	heap.Init(pq)
	heap.Push(pq, pathNode{state: start, weight: one, priority: heuristic(start), parent: -1})

	numStates := r.NumStates()
	repeats := make([]int, numStates)
	type found struct {
		weight semiring.Weight
		path   []pathNode // root..final, in order, excluding the synthetic root
	}
	var results []found
	seen := map[string]bool{}

	for pq.Len() > 0 && len(results) < n {
		cur := heap.Pop(pq).(pathNode)
		idx := len(nodes)
		nodes = append(nodes, cur)

		if fw, ok := r.Final(cur.state); ok {
			chain := reconstruct(nodes, idx)
			if !unique || !seen[outputKey(chain)] {
				seen[outputKey(chain)] = true
				results = append(results, found{weight: fw, path: chain})
				if len(results) >= n {
					break
				}
			}
		}

		if repeats[cur.state] >= n {
			continue
		}
		repeats[cur.state]++

		trs := r.Trs(cur.state)
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			childWeight := times(cur.weight, tr.Weight)
			prio := times(childWeight, heuristic(tr.NextState))
			heap.Push(pq, pathNode{
				state:    tr.NextState,
				weight:   childWeight,
				priority: prio,
				parent:   idx,
				ilabel:   tr.ILabel,
				olabel:   tr.OLabel,
				trWeight: tr.Weight,
			})
		}
	}

	root := out.AddState()
	_ = out.SetStart(root)
	for _, f := range results {
		cursor := root
		for _, step := range f.path {
			next := out.AddState()
			_ = out.AddTr(cursor, fst.NewTr(step.ilabel, step.olabel, step.trWeight, next))
			cursor = next
		}
		_ = out.SetFinal(cursor, f.weight)
	}
	out.SetInputSymbols(r.InputSymbols())
	out.SetOutputSymbols(r.OutputSymbols())
	out.SetProperties(fst.ComputeProperties(out))
	return out, nil
}

// reconstruct walks nodes[idx] back to the synthetic root (parent -1),
// returning the path in root-to-leaf order with per-step transition
// labels and the *cumulative* weight at each step (matching pathNode.weight).
func reconstruct(nodes []pathNode, idx int) []pathNode {
	var rev []pathNode
	for i := idx; nodes[i].parent != -1 || i == idx; {
		rev = append(rev, nodes[i])
		if nodes[i].parent == -1 {
			break
		}
		i = nodes[i].parent
	}
	out := make([]pathNode, len(rev))
	for i, n := range rev {
		out[len(rev)-1-i] = n
	}
	return out
}

func outputKey(chain []pathNode) string {
	b := make([]byte, 0, len(chain)*8)
	for _, n := range chain {
		v := int64(n.olabel)
		for i := 0; i < 8; i++ {
			b = append(b, byte(v>>(8*i)))
		}
	}
	return string(b)
}
