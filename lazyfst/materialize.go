// File: materialize.go
// Role: Materialize, the reachability traversal that turns any fst.Reader
// (lazy or eager) into a freshly populated, independently-mutable
// VectorFst, visiting only states reachable from the start state (spec.md
// §4.5 "Materialization"). Grounded on lvlath/bfs's queue-and-visited
// traversal shape, generalized from string vertex ids to dense StateIds.

package lazyfst

import "github.com/katalvlaran/gofst/fst"

// Materialize performs a breadth-first reachability traversal of r from
// its start state, populating a new VectorFst with exactly the reachable
// states, their transitions, and final weights.
//
// Complexity: O(V+E) in the size of the reachable subgraph.
func Materialize(r fst.Reader) *fst.VectorFst {
	out := fst.NewVectorFst()
	start := r.Start()
	if start == fst.NoStateId {
		return out
	}

	visited := map[fst.StateId]fst.StateId{} // source id -> out id
	queue := []fst.StateId{start}
	visited[start] = out.AddState()
	_ = out.SetStart(visited[start])

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		outID := visited[s]

		if w, ok := r.Final(s); ok {
			_ = out.SetFinal(outID, w)
		}

		trs := r.Trs(s)
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			dstOut, seen := visited[tr.NextState]
			if !seen {
				dstOut = out.AddState()
				visited[tr.NextState] = dstOut
				queue = append(queue, tr.NextState)
			}
			_ = out.AddTr(outID, fst.NewTr(tr.ILabel, tr.OLabel, tr.Weight, dstOut))
		}
	}

	out.SetInputSymbols(r.InputSymbols())
	out.SetOutputSymbols(r.OutputSymbols())
	out.SetProperties(fst.ComputeProperties(out))
	return out
}
