// Package shortestpath implements shortest-distance and n-shortest-path
// (spec.md §4.10): a generic relaxation driven by a pluggable Queue
// discipline, plus an n-best path search layered on top.
//
// Complexity:
//   - ShortestDistance: O((V+E) * queue-op-cost); FIFO/LIFO relax in
//     O(V+E) total (each state re-enqueued a bounded number of times on
//     acyclic/idempotent input), ShortestFirst adds an O(log V) heap
//     operation per relaxation (container/heap, grounded on
//     lvlath/dijkstra's lazy-decrease-key priority queue).
//   - Space: O(V) for the distance/residual arrays plus the queue.
package shortestpath

import (
	"container/heap"

	"github.com/katalvlaran/gofst/fst"
)

// Queue orders the states awaiting relaxation in ShortestDistance.
type Queue interface {
	Push(s fst.StateId)
	Pop() fst.StateId
	Empty() bool
}

// fifoQueue processes states in first-in-first-out order, appropriate
// for acyclic or loosely-structured inputs.
type fifoQueue struct{ items []fst.StateId }

// NewFIFOQueue constructs a first-in-first-out Queue.
func NewFIFOQueue() Queue { return &fifoQueue{} }

func (q *fifoQueue) Push(s fst.StateId) { q.items = append(q.items, s) }
func (q *fifoQueue) Pop() fst.StateId {
	s := q.items[0]
	q.items = q.items[1:]
	return s
}
func (q *fifoQueue) Empty() bool { return len(q.items) == 0 }

// lifoQueue processes states in last-in-first-out (stack) order, cheap
// and effective for idempotent, unweighted acceptors.
type lifoQueue struct{ items []fst.StateId }

// NewLIFOQueue constructs a last-in-first-out Queue.
func NewLIFOQueue() Queue { return &lifoQueue{} }

func (q *lifoQueue) Push(s fst.StateId) { q.items = append(q.items, s) }
func (q *lifoQueue) Pop() fst.StateId {
	s := q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]
	return s
}
func (q *lifoQueue) Empty() bool { return len(q.items) == 0 }

// topOrderQueue processes states in a caller-supplied topological order,
// the cheapest-correct discipline for an acyclic input: every state is
// relaxed exactly once, after every predecessor already has been.
type topOrderQueue struct {
	order   map[fst.StateId]int
	pending []fst.StateId
}

// NewTopOrderQueue constructs a Queue that pops the queued state with the
// smallest order[s] first. order is typically a topological rank.
func NewTopOrderQueue(order map[fst.StateId]int) Queue {
	return &topOrderQueue{order: order}
}

func (q *topOrderQueue) Push(s fst.StateId) { q.pending = append(q.pending, s) }
func (q *topOrderQueue) Pop() fst.StateId {
	best := 0
	for i := 1; i < len(q.pending); i++ {
		if q.order[q.pending[i]] < q.order[q.pending[best]] {
			best = i
		}
	}
	s := q.pending[best]
	q.pending = append(q.pending[:best], q.pending[best+1:]...)
	return s
}
func (q *topOrderQueue) Empty() bool { return len(q.pending) == 0 }

// shortestFirstHeap is a container/heap-backed min-heap over fst.StateId,
// ordered by dist[s].Equal-or-Plus-idempotent "natural order"
// (x <= y iff x ⊕ y == x), read from a live distance slice supplied by
// the caller. Stale entries (a state popped once already relaxed further)
// are tolerated via the same lazy-decrease-key strategy lvlath/dijkstra
// uses: duplicates may be pushed; ShortestDistance's caller is expected
// to skip a pop whose state no longer needs relaxing.
type shortestFirstHeap struct {
	items []fst.StateId
	less  func(a, b fst.StateId) bool
}

func (h *shortestFirstHeap) Len() int            { return len(h.items) }
func (h *shortestFirstHeap) Less(i, j int) bool  { return h.less(h.items[i], h.items[j]) }
func (h *shortestFirstHeap) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *shortestFirstHeap) Push(x interface{})  { h.items = append(h.items, x.(fst.StateId)) }
func (h *shortestFirstHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

type shortestFirstQueue struct{ h *shortestFirstHeap }

// NewShortestFirstQueue constructs a Queue that always pops the queued
// state with the smallest current distance, as judged by less(a, b) —
// typically "d[a] ⊕ d[b] == d[a] && !d[a].Equal(d[b])" for an idempotent
// semiring with the Path property (spec.md §4.10's "natural order").
func NewShortestFirstQueue(less func(a, b fst.StateId) bool) Queue {
	h := &shortestFirstHeap{less: less}
	heap.Init(h)
	return &shortestFirstQueue{h: h}
}

func (q *shortestFirstQueue) Push(s fst.StateId) { heap.Push(q.h, s) }
func (q *shortestFirstQueue) Pop() fst.StateId   { return heap.Pop(q.h).(fst.StateId) }
func (q *shortestFirstQueue) Empty() bool        { return q.h.Len() == 0 }
