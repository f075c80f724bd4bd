package shortestpath

import (
	"errors"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
)

// ErrNoQueue is returned when ShortestDistance is asked to run over an
// empty FST with no zero weight to fall back on (nothing to infer the
// semiring from).
var ErrNoQueue = errors.New("shortestpath: cannot infer semiring from an empty, weightless fst")

// plus/times panic on error, mirroring rmepsilon's wrapper: shortest
// distance only ever combines weights drawn from the caller's own
// semiring, so a Plus/Times failure here means the semiring (most likely
// a non-functional StringWeightRestrict) cannot back shortest-distance at
// all, which the caller is expected to have ruled out by construction.
func plus(a, b semiring.Weight) semiring.Weight {
	w, err := a.Plus(b)
	if err != nil {
		panic(err)
	}
	return w
}

func times(a, b semiring.Weight) semiring.Weight {
	w, err := a.Times(b)
	if err != nil {
		panic(err)
	}
	return w
}

// QueueKind selects the discipline ShortestDistance uses to decide which
// state to relax next (spec.md §4.10).
type QueueKind int

// Queue disciplines. Auto inspects the semiring's Properties and picks
// ShortestFirst for an Idempotent+Path semiring and FIFO otherwise (see
// pickQueue). TopOrder has no order source inside ShortestDistance and
// runs as FIFO.
const (
	FIFO QueueKind = iota
	LIFO
	TopOrder
	ShortestFirst
	Auto
)

// Options configures ShortestDistance / ShortestPath.
type Options struct {
	// QueueKind selects the relaxation discipline. Defaults to Auto.
	QueueKind QueueKind
	// Reverse computes distance-to-final (over the reversed transition
	// relation) instead of distance-from-start.
	Reverse bool
	// Delta is the convergence/quantization tolerance used when the
	// semiring is Quantizable; 0 means exact (semiring.Weight.Equal).
	Delta float64
}

// Option mutates an Options value under construction.
type Option func(*Options)

// WithQueueKind overrides the default Auto queue selection.
func WithQueueKind(k QueueKind) Option { return func(o *Options) { o.QueueKind = k } }

// WithReverse computes shortest distance to the final states instead of
// from the start state.
func WithReverse(r bool) Option { return func(o *Options) { o.Reverse = r } }

// WithDelta sets the quantization tolerance for Quantizable semirings.
func WithDelta(d float64) Option { return func(o *Options) { o.Delta = d } }

func resolveOptions(opts ...Option) Options {
	o := Options{QueueKind: Auto}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// inferZero finds a representative Zero() weight by scanning transitions
// and final weights, since an empty Reader carries no semiring witness.
func inferZero(r fst.Reader) (semiring.Weight, bool) {
	for s := fst.StateId(0); int(s) < r.NumStates(); s++ {
		trs := r.Trs(s)
		if trs.Len() > 0 {
			return trs.At(0).Weight.Zero(), true
		}
		if fw, ok := r.Final(s); ok {
			return fw.Zero(), true
		}
	}
	return nil, false
}

// pickQueue resolves Auto to a concrete discipline given the semiring's
// properties: an Idempotent+Path semiring (tropical, boolean; log is
// neither) gets the heap-backed ShortestFirst so that
// cyclic input still converges in finitely many relaxations; anything
// else falls back to FIFO, matching acyclic/short-chain usage.
func pickQueue(kind QueueKind, zero semiring.Weight, dist []semiring.Weight) Queue {
	switch kind {
	case FIFO:
		return NewFIFOQueue()
	case LIFO:
		return NewLIFOQueue()
	case ShortestFirst:
		return newNaturalOrderQueue(dist)
	case Auto:
		if zero.Properties().Has(semiring.Idempotent | semiring.Path) {
			return newNaturalOrderQueue(dist)
		}
		return NewFIFOQueue()
	default:
		return NewFIFOQueue()
	}
}

// newNaturalOrderQueue builds a ShortestFirstQueue ordered by the
// idempotent semiring's natural order: a <= b iff a ⊕ b == a.
func newNaturalOrderQueue(dist []semiring.Weight) Queue {
	less := func(a, b fst.StateId) bool {
		da, db := dist[a], dist[b]
		sum := plus(da, db)
		return sum.Equal(da) && !da.Equal(db)
	}
	return NewShortestFirstQueue(less)
}

// ShortestDistance computes, for every state q, the ⊕-sum over all paths
// from the start state to q (or, in Reverse mode, from q to some final
// state weighted by its final weight) — the Mohri generic single-source
// shortest-distance algorithm genericized over semiring.Weight.
func ShortestDistance(r fst.Reader, opts ...Option) ([]semiring.Weight, error) {
	o := resolveOptions(opts...)
	n := r.NumStates()
	zero, ok := inferZero(r)
	if !ok {
		return nil, ErrNoQueue
	}
	if n == 0 {
		return nil, nil
	}

	if o.Reverse {
		return shortestDistanceReverse(r, zero, o)
	}
	return shortestDistanceForward(r, zero, o)
}

func shortestDistanceForward(r fst.Reader, zero semiring.Weight, o Options) ([]semiring.Weight, error) {
	n := r.NumStates()
	d := make([]semiring.Weight, n)
	rr := make([]semiring.Weight, n)
	for i := range d {
		d[i] = zero
		rr[i] = zero
	}
	start := r.Start()
	if start == fst.NoStateId {
		return d, nil
	}
	one := zero.One()
	d[start] = one
	rr[start] = one

	enqueued := make([]bool, n)
	q := pickQueue(o.QueueKind, zero, d)
	q.Push(start)
	enqueued[start] = true

	for !q.Empty() {
		s := q.Pop()
		enqueued[s] = false
		rState := rr[s]
		rr[s] = zero
		trs := r.Trs(s)
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			next := tr.NextState
			candidate := times(rState, tr.Weight)
			oldD := d[next]
			newD := plus(oldD, candidate)
			if !approxEqual(oldD, newD, o.Delta) {
				d[next] = newD
				rr[next] = plus(rr[next], candidate)
				if !enqueued[next] {
					q.Push(next)
					enqueued[next] = true
				}
			}
		}
	}
	return d, nil
}

// shortestDistanceReverse computes distance to a final state by running
// the forward relaxation over a materialized reverse adjacency list, with
// every final state seeded by its own final weight instead of a uniform
// one-weight start.
func shortestDistanceReverse(r fst.Reader, zero semiring.Weight, o Options) ([]semiring.Weight, error) {
	n := r.NumStates()
	type redge struct {
		to fst.StateId
		w  semiring.Weight
	}
	rev := make([][]redge, n)
	for s := fst.StateId(0); int(s) < n; s++ {
		trs := r.Trs(s)
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			rev[tr.NextState] = append(rev[tr.NextState], redge{to: s, w: tr.Weight})
		}
	}

	d := make([]semiring.Weight, n)
	rr := make([]semiring.Weight, n)
	for i := range d {
		d[i] = zero
		rr[i] = zero
	}
	enqueued := make([]bool, n)
	q := pickQueue(o.QueueKind, zero, d)
	for s := fst.StateId(0); int(s) < n; s++ {
		if fw, ok := r.Final(s); ok {
			d[s] = fw
			rr[s] = fw
			q.Push(s)
			enqueued[s] = true
		}
	}

	for !q.Empty() {
		s := q.Pop()
		enqueued[s] = false
		rState := rr[s]
		rr[s] = zero
		for _, e := range rev[s] {
			candidate := times(e.w, rState)
			oldD := d[e.to]
			newD := plus(oldD, candidate)
			if !approxEqual(oldD, newD, o.Delta) {
				d[e.to] = newD
				rr[e.to] = plus(rr[e.to], candidate)
				if !enqueued[e.to] {
					q.Push(e.to)
					enqueued[e.to] = true
				}
			}
		}
	}
	return d, nil
}

func approxEqual(a, b semiring.Weight, delta float64) bool {
	if delta > 0 {
		return a.ApproxEqual(b, delta)
	}
	return a.Equal(b)
}
