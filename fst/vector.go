// File: vector.go
// Role: VectorFst (C5), the eager adjacency-list engine and primary
// mutable representation, mirroring lvlath/core.Graph's locking and
// clone/view conventions but over (state, Trs, final-weight) rather than
// a vertex/edge catalog.
// Concurrency:
//   - mu guards states, start, and the property bitset as one unit
//     (matching core.Graph's muVert/muEdgeAdj split, collapsed to one
//     lock here since state and transition lists are always rebuilt
//     together by Mutable's API).
// AI-HINT (file):
//   - DeleteStates shifts ids downward; never hold onto a StateId across
//     a DeleteStates call without remapping it first.

package fst

import (
	"sync"

	"github.com/katalvlaran/gofst/semiring"
)

// vecState is one state's storage: final weight (nil == non-final), its
// outgoing transitions, and cached epsilon counts (spec.md §4.3).
type vecState struct {
	final       semiring.Weight
	trs         []Tr
	niEpsilons  int
	noEpsilons  int
}

// VectorFst is the eager, adjacency-list-backed mutable FST engine.
type VectorFst struct {
	mu sync.RWMutex

	states []vecState
	start  StateId
	props  Properties

	isymt SymbolTableRef
	osymt SymbolTableRef
}

// NewVectorFst constructs an empty VectorFst with no states and no start.
func NewVectorFst() *VectorFst {
	return &VectorFst{start: NoStateId, props: Acceptor | NoEpsilons | NoIEpsilons | NoOEpsilons |
		ILabelSorted | OLabelSorted | Unweighted | Acyclic | InitialAcyclic | Accessible | Coaccessible |
		IDeterministic | TopSorted}
}

// Start returns the start state, or NoStateId.
func (f *VectorFst) Start() StateId {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.start
}

// NumStates returns |Q|.
func (f *VectorFst) NumStates() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.states)
}

// Trs returns a Trs view over a copy of s's outgoing transitions.
func (f *VectorFst) Trs(s StateId) Trs {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return NewTrs(append([]Tr(nil), f.states[s].trs...))
}

// Final returns s's final weight, or (nil,false) if s is non-final.
func (f *VectorFst) Final(s StateId) (semiring.Weight, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	w := f.states[s].final
	if w == nil || w.IsZero() {
		return nil, false
	}
	return w, true
}

// InputSymbols returns the attached input alphabet, or nil.
func (f *VectorFst) InputSymbols() SymbolTableRef {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.isymt
}

// OutputSymbols returns the attached output alphabet, or nil.
func (f *VectorFst) OutputSymbols() SymbolTableRef {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.osymt
}

// Properties returns the currently-known property bits.
func (f *VectorFst) Properties() Properties {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.props
}

// SetProperties overwrites the known property bits.
func (f *VectorFst) SetProperties(p Properties) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.props = p
}

// AddState appends a new, non-final state with no transitions.
//
// Complexity: O(1) amortized.
func (f *VectorFst) AddState() StateId {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states = append(f.states, vecState{})
	id := StateId(len(f.states) - 1)
	f.props &= PreserveAddState
	return id
}

// SetStart sets the start state.
func (f *VectorFst) SetStart(s StateId) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if int(s) < 0 || int(s) >= len(f.states) {
		return ErrBadState
	}
	f.start = s
	return nil
}

// SetFinal sets s's final weight (Zero() means "not final").
func (f *VectorFst) SetFinal(s StateId, w semiring.Weight) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if int(s) < 0 || int(s) >= len(f.states) {
		return ErrBadState
	}
	f.states[s].final = w
	f.props &= PreserveSetFinal
	return nil
}

// AddTr appends tr to s's outgoing transitions, updating the cached
// epsilon counters and clearing properties that depend on the transition
// multiset.
func (f *VectorFst) AddTr(s StateId, tr Tr) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if int(s) < 0 || int(s) >= len(f.states) {
		return ErrBadState
	}
	if int(tr.NextState) < 0 || int(tr.NextState) >= len(f.states) {
		return ErrBadState
	}
	st := &f.states[s]
	st.trs = append(st.trs, tr)
	if tr.ILabel == Epsilon {
		st.niEpsilons++
	}
	if tr.OLabel == Epsilon {
		st.noEpsilons++
	}
	f.props &= PreserveAddTransition
	return nil
}

// SetTrs replaces s's entire outgoing transition list and recomputes its
// cached epsilon counters.
func (f *VectorFst) SetTrs(s StateId, trs []Tr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := &f.states[s]
	st.trs = trs
	st.niEpsilons, st.noEpsilons = 0, 0
	for _, tr := range trs {
		if tr.ILabel == Epsilon {
			st.niEpsilons++
		}
		if tr.OLabel == Epsilon {
			st.noEpsilons++
		}
	}
	f.props &= PreserveAddTransition
}

// NumInputEpsilons returns the number of ilabel==Epsilon transitions
// leaving s, served from the cached counter (O(1)).
func (f *VectorFst) NumInputEpsilons(s StateId) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.states[s].niEpsilons
}

// NumOutputEpsilons returns the number of olabel==Epsilon transitions
// leaving s, served from the cached counter (O(1)).
func (f *VectorFst) NumOutputEpsilons(s StateId) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.states[s].noEpsilons
}

// DeleteStates removes the given states, shifting remaining ids downward
// to stay dense ([0,N)) and rewriting every transition's NextState and
// the start state accordingly. Transitions into a deleted state are
// dropped along with it.
//
// Complexity: O(V+E).
func (f *VectorFst) DeleteStates(ids []StateId) {
	f.mu.Lock()
	defer f.mu.Unlock()

	remove := make(map[StateId]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}

	remap := make([]StateId, len(f.states))
	var next StateId
	for s := StateId(0); int(s) < len(f.states); s++ {
		if remove[s] {
			remap[s] = NoStateId
			continue
		}
		remap[s] = next
		next++
	}

	newStates := make([]vecState, 0, next)
	for s := StateId(0); int(s) < len(f.states); s++ {
		if remove[s] {
			continue
		}
		old := f.states[s]
		filtered := old.trs[:0:0]
		niEps, noEps := 0, 0
		for _, tr := range old.trs {
			if remove[tr.NextState] {
				continue
			}
			tr.NextState = remap[tr.NextState]
			filtered = append(filtered, tr)
			if tr.ILabel == Epsilon {
				niEps++
			}
			if tr.OLabel == Epsilon {
				noEps++
			}
		}
		newStates = append(newStates, vecState{final: old.final, trs: filtered, niEpsilons: niEps, noEpsilons: noEps})
	}

	f.states = newStates
	if f.start != NoStateId {
		if remove[f.start] {
			f.start = NoStateId
		} else {
			f.start = remap[f.start]
		}
	}
	f.props = 0 // structural rewrite: force callers to recompute
}

// SetInputSymbols attaches the input alphabet.
func (f *VectorFst) SetInputSymbols(st SymbolTableRef) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.isymt = st
}

// SetOutputSymbols attaches the output alphabet.
func (f *VectorFst) SetOutputSymbols(st SymbolTableRef) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.osymt = st
}

// Clone returns a deep, independent copy of f (states, transitions, start,
// properties; symbol tables are shared by reference, matching
// core.Graph.Clone's vertex-copy/adjacency-share split).
func (f *VectorFst) Clone() *VectorFst {
	f.mu.RLock()
	defer f.mu.RUnlock()
	clone := &VectorFst{start: f.start, props: f.props, isymt: f.isymt, osymt: f.osymt}
	clone.states = make([]vecState, len(f.states))
	for i, st := range f.states {
		clone.states[i] = vecState{
			final:      st.final,
			trs:        append([]Tr(nil), st.trs...),
			niEpsilons: st.niEpsilons,
			noEpsilons: st.noEpsilons,
		}
	}
	return clone
}

var (
	_ Reader  = (*VectorFst)(nil)
	_ Mutable = (*VectorFst)(nil)
)
