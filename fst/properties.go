// File: properties.go
// Role: the FstProperties bitset (C7), its 15 positive/negative pairs, and
// the compute-from-scratch pass (compute_and_update_properties_all) that
// the vector and const engines call after bulk mutation or on demand.
// AI-HINT (file):
//   - Exactly one bit of each pair may be set; neither set means "unknown".
//   - Knows(mask) checks that every flag in mask has its pos/neg pair set.

package fst

// Properties is the 32-bit invariant bitset of spec.md §3/§4.17, arranged
// as 15 positive/negative pairs.
type Properties uint32

// Property bits. Each pair (positive, its NOT_ variant) occupies two bits;
// "neither set" means unknown, exactly as in the original source.
const (
	Acceptor Properties = 1 << iota
	NotAcceptor

	IDeterministic
	NotIDeterministic

	Epsilons
	NoEpsilons

	IEpsilons
	NoIEpsilons

	OEpsilons
	NoOEpsilons

	ILabelSorted
	NotILabelSorted

	OLabelSorted
	NotOLabelSorted

	Weighted
	Unweighted

	Cyclic
	Acyclic

	InitialCyclic
	InitialAcyclic

	TopSorted
	NotTopSorted

	Accessible
	NotAccessible

	Coaccessible
	NotCoaccessible

	StringProp
	NotString

	WeightedCycles
	UnweightedCycles
)

// pairMasks maps each positive bit to its (positive|negative) pair mask, for
// Knows() and for clearing a pair before re-deriving it.
var pairMasks = []Properties{
	Acceptor | NotAcceptor,
	IDeterministic | NotIDeterministic,
	Epsilons | NoEpsilons,
	IEpsilons | NoIEpsilons,
	OEpsilons | NoOEpsilons,
	ILabelSorted | NotILabelSorted,
	OLabelSorted | NotOLabelSorted,
	Weighted | Unweighted,
	Cyclic | Acyclic,
	InitialCyclic | InitialAcyclic,
	TopSorted | NotTopSorted,
	Accessible | NotAccessible,
	Coaccessible | NotCoaccessible,
	StringProp | NotString,
	WeightedCycles | UnweightedCycles,
}

// Knows reports whether, for every pair intersecting mask, at least one of
// the pair's two bits is set in p (i.e. the property is not "unknown").
func (p Properties) Knows(mask Properties) bool {
	for _, pm := range pairMasks {
		if pm&mask == 0 {
			continue
		}
		if p&pm == 0 {
			return false
		}
	}
	return true
}

// Has reports whether every bit in mask is set in p.
func (p Properties) Has(mask Properties) bool { return p&mask == mask }

// ComputeProperties performs a from-scratch O(V+E) pass over r, computing
// every flag: ACCESSIBLE/COACCESSIBLE via DFS, CYCLIC/ACYCLIC via
// whole-graph cycle detection, INITIAL_CYCLIC via reachability-from-start
// cycle detection, and the
// remaining per-transition flags in a single linear scan, per spec.md §4.17.
func ComputeProperties(r Reader) Properties {
	var p Properties

	numStates := r.NumStates()
	start := r.Start()

	// Per-transition scan: acceptor, epsilons, label-sorted, weighted.
	isAcceptor := true
	hasEpsilon, hasIEpsilon, hasOEpsilon := false, false, false
	iSorted, oSorted := true, true
	weighted := false
	isDeterministic := true

	for s := StateId(0); s < StateId(numStates); s++ {
		trs := r.Trs(s)
		seenLabels := make(map[Label]bool)
		var lastI, lastO Label = -1, -1
		first := true
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			if tr.ILabel != tr.OLabel {
				isAcceptor = false
			}
			if tr.ILabel == Epsilon && tr.OLabel == Epsilon {
				hasEpsilon = true
			}
			if tr.ILabel == Epsilon {
				hasIEpsilon = true
			}
			if tr.OLabel == Epsilon {
				hasOEpsilon = true
			}
			if !tr.Weight.IsOne() {
				weighted = true
			}
			if !first {
				if tr.ILabel < lastI {
					iSorted = false
				}
				if tr.OLabel < lastO {
					oSorted = false
				}
			}
			first = false
			lastI, lastO = tr.ILabel, tr.OLabel
			if tr.ILabel != Epsilon {
				if seenLabels[tr.ILabel] {
					isDeterministic = false
				}
				seenLabels[tr.ILabel] = true
			}
		}
		if fw, ok := r.Final(s); ok && !fw.IsOne() {
			weighted = true
		}
	}

	if isAcceptor {
		p |= Acceptor
	} else {
		p |= NotAcceptor
	}
	if hasEpsilon {
		p |= Epsilons
	} else {
		p |= NoEpsilons
	}
	if hasIEpsilon {
		p |= IEpsilons
	} else {
		p |= NoIEpsilons
	}
	if hasOEpsilon {
		p |= OEpsilons
	} else {
		p |= NoOEpsilons
	}
	if iSorted {
		p |= ILabelSorted
	} else {
		p |= NotILabelSorted
	}
	if oSorted {
		p |= OLabelSorted
	} else {
		p |= NotOLabelSorted
	}
	if weighted {
		p |= Weighted
	} else {
		p |= Unweighted
	}
	if isDeterministic {
		p |= IDeterministic
	} else {
		p |= NotIDeterministic
	}

	// Accessibility: DFS from start.
	accessible := make([]bool, numStates)
	if start != NoStateId {
		var stack []StateId
		stack = append(stack, start)
		accessible[start] = true
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			trs := r.Trs(s)
			for i := 0; i < trs.Len(); i++ {
				n := trs.At(i).NextState
				if !accessible[n] {
					accessible[n] = true
					stack = append(stack, n)
				}
			}
		}
	}
	allAccessible := true
	for s := 0; s < numStates; s++ {
		if !accessible[s] {
			allAccessible = false
			break
		}
	}
	if numStates == 0 || allAccessible {
		p |= Accessible
	} else {
		p |= NotAccessible
	}

	// Coaccessibility: reverse adjacency DFS from final states.
	rev := make([][]StateId, numStates)
	for s := 0; s < numStates; s++ {
		trs := r.Trs(StateId(s))
		for i := 0; i < trs.Len(); i++ {
			n := trs.At(i).NextState
			rev[n] = append(rev[n], StateId(s))
		}
	}
	coaccessible := make([]bool, numStates)
	var costack []StateId
	for s := 0; s < numStates; s++ {
		if fw, ok := r.Final(StateId(s)); ok && !fw.IsZero() {
			coaccessible[s] = true
			costack = append(costack, StateId(s))
		}
	}
	for len(costack) > 0 {
		s := costack[len(costack)-1]
		costack = costack[:len(costack)-1]
		for _, p2 := range rev[s] {
			if !coaccessible[p2] {
				coaccessible[p2] = true
				costack = append(costack, p2)
			}
		}
	}
	allCoaccessible := true
	for s := 0; s < numStates; s++ {
		if !coaccessible[s] {
			allCoaccessible = false
			break
		}
	}
	if numStates == 0 || allCoaccessible {
		p |= Coaccessible
	} else {
		p |= NotCoaccessible
	}

	// Cyclicity: a cycle anywhere in the graph implies Cyclic.
	cyclic := detectCycle(r, numStates, nil)
	if cyclic {
		p |= Cyclic
	} else {
		p |= Acyclic
	}
	// InitialCyclic: a cycle reachable from start, as distinguished from
	// cycles that only occur in components unreachable from start.
	if start != NoStateId && detectCycle(r, numStates, []StateId{start}) {
		p |= InitialCyclic
	} else {
		p |= InitialAcyclic
	}

	return p
}

// detectCycle runs a coloring DFS from each state in roots (or, when roots
// is nil, from every state, for completeness on disconnected graphs) to
// find a directed cycle.
func detectCycle(r Reader, numStates int, roots []StateId) bool {
	const white, gray, black = 0, 1, 2
	color := make([]uint8, numStates)
	var visit func(s StateId) bool
	visit = func(s StateId) bool {
		color[s] = gray
		trs := r.Trs(s)
		for i := 0; i < trs.Len(); i++ {
			n := trs.At(i).NextState
			if color[n] == gray {
				return true
			}
			if color[n] == white && visit(n) {
				return true
			}
		}
		color[s] = black
		return false
	}
	if roots != nil {
		for _, s := range roots {
			if color[s] == white && visit(s) {
				return true
			}
		}
		return false
	}
	for s := 0; s < numStates; s++ {
		if color[s] == white {
			if visit(StateId(s)) {
				return true
			}
		}
	}
	return false
}

// The Preserve* masks document, for each primitive mutation named in spec.md
// §3, the subset of property bits that remain valid (the "preservation
// mask") — the rest must be cleared to unknown (both pos/neg bits zeroed).
// Algorithms intersect their input properties with these masks and then
// OR in whatever they separately establish.
var (
	// PreserveAddState: adding an isolated state cannot break sortedness,
	// acceptor-ness, epsilon-ness, weighted-ness, or determinism, but may
	// break accessibility/coaccessibility and (in)validate top-sort/cyclic.
	PreserveAddState = Acceptor | NotAcceptor | IDeterministic | NotIDeterministic |
		Epsilons | NoEpsilons | IEpsilons | NoIEpsilons | OEpsilons | NoOEpsilons |
		ILabelSorted | NotILabelSorted | OLabelSorted | NotOLabelSorted |
		Weighted | Unweighted

	// PreserveAddTransition: adding a transition can only invalidate
	// everything that depends on the transition set; weighted-unweighted
	// and acceptor-ness may flip, so they are excluded deliberately by
	// callers re-deriving those two bits after the add.
	PreserveAddTransition = Properties(0)

	// PreserveSetFinal preserves the acceptor, determinism, epsilon,
	// sortedness and cyclicity bits; (co)accessibility, weighted/unweighted
	// (the new final weight may not be One()), top-sort, string and
	// weighted-cycles are cleared.
	PreserveSetFinal = Acceptor | NotAcceptor | IDeterministic | NotIDeterministic |
		Epsilons | NoEpsilons | IEpsilons | NoIEpsilons | OEpsilons | NoOEpsilons |
		ILabelSorted | NotILabelSorted | OLabelSorted | NotOLabelSorted |
		Cyclic | Acyclic | InitialCyclic | InitialAcyclic

	// PreserveTrSort preserves the acceptor, epsilon, weighted, cyclicity
	// and (co)accessibility bits; the sortedness bits are freshly
	// established by the sort itself (set by the caller, not here), and
	// determinism, top-sort, string and weighted-cycles are cleared.
	PreserveTrSort = Acceptor | NotAcceptor | Epsilons | NoEpsilons |
		IEpsilons | NoIEpsilons | OEpsilons | NoOEpsilons | Weighted | Unweighted |
		Cyclic | Acyclic | InitialCyclic | InitialAcyclic | Accessible | NotAccessible |
		Coaccessible | NotCoaccessible

	// PreserveRelabel preserves only weighted-ness, cyclicity and
	// (co)accessibility; acceptor-ness, epsilon presence, sortedness and
	// determinism (all label-dependent), top-sort, string and
	// weighted-cycles are cleared.
	PreserveRelabel = Weighted | Unweighted | Cyclic | Acyclic |
		InitialCyclic | InitialAcyclic | Accessible | NotAccessible |
		Coaccessible | NotCoaccessible

	// PreserveChangeWeights preserves the label, sortedness, cyclicity and
	// (co)accessibility bits; weighted/unweighted, weighted-cycles,
	// top-sort and string are cleared.
	PreserveChangeWeights = Acceptor | NotAcceptor | IDeterministic | NotIDeterministic |
		Epsilons | NoEpsilons | IEpsilons | NoIEpsilons | OEpsilons | NoOEpsilons |
		ILabelSorted | NotILabelSorted | OLabelSorted | NotOLabelSorted |
		Cyclic | Acyclic | InitialCyclic | InitialAcyclic |
		Accessible | NotAccessible | Coaccessible | NotCoaccessible
)
