// File: relabel.go
// Role: RelabelPairs, grounded on original_source's relabel_pairs.rs,
// rewriting transition labels through two independent (old->new) maps
// without touching anything else (spec.md §8 scenario 4).

package fst

// RelabelPairs rewrites every transition's ILabel through ipairs and OLabel
// through opairs (labels absent from a map pass through unchanged), in
// place on m.
//
// Complexity: O(V+E).
func RelabelPairs(m Mutable, ipairs, opairs map[Label]Label) {
	n := m.NumStates()
	for s := 0; s < n; s++ {
		trs := m.Trs(StateId(s))
		out := make([]Tr, trs.Len())
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			if nl, ok := ipairs[tr.ILabel]; ok {
				tr.ILabel = nl
			}
			if nl, ok := opairs[tr.OLabel]; ok {
				tr.OLabel = nl
			}
			out[i] = tr
		}
		m.SetTrs(StateId(s), out)
	}
	m.SetProperties(m.Properties() & PreserveRelabel)
}
