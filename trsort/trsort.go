// Package trsort sorts each state's outgoing transitions by a comparator,
// the Go-native form of the Tr-order-by-label/weight step spec.md §4.13
// requires before Compose's Match filter and Determinize's subset lookup
// can binary-search a state's transition list instead of scanning it.
//
// Complexity:
//   - Time:  O(sum_s |Trs(s)| log |Trs(s)|), one stable sort per state.
//   - Space: O(max_s |Trs(s)|) for the per-state sort buffer.
package trsort

import (
	"reflect"
	"sort"

	"github.com/katalvlaran/gofst/fst"
)

// Comparator orders two transitions out of the same state. Sort is a
// total preorder: ties (Compare==0) keep their original relative order
// (sort.SliceStable).
type Comparator func(a, b fst.Tr) int

// ByILabel orders transitions by input label, ascending.
func ByILabel(a, b fst.Tr) int {
	switch {
	case a.ILabel < b.ILabel:
		return -1
	case a.ILabel > b.ILabel:
		return 1
	default:
		return 0
	}
}

// ByOLabel orders transitions by output label, ascending.
func ByOLabel(a, b fst.Tr) int {
	switch {
	case a.OLabel < b.OLabel:
		return -1
	case a.OLabel > b.OLabel:
		return 1
	default:
		return 0
	}
}

// TrSort reorders every state's transitions in m according to cmp, then
// updates m's properties: ByILabel sets ILabelSorted, ByOLabel sets
// OLabelSorted; any other comparator clears both sortedness bits since
// the resulting order is comparator-specific and not one trsort itself
// can name.
func TrSort(m fst.Mutable, cmp Comparator) {
	for s := fst.StateId(0); int(s) < m.NumStates(); s++ {
		trs := m.Trs(s).ToSlice()
		sort.SliceStable(trs, func(i, j int) bool { return cmp(trs[i], trs[j]) < 0 })
		m.SetTrs(s, trs)
	}

	props := m.Properties() & fst.PreserveTrSort
	switch {
	case isByILabel(cmp):
		props |= fst.ILabelSorted
	case isByOLabel(cmp):
		props |= fst.OLabelSorted
	}
	m.SetProperties(props)
}

// isByILabel / isByOLabel detect the two well-known comparators by
// comparing underlying function pointers, so TrSort can tag the
// resulting sortedness property without the caller naming it
// separately. Any other (custom) comparator is treated as
// sort-order-unknown.
func isByILabel(cmp Comparator) bool { return funcPtr(cmp) == funcPtr(Comparator(ByILabel)) }
func isByOLabel(cmp Comparator) bool { return funcPtr(cmp) == funcPtr(Comparator(ByOLabel)) }

func funcPtr(cmp Comparator) uintptr { return reflect.ValueOf(cmp).Pointer() }
