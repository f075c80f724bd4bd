// Package encode implements the encode/decode transform (spec.md §4.14):
// folding a transition's (ilabel, olabel, weight) triple into a single
// integer label, so that algorithms requiring an unweighted acceptor
// (minimize's core refinement step) can run over a transducer by first
// reducing it to one and decoding afterward.
//
// Complexity:
//   - Time:  O(V+E) for both Encode and Decode, plus the O(1) amortized
//     cost of the EncodeTable's map lookup/insert per transition.
package encode

import (
	"strconv"
	"sync"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
)

// Flags selects which attributes Encode folds into the label.
type Flags uint8

const (
	// EncodeLabels folds (ilabel, olabel) into the new ilabel, setting
	// olabel to Epsilon (producing an acceptor over the encoded alphabet).
	EncodeLabels Flags = 1 << iota
	// EncodeWeights folds the transition weight into the encoded label,
	// setting the transition's own weight to One().
	EncodeWeights
)

// Has reports whether f includes bit.
func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// entry is one encoded tuple: original (ilabel, olabel, weight), keyed by
// keyFor's string form, in which weights compare by their String()
// rendering rather than by Go's identity.
type entry struct {
	ilabel, olabel fst.Label
	weight         semiring.Weight
}

// Table is the encode/decode mapping produced by Encode and required by
// Decode to invert it. It is safe for concurrent reads once Encode has
// finished building it; new entries are only ever appended by Encode.
type Table struct {
	mu      sync.RWMutex
	flags   Flags
	byLabel map[fst.Label]entry
	byKey   map[string]fst.Label
	next    fst.Label
}

// NewTable constructs an empty encode table for the given flags.
func NewTable(flags Flags) *Table {
	return &Table{flags: flags, byLabel: make(map[fst.Label]entry), byKey: make(map[string]fst.Label), next: 1}
}

func (t *Table) keyFor(e entry) string {
	w := ""
	if t.flags.Has(EncodeWeights) && e.weight != nil {
		w = e.weight.String()
	}
	return strconv.FormatInt(int64(e.ilabel), 10) + "\x00" +
		strconv.FormatInt(int64(e.olabel), 10) + "\x00" + w
}

// encode returns the label standing for (ilabel, olabel, weight) under
// this table's flags, minting a new one on first occurrence.
func (t *Table) encode(ilabel, olabel fst.Label, weight semiring.Weight) fst.Label {
	e := entry{ilabel: ilabel, olabel: olabel, weight: weight}
	key := t.keyFor(e)

	t.mu.Lock()
	defer t.mu.Unlock()
	if lbl, ok := t.byKey[key]; ok {
		return lbl
	}
	lbl := t.next
	t.next++
	t.byKey[key] = lbl
	t.byLabel[lbl] = e
	return lbl
}

// decode returns the original (ilabel, olabel, weight) entry bound to
// lbl, or (entry{}, false) if lbl was never encoded.
func (t *Table) decode(lbl fst.Label) (entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.byLabel[lbl]
	return e, ok
}

// Encode rewrites src into dst (a fresh VectorFst), folding each
// transition's selected attributes into a single label per flags, and
// returns the table needed to Decode it back.
func Encode(src fst.Reader, flags Flags) (*fst.VectorFst, *Table) {
	table := NewTable(flags)
	dst := fst.NewVectorFst()
	for i := 0; i < src.NumStates(); i++ {
		dst.AddState()
	}
	if src.Start() != fst.NoStateId {
		_ = dst.SetStart(src.Start())
	}
	for s := fst.StateId(0); int(s) < src.NumStates(); s++ {
		trs := src.Trs(s)
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			newIL, newOL, newW := tr.ILabel, tr.OLabel, tr.Weight
			if flags.Has(EncodeLabels) || flags.Has(EncodeWeights) {
				lbl := table.encode(tr.ILabel, tr.OLabel, tr.Weight)
				newIL = lbl
				if flags.Has(EncodeLabels) {
					newOL = fst.Epsilon
				}
				if flags.Has(EncodeWeights) {
					newW = newW.One()
				}
			}
			_ = dst.AddTr(s, fst.NewTr(newIL, newOL, newW, tr.NextState))
		}
		if fw, ok := src.Final(s); ok {
			_ = dst.SetFinal(s, fw)
		}
	}
	dst.SetProperties(fst.ComputeProperties(dst))
	return dst, table
}

// Decode inverts Encode, rewriting every encoded transition back to its
// original (ilabel, olabel, weight) using table.
func Decode(src fst.Reader, table *Table) *fst.VectorFst {
	dst := fst.NewVectorFst()
	for i := 0; i < src.NumStates(); i++ {
		dst.AddState()
	}
	if src.Start() != fst.NoStateId {
		_ = dst.SetStart(src.Start())
	}
	for s := fst.StateId(0); int(s) < src.NumStates(); s++ {
		trs := src.Trs(s)
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			il, ol, w := tr.ILabel, tr.OLabel, tr.Weight
			if e, ok := table.decode(tr.ILabel); ok {
				il, ol = e.ilabel, e.olabel
				if table.flags.Has(EncodeWeights) {
					w = e.weight
				}
			}
			_ = dst.AddTr(s, fst.NewTr(il, ol, w, tr.NextState))
		}
		if fw, ok := src.Final(s); ok {
			_ = dst.SetFinal(s, fw)
		}
	}
	dst.SetProperties(fst.ComputeProperties(dst))
	return dst
}
