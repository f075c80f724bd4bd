// File: fst_io.go
// Role: the FST binary header+body codec (spec.md §6), the FST-level
// counterpart to symtab_io.go's symbol-table codec. Layout: magic,
// fst_type, tr_type (the weight's WeightType() tag), version, flags,
// properties, start, num_states, num_trs, optional symbol tables, then a
// per-state body that differs between the "vector" and "const" layouts.

package fstio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/gofst/fst"
	"github.com/katalvlaran/gofst/semiring"
	"github.com/katalvlaran/gofst/symtab"
)

// FstMagic is the magic number prefixing a serialized FST.
const FstMagic = int32(2_125_659_606)

// header flag bits.
const (
	flagHasISymbols = 1 << 0
	flagHasOSymbols = 1 << 1
)

const fstVersion = int32(2)

// FstHeader is the fixed-size preamble of the binary FST format.
type FstHeader struct {
	FstType    string
	TrType     string
	Version    int32
	Flags      int32
	Properties fst.Properties
	Start      fst.StateId
	NumStates  int64
	NumTrs     int64
}

// trTypeTag returns the header's tr_type string for a weight type:
// "standard" for tropical (the conventional default semiring), the
// WeightType() tag for everything else.
func trTypeTag(weightType string) string {
	if weightType == "tropical" {
		return "standard"
	}
	return weightType
}

func codecForTrType(trType string) (WeightCodec, error) {
	if trType == "standard" {
		trType = "tropical"
	}
	return CodecFor(trType)
}

func writeHeader(w io.Writer, h FstHeader) error {
	if err := binary.Write(w, binary.LittleEndian, FstMagic); err != nil {
		return err
	}
	if err := writeString(w, h.FstType); err != nil {
		return err
	}
	if err := writeString(w, h.TrType); err != nil {
		return err
	}
	for _, v := range []int32{h.Version, h.Flags} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(h.Properties)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int64(h.Start)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, h.NumStates); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, h.NumTrs)
}

func readHeader(r io.Reader) (FstHeader, error) {
	var h FstHeader
	var magic int32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return h, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if magic != FstMagic {
		return h, ErrBadMagic
	}
	var err error
	if h.FstType, err = readString(r); err != nil {
		return h, err
	}
	if h.TrType, err = readString(r); err != nil {
		return h, err
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Version); err != nil {
		return h, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Flags); err != nil {
		return h, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	var props uint64
	if err := binary.Read(r, binary.LittleEndian, &props); err != nil {
		return h, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	h.Properties = fst.Properties(props)
	var start int64
	if err := binary.Read(r, binary.LittleEndian, &start); err != nil {
		return h, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	h.Start = fst.StateId(start)
	if err := binary.Read(r, binary.LittleEndian, &h.NumStates); err != nil {
		return h, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.NumTrs); err != nil {
		return h, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return h, nil
}

// asSymtab duck-types fst.SymbolTableRef down to the concrete
// *symtab.SymbolTable the codec knows how to serialize. An attached
// symbol table from another implementation cannot be written; callers
// that need that should materialize a *symtab.SymbolTable first.
func asSymtab(ref fst.SymbolTableRef) (*symtab.SymbolTable, bool) {
	st, ok := ref.(*symtab.SymbolTable)
	return st, ok
}

// WriteFst writes r in the binary "vector" layout: every state's final
// weight followed by its transitions, in state-id order.
func WriteFst(w io.Writer, r fst.Reader) error {
	return writeFst(w, r, "vector")
}

// WriteConstFst writes r in the binary "const" layout: a flat table of
// (final, pos, ntrs) state records followed by one flat transition array,
// mirroring fst.ConstFst's in-memory shape.
func WriteConstFst(w io.Writer, r fst.Reader) error {
	return writeFst(w, r, "const")
}

func writeFst(w io.Writer, r fst.Reader, fstType string) error {
	numStates := r.NumStates()
	trType := ""
	var numTrs int64
	for s := fst.StateId(0); int(s) < numStates; s++ {
		trs := r.Trs(s)
		numTrs += int64(trs.Len())
		if trType == "" {
			if trs.Len() > 0 {
				trType = trs.At(0).Weight.WeightType()
			} else if w, ok := r.Final(s); ok {
				trType = w.WeightType()
			}
		}
	}
	if trType == "" {
		trType = "tropical"
	}
	codec, err := CodecFor(trType)
	if err != nil {
		return err
	}
	trTag := trTypeTag(trType)

	var flags int32
	isymt, hasI := asSymtab(r.InputSymbols())
	if hasI {
		flags |= flagHasISymbols
	}
	osymt, hasO := asSymtab(r.OutputSymbols())
	if hasO {
		flags |= flagHasOSymbols
	}

	h := FstHeader{
		FstType:    fstType,
		TrType:     trTag,
		Version:    fstVersion,
		Flags:      flags,
		Properties: r.Properties(),
		Start:      r.Start(),
		NumStates:  int64(numStates),
		NumTrs:     numTrs,
	}
	if err := writeHeader(w, h); err != nil {
		return err
	}
	if hasI {
		if err := WriteSymbolTable(w, isymt); err != nil {
			return err
		}
	}
	if hasO {
		if err := WriteSymbolTable(w, osymt); err != nil {
			return err
		}
	}

	switch fstType {
	case "vector":
		return writeVectorBody(w, r, numStates, codec)
	case "const":
		return writeConstBody(w, r, numStates, codec)
	default:
		return ErrUnsupportedFst
	}
}

func writeVectorBody(w io.Writer, r fst.Reader, numStates int, codec WeightCodec) error {
	for s := fst.StateId(0); int(s) < numStates; s++ {
		if fw, ok := r.Final(s); ok {
			if err := binary.Write(w, binary.LittleEndian, byte(1)); err != nil {
				return err
			}
			if err := codec.WriteWeight(w, fw); err != nil {
				return err
			}
		} else {
			if err := binary.Write(w, binary.LittleEndian, byte(0)); err != nil {
				return err
			}
		}
		trs := r.Trs(s)
		if err := binary.Write(w, binary.LittleEndian, int64(trs.Len())); err != nil {
			return err
		}
		for i := 0; i < trs.Len(); i++ {
			if err := writeTr(w, trs.At(i), codec); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeConstBody(w io.Writer, r fst.Reader, numStates int, codec WeightCodec) error {
	pos := int64(0)
	for s := fst.StateId(0); int(s) < numStates; s++ {
		fw, ok := r.Final(s)
		if ok {
			if err := binary.Write(w, binary.LittleEndian, byte(1)); err != nil {
				return err
			}
			if err := codec.WriteWeight(w, fw); err != nil {
				return err
			}
		} else {
			if err := binary.Write(w, binary.LittleEndian, byte(0)); err != nil {
				return err
			}
		}
		trs := r.Trs(s)
		if err := binary.Write(w, binary.LittleEndian, pos); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, int64(trs.Len())); err != nil {
			return err
		}
		pos += int64(trs.Len())
	}
	for s := fst.StateId(0); int(s) < numStates; s++ {
		trs := r.Trs(s)
		for i := 0; i < trs.Len(); i++ {
			if err := writeTr(w, trs.At(i), codec); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTr(w io.Writer, tr fst.Tr, codec WeightCodec) error {
	if err := binary.Write(w, binary.LittleEndian, int32(tr.ILabel)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int32(tr.OLabel)); err != nil {
		return err
	}
	if err := codec.WriteWeight(w, tr.Weight); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, int32(tr.NextState))
}

func readTr(r io.Reader, codec WeightCodec) (fst.Tr, error) {
	var il, ol, next int32
	if err := binary.Read(r, binary.LittleEndian, &il); err != nil {
		return fst.Tr{}, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &ol); err != nil {
		return fst.Tr{}, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	wt, err := codec.ReadWeight(r)
	if err != nil {
		return fst.Tr{}, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &next); err != nil {
		return fst.Tr{}, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return fst.NewTr(fst.Label(il), fst.Label(ol), wt, fst.StateId(next)), nil
}

// ReadFst reads a binary FST, returning a *fst.VectorFst for the
// "vector" layout or a *fst.ConstFst for the "const" layout, as a
// fst.Reader.
func ReadFst(r io.Reader) (fst.Reader, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	codec, err := codecForTrType(h.TrType)
	if err != nil {
		return nil, err
	}

	var isymt, osymt *symtab.SymbolTable
	if h.Flags&flagHasISymbols != 0 {
		if isymt, err = ReadSymbolTable(r); err != nil {
			return nil, err
		}
	}
	if h.Flags&flagHasOSymbols != 0 {
		if osymt, err = ReadSymbolTable(r); err != nil {
			return nil, err
		}
	}

	switch h.FstType {
	case "vector":
		out := fst.NewVectorFst()
		for i := int64(0); i < h.NumStates; i++ {
			out.AddState()
		}
		for s := fst.StateId(0); int64(s) < h.NumStates; s++ {
			var hasFinal byte
			if err := binary.Read(r, binary.LittleEndian, &hasFinal); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
			}
			if hasFinal == 1 {
				fw, err := codec.ReadWeight(r)
				if err != nil {
					return nil, err
				}
				if err := out.SetFinal(s, fw); err != nil {
					return nil, err
				}
			}
			var ntrs int64
			if err := binary.Read(r, binary.LittleEndian, &ntrs); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
			}
			for i := int64(0); i < ntrs; i++ {
				tr, err := readTr(r, codec)
				if err != nil {
					return nil, err
				}
				if err := out.AddTr(s, tr); err != nil {
					return nil, err
				}
			}
		}
		if h.Start != fst.NoStateId {
			if err := out.SetStart(h.Start); err != nil {
				return nil, err
			}
		}
		if isymt != nil {
			out.SetInputSymbols(isymt)
		}
		if osymt != nil {
			out.SetOutputSymbols(osymt)
		}
		out.SetProperties(h.Properties)
		return out, nil

	case "const":
		return readConstBody(r, h, codec, isymt, osymt)

	default:
		return nil, ErrUnsupportedFst
	}
}

func readConstBody(r io.Reader, h FstHeader, codec WeightCodec, isymt, osymt *symtab.SymbolTable) (fst.Reader, error) {
	v := fst.NewVectorFst()
	for i := int64(0); i < h.NumStates; i++ {
		v.AddState()
	}
	type pending struct {
		pos, ntrs int64
	}
	pendings := make([]pending, h.NumStates)
	for s := fst.StateId(0); int64(s) < h.NumStates; s++ {
		var hasFinal byte
		if err := binary.Read(r, binary.LittleEndian, &hasFinal); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		if hasFinal == 1 {
			fw, err := codec.ReadWeight(r)
			if err != nil {
				return nil, err
			}
			if err := v.SetFinal(s, fw); err != nil {
				return nil, err
			}
		}
		var pos, ntrs int64
		if err := binary.Read(r, binary.LittleEndian, &pos); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &ntrs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		pendings[s] = pending{pos, ntrs}
	}
	allTrs := make([]fst.Tr, h.NumTrs)
	for i := int64(0); i < h.NumTrs; i++ {
		tr, err := readTr(r, codec)
		if err != nil {
			return nil, err
		}
		allTrs[i] = tr
	}
	for s := fst.StateId(0); int64(s) < h.NumStates; s++ {
		p := pendings[s]
		for i := int64(0); i < p.ntrs; i++ {
			if err := v.AddTr(s, allTrs[p.pos+i]); err != nil {
				return nil, err
			}
		}
	}
	if h.Start != fst.NoStateId {
		if err := v.SetStart(h.Start); err != nil {
			return nil, err
		}
	}
	if isymt != nil {
		v.SetInputSymbols(isymt)
	}
	if osymt != nil {
		v.SetOutputSymbols(osymt)
	}
	v.SetProperties(h.Properties)
	return fst.NewConstFstFromVector(v), nil
}

// WriteFstText writes r in the line-oriented text format: one line per
// transition ("src\tdst\tilabel\tolabel\tweight"), followed by one line
// per final state ("src\tweight"), or ("src\tInfinity") for an
// explicitly-marked non-final state included only for clarity (omitted
// here since non-final states need no line at all).
func WriteFstText(w io.Writer, r fst.Reader) error {
	bw := bufio.NewWriter(w)
	numStates := r.NumStates()
	for s := fst.StateId(0); int(s) < numStates; s++ {
		trs := r.Trs(s)
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			if _, err := fmt.Fprintf(bw, "%d\t%d\t%d\t%d\t%s\n", s, tr.NextState, tr.ILabel, tr.OLabel, tr.Weight.String()); err != nil {
				return err
			}
		}
	}
	for s := fst.StateId(0); int(s) < numStates; s++ {
		if fw, ok := r.Final(s); ok {
			if _, err := fmt.Fprintf(bw, "%d\t%s\n", s, fw.String()); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ReadFstText parses the WriteFstText format back into a *fst.VectorFst,
// using parseWeight to turn each weight field back into a semiring.Weight
// (the text format carries no semiring tag of its own, so the caller must
// supply one, mirroring spec.md §6's "text format defers to caller-supplied
// semiring"). The source state of the first line is taken as the start
// state. A weight field of "Infinity" marks an explicit non-final state
// and is skipped rather than calling SetFinal.
func ReadFstText(r io.Reader, parseWeight func(string) (semiring.Weight, error)) (*fst.VectorFst, error) {
	out := fst.NewVectorFst()
	sc := bufio.NewScanner(r)
	ensure := func(id fst.StateId) {
		for fst.StateId(out.NumStates()) <= id {
			out.AddState()
		}
	}
	startSet := false
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		src64, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		src := fst.StateId(src64)
		ensure(src)
		if !startSet {
			if err := out.SetStart(src); err != nil {
				return nil, err
			}
			startSet = true
		}
		switch len(parts) {
		case 5:
			dst64, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
			}
			il, _ := strconv.ParseInt(parts[2], 10, 64)
			ol, _ := strconv.ParseInt(parts[3], 10, 64)
			wt, err := parseWeight(parts[4])
			if err != nil {
				return nil, err
			}
			dst := fst.StateId(dst64)
			ensure(dst)
			if err := out.AddTr(src, fst.NewTr(fst.Label(il), fst.Label(ol), wt, dst)); err != nil {
				return nil, err
			}
		case 2:
			if parts[1] == "Infinity" {
				continue
			}
			wt, err := parseWeight(parts[1])
			if err != nil {
				return nil, err
			}
			if err := out.SetFinal(src, wt); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: malformed fst text line %q", ErrTruncated, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	out.SetProperties(fst.ComputeProperties(out))
	return out, nil
}
