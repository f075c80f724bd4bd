// Package fstio implements the binary and text serialization formats for
// FSTs and symbol tables described in spec.md §6. In the binary FST body,
// each state's final weight is preceded by a one-byte presence flag (1: a
// weight follows and the state is final; 0: non-final, no weight follows),
// so the body is not a bare sequence of final weights. It is the sole place
// in gofst that reasons about byte layout; every other package works with
// Go types.
package fstio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/gofst/symtab"
)

// SymbolTableMagic is the magic number prefixing a serialized SymbolTable.
const SymbolTableMagic = int32(2_125_658_996)

// Sentinel errors surfaced by fstio. They are the serialization half of
// spec.md §7's SerializationError kind.
var (
	ErrBadMagic         = errors.New("fstio: bad magic number")
	ErrTruncated        = errors.New("fstio: truncated input")
	ErrNonDenseLabels   = errors.New("fstio: symbol labels are not a dense [0,N) range")
	ErrUnsupportedFst   = errors.New("fstio: unsupported fst_type")
	ErrUnsupportedWeight = errors.New("fstio: unsupported weight type")
)

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n int32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if n < 0 {
		return "", ErrTruncated
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return string(buf), nil
}

// WriteSymbolTable writes st to w in the binary format:
// magic, name, available_key, num_symbols, then N (symbol, label) pairs.
func WriteSymbolTable(w io.Writer, st *symtab.SymbolTable) error {
	if err := binary.Write(w, binary.LittleEndian, SymbolTableMagic); err != nil {
		return err
	}
	if err := writeString(w, st.Name()); err != nil {
		return err
	}
	pairs := st.Iterate()
	var availableKey int64
	for _, p := range pairs {
		if p.Label+1 > availableKey {
			availableKey = p.Label + 1
		}
	}
	if err := binary.Write(w, binary.LittleEndian, availableKey); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int64(len(pairs))); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := writeString(w, p.Symbol); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, p.Label); err != nil {
			return err
		}
	}
	return nil
}

// ReadSymbolTable reads a SymbolTable from r. Labels must form the
// contiguous range [0,N); otherwise ErrNonDenseLabels is returned.
func ReadSymbolTable(r io.Reader) (*symtab.SymbolTable, error) {
	var magic int32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if magic != SymbolTableMagic {
		return nil, ErrBadMagic
	}
	name, err := readString(r)
	if err != nil {
		return nil, err
	}
	var availableKey, numSymbols int64
	if err := binary.Read(r, binary.LittleEndian, &availableKey); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &numSymbols); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	st := symtab.New(name)
	seen := make(map[int64]bool, numSymbols)
	var i int64
	for ; i < numSymbols; i++ {
		sym, err := readString(r)
		if err != nil {
			return nil, err
		}
		var label int64
		if err := binary.Read(r, binary.LittleEndian, &label); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		seen[label] = true
		st.AddSymbolWithLabel(sym, label)
	}
	for l := int64(0); l < numSymbols; l++ {
		if !seen[l] {
			return nil, ErrNonDenseLabels
		}
	}
	return st, nil
}

// WriteSymbolTableText writes st as "symbol\tlabel" lines.
func WriteSymbolTableText(w io.Writer, st *symtab.SymbolTable) error {
	bw := bufio.NewWriter(w)
	for _, p := range st.Iterate() {
		if _, err := fmt.Fprintf(bw, "%s\t%d\n", p.Symbol, p.Label); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadSymbolTableText parses "symbol\tlabel" lines into a SymbolTable.
func ReadSymbolTableText(r io.Reader, name string) (*symtab.SymbolTable, error) {
	st := symtab.New(name)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: malformed symbol-table line %q", ErrTruncated, line)
		}
		label, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		st.AddSymbolWithLabel(parts[0], label)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return st, nil
}
