package fstio

import (
	"encoding/binary"
	"io"

	"github.com/katalvlaran/gofst/semiring"
)

// WeightCodec is the per-semiring binary encoding spec.md §6 delegates to
// each semiring ("Each semiring defines its own W encoding"). gofst keeps
// these codecs in fstio rather than on the Weight interface itself, since
// byte layout is a serialization concern, not an algebraic one.
type WeightCodec interface {
	WriteWeight(w io.Writer, wt semiring.Weight) error
	ReadWeight(r io.Reader) (semiring.Weight, error)
	Zero() semiring.Weight
}

type tropicalCodec struct{}

func (tropicalCodec) WriteWeight(w io.Writer, wt semiring.Weight) error {
	v := float32(wt.(semiring.TropicalWeight))
	return binary.Write(w, binary.LittleEndian, v)
}
func (tropicalCodec) ReadWeight(r io.Reader) (semiring.Weight, error) {
	var v float32
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return nil, err
	}
	return semiring.NewTropicalWeight(float64(v)), nil
}
func (tropicalCodec) Zero() semiring.Weight { return semiring.TropicalZero }

type logCodec struct{}

func (logCodec) WriteWeight(w io.Writer, wt semiring.Weight) error {
	v := float32(wt.(semiring.LogWeight))
	return binary.Write(w, binary.LittleEndian, v)
}
func (logCodec) ReadWeight(r io.Reader) (semiring.Weight, error) {
	var v float32
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return nil, err
	}
	return semiring.NewLogWeight(float64(v)), nil
}
func (logCodec) Zero() semiring.Weight { return semiring.LogZero }

type booleanCodec struct{}

func (booleanCodec) WriteWeight(w io.Writer, wt semiring.Weight) error {
	var b byte
	if bool(wt.(semiring.BooleanWeight)) {
		b = 1
	}
	return binary.Write(w, binary.LittleEndian, b)
}
func (booleanCodec) ReadWeight(r io.Reader) (semiring.Weight, error) {
	var b byte
	if err := binary.Read(r, binary.LittleEndian, &b); err != nil {
		return nil, err
	}
	return semiring.BooleanWeight(b != 0), nil
}
func (booleanCodec) Zero() semiring.Weight { return semiring.BooleanZero }

type integerCodec struct{}

func (integerCodec) WriteWeight(w io.Writer, wt semiring.Weight) error {
	return binary.Write(w, binary.LittleEndian, int64(wt.(semiring.IntegerWeight)))
}
func (integerCodec) ReadWeight(r io.Reader) (semiring.Weight, error) {
	var v int64
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return nil, err
	}
	return semiring.IntegerWeight(v), nil
}
func (integerCodec) Zero() semiring.Weight { return semiring.IntegerZero }

type probabilityCodec struct{}

func (probabilityCodec) WriteWeight(w io.Writer, wt semiring.Weight) error {
	v := float32(wt.(semiring.ProbabilityWeight))
	return binary.Write(w, binary.LittleEndian, v)
}
func (probabilityCodec) ReadWeight(r io.Reader) (semiring.Weight, error) {
	var v float32
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return nil, err
	}
	return semiring.ProbabilityWeight(v), nil
}
func (probabilityCodec) Zero() semiring.Weight { return semiring.ProbabilityZero }

// codecs maps a semiring's WeightType() tag to its WeightCodec.
var codecs = map[string]WeightCodec{
	"tropical":    tropicalCodec{},
	"log":         logCodec{},
	"boolean":     booleanCodec{},
	"integer":     integerCodec{},
	"probability": probabilityCodec{},
}

// CodecFor returns the WeightCodec registered for weightType, or
// (nil, ErrUnsupportedWeight).
func CodecFor(weightType string) (WeightCodec, error) {
	c, ok := codecs[weightType]
	if !ok {
		return nil, ErrUnsupportedWeight
	}
	return c, nil
}
