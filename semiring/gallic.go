package semiring

// GallicMode selects which String variant backs a GallicWeight's label
// component, mirroring rustfst's GallicType (Left/Right/Restrict/Min).
// Multi-Gallic (a sum of Gallic weights) is not represented: there is no
// fifth mode and no separate type for it.
type GallicMode int

// Gallic label-component modes.
const (
	GallicLeft GallicMode = iota
	GallicRight
	GallicRestrict
	GallicMin
)

// GallicWeight packs a string weight (the "label" component, used to move
// output labels into the weight during non-functional determinization) with
// a base weight. Used by determinize.NonFunctional via ToGallic/FromGallic.
type GallicWeight struct {
	Mode   GallicMode
	Labels Weight // a StringWeightLeft/Right/Restrict
	Base   Weight
}

func (w GallicWeight) stringZero() Weight {
	switch w.Mode {
	case GallicRight:
		return StringWeightRight{}.Zero()
	case GallicRestrict, GallicMin:
		return StringWeightRestrict{}.Zero()
	default:
		return StringWeightLeft{}.Zero()
	}
}

func (w GallicWeight) stringOne() Weight {
	switch w.Mode {
	case GallicRight:
		return StringWeightRight{}.One()
	case GallicRestrict, GallicMin:
		return StringWeightRestrict{}.One()
	default:
		return StringWeightLeft{}.One()
	}
}

func (w GallicWeight) Zero() Weight {
	return GallicWeight{Mode: w.Mode, Labels: w.stringZero(), Base: w.Base.Zero()}
}

func (w GallicWeight) One() Weight {
	return GallicWeight{Mode: w.Mode, Labels: w.stringOne(), Base: w.Base.One()}
}

// Plus combines componentwise. In GallicMin mode it instead keeps the
// operand with the smaller Base weight (requires a Path base semiring),
// matching rustfst's "take the cheaper of two label hypotheses" behavior.
func (w GallicWeight) Plus(other Weight) (Weight, error) {
	o := other.(GallicWeight)
	if w.Mode == GallicMin {
		bp, err := w.Base.Plus(o.Base)
		if err != nil {
			return nil, err
		}
		if bp.Equal(w.Base) {
			return w, nil
		}
		return o, nil
	}
	lp, err := w.Labels.Plus(o.Labels)
	if err != nil {
		return nil, err
	}
	bp, err := w.Base.Plus(o.Base)
	if err != nil {
		return nil, err
	}
	return GallicWeight{Mode: w.Mode, Labels: lp, Base: bp}, nil
}

func (w GallicWeight) Times(other Weight) (Weight, error) {
	o := other.(GallicWeight)
	lt, err := w.Labels.Times(o.Labels)
	if err != nil {
		return nil, err
	}
	bt, err := w.Base.Times(o.Base)
	if err != nil {
		return nil, err
	}
	return GallicWeight{Mode: w.Mode, Labels: lt, Base: bt}, nil
}

func (w GallicWeight) IsZero() bool { return w.Base.IsZero() }
func (w GallicWeight) IsOne() bool  { return w.Labels.IsOne() && w.Base.IsOne() }

func (w GallicWeight) Equal(other Weight) bool {
	o, ok := other.(GallicWeight)
	return ok && w.Labels.Equal(o.Labels) && w.Base.Equal(o.Base)
}

func (w GallicWeight) ApproxEqual(other Weight, delta float64) bool {
	o := other.(GallicWeight)
	return w.Labels.ApproxEqual(o.Labels, delta) && w.Base.ApproxEqual(o.Base, delta)
}

func (w GallicWeight) Reverse() Weight {
	return GallicWeight{Mode: w.Mode, Labels: w.Labels.Reverse(), Base: w.Base.Reverse()}
}

func (w GallicWeight) Properties() Properties {
	return w.Labels.Properties() & w.Base.Properties()
}

func (w GallicWeight) WeightType() string { return "gallic<" + w.Base.WeightType() + ">" }
func (w GallicWeight) String() string     { return w.Labels.String() + "/" + w.Base.String() }

// Divide solves self = other ⊗ missing (or missing ⊗ other) componentwise:
// the label component divides as a string weight (factoring the common
// output-label prefix/suffix the divisor stands for), the base component
// divides per the base semiring's own weak division. Required by
// determinize's NonFunctional/Disambiguate modes, whose subset states
// carry Gallic-lifted weights.
func (w GallicWeight) Divide(other Weight, side DivideSide) (Weight, error) {
	o := other.(GallicWeight)
	ld, ok := w.Labels.(WeaklyDivisible)
	if !ok {
		return nil, ErrUnsupported
	}
	labels, err := ld.Divide(o.Labels, side)
	if err != nil {
		return nil, err
	}
	bd, ok := w.Base.(WeaklyDivisible)
	if !ok {
		return nil, ErrUnsupported
	}
	base, err := bd.Divide(o.Base, side)
	if err != nil {
		return nil, err
	}
	return GallicWeight{Mode: w.Mode, Labels: labels, Base: base}, nil
}

var _ WeaklyDivisible = GallicWeight{}

// ToGallic lifts a (ilabel-independent) output label plus a base weight
// into a GallicWeight, the representation determinize.NonFunctional uses
// to make a non-functional transducer input-deterministic by folding the
// output label sequence into the weight.
func ToGallic(mode GallicMode, outputLabel int64, base Weight) GallicWeight {
	var labels Weight
	switch mode {
	case GallicRight:
		labels = NewStringWeightRight(outputLabel)
	case GallicRestrict, GallicMin:
		labels = NewStringWeightRestrict(outputLabel)
	default:
		labels = NewStringWeightLeft(outputLabel)
	}
	if outputLabel == 0 {
		// Epsilon carries the One() (empty-string) label weight.
		switch mode {
		case GallicRight:
			labels = StringWeightRight{}.One().(StringWeightRight)
		case GallicRestrict, GallicMin:
			labels = StringWeightRestrict{}.One().(StringWeightRestrict)
		default:
			labels = StringWeightLeft{}.One().(StringWeightLeft)
		}
	}
	return GallicWeight{Mode: mode, Labels: labels, Base: base}
}

// FromGallic inverts ToGallic for the common single-label case, returning
// the folded output label (0 for epsilon/empty) and the base weight.
func FromGallic(w GallicWeight) (outputLabel int64, base Weight) {
	switch l := w.Labels.(type) {
	case StringWeightLeft:
		if len(l.d.labels) > 0 {
			return l.d.labels[0], w.Base
		}
	case StringWeightRight:
		if len(l.d.labels) > 0 {
			return l.d.labels[0], w.Base
		}
	case StringWeightRestrict:
		if len(l.d.labels) > 0 {
			return l.d.labels[0], w.Base
		}
	}
	return 0, w.Base
}

// GallicLabels returns w's full folded label sequence (possibly more than
// one label, e.g. after composing several ToGallic-lifted transitions),
// used by factorweight to peel labels off one at a time.
func GallicLabels(w GallicWeight) []int64 {
	switch l := w.Labels.(type) {
	case StringWeightLeft:
		return l.LabelSlice()
	case StringWeightRight:
		return l.LabelSlice()
	case StringWeightRestrict:
		return l.LabelSlice()
	default:
		return nil
	}
}

var _ Weight = GallicWeight{}
