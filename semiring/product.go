package semiring

// ProductWeight implements S1 x S2 componentwise: ⊕ and ⊗ apply per
// component, 0̄ = (0̄1,0̄2), 1̄ = (1̄1,1̄2). Properties are the intersection
// of both components' properties. Used to run two weightings (e.g. a
// probability and a length-counting IntegerWeight) over the same FST.
type ProductWeight struct {
	W1, W2 Weight
}

// NewProductWeight pairs two weights from (possibly different) semirings.
func NewProductWeight(w1, w2 Weight) ProductWeight { return ProductWeight{W1: w1, W2: w2} }

func (w ProductWeight) Zero() Weight {
	return ProductWeight{W1: w.W1.Zero(), W2: w.W2.Zero()}
}

func (w ProductWeight) One() Weight {
	return ProductWeight{W1: w.W1.One(), W2: w.W2.One()}
}

func (w ProductWeight) Plus(other Weight) (Weight, error) {
	o := other.(ProductWeight)
	p1, err := w.W1.Plus(o.W1)
	if err != nil {
		return nil, err
	}
	p2, err := w.W2.Plus(o.W2)
	if err != nil {
		return nil, err
	}
	return ProductWeight{W1: p1, W2: p2}, nil
}

func (w ProductWeight) Times(other Weight) (Weight, error) {
	o := other.(ProductWeight)
	p1, err := w.W1.Times(o.W1)
	if err != nil {
		return nil, err
	}
	p2, err := w.W2.Times(o.W2)
	if err != nil {
		return nil, err
	}
	return ProductWeight{W1: p1, W2: p2}, nil
}

func (w ProductWeight) IsZero() bool { return w.W1.IsZero() && w.W2.IsZero() }
func (w ProductWeight) IsOne() bool  { return w.W1.IsOne() && w.W2.IsOne() }

func (w ProductWeight) Equal(other Weight) bool {
	o, ok := other.(ProductWeight)
	return ok && w.W1.Equal(o.W1) && w.W2.Equal(o.W2)
}

func (w ProductWeight) ApproxEqual(other Weight, delta float64) bool {
	o := other.(ProductWeight)
	return w.W1.ApproxEqual(o.W1, delta) && w.W2.ApproxEqual(o.W2, delta)
}

func (w ProductWeight) Reverse() Weight {
	return ProductWeight{W1: w.W1.Reverse(), W2: w.W2.Reverse()}
}

func (w ProductWeight) Properties() Properties {
	return w.W1.Properties() & w.W2.Properties()
}

func (w ProductWeight) WeightType() string {
	return "product<" + w.W1.WeightType() + "," + w.W2.WeightType() + ">"
}

func (w ProductWeight) String() string {
	return w.W1.String() + "," + w.W2.String()
}

var _ Weight = ProductWeight{}
