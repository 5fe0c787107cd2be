package ops

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-vectorize/vectorize"
)

// MethodScaleThenAdd is the registry name of Gain.ScaleThenAdd.
const MethodScaleThenAdd = "ScaleThenAdd"

// Gain scales its input and adds a fixed offset.
type Gain struct {
	Offset float64
}

// ScaleThenAdd returns k*x + g.Offset.
func (g Gain) ScaleThenAdd(k, x float64) float64 {
	return k*x + g.Offset
}

func scaleThenAdd(g Gain, args ...float64) (float64, error) {
	if len(args) != 2 {
		return 0, fmt.Errorf("%w: %s takes 2, got %d", ErrArity, MethodScaleThenAdd, len(args))
	}
	return g.ScaleThenAdd(args[0], args[1]), nil
}

// NewScaleThenAdd returns an engine for Gain.ScaleThenAdd with a static gain
// k at position 0 and vectorized x at position 1.
func NewScaleThenAdd(opts ...vectorize.Option) *vectorize.Engine[Gain, float64, float64] {
	return vectorize.MustNew(MethodScaleThenAdd, scaleThenAdd, vectorize.MustDescriptor(1), opts...)
}

// gainOperands extracts the gain and input sequences. A scalar gain is
// broadcast to the input length.
func gainOperands(args []vectorize.Arg[float64]) (k, x []float64, err error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%w: %s takes 2, got %d", ErrArity, MethodScaleThenAdd, len(args))
	}

	x = args[1].Values()
	if !args[1].IsVector() {
		x = []float64{args[1].Value()}
	}

	if !args[0].IsVector() {
		k = make([]float64, len(x))
		for i := range k {
			k[i] = args[0].Value()
		}
		return k, x, nil
	}

	k = args[0].Values()
	if len(k) != len(x) {
		return nil, nil, fmt.Errorf("%w: gain has %d values, input %d", ErrShape, len(k), len(x))
	}
	return k, x, nil
}

func scaleThenAddGeneric(g Gain, args ...vectorize.Arg[float64]) ([]float64, error) {
	k, x, err := gainOperands(args)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	for i := range out {
		out[i] = k[i]*x[i] + g.Offset
	}
	return out, nil
}

func scaleThenAddVecmath(g Gain, args ...vectorize.Arg[float64]) ([]float64, error) {
	k, x, err := gainOperands(args)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	if len(out) == 0 {
		return out, nil
	}
	vecmath.MulBlock(out, k, x)
	for i := range out {
		out[i] += g.Offset
	}
	return out, nil
}
