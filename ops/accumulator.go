package ops

import (
	"fmt"

	"github.com/cwbudde/algo-vectorize/vectorize"
)

// MethodAdd is the registry name of Integrator.Add.
const MethodAdd = "Add"

// addManySymbol is the late-bound name both accumulators answer to.
const addManySymbol = "AddMany"

// Integrator is a stateful scalar target: each Add observes every earlier one.
type Integrator interface {
	Add(x float64) float64
}

// Accumulator keeps a running sum.
type Accumulator struct {
	Sum float64
}

// Add adds x and returns the new sum.
func (a *Accumulator) Add(x float64) float64 {
	a.Sum += x
	return a.Sum
}

// BulkOverride implements vectorize.Specializer.
func (a *Accumulator) BulkOverride(name string) (vectorize.Bulk[float64, float64], bool) {
	if name != addManySymbol {
		return nil, false
	}
	return func(args ...vectorize.Arg[float64]) ([]float64, error) {
		xs, err := addOperand(args)
		if err != nil {
			return nil, err
		}

		out := make([]float64, len(xs))
		sum := a.Sum
		for i, x := range xs {
			sum += x
			out[i] = sum
		}
		a.Sum = sum
		return out, nil
	}, true
}

// LeakyAccumulator is an Accumulator whose sum decays by Leak before each
// addition.
type LeakyAccumulator struct {
	Accumulator
	Leak float64
}

// Add decays the sum, adds x and returns the new sum.
func (l *LeakyAccumulator) Add(x float64) float64 {
	l.Sum = l.Sum*l.Leak + x
	return l.Sum
}

// BulkOverride implements vectorize.Specializer. It shadows the embedded
// Accumulator's specialization.
func (l *LeakyAccumulator) BulkOverride(name string) (vectorize.Bulk[float64, float64], bool) {
	if name != addManySymbol {
		return nil, false
	}
	return func(args ...vectorize.Arg[float64]) ([]float64, error) {
		xs, err := addOperand(args)
		if err != nil {
			return nil, err
		}

		out := make([]float64, len(xs))
		sum, leak := l.Sum, l.Leak
		for i, x := range xs {
			sum = sum*leak + x
			out[i] = sum
		}
		l.Sum = sum
		return out, nil
	}, true
}

func addOperand(args []vectorize.Arg[float64]) ([]float64, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: %s takes 1, got %d", ErrArity, MethodAdd, len(args))
	}
	if !args[0].IsVector() {
		return []float64{args[0].Value()}, nil
	}
	return args[0].Values(), nil
}

func add(t Integrator, args ...float64) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s takes 1, got %d", ErrArity, MethodAdd, len(args))
	}
	return t.Add(args[0]), nil
}

// NewAdd returns an engine feeding a vector of values to Integrator.Add in
// order and returning every intermediate result.
func NewAdd(opts ...vectorize.Option) *vectorize.Engine[Integrator, float64, float64] {
	return vectorize.MustNew(MethodAdd, add, vectorize.MustDescriptor(0), opts...)
}
