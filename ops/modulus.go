package ops

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-vectorize/vectorize"
)

// Registry names of the Modulus methods.
const (
	MethodMagnitude = "Magnitude"
	MethodPower     = "Power"
)

// Modulus computes the magnitude and power of complex values given as
// separate real and imaginary parts.
type Modulus struct{}

// Magnitude returns sqrt(re^2 + im^2).
func (Modulus) Magnitude(re, im float64) float64 {
	return mathSqrt(re*re + im*im)
}

// Power returns re^2 + im^2.
func (Modulus) Power(re, im float64) float64 {
	return re*re + im*im
}

func magnitude(m Modulus, args ...float64) (float64, error) {
	if len(args) != 2 {
		return 0, fmt.Errorf("%w: %s takes 2, got %d", ErrArity, MethodMagnitude, len(args))
	}
	return m.Magnitude(args[0], args[1]), nil
}

func power(m Modulus, args ...float64) (float64, error) {
	if len(args) != 2 {
		return 0, fmt.Errorf("%w: %s takes 2, got %d", ErrArity, MethodPower, len(args))
	}
	return m.Power(args[0], args[1]), nil
}

// NewMagnitude returns an engine for Modulus.Magnitude over vectorized
// real and imaginary parts.
func NewMagnitude(opts ...vectorize.Option) *vectorize.Engine[Modulus, float64, float64] {
	return vectorize.MustNew(MethodMagnitude, magnitude, vectorize.MustDescriptor(0, 1), opts...)
}

// NewPower returns an engine for Modulus.Power over vectorized real and
// imaginary parts.
func NewPower(opts ...vectorize.Option) *vectorize.Engine[Modulus, float64, float64] {
	return vectorize.MustNew(MethodPower, power, vectorize.MustDescriptor(0, 1), opts...)
}

// parts checks that both arguments are vectors of one length. The vecmath
// kernels panic on mismatched slices, so the check happens here.
func parts(method string, args []vectorize.Arg[float64]) (re, im []float64, err error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%w: %s takes 2, got %d", ErrArity, method, len(args))
	}
	if !args[0].IsVector() || !args[1].IsVector() {
		return nil, nil, fmt.Errorf("%w: %s needs vector parts", ErrShape, method)
	}

	re, im = args[0].Values(), args[1].Values()
	if len(re) != len(im) {
		return nil, nil, fmt.Errorf("%w: re has %d values, im %d", ErrShape, len(re), len(im))
	}
	return re, im, nil
}

func modulusGeneric(method string, fn func(Modulus, float64, float64) float64) vectorize.BulkFunc[Modulus, float64, float64] {
	return func(m Modulus, args ...vectorize.Arg[float64]) ([]float64, error) {
		re, im, err := parts(method, args)
		if err != nil {
			return nil, err
		}

		out := make([]float64, len(re))
		for i := range out {
			out[i] = fn(m, re[i], im[i])
		}
		return out, nil
	}
}

func magnitudeVecmath(_ Modulus, args ...vectorize.Arg[float64]) ([]float64, error) {
	re, im, err := parts(MethodMagnitude, args)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(re))
	if len(out) > 0 {
		vecmath.Magnitude(out, re, im)
	}
	return out, nil
}

func powerVecmath(_ Modulus, args ...vectorize.Arg[float64]) ([]float64, error) {
	re, im, err := parts(MethodPower, args)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(re))
	if len(out) > 0 {
		vecmath.Power(out, re, im)
	}
	return out, nil
}
