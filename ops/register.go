package ops

import (
	"github.com/cwbudde/algo-vectorize/vectorize"
)

// init registers the generic (pure Go) specializations.
//
// Priority: 0 (lowest - used only when no SIMD-backed variant is supported)
func init() {
	Register(vectorize.Global)
}

// Register declares the generic specializations of all targets in r.
// Architecture-specific variants are only added to vectorize.Global.
func Register(r *vectorize.Registry) {
	generic := vectorize.WithLabel("generic")

	vectorize.MustDeclare[Gain](r, MethodScaleThenAdd, vectorize.Func(scaleThenAddGeneric), generic)
	vectorize.MustDeclare[Modulus](r, MethodMagnitude,
		vectorize.Func(modulusGeneric(MethodMagnitude, Modulus.Magnitude)), generic)
	vectorize.MustDeclare[Modulus](r, MethodPower,
		vectorize.Func(modulusGeneric(MethodPower, Modulus.Power)), generic)

	vectorize.MustDeclare[*Spectrum](r, MethodBin, vectorize.Func(binFFT), vectorize.WithLabel("fft"))

	vectorize.MustDeclare[*Accumulator](r, MethodAdd, vectorize.Named(addManySymbol))
	vectorize.MustDeclare[*LeakyAccumulator](r, MethodAdd, vectorize.Named(addManySymbol))
}
