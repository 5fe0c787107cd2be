//go:build amd64 && !purego

package ops

import (
	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-vectorize/vectorize"
)

// init registers the algo-vecmath backed specializations.
//
// SSE2 is the amd64 baseline; algo-vecmath picks AVX2 kernels itself when
// the CPU has them.
//
// Priority: 10 (preferred over generic)
func init() {
	opts := []vectorize.DeclareOption{
		vectorize.WithLabel("vecmath"),
		vectorize.WithSIMDLevel(cpu.SIMDSSE2),
		vectorize.WithPriority(10),
	}

	vectorize.MustDeclare[Gain](vectorize.Global, MethodScaleThenAdd, vectorize.Func(scaleThenAddVecmath), opts...)
	vectorize.MustDeclare[Modulus](vectorize.Global, MethodMagnitude, vectorize.Func(magnitudeVecmath), opts...)
	vectorize.MustDeclare[Modulus](vectorize.Global, MethodPower, vectorize.Func(powerVecmath), opts...)
}
