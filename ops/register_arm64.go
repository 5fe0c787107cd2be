//go:build arm64 && !purego

package ops

import (
	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-vectorize/vectorize"
)

// init registers the algo-vecmath backed specializations.
//
// Priority: 15 (preferred over generic when NEON is available)
func init() {
	opts := []vectorize.DeclareOption{
		vectorize.WithLabel("vecmath"),
		vectorize.WithSIMDLevel(cpu.SIMDNEON),
		vectorize.WithPriority(15),
	}

	vectorize.MustDeclare[Gain](vectorize.Global, MethodScaleThenAdd, vectorize.Func(scaleThenAddVecmath), opts...)
	vectorize.MustDeclare[Modulus](vectorize.Global, MethodMagnitude, vectorize.Func(magnitudeVecmath), opts...)
	vectorize.MustDeclare[Modulus](vectorize.Global, MethodPower, vectorize.Func(powerVecmath), opts...)
}
