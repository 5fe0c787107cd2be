// Package vectorize turns a scalar method into a bulk operation.
//
// An [Engine] is built from a scalar method (one input set, one result) and a
// [Descriptor] marking which positional arguments are vectorized. [Engine.Call]
// first asks the [Registry] for a specialization declared for the target's
// runtime type; if one resolves it receives the whole call. Otherwise the
// engine runs the elementwise fallback:
//
//   - vectorized arguments must share one length, else [LengthMismatchError]
//   - arguments before the first vectorized position form the static prefix
//     and are passed unchanged to every element call
//   - arguments from the first vectorized position on form the dynamic
//     window; vectorized slots are replaced by the i-th element for i = 0..n-1
//
// The loop is sequential and stops at the first scalar error, which is
// returned as is.
//
// # Specializations
//
// Specializations are declared per (type, method name), usually from init():
//
//	vectorize.MustDeclare[Gain](vectorize.Global, "ScaleThenAdd",
//	    vectorize.Func(Gain.scaleThenAddBulk))
//
// [Func] captures a function at declaration time. [Named] stores a symbol
// that is resolved against the live target through [Specializer] on each
// call, so embedding types can supply their own bulk implementation. A
// target implementing [Specializer] without any declaration is asked for the
// scalar method name itself.
//
// Declarations may carry a priority and a required SIMD level
// (github.com/cwbudde/algo-vecmath/cpu); the highest-priority declaration
// supported by the CPU is used.
package vectorize
