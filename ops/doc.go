// Package ops provides ready-made targets for the vectorize engine.
//
// Each target exposes a scalar method and registers bulk specializations
// with vectorize.Global from init(), the same way kernel packages register
// SIMD variants:
//
//   - Gain: ScaleThenAdd(k, x) = k*x + offset, bulk via algo-vecmath MulBlock
//   - Modulus: Magnitude(re, im) and Power(re, im), bulk via algo-vecmath
//   - Spectrum: Bin(k) of a real signal, bulk via one algo-fft transform
//   - Accumulator, LeakyAccumulator: ordering-dependent running sums with
//     late-bound specializations resolved through vectorize.Specializer
//
// The generic (pure Go) specializations are always registered. On amd64
// and arm64 the algo-vecmath variants are registered with a higher priority
// and gated on SSE2 and NEON respectively. Build with -tags=fastmath to use
// algo-approx for the scalar square root.
package ops
