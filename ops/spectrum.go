package ops

import (
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-vectorize/vectorize"
)

// MethodBin is the registry name of Spectrum.Bin.
const MethodBin = "Bin"

var newPlan = algofft.NewPlan64

// Spectrum evaluates DFT bins of a real signal.
//
// Bin computes one bin directly in O(N). The registered bulk specialization
// transforms the whole signal once with algo-fft when N is a power of two and
// reuses the result for later calls. If the transform fails, the bulk path
// evaluates bins directly from then on. A Spectrum is not safe for concurrent
// use.
type Spectrum struct {
	signal []float64
	bins   []complex128
	fftErr error
}

// NewSpectrum returns a Spectrum over a copy of signal.
func NewSpectrum(signal []float64) *Spectrum {
	s := &Spectrum{signal: make([]float64, len(signal))}
	copy(s.signal, signal)
	return s
}

// Len returns the number of bins.
func (s *Spectrum) Len() int { return len(s.signal) }

// Bin returns X[k] = sum_n x[n] * exp(-2*pi*i*k*n/N).
func (s *Spectrum) Bin(k int) (complex128, error) {
	n := len(s.signal)
	if k < 0 || k >= n {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrBinRange, k, n)
	}

	var re, im float64
	for i, x := range s.signal {
		// k*i mod N keeps the phase argument small.
		phase := -2 * math.Pi * float64((k*i)%n) / float64(n)
		sin, cos := math.Sincos(phase)
		re += x * cos
		im += x * sin
	}
	return complex(re, im), nil
}

func bin(s *Spectrum, args ...int) (complex128, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s takes 1, got %d", ErrArity, MethodBin, len(args))
	}
	return s.Bin(args[0])
}

// NewBin returns an engine evaluating Spectrum.Bin over a vector of bin
// indices.
func NewBin(opts ...vectorize.Option) *vectorize.Engine[*Spectrum, int, complex128] {
	return vectorize.MustNew(MethodBin, bin, vectorize.MustDescriptor(0), opts...)
}

func binFFT(s *Spectrum, args ...vectorize.Arg[int]) ([]complex128, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: %s takes 1, got %d", ErrArity, MethodBin, len(args))
	}

	ks := args[0].Values()
	if !args[0].IsVector() {
		ks = []int{args[0].Value()}
	}

	n := len(s.signal)
	for _, k := range ks {
		if k < 0 || k >= n {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrBinRange, k, n)
		}
	}

	out := make([]complex128, len(ks))
	if len(ks) == 0 {
		return out, nil
	}

	if s.bins == nil && s.fftErr == nil && n > 1 && bits.OnesCount(uint(n)) == 1 {
		s.fftErr = s.transform()
	}

	for i, k := range ks {
		if s.bins != nil {
			out[i] = s.bins[k]
		} else {
			out[i], _ = s.Bin(k)
		}
	}
	return out, nil
}

func (s *Spectrum) transform() error {
	n := len(s.signal)
	plan, err := newPlan(n)
	if err != nil {
		return fmt.Errorf("ops: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, x := range s.signal {
		in[i] = complex(x, 0)
	}

	bins := make([]complex128, n)
	if err := plan.Forward(bins, in); err != nil {
		return fmt.Errorf("ops: forward FFT failed: %w", err)
	}
	s.bins = bins
	return nil
}
