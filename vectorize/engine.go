package vectorize

import (
	"github.com/cwbudde/algo-vecmath/cpu"
)

// ScalarFunc is a scalar method in method-expression form: one call per
// input set. Implementations must not retain args after returning; the
// engine reuses the backing array between elements.
type ScalarFunc[T, A, R any] func(target T, args ...A) (R, error)

// Engine applies a scalar method across vectorized arguments, preferring a
// registered specialization over the elementwise loop.
//
// An Engine is immutable after New and may be shared between goroutines as
// long as the scalar method and its targets allow it.
type Engine[T, A, R any] struct {
	method string
	scalar ScalarFunc[T, A, R]
	desc   Descriptor
	cfg    config
}

// New builds an engine for the scalar method named method, implemented by fn.
// The name is the registry key for specializations.
func New[T, A, R any](method string, fn ScalarFunc[T, A, R], desc Descriptor, opts ...Option) (*Engine[T, A, R], error) {
	if method == "" {
		return nil, configErrorf("empty method name")
	}
	if fn == nil {
		return nil, configErrorf("nil scalar func for %s", method)
	}
	if !desc.valid() {
		return nil, configErrorf("descriptor for %s marks no vectorized position", method)
	}

	return &Engine[T, A, R]{
		method: method,
		scalar: fn,
		desc:   desc,
		cfg:    applyOptions(opts...),
	}, nil
}

// MustNew is like New but panics on error.
func MustNew[T, A, R any](method string, fn ScalarFunc[T, A, R], desc Descriptor, opts ...Option) *Engine[T, A, R] {
	e, err := New(method, fn, desc, opts...)
	if err != nil {
		panic(err.Error())
	}
	return e
}

// Method returns the scalar method name.
func (e *Engine[T, A, R]) Method() string { return e.method }

// Descriptor returns the vectorization descriptor.
func (e *Engine[T, A, R]) Descriptor() Descriptor { return e.desc }

// Specialized reports whether Call would use a specialization for target.
func (e *Engine[T, A, R]) Specialized(target T) bool {
	_, ok := e.resolve(target)
	return ok
}

// Call applies the scalar method to every element of the vectorized
// arguments and returns the results in index order.
//
// A specialization, when one resolves, receives args unchanged and its
// result is returned as is; the engine does not check argument lengths on
// that path. Otherwise args must match the descriptor: vectors at vectorized
// positions, scalars everywhere else, all vectors of one length. Errors from
// the scalar method stop the loop and are returned unwrapped.
func (e *Engine[T, A, R]) Call(target T, args ...Arg[A]) ([]R, error) {
	if bulk, ok := e.resolve(target); ok {
		return bulk(args...)
	}
	return e.elementwise(target, args)
}

func (e *Engine[T, A, R]) resolve(target T) (Bulk[A, R], bool) {
	if e.cfg.fallbackOnly {
		return nil, false
	}

	features := cpu.DetectFeatures()
	if e.cfg.features != nil {
		features = *e.cfg.features
	}
	return Resolve[T, A, R](e.cfg.registry, target, e.method, features)
}

func (e *Engine[T, A, R]) elementwise(target T, args []Arg[A]) ([]R, error) {
	n, err := e.checkFrame(args)
	if err != nil {
		return nil, err
	}

	frame := make([]A, len(args))
	for i, a := range args {
		if !a.IsVector() {
			frame[i] = a.Value()
		}
	}

	// frame[:sliceIndex] is the static prefix; only the window changes.
	sliceIndex := e.desc.SliceIndex()
	window := frame[sliceIndex:]
	positions := e.desc.positions

	out := make([]R, n)
	for i := 0; i < n; i++ {
		for _, p := range positions {
			window[p-sliceIndex] = args[p].values[i]
		}

		r, err := e.scalar(target, frame...)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// checkFrame validates args against the descriptor and returns the common
// vector length.
func (e *Engine[T, A, R]) checkFrame(args []Arg[A]) (int, error) {
	if len(args) < e.desc.Arity() {
		return 0, argErrorf("%s: got %d arguments, descriptor covers %d", e.method, len(args), e.desc.Arity())
	}

	for i, a := range args {
		switch vec := e.desc.Vectorized(i); {
		case vec && !a.IsVector():
			return 0, argErrorf("%s: argument %d must be a vector", e.method, i)
		case !vec && a.IsVector():
			return 0, argErrorf("%s: argument %d is not vectorized", e.method, i)
		}
	}

	positions := e.desc.positions
	want := args[positions[0]].Len()
	for _, p := range positions[1:] {
		if got := args[p].Len(); got != want {
			return 0, &LengthMismatchError{Position: p, Len: got, Want: want}
		}
	}
	return want, nil
}
