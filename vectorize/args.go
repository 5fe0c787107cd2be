package vectorize

// Arg is one positional argument of a bulk call: either a static value or a
// sequence holding one value per element.
type Arg[A any] struct {
	value  A
	values []A
	vector bool
}

// Scalar wraps a static argument.
func Scalar[A any](v A) Arg[A] {
	return Arg[A]{value: v}
}

// Vector wraps a vectorized argument. The slice is not copied.
func Vector[A any](vs []A) Arg[A] {
	return Arg[A]{values: vs, vector: true}
}

// Scalars wraps each value as a static argument.
func Scalars[A any](vs ...A) []Arg[A] {
	out := make([]Arg[A], len(vs))
	for i, v := range vs {
		out[i] = Scalar(v)
	}
	return out
}

// IsVector reports whether a was built with Vector.
func (a Arg[A]) IsVector() bool { return a.vector }

// Value returns the static value. It is the zero value for vectors.
func (a Arg[A]) Value() A { return a.value }

// Values returns the sequence. It is nil for scalars.
func (a Arg[A]) Values() []A { return a.values }

// Len returns the sequence length, or 0 for scalars.
func (a Arg[A]) Len() int { return len(a.values) }
