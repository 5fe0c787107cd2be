package vectorize

// MaxArity bounds the number of positions a descriptor may cover.
const MaxArity = 1 << 12

// Descriptor marks which positional arguments of a scalar method are
// vectorized. Positions before SliceIndex form the static prefix, positions
// at or after it the dynamic window.
//
// The zero Descriptor has no vectorized positions and is rejected by New.
type Descriptor struct {
	flags     []bool
	positions []int
}

// NewDescriptor builds a descriptor from per-position flags. At least one flag
// must be true.
func NewDescriptor(flags ...bool) (Descriptor, error) {
	if len(flags) > MaxArity {
		return Descriptor{}, configErrorf("descriptor covers %d positions, limit is %d", len(flags), MaxArity)
	}

	d := Descriptor{flags: make([]bool, len(flags))}
	copy(d.flags, flags)
	for i, v := range flags {
		if v {
			d.positions = append(d.positions, i)
		}
	}
	if len(d.positions) == 0 {
		return Descriptor{}, configErrorf("descriptor marks no vectorized position")
	}
	return d, nil
}

// DescriptorOf builds a descriptor from vectorized argument indices.
// Duplicates are ignored. Negative indices and indices of MaxArity or more
// are rejected.
func DescriptorOf(positions ...int) (Descriptor, error) {
	if len(positions) == 0 {
		return Descriptor{}, configErrorf("descriptor marks no vectorized position")
	}

	maxPos := 0
	for _, p := range positions {
		if p < 0 {
			return Descriptor{}, configErrorf("negative vectorized position %d", p)
		}
		if p >= MaxArity {
			return Descriptor{}, configErrorf("vectorized position %d exceeds limit %d", p, MaxArity-1)
		}
		if p > maxPos {
			maxPos = p
		}
	}

	flags := make([]bool, maxPos+1)
	for _, p := range positions {
		flags[p] = true
	}
	return NewDescriptor(flags...)
}

// MustDescriptor is like DescriptorOf but panics on error.
func MustDescriptor(positions ...int) Descriptor {
	d, err := DescriptorOf(positions...)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// SliceIndex returns the lowest vectorized position, or -1 for the zero
// Descriptor.
func (d Descriptor) SliceIndex() int {
	if len(d.positions) == 0 {
		return -1
	}
	return d.positions[0]
}

// Positions returns the vectorized positions in ascending order.
func (d Descriptor) Positions() []int {
	out := make([]int, len(d.positions))
	copy(out, d.positions)
	return out
}

// Vectorized reports whether position i is vectorized.
func (d Descriptor) Vectorized(i int) bool {
	return i >= 0 && i < len(d.flags) && d.flags[i]
}

// Arity returns the number of positions the descriptor covers.
func (d Descriptor) Arity() int { return len(d.flags) }

func (d Descriptor) valid() bool {
	return len(d.positions) > 0
}
