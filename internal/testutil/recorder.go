package testutil

import "slices"

// Recorder captures the argument lists a scalar method was invoked with.
type Recorder[A any] struct {
	calls [][]A
}

// Record stores a copy of args.
func (r *Recorder[A]) Record(args []A) {
	r.calls = append(r.calls, slices.Clone(args))
}

// Count returns the number of recorded calls.
func (r *Recorder[A]) Count() int { return len(r.calls) }

// Calls returns the recorded argument lists in call order.
func (r *Recorder[A]) Calls() [][]A { return r.calls }

// Reset forgets all calls.
func (r *Recorder[A]) Reset() { r.calls = nil }
