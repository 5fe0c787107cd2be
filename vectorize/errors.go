package vectorize

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports an invalid descriptor, engine or declaration.
	ErrConfiguration = errors.New("vectorize: invalid configuration")

	// ErrLengthMismatch reports vectorized arguments of unequal length.
	ErrLengthMismatch = errors.New("vectorize: vectorized argument length mismatch")

	// ErrInvalidArgument reports a call frame that does not match the descriptor,
	// e.g. a scalar passed at a vectorized position.
	ErrInvalidArgument = errors.New("vectorize: invalid argument")
)

// LengthMismatchError is returned by the elementwise fallback when the
// vectorized arguments do not share one length. No scalar call has been made
// when it is returned.
type LengthMismatchError struct {
	// Position is the argument position whose length disagrees.
	Position int
	// Len is the length found at Position.
	Len int
	// Want is the length of the first vectorized argument.
	Want int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("vectorize: argument %d has length %d, want %d", e.Position, e.Len, e.Want)
}

// Is reports whether target is ErrLengthMismatch.
func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConfiguration}, args...)...)
}

func argErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}
