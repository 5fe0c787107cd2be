package ops

import "errors"

var (
	// ErrArity is returned when a scalar method receives the wrong number of
	// arguments.
	ErrArity = errors.New("ops: wrong number of arguments")

	// ErrShape is returned by bulk specializations whose vectorized inputs
	// do not agree in length.
	ErrShape = errors.New("ops: mismatched input shapes")

	// ErrBinRange is returned for a spectrum bin outside [0, N).
	ErrBinRange = errors.New("ops: bin index out of range")
)
