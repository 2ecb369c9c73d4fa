package field

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this module wraps exactly one of them.
var (
	ErrConfiguration          = errors.New("configuration error")
	ErrSizeMismatch           = errors.New("size mismatch")
	ErrArithmeticPrecondition = errors.New("arithmetic precondition violated")
)

var (
	ErrInvalidOrder          = fmt.Errorf("%w: field order must be in [1, 8]", ErrConfiguration)
	ErrNoGeneratorFound      = fmt.Errorf("%w: no generator found", ErrConfiguration)
	ErrEmptyMatrix           = fmt.Errorf("%w: matrix size must be positive", ErrConfiguration)
	ErrTooManyFragments      = fmt.Errorf("%w: fragment count does not fit in one byte", ErrConfiguration)
	ErrFieldCapacityExceeded = fmt.Errorf("%w: not enough distinct field elements", ErrConfiguration)

	ErrDimensionMismatch = fmt.Errorf("%w: matrix dimensions mismatch", ErrSizeMismatch)

	ErrDivisionByZero  = fmt.Errorf("%w: division by zero element", ErrArithmeticPrecondition)
	ErrLogarithmOfZero = fmt.Errorf("%w: logarithm of zero element", ErrArithmeticPrecondition)
)
