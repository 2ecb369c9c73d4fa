package field

// Field is the arithmetic a matrix needs from a finite field whose
// elements fit in one byte.
type Field interface {
	// Add returns x + y in the field
	Add(x, y uint8) uint8

	// Sub returns x - y in the field
	Sub(x, y uint8) uint8

	// Mul returns x * y in the field
	Mul(x, y uint8) uint8

	// Div returns x / y in the field, failing when y is the zero element
	Div(x, y uint8) (uint8, error)

	// ElementCount returns the number of elements in the field
	ElementCount() int
}
