package field

import (
	"fmt"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("field")

const (
	// IrreducibleErasureCode is x^8 + x^4 + x^3 + x^2 + 1 with the x^8 term dropped
	IrreducibleErasureCode uint8 = 0x1D
	// IrreducibleAES is the Rijndael polynomial x^8 + x^4 + x^3 + x + 1 with the x^8 term dropped
	IrreducibleAES uint8 = 0x1B

	// MaxOrder is the largest w whose elements fit in one byte
	MaxOrder = 8
)

// defaultIrreducible is indexed by w. Below w = 8 the x^w term is kept in the byte.
var defaultIrreducible = [MaxOrder + 1]uint8{
	0x00, // GF(2^0) does not exist
	0x03, // x + 1
	0x07, // x^2 + x + 1
	0x0B, // x^3 + x + 1
	0x13, // x^4 + x + 1
	0x25, // x^5 + x^2 + 1
	0x43, // x^6 + x + 1
	0x83, // x^7 + x + 1
	IrreducibleErasureCode,
}

// DefaultIrreducible returns the irreducible polynomial used for GF(2^w) when
// the caller has no preference, or 0 when w is out of range.
func DefaultIrreducible(w int) uint8 {
	if w < 1 || w > MaxOrder {
		return 0
	}
	return defaultIrreducible[w]
}

// BinaryField represents a binary finite field GF(2^w) with w in [1, 8].
//
// Multiplication and division go through power/log tables built from the
// smallest generator of the multiplicative group. A BinaryField never changes
// after NewBinaryField returns, so it can be shared between goroutines.
type BinaryField struct {
	w            int   // field extension degree
	elementCount int   // 2^w
	overflowFlag uint8 // 2^(w-1), the bit that overflows on doubling
	irreducible  uint8 // reduction polynomial
	generator    uint8 // generator the tables were built from

	powerTable []uint8 // exponent -> element
	logTable   []uint8 // element -> exponent
}

// NewBinaryField creates GF(2^w) reduced by the given irreducible polynomial
func NewBinaryField(w int, irreducible uint8) (*BinaryField, error) {
	if w < 1 || w > MaxOrder {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, w)
	}

	f := newUntabledField(w, irreducible)

	g, ok := f.MinGenerator()
	if !ok {
		if !IsIrreducible(w, irreducible) {
			return nil, fmt.Errorf("%w: polynomial 0x%02X is not irreducible of degree %d", ErrNoGeneratorFound, irreducible, w)
		}
		return nil, fmt.Errorf("%w: GF(2^%d) with polynomial 0x%02X", ErrNoGeneratorFound, w, irreducible)
	}
	f.buildTables(g)

	log.Debugf("built %s with generator %d", f, g)
	return f, nil
}

// NewErasureCodeField creates GF(2^8) with the erasure-code polynomial 0x1D
func NewErasureCodeField() *BinaryField {
	f, err := NewBinaryField(8, IrreducibleErasureCode)
	if err != nil {
		panic(fmt.Sprintf("erasure-code field: %v", err))
	}
	return f
}

// NewAESField creates GF(2^8) with the AES polynomial 0x1B
func NewAESField() *BinaryField {
	f, err := NewBinaryField(8, IrreducibleAES)
	if err != nil {
		panic(fmt.Sprintf("AES field: %v", err))
	}
	return f
}

// newUntabledField sets up everything but the power/log tables, which is
// enough for MulDirect and the generator search.
func newUntabledField(w int, irreducible uint8) *BinaryField {
	elementCount := 1 << w
	return &BinaryField{
		w:            w,
		elementCount: elementCount,
		overflowFlag: uint8(1 << (w - 1)),
		irreducible:  irreducible,
		powerTable:   make([]uint8, elementCount),
		logTable:     make([]uint8, elementCount),
	}
}

// buildTables fills the power and log tables from generator g.
//
// power[0] and power[elementCount-1] are both 1, so the loop writes
// log[1] = elementCount-1 at the end; log[1] is then pinned to 0.
func (f *BinaryField) buildTables(g uint8) {
	f.generator = g
	f.powerTable[0] = 1

	n := uint8(1)
	for i := 1; i < f.elementCount; i++ {
		n = f.MulDirect(n, g)
		f.powerTable[i] = n
		f.logTable[n] = uint8(i)
	}

	f.logTable[1] = 0
}

// Order returns w
func (f *BinaryField) Order() int {
	return f.w
}

// ElementCount returns 2^w
func (f *BinaryField) ElementCount() int {
	return f.elementCount
}

// OverflowFlag returns 2^(w-1)
func (f *BinaryField) OverflowFlag() uint8 {
	return f.overflowFlag
}

// Irreducible returns the reduction polynomial
func (f *BinaryField) Irreducible() uint8 {
	return f.irreducible
}

// Generator returns the generator the tables were built from
func (f *BinaryField) Generator() uint8 {
	return f.generator
}

// MinElement returns the zero element
func (f *BinaryField) MinElement() uint8 {
	return 0
}

// MaxElement returns 2^w - 1
func (f *BinaryField) MaxElement() uint8 {
	return uint8(f.elementCount - 1)
}

// PowerTable returns a copy of the exponent -> element table
func (f *BinaryField) PowerTable() []uint8 {
	return append([]uint8(nil), f.powerTable...)
}

// LogTable returns a copy of the element -> exponent table
func (f *BinaryField) LogTable() []uint8 {
	return append([]uint8(nil), f.logTable...)
}

// Add returns x + y (XOR operation)
func (f *BinaryField) Add(x, y uint8) uint8 {
	return x ^ y
}

// Sub returns x - y, which is the same as Add in characteristic 2
func (f *BinaryField) Sub(x, y uint8) uint8 {
	return x ^ y
}

// double returns 2x, reducing by the irreducible polynomial on overflow
func (f *BinaryField) double(x uint8) uint8 {
	if x&f.overflowFlag != 0 {
		return (x << 1) ^ f.irreducible
	}
	return x << 1
}

// MulDirect returns x * y without the tables: x is doubled eight times and
// the doublings selected by the set bits of y are XORed together.
func (f *BinaryField) MulDirect(x, y uint8) uint8 {
	var res uint8
	v := x
	for i := 0; i < 8; i++ {
		if (y>>i)&1 == 1 {
			res ^= v
		}
		v = f.double(v)
	}
	return res
}

// Mul returns x * y through the power/log tables.
// x and y must be elements of the field.
func (f *BinaryField) Mul(x, y uint8) uint8 {
	if x == 0 || y == 0 {
		return 0
	}
	sum := (int(f.logTable[x]) + int(f.logTable[y])) % (f.elementCount - 1)
	return f.powerTable[sum]
}

// Div returns x / y through the power/log tables
func (f *BinaryField) Div(x, y uint8) (uint8, error) {
	if y == 0 {
		return 0, ErrDivisionByZero
	}
	if x == 0 {
		return 0, nil
	}
	diff := int(f.logTable[x]) - int(f.logTable[y])
	if diff < 0 {
		diff += f.elementCount - 1
	}
	return f.powerTable[diff%(f.elementCount-1)], nil
}

// Inv returns the multiplicative inverse of x
func (f *BinaryField) Inv(x uint8) (uint8, error) {
	return f.Div(1, x)
}

// Exp returns g^i for the field generator g. Negative exponents are allowed.
func (f *BinaryField) Exp(i int) uint8 {
	n := f.elementCount - 1
	return f.powerTable[((i%n)+n)%n]
}

// Log returns the discrete logarithm of x to the base of the field generator
func (f *BinaryField) Log(x uint8) (uint8, error) {
	if x == 0 {
		return 0, ErrLogarithmOfZero
	}
	return f.logTable[x], nil
}

// IsGenerator reports whether the powers of candidate enumerate every
// nonzero element exactly once before repeating.
func (f *BinaryField) IsGenerator(candidate uint8) bool {
	if candidate == 0 || int(candidate) >= f.elementCount {
		return false
	}

	var seen [1 << MaxOrder]bool
	n := candidate
	for i := 1; i < f.elementCount; i++ {
		// a product outside the field means the polynomial does not fit w
		if int(n) >= f.elementCount || seen[n] {
			return false
		}
		seen[n] = true
		n = f.MulDirect(n, candidate)
	}

	for e := 1; e < f.elementCount; e++ {
		if !seen[e] {
			return false
		}
	}
	return true
}

// MinGenerator returns the smallest generator of the multiplicative group.
//
// The search starts at 1, which only qualifies in GF(2) where the group is
// trivial; for every larger field the first candidate that can pass is 2.
// AllGenerators uses the same range, so it returns [1] for w = 1.
func (f *BinaryField) MinGenerator() (uint8, bool) {
	for g := 1; g < f.elementCount; g++ {
		if f.IsGenerator(uint8(g)) {
			return uint8(g), true
		}
	}
	return 0, false
}

// AllGenerators returns every generator in ascending order, starting the
// search at 1 like MinGenerator
func (f *BinaryField) AllGenerators() []uint8 {
	var res []uint8
	for g := 1; g < f.elementCount; g++ {
		if f.IsGenerator(uint8(g)) {
			res = append(res, uint8(g))
		}
	}
	return res
}

// String returns the field descriptor
func (f *BinaryField) String() string {
	return fmt.Sprintf("GF(2^%d, 0x%02X)", f.w, f.irreducible)
}
