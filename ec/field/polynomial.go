package field

import "math/bits"

// Polynomials over GF(2) packed into a uint16, bit i holding the coefficient
// of x^i. Products of two field elements have degree at most 14 and fit.

// FullPolynomial returns the reduction polynomial of GF(2^w) with the x^w
// term restored. For w = 8 that term does not fit in the byte form.
func FullPolynomial(w int, irreducible uint8) uint16 {
	return uint16(irreducible) | 1<<w
}

// IsIrreducible reports whether the reduction polynomial of GF(2^w) has no
// factor of degree 1..w/2. Below w = 8 the byte must carry the x^w term
// itself, since doubling reduces by the byte as given.
func IsIrreducible(w int, irreducible uint8) bool {
	if w < 1 || w > MaxOrder {
		return false
	}
	if w < MaxOrder && irreducible&(1<<w) == 0 {
		return false
	}
	p := FullPolynomial(w, irreducible)
	if polyDegree(p) != w {
		return false
	}

	for d := uint16(2); d < 1<<(w/2+1); d++ {
		if _, r := polyDivMod(p, d); r == 0 {
			return false
		}
	}
	return true
}

// polyDegree returns the degree of p, or -1 for the zero polynomial
func polyDegree(p uint16) int {
	return bits.Len16(p) - 1
}

// polyMul performs polynomial multiplication in GF(2)
func polyMul(a, b uint16) uint16 {
	var result uint16
	for b > 0 {
		if b&1 == 1 {
			result ^= a
		}
		a <<= 1
		b >>= 1
	}
	return result
}

// polyDivMod performs polynomial division in GF(2)
func polyDivMod(a, b uint16) (uint16, uint16) {
	if b == 0 {
		panic("division by zero polynomial")
	}

	var quotient uint16
	remainder := a
	bDegree := polyDegree(b)

	for polyDegree(remainder) >= bDegree {
		shift := polyDegree(remainder) - bDegree
		quotient |= 1 << shift
		remainder ^= b << shift
	}

	return quotient, remainder
}
