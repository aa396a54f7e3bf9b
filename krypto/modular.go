package krypto

import "math/bits"

// mulMod returns (a*b) mod m using a 128-bit intermediate product.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// PowerMod returns (base^exponent) mod modulus by square-and-multiply.
// It fails with ErrDomain when modulus is zero.
func PowerMod(base, exponent, modulus uint64) (uint64, error) {
	if modulus == 0 {
		return 0, ErrDomain
	}

	result := 1 % modulus
	base %= modulus
	for exponent > 0 {
		if exponent&1 == 1 {
			result = mulMod(result, base, modulus)
		}
		base = mulMod(base, base, modulus)
		exponent >>= 1
	}
	return result, nil
}

// PowerModLinear returns the same value as PowerMod but multiplies the
// accumulator by base once per unit of exponent. It runs in O(exponent) and
// exists for benchmark runs that measure the naive algorithm.
func PowerModLinear(base, exponent, modulus uint64) (uint64, error) {
	if modulus == 0 {
		return 0, ErrDomain
	}

	result := 1 % modulus
	base %= modulus
	for ; exponent > 0; exponent-- {
		result = mulMod(result, base, modulus)
	}
	return result, nil
}

// ExtendedGCD returns g = gcd(a, b) together with Bézout coefficients x, y
// such that a*x + b*y == g. Arguments are expected to be non-negative.
func ExtendedGCD(a, b int64) (g, x, y int64) {
	if a == 0 {
		return b, 0, 1
	}
	g, xi, yi := ExtendedGCD(b%a, a)
	return g, yi - (b/a)*xi, xi
}

// PositiveModulo returns value mod modulus normalized into [0, modulus),
// wrapping negative values instead of truncating toward zero.
func PositiveModulo(value int64, modulus uint64) (uint64, error) {
	if modulus == 0 {
		return 0, ErrDomain
	}
	if value >= 0 {
		return uint64(value) % modulus, nil
	}

	// -(value+1) never overflows, even for math.MinInt64.
	abs := uint64(-(value + 1)) + 1
	r := abs % modulus
	if r == 0 {
		return 0, nil
	}
	return modulus - r, nil
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
