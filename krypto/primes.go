package krypto

import "math"

// maxPoolPrealloc caps the initial capacity of a prime pool so a huge count
// does not allocate up front.
const maxPoolPrealloc = 1 << 16

// IsPrime reports whether n is prime using trial division by every integer
// in [2, ⌊√n⌋]. 0 and 1 are not prime.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for i := uint64(2); i <= n/i; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// GeneratePrimes returns the first count primes that are >= start, in
// increasing order. A count of zero yields an empty pool. The search stops
// at the top of the uint64 range instead of wrapping, so the result may be
// shorter than count only when start is close to math.MaxUint64.
func GeneratePrimes(start, count uint64) []uint64 {
	primes := make([]uint64, 0, min(count, maxPoolPrealloc))
	for i := start; uint64(len(primes)) < count; i++ {
		if IsPrime(i) {
			primes = append(primes, i)
		}
		if i == math.MaxUint64 {
			break
		}
	}
	return primes
}
