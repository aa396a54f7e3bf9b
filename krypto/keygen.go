package krypto

import (
	"fmt"
	"log"
	"math"
	"math/bits"
)

// Default bit-length gap window for p and q. |log2(p) - log2(q)| must fall
// strictly inside (DefaultGapMin, DefaultGapMax).
const (
	DefaultGapMin = 0.1
	DefaultGapMax = 30
)

// Keypair holds the public exponent E, the private exponent D and the modulus N.
type Keypair struct {
	E uint64 `json:"e"`
	D uint64 `json:"d"`
	N uint64 `json:"n"`
}

// PublicKey is the encrypting half of a Keypair.
type PublicKey struct {
	E uint64 `json:"e"`
	N uint64 `json:"n"`
}

// Public returns the public half of the keypair.
func (k Keypair) Public() PublicKey {
	return PublicKey{E: k.E, N: k.N}
}

// Validate checks that the components are usable for encryption. It cannot
// verify E*D ≡ 1 (mod φ(N)) without the factors of N.
func (k Keypair) Validate() error {
	switch {
	case k.N < 2:
		return fmt.Errorf("%w: modulus %d", ErrInvalidKeypair, k.N)
	case k.E < 2:
		return fmt.Errorf("%w: public exponent %d", ErrInvalidKeypair, k.E)
	case k.D == 0:
		return fmt.Errorf("%w: private exponent is zero", ErrInvalidKeypair)
	}
	return nil
}

// Report carries the intermediate values of one key generation.
type Report struct {
	P, Q     uint64
	N        uint64
	Phi      uint64
	E, D     uint64
	K        int64 // Bézout coefficient of φ(N)
	GCD      int64 // gcd(E, φ(N)); always 1 on success
	PoolSize int
	QDraws   int
	EDraws   int
}

// Generator produces keypairs from a pool of small primes by rejection sampling.
type Generator struct {
	rng         IndexSource
	maxAttempts int
	gapMin      float64
	gapMax      float64
	debug       bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxAttempts caps each rejection loop. Zero or a negative value keeps
// the loops unbounded.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		g.maxAttempts = max(n, 0)
	}
}

// WithBitGap overrides the open interval for |log2(p) - log2(q)|.
func WithBitGap(minGap, maxGap float64) Option {
	return func(g *Generator) {
		g.gapMin = minGap
		g.gapMax = maxGap
	}
}

// WithDebug logs the intermediate values of every generation.
func WithDebug(debug bool) Option {
	return func(g *Generator) {
		g.debug = debug
	}
}

// NewGenerator creates a Generator drawing from rng. A nil rng is replaced
// by a clock-seeded source.
func NewGenerator(rng IndexSource, opts ...Option) *Generator {
	if rng == nil {
		rng = NewClockSource()
	}
	g := &Generator{
		rng:    rng,
		gapMin: DefaultGapMin,
		gapMax: DefaultGapMax,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateKeypair builds a prime pool of primeCount primes starting at
// primeStart and derives a keypair from it using rng.
func GenerateKeypair(primeStart, primeCount uint64, rng IndexSource, opts ...Option) (Keypair, error) {
	return NewGenerator(rng, opts...).Generate(primeStart, primeCount)
}

// Generate derives a keypair from the pool GeneratePrimes(primeStart, primeCount).
func (g *Generator) Generate(primeStart, primeCount uint64) (Keypair, error) {
	kp, _, err := g.GenerateWithReport(primeStart, primeCount)
	return kp, err
}

// GenerateWithReport is Generate plus the intermediate values p, q, φ(N),
// the Bézout coefficient and the number of draws each loop needed.
func (g *Generator) GenerateWithReport(primeStart, primeCount uint64) (Keypair, Report, error) {
	pool := GeneratePrimes(primeStart, primeCount)
	if len(pool) == 0 {
		return Keypair{}, Report{}, &PoolError{Start: primeStart, Count: primeCount}
	}
	rep := Report{PoolSize: len(pool)}

	rep.P = g.draw(pool)

	var err error
	rep.Q, rep.QDraws, err = g.sample("q", pool, func(q uint64) bool {
		if q >= rep.P {
			return false
		}
		gap := math.Abs(math.Log2(float64(rep.P)) - math.Log2(float64(q)))
		return g.gapMin < gap && gap < g.gapMax
	})
	if err != nil {
		return Keypair{}, rep, err
	}

	rep.N, rep.Phi, err = modulusAndTotient(rep.P, rep.Q)
	if err != nil {
		return Keypair{}, rep, err
	}

	phi := int64(rep.Phi)
	rep.E, rep.EDraws, err = g.sample("e", pool, func(e uint64) bool {
		if e <= 1 || e >= rep.Phi {
			return false
		}
		gcd, _, _ := ExtendedGCD(int64(e), phi)
		return gcd == 1
	})
	if err != nil {
		return Keypair{}, rep, err
	}

	var x int64
	rep.GCD, x, rep.K = ExtendedGCD(int64(rep.E), phi)
	rep.D, err = PositiveModulo(x, rep.Phi)
	if err != nil {
		return Keypair{}, rep, err
	}

	if g.debug {
		log.Printf("[RSA] pool=%d p=%d q=%d N=%d phi=%d e=%d d=%d k=%d gcd=%d draws(q=%d e=%d)",
			rep.PoolSize, rep.P, rep.Q, rep.N, rep.Phi, rep.E, rep.D, rep.K, rep.GCD, rep.QDraws, rep.EDraws)
	}

	return Keypair{E: rep.E, D: rep.D, N: rep.N}, rep, nil
}

// draw returns one uniformly chosen pool element. Out-of-range indices from
// a misbehaving source are folded back into the pool.
func (g *Generator) draw(pool []uint64) uint64 {
	n := len(pool)
	i := g.rng.NextIndex(n) % n
	if i < 0 {
		i += n
	}
	return pool[i]
}

// sample draws from pool until accept passes, returning the candidate and
// the number of draws taken.
func (g *Generator) sample(stage string, pool []uint64, accept func(uint64) bool) (uint64, int, error) {
	for attempt := 1; g.maxAttempts == 0 || attempt <= g.maxAttempts; attempt++ {
		if c := g.draw(pool); accept(c) {
			return c, attempt, nil
		}
	}
	return 0, g.maxAttempts, &TimeoutError{Stage: stage, Attempts: g.maxAttempts}
}

// modulusAndTotient returns N = p*q and φ(N) = (p-1)(q-1). φ(N) has to fit
// int64 because the inverse is computed over signed integers.
func modulusAndTotient(p, q uint64) (uint64, uint64, error) {
	hi, n := bits.Mul64(p, q)
	if hi != 0 {
		return 0, 0, fmt.Errorf("%w: %d * %d", ErrModulusOverflow, p, q)
	}
	phi := (p - 1) * (q - 1)
	if phi > math.MaxInt64 {
		return 0, 0, fmt.Errorf("%w: totient %d", ErrModulusOverflow, phi)
	}
	return n, phi, nil
}
