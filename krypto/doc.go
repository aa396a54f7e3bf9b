// Package krypto implements textbook RSA over native 64-bit words: prime pool
// generation, modular arithmetic, rejection-sampled key generation and a
// per-byte cipher.
//
// This is a teaching toolkit. Keys are tiny, there is no padding and every
// byte is encrypted on its own, so identical bytes produce identical
// ciphertext. Do not use it to protect data.
//
// # Prime Pools
//
// GeneratePrimes finds primes by trial division:
//
//	pool := krypto.GeneratePrimes(1, 5) // [2 3 5 7 11]
//
// # Modular Arithmetic
//
//	c, err := krypto.PowerMod(4, 13, 497) // 445
//	g, x, y := krypto.ExtendedGCD(17, 3120) // 1, -367, 2
//	d, err := krypto.PositiveModulo(-367, 3120) // 2753
//
// PowerMod uses square-and-multiply. PowerModLinear multiplies once per unit
// of exponent and is only useful for benchmarking the naive algorithm.
//
// # Key Generation
//
// The generator draws p from the pool, then draws q until q < p and the bit
// lengths differ by more than 0.1 and less than 30, then draws e until it is
// coprime to φ(N) = (p-1)(q-1) and 1 < e < φ(N). The private exponent is the
// inverse of e modulo φ(N).
//
//	kp, err := krypto.GenerateKeypair(1000, 8000, krypto.NewClockSource())
//
// Randomness is injected through IndexSource, so tests can script the draws:
//
//	gen := krypto.NewGenerator(krypto.NewSeededSource(42), krypto.WithMaxAttempts(10000))
//	kp, report, err := gen.GenerateWithReport(10, 50)
//
// Without WithMaxAttempts the rejection loops are unbounded and an unlucky
// pool, such as one whose smallest prime was drawn as p, never returns.
// With a budget the generator fails with ErrKeyGenerationTimeout instead.
//
// # Encryption
//
//	c, err := krypto.Encrypt([]byte("hi"), kp.E, kp.N)
//	m, err := krypto.Decrypt(c, kp.D, kp.N)
//
// Bytes at or above N cannot round-trip.
//
// # Configuration
//
// Config is loaded from BEAVER_RSA_* environment variables:
//
//	BEAVER_RSA_PRIME_START=1000
//	BEAVER_RSA_PRIME_COUNT=8000
//	BEAVER_RSA_MAX_ATTEMPTS=0
//	BEAVER_RSA_GAP_MIN=0.1
//	BEAVER_RSA_GAP_MAX=30
//	BEAVER_RSA_SEED_MODE=clock   # clock, fixed, benchmark, phrase
//	BEAVER_RSA_SEED=0
//	BEAVER_RSA_SEED_PHRASE=
//	BEAVER_RSA_DEBUG=false
//
//	if err := krypto.Init(); err != nil {
//	    log.Fatal(err)
//	}
//	kp, report, err := krypto.Generate()
package krypto
