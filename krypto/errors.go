package krypto

import (
	"errors"
	"fmt"
)

// Package-level errors
var (
	// ErrDomain indicates a modular operation was asked to reduce by zero
	ErrDomain = errors.New("krypto: modulus must be non-zero")

	// ErrInfeasiblePool indicates key generation had no prime candidates to sample
	ErrInfeasiblePool = errors.New("krypto: prime pool is empty")

	// ErrKeyGenerationTimeout indicates a rejection loop exhausted its attempt budget
	ErrKeyGenerationTimeout = errors.New("krypto: key generation exceeded attempt budget")

	// ErrModulusOverflow indicates N or φ(N) does not fit the native word size
	ErrModulusOverflow = errors.New("krypto: modulus overflows native word")

	// ErrInvalidKeypair indicates a keypair with unusable components
	ErrInvalidKeypair = errors.New("krypto: invalid keypair")

	// ErrInvalidCiphertext indicates an encoded ciphertext that cannot be decoded
	ErrInvalidCiphertext = errors.New("krypto: invalid ciphertext")

	// ErrInvalidSeedMode indicates an unknown seed mode in the configuration
	ErrInvalidSeedMode = errors.New("krypto: invalid seed mode")

	// ErrNotInitialized indicates the default generator has not been set up
	ErrNotInitialized = errors.New("krypto: generator not initialized")
)

// PoolError reports an empty prime pool together with the range that produced it.
type PoolError struct {
	Start uint64
	Count uint64
}

func (e *PoolError) Error() string {
	return fmt.Sprintf("%v (start=%d, count=%d)", ErrInfeasiblePool, e.Start, e.Count)
}

func (e *PoolError) Unwrap() error {
	return ErrInfeasiblePool
}

// TimeoutError reports which rejection loop ran out of attempts.
type TimeoutError struct {
	Stage    string // "q" or "e"
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%v: stage %s after %d attempts", ErrKeyGenerationTimeout, e.Stage, e.Attempts)
}

func (e *TimeoutError) Unwrap() error {
	return ErrKeyGenerationTimeout
}
