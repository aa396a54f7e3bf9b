package krypto

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
)

// IndexSource picks candidates out of a prime pool. NextIndex must return a
// value in [0, n) for n > 0.
type IndexSource interface {
	NextIndex(n int) int
}

// SeedMode selects how the default IndexSource is seeded.
type SeedMode string

const (
	// SeedClock seeds from the wall clock; every run differs.
	SeedClock SeedMode = "clock"
	// SeedFixed seeds from Config.Seed.
	SeedFixed SeedMode = "fixed"
	// SeedBenchmark uses a degenerate constant seed so repeated profiler runs
	// do comparable work. Not meant for reproducible test vectors.
	SeedBenchmark SeedMode = "benchmark"
	// SeedPhrase derives the seed from Config.SeedPhrase with BLAKE2b.
	SeedPhrase SeedMode = "phrase"
)

// pcgStream is the second PCG word; any constant works.
const pcgStream = 0x9e3779b97f4a7c15

// seededSource wraps math/rand/v2 so a single source can be shared.
type seededSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededSource returns a deterministic IndexSource for the given seed.
func NewSeededSource(seed uint64) IndexSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, pcgStream))}
}

// NewClockSource returns an IndexSource seeded from the current time.
func NewClockSource() IndexSource {
	return NewSeededSource(uint64(time.Now().UnixNano()))
}

// NextIndex returns a uniform value in [0, n). It returns 0 when n <= 0.
func (s *seededSource) NextIndex(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// PhraseSeed derives a 64-bit seed from a passphrase.
func PhraseSeed(phrase string) uint64 {
	sum := blake2b.Sum256([]byte(phrase))
	return binary.BigEndian.Uint64(sum[:8])
}

// ParseSeedMode normalizes s into a SeedMode. An empty string means SeedClock.
func ParseSeedMode(s string) (SeedMode, error) {
	switch mode := SeedMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return SeedClock, nil
	case SeedClock, SeedFixed, SeedBenchmark, SeedPhrase:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSeedMode, s)
	}
}

// NewSource builds the IndexSource for a seed mode.
func NewSource(mode SeedMode, seed uint64, phrase string) (IndexSource, error) {
	switch mode {
	case SeedClock, "":
		return NewClockSource(), nil
	case SeedFixed:
		return NewSeededSource(seed), nil
	case SeedBenchmark:
		return NewSeededSource(0), nil
	case SeedPhrase:
		if phrase == "" {
			return nil, fmt.Errorf("%w: phrase mode needs a seed phrase", ErrInvalidSeedMode)
		}
		return NewSeededSource(PhraseSeed(phrase)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeedMode, mode)
	}
}
