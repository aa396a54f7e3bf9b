package krypto

import (
	"sync"

	"github.com/gobeaver/beaver-rsa/config"
)

// Global instances
var (
	defaultGenerator *Generator
	defaultConfig    *Config
	defaultOnce      sync.Once
	defaultErr       error
)

// Config holds key generation settings
type Config struct {
	// Prime pool: PrimeCount primes starting at PrimeStart
	PrimeStart uint64 `env:"RSA_PRIME_START,default:1000"`
	PrimeCount uint64 `env:"RSA_PRIME_COUNT,default:8000"`

	// MaxAttempts caps each rejection loop; 0 keeps them unbounded
	MaxAttempts int `env:"RSA_MAX_ATTEMPTS,default:0"`

	// Open interval for |log2(p) - log2(q)|
	GapMin float64 `env:"RSA_GAP_MIN,default:0.1"`
	GapMax float64 `env:"RSA_GAP_MAX,default:30"`

	// SeedMode: clock, fixed, benchmark or phrase
	SeedMode   string `env:"RSA_SEED_MODE,default:clock"`
	Seed       uint64 `env:"RSA_SEED,default:0"`
	SeedPhrase string `env:"RSA_SEED_PHRASE"`

	Debug bool `env:"RSA_DEBUG,default:false"`
}

// GetConfig loads configuration from environment variables
func GetConfig(opts ...config.LoadOptions) (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Benchmark reports whether the configuration selects the profiler mode.
func (c Config) Benchmark() bool {
	mode, err := ParseSeedMode(c.SeedMode)
	return err == nil && mode == SeedBenchmark
}

// Source builds the IndexSource selected by SeedMode.
func (c Config) Source() (IndexSource, error) {
	mode, err := ParseSeedMode(c.SeedMode)
	if err != nil {
		return nil, err
	}
	return NewSource(mode, c.Seed, c.SeedPhrase)
}

// Options translates the configuration into Generator options.
func (c Config) Options() []Option {
	opts := []Option{WithMaxAttempts(c.MaxAttempts), WithDebug(c.Debug)}
	if c.GapMin != 0 || c.GapMax != 0 {
		opts = append(opts, WithBitGap(c.GapMin, c.GapMax))
	}
	return opts
}

// NewFromConfig creates a Generator from cfg
func NewFromConfig(cfg Config) (*Generator, error) {
	src, err := cfg.Source()
	if err != nil {
		return nil, err
	}
	return NewGenerator(src, cfg.Options()...), nil
}

// Init initializes the global generator with optional config
func Init(configs ...Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = &configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultConfig = cfg
		defaultGenerator, defaultErr = NewFromConfig(*cfg)
	})

	return defaultErr
}

// Default returns the global generator, initializing it from the environment if needed
func Default() *Generator {
	if defaultGenerator == nil {
		_ = Init()
	}
	return defaultGenerator
}

// Generate derives a keypair with the global generator over the configured prime pool
func Generate() (Keypair, Report, error) {
	if defaultGenerator == nil {
		if err := Init(); err != nil {
			return Keypair{}, Report{}, err
		}
	}
	if defaultGenerator == nil {
		return Keypair{}, Report{}, ErrNotInitialized
	}
	return defaultGenerator.GenerateWithReport(defaultConfig.PrimeStart, defaultConfig.PrimeCount)
}

// Reset clears the global instance (for testing)
func Reset() {
	defaultGenerator = nil
	defaultConfig = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
}
