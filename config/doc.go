// Package config loads configuration structs from environment variables
// with support for custom prefixes, type conversion, and .env file loading.
//
// # Basic Usage
//
// Define a configuration struct with environment variable tags:
//
//	type Config struct {
//	    PrimeStart  uint64        `env:"RSA_PRIME_START,default:1000"`
//	    GapMin      float64       `env:"RSA_GAP_MIN,default:0.1"`
//	    Debug       bool          `env:"RSA_DEBUG,default:false"`
//	    DialTimeout time.Duration `env:"KEYSTORE_DIAL_TIMEOUT,default:5s"`
//	}
//
// Load configuration from environment variables:
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// By default every name is prefixed with "BEAVER_", so the struct above reads
// BEAVER_RSA_PRIME_START, BEAVER_RSA_GAP_MIN and so on. Use LoadOptions to
// choose another prefix:
//
//	err := config.Load(&cfg, config.LoadOptions{Prefix: "MYAPP_"})
//
// # Field Tags
//
//   - `env:"VAR_NAME"`: environment variable name (without prefix)
//   - `env:"VAR_NAME,default:value"`: value used when the variable is unset or empty
//   - `env:"VAR_NAME,required"`: Load fails when no value and no default exist
//
// # Supported Types
//
// string, int, int64, uint, uint64, float64, bool and time.Duration. Fields of
// any other type are left untouched.
//
// # Environment File Support
//
// A .env file in the working directory is loaded first when present.
// Variables already set in the process environment take precedence.
//
// # Debug Mode
//
// Set BEAVER_CONFIG_DEBUG=true, or LoadOptions.Debug, to print each resolved
// variable as "[BEAVER] NAME=value".
package config
