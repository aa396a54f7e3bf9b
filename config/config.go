package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultPrefix is prepended to every environment variable name unless
// LoadOptions overrides it.
const DefaultPrefix = "BEAVER_"

// ErrNotStructPointer is returned when Load receives anything but a pointer to a struct.
var ErrNotStructPointer = errors.New("config: target must be a pointer to a struct")

// LoadOptions defines options for loading configuration from environment variables.
type LoadOptions struct {
	Prefix string // Prefix to prepend to environment variable names (default: "BEAVER_")
	Debug  bool   // Echo every resolved variable
}

// Load populates a struct from .env file and environment variables using reflection.
// This function loads a .env file from the current directory when present and then
// reads environment variables to populate the provided struct.
//
// The function uses struct field tags to determine environment variable names:
//   - `env:"VAR_NAME"`: Maps the field to the specified environment variable
//   - `env:"VAR_NAME,default:value"`: Provides a default value if env var is not set
//   - `env:"VAR_NAME,required"`: Fails when neither the variable nor a default is set
//
// Environment variable names are prefixed with LoadOptions.Prefix, which
// defaults to "BEAVER_". Passing LoadOptions{} disables the prefix.
//
// Example:
//
//	type Config struct {
//	    PrimeStart uint64  `env:"RSA_PRIME_START,default:1000"`
//	    GapMin     float64 `env:"RSA_GAP_MIN,default:0.1"`
//	    Debug      bool    `env:"RSA_DEBUG,default:false"`
//	}
//
//	var cfg Config
//	err := config.Load(&cfg, config.LoadOptions{Prefix: "MYAPP_"})
//	// Will look for MYAPP_RSA_PRIME_START, MYAPP_RSA_GAP_MIN, MYAPP_RSA_DEBUG
func Load(cfg interface{}, opts ...LoadOptions) error {
	options := LoadOptions{Prefix: DefaultPrefix}
	if len(opts) > 0 {
		options = opts[0]
	}

	rv := reflect.ValueOf(cfg)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	// Silently try to load .env file, ignore if not found
	_ = godotenv.Load()

	v := rv.Elem()
	t := v.Type()
	printDebug := options.Debug || os.Getenv(DefaultPrefix+"CONFIG_DEBUG") == "true"

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		envTag := field.Tag.Get("env")
		if envTag == "" {
			continue
		}

		envName, defaultValue, required := parseTag(envTag)

		fullEnvName := options.Prefix + envName
		value, ok := os.LookupEnv(fullEnvName)
		if !ok || value == "" {
			value = defaultValue
		}
		if printDebug {
			fmt.Printf("[BEAVER] %s=%s\n", fullEnvName, value)
		}

		if value == "" {
			if required {
				return fmt.Errorf("config: %s is required", fullEnvName)
			}
			continue
		}
		if err := setFieldValue(v.Field(i), value); err != nil {
			return fmt.Errorf("config: %s: %w", fullEnvName, err)
		}
	}

	return nil
}

// parseTag splits `NAME,default:x,required` into its parts. Unknown options are ignored.
func parseTag(tag string) (name, defaultValue string, required bool) {
	parts := strings.Split(tag, ",")
	name = parts[0]
	for _, part := range parts[1:] {
		switch {
		case strings.HasPrefix(part, "default:"):
			defaultValue = strings.TrimPrefix(part, "default:")
		case part == "required":
			required = true
		}
	}
	return name, defaultValue, required
}

// setFieldValue converts value to the field's type and assigns it.
//
// Supported types:
//   - string
//   - int, int64 (base 10)
//   - uint, uint64 (base 10)
//   - float64
//   - bool (strconv.ParseBool)
//   - time.Duration (time.ParseDuration)
//
// Other kinds are skipped silently.
func setFieldValue(field reflect.Value, value string) error {
	if field.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(i)
	case reflect.Uint, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(u)
	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return nil
	}
	return nil
}
